package quiz

import (
	"time"

	"lms/logger"

	"gorm.io/gorm"
)

// Service assembles quizzes, reconciles submissions into the single
// authoritative score per student and quiz, and serves result views.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewService(db *gorm.DB, baseLog *logger.Logger) *Service {
	return &Service{
		db:  db,
		log: baseLog.With("service", "QuizService"),
		now: time.Now,
	}
}
