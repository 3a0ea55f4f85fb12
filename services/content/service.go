package content

import (
	"context"
	"strings"

	"lms/apperror"
	"lms/logger"
	"lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Service is the staff side of the catalogue: classes, modules with their
// ordered sub-modules, and question groups with their questions.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, baseLog *logger.Logger) *Service {
	return &Service{
		db:  db,
		log: baseLog.With("service", "ContentService"),
	}
}

type ClassInput struct {
	Grade       int
	Name        string
	ActorUserID uint
}

func (s *Service) CreateClass(ctx context.Context, in ClassInput) (*course.Class, error) {
	class := course.Class{
		Grade:  in.Grade,
		Name:   strings.TrimSpace(in.Name),
		UserID: in.ActorUserID,
	}
	if err := s.db.WithContext(ctx).Create(&class).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to create class!")
	}
	s.log.Info("class created", "class_id", class.ID)
	return &class, nil
}

func (s *Service) ListClasses(ctx context.Context) ([]course.Class, error) {
	classes := []course.Class{}
	if err := s.db.WithContext(ctx).Order("grade asc, name asc").Find(&classes).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch classes!")
	}
	return classes, nil
}

type ModuleInput struct {
	Title       string
	Description string
	Image       string
	URL         string
	ActorUserID uint
}

func (s *Service) CreateModule(ctx context.Context, in ModuleInput) (*course.Module, error) {
	module := course.Module{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Image:       in.Image,
		URL:         in.URL,
		UserID:      in.ActorUserID,
	}
	if err := s.db.WithContext(ctx).Create(&module).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to create module!")
	}
	s.log.Info("module created", "module_id", module.ID)
	return &module, nil
}

func (s *Service) ListModules(ctx context.Context) ([]course.Module, error) {
	modules := []course.Module{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&modules).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch modules!")
	}
	return modules, nil
}

type SubModuleInput struct {
	ModuleID    uint
	Title       string
	Description string
	YoutubeURL  string
	CoverImage  string
	URL         string
	ActorUserID uint
}

// CreateSubModule appends a sub-module to its module. Creation order is the
// order in which the progress gate unlocks sub-modules.
func (s *Service) CreateSubModule(ctx context.Context, in SubModuleInput) (*course.SubModule, error) {
	db := s.db.WithContext(ctx)
	if err := exists(db, &course.Module{}, in.ModuleID, "Module not found!"); err != nil {
		return nil, err
	}

	sub := course.SubModule{
		ModuleID:    in.ModuleID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		YoutubeURL:  in.YoutubeURL,
		CoverImage:  in.CoverImage,
		URL:         in.URL,
		UserID:      in.ActorUserID,
	}
	if err := db.Create(&sub).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to create sub module!")
	}
	s.log.Info("sub module created", "module_id", in.ModuleID, "sub_module_id", sub.ID)
	return &sub, nil
}

// ListSubModules returns the sub-modules of a module in gate order.
func (s *Service) ListSubModules(ctx context.Context, moduleID uint) ([]course.SubModule, error) {
	db := s.db.WithContext(ctx)
	if err := exists(db, &course.Module{}, moduleID, "Module not found!"); err != nil {
		return nil, err
	}

	subs := []course.SubModule{}
	if err := db.Where("module_id = ?", moduleID).
		Order("created_at asc, id asc").
		Find(&subs).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch sub modules!")
	}
	return subs, nil
}

type QuestionGroupInput struct {
	Title       string
	Duration    int
	ClassID     uint
	ModuleID    uint
	ActorUserID uint
}

func (s *Service) CreateQuestionGroup(ctx context.Context, in QuestionGroupInput) (*course.QuestionGroup, error) {
	db := s.db.WithContext(ctx)
	if err := exists(db, &course.Class{}, in.ClassID, "Class not found!"); err != nil {
		return nil, err
	}
	if err := exists(db, &course.Module{}, in.ModuleID, "Module not found!"); err != nil {
		return nil, err
	}

	group := course.QuestionGroup{
		Title:    strings.TrimSpace(in.Title),
		Duration: in.Duration,
		ClassID:  in.ClassID,
		ModuleID: in.ModuleID,
		UserID:   in.ActorUserID,
	}
	if err := db.Create(&group).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to create question group!")
	}
	s.log.Info("question group created", "group_id", group.ID)
	return &group, nil
}

type QuestionInput struct {
	GroupID       uint
	Title         string
	Image         string
	URL           string
	Story         string
	Prompt        string
	Options       [5]string
	CorrectAnswer string
	ActorUserID   uint
}

// CreateQuestion adds a question to a group. The correct answer must name
// an option that is actually filled in.
func (s *Service) CreateQuestion(ctx context.Context, in QuestionInput) (*course.Question, error) {
	if !course.IsOptionLabel(in.CorrectAnswer) {
		return nil, apperror.ValidationFields("Validation failed!", map[string]string{
			"correctAnswer": "Correct answer must be one of A, B, C, D or E!",
		})
	}
	for i, label := range course.OptionLabels {
		if label == in.CorrectAnswer && strings.TrimSpace(in.Options[i]) == "" {
			return nil, apperror.ValidationFields("Validation failed!", map[string]string{
				"option" + label: "The correct option cannot be empty!",
			})
		}
	}

	db := s.db.WithContext(ctx)
	if err := exists(db, &course.QuestionGroup{}, in.GroupID, "Question group not found!"); err != nil {
		return nil, err
	}

	q := course.Question{
		QuestionGroupID: in.GroupID,
		Title:           strings.TrimSpace(in.Title),
		Image:           in.Image,
		URL:             in.URL,
		Story:           in.Story,
		Prompt:          in.Prompt,
		OptionA:         in.Options[0],
		OptionB:         in.Options[1],
		OptionC:         in.Options[2],
		OptionD:         in.Options[3],
		OptionE:         in.Options[4],
		CorrectAnswer:   in.CorrectAnswer,
		UserID:          in.ActorUserID,
	}
	if err := db.Create(&q).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to create question!")
	}
	return &q, nil
}

func exists(db *gorm.DB, model interface{}, id uint, notFound string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperror.Internal(errors.Wrap(err, notFound), "Failed to fetch data!")
	}
	if count == 0 {
		return apperror.NotFound(notFound)
	}
	return nil
}
