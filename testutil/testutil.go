// Package testutil builds migrated in-memory databases and seed data for
// package tests.
package testutil

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"lms/database"
	"lms/models"
	"lms/models/course"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Password is the plain text password of every seeded user.
const Password = "password123"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]`)

// DB opens a fresh migrated sqlite database private to t. The pool holds a
// single connection so the in-memory database lives until cleanup.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", unsafeName.ReplaceAllString(t.Name(), "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Password: string(hashed), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateClass(t testing.TB, db *gorm.DB, grade int, name string, ownerID uint) course.Class {
	t.Helper()

	class := course.Class{Grade: grade, Name: name, UserID: ownerID}
	require.NoError(t, db.Create(&class).Error)
	return class
}

// CreateStudent creates a siswa account together with its student record.
func CreateStudent(t testing.TB, db *gorm.DB, name string, classID uint) course.Student {
	t.Helper()

	email := strings.ToLower(unsafeName.ReplaceAllString(name, "_")) + "@school.test"
	user := CreateUser(t, db, name, email, models.RoleStudent)
	student := course.Student{
		NIS:     fmt.Sprintf("%05d", user.ID),
		Name:    name,
		Email:   email,
		ClassID: classID,
		UserID:  user.ID,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func CreateModule(t testing.TB, db *gorm.DB, title string, ownerID uint) course.Module {
	t.Helper()

	module := course.Module{Title: title, Description: title + " description", UserID: ownerID}
	require.NoError(t, db.Create(&module).Error)
	return module
}

// CreateSubModules creates one sub-module per title, one minute apart, so
// their gate order is the order of titles.
func CreateSubModules(t testing.TB, db *gorm.DB, moduleID, ownerID uint, titles ...string) []course.SubModule {
	t.Helper()

	base := time.Now().Add(-time.Hour).UTC()
	subs := make([]course.SubModule, len(titles))
	for i, title := range titles {
		subs[i] = course.SubModule{
			ModuleID:   moduleID,
			Title:      title,
			YoutubeURL: "https://youtube.com/watch?v=" + unsafeName.ReplaceAllString(title, "_"),
			UserID:     ownerID,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&subs[i]).Error)
	}
	return subs
}

// CreateQuiz creates a question group with n questions whose correct
// answer cycles through A..E.
func CreateQuiz(t testing.TB, db *gorm.DB, classID, moduleID, ownerID uint, n int) (course.QuestionGroup, []course.Question) {
	t.Helper()

	group := course.QuestionGroup{
		Title:    "Quiz",
		Duration: 30,
		ClassID:  classID,
		ModuleID: moduleID,
		UserID:   ownerID,
	}
	require.NoError(t, db.Create(&group).Error)

	questions := make([]course.Question, n)
	for i := range questions {
		questions[i] = course.Question{
			QuestionGroupID: group.ID,
			Title:           fmt.Sprintf("Question %d", i+1),
			Prompt:          fmt.Sprintf("What is %d + %d?", i, i),
			OptionA:         "a",
			OptionB:         "b",
			OptionC:         "c",
			OptionD:         "d",
			OptionE:         "e",
			CorrectAnswer:   course.OptionLabels[i%len(course.OptionLabels)],
			UserID:          ownerID,
		}
		require.NoError(t, db.Create(&questions[i]).Error)
	}
	return group, questions
}

// Fixture is the usual cast of a test: an admin, a class, a module and one
// student in that class.
type Fixture struct {
	Admin   models.User
	Class   course.Class
	Module  course.Module
	Student course.Student
}

func Seed(t testing.TB, db *gorm.DB) Fixture {
	t.Helper()

	admin := CreateUser(t, db, "Admin", "admin@school.test", models.RoleAdmin)
	class := CreateClass(t, db, 7, "7A", admin.ID)
	return Fixture{
		Admin:   admin,
		Class:   class,
		Module:  CreateModule(t, db, "Fractions", admin.ID),
		Student: CreateStudent(t, db, "Budi", class.ID),
	}
}

func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
func String(v string) *string  { return &v }
