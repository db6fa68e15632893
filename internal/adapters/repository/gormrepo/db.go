// Package gormrepo implements the repositories on top of GORM. It shares
// the Postgres schema created by the postgres package migrations.
package gormrepo

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type questionModel struct {
	ID           int64     `gorm:"primaryKey"`
	QuestionText string    `gorm:"column:question_text;size:200;not null"`
	PubDate      time.Time `gorm:"column:pub_date;not null"`
}

func (questionModel) TableName() string { return "questions" }

type choiceModel struct {
	ID         int64  `gorm:"primaryKey"`
	QuestionID int64  `gorm:"column:question_id;not null;index"`
	Text       string `gorm:"column:choice_text;size:200;not null"`
	Votes      int    `gorm:"column:votes;not null;default:0"`
}

func (choiceModel) TableName() string { return "choices" }

// Open connects to Postgres through GORM. Driver errors are translated so
// foreign key violations surface as gorm.ErrForeignKeyViolated.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
