package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-study-buddy/internal/database"

	"gorm.io/gorm"
)

// Kind classifies which usage counter a successful answer bumps.
type Kind string

const (
	KindChat     Kind = "chat"
	KindQuiz     Kind = "quiz"
	KindDocument Kind = "document"
)

// User mirrors the account record owned by the auth collaborator. Only the
// fields this module reads or bumps are mapped; password material never
// enters this module.
type User struct {
	ID            uint64     `gorm:"primaryKey"`
	Email         string     `gorm:"uniqueIndex;size:255"`
	FullName      string     `gorm:"size:255"`
	ChatCount     int64      `gorm:"not null;default:0"`
	QuizCount     int64      `gorm:"not null;default:0"`
	DocumentCount int64      `gorm:"not null;default:0"`
	CreatedAt     *time.Time `gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// Recorder is the usage-counter boundary. The pipeline never calls it; the
// HTTP layer records usage after a successful answer, best-effort.
type Recorder interface {
	IncrementUsage(ctx context.Context, email string, kind Kind) error
}

// Users is the account-lookup boundary.
type Users interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

// Repository is the gorm-backed implementation of both boundaries.
type Repository struct{}

func NewRepository() *Repository { return &Repository{} }

func counterColumn(kind Kind) (string, error) {
	switch kind {
	case KindChat:
		return "chat_count", nil
	case KindQuiz:
		return "quiz_count", nil
	case KindDocument:
		return "document_count", nil
	}
	return "", fmt.Errorf("usage: unknown kind %q", kind)
}

func (r *Repository) IncrementUsage(ctx context.Context, email string, kind Kind) error {
	column, err := counterColumn(kind)
	if err != nil {
		return err
	}
	db, err := database.GetDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", email).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	var user User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Migrate keeps the users table in step with the model. Called best-effort at
// startup; the account schema itself is owned elsewhere.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
