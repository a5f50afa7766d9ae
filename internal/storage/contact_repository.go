package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"exaura_site/internal/core"
)

// ContactMessageModel is the database row for a contact submission.
type ContactMessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;index"`
	Message   string `gorm:"type:text;not null"`
	Language  string `gorm:"size:8"`
	CreatedAt time.Time
}

func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// OpenSQLite opens the sqlite database at path and migrates the schema.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer; ":memory:" databases are per connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&ContactMessageModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// ContactRepository stores contact submissions with gorm.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Save(ctx context.Context, msg *core.ContactMessage) error {
	model := &ContactMessageModel{
		Name:     msg.Name,
		Email:    msg.Email,
		Message:  msg.Message,
		Language: msg.Language,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	msg.ID = model.ID
	msg.CreatedAt = model.CreatedAt
	return nil
}

// List returns the newest submissions first.
func (r *ContactRepository) List(ctx context.Context, limit int) ([]*core.ContactMessage, error) {
	var models []ContactMessageModel
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}

	out := make([]*core.ContactMessage, 0, len(models))
	for _, m := range models {
		out = append(out, &core.ContactMessage{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Message:   m.Message,
			Language:  m.Language,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
