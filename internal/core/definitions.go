package core

import (
	"context"
	"time"
)

// Translations represents the nested key-value table for a specific language.
// Values are either strings or nested tables.
type Translations map[string]interface{}

// TranslationService defines the contract for loading and retrieving translations.
type TranslationService interface {
	// LoadTranslations loads all translation files from the given source.
	LoadTranslations() error
	// GetTranslations returns the translations for a specific language.
	// Returns an error if the language is not found.
	GetTranslations(lang string) (Translations, error)
	// Translate resolves a key path for a language. The bool reports whether
	// a string value was found.
	Translate(lang, key string) (string, bool)
	// Languages lists the loaded language codes.
	Languages() []string
}

// NotificationType is the visual kind of a notification toast.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification is a short user-facing message returned alongside API responses.
type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

// ConsentChoice is the visitor's recorded cookie decision.
type ConsentChoice string

const (
	ConsentNone     ConsentChoice = ""
	ConsentAccepted ConsentChoice = "accepted"
	ConsentRejected ConsentChoice = "rejected"
	ConsentCustom   ConsentChoice = "custom"
)

// ConsentState is the full cookie preference record for one visitor.
type ConsentState struct {
	Choice     ConsentChoice `json:"choice"`
	Analytics  bool          `json:"analytics"`
	Marketing  bool          `json:"marketing"`
	ShowBanner bool          `json:"show_banner"`
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Save(ctx context.Context, msg *ContactMessage) error
	List(ctx context.Context, limit int) ([]*ContactMessage, error)
}
