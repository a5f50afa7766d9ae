package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"exaura_site/internal/core"
	apperrors "exaura_site/internal/errors"
)

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Message  string `json:"message" form:"message" validate:"required,max=5000"`
	Language string `json:"-" form:"-"`
}

// ContactNotifier forwards a stored submission to the site owners.
type ContactNotifier interface {
	NotifyContact(msg *core.ContactMessage) error
}

type ContactService struct {
	repo     core.ContactRepository
	notifier ContactNotifier
	validate *validator.Validate
	policy   *bluemonday.Policy
	log      *slog.Logger
}

// NewContactService creates a ContactService. notifier may be nil.
func NewContactService(repo core.ContactRepository, notifier ContactNotifier, log *slog.Logger) *ContactService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ContactService{
		repo:     repo,
		notifier: notifier,
		validate: validate,
		policy:   bluemonday.StrictPolicy(),
		log:      log,
	}
}

// Submit sanitizes, validates and stores a contact message, then notifies
// the inbox. Notification failures are logged and do not fail the call.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*core.ContactMessage, error) {
	// Markup-only fields sanitize to "" and must fail required.
	req.Name = s.sanitize(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = s.sanitize(req.Message)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	msg := &core.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Message:  req.Message,
		Language: req.Language,
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}
	s.log.Info("contact message received", "id", msg.ID, "language", msg.Language)

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(msg); err != nil {
			s.log.Error("failed to send contact notification", "id", msg.ID, "error", err)
		}
	}

	return msg, nil
}

// sanitize strips markup and stores the remaining plain text unescaped.
func (s *ContactService) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// List returns recent submissions, newest first.
func (s *ContactService) List(ctx context.Context, limit int) ([]*core.ContactMessage, error) {
	return s.repo.List(ctx, limit)
}

// MissingFieldsMessage is the validation message used when a required
// contact field is empty.
const MissingFieldsMessage = "Missing required fields"

func (s *ContactService) validateRequest(req ContactRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewBadRequestError("Invalid contact request", err.Error())
	}

	var messages []string
	missing := false
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			missing = true
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	message := "Validation failed"
	if missing {
		message = MissingFieldsMessage
	}
	return apperrors.NewValidationError(message, strings.Join(messages, "; "))
}
