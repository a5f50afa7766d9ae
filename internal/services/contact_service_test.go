package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exaura_site/internal/config"
	"exaura_site/internal/core"
	apperrors "exaura_site/internal/errors"
	"exaura_site/internal/logger"
)

type mockContactRepository struct {
	saved   []*core.ContactMessage
	saveErr error
}

func (m *mockContactRepository) Save(_ context.Context, msg *core.ContactMessage) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	msg.ID = uint(len(m.saved) + 1)
	m.saved = append(m.saved, msg)
	return nil
}

func (m *mockContactRepository) List(_ context.Context, limit int) ([]*core.ContactMessage, error) {
	if limit > 0 && limit < len(m.saved) {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}

type mockContactNotifier struct {
	sent []*core.ContactMessage
	err  error
}

func (m *mockContactNotifier) NotifyContact(msg *core.ContactMessage) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func TestContactService_Submit(t *testing.T) {
	repo := &mockContactRepository{}
	notifier := &mockContactNotifier{}
	svc := NewContactService(repo, notifier, logger.Discard())

	msg, err := svc.Submit(context.Background(), ContactRequest{
		Name:     "  Ana <b>Silva</b> ",
		Email:    "ana@example.com",
		Message:  "Hello <script>alert(1)</script>there",
		Language: "pt",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), msg.ID)
	assert.Equal(t, "Ana Silva", msg.Name)
	assert.Equal(t, "Hello there", msg.Message)
	assert.Equal(t, "pt", msg.Language)
	assert.Len(t, repo.saved, 1)
	assert.Len(t, notifier.sent, 1)
}

func TestContactService_Submit_MissingFields(t *testing.T) {
	repo := &mockContactRepository{}
	svc := NewContactService(repo, nil, logger.Discard())

	_, err := svc.Submit(context.Background(), ContactRequest{Name: "Ana", Email: "   ", Message: ""})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, MissingFieldsMessage, appErr.Message)
	assert.Contains(t, appErr.Details, "email is required")
	assert.Contains(t, appErr.Details, "message is required")
	assert.Empty(t, repo.saved)
}

func TestContactService_Submit_MarkupOnlyFields(t *testing.T) {
	repo := &mockContactRepository{}
	svc := NewContactService(repo, nil, logger.Discard())

	_, err := svc.Submit(context.Background(), ContactRequest{
		Name:    "<b></b>",
		Email:   "a@b.co",
		Message: "<script>x</script>",
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, MissingFieldsMessage, appErr.Message)
	assert.Contains(t, appErr.Details, "name is required")
	assert.Contains(t, appErr.Details, "message is required")
	assert.Empty(t, repo.saved)
}

func TestContactService_Submit_InvalidEmail(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, nil, logger.Discard())

	_, err := svc.Submit(context.Background(), ContactRequest{Name: "Ana", Email: "not-an-email", Message: "hi"})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Contains(t, appErr.Details, "email must be a valid email address")
}

func TestContactService_Submit_TooLong(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, nil, logger.Discard())

	_, err := svc.Submit(context.Background(), ContactRequest{
		Name:    strings.Repeat("a", 101),
		Email:   "ana@example.com",
		Message: "hi",
	})
	require.Error(t, err)
	assert.Contains(t, apperrors.GetAppError(err).Details, "name must be at most 100 characters")
}

func TestContactService_Submit_RepositoryError(t *testing.T) {
	repo := &mockContactRepository{saveErr: stderrors.New("disk full")}
	svc := NewContactService(repo, nil, logger.Discard())

	_, err := svc.Submit(context.Background(), ContactRequest{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	require.Error(t, err)
	assert.False(t, apperrors.IsAppError(err))
}

func TestContactService_Submit_NotifierErrorIsNotFatal(t *testing.T) {
	notifier := &mockContactNotifier{err: stderrors.New("smtp down")}
	svc := NewContactService(&mockContactRepository{}, notifier, logger.Discard())

	msg, err := svc.Submit(context.Background(), ContactRequest{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.NotNil(t, msg)
	assert.Len(t, notifier.sent, 1)
}

func TestNewSMTPNotifier_Unconfigured(t *testing.T) {
	assert.Nil(t, NewSMTPNotifier(config.EmailConfig{}, "inbox@example.com"))
	assert.Nil(t, NewSMTPNotifier(config.EmailConfig{SMTPHost: "smtp.example.com"}, ""))
	assert.NotNil(t, NewSMTPNotifier(config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587}, "inbox@example.com"))
}

func TestBuildContactMail(t *testing.T) {
	cfg := config.EmailConfig{FromAddress: "noreply@exaura.local", FromName: "Exaura"}
	msg := &core.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "a < b", Language: "pt"}

	m := buildContactMail(cfg, "team@exaura.local", msg)
	assert.Equal(t, []string{"team@exaura.local"}, m.GetHeader("To"))
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("Reply-To"))
	assert.Equal(t, []string{"New contact message from Ana"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a &lt; b")
}
