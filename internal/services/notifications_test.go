package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exaura_site/internal/core"
)

func TestNotifier_Notify(t *testing.T) {
	svc := NewFileTranslationService(writeLocales(t, map[string]string{
		"pt.json": `{"notifications": {"contact_success": "Obrigado pela sua mensagem!", "store_soon": ""}}`,
	}))
	require.NoError(t, svc.LoadTranslations())
	notifier := NewNotifier(svc)

	n := notifier.Notify("pt", core.NotificationSuccess, NotifyContactSuccess)
	assert.Equal(t, core.Notification{Type: core.NotificationSuccess, Message: "Obrigado pela sua mensagem!"}, n)

	n = notifier.Notify("pt", core.NotificationError, NotifyContactMissing)
	assert.Equal(t, "Please fill in all fields.", n.Message)

	n = notifier.Notify("pt", core.NotificationInfo, NotifyStoreSoon)
	assert.Equal(t, "", n.Message, "an empty translation is a valid value")

	n = notifier.Notify("en", core.NotificationInfo, NotifyStoreSoon)
	assert.Equal(t, "App store links will be available soon!", n.Message)

	n = notifier.Notify("sv", core.NotificationSuccess, NotifyContactSuccess)
	assert.Equal(t, "Thank you for your message! We'll get back to you soon.", n.Message)
}
