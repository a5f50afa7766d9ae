package services

import "exaura_site/internal/core"

// Notification keys looked up in the translation table, with English
// defaults used when a language has no entry.
const (
	NotifyContactSuccess = "notifications.contact_success"
	NotifyContactMissing = "notifications.contact_missing"
	NotifyContactInvalid = "notifications.contact_invalid"
	NotifyContactFailed  = "notifications.contact_failed"
	NotifyStoreSoon      = "notifications.store_soon"
	NotifyConsentSaved   = "notifications.consent_saved"
)

var defaultNotifications = map[string]string{
	NotifyContactSuccess: "Thank you for your message! We'll get back to you soon.",
	NotifyContactMissing: "Please fill in all fields.",
	NotifyContactInvalid: "Please check the form and try again.",
	NotifyContactFailed:  "Something went wrong. Please try again later.",
	NotifyStoreSoon:      "App store links will be available soon!",
	NotifyConsentSaved:   "Your cookie preferences have been saved.",
}

// Notifier builds localized notifications.
type Notifier struct {
	translator core.TranslationService
}

func NewNotifier(translator core.TranslationService) *Notifier {
	return &Notifier{translator: translator}
}

// Notify returns a notification for key in lang, falling back to the
// English default text.
func (n *Notifier) Notify(lang string, kind core.NotificationType, key string) core.Notification {
	message, ok := "", false
	if n.translator != nil {
		message, ok = n.translator.Translate(lang, key)
	}
	if !ok {
		message = defaultNotifications[key]
	}
	return core.Notification{Type: kind, Message: message}
}
