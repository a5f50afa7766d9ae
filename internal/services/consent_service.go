package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"exaura_site/internal/core"
	"exaura_site/internal/storage"
)

const (
	consentKeyPrefix = "consent:"

	cookieConsentKey    = "cookieConsent"
	analyticsCookiesKey = "analyticsCookies"
	marketingCookiesKey = "marketingCookies"
)

// ConsentService records cookie consent choices per visitor.
type ConsentService struct {
	store storage.KVStore
	log   *slog.Logger
}

func NewConsentService(store storage.KVStore, log *slog.Logger) *ConsentService {
	return &ConsentService{store: store, log: log}
}

func consentKey(visitor, name string) string {
	return consentKeyPrefix + visitor + ":" + name
}

// Get returns the visitor's recorded choice. ShowBanner is set when nothing
// has been recorded yet.
func (s *ConsentService) Get(ctx context.Context, visitor string) (core.ConsentState, error) {
	choice, err := s.read(ctx, visitor, cookieConsentKey)
	if err != nil {
		return core.ConsentState{}, err
	}

	state := core.ConsentState{Choice: core.ConsentChoice(choice)}
	switch state.Choice {
	case core.ConsentNone:
		state.ShowBanner = true
	case core.ConsentAccepted:
		state.Analytics = true
		state.Marketing = true
	case core.ConsentCustom:
		if state.Analytics, err = s.readFlag(ctx, visitor, analyticsCookiesKey); err != nil {
			return core.ConsentState{}, err
		}
		if state.Marketing, err = s.readFlag(ctx, visitor, marketingCookiesKey); err != nil {
			return core.ConsentState{}, err
		}
	}
	return state, nil
}

func (s *ConsentService) Accept(ctx context.Context, visitor string) (core.ConsentState, error) {
	if err := s.write(ctx, visitor, cookieConsentKey, string(core.ConsentAccepted)); err != nil {
		return core.ConsentState{}, err
	}
	s.log.Info("cookies accepted", "visitor", visitor)
	return s.Get(ctx, visitor)
}

func (s *ConsentService) Reject(ctx context.Context, visitor string) (core.ConsentState, error) {
	if err := s.write(ctx, visitor, cookieConsentKey, string(core.ConsentRejected)); err != nil {
		return core.ConsentState{}, err
	}
	s.log.Info("cookies rejected", "visitor", visitor)
	return s.Get(ctx, visitor)
}

// SavePreferences stores a custom choice with the individual category flags.
func (s *ConsentService) SavePreferences(ctx context.Context, visitor string, analytics, marketing bool) (core.ConsentState, error) {
	if err := s.write(ctx, visitor, cookieConsentKey, string(core.ConsentCustom)); err != nil {
		return core.ConsentState{}, err
	}
	if err := s.write(ctx, visitor, analyticsCookiesKey, strconv.FormatBool(analytics)); err != nil {
		return core.ConsentState{}, err
	}
	if err := s.write(ctx, visitor, marketingCookiesKey, strconv.FormatBool(marketing)); err != nil {
		return core.ConsentState{}, err
	}
	s.log.Info("cookie preferences saved", "visitor", visitor, "analytics", analytics, "marketing", marketing)
	return s.Get(ctx, visitor)
}

// Clear forgets every consent flag for the visitor.
func (s *ConsentService) Clear(ctx context.Context, visitor string) error {
	err := s.store.Delete(ctx,
		consentKey(visitor, cookieConsentKey),
		consentKey(visitor, analyticsCookiesKey),
		consentKey(visitor, marketingCookiesKey),
	)
	if err != nil {
		return fmt.Errorf("failed to clear consent: %w", err)
	}
	return nil
}

func (s *ConsentService) read(ctx context.Context, visitor, name string) (string, error) {
	val, err := s.store.Get(ctx, consentKey(visitor, name))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read consent: %w", err)
	}
	return val, nil
}

func (s *ConsentService) readFlag(ctx context.Context, visitor, name string) (bool, error) {
	val, err := s.read(ctx, visitor, name)
	if err != nil {
		return false, err
	}
	flag, _ := strconv.ParseBool(val)
	return flag, nil
}

func (s *ConsentService) write(ctx context.Context, visitor, name, value string) error {
	if err := s.store.Set(ctx, consentKey(visitor, name), value); err != nil {
		return fmt.Errorf("failed to write consent: %w", err)
	}
	return nil
}
