package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exaura_site/internal/core"
	"exaura_site/internal/logger"
	"exaura_site/internal/storage"
)

func TestConsentService_Lifecycle(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewConsentService(store, logger.Discard())
	ctx := context.Background()
	visitor := "visitor-1"

	state, err := svc.Get(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, core.ConsentState{ShowBanner: true}, state)

	state, err = svc.Accept(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, core.ConsentState{Choice: core.ConsentAccepted, Analytics: true, Marketing: true}, state)

	state, err = svc.Reject(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, core.ConsentState{Choice: core.ConsentRejected}, state)

	state, err = svc.SavePreferences(ctx, visitor, true, false)
	require.NoError(t, err)
	assert.Equal(t, core.ConsentState{Choice: core.ConsentCustom, Analytics: true}, state)

	val, err := store.Get(ctx, "consent:visitor-1:analyticsCookies")
	require.NoError(t, err)
	assert.Equal(t, "true", val)
	val, err = store.Get(ctx, "consent:visitor-1:marketingCookies")
	require.NoError(t, err)
	assert.Equal(t, "false", val)

	require.NoError(t, svc.Clear(ctx, visitor))
	state, err = svc.Get(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, state.ShowBanner)
	_, err = store.Get(ctx, "consent:visitor-1:analyticsCookies")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestConsentService_VisitorsAreIsolated(t *testing.T) {
	svc := NewConsentService(storage.NewMemoryStore(), logger.Discard())
	ctx := context.Background()

	_, err := svc.Accept(ctx, "a")
	require.NoError(t, err)

	state, err := svc.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, state.ShowBanner)
}
