package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exaura_site/internal/logger"
	"exaura_site/internal/services"
	"exaura_site/internal/storage"
)

func TestSupportedLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "pt", "sv"}, supportedLanguages("en", []string{"pt", "en", "sv"}))
	assert.Equal(t, []string{"pt", "en"}, supportedLanguages("pt", []string{"en"}))
	assert.Equal(t, []string{"en"}, supportedLanguages("en", nil))
}

func TestRunTranslate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"hero": {"title": "Quit smoking"}}`), 0o644))
	translator := services.NewFileTranslationService(dir)
	require.NoError(t, translator.LoadTranslations())

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runTranslate(cmd, translator, "en", "hero.title"))
	assert.Equal(t, "Quit smoking\n", out.String())

	assert.Error(t, runTranslate(cmd, translator, "en", "hero.title.x"))
	assert.Error(t, runTranslate(cmd, translator, "fr", "hero.title"))
}

func TestRunContacts(t *testing.T) {
	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	svc := services.NewContactService(storage.NewContactRepository(db), nil, logger.Discard())

	_, err = svc.Submit(context.Background(), services.ContactRequest{Name: "Ana", Email: "ana@example.com", Message: "Olá", Language: "pt"})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), services.ContactRequest{
		Name:     "Bo",
		Email:    "bo@example.com",
		Message:  strings.Repeat("long message ", 10),
		Language: "sv",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	require.NoError(t, runContacts(cmd, svc, 1))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "EMAIL")
	assert.Contains(t, lines[1], "bo@example.com")
	assert.Contains(t, lines[1], "...")

	out.Reset()
	require.NoError(t, runContacts(cmd, svc, 0))
	assert.Contains(t, out.String(), "ana@example.com")
	assert.Contains(t, out.String(), "Olá")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short text", preview("short\n  text", 40))
	assert.Equal(t, "abcd...", preview("abcdefghij", 7))
}
