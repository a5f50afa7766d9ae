package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"exaura_site/internal/core"
)

// ErrLanguageNotFound is returned when no table is loaded for a language.
var ErrLanguageNotFound = errors.New("translations not found for language")

const remoteFetchTimeout = 10 * time.Second

type FileTranslationService struct {
	localesDir string
	httpClient *http.Client
	cache      map[string]core.Translations
	mu         sync.RWMutex
}

func NewFileTranslationService(localesDir string) *FileTranslationService {
	return &FileTranslationService{
		localesDir: localesDir,
		httpClient: &http.Client{Timeout: remoteFetchTimeout},
		cache:      make(map[string]core.Translations),
	}
}

// LoadTranslations reads every <lang>.json, <lang>.yaml and <lang>.yml file
// in the locales directory.
func (s *FileTranslationService) LoadTranslations() error {
	files, err := os.ReadDir(s.localesDir)
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	loaded := make(map[string]core.Translations)
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		content, err := os.ReadFile(filepath.Join(s.localesDir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", file.Name(), err)
		}

		var translations core.Translations
		if ext == ".json" {
			translations, err = ParseJSON(content)
		} else {
			translations, err = ParseYAML(content)
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", file.Name(), err)
		}

		loaded[lang] = translations
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for lang, translations := range loaded {
		s.cache[lang] = translations
	}

	return nil
}

// LoadRemote fetches a JSON table for lang over HTTP. On any failure the
// language is registered with an empty table, so lookups report not found,
// and the error is returned for the caller to log once.
func (s *FileTranslationService) LoadRemote(ctx context.Context, lang, url string) error {
	translations, err := s.fetchRemote(ctx, url)
	if err != nil {
		translations = core.Translations{}
	}

	s.mu.Lock()
	s.cache[lang] = translations
	s.mu.Unlock()

	return err
}

func (s *FileTranslationService) fetchRemote(ctx context.Context, url string) (core.Translations, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	translations, err := ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return translations, nil
}

func (s *FileTranslationService) GetTranslations(lang string) (core.Translations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.cache[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotFound, lang)
	}
	return data, nil
}

func (s *FileTranslationService) Translate(lang, key string) (string, bool) {
	translations, err := s.GetTranslations(lang)
	if err != nil {
		return "", false
	}
	return translations.String(key)
}

func (s *FileTranslationService) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]string, 0, len(s.cache))
	for lang := range s.cache {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ParseJSON decodes a nested JSON object into a translation table.
func ParseJSON(data []byte) (core.Translations, error) {
	var translations core.Translations
	if err := json.Unmarshal(data, &translations); err != nil {
		return nil, err
	}
	if translations == nil {
		translations = core.Translations{}
	}
	return translations, nil
}

// ParseYAML decodes a nested YAML mapping into a translation table with the
// same shape JSON produces.
func ParseYAML(data []byte) (core.Translations, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	translations := core.Translations{}
	for k, v := range raw {
		translations[k] = normalizeYAML(v)
	}
	return translations, nil
}

func normalizeYAML(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, child := range node {
			out[k] = normalizeYAML(child)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(node))
		for i, child := range node {
			out[i] = normalizeYAML(child)
		}
		return out
	default:
		return v
	}
}
