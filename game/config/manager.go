package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/path-of-faith/game/engine"
	"github.com/wricardo/path-of-faith/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
	ErrNoContentDir   = errors.New("no content directory configured")
)

// DefaultConfigID names the built-in classic pack.
const DefaultConfigID = "classic"

var packExtensions = []string{".yaml", ".yml"}

//go:embed packs/*.yaml
var embeddedPacks embed.FS

// Manager handles content pack loading and caching. Built-in packs are always
// available; packs in the content directory shadow built-ins of the same ID.
type Manager struct {
	contentDir string
	builtins   map[string]*engine.Content
	configs    map[string]*engine.Content
	defaultID  string
	logger     *zap.Logger
	mu         sync.RWMutex
}

// NewManager creates a new configuration manager. An empty contentDir serves
// the built-in packs only.
func NewManager(contentDir string, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if contentDir != "" {
		info, err := os.Stat(contentDir)
		if err != nil {
			return nil, fmt.Errorf("content directory %s: %w", contentDir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("content directory %s is not a directory", contentDir)
		}
	}

	builtins, err := loadBuiltins()
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in packs: %w", err)
	}

	return &Manager{
		contentDir: contentDir,
		builtins:   builtins,
		configs:    make(map[string]*engine.Content),
		defaultID:  DefaultConfigID,
		logger:     logger,
	}, nil
}

func loadBuiltins() (map[string]*engine.Content, error) {
	builtins := map[string]*engine.Content{
		DefaultConfigID: engine.DefaultContent(),
	}
	entries, err := fs.ReadDir(embeddedPacks, "packs")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		id, ok := packID(entry.Name())
		if !ok {
			continue
		}
		data, err := embeddedPacks.ReadFile(path.Join("packs", entry.Name()))
		if err != nil {
			return nil, err
		}
		content, err := Parse(data, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		builtins[id] = content
	}
	return builtins, nil
}

// Parse decodes and validates a YAML content pack. Omitted settings take the
// classic defaults and an omitted name becomes fallbackName. Unknown keys are
// rejected.
func Parse(data []byte, fallbackName string) (*engine.Content, error) {
	content := engine.Content{
		QuestionStyle: engine.MultipleChoice,
		AdvancePolicy: engine.AdvanceImmediate,
		StartingFaith: engine.DefaultStartingFaith,
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&content); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if content.Name == "" {
		content.Name = fallbackName
	}
	if len(content.Palette) == 0 {
		content.Palette = slices.Clone(engine.DefaultPalette)
	}
	if err := engine.ValidateContent(&content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &content, nil
}

// ParseFile reads and parses a content pack file. The file's base name is
// the fallback pack name.
func ParseFile(filename string) (*engine.Content, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	id, ok := packID(filepath.Base(filename))
	if !ok {
		id = filepath.Base(filename)
	}
	return Parse(data, id)
}

// LoadConfig loads a content pack by ID
func (m *Manager) LoadConfig(name string) (*engine.Content, error) {
	id, ok := normalizeID(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	// Check cache first
	if content, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return content, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if content, exists := m.configs[id]; exists {
		return content, nil
	}

	if filename, found := m.findPackFile(id); found {
		content, err := ParseFile(filename)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", id, err)
		}
		m.configs[id] = content
		m.logger.Debug("content pack loaded", zap.String("config", id), zap.String("file", filename))
		return content, nil
	}

	if content, exists := m.builtins[id]; exists {
		return content, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
}

// ListConfigs returns information about all available content packs, sorted
// by ID. Invalid pack files are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	infos := make(map[string]*service.ConfigInfo)
	for id, content := range m.builtins {
		info := describe(id, content)
		info.Builtin = true
		infos[id] = info
	}

	if m.contentDir != "" {
		entries, err := os.ReadDir(m.contentDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read content directory: %w", err)
		}
		for _, entry := range entries {
			id, ok := packID(entry.Name())
			if entry.IsDir() || !ok {
				continue
			}
			content, err := m.LoadConfig(id)
			if err != nil {
				m.logger.Warn("skipping invalid content pack", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}
			info := describe(id, content)
			info.Filename = entry.Name()
			infos[id] = info
		}
	}

	result := make([]*service.ConfigInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	slices.SortFunc(result, func(a, b *service.ConfigInfo) int {
		return strings.Compare(a.ConfigID, b.ConfigID)
	})
	return result, nil
}

// GetDefault returns the default pack and its ID. If the default cannot be
// loaded any more, the built-in classic pack is returned.
func (m *Manager) GetDefault() (string, *engine.Content) {
	m.mu.RLock()
	id := m.defaultID
	m.mu.RUnlock()

	content, err := m.LoadConfig(id)
	if err != nil {
		m.logger.Warn("default pack unavailable, using classic", zap.String("config", id), zap.Error(err))
		return DefaultConfigID, m.builtins[DefaultConfigID]
	}
	return id, content
}

// SetDefault sets the default pack by ID
func (m *Manager) SetDefault(name string) error {
	if _, err := m.LoadConfig(name); err != nil {
		return err
	}
	id, _ := normalizeID(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultID = id
	return nil
}

// RefreshCache drops every cached pack so files are re-read on next use
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs = make(map[string]*engine.Content)
}

// SaveConfig validates a pack and writes it to the content directory as YAML
func (m *Manager) SaveConfig(name string, content *engine.Content) error {
	if m.contentDir == "" {
		return ErrNoContentDir
	}
	id, ok := normalizeID(name)
	if !ok {
		return fmt.Errorf("%w: invalid pack id %q", ErrInvalidConfig, name)
	}
	if err := engine.ValidateContent(content); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := yaml.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal pack: %w", err)
	}

	filename := filepath.Join(m.contentDir, id+packExtensions[0])
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write pack file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = content
	m.mu.Unlock()

	m.logger.Info("content pack saved", zap.String("config", id), zap.String("file", filename))
	return nil
}

// findPackFile looks for <id>.yaml or <id>.yml in the content directory.
func (m *Manager) findPackFile(id string) (string, bool) {
	if m.contentDir == "" {
		return "", false
	}
	for _, ext := range packExtensions {
		filename := filepath.Join(m.contentDir, id+ext)
		if info, err := os.Stat(filename); err == nil && !info.IsDir() {
			return filename, true
		}
	}
	return "", false
}

func describe(id string, content *engine.Content) *service.ConfigInfo {
	return &service.ConfigInfo{
		ConfigID:      id,
		Name:          content.Name,
		Description:   content.Description,
		QuestionStyle: content.QuestionStyle,
		AdvancePolicy: content.AdvancePolicy,
		StartingFaith: content.StartingFaith,
		Questions:     len(content.Questions),
	}
}

// packID strips a recognized pack extension from a file name.
func packID(filename string) (string, bool) {
	for _, ext := range packExtensions {
		if strings.HasSuffix(filename, ext) {
			return strings.TrimSuffix(filename, ext), true
		}
	}
	return "", false
}

// normalizeID accepts "heritage" or "heritage.yaml" and rejects anything that
// could escape the content directory.
func normalizeID(name string) (string, bool) {
	id := strings.TrimSpace(name)
	if stripped, ok := packID(id); ok {
		id = stripped
	}
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", false
	}
	return id, true
}
