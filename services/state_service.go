package services

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"pairandomizer-backend/models"
	"pairandomizer-backend/storage"
)

const (
	NamesKey    = "names"
	SettingsKey = "settings"
)

// StateService holds the user's names and settings and persists them on change
type StateService struct {
	store    storage.Store
	logger   *zap.Logger
	mutex    sync.RWMutex
	names    []string
	settings models.Settings
}

// NewStateService creates a state service, restoring names and settings from the store
func NewStateService(store storage.Store, logger *zap.Logger) *StateService {
	service := &StateService{
		store:  store,
		logger: logger,
		names:  []string{},
	}

	var names []string
	if service.load(NamesKey, &names) {
		service.names = NormalizeNames(names)
	}
	var settings models.Settings
	if service.load(SettingsKey, &settings) {
		service.settings = settings
	}
	return service
}

// load reads a JSON value from the store and reports whether it succeeded.
// Misses and parse errors leave the default in place.
func (s *StateService) load(key string, v interface{}) bool {
	data, err := s.store.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("No stored value, using default", zap.String("key", key))
		return false
	}
	if err != nil {
		s.logger.Warn("Error reading from store, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("Error parsing stored value, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// save writes a JSON value to the store. Failures are logged; memory stays authoritative.
func (s *StateService) save(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err == nil {
		err = s.store.Set(key, data)
	}
	if err != nil {
		s.logger.Error("Failed to save state", zap.String("key", key), zap.Error(err))
		return
	}
	s.logger.Debug("State saved", zap.String("key", key))
}

// Names returns a copy of the current name list
func (s *StateService) Names() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Settings returns the current settings
func (s *StateService) Settings() models.Settings {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return cloneSettings(s.settings)
}

// SetNames replaces the name list and returns the normalized result
func (s *StateService) SetNames(names []string) []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.names = NormalizeNames(names)
	s.save(NamesKey, s.names)

	result := make([]string, len(s.names))
	copy(result, s.names)
	return result
}

// SetNamesText replaces the name list from newline separated text
func (s *StateService) SetNamesText(text string) []string {
	return s.SetNames(strings.Split(text, "\n"))
}

// SetSettings replaces all settings
func (s *StateService) SetSettings(settings models.Settings) models.Settings {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.settings = cloneSettings(settings)
	s.save(SettingsKey, s.settings)
	return cloneSettings(s.settings)
}

// SetIgnoreLanguage toggles the locale filter
func (s *StateService) SetIgnoreLanguage(ignore bool) models.Settings {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.settings.IgnoreLanguage = ignore
	s.save(SettingsKey, s.settings)
	return cloneSettings(s.settings)
}

// SetScenarioIndex pins or unpins a scenario. Changing the scenario clears the
// pinned scene.
func (s *StateService) SetScenarioIndex(index *int) models.Settings {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if equalIndex(s.settings.ScenarioIndex, index) {
		return cloneSettings(s.settings)
	}
	s.settings.ScenarioIndex = copyIndex(index)
	s.settings.SceneIndex = nil
	s.save(SettingsKey, s.settings)
	return cloneSettings(s.settings)
}

// SetSceneIndex pins or unpins a scene
func (s *StateService) SetSceneIndex(index *int) models.Settings {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.settings.SceneIndex = copyIndex(index)
	s.save(SettingsKey, s.settings)
	return cloneSettings(s.settings)
}

// NormalizeNames trims names and drops empty entries and duplicates, keeping
// the first occurrence.
func NormalizeNames(names []string) []string {
	result := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

func copyIndex(index *int) *int {
	if index == nil {
		return nil
	}
	v := *index
	return &v
}

func equalIndex(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneSettings(settings models.Settings) models.Settings {
	return models.Settings{
		IgnoreLanguage: settings.IgnoreLanguage,
		ScenarioIndex:  copyIndex(settings.ScenarioIndex),
		SceneIndex:     copyIndex(settings.SceneIndex),
	}
}
