package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"pairandomizer-backend/models"
)

// LoadState is the lifecycle state of the catalog
type LoadState string

const (
	StateUnloaded LoadState = "unloaded"
	StateLoading  LoadState = "loading"
	StateLoaded   LoadState = "loaded"
	StateFailed   LoadState = "failed"
)

var (
	// ErrCatalogUnavailable is returned when no successfully loaded catalog exists
	ErrCatalogUnavailable = errors.New("catalog is not loaded")
	// ErrGenerateDisabled is returned after malformed catalog data was detected
	ErrGenerateDisabled = errors.New("generate is disabled until the catalog is reloaded")
	// ErrLoadInProgress is returned by StartLoad while a load is running
	ErrLoadInProgress = errors.New("catalog load already in progress")
)

// Fetcher is the remote side of catalog loading
type Fetcher interface {
	FetchIndex(ctx context.Context) (*models.Index, error)
	FetchScenario(ctx context.Context, filename string) (*models.Scenario, error)
}

// LoadCatalog fetches the index and then every scenario it lists, one at a
// time and in order, followed by the beta scenario. Any failure fails the
// whole load.
func LoadCatalog(ctx context.Context, fetcher Fetcher) (*models.LoadedCatalog, error) {
	index, err := fetcher.FetchIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index: %w", err)
	}

	metas := make([]models.ScenarioMeta, 0, len(index.Scenarios)+1)
	metas = append(metas, index.Scenarios...)
	if index.Beta != nil {
		metas = append(metas, *index.Beta)
	}

	scenarios := make([]models.LoadedScenario, 0, len(metas))
	for _, meta := range metas {
		scenario, err := fetcher.FetchScenario(ctx, meta.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch scenario %q: %w", meta.Filename, err)
		}
		scenarios = append(scenarios, models.LoadedScenario{Meta: meta, Scenario: *scenario})
	}

	return &models.LoadedCatalog{
		Index:     *index,
		Scenarios: scenarios,
	}, nil
}

// CatalogService holds the session's catalog and its load state
type CatalogService struct {
	fetcher Fetcher
	logger  *zap.Logger
	group   singleflight.Group

	mutex   sync.RWMutex
	state   LoadState
	catalog *models.LoadedCatalog
	loadErr error
	blocked error
}

// NewCatalogService creates a catalog service in the unloaded state
func NewCatalogService(fetcher Fetcher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		fetcher: fetcher,
		logger:  logger,
		state:   StateUnloaded,
	}
}

// Load runs a catalog load. Concurrent callers share the same in-flight load.
func (s *CatalogService) Load(ctx context.Context) (*models.LoadedCatalog, error) {
	v, err, shared := s.group.Do("catalog", func() (interface{}, error) {
		s.setLoading()
		return s.load(ctx)
	})
	if shared {
		s.logger.Debug("Joined in-flight catalog load")
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.LoadedCatalog), nil
}

// StartLoad begins a load in the background. It is rejected while another
// load is running.
func (s *CatalogService) StartLoad(ctx context.Context) error {
	s.mutex.Lock()
	if s.state == StateLoading {
		s.mutex.Unlock()
		return ErrLoadInProgress
	}
	s.state = StateLoading
	s.mutex.Unlock()

	go func() {
		_, _ = s.Load(ctx)
	}()
	return nil
}

func (s *CatalogService) setLoading() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = StateLoading
}

func (s *CatalogService) load(ctx context.Context) (*models.LoadedCatalog, error) {
	s.logger.Info("Loading catalog")

	catalog, err := LoadCatalog(ctx, s.fetcher)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err != nil {
		s.state = StateFailed
		s.catalog = nil
		s.loadErr = err
		catalogLoadsTotal.WithLabelValues("failure").Inc()
		catalogScenariosLoaded.Set(0)
		s.logger.Error("Catalog load failed", zap.Error(err))
		return nil, err
	}

	s.state = StateLoaded
	s.catalog = catalog
	s.loadErr = nil
	s.blocked = nil
	catalogLoadsTotal.WithLabelValues("success").Inc()
	catalogScenariosLoaded.Set(float64(len(catalog.Scenarios)))
	s.logger.Info("Catalog loaded",
		zap.String("server", catalog.Index.ServerName),
		zap.Int("scenarios", len(catalog.Scenarios)))
	return catalog, nil
}

// Catalog returns the loaded catalog regardless of whether generation is blocked
func (s *CatalogService) Catalog() (*models.LoadedCatalog, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.state != StateLoaded || s.catalog == nil {
		return nil, ErrCatalogUnavailable
	}
	return s.catalog, nil
}

// Snapshot returns the catalog for a generate action
func (s *CatalogService) Snapshot() (*models.LoadedCatalog, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.state != StateLoaded || s.catalog == nil {
		return nil, ErrCatalogUnavailable
	}
	if s.blocked != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateDisabled, s.blocked)
	}
	return s.catalog, nil
}

// Block disables generation until the next successful load. It only applies
// while catalog is still the current one; a catalog installed by a later load
// stays enabled.
func (s *CatalogService) Block(catalog *models.LoadedCatalog, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.catalog != catalog {
		s.logger.Debug("Ignoring malformed data from a replaced catalog", zap.Error(err))
		return
	}
	s.logger.Warn("Disabling generate after malformed catalog data", zap.Error(err))
	s.blocked = err
}

// State returns the current load state
func (s *CatalogService) State() LoadState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

// Status summarizes the load state for clients
func (s *CatalogService) Status() models.CatalogStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	status := models.CatalogStatus{
		State:           string(s.state),
		GenerateEnabled: s.state == StateLoaded && s.catalog != nil && s.blocked == nil,
	}
	if s.catalog != nil {
		status.ServerName = s.catalog.Index.ServerName
		status.Comment = s.catalog.Index.Comment
		status.ScenarioCount = len(s.catalog.Scenarios)
	}
	switch {
	case s.loadErr != nil:
		status.Error = s.loadErr.Error()
	case s.blocked != nil:
		status.Error = s.blocked.Error()
	}
	return status
}

// Describe lists the catalog's scenarios and their scene names in position order
func Describe(catalog *models.LoadedCatalog) models.CatalogResponse {
	options := make([]models.ScenarioOption, 0, len(catalog.Scenarios))
	for i, entry := range catalog.Scenarios {
		scenes := make([]string, 0, len(entry.Scenario.Scenes))
		for _, scene := range entry.Scenario.Scenes {
			scenes = append(scenes, scene.Name)
		}
		option := models.ScenarioOption{
			Index:  i,
			Name:   entry.Meta.Name,
			Beta:   catalog.Index.Beta != nil && i == len(catalog.Scenarios)-1,
			Scenes: scenes,
		}
		if entry.Meta.Lang != nil {
			option.Lang = *entry.Meta.Lang
		}
		options = append(options, option)
	}
	return models.CatalogResponse{
		ServerName: catalog.Index.ServerName,
		Comment:    catalog.Index.Comment,
		Scenarios:  options,
	}
}
