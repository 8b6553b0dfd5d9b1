package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pairandomizer-backend/models"
)

// GenerateService runs the scenario, scene and pairing selection for a generate action
type GenerateService struct {
	catalog *CatalogService
	state   *StateService
	newRand func() Rand
	logger  *zap.Logger
}

// NewGenerateService creates a generate service. newRand may be nil.
func NewGenerateService(catalog *CatalogService, state *StateService, newRand func() Rand, logger *zap.Logger) *GenerateService {
	if newRand == nil {
		newRand = func() Rand { return NewRand() }
	}
	return &GenerateService{
		catalog: catalog,
		state:   state,
		newRand: newRand,
		logger:  logger,
	}
}

// Generate produces a randomized pairing for the current names and settings
func (s *GenerateService) Generate(locale string) (*models.GenerateResult, error) {
	catalog, err := s.catalog.Snapshot()
	if err != nil {
		generationsTotal.WithLabelValues("unavailable").Inc()
		return nil, err
	}
	settings := s.state.Settings()
	names := s.state.Names()
	rng := s.newRand()

	result, err := s.generate(catalog, settings, names, locale, rng)
	if err != nil {
		var emptyErr *EmptyChoiceError
		if errors.As(err, &emptyErr) {
			s.catalog.Block(catalog, err)
			generationsTotal.WithLabelValues("empty_choice").Inc()
		} else {
			generationsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	generationsTotal.WithLabelValues("success").Inc()
	pairingsTotal.Add(float64(len(result.Pairings)))
	s.logger.Info("Generated pairings",
		zap.String("scenario", result.Scenario),
		zap.String("scene", result.Scene),
		zap.Int("names", len(names)),
		zap.Int("pairings", len(result.Pairings)))
	return result, nil
}

func (s *GenerateService) generate(catalog *models.LoadedCatalog, settings models.Settings, names []string, locale string, rng Rand) (*models.GenerateResult, error) {
	picked, err := PickScenario(catalog, settings, locale, rng)
	if err != nil {
		return nil, fmt.Errorf("pick scenario: %w", err)
	}
	scene, err := PickScene(&picked.Scenario, settings, rng)
	if err != nil {
		return nil, fmt.Errorf("pick scene in %q: %w", picked.Meta.Name, err)
	}
	messages, err := Randomize(scene, names, rng)
	if err != nil {
		return nil, fmt.Errorf("randomize scene %q: %w", scene.Name, err)
	}

	pairings := make([]models.Pairing, 0, len(messages))
	for _, msg := range messages {
		pairings = append(pairings, models.Pairing{
			Text:  Render(msg),
			Names: msg.Names,
		})
	}
	return &models.GenerateResult{
		Scenario: picked.Meta.Name,
		Scene:    scene.Name,
		Title:    picked.Meta.Name + " - " + scene.Name,
		Pairings: pairings,
	}, nil
}
