package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pairandomizer-backend/models"
	"pairandomizer-backend/storage"
)

func newTestGenerateService(t *testing.T, fetcher Fetcher, load bool) (*GenerateService, *CatalogService, *StateService) {
	t.Helper()
	catalog := NewCatalogService(fetcher, zap.NewNop())
	if load {
		_, err := catalog.Load(context.Background())
		require.NoError(t, err)
	}
	state := NewStateService(storage.NewMemStore(), zap.NewNop())
	generate := NewGenerateService(catalog, state, func() Rand { return testRand() }, zap.NewNop())
	return generate, catalog, state
}

func TestGenerateService_Generate(t *testing.T) {
	t.Run("unloaded catalog", func(t *testing.T) {
		generate, _, _ := newTestGenerateService(t, newFakeFetcher(false), false)
		_, err := generate.Generate("en-US")
		assert.ErrorIs(t, err, ErrCatalogUnavailable)
	})

	t.Run("pinned scenario renders pairings", func(t *testing.T) {
		generate, _, state := newTestGenerateService(t, newFakeFetcher(true), true)
		state.SetNames([]string{"Alice", "Bob", "Carol", "Dave", "Eve"})
		state.SetScenarioIndex(intPtr(1))

		result, err := generate.Generate("en-US")
		require.NoError(t, err)
		assert.Equal(t, "Two", result.Scenario)
		assert.Equal(t, "two", result.Scene)
		assert.Equal(t, "Two - two", result.Title)
		require.Len(t, result.Pairings, 2)
		for _, p := range result.Pairings {
			assert.Equal(t, p.Names[0]+" and "+p.Names[1], p.Text)
		}
	})

	t.Run("locale filter applies without a pin", func(t *testing.T) {
		generate, _, state := newTestGenerateService(t, newFakeFetcher(true), true)
		state.SetNames([]string{"A", "B"})
		for i := 0; i < 20; i++ {
			result, err := generate.Generate("fr-FR")
			require.NoError(t, err)
			assert.Equal(t, "Two", result.Scenario)
		}
	})

	t.Run("empty template list blocks generate", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.scenarios["one.json"] = &models.Scenario{Scenes: []models.Scene{{Name: "broken", Messages: []string{}}}}
		generate, catalog, state := newTestGenerateService(t, fetcher, true)
		state.SetNames([]string{"A", "B"})
		state.SetScenarioIndex(intPtr(0))

		_, err := generate.Generate("en")
		var emptyErr *EmptyChoiceError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, "message", emptyErr.Choice)
		assert.False(t, catalog.Status().GenerateEnabled)

		// A pin to a healthy scenario does not help until the catalog is reloaded
		state.SetScenarioIndex(intPtr(1))
		_, err = generate.Generate("en")
		assert.ErrorIs(t, err, ErrGenerateDisabled)

		fetcher.scenarios["one.json"] = &models.Scenario{Scenes: []models.Scene{{Name: "fixed", Messages: []string{"%1$s+%2$s"}}}}
		_, err = catalog.Load(context.Background())
		require.NoError(t, err)
		_, err = generate.Generate("en")
		assert.NoError(t, err)
	})

	t.Run("malformed data from a replaced catalog does not block the new one", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.scenarios["one.json"] = &models.Scenario{Scenes: []models.Scene{{Name: "broken", Messages: []string{}}}}
		catalog := NewCatalogService(fetcher, zap.NewNop())
		_, err := catalog.Load(context.Background())
		require.NoError(t, err)
		state := NewStateService(storage.NewMemStore(), zap.NewNop())
		state.SetNames([]string{"A", "B"})
		state.SetScenarioIndex(intPtr(0))

		// The reload lands after Generate has taken its snapshot
		generate := NewGenerateService(catalog, state, func() Rand {
			fetcher.scenarios["one.json"] = &models.Scenario{Scenes: []models.Scene{{Name: "fixed", Messages: []string{"%1$s+%2$s"}}}}
			_, err := catalog.Load(context.Background())
			require.NoError(t, err)
			return testRand()
		}, zap.NewNop())

		_, err = generate.Generate("en")
		var emptyErr *EmptyChoiceError
		require.ErrorAs(t, err, &emptyErr)

		status := catalog.Status()
		assert.True(t, status.GenerateEnabled)
		assert.Empty(t, status.Error)
	})

	t.Run("scenario without scenes blocks generate", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.scenarios["three.json"] = &models.Scenario{Scenes: []models.Scene{}}
		generate, catalog, state := newTestGenerateService(t, fetcher, true)
		state.SetScenarioIndex(intPtr(2))

		_, err := generate.Generate("en")
		var emptyErr *EmptyChoiceError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, "scene", emptyErr.Choice)
		assert.Contains(t, catalog.Status().Error, "no scene")
	})
}
