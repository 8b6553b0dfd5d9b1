package services

import (
	"fmt"
	"math/rand/v2"

	"pairandomizer-backend/models"
)

// Rand is the randomness source used by the selectors and the pairing engine.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a freshly seeded generator for a single generate action
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// EmptyChoiceError reports a uniform pick from an empty candidate set,
// which only happens with malformed catalog data.
type EmptyChoiceError struct {
	Choice string // "scenario", "scene" or "message"
}

func (e *EmptyChoiceError) Error() string {
	return fmt.Sprintf("no %s to choose from", e.Choice)
}

// validPosition resolves a pinned position against a list length.
// Out of range and negative positions count as unset.
func validPosition(pos *int, length int) (int, bool) {
	if pos == nil || *pos < 0 || *pos >= length {
		return 0, false
	}
	return *pos, true
}

// PickScenario selects the scenario for a generate action.
//
// A valid pinned scenario index wins unconditionally. Otherwise, with
// IgnoreLanguage set the pick is uniform over the whole catalog. Without it the
// pick is uniform over scenarios tagged with the primary language of userLocale,
// and over the whole catalog when no scenario matches.
func PickScenario(catalog *models.LoadedCatalog, settings models.Settings, userLocale string, rng Rand) (*models.LoadedScenario, error) {
	all := catalog.Scenarios
	if idx, ok := validPosition(settings.ScenarioIndex, len(all)); ok {
		return &all[idx], nil
	}
	if len(all) == 0 {
		return nil, &EmptyChoiceError{Choice: "scenario"}
	}
	if settings.IgnoreLanguage {
		return &all[rng.IntN(len(all))], nil
	}

	lang := PrimaryLanguage(userLocale)
	var native []int
	for i := range all {
		if all[i].Meta.Lang != nil && *all[i].Meta.Lang == lang {
			native = append(native, i)
		}
	}
	if len(native) == 0 {
		return &all[rng.IntN(len(all))], nil
	}
	return &all[native[rng.IntN(len(native))]], nil
}

// PickScene selects a scene of the already selected scenario. The pinned scene
// index is only checked against this scenario's scene count.
func PickScene(scenario *models.Scenario, settings models.Settings, rng Rand) (*models.Scene, error) {
	if idx, ok := validPosition(settings.SceneIndex, len(scenario.Scenes)); ok {
		return &scenario.Scenes[idx], nil
	}
	if len(scenario.Scenes) == 0 {
		return nil, &EmptyChoiceError{Choice: "scene"}
	}
	return &scenario.Scenes[rng.IntN(len(scenario.Scenes))], nil
}
