package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairandomizer-backend/models"
)

func TestRandomize(t *testing.T) {
	scene := &models.Scene{
		Name:     "greetings",
		Messages: []string{"%1$s hugs %2$s", "%1$s waves at %2$s", "%2$s ignores %1$s"},
	}

	t.Run("four names make two disjoint pairs", func(t *testing.T) {
		rng := testRand()
		input := []string{"A", "B", "C", "D"}
		for i := 0; i < 50; i++ {
			result, err := Randomize(scene, input, rng)
			require.NoError(t, err)
			require.Len(t, result, 2)

			used := map[string]bool{}
			for _, msg := range result {
				assert.NotEqual(t, msg.Names[0], msg.Names[1])
				for _, name := range msg.Names {
					assert.Contains(t, input, name)
					assert.False(t, used[name], "name %s reused", name)
					used[name] = true
				}
				assert.Contains(t, scene.Messages, msg.Message)
			}
		}
		assert.Equal(t, []string{"A", "B", "C", "D"}, input, "input must not be reordered")
	})

	t.Run("odd leftover is dropped", func(t *testing.T) {
		result, err := Randomize(scene, []string{"A", "B", "C", "D", "E"}, testRand())
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("fewer than two names", func(t *testing.T) {
		for _, names := range [][]string{nil, {}, {"A"}} {
			result, err := Randomize(scene, names, testRand())
			require.NoError(t, err)
			assert.Empty(t, result)
		}
	})

	t.Run("shuffle varies pairing order", func(t *testing.T) {
		rng := testRand()
		firsts := map[string]bool{}
		for i := 0; i < 100; i++ {
			result, err := Randomize(scene, []string{"A", "B", "C", "D"}, rng)
			require.NoError(t, err)
			firsts[result[0].Names[0]] = true
		}
		assert.Len(t, firsts, 4)
	})

	t.Run("empty template list is an empty choice", func(t *testing.T) {
		_, err := Randomize(&models.Scene{Name: "broken", Messages: []string{}}, []string{"A", "B"}, testRand())
		var emptyErr *EmptyChoiceError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, "message", emptyErr.Choice)
	})
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		names    [2]string
		expected string
	}{
		{"basic", "%1$s hugs %2$s", [2]string{"Alice", "Bob"}, "Alice hugs Bob"},
		{"swapped order", "%2$s is chased by %1$s", [2]string{"Alice", "Bob"}, "Bob is chased by Alice"},
		{"repeated tokens", "%1$s, %1$s and %2$s", [2]string{"Al", "Bo"}, "Al, Al and Bo"},
		{"name containing a token", "%1$s hugs %2$s", [2]string{"%2$s", "Bob"}, "%2$s hugs Bob"},
		{"no tokens", "everyone dances", [2]string{"A", "B"}, "everyone dances"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(models.RandomizedMessage{Message: tt.message, Names: tt.names})
			assert.Equal(t, tt.expected, got)
		})
	}
}
