package services

import (
	"strings"

	"pairandomizer-backend/models"
)

// Placeholders a message template uses for the two paired names
const (
	FirstNamePlaceholder  = "%1$s"
	SecondNamePlaceholder = "%2$s"
)

// Randomize shuffles the names, pairs them up in order and draws one template
// per pair. An odd leftover name is dropped.
func Randomize(scene *models.Scene, names []string, rng Rand) ([]models.RandomizedMessage, error) {
	if len(scene.Messages) == 0 {
		return nil, &EmptyChoiceError{Choice: "message"}
	}

	shuffled := make([]string, len(names))
	copy(shuffled, names)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	result := make([]models.RandomizedMessage, 0, len(shuffled)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		result = append(result, models.RandomizedMessage{
			Message: scene.Messages[rng.IntN(len(scene.Messages))],
			Names:   [2]string{shuffled[i], shuffled[i+1]},
		})
	}
	return result, nil
}

// Render substitutes both placeholders in a single pass, so a name that
// happens to contain a placeholder token is left alone.
func Render(msg models.RandomizedMessage) string {
	r := strings.NewReplacer(
		FirstNamePlaceholder, msg.Names[0],
		SecondNamePlaceholder, msg.Names[1],
	)
	return r.Replace(msg.Message)
}
