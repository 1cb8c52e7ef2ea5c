package annotation

import (
	"context"
	"errors"
)

// Validation failures for the compatibility selector. The messages are
// user-facing inline copy.
var (
	ErrMissingSelection = errors.New("please select both characters and a location")
	ErrSameCharacter    = errors.New("please select two different characters")
)

// GenerateCompatibility validates the selection and asks the collaborator
// for a compatibility analysis. Validation failures abort before any network
// call; generation results are not cached.
func GenerateCompatibility(ctx context.Context, gen Generator, character1ID, character2ID, locationID string) (*CompatibilityAnalysis, error) {
	if character1ID == "" || character2ID == "" || locationID == "" {
		return nil, ErrMissingSelection
	}
	if character1ID == character2ID {
		return nil, ErrSameCharacter
	}
	return gen.Compatibility(ctx, character1ID, character2ID, locationID)
}
