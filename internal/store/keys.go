package store

import "fmt"

// EntityKind identifies which half of the dataset an entity belongs to.
type EntityKind string

const (
	Character EntityKind = "character"
	Location  EntityKind = "location"
)

// ArtifactKind identifies a generated text artifact for an entity.
type ArtifactKind string

const (
	KindDescription ArtifactKind = "description"
	KindInsights    ArtifactKind = "insights"
	KindEvaluation  ArtifactKind = "evaluation"
)

// ArtifactKey builds the cache key for a generated artifact, e.g.
// "character_description_1". Key shapes match the original browser cache so
// existing persisted data stays readable.
func ArtifactKey(entity EntityKind, id string, kind ArtifactKind) string {
	return fmt.Sprintf("%s_%s_%s", entity, kind, id)
}

// NotesKey builds the key for an entity's note ledger, e.g. "character_notes_1".
func NotesKey(entity EntityKind, id string) string {
	return fmt.Sprintf("%s_notes_%s", entity, id)
}

// ScoreKey builds the key for a location's saved user score, e.g. "location_score_3".
func ScoreKey(id string) string {
	return fmt.Sprintf("%s_score_%s", Location, id)
}
