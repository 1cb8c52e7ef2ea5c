// Package annotation fetches server-generated text artifacts for an entity
// and caches them through the persistent store. Artifacts are immutable once
// fetched for a given (entity, kind); a cache hit never re-fetches within a
// session.
package annotation

// CompatibilityAnalysis is the three-block result of a cross-character
// compatibility generation. Each block is free text, segmented into line
// items for display with SegmentText.
type CompatibilityAnalysis struct {
	TeamWork    string `json:"teamWork"`
	Conflicts   string `json:"conflicts"`
	BreaksFirst string `json:"breaksFirst"`
}

// EvaluationChecks is the boolean breakdown of a location description
// evaluation.
type EvaluationChecks struct {
	NameMentioned      bool `json:"nameMentioned"`
	TypeMentioned      bool `json:"typeMentioned"`
	DimensionMentioned bool `json:"dimensionMentioned"`
}

// LocationData carries the location facts the evaluator checked against.
type LocationData struct {
	Type      string `json:"type"`
	Dimension string `json:"dimension"`
}

// LocationEvaluation scores a generated location description on a 0-10 scale.
type LocationEvaluation struct {
	AutoScore    int              `json:"autoScore"`
	Checks       EvaluationChecks `json:"checks"`
	LocationData LocationData     `json:"locationData"`
	Explanation  string           `json:"explanation,omitempty"`
}

// SearchResult is one entry returned by the remote search lookup.
type SearchResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // "character" | "location"
	Distance float64 `json:"distance"`
}
