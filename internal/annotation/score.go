package annotation

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/schwiftylabs/goportal/internal/store"
)

// UserScore is the saved score for a location. It is written once, from the
// first successful evaluation, and never overwritten by later auto-scores.
type UserScore struct {
	Score              int                 `json:"score"`
	Timestamp          int64               `json:"timestamp"`
	EvaluationSnapshot *LocationEvaluation `json:"evaluationSnapshot"`
}

// LoadUserScore reads a location's saved score. Absent, corrupt or
// unreadable records report ok=false.
func LoadUserScore(s store.Storer, locationID string) (UserScore, bool) {
	key := store.ScoreKey(locationID)
	raw, ok, err := s.Get(key)
	if err != nil {
		log.Printf("[score] read failed for %s, treating as absent: %v", key, err)
		return UserScore{}, false
	}
	if !ok {
		return UserScore{}, false
	}

	var score UserScore
	if err := json.Unmarshal([]byte(raw), &score); err != nil {
		log.Printf("[score] corrupt record for %s, treating as absent: %v", key, err)
		return UserScore{}, false
	}
	return score, true
}

// SaveUserScoreIfAbsent persists eval's auto-score as the location's user
// score unless one is already on record. It returns the score now on record
// and whether this call wrote it. A write failure still returns the new
// score for in-session use.
func SaveUserScoreIfAbsent(s store.Storer, locationID string, eval *LocationEvaluation, now time.Time) (UserScore, bool, error) {
	if existing, ok := LoadUserScore(s, locationID); ok {
		return existing, false, nil
	}

	score := UserScore{
		Score:              eval.AutoScore,
		Timestamp:          now.UnixMilli(),
		EvaluationSnapshot: eval,
	}

	data, err := json.Marshal(score)
	if err != nil {
		return score, true, fmt.Errorf("failed to encode score: %w", err)
	}
	if err := s.Set(store.ScoreKey(locationID), string(data)); err != nil {
		return score, true, err
	}
	return score, true, nil
}
