package notes

// Available derives the displayable suggestion list from the raw insight
// list and the current notes: insight order is preserved, duplicate texts
// collapse to one entry, and any text already held as a suggestion-sourced
// note is excluded. User-sourced notes never affect the result.
func Available(insights []string, ledgerNotes []Note) []string {
	promoted := make(map[string]bool)
	for _, n := range ledgerNotes {
		if n.Source == SourceSuggestion {
			promoted[n.Content] = true
		}
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(insights))
	for _, item := range insights {
		if promoted[item] || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Reconciler binds one entity's ledger to its raw insight list. Suggestion
// visibility is always recomputed from the two; there is no add-back
// bookkeeping, which is what makes selection idempotent and deletion
// automatically restore a suggestion.
type Reconciler struct {
	ledger   *Ledger
	insights []string
}

// NewReconciler creates a reconciler over a ledger and the entity's raw
// insight list.
func NewReconciler(ledger *Ledger, insights []string) *Reconciler {
	return &Reconciler{ledger: ledger, insights: insights}
}

// SetInsights replaces the raw insight list (e.g. after a fetch completes).
func (r *Reconciler) SetInsights(insights []string) {
	r.insights = insights
}

// Available returns the suggestions still open for promotion.
func (r *Reconciler) Available() []string {
	return Available(r.insights, r.ledger.Notes())
}

// Select promotes a suggestion to a note. The suggestion disappears from
// Available on the next computation purely through the filter.
func (r *Reconciler) Select(text string) Note {
	return r.ledger.AddFromSuggestion(text)
}

// DeleteNote removes a note by id. If it was suggestion-sourced and no other
// note still carries its text, the suggestion reappears in Available without
// any explicit restore step.
func (r *Reconciler) DeleteNote(noteID string) *Note {
	return r.ledger.Delete(noteID)
}
