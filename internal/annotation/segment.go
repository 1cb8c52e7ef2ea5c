package annotation

import (
	"regexp"
	"strings"
)

// itemBoundary splits on newlines, sentence ends, bullets and numbered list
// markers.
var itemBoundary = regexp.MustCompile(`\n|\.\s+|•\s+|-\s+|\d+\.\s+`)

// connective matches bare filler words left behind by the boundary split.
var connective = regexp.MustCompile(`^(?i:and|or|but|however|therefore|thus|so|also|furthermore|moreover|in addition|additionally)$`)

// SegmentText turns a generated free-text block into display line items.
// Best effort, not lossless: sentences, bullets and numbered items become
// one entry each; if that yields fewer than two items the text is re-split
// on commas and semicolons, keeping only fragments long enough to stand
// alone.
func SegmentText(text string) []string {
	items := make([]string, 0)
	for _, part := range itemBoundary.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" || connective.MatchString(part) {
			continue
		}
		items = append(items, part)
	}

	if len(items) < 2 {
		commaSplit := make([]string, 0)
		for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' }) {
			part = strings.TrimSpace(part)
			if len(part) > 10 {
				commaSplit = append(commaSplit, part)
			}
		}
		if len(commaSplit) > 1 {
			return commaSplit
		}
	}

	return items
}
