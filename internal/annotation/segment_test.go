package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentTextSplitsSentences(t *testing.T) {
	items := SegmentText("Rick is a genius. Morty is anxious. They travel dimensions.")
	assert.Equal(t, []string{"Rick is a genius", "Morty is anxious", "They travel dimensions."}, items)
}

func TestSegmentTextSplitsBulletsAndNumbers(t *testing.T) {
	items := SegmentText("• brilliant inventor\n• reckless grandfather\n1. drinks too much")
	assert.Equal(t, []string{"brilliant inventor", "reckless grandfather", "drinks too much"}, items)
}

func TestSegmentTextDropsBareConnectives(t *testing.T) {
	items := SegmentText("He builds portals. However. He breaks them too.")
	assert.NotContains(t, items, "However")
	assert.Contains(t, items, "He builds portals")
}

func TestSegmentTextFallsBackToCommaSplit(t *testing.T) {
	items := SegmentText("a chaotic genius with a portal gun, an anxious teenage sidekick, an infinite multiverse to ruin")
	assert.Equal(t, []string{
		"a chaotic genius with a portal gun",
		"an anxious teenage sidekick",
		"an infinite multiverse to ruin",
	}, items)
}

func TestSegmentTextCommaFallbackSkipsShortFragments(t *testing.T) {
	items := SegmentText("a chaotic genius with a portal gun, yes, an anxious teenage sidekick")
	assert.Equal(t, []string{
		"a chaotic genius with a portal gun",
		"an anxious teenage sidekick",
	}, items)
}

func TestSegmentTextEmptyInput(t *testing.T) {
	assert.Empty(t, SegmentText(""))
	assert.Empty(t, SegmentText("   \n  "))
}

func TestSegmentTextSingleItemStaysSingle(t *testing.T) {
	items := SegmentText("Just one trait")
	assert.Equal(t, []string{"Just one trait"}, items)
}
