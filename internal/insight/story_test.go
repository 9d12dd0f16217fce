package insight

import (
	"testing"
	"time"

	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestComposeChapterDeterministic(t *testing.T) {
	ins := model.EntryInsights{
		Sentiment: SentimentPositive,
		Themes:    []string{"perseverance"},
		Entities:  []string{"Maya"},
	}
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first := ComposeChapter(GenreMystery, "math homework", ins, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ComposeChapter(GenreMystery, "math homework", ins, now))
	}
}

func TestComposeChapterSubstitutesValues(t *testing.T) {
	ins := model.EntryInsights{
		Sentiment: SentimentNegative,
		Themes:    []string{"challenge", "growth"},
		Entities:  []string{"Mr. Alvarez"},
	}
	ch := ComposeChapter(GenreAdventure, "long division", ins, time.Now())

	assert.Equal(t, "adventure", ch.Genre)
	assert.Contains(t, ch.Title, "Long Division")
	assert.Contains(t, ch.Narrative, "long division")
	assert.Contains(t, ch.Narrative, "challenge")
	assert.Contains(t, ch.Narrative, "Mr.")
}

func TestComposeChapterUnknownGenreFallsBack(t *testing.T) {
	ch := ComposeChapter("western", "spelling", model.EntryInsights{Sentiment: SentimentNeutral}, time.Now())
	assert.Equal(t, DefaultGenre, ch.Genre)
	assert.NotEmpty(t, ch.Narrative)
}

func TestComposeChapterEmptyInsights(t *testing.T) {
	ch := ComposeChapter(GenreSciFi, "", model.EntryInsights{}, time.Now())
	assert.Contains(t, ch.Narrative, "the day's work")
	assert.Contains(t, ch.Narrative, "what comes next")
	// unknown sentiment falls back to the neutral closing
	assert.Contains(t, ch.Narrative, "coordinates saved")
}

func TestAllGenresHaveAllClosings(t *testing.T) {
	for genre, tpl := range genreTemplates {
		for _, sentiment := range []string{SentimentPositive, SentimentNegative, SentimentNeutral} {
			assert.Contains(t, tpl.closing, sentiment, "genre %s missing %s closing", genre, sentiment)
		}
	}
}
