package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
)

// Genres the story generator knows. Anything else falls back to adventure.
const (
	GenreAdventure = "adventure"
	GenreMystery   = "mystery"
	GenreSciFi     = "scifi"
	GenreFantasy   = "fantasy"
	DefaultGenre   = GenreAdventure
)

type genreTemplate struct {
	title   string
	opening string
	middle  string
	closing map[string]string // keyed by sentiment bucket
}

var genreTemplates = map[string]genreTemplate{
	GenreAdventure: {
		title:   "The Expedition of %s",
		opening: "The explorer set out across the wilds of %s, notebook in hand.",
		middle:  "Along the trail, the journey kept circling back to %s.",
		closing: map[string]string{
			SentimentPositive: "By nightfall the summit was behind them, and the map held one more conquered peak.",
			SentimentNegative: "The storm forced a retreat, but the trail would still be there tomorrow.",
			SentimentNeutral:  "Camp was made at dusk, the path ahead unread but waiting.",
		},
	},
	GenreMystery: {
		title:   "The Case of %s",
		opening: "The detective opened the file on %s once more.",
		middle:  "Every clue in the notebook pointed toward %s.",
		closing: map[string]string{
			SentimentPositive: "By midnight the case was closed, the last thread pulled clean.",
			SentimentNegative: "The trail went cold, but cold cases have a way of reopening.",
			SentimentNeutral:  "The file went back in the drawer, a question mark on its cover.",
		},
	},
	GenreSciFi: {
		title:   "Transmission: %s",
		opening: "Ship's log, orbit of %s: systems nominal, mind less so.",
		middle:  "The onboard computer flagged a recurring signal: %s.",
		closing: map[string]string{
			SentimentPositive: "Course locked. The next star already glowed brighter on the chart.",
			SentimentNegative: "Engines cut for repairs; even starships drift before they leap.",
			SentimentNeutral:  "The log closed with coordinates saved and the engines idling.",
		},
	},
	GenreFantasy: {
		title:   "The Chronicle of %s",
		opening: "In the kingdom of %s, the apprentice opened the great ledger.",
		middle:  "The runes along the margin all spelled one word: %s.",
		closing: map[string]string{
			SentimentPositive: "That evening the spell finally held, and the tower lights burned gold.",
			SentimentNegative: "The incantation fizzled, yet the grimoire kept its next page ready.",
			SentimentNeutral:  "The ledger closed softly, its ink still drying on the day's page.",
		},
	},
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(f)
		if len(r) > 0 {
			fields[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(fields, " ")
}

// ComposeChapter renders one entry's metadata as a narrative chapter by
// substituting the extracted values into fixed genre fragments. Pure and
// deterministic: the same inputs always produce the same chapter.
func ComposeChapter(genre, subject string, ins model.EntryInsights, now time.Time) model.Chapter {
	tpl, ok := genreTemplates[strings.ToLower(genre)]
	if !ok {
		genre = DefaultGenre
		tpl = genreTemplates[DefaultGenre]
	}

	if subject == "" {
		subject = "the day's work"
	}

	theme := "what comes next"
	if len(ins.Themes) > 0 {
		theme = ins.Themes[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, tpl.opening, subject)
	b.WriteString(" ")
	fmt.Fprintf(&b, tpl.middle, theme)
	if len(ins.Entities) > 0 {
		fmt.Fprintf(&b, " %s was there too, as the record tells it.", ins.Entities[0])
	}
	b.WriteString(" ")

	closing, ok := tpl.closing[ins.Sentiment]
	if !ok {
		closing = tpl.closing[SentimentNeutral]
	}
	b.WriteString(closing)

	return model.Chapter{
		Genre:     strings.ToLower(genre),
		Title:     fmt.Sprintf(tpl.title, titleCase(subject)),
		Narrative: b.String(),
		CreatedAt: now,
	}
}
