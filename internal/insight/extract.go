package insight

import (
	"sort"
	"strings"
	"unicode"

	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
)

// Sentiment buckets. Coarse by design: keyword counting, not a model.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var positiveWords = map[string]bool{
	"happy": true, "proud": true, "excited": true, "confident": true,
	"great": true, "good": true, "love": true, "enjoyed": true, "fun": true,
	"accomplished": true, "learned": true, "understood": true, "solved": true,
	"improved": true, "succeeded": true, "curious": true, "interesting": true,
}

var negativeWords = map[string]bool{
	"sad": true, "frustrated": true, "angry": true, "confused": true,
	"stuck": true, "hard": true, "difficult": true, "failed": true,
	"worried": true, "anxious": true, "tired": true, "bored": true,
	"overwhelmed": true, "gave": true, "struggled": true, "lost": true,
}

var themeKeywords = map[string]string{
	"tried": "perseverance", "again": "perseverance", "practice": "perseverance",
	"struggled": "perseverance", "kept": "perseverance",
	"why": "curiosity", "wonder": "curiosity", "question": "curiosity",
	"curious": "curiosity", "discovered": "curiosity",
	"friend": "collaboration", "team": "collaboration", "together": "collaboration",
	"helped": "collaboration", "group": "collaboration",
	"hard": "challenge", "difficult": "challenge", "stuck": "challenge",
	"problem": "challenge", "failed": "challenge",
	"learned": "growth", "improved": "growth", "better": "growth",
	"progress": "growth", "understand": "growth",
}

const (
	maxThemes     = 3
	maxEntities   = 5
	maxKeyPhrases = 3
	phraseWords   = 6
)

// Extract derives the fixed-shape metadata tuple from entry text using plain
// keyword heuristics. Deterministic and side-effect free.
func Extract(text string) model.EntryInsights {
	words := tokenize(text)

	return model.EntryInsights{
		Sentiment:  scoreSentiment(words),
		Themes:     extractThemes(words),
		Entities:   extractEntities(text),
		KeyPhrases: extractKeyPhrases(text),
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func scoreSentiment(words []string) string {
	var pos, neg int
	for _, w := range words {
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
	}
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func extractThemes(words []string) []string {
	counts := map[string]int{}
	for _, w := range words {
		if theme, ok := themeKeywords[w]; ok {
			counts[theme]++
		}
	}
	themes := make([]string, 0, len(counts))
	for t := range counts {
		themes = append(themes, t)
	}
	// most frequent first, name as tie-break so output is stable
	sort.Slice(themes, func(i, j int) bool {
		if counts[themes[i]] != counts[themes[j]] {
			return counts[themes[i]] > counts[themes[j]]
		}
		return themes[i] < themes[j]
	})
	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}

// extractEntities picks capitalized words that do not open a sentence.
// Crude, but catches names and proper nouns in practice.
func extractEntities(text string) []string {
	seen := map[string]bool{}
	entities := []string{}
	for _, sentence := range splitSentences(text) {
		fields := strings.Fields(sentence)
		for i, f := range fields {
			if i == 0 {
				continue
			}
			w := strings.TrimFunc(f, func(r rune) bool {
				return !unicode.IsLetter(r)
			})
			if len(w) < 2 {
				continue
			}
			r := []rune(w)
			if unicode.IsUpper(r[0]) && !seen[w] {
				seen[w] = true
				entities = append(entities, w)
				if len(entities) == maxEntities {
					return entities
				}
			}
		}
	}
	return entities
}

// extractKeyPhrases takes the leading words of the first few sentences.
func extractKeyPhrases(text string) []string {
	phrases := []string{}
	for _, sentence := range splitSentences(text) {
		fields := strings.Fields(sentence)
		if len(fields) == 0 {
			continue
		}
		n := len(fields)
		if n > phraseWords {
			n = phraseWords
		}
		phrases = append(phrases, strings.Join(fields[:n], " "))
		if len(phrases) == maxKeyPhrases {
			break
		}
	}
	return phrases
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
