package sentiment

import "strings"

// emotionVocabulary is ordered: the dominant emotion on a tie is the
// first entry in this list, which keeps the tie-break deterministic.
var emotionVocabulary = []struct {
	name     string
	keywords []string
}{
	{"joy", []string{"happy", "wonderful", "excellent", "great", "amazing", "love", "perfect"}},
	{"sadness", []string{"sad", "unhappy", "disappointed", "depressed", "miserable", "terrible"}},
	{"anger", []string{"angry", "furious", "outraged", "frustrated", "irritated", "disgusted"}},
	{"fear", []string{"afraid", "scared", "worried", "anxious", "nervous", "terrified"}},
	{"surprise", []string{"surprised", "amazed", "shocked", "astonished", "unexpected"}},
	{"trust", []string{"trust", "reliable", "dependable", "safe", "secure", "confident"}},
}

// Emotions returns the fixed emotion vocabulary names in tie-break order.
func Emotions() []string {
	names := make([]string, len(emotionVocabulary))
	for i, e := range emotionVocabulary {
		names[i] = e.name
	}
	return names
}

// extractEmotions scores each emotion as the matched-keyword fraction
// of its vocabulary, capped at 1.0, and returns the dominant emotion.
func extractEmotions(text string) (map[string]float64, string) {
	lower := strings.ToLower(text)

	emotions := make(map[string]float64, len(emotionVocabulary))
	dominant := emotionVocabulary[0].name
	best := -1.0

	for _, e := range emotionVocabulary {
		count := 0
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		score := float64(count) / float64(len(e.keywords))
		if score > 1 {
			score = 1
		}
		emotions[e.name] = score
		if score > best {
			best = score
			dominant = e.name
		}
	}

	return emotions, dominant
}
