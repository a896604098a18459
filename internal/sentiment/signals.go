package sentiment

import (
	"strings"

	"github.com/cdipaolo/sentiment"
	"github.com/jonreiter/govader"
	"github.com/rs/zerolog/log"
)

// LexiconScores holds the VADER-style lexicon sub-scores.
type LexiconScores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// LexiconSignal scores text against a sentiment lexicon.
type LexiconSignal interface {
	Score(text string) LexiconScores
	Available() bool
}

// PatternSignal scores polarity in [-1,1] and subjectivity in [0,1].
type PatternSignal interface {
	Score(text string) (polarity, subjectivity float64)
	Available() bool
}

// ClassifierSignal scores text with a trained classifier: a signed
// score in [-1,1], positive meaning positive sentiment.
type ClassifierSignal interface {
	Score(text string) float64
	Available() bool
}

// vaderSignal wraps govader's lexicon analyzer.
type vaderSignal struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func newVaderSignal() *vaderSignal {
	return &vaderSignal{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *vaderSignal) Available() bool { return true }

func (v *vaderSignal) Score(text string) LexiconScores {
	s := v.analyzer.PolarityScores(text)
	return LexiconScores{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}

// bayesSignal wraps the cdipaolo Naive Bayes sentiment model. The
// model restore can fail (missing asset, bad environment); in that
// case the signal reports unavailable and the fusion step substitutes
// a neutral 0.
type bayesSignal struct {
	model     sentiment.Models
	available bool
}

func newBayesSignal() *bayesSignal {
	model, err := sentiment.Restore()
	if err != nil {
		log.Warn().Err(err).Msg("sentiment classifier unavailable, signal will contribute neutral 0")
		return &bayesSignal{available: false}
	}
	return &bayesSignal{model: model, available: true}
}

func (b *bayesSignal) Available() bool { return b.available }

// Score maps the classifier output to a signed score. Word-level
// agreement gives a graded value; the whole-text class decides the
// sign when no word scores are returned.
func (b *bayesSignal) Score(text string) float64 {
	if !b.available {
		return 0
	}
	analysis := b.model.SentimentAnalysis(text, sentiment.English)
	if len(analysis.Words) > 0 {
		positive := 0
		for _, w := range analysis.Words {
			if w.Score == 1 {
				positive++
			}
		}
		p := float64(positive) / float64(len(analysis.Words))
		return 2*p - 1
	}
	if analysis.Score == 1 {
		return 1
	}
	return -1
}

// patternLexicon maps sentiment-bearing words to (polarity,
// subjectivity) pairs, deliberately independent of the VADER lexicon
// so the two numeric signals do not collapse into one.
var patternLexicon = map[string][2]float64{
	"excellent":      {1.0, 1.0},
	"amazing":        {0.9, 0.9},
	"wonderful":      {1.0, 1.0},
	"great":          {0.8, 0.75},
	"good":           {0.7, 0.6},
	"kind":           {0.6, 0.9},
	"helpful":        {0.6, 0.5},
	"caring":         {0.6, 0.7},
	"clean":          {0.4, 0.4},
	"comfortable":    {0.5, 0.6},
	"professional":   {0.5, 0.4},
	"friendly":       {0.6, 0.8},
	"quick":          {0.3, 0.4},
	"perfect":        {1.0, 1.0},
	"love":           {0.5, 0.6},
	"happy":          {0.8, 1.0},
	"satisfied":      {0.5, 0.7},
	"bad":            {-0.7, 0.67},
	"poor":           {-0.6, 0.6},
	"terrible":       {-1.0, 1.0},
	"horrible":       {-1.0, 1.0},
	"awful":          {-1.0, 1.0},
	"worst":          {-1.0, 1.0},
	"rude":           {-0.8, 0.9},
	"dirty":          {-0.6, 0.7},
	"filthy":         {-0.9, 0.9},
	"slow":           {-0.3, 0.4},
	"painful":        {-0.7, 0.8},
	"disappointed":   {-0.6, 0.8},
	"disappointing":  {-0.6, 0.7},
	"uncomfortable":  {-0.5, 0.6},
	"unprofessional": {-0.6, 0.5},
	"noisy":          {-0.4, 0.5},
	"cold":           {-0.3, 0.5},
	"late":           {-0.3, 0.4},
	"angry":          {-0.7, 0.9},
	"unhappy":        {-0.7, 0.9},
	"miserable":      {-0.9, 1.0},
}

// negations flip the polarity of the following sentiment word.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "hardly": true, "barely": true,
	"isnt": true, "wasnt": true, "dont": true, "didnt": true, "cant": true,
}

// patternSignal is a small pattern-lexicon polarity/subjectivity
// extractor. Unmatched text scores neutral (0, 0).
type patternSignal struct{}

func (patternSignal) Available() bool { return true }

func (patternSignal) Score(text string) (float64, float64) {
	words := strings.Fields(strings.ToLower(text))

	var polaritySum, subjectivitySum float64
	matched := 0
	negate := false

	for _, word := range words {
		word = strings.Trim(word, ".,!?:;\"'()-[]")
		word = strings.ReplaceAll(word, "'", "")
		if negations[word] {
			negate = true
			continue
		}
		entry, ok := patternLexicon[word]
		if !ok {
			continue
		}
		polarity := entry[0]
		if negate {
			polarity = -polarity
			negate = false
		}
		polaritySum += polarity
		subjectivitySum += entry[1]
		matched++
	}

	if matched == 0 {
		return 0, 0
	}
	return clamp(polaritySum/float64(matched), -1, 1), clamp(subjectivitySum/float64(matched), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
