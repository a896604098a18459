// Package sentiment turns free-text patient feedback into a single
// calibrated score plus emotion and keyword metadata. Three numeric
// signals (lexicon compound, pattern polarity, classifier) are fused
// with fixed weights; each signal declares itself available or the
// fusion substitutes a neutral default, so a missing model never fails
// an analysis.
package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/hasinimarella/miniproject/internal/language"
)

// Fusion weights for the three numeric signals.
const (
	lexiconWeight    = 0.4
	patternWeight    = 0.3
	classifierWeight = 0.3
)

// Label thresholds for the fused score.
const (
	positiveThreshold = 0.3
	negativeThreshold = -0.3
)

// criticalThreshold marks a review as containing critical issues.
const criticalThreshold = -0.7

// Label classifies a fused sentiment score.
type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
	LabelUnknown  Label = "UNKNOWN"
)

// negativeKeywords biases the label toward NEGATIVE when the fused
// score sits near zero but the lexical evidence is unambiguous. The
// override needs at least one negative sub-signal as well, never the
// keyword match alone.
var negativeKeywords = []string{
	"bad", "poor", "terrible", "worst", "horrible", "disappointed", "awful",
	"pain", "delay", "slow", "rude", "angry", "error", "problem", "issue",
	"needs improvement",
}

// Result is a full analysis of one piece of text, including every raw
// sub-signal so consumers can audit how the fused score came about.
type Result struct {
	OverallScore        float64            `json:"overall_score"`
	Label               Label              `json:"sentiment_label"`
	Confidence          float64            `json:"confidence"`
	Lexicon             LexiconScores      `json:"lexicon"`
	Polarity            float64            `json:"polarity"`
	Subjectivity        float64            `json:"subjectivity"`
	ClassifierScore     float64            `json:"classifier_score"`
	ClassifierAvailable bool               `json:"classifier_available"`
	Emotions            map[string]float64 `json:"emotions"`
	DominantEmotion     string             `json:"dominant_emotion"`
	Keywords            []string           `json:"keywords"`
	DetectedLanguage    string             `json:"detected_language"`
	NormalizedText      string             `json:"normalized_text"`
}

// Analyzer fuses the signal extractors into one scoring engine.
type Analyzer struct {
	normalizer *language.Normalizer
	lexicon    LexiconSignal
	pattern    PatternSignal
	classifier ClassifierSignal
}

// Option customizes an Analyzer, mainly for injecting deterministic
// signals in tests.
type Option func(*Analyzer)

func WithNormalizer(n *language.Normalizer) Option {
	return func(a *Analyzer) { a.normalizer = n }
}

func WithLexicon(s LexiconSignal) Option {
	return func(a *Analyzer) { a.lexicon = s }
}

func WithPattern(s PatternSignal) Option {
	return func(a *Analyzer) { a.pattern = s }
}

func WithClassifier(s ClassifierSignal) Option {
	return func(a *Analyzer) { a.classifier = s }
}

// New creates an Analyzer with the default signal stack: govader
// lexicon, pattern polarity lexicon, and the Naive Bayes classifier
// when its model restores cleanly.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.normalizer == nil {
		a.normalizer = language.NewNormalizer("en", nil, 0)
	}
	if a.lexicon == nil {
		a.lexicon = newVaderSignal()
	}
	if a.pattern == nil {
		a.pattern = patternSignal{}
	}
	if a.classifier == nil {
		a.classifier = newBayesSignal()
	}
	return a
}

// Analyze scores one piece of text. The only error is empty text;
// degraded sub-signals are absorbed with neutral defaults.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	normalized, detected := a.normalizer.Normalize(ctx, text)

	var lexicon LexiconScores
	if a.lexicon.Available() {
		lexicon = a.lexicon.Score(normalized)
	}

	var polarity, subjectivity float64
	if a.pattern.Available() {
		polarity, subjectivity = a.pattern.Score(normalized)
	}

	var classifierScore float64
	classifierOK := a.classifier.Available()
	if classifierOK {
		classifierScore = a.classifier.Score(normalized)
	}

	overall := round3(lexiconWeight*lexicon.Compound +
		patternWeight*polarity +
		classifierWeight*classifierScore)

	emotions, dominant := extractEmotions(normalized)

	return &Result{
		OverallScore:        overall,
		Label:               decideLabel(overall, normalized, lexicon.Compound, polarity),
		Confidence:          round3(math.Abs(overall)),
		Lexicon:             lexicon,
		Polarity:            polarity,
		Subjectivity:        round3(subjectivity),
		ClassifierScore:     classifierScore,
		ClassifierAvailable: classifierOK,
		Emotions:            emotions,
		DominantEmotion:     dominant,
		Keywords:            extractKeywords(normalized),
		DetectedLanguage:    detected,
		NormalizedText:      normalized,
	}, nil
}

// AnalyzeBatch analyzes multiple texts in order. A failed text yields
// a nil entry rather than aborting the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) []*Result {
	results := make([]*Result, len(texts))
	for i, text := range texts {
		r, err := a.Analyze(ctx, text)
		if err != nil {
			continue
		}
		results[i] = r
	}
	return results
}

// IsCritical reports whether an analysis flags critical issues.
func IsCritical(r *Result) bool {
	return r != nil && r.OverallScore < criticalThreshold
}

// DistributionReport is the label percentage split over a set of analyses.
type DistributionReport struct {
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
	TotalReviews       int     `json:"total_reviews"`
	AverageScore       float64 `json:"average_score"`
}

// Distribution computes the label split across analyses, skipping nil
// entries from failed batch items.
func Distribution(results []*Result) DistributionReport {
	var report DistributionReport
	var sum float64
	for _, r := range results {
		if r == nil {
			continue
		}
		report.TotalReviews++
		sum += r.OverallScore
		switch r.Label {
		case LabelPositive:
			report.PositivePercentage++
		case LabelNegative:
			report.NegativePercentage++
		case LabelNeutral:
			report.NeutralPercentage++
		}
	}
	if report.TotalReviews == 0 {
		return report
	}
	total := float64(report.TotalReviews)
	report.PositivePercentage = round2(report.PositivePercentage / total * 100)
	report.NegativePercentage = round2(report.NegativePercentage / total * 100)
	report.NeutralPercentage = round2(report.NeutralPercentage / total * 100)
	report.AverageScore = round3(sum / total)
	return report
}

// decideLabel applies the threshold rule plus the negative-keyword
// override: a keyword match pushes the label to NEGATIVE only when the
// lexicon compound or the pattern polarity is itself negative.
func decideLabel(overall float64, normalized string, compound, polarity float64) Label {
	if overall > positiveThreshold {
		return LabelPositive
	}
	if overall < negativeThreshold {
		return LabelNegative
	}
	if matchesNegativeKeyword(normalized) && (compound < 0 || polarity < 0) {
		return LabelNegative
	}
	return LabelNeutral
}

func matchesNegativeKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
