package language

import (
	"context"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/rs/zerolog/log"
)

// minConfidence is the detection confidence below which the text is
// assumed to already be in the pivot language.
const minConfidence = 0.6

// Translator translates text into the pivot language.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	IsConfigured() bool
}

// Detect returns the ISO 639-1 code of the text's language and the
// detection confidence. An empty code means detection failed.
func Detect(text string) (string, float64) {
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391(), info.Confidence
}

// Normalizer detects a text's language and translates it to the pivot
// language when a translator is available. It never fails: any
// detection or translation problem degrades to scoring the original
// text with the pivot language code.
type Normalizer struct {
	pivot      string
	translator Translator
	timeout    time.Duration
}

// NewNormalizer creates a Normalizer. translator may be nil, in which
// case non-pivot text is scored untranslated.
func NewNormalizer(pivot string, translator Translator, timeout time.Duration) *Normalizer {
	if pivot == "" {
		pivot = "en"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Normalizer{pivot: pivot, translator: translator, timeout: timeout}
}

// Pivot returns the pivot language code.
func (n *Normalizer) Pivot() string {
	return n.pivot
}

// Normalize returns the pivot-language form of text and the detected
// language code.
func (n *Normalizer) Normalize(ctx context.Context, text string) (string, string) {
	code, confidence := Detect(text)
	if code == "" || confidence < minConfidence {
		return text, n.pivot
	}
	if code == n.pivot {
		return text, code
	}

	if n.translator == nil || !n.translator.IsConfigured() {
		return text, code
	}

	tctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	translated, err := n.translator.Translate(tctx, text, code, n.pivot)
	if err != nil || strings.TrimSpace(translated) == "" {
		log.Debug().Err(err).Str("lang", code).Msg("translation unavailable, scoring original text")
		return text, code
	}
	return translated, code
}
