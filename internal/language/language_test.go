package language

import (
	"context"
	"errors"
	"testing"
)

type fakeTranslator struct {
	translated string
	err        error
	configured bool
	calls      int
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	f.calls++
	return f.translated, f.err
}

func (f *fakeTranslator) IsConfigured() bool { return f.configured }

func TestDetectEnglish(t *testing.T) {
	code, confidence := Detect("The hospital staff took excellent care of my grandmother during her stay.")
	if code != "en" {
		t.Errorf("expected en, got %q", code)
	}
	if confidence <= 0 {
		t.Errorf("expected positive confidence, got %g", confidence)
	}
}

func TestNormalizePivotTextPassesThrough(t *testing.T) {
	ft := &fakeTranslator{configured: true}
	n := NewNormalizer("en", ft, 0)

	text := "The doctors were attentive and explained everything clearly to us."
	normalized, detected := n.Normalize(context.Background(), text)
	if normalized != text {
		t.Errorf("expected pivot text unchanged, got %q", normalized)
	}
	if detected != "en" {
		t.Errorf("expected en, got %q", detected)
	}
	if ft.calls != 0 {
		t.Errorf("expected no translation calls, got %d", ft.calls)
	}
}

func TestNormalizeTranslatesNonPivot(t *testing.T) {
	ft := &fakeTranslator{configured: true, translated: "the care was excellent"}
	n := NewNormalizer("en", ft, 0)

	normalized, detected := n.Normalize(context.Background(),
		"Die Pflege im Krankenhaus war wirklich ausgezeichnet und freundlich.")
	if normalized != "the care was excellent" {
		t.Errorf("expected translated text, got %q", normalized)
	}
	if detected != "de" {
		t.Errorf("expected de, got %q", detected)
	}
	if ft.calls != 1 {
		t.Errorf("expected one translation call, got %d", ft.calls)
	}
}

func TestNormalizeTranslationFailureFallsBack(t *testing.T) {
	ft := &fakeTranslator{configured: true, err: errors.New("service down")}
	n := NewNormalizer("en", ft, 0)

	original := "Die Pflege im Krankenhaus war wirklich ausgezeichnet und freundlich."
	normalized, detected := n.Normalize(context.Background(), original)
	if normalized != original {
		t.Errorf("expected original text on failure, got %q", normalized)
	}
	if detected != "de" {
		t.Errorf("expected detected language kept, got %q", detected)
	}
}

func TestNormalizeUnconfiguredTranslatorSkipped(t *testing.T) {
	ft := &fakeTranslator{configured: false}
	n := NewNormalizer("en", ft, 0)

	original := "Die Pflege im Krankenhaus war wirklich ausgezeichnet und freundlich."
	normalized, _ := n.Normalize(context.Background(), original)
	if normalized != original {
		t.Errorf("expected original text, got %q", normalized)
	}
	if ft.calls != 0 {
		t.Errorf("expected no translation calls, got %d", ft.calls)
	}
}

func TestNormalizeNilTranslator(t *testing.T) {
	n := NewNormalizer("en", nil, 0)

	original := "Die Pflege im Krankenhaus war wirklich ausgezeichnet und freundlich."
	normalized, detected := n.Normalize(context.Background(), original)
	if normalized != original {
		t.Errorf("expected original text, got %q", normalized)
	}
	if detected == "" {
		t.Error("expected detected language code")
	}
}

func TestNormalizerDefaults(t *testing.T) {
	n := NewNormalizer("", nil, 0)
	if n.Pivot() != "en" {
		t.Errorf("expected default pivot en, got %q", n.Pivot())
	}
}
