package embed

import (
	"context"
	"testing"
	"time"

	"github.com/dbisina/verdescore/internal/cache"
)

func TestLexicalVectorizer_Deterministic(t *testing.T) {
	v := NewLexicalVectorizer()
	text := "50 MW solar photovoltaic plant with battery storage reducing CO2 emissions"

	a, err := v.Vectorize(context.Background(), text)
	if err != nil {
		t.Fatalf("vectorize: %v", err)
	}
	b, _ := v.Vectorize(context.Background(), text)

	if len(a) != len(lexicalThemes) {
		t.Fatalf("expected %d dimensions, got %d", len(lexicalThemes), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectorizer not deterministic at dim %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestLexicalVectorizer_SaturatesAtThreeHits(t *testing.T) {
	v := NewLexicalVectorizer()

	three, _ := v.Vectorize(context.Background(), "solar solar solar")
	five, _ := v.Vectorize(context.Background(), "solar solar solar solar solar")

	// Dim 0 is the solar theme
	if three[0] != 1 {
		t.Errorf("expected saturation at 3 hits, got %v", three[0])
	}
	if five[0] != 1 {
		t.Errorf("expected cap at 1, got %v", five[0])
	}

	one, _ := v.Vectorize(context.Background(), "solar installation")
	if one[0] >= three[0] {
		t.Errorf("one hit should score below saturation: %v", one[0])
	}
}

func TestLexicalVectorizer_RedFlagsNegative(t *testing.T) {
	v := NewLexicalVectorizer()

	vec, _ := v.Vectorize(context.Background(), "coal fired plant with diesel backup and fossil reserves")

	negative := false
	for _, x := range vec {
		if x < 0 {
			negative = true
		}
	}
	if !negative {
		t.Error("expected fossil red-flag dimension to go negative")
	}
}

func TestLexicalVectorizer_EmptyText(t *testing.T) {
	v := NewLexicalVectorizer()

	vec, err := v.Vectorize(context.Background(), "")
	if err != nil {
		t.Fatalf("empty text must not error: %v", err)
	}
	for i, x := range vec {
		if x != 0 {
			t.Errorf("expected zero vector for empty text, dim %d = %v", i, x)
		}
	}
}

func TestCachingProvider_RoundTrip(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute, 0)
	p := NewCachingProvider(NewLexicalVectorizer(), store, time.Minute)

	text := "wind farm with 20 turbines"
	first, err := p.Vectorize(context.Background(), text)
	if err != nil {
		t.Fatalf("vectorize: %v", err)
	}
	second, err := p.Vectorize(context.Background(), text)
	if err != nil {
		t.Fatalf("cached vectorize: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("cached vector length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cached vector differs at dim %d", i)
		}
	}
}
