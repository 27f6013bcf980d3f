package embed

import (
	"context"
	"strings"
)

// theme is one semantic dimension of the lexical vector. Positive
// themes capture green-project signals; red-flag themes carry a
// negative weight so fossil mentions and vague language pull the
// vector away from every reference category.
type theme struct {
	name   string
	weight float64 // +1 for green signals, negative for red flags
	terms  []string
}

// lexicalThemes is the fixed, ordered dimension catalogue. The vector
// length is len(lexicalThemes); order is part of the contract since
// reference and query vectors are compared position by position.
var lexicalThemes = []theme{
	{"solar", 1, []string{"solar", "photovoltaic", "pv panel", "solar farm", "solar plant"}},
	{"wind", 1, []string{"wind", "turbine", "offshore wind", "onshore wind", "wind farm"}},
	{"hydro_geo", 1, []string{"hydro", "hydroelectric", "geothermal", "heat pump", "tidal"}},
	{"efficiency", 1, []string{"efficiency", "retrofit", "insulation", "led lighting", "hvac", "energy saving", "smart meter"}},
	{"transport", 1, []string{"electric vehicle", "ev charging", "public transport", "rail", "e-bus", "electric bus", "zero-emission vehicle", "cycling"}},
	{"carbon", 1, []string{"co2", "carbon", "emission", "greenhouse gas", "ghg", "decarboni"}},
	{"waste", 1, []string{"recycl", "circular", "waste", "compost", "reuse", "material recovery"}},
	{"water", 1, []string{"water", "wastewater", "irrigation", "desalination", "stormwater", "leak"}},
	{"biodiversity", 1, []string{"biodiversity", "reforestation", "afforestation", "habitat", "wetland", "ecosystem", "conservation"}},
	{"certification", 1, []string{"leed", "breeam", "iso 14001", "energy star", "certified", "third-party verified", "verified"}},
	{"quantification", 1, []string{"mw", "mwh", "kwh", "tonnes", "hectare", "per year", "annually", "%"}},
	{"building", 1, []string{"building", "green building", "construction", "renovation", "net-zero building"}},
	{"fossil_flag", -0.8, []string{"coal", "oil", "diesel", "natural gas", "petroleum", "fossil"}},
	{"vague_flag", -0.5, []string{"eco-friendly", "sustainable solutions", "green initiatives", "environmentally conscious", "going green", "eco-conscious"}},
	{"future_flag", -0.3, []string{"will consider", "plan to explore", "intend to", "aim to", "future initiatives", "aspire"}},
}

// LexicalVectorizer is the deterministic fallback provider. It is pure,
// touches no network, and always succeeds.
type LexicalVectorizer struct {
	themes []theme
}

// NewLexicalVectorizer creates the vectorizer over the fixed catalogue
func NewLexicalVectorizer() *LexicalVectorizer {
	return &LexicalVectorizer{themes: lexicalThemes}
}

// Name returns the provider name
func (v *LexicalVectorizer) Name() string {
	return "lexical"
}

// Vectorize computes one bounded context score per theme: substring
// hits divided by 3 and capped at 1, so three or more mentions saturate
// the signal. Red-flag themes are scaled by their negative weight.
func (v *LexicalVectorizer) Vectorize(_ context.Context, text string) ([]float64, error) {
	lower := strings.ToLower(text)
	vec := make([]float64, len(v.themes))

	for i, th := range v.themes {
		hits := 0
		for _, term := range th.terms {
			hits += strings.Count(lower, term)
		}
		score := float64(hits) / 3.0
		if score > 1 {
			score = 1
		}
		vec[i] = score * th.weight
	}

	return vec, nil
}
