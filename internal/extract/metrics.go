package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dbisina/verdescore/internal/model"
)

// rule binds one metric key to its extraction pattern. Each key has
// exactly one pattern, so no collision handling is needed. The first
// capture group is the numeric value; the unit is either the second
// group or the fixed fallback.
type rule struct {
	key      model.MetricKey
	pattern  *regexp.Regexp
	unit     string // Fallback when the pattern captures no unit group
	unitIdx  int    // Capture group index of the unit, 0 when fixed
}

// MetricExtractor pulls quantified values out of purpose text
type MetricExtractor struct {
	rules    []rule
	zeroEmit *regexp.Regexp
}

var numberPattern = `([\d,]+(?:\.\d+)?)`

// NewMetricExtractor compiles the fixed extraction catalogue
func NewMetricExtractor() *MetricExtractor {
	return &MetricExtractor{
		rules: []rule{
			{
				key:     model.MetricEnergyCapacity,
				pattern: regexp.MustCompile(numberPattern + `\s*(mw|gw|kw)\b`),
				unitIdx: 2,
			},
			{
				key:     model.MetricCarbonReduction,
				pattern: regexp.MustCompile(numberPattern + `\s*(tonnes?|tons?|kg)\s+(?:of\s+)?co2` + `(?:e|\s+equivalent)?`),
				unitIdx: 2,
			},
			{
				key:     model.MetricEnergyGeneration,
				pattern: regexp.MustCompile(numberPattern + `\s*(mwh|gwh|kwh)\b`),
				unitIdx: 2,
			},
			{
				key:     model.MetricTimeline,
				pattern: regexp.MustCompile(numberPattern + `[\s-]*(months?|years?)\b`),
				unitIdx: 2,
			},
			{
				key:     model.MetricJobsCreated,
				pattern: regexp.MustCompile(numberPattern + `\s*(?:new\s+|green\s+|direct\s+)?jobs?\b`),
				unit:    "jobs",
			},
			{
				key:     model.MetricRenewableShare,
				pattern: regexp.MustCompile(numberPattern + `\s*(?:%|percent)\s+(?:of\s+)?renewable`),
				unit:    "%",
			},
			{
				key:     model.MetricEfficiencyGain,
				pattern: regexp.MustCompile(numberPattern + `\s*(?:%|percent)\s+(?:energy\s+)?(?:efficiency|reduction\s+in\s+(?:energy|consumption))`),
				unit:    "%",
			},
			{
				key:     model.MetricWaterSavings,
				pattern: regexp.MustCompile(numberPattern + `\s*(liters?|litres?|m3|cubic\s+meters?)\s+(?:of\s+)?water`),
				unitIdx: 2,
			},
			{
				key:     model.MetricWasteDiverted,
				pattern: regexp.MustCompile(numberPattern + `\s*(tonnes?|tons?)\s+(?:of\s+)?(?:waste|recycl)`),
				unitIdx: 2,
			},
			{
				key:     model.MetricAreaRestored,
				pattern: regexp.MustCompile(numberPattern + `\s*(hectares?|ha|acres?)\b`),
				unitIdx: 2,
			},
		},
		// "zero emission(s)" maps to a carbon value of 0 with no digit required
		zeroEmit: regexp.MustCompile(`zero[\s-]emissions?`),
	}
}

// Extract applies every rule against a lower-cased copy of the text.
// Unmatched keys are simply absent from the result, never an error.
func (e *MetricExtractor) Extract(text string) model.Metrics {
	lower := strings.ToLower(text)
	metrics := make(model.Metrics)

	for _, r := range e.rules {
		m := r.pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		value, err := parseNumber(m[1])
		if err != nil {
			continue
		}
		unit := r.unit
		if r.unitIdx > 0 && r.unitIdx < len(m) {
			unit = normalizeUnit(r.key, m[r.unitIdx])
		}
		metrics[r.key] = model.ExtractedMetric{Value: value, Unit: unit}
	}

	if _, found := metrics[model.MetricCarbonReduction]; !found {
		if e.zeroEmit.MatchString(lower) {
			metrics[model.MetricCarbonReduction] = model.ExtractedMetric{Value: 0, Unit: "tonnes CO2"}
		}
	}

	return metrics
}

// parseNumber strips thousands separators before parsing
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// normalizeUnit canonicalizes the captured unit spelling. It never
// converts between units; kg stays kg and tonnes stay tonnes.
func normalizeUnit(key model.MetricKey, captured string) string {
	captured = strings.TrimSpace(captured)
	switch key {
	case model.MetricEnergyCapacity:
		if captured == "kw" {
			return "kW"
		}
		return strings.ToUpper(captured)
	case model.MetricEnergyGeneration:
		if captured == "kwh" {
			return "kWh"
		}
		return strings.TrimSuffix(strings.ToUpper(captured), "H") + "h"
	case model.MetricCarbonReduction:
		switch {
		case strings.HasPrefix(captured, "kg"):
			return "kg CO2"
		default:
			return "tonnes CO2"
		}
	case model.MetricWasteDiverted:
		return "tonnes"
	case model.MetricTimeline:
		if strings.HasPrefix(captured, "month") {
			return "months"
		}
		return "years"
	case model.MetricWaterSavings:
		if strings.HasPrefix(captured, "m3") || strings.HasPrefix(captured, "cubic") {
			return "m3"
		}
		return "liters"
	case model.MetricAreaRestored:
		if strings.HasPrefix(captured, "acre") {
			return "acres"
		}
		return "hectares"
	}
	return captured
}
