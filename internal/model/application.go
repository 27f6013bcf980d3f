package model

import "strings"

// Application is a loan application submitted for evaluation
type Application struct {
	Purpose     string  `json:"purpose"`              // Free-text loan purpose description
	Amount      float64 `json:"amount"`               // Requested loan amount (same currency as thresholds)
	ApplicantID string  `json:"applicant_id,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// Normalize returns a copy with malformed fields coerced to safe values.
// Missing purpose becomes the empty string and a negative amount becomes
// zero; downstream pattern matching handles empty input as "no matches".
func (a Application) Normalize() Application {
	out := a
	out.Purpose = strings.TrimSpace(a.Purpose)
	if out.Amount < 0 {
		out.Amount = 0
	}
	return out
}

// MetricKey identifies one quantified value the extractor looks for
type MetricKey string

const (
	MetricEnergyCapacity   MetricKey = "energy_capacity"        // Installed capacity (MW, kW, GW)
	MetricCarbonReduction  MetricKey = "carbon_reduction"       // Avoided emissions (tonnes/kg CO2)
	MetricEnergyGeneration MetricKey = "energy_generation"      // Annual generation (MWh, kWh, GWh)
	MetricTimeline         MetricKey = "timeline"               // Project timeline (months, years)
	MetricJobsCreated      MetricKey = "jobs_created"           // Direct jobs
	MetricRenewableShare   MetricKey = "renewable_percentage"   // Share of renewable energy (%)
	MetricEfficiencyGain   MetricKey = "efficiency_improvement" // Efficiency improvement (%)
	MetricWaterSavings     MetricKey = "water_savings"          // Water saved (liters, m3)
	MetricWasteDiverted    MetricKey = "waste_diverted"         // Waste diverted from landfill (tonnes)
	MetricAreaRestored     MetricKey = "area_restored"          // Land/habitat restored (hectares)
)

// ExtractedMetric is one quantified value pulled from the purpose text.
// Absence of a key means "not found", never zero; units are part of the
// value's identity (no conversion between kg and tonnes).
type ExtractedMetric struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Metrics maps metric keys to extracted values, at most one per key
type Metrics map[MetricKey]ExtractedMetric
