package match

import "github.com/dbisina/verdescore/internal/model"

// Catalog returns the static green-project category catalogue. Order is
// stable and meaningful: the taxonomy activity matcher breaks score
// ties by first occurrence in this order. The catalogue is read-only;
// callers must never mutate the returned slice.
func Catalog() []model.CategoryReference {
	return []model.CategoryReference{
		{
			ID:           "solar",
			Name:         "Solar Energy",
			Description:  "Solar photovoltaic power plant installation, PV panel deployment, solar farm construction with battery storage generating renewable electricity and reducing CO2 emissions, measured in MW capacity and MWh annually",
			Weight:       1.0,
			ActivityCode: "CCM-4.1",
			Keywords:     []string{"solar", "photovoltaic", "pv"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricEnergyCapacity, Comparator: model.CompareGT, Value: 1, Unit: "MW", Description: "Utility-scale generation capacity"},
				{Metric: model.MetricCarbonReduction, Comparator: model.CompareGTE, Value: 1000, Unit: "tonnes CO2", Description: "Annual avoided emissions at utility scale"},
			},
		},
		{
			ID:           "wind",
			Name:         "Wind Energy",
			Description:  "Wind turbine installation, onshore and offshore wind farm development generating renewable electricity, reducing carbon emissions with MW capacity and grid connection",
			Weight:       1.0,
			ActivityCode: "CCM-4.3",
			Keywords:     []string{"wind", "turbine", "offshore"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricEnergyCapacity, Comparator: model.CompareGTE, Value: 5, Unit: "MW", Description: "Minimum viable wind capacity"},
				{Metric: model.MetricCarbonReduction, Comparator: model.CompareGTE, Value: 1000, Unit: "tonnes CO2", Description: "Annual avoided emissions"},
			},
		},
		{
			ID:           "hydro_geothermal",
			Name:         "Hydropower & Geothermal",
			Description:  "Hydroelectric and geothermal energy generation, heat pump installation, tidal power producing low-carbon electricity and heat",
			Weight:       0.95,
			ActivityCode: "CCM-4.5",
			Keywords:     []string{"hydro*", "geothermal", "heat pump", "tidal"},
			Thresholds: []model.ThresholdRule{
				{Comparator: model.CompareCompliant, Description: "Life-cycle emissions below 100 gCO2e/kWh"},
			},
		},
		{
			ID:           "green_buildings",
			Name:         "Green Buildings",
			Description:  "Green building construction and renovation with LEED or BREEAM certification, net-zero building design, insulation, efficient HVAC and LED lighting reducing energy consumption",
			Weight:       0.9,
			ActivityCode: "CCM-7.1",
			Keywords:     []string{"building", "leed", "breeam", "construction", "renovation"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricEfficiencyGain, Comparator: model.CompareGTE, Value: 10, Unit: "%", Description: "Energy use reduction against baseline"},
			},
		},
		{
			ID:           "clean_transport",
			Name:         "Clean Transportation",
			Description:  "Electric vehicle fleet, EV charging infrastructure, zero-emission electric buses, rail and public transport, cycling infrastructure reducing transport emissions",
			Weight:       0.95,
			ActivityCode: "CCM-6.5",
			Keywords:     []string{"electric vehicle", "ev", "electric bus*", "rail", "transit", "charging"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricCarbonReduction, Comparator: model.CompareGTE, Value: 0, Unit: "tonnes CO2", Description: "Zero direct tailpipe emissions"},
			},
		},
		{
			ID:           "waste_circular",
			Name:         "Waste Management & Circular Economy",
			Description:  "Recycling facility, material recovery, composting, waste diverted from landfill, circular economy and reuse programs measured in tonnes of waste",
			Weight:       0.85,
			ActivityCode: "CE-2.3",
			Keywords:     []string{"recycl*", "waste", "circular", "compost"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricWasteDiverted, Comparator: model.CompareGTE, Value: 100, Unit: "tonnes", Description: "Annual waste diverted from landfill"},
			},
		},
		{
			ID:           "water",
			Name:         "Sustainable Water Management",
			Description:  "Water treatment, wastewater processing, irrigation efficiency, desalination, leak reduction and stormwater management saving liters of water",
			Weight:       0.85,
			ActivityCode: "WTR-1.2",
			Keywords:     []string{"water", "wastewater", "irrigation", "desalination"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricWaterSavings, Comparator: model.CompareGTE, Value: 10000, Unit: "liters", Description: "Annual water savings"},
			},
		},
		{
			ID:           "biodiversity",
			Name:         "Biodiversity & Land Restoration",
			Description:  "Reforestation, afforestation, habitat and wetland restoration, ecosystem conservation restoring hectares of degraded land",
			Weight:       0.9,
			ActivityCode: "BIO-1.1",
			Keywords:     []string{"reforestation", "afforestation", "habitat", "wetland", "conservation", "biodiversity"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricAreaRestored, Comparator: model.CompareGTE, Value: 10, Unit: "hectares", Description: "Area under restoration"},
			},
		},
		{
			ID:           "energy_efficiency",
			Name:         "Energy Efficiency Retrofit",
			Description:  "Industrial and commercial energy efficiency retrofit, smart meters, insulation upgrades, equipment modernization cutting energy consumption by a measured percentage",
			Weight:       0.9,
			ActivityCode: "CCM-7.3",
			Keywords:     []string{"efficiency", "retrofit*", "insulation", "smart meter"},
			Thresholds: []model.ThresholdRule{
				{Metric: model.MetricEfficiencyGain, Comparator: model.CompareGTE, Value: 20, Unit: "%", Description: "Primary energy demand reduction"},
			},
		},
	}
}
