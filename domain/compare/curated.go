package compare

import (
	"panelscope/domain/core"
)

// Curated feature sets per chart kind. These are the externally maintained
// analyst picks: ordered lists of the variables considered most informative
// for each chart. The pipeline honors the declared order when the features
// survive filtering, and falls back to statistical importance otherwise.
//
// Maintained by the research team; keys must match the analytics producer's
// feature keys exactly.

// PreferredRadarFeatures is the default radar axis set, in display order.
var PreferredRadarFeatures = []core.FeatureKey{
	"media_time_sns",
	"online_shopping_freq",
	"brand_sensitivity",
	"price_sensitivity",
	"trend_seeking",
	"health_interest",
	"travel_freq",
	"early_adopter",
}

// PreferredHeatmapFeatures is the default binary heatmap row set.
var PreferredHeatmapFeatures = []core.FeatureKey{
	"uses_quickpoll",
	"shops_online_weekly",
	"subscribes_ott",
	"uses_delivery_app",
	"owns_car",
	"has_children",
	"lives_metro",
	"exercises_regularly",
}

// PreferredStackedBarFeatures is the default categorical distribution set.
var PreferredStackedBarFeatures = []core.FeatureKey{
	"age_band",
	"income_bracket",
	"region_group",
	"occupation_group",
	"education_level",
}

// IndexDotEligibleFeatures is the hard eligibility set for the index-dot
// plot. Unlike the other charts this is a filter, not a preference: records
// outside the set are dropped entirely.
var IndexDotEligibleFeatures = []core.FeatureKey{
	"uses_quickpoll",
	"shops_online_weekly",
	"subscribes_ott",
	"uses_delivery_app",
	"owns_car",
	"has_children",
	"exercises_regularly",
	"early_adopter",
	"brand_sensitivity",
	"price_sensitivity",
	"media_time_sns",
}

func featureSet(keys []core.FeatureKey) map[core.FeatureKey]bool {
	set := make(map[core.FeatureKey]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

var (
	radarFeatureSet      = featureSet(PreferredRadarFeatures)
	heatmapFeatureSet    = featureSet(PreferredHeatmapFeatures)
	stackedBarFeatureSet = featureSet(PreferredStackedBarFeatures)
	indexDotFeatureSet   = featureSet(IndexDotEligibleFeatures)
)
