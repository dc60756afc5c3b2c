package schema

// MetricsDimension describes one dimension of a preset for display.
type MetricsDimension struct {
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	MaxScore  float64 `json:"max_score"`
	KTrend    float64 `json:"k_trend"`
	KRecent   float64 `json:"k_recent"`
	KVol      float64 `json:"k_vol"`
}

// MetricsPreset describes one analyzer preset for the metrics command.
type MetricsPreset struct {
	Name       string             `json:"name"`
	Purpose    string             `json:"purpose"`
	Convention string             `json:"convention"`
	Fusion     FusionWeights      `json:"fusion"`
	Dimensions []MetricsDimension `json:"dimensions"`
	Formula    string             `json:"formula"`
}

// MetricsRenderModel is the complete render model for the metrics command.
type MetricsRenderModel struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	LayerShares string          `json:"layer_shares"`
	Presets     []MetricsPreset `json:"presets"`
}
