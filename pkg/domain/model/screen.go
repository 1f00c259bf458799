package model

// Region is one of the four mutually exclusive display regions
type Region string

const (
	RegionPreview Region = "preview"
	RegionLoading Region = "loading"
	RegionResults Region = "results"
	RegionError   Region = "error"

	// RegionTop is only used as a focus target after reset
	RegionTop Region = "top"
)

// Outcome is what a single detect action ended with
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeResult  Outcome = "result"
	OutcomeError   Outcome = "error"
	OutcomeStale   Outcome = "stale"
)

// Screen is a snapshot of everything a view displays
type Screen struct {
	PreviewVisible bool     `json:"preview_visible"`
	LoadingVisible bool     `json:"loading_visible"`
	ResultsVisible bool     `json:"results_visible"`
	ErrorVisible   bool     `json:"error_visible"`
	DetectEnabled  bool     `json:"detect_enabled"`
	Preview        *Preview `json:"preview,omitempty"`
	LoadingMessage string   `json:"loading_message,omitempty"`
	Result         *Result  `json:"result,omitempty"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	Alert          string   `json:"alert,omitempty"`
	Focus          Region   `json:"focus,omitempty"`
}

// VisibleRegions lists the regions currently shown
func (s Screen) VisibleRegions() []Region {
	var regions []Region
	if s.PreviewVisible {
		regions = append(regions, RegionPreview)
	}
	if s.LoadingVisible {
		regions = append(regions, RegionLoading)
	}
	if s.ResultsVisible {
		regions = append(regions, RegionResults)
	}
	if s.ErrorVisible {
		regions = append(regions, RegionError)
	}
	return regions
}
