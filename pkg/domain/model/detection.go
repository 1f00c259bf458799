package model

import (
	"fmt"
	"math"
)

// Detection is the canonical response of POST /detect.
//
// Confidence is a fraction in [0, 1]. The older `plant_info` shape with a
// whole-percent confidence is not accepted.
type Detection struct {
	DetectedPlant  string   `json:"detected_plant"`
	ScientificName string   `json:"scientific_name,omitempty"`
	Confidence     float64  `json:"confidence"`
	Image          string   `json:"image" masq:"secret"`
	Benefits       []string `json:"benefits,omitempty"`
	Cautions       []string `json:"cautions,omitempty"`
}

// ConfidencePercent returns the confidence as a whole percentage
func (d *Detection) ConfidencePercent() int {
	return int(math.Round(d.Confidence * 100))
}

// Result is a display-ready projection of a Detection
type Result struct {
	PlantName       string   `json:"plant_name"`
	ScientificName  string   `json:"scientific_name"`
	ConfidenceBadge string   `json:"confidence_badge"`
	Image           string   `json:"image"`
	Benefits        []string `json:"benefits"`
	Cautions        []string `json:"cautions"`
}

// NewResult projects a detection into display strings, filling in
// placeholders from display where the backend left fields empty.
func NewResult(d *Detection, display *Display) *Result {
	name := d.DetectedPlant
	if name == "" {
		name = "Unknown Plant"
	}
	scientific := d.ScientificName
	if scientific == "" {
		scientific = "N/A"
	}

	return &Result{
		PlantName:       name,
		ScientificName:  "Scientific Name: " + scientific,
		ConfidenceBadge: fmt.Sprintf("%d%%", d.ConfidencePercent()),
		Image:           d.Image,
		Benefits:        listOr(d.Benefits, display.BenefitsPlaceholder),
		Cautions:        listOr(d.Cautions, display.CautionsPlaceholder),
	}
}

func listOr(items []string, placeholder string) []string {
	if len(items) == 0 {
		return []string{placeholder}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// PlantCatalog is the response of GET /plants
type PlantCatalog struct {
	TotalPlantsDetected int      `json:"total_plants_detected"`
	Plants              []string `json:"plants"`
	Models              []string `json:"models"`
}
