package valueobject

// ThicknessRange is a recommended asphalt layer thickness in inches.
type ThicknessRange struct {
	Min         float64 `json:"min" yaml:"min"`
	Recommended float64 `json:"recommended" yaml:"recommended"`
	Max         float64 `json:"max" yaml:"max"`
}

// ThicknessRecommendation pairs a project type with its thickness range.
type ThicknessRecommendation struct {
	// Category is "residential" or "commercial".
	Category string `json:"category" yaml:"category"`

	// Application is the paved surface (e.g., "driveway").
	Application string `json:"application" yaml:"application"`

	// Inches is the recommended range.
	Inches ThicknessRange `json:"inches" yaml:"inches"`
}

// ThicknessRecommendations returns the thickness guidance shown alongside the calculators.
func ThicknessRecommendations() []ThicknessRecommendation {
	return []ThicknessRecommendation{
		{Category: "residential", Application: "driveway", Inches: ThicknessRange{Min: 2, Recommended: 3, Max: 4}},
		{Category: "residential", Application: "walkway", Inches: ThicknessRange{Min: 2, Recommended: 2.5, Max: 3}},
		{Category: "commercial", Application: "parking", Inches: ThicknessRange{Min: 3, Recommended: 4, Max: 5}},
		{Category: "commercial", Application: "heavy_traffic", Inches: ThicknessRange{Min: 6, Recommended: 8, Max: 10}},
	}
}
