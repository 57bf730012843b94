package domain

// RecommendationResult is the unified outfit suggestion returned to the
// caller. Items is always a subset of the inventory the engine was given
// and may be empty. Title and StyleCategory are populated only when the
// AI path produced the result.
type RecommendationResult struct {
	Items         []ClothingItem `json:"items"`
	Reason        string         `json:"reason"`
	Weather       WeatherData    `json:"weather"`
	Title         string         `json:"title,omitempty"`
	StyleCategory string         `json:"style_category,omitempty"`
}
