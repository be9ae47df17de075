package model

// IntentResult is the output of the heuristic property-intent detector.
// It is created fresh per message and consumed immediately by the caller.
type IntentResult struct {
	IsPropertyRelated bool           `json:"is_property_related"`
	Confidence        float64        `json:"confidence"`
	Category          *string        `json:"category,omitempty"`
	PropertyType      *string        `json:"property_type,omitempty"`
	Features          IntentFeatures `json:"features"`
}

// IntentFeatures holds optional feature flags extracted from the message.
type IntentFeatures struct {
	IsFurnished *bool `json:"is_furnished,omitempty"`
}
