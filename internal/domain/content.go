package domain

import "time"

// ContentRecord is a normalized text report handed to the engine by the
// ingestion collaborator. Records are immutable once handed over.
type ContentRecord struct {
	// Source identifies where the report came from (feed name, site key).
	Source string `json:"source"`

	// Headline is the report title; Content is the primary text used for
	// classification.
	Headline string `json:"headline"`
	Content  string `json:"content"`

	Timestamp time.Time `json:"timestamp"`

	// GeoContext is an optional structured region hint from ingestion.
	GeoContext *GeoContext `json:"geo_context,omitempty"`
}

// GeoContext carries an optional region / risk-factor hint attached by the
// ingestion collaborator. The engine passes it through untouched.
type GeoContext struct {
	Region     string `json:"region"`
	Country    string `json:"country,omitempty"`
	RiskFactor string `json:"risk_factor,omitempty"`
}
