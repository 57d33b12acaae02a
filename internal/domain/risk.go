package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RiskLevel is the closed set of health-risk severities, ordered Low < Moderate < High.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
)

// riskNames holds the canonical external form of each level.
var riskNames = [...]string{"Low", "Moderate", "High"}

// String returns the capitalized external form ("Low", "Moderate", "High").
func (r RiskLevel) String() string {
	if r < RiskLow || r > RiskHigh {
		return fmt.Sprintf("RiskLevel(%d)", int(r))
	}
	return riskNames[r]
}

// Valid reports whether r is a member of the closed enumeration.
func (r RiskLevel) Valid() bool {
	return r >= RiskLow && r <= RiskHigh
}

// ParseRiskLevel maps an external string to a RiskLevel, case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "moderate":
		return RiskModerate, nil
	case "high":
		return RiskHigh, nil
	default:
		return RiskLow, fmt.Errorf("unknown risk level %q", s)
	}
}

// MarshalJSON serializes the level as its capitalized string form.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid risk level %d", int(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts any case variant of the three level names.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}
