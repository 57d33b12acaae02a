package classifier

// DefaultKeywordConfig returns the built-in trigger phrases for each risk
// level. Deployments override these via the classification.keywords config
// section; the defaults cover common outbreak-report language.
func DefaultKeywordConfig() KeywordConfig {
	return KeywordConfig{
		High: []string{
			"outbreak",
			"epidemic",
			"pandemic",
			"spreading rapidly",
			"deaths reported",
			"mass casualties",
			"health emergency",
			"emergency declared",
			"quarantine imposed",
			"critical condition",
			"uncontrolled spread",
		},
		Moderate: []string{
			"rising cases",
			"new cases confirmed",
			"cluster identified",
			"under investigation",
			"hospitalizations increasing",
			"advisory issued",
			"elevated risk",
			"cases climbing",
			"surge in infections",
		},
		Low: []string{
			"mild",
			"isolated",
			"contained",
			"recovered",
			"no new cases",
			"stable",
			"low risk",
			"routine screening",
			"under control",
		},
	}
}

// KeywordConfigFromLists builds a KeywordConfig from per-level phrase
// lists, falling back to the defaults for any empty list.
func KeywordConfigFromLists(high, moderate, low []string) KeywordConfig {
	def := DefaultKeywordConfig()
	cfg := KeywordConfig{High: high, Moderate: moderate, Low: low}
	if len(cfg.High) == 0 {
		cfg.High = def.High
	}
	if len(cfg.Moderate) == 0 {
		cfg.Moderate = def.Moderate
	}
	if len(cfg.Low) == 0 {
		cfg.Low = def.Low
	}
	return cfg
}
