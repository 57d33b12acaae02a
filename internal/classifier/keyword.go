// Package classifier implements the health-risk decision core: the keyword
// rule classifier, the statistical risk model, the feedback override
// resolver and the orchestrating engine.
package classifier

import (
	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
	"github.com/healthwatch/riskengine/internal/textnorm"
)

// KeywordConfig maps each risk level to its trigger phrases. The config is
// copied at construction; multiple differently-configured classifiers can
// coexist in one process.
type KeywordConfig struct {
	High     []string
	Moderate []string
	Low      []string
}

// KeywordClassifier performs deterministic rule matching over canonical
// text. Levels are evaluated in fixed descending severity order and the
// first level with any matching phrase wins; no phrase at all defaults to
// Low. Stateless after construction, safe for concurrent use.
type KeywordClassifier struct {
	levels []levelMatcher
}

// levelMatcher holds one Aho-Corasick automaton for a severity level.
// phrases keeps the normalized trigger list in configuration order so a
// match can be reported back by name.
type levelMatcher struct {
	level   domain.RiskLevel
	phrases []string
	matcher *ahocorasick.Matcher
}

// NewKeywordClassifier builds the per-level automatons from cfg. Trigger
// phrases are normalized the same way input text is, so matching is
// case- and punctuation-insensitive.
func NewKeywordClassifier(cfg KeywordConfig, logger logging.Logger) *KeywordClassifier {
	kc := &KeywordClassifier{}

	// Descending severity order is the classification order. Do not reorder.
	for _, lv := range []struct {
		level   domain.RiskLevel
		phrases []string
	}{
		{domain.RiskHigh, cfg.High},
		{domain.RiskModerate, cfg.Moderate},
		{domain.RiskLow, cfg.Low},
	} {
		lm := buildLevelMatcher(lv.level, lv.phrases)
		kc.levels = append(kc.levels, lm)
	}

	if logger != nil {
		logger.Info("keyword classifier initialized",
			logging.Int("high_triggers", len(kc.levels[0].phrases)),
			logging.Int("moderate_triggers", len(kc.levels[1].phrases)),
			logging.Int("low_triggers", len(kc.levels[2].phrases)))
	}

	return kc
}

func buildLevelMatcher(level domain.RiskLevel, raw []string) levelMatcher {
	phrases := make([]string, 0, len(raw))
	for _, p := range raw {
		if n := textnorm.Normalize(p); n != "" {
			phrases = append(phrases, n)
		}
	}

	lm := levelMatcher{level: level, phrases: phrases}
	if len(phrases) > 0 {
		lm.matcher = ahocorasick.NewStringMatcher(phrases)
	}
	return lm
}

// Classify returns the risk level for already-normalized text along with
// the trigger phrase that fired. Total and deterministic: a text matching
// no level returns (RiskLow, ""). A text containing triggers from several
// levels classifies at the most severe one.
func (kc *KeywordClassifier) Classify(normalized string) (domain.RiskLevel, string) {
	if normalized == "" {
		return domain.RiskLow, ""
	}

	text := []byte(normalized)
	for _, lm := range kc.levels {
		if lm.matcher == nil {
			continue
		}
		hits := lm.matcher.Match(text)
		if len(hits) == 0 {
			continue
		}
		// Report the earliest-configured phrase for a stable result.
		first := hits[0]
		for _, h := range hits[1:] {
			if h < first {
				first = h
			}
		}
		return lm.level, lm.phrases[first]
	}

	return domain.RiskLow, ""
}
