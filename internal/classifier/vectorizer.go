package classifier

import (
	"math"
	"sort"
	"strings"

	"github.com/healthwatch/riskengine/internal/textnorm"
)

// stopwords are dropped before term extraction. Small English list tuned
// for short health reports.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"been": {}, "but": {}, "by": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "that": {}, "the": {}, "their": {},
	"there": {}, "this": {}, "to": {}, "was": {}, "were": {}, "will": {},
	"with": {},
}

// tokenize normalizes text and extracts unigram and bigram terms with
// stopwords removed. Bigrams are formed over the stopword-filtered token
// sequence and joined with a single space.
func tokenize(text string) []string {
	fields := strings.Fields(textnorm.Normalize(text))

	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		kept = append(kept, f)
	}

	terms := make([]string, 0, len(kept)*2)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}

// vectorizer is the fitted term-weighted vector space: a bounded
// vocabulary with smoothed IDF weights. Immutable after fit; Transform
// only projects, it never refits.
type vectorizer struct {
	vocab map[string]int // term -> column index
	idf   []float64
}

// fitVectorizer builds the vocabulary from the tokenized corpus, keeping
// at most maxVocab terms by document frequency (ties broken
// lexicographically for determinism).
func fitVectorizer(docs [][]string, maxVocab int) *vectorizer {
	df := make(map[string]int)
	for _, terms := range docs {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	type termDF struct {
		term string
		df   int
	}
	ranked := make([]termDF, 0, len(df))
	for t, n := range df {
		ranked = append(ranked, termDF{term: t, df: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].df != ranked[j].df {
			return ranked[i].df > ranked[j].df
		}
		return ranked[i].term < ranked[j].term
	})
	if maxVocab > 0 && len(ranked) > maxVocab {
		ranked = ranked[:maxVocab]
	}

	v := &vectorizer{vocab: make(map[string]int, len(ranked))}
	v.idf = make([]float64, len(ranked))
	n := float64(len(docs))
	for i, td := range ranked {
		v.vocab[td.term] = i
		// Smoothed IDF; +1 keeps frequent terms from zeroing out.
		v.idf[i] = math.Log((1+n)/(1+float64(td.df))) + 1
	}
	return v
}

// Transform projects tokenized terms into the fitted space as a sparse
// TF-IDF vector, L2-normalized. Terms outside the vocabulary are ignored;
// a document with no recognized terms yields an empty map.
func (v *vectorizer) Transform(terms []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, t := range terms {
		if col, ok := v.vocab[t]; ok {
			vec[col]++
		}
	}
	if len(vec) == 0 {
		return vec
	}

	var sumSq float64
	for col, tf := range vec {
		w := tf * v.idf[col]
		vec[col] = w
		sumSq += w * w
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}

// Size returns the vocabulary size.
func (v *vectorizer) Size() int { return len(v.vocab) }
