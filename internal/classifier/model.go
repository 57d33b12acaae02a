package classifier

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
)

// ErrInsufficientTrainingData is returned by Fit when the corpus is empty
// or covers fewer than two label classes. Fatal: there is no model to fall
// back to, so it is surfaced to the caller.
var ErrInsufficientTrainingData = errors.New("insufficient training data: need at least two label classes")

// Laplace smoothing for the naive Bayes term counts.
const nbSmoothing = 1.0

// ModelConfig holds statistical model hyperparameters.
type ModelConfig struct {
	// MaxVocabulary bounds the fitted vocabulary size.
	MaxVocabulary int
	// Estimators is the ensemble size (bootstrap-trained committee members).
	Estimators int
	// CVFolds is k for the cross-validated accuracy diagnostic.
	CVFolds int
	// Seed makes bootstrap sampling and fold assignment deterministic.
	Seed int64
}

// DefaultModelConfig returns the hyperparameters used when none are
// configured.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		MaxVocabulary: 5000,
		Estimators:    7,
		CVFolds:       5,
		Seed:          42,
	}
}

// ModelTrainer fits TrainedModel artifacts. Training is single-writer: a
// model is fully built here, then published; it is never mutated afterward.
type ModelTrainer struct {
	cfg    ModelConfig
	logger logging.Logger
}

// NewModelTrainer creates a trainer with the given hyperparameters.
func NewModelTrainer(cfg ModelConfig, logger logging.Logger) *ModelTrainer {
	if cfg.MaxVocabulary <= 0 {
		cfg.MaxVocabulary = DefaultModelConfig().MaxVocabulary
	}
	if cfg.Estimators <= 0 {
		cfg.Estimators = DefaultModelConfig().Estimators
	}
	if cfg.CVFolds < minCVFolds {
		cfg.CVFolds = DefaultModelConfig().CVFolds
	}
	return &ModelTrainer{cfg: cfg, logger: logger}
}

const minCVFolds = 3

// TrainedModel is the immutable training artifact: the fitted vector
// space, the label encoding and the fitted ensemble. Safe for concurrent
// Predict calls; retraining produces a new instance.
type TrainedModel struct {
	vec        *vectorizer
	labels     []domain.RiskLevel // class index -> level, ascending severity
	estimators []*nbEstimator
	cvAccuracy float64
	trainedAt  time.Time
}

// nbEstimator is one weighted multinomial naive Bayes committee member.
type nbEstimator struct {
	logPrior []float64   // per class
	logLik   [][]float64 // class x term
}

// Fit builds a TrainedModel from the corpus. The vocabulary, IDF weights
// and label encoding are all fitted here and only applied at inference.
// Reports a k-fold cross-validated accuracy as a logged diagnostic; the
// estimate never gates training.
func (t *ModelTrainer) Fit(examples []domain.TrainingExample) (*TrainedModel, error) {
	labels := distinctLabels(examples)
	if len(examples) == 0 || len(labels) < 2 {
		return nil, ErrInsufficientTrainingData
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(t.cfg.Seed))

	docs := make([][]string, len(examples))
	for i, ex := range examples {
		docs[i] = tokenize(ex.Content)
	}

	vec := fitVectorizer(docs, t.cfg.MaxVocabulary)

	classIndex := make(map[domain.RiskLevel]int, len(labels))
	for i, l := range labels {
		classIndex[l] = i
	}
	y := make([]int, len(examples))
	for i, ex := range examples {
		y[i] = classIndex[ex.Label]
	}

	x := make([]map[int]float64, len(docs))
	for i, terms := range docs {
		x[i] = vec.Transform(terms)
	}

	weights := classBalancedWeights(y, len(labels))

	model := &TrainedModel{
		vec:       vec,
		labels:    labels,
		trainedAt: time.Now(),
	}
	for _i := 0; _i < t.cfg.Estimators; _i++ {
		sample := bootstrapSample(rng, y, len(labels))
		model.estimators = append(model.estimators, fitNaiveBayes(x, y, weights, sample, len(labels), vec.Size()))
	}

	model.cvAccuracy = t.crossValidate(rng, x, y, weights, len(labels), vec.Size())

	if t.logger != nil {
		t.logger.Info("model training complete",
			logging.Int("examples", len(examples)),
			logging.Int("classes", len(labels)),
			logging.Int("vocabulary", vec.Size()),
			logging.Int("estimators", len(model.estimators)),
			logging.Float64("cv_accuracy", model.cvAccuracy),
			logging.Duration("duration", time.Since(start)))
	}

	return model, nil
}

// CVAccuracy returns the cross-validated accuracy estimate computed at
// training time. Diagnostic only.
func (m *TrainedModel) CVAccuracy() float64 { return m.cvAccuracy }

// TrainedAt returns when the artifact was built.
func (m *TrainedModel) TrainedAt() time.Time { return m.trainedAt }

// Predict projects text into the fitted vector space and returns the
// predicted risk level with the ensemble's mean posterior confidence. Text
// with no recognized terms returns (RiskLow, 0) without invoking the
// classifier.
func (m *TrainedModel) Predict(text string) (domain.RiskLevel, float64, error) {
	if m == nil || len(m.estimators) == 0 {
		return domain.RiskLow, 0, errors.New("model has no fitted estimators")
	}

	vec := m.vec.Transform(tokenize(text))
	if len(vec) == 0 {
		return domain.RiskLow, 0, nil
	}

	mean := make([]float64, len(m.labels))
	for _, est := range m.estimators {
		post := est.posterior(vec)
		for c, p := range post {
			mean[c] += p
		}
	}
	for c := range mean {
		mean[c] /= float64(len(m.estimators))
	}

	best := 0
	for c := 1; c < len(mean); c++ {
		if mean[c] > mean[best] {
			best = c
		}
	}
	return m.labels[best], mean[best], nil
}

// posterior returns softmax-normalized class probabilities for one member.
func (e *nbEstimator) posterior(vec map[int]float64) []float64 {
	scores := make([]float64, len(e.logPrior))
	for c := range scores {
		s := e.logPrior[c]
		for col, w := range vec {
			s += w * e.logLik[c][col]
		}
		scores[c] = s
	}

	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	var sum float64
	for c, s := range scores {
		scores[c] = math.Exp(s - maxScore)
		sum += scores[c]
	}
	for c := range scores {
		scores[c] /= sum
	}
	return scores
}

// fitNaiveBayes trains one weighted multinomial naive Bayes member on the
// sampled indices.
func fitNaiveBayes(x []map[int]float64, y []int, weights []float64, sample []int, classes, vocab int) *nbEstimator {
	termSum := make([][]float64, classes)
	for c := range termSum {
		termSum[c] = make([]float64, vocab)
	}
	classWeight := make([]float64, classes)
	var totalWeight float64

	for _, i := range sample {
		c := y[i]
		w := weights[i]
		classWeight[c] += w
		totalWeight += w
		for col, v := range x[i] {
			termSum[c][col] += w * v
		}
	}

	est := &nbEstimator{
		logPrior: make([]float64, classes),
		logLik:   make([][]float64, classes),
	}
	for c := 0; c < classes; c++ {
		est.logPrior[c] = math.Log(classWeight[c] / totalWeight)

		var rowSum float64
		for _, v := range termSum[c] {
			rowSum += v
		}
		denom := rowSum + nbSmoothing*float64(vocab)

		est.logLik[c] = make([]float64, vocab)
		for col := 0; col < vocab; col++ {
			est.logLik[c][col] = math.Log((termSum[c][col] + nbSmoothing) / denom)
		}
	}
	return est
}

// bootstrapSample draws n indices with replacement, then tops up any class
// absent from the draw with its first occurrence so every member sees
// every class.
func bootstrapSample(rng *rand.Rand, y []int, classes int) []int {
	n := len(y)
	sample := make([]int, 0, n+classes)
	present := make([]bool, classes)
	for _i := 0; _i < n; _i++ {
		i := rng.Intn(n)
		sample = append(sample, i)
		present[y[i]] = true
	}
	for c := 0; c < classes; c++ {
		if present[c] {
			continue
		}
		for i, label := range y {
			if label == c {
				sample = append(sample, i)
				break
			}
		}
	}
	return sample
}

// classBalancedWeights assigns each example the weight n/(k*n_c) so small
// classes are not drowned out.
func classBalancedWeights(y []int, classes int) []float64 {
	counts := make([]float64, classes)
	for _, c := range y {
		counts[c]++
	}
	n := float64(len(y))
	k := float64(classes)

	weights := make([]float64, len(y))
	for i, c := range y {
		weights[i] = n / (k * counts[c])
	}
	return weights
}

// crossValidate estimates accuracy with shuffled k-fold validation using a
// single naive Bayes member per fold. Folds whose training split misses a
// class are skipped; returns 0 when no fold could be evaluated.
func (t *ModelTrainer) crossValidate(rng *rand.Rand, x []map[int]float64, y []int, weights []float64, classes, vocab int) float64 {
	n := len(y)
	folds := t.cfg.CVFolds
	if folds > n {
		folds = n
	}
	if folds < 2 {
		return 0
	}

	perm := rng.Perm(n)
	assignment := make([]int, n)
	for pos, i := range perm {
		assignment[i] = pos % folds
	}

	var correct, total int
	for f := 0; f < folds; f++ {
		var train, test []int
		for i := 0; i < n; i++ {
			if assignment[i] == f {
				test = append(test, i)
			} else {
				train = append(train, i)
			}
		}
		if len(test) == 0 || !coversAllClasses(train, y, classes) {
			continue
		}

		est := fitNaiveBayes(x, y, weights, train, classes, vocab)
		for _, i := range test {
			if len(x[i]) == 0 {
				continue
			}
			post := est.posterior(x[i])
			best := 0
			for c := 1; c < len(post); c++ {
				if post[c] > post[best] {
					best = c
				}
			}
			if best == y[i] {
				correct++
			}
			total++
		}
	}

	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

func coversAllClasses(idx []int, y []int, classes int) bool {
	present := make([]bool, classes)
	for _, i := range idx {
		present[y[i]] = true
	}
	for _, p := range present {
		if !p {
			return false
		}
	}
	return true
}

// distinctLabels returns the label classes present, ascending by severity.
func distinctLabels(examples []domain.TrainingExample) []domain.RiskLevel {
	seen := make(map[domain.RiskLevel]struct{})
	for _, ex := range examples {
		seen[ex.Label] = struct{}{}
	}
	labels := make([]domain.RiskLevel, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
