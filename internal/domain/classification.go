package domain

// SignalSource identifies which signal produced the final risk label.
type SignalSource string

const (
	SignalKeyword  SignalSource = "keyword"
	SignalModel    SignalSource = "model"
	SignalFeedback SignalSource = "feedback"
)

// ClassificationResult is the engine's output for a single content record.
// Produced exactly once per input item; immutable once returned. Source is
// carried over from the originating record so a truncated batch still
// attributes every result correctly.
type ClassificationResult struct {
	Content         string       `json:"content"`
	Source          string       `json:"source,omitempty"`
	Risk            RiskLevel    `json:"risk"`
	Confidence      float64      `json:"confidence"` // always in [0,1]
	FeedbackApplied bool         `json:"feedback_applied"`
	SourceSignal    SignalSource `json:"source_signal"`

	// MatchedKeyword is the trigger phrase that fired when the keyword
	// signal won. Empty otherwise.
	MatchedKeyword string `json:"matched_keyword,omitempty"`
}

// BatchResult is the output of a batch classification run. When a batch is
// cancelled mid-way, Results holds the items evaluated so far (in input
// order) and Truncated is set.
type BatchResult struct {
	Results   []ClassificationResult `json:"results"`
	Truncated bool                   `json:"truncated"`
}

// TrainingExample is one labeled document for the statistical model.
type TrainingExample struct {
	Content string    `json:"content"`
	Label   RiskLevel `json:"label"`
}

// FeedbackEntry is a human-asserted label as it arrives at the feedback
// boundary. UserFeedback is the raw label string; it is validated against
// the RiskLevel enumeration when the feedback index is built.
type FeedbackEntry struct {
	Content      string `json:"content"`
	UserFeedback string `json:"user_feedback"`
}
