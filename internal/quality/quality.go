package quality

// Rule names reported in violations.
const (
	RuleQuestion        = "question"
	RuleExplanation     = "explanation"
	RuleMetaCommentary  = "meta-commentary"
	RuleLengthShort     = "length-short"
	RuleLengthLong      = "length-long"
	RuleLengthMinimal   = "length-minimal"
	RuleIdentical       = "identical"
	RuleTopicDrift      = "topic-drift"
	RuleEmpty           = "empty"
	RulePunctuation     = "punctuation"
	RuleRepetition      = "repetition"
	RuleDroppedQuestion = "dropped-question"
	RuleCapsShift       = "caps-shift"
	RuleAIDisclaimer    = "ai-disclaimer"
	RuleMarkup          = "markup"
)

// Violation is one rule the candidate broke, with the points it cost.
type Violation struct {
	Rule    string `json:"rule"`
	Penalty int    `json:"penalty"`
}

// Result is the outcome of validating one candidate against its original.
type Result struct {
	Score      int         `json:"score"`
	Confidence int         `json:"confidence"`
	Violations []Violation `json:"violations"`
	Valid      bool        `json:"valid"`
}

// Options tunes a validation pass. The zero value is not the default;
// use DefaultOptions.
type Options struct {
	MinScore int
	Strict   bool
}

func DefaultOptions() Options {
	return Options{MinScore: 70, Strict: true}
}
