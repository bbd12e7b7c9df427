package quality

// categoryCheck is one row of the validation table: an evaluation function
// plus the confidence cost when anything in the category fires.
type categoryCheck struct {
	ConfidencePenalty int
	StrictOnly        bool
	Eval              func(original, candidate string) []Violation
}

// checks is evaluated in order; the order fixes the order of reported
// violations, which keeps results deterministic.
var checks = []categoryCheck{
	{ConfidencePenalty: 40, Eval: checkQuestions},
	{ConfidencePenalty: 30, Eval: checkExplanations},
	{ConfidencePenalty: 25, Eval: checkMetaCommentary},
	{ConfidencePenalty: 15, Eval: checkLength},
	{ConfidencePenalty: 20, Eval: checkPreservation},
	{ConfidencePenalty: 10, Eval: checkBasicDefects},
	{ConfidencePenalty: 10, Eval: checkToneShift},
	{ConfidencePenalty: 15, StrictOnly: true, Eval: checkStrictMode},
}

// Validate scores a candidate rewrite against its original. It is pure:
// no I/O, no randomness, identical inputs always produce identical results.
//
// The score starts at 100 and every violation subtracts its penalty;
// confidence starts at 100 and each category that fires subtracts its
// confidence cost once. Both floor at zero. A result is valid only when the
// score clears opts.MinScore and no violations were recorded.
func Validate(original, candidate string, opts Options) Result {
	score := 100
	confidence := 100
	var violations []Violation

	for _, chk := range checks {
		if chk.StrictOnly && !opts.Strict {
			continue
		}

		found := chk.Eval(original, candidate)
		if len(found) == 0 {
			continue
		}

		violations = append(violations, found...)
		for _, v := range found {
			score -= v.Penalty
		}
		confidence -= chk.ConfidencePenalty
	}

	if score < 0 {
		score = 0
	}
	if confidence < 0 {
		confidence = 0
	}

	return Result{
		Score:      score,
		Confidence: confidence,
		Violations: violations,
		Valid:      score >= opts.MinScore && len(violations) == 0,
	}
}
