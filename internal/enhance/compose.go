package enhance

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/polishai/polish/internal/ai"
	"github.com/polishai/polish/internal/prompt"
	"github.com/polishai/polish/internal/quality"
)

// Quality bands for the improvements summary.
const (
	bandExcellent = 90
	bandStrong    = 80
	bandModerate  = 70
)

// wordDeltaNoise is the word-count change below which the rewrite counts as
// staying at the original length.
const wordDeltaNoise = 3

// Result is the composed outcome of an enhancement run.
type Result struct {
	EnhancedText     string        `json:"enhancedText"`
	OriginalLength   int           `json:"originalLength"`
	EnhancedLength   int           `json:"enhancedLength"`
	ProcessingTimeMs int64         `json:"processingTimeMs"`
	QualityScore     int           `json:"qualityScore"`
	Confidence       int           `json:"confidence"`
	Valid            bool          `json:"valid"`
	ModelUsed        string        `json:"modelUsed"`
	Stages           int           `json:"stages"`
	Improvements     []string      `json:"improvements"`
	Attempts         []AttemptInfo `json:"attempts,omitempty"`
}

// AttemptInfo mirrors one cascade attempt for reporting.
type AttemptInfo struct {
	Model     string `json:"model"`
	Succeeded bool   `json:"succeeded"`
	ElapsedMs int64  `json:"elapsedMs"`
	Error     string `json:"error,omitempty"`
}

func compose(req Request, comp *ai.Completion, check quality.Result, attempts []ai.Attempt, stages int, elapsed time.Duration) *Result {
	res := &Result{
		EnhancedText:     comp.Text,
		OriginalLength:   utf8.RuneCountInString(req.Text),
		EnhancedLength:   utf8.RuneCountInString(comp.Text),
		ProcessingTimeMs: elapsed.Milliseconds(),
		QualityScore:     check.Score,
		Confidence:       check.Confidence,
		Valid:            check.Valid,
		ModelUsed:        comp.Model,
		Stages:           stages,
		Improvements:     summarizeImprovements(req.Text, comp.Text, check),
	}

	for _, a := range attempts {
		info := AttemptInfo{
			Model:     a.Model,
			Succeeded: a.Err == nil,
			ElapsedMs: a.Elapsed.Milliseconds(),
		}
		if a.Err != nil {
			info.Error = a.Err.Error()
		}
		res.Attempts = append(res.Attempts, info)
	}

	return res
}

// summarizeImprovements derives the summary from measurements of the two
// texts, never from the model's own claims.
func summarizeImprovements(original, enhanced string, check quality.Result) []string {
	var improvements []string

	origWords := len(strings.Fields(original))
	enhWords := len(strings.Fields(enhanced))
	switch {
	case enhWords > origWords+wordDeltaNoise:
		improvements = append(improvements, fmt.Sprintf("Expanded content by %d words", enhWords-origWords))
	case origWords > enhWords+wordDeltaNoise:
		improvements = append(improvements, fmt.Sprintf("Tightened wording by %d words", origWords-enhWords))
	default:
		improvements = append(improvements, "Refined wording at the original length")
	}

	if !endsWithTerminal(original) && endsWithTerminal(enhanced) {
		improvements = append(improvements, "Added terminal punctuation")
	}

	if prompt.HasFiller(original) && !prompt.HasFiller(enhanced) {
		improvements = append(improvements, "Removed filler language")
	}

	switch {
	case check.Score >= bandExcellent:
		improvements = append(improvements, "Significantly improved clarity and engagement")
	case check.Score >= bandStrong:
		improvements = append(improvements, "Improved overall clarity")
	case check.Score >= bandModerate:
		improvements = append(improvements, "Moderately improved readability")
	default:
		improvements = append(improvements, "Limited improvement; review the result")
	}

	return improvements
}

func endsWithTerminal(s string) bool {
	s = strings.TrimRight(strings.TrimSpace(s), `"')`+"`")
	last, _ := utf8.DecodeLastRuneInString(s)
	return last == '.' || last == '!' || last == '?'
}
