package quality

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Penalties per rule. Scores start at 100 and penalties accumulate.
const (
	penaltyQuestion        = 60
	penaltyExplanation     = 40
	penaltyMetaCommentary  = 35
	penaltyLengthShort     = 30
	penaltyLengthLong      = 25
	penaltyLengthMinimal   = 40
	penaltyIdentical       = 50
	penaltyTopicDrift      = 45
	penaltyEmpty           = 100
	penaltyPunctuation     = 15
	penaltyRepetition      = 10
	penaltyDroppedQuestion = 20
	penaltyCapsShift       = 15
	penaltyAIDisclaimer    = 25
	penaltyMarkup          = 10
)

const (
	minLengthRatio = 0.3
	maxLengthRatio = 4.0
	minRewriteLen  = 10
	minOverlap     = 0.3
	maxCapsRatio   = 3.0
	minCapsRatio   = 0.3
)

var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\?`),
	regexp.MustCompile(`(?i)\bcould you\b`),
	regexp.MustCompile(`(?i)\bwould you like\b`),
	regexp.MustCompile(`(?i)\bwhat kind of\b`),
}

var explanationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhere is\b`),
	regexp.MustCompile(`(?i)\bhere'?s\b`),
	regexp.MustCompile(`(?i)\bi'?ve rewritten\b`),
	regexp.MustCompile(`(?i)\bthe enhanced text is\b`),
}

var metaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbased on your request\b`),
	regexp.MustCompile(`(?i)\bto improve\b`),
	regexp.MustCompile(`(?i)\bthe changes include\b`),
}

var disclaimerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bas an ai\b`),
	regexp.MustCompile(`(?i)\bi cannot\b`),
	regexp.MustCompile(`(?i)\bi apologize\b`),
}

var markupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*\*[^*]+\*\*`),
	regexp.MustCompile("`[^`]+`"),
	regexp.MustCompile(`(?m)^#{1,6}\s`),
	regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`),
	regexp.MustCompile(`</?[a-zA-Z][^>]*>`),
}

// checkQuestions flags candidates that interrogate instead of rewriting.
func checkQuestions(original, candidate string) []Violation {
	for _, p := range questionPatterns {
		if p.MatchString(candidate) {
			return []Violation{{Rule: RuleQuestion, Penalty: penaltyQuestion}}
		}
	}
	return nil
}

// checkExplanations flags framing like "here is the enhanced version".
func checkExplanations(original, candidate string) []Violation {
	for _, p := range explanationPatterns {
		if p.MatchString(candidate) {
			return []Violation{{Rule: RuleExplanation, Penalty: penaltyExplanation}}
		}
	}
	return nil
}

// checkMetaCommentary flags commentary about the request or the edits.
func checkMetaCommentary(original, candidate string) []Violation {
	for _, p := range metaPatterns {
		if p.MatchString(candidate) {
			return []Violation{{Rule: RuleMetaCommentary, Penalty: penaltyMetaCommentary}}
		}
	}
	return nil
}

// checkLength compares sizes. A candidate under the rewrite minimum is
// flagged on its own; otherwise the ratio band applies.
func checkLength(original, candidate string) []Violation {
	origLen := utf8.RuneCountInString(strings.TrimSpace(original))
	candLen := utf8.RuneCountInString(strings.TrimSpace(candidate))

	if candLen < minRewriteLen {
		return []Violation{{Rule: RuleLengthMinimal, Penalty: penaltyLengthMinimal}}
	}
	if origLen == 0 {
		return nil
	}

	ratio := float64(candLen) / float64(origLen)
	if ratio < minLengthRatio {
		return []Violation{{Rule: RuleLengthShort, Penalty: penaltyLengthShort}}
	}
	if ratio > maxLengthRatio {
		return []Violation{{Rule: RuleLengthLong, Penalty: penaltyLengthLong}}
	}
	return nil
}

// checkPreservation rejects echoes of the original and rewrites that lose
// its substance.
func checkPreservation(original, candidate string) []Violation {
	origTrim := strings.TrimSpace(original)
	candTrim := strings.TrimSpace(candidate)
	if candTrim == "" {
		return nil
	}

	if strings.EqualFold(origTrim, candTrim) {
		return []Violation{{Rule: RuleIdentical, Penalty: penaltyIdentical}}
	}

	if contentOverlap(original, candidate) < minOverlap {
		return []Violation{{Rule: RuleTopicDrift, Penalty: penaltyTopicDrift}}
	}
	return nil
}

func checkBasicDefects(original, candidate string) []Violation {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return []Violation{{Rule: RuleEmpty, Penalty: penaltyEmpty}}
	}

	var violations []Violation

	if utf8.RuneCountInString(trimmed) > 20 && !endsWithTerminal(trimmed) {
		violations = append(violations, Violation{Rule: RulePunctuation, Penalty: penaltyPunctuation})
	}

	if hasExcessiveRepetition(trimmed) {
		violations = append(violations, Violation{Rule: RuleRepetition, Penalty: penaltyRepetition})
	}

	return violations
}

func checkToneShift(original, candidate string) []Violation {
	var violations []Violation

	if strings.Contains(original, "?") && !strings.Contains(candidate, "?") {
		violations = append(violations, Violation{Rule: RuleDroppedQuestion, Penalty: penaltyDroppedQuestion})
	}

	origDensity, origOK := capsDensity(original)
	candDensity, candOK := capsDensity(candidate)
	if origOK && candOK && origDensity > 0 {
		ratio := candDensity / origDensity
		if ratio > maxCapsRatio || ratio < minCapsRatio {
			violations = append(violations, Violation{Rule: RuleCapsShift, Penalty: penaltyCapsShift})
		}
	}

	return violations
}

func checkStrictMode(original, candidate string) []Violation {
	var violations []Violation

	for _, p := range disclaimerPatterns {
		if p.MatchString(candidate) {
			violations = append(violations, Violation{Rule: RuleAIDisclaimer, Penalty: penaltyAIDisclaimer})
			break
		}
	}

	for _, p := range markupPatterns {
		if p.MatchString(candidate) {
			violations = append(violations, Violation{Rule: RuleMarkup, Penalty: penaltyMarkup})
			break
		}
	}

	return violations
}

// contentOverlap measures how much of the original's significant vocabulary
// (words longer than three characters) survives in the candidate.
func contentOverlap(original, candidate string) float64 {
	origWords := significantWords(original)
	if len(origWords) == 0 {
		return 1
	}

	candWords := significantWords(candidate)
	shared := 0
	for w := range origWords {
		if _, ok := candWords[w]; ok {
			shared++
		}
	}

	return float64(shared) / float64(len(origWords))
}

func significantWords(s string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, w := range splitWords(s) {
		if utf8.RuneCountInString(w) > 3 {
			words[w] = struct{}{}
		}
	}
	return words
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func endsWithTerminal(s string) bool {
	s = strings.TrimRight(s, `"')`+"`")
	last, _ := utf8.DecodeLastRuneInString(s)
	return last == '.' || last == '!' || last == '?'
}

// hasExcessiveRepetition reports any word longer than four characters used
// more than three times.
func hasExcessiveRepetition(s string) bool {
	counts := map[string]int{}
	for _, w := range splitWords(s) {
		if utf8.RuneCountInString(w) <= 4 {
			continue
		}
		counts[w]++
		if counts[w] > 3 {
			return true
		}
	}
	return false
}

func capsDensity(s string) (float64, bool) {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0, false
	}
	return float64(upper) / float64(letters), true
}
