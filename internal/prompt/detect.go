package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

type cuePattern struct {
	Pattern     *regexp.Regexp
	Requirement string
}

var lengthCues = []cuePattern{
	{regexp.MustCompile(`(?i)\b(short|brief|quick)\b`), "Keep it short and to the point"},
	{regexp.MustCompile(`(?i)\bone[- ](liner|sentence)\b`), "Fit the result into a single sentence"},
	{regexp.MustCompile(`(?i)\b(longer|detailed|comprehensive|in[- ]depth|expand)\b`), "Develop the ideas in more detail"},
}

var platformCues = []cuePattern{
	{regexp.MustCompile(`(?i)\blinkedin\b`), "Shape it as a LinkedIn post"},
	{regexp.MustCompile(`(?i)\b(tweet|twitter)\b`), "Shape it as a Twitter post"},
	{regexp.MustCompile(`(?i)\binstagram\b`), "Shape it as an Instagram caption"},
	{regexp.MustCompile(`(?i)\bfacebook\b`), "Shape it as a Facebook post"},
	{regexp.MustCompile(`(?i)\b(email|e-mail)\b`), "Shape it as an email"},
	{regexp.MustCompile(`(?i)\bblog( post)?\b`), "Shape it as a blog passage"},
	{regexp.MustCompile(`(?i)\b(cover letter|resume|cv)\b`), "Shape it for a job application"},
}

var toneCues = []cuePattern{
	{regexp.MustCompile(`(?i)\b(formal(?:ly)?)\b`), "Carry a formal tone"},
	{regexp.MustCompile(`(?i)\b(casual|informal|laid[- ]back|conversational)\b`), "Keep the tone casual and conversational"},
	{regexp.MustCompile(`(?i)\b(friendly|warm|approachable)\b`), "Keep the tone warm and friendly"},
	{regexp.MustCompile(`(?i)\b(authoritative|assertive|confident)\b`), "Sound confident and authoritative"},
	{regexp.MustCompile(`(?i)\b(persuasive|convincing|compelling)\b`), "Make it persuasive"},
}

var audienceCues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfor (?:my|our|the) (boss|manager|team|clients?|customers?|investors?|students?|recruiters?)\b`),
	regexp.MustCompile(`(?i)\bto (?:my|our|the) (boss|manager|team|clients?|customers?|investors?)\b`),
}

var avoidCues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bnot too (\w+)\b`),
	regexp.MustCompile(`(?i)\bavoid (?:being |sounding )?(\w+)\b`),
	regexp.MustCompile(`(?i)\bdon'?t (?:make it|sound) (?:too )?(\w+)\b`),
	regexp.MustCompile(`(?i)\bwithout (?:being|sounding) (\w+)\b`),
}

var fillerCue = regexp.MustCompile(`(?i)\b(um+|uh+|kinda|sorta|sort of|kind of|you know|i guess|basically|literally|stuff|things)\b`)

var numericCue = regexp.MustCompile(`\d+(?:\.\d+)?\s?%|\$\s?\d[\d,]*(?:\.\d+)?\s?[kKmMbB]?|\b\d+(?:\.\d+)?x\b`)

// HasFiller reports whether the text leans on vague filler language.
func HasFiller(text string) bool {
	return fillerCue.MatchString(text)
}

// detectRequirements scans the raw text for cues about what the author
// wants and turns each into an explicit instruction. An empty slice means
// nothing was detected.
func detectRequirements(text string) []string {
	var requirements []string
	seen := map[string]struct{}{}

	add := func(req string) {
		if _, ok := seen[req]; ok {
			return
		}
		seen[req] = struct{}{}
		requirements = append(requirements, req)
	}

	// Negated adjectives ("not too formal") must not double as tone cues.
	avoided := map[string]struct{}{}
	var avoidReqs []string
	for _, cue := range avoidCues {
		if matches := cue.FindStringSubmatch(text); matches != nil {
			adjective := strings.ToLower(matches[1])
			avoided[adjective] = struct{}{}
			avoidReqs = append(avoidReqs, fmt.Sprintf("Do not make it sound %s", adjective))
		}
	}

	for _, cue := range lengthCues {
		if cue.Pattern.MatchString(text) {
			add(cue.Requirement)
		}
	}

	for _, cue := range platformCues {
		if cue.Pattern.MatchString(text) {
			add(cue.Requirement)
		}
	}

	for _, cue := range toneCues {
		matches := cue.Pattern.FindStringSubmatch(text)
		if matches == nil {
			continue
		}
		if _, banned := avoided[strings.ToLower(matches[1])]; banned {
			continue
		}
		add(cue.Requirement)
	}

	for _, cue := range audienceCues {
		if matches := cue.FindStringSubmatch(text); matches != nil {
			add(fmt.Sprintf("Suit the wording to the author's %s", strings.ToLower(matches[1])))
		}
	}

	for _, req := range avoidReqs {
		add(req)
	}

	if HasFiller(text) {
		add("Replace vague filler language with precise wording")
	}

	if figures := numericCue.FindAllString(text, -1); len(figures) > 0 {
		add("Preserve these figures exactly: " + strings.Join(dedupe(figures), ", "))
	}

	return requirements
}

func dedupe(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
