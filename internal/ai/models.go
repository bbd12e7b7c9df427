package ai

import "strings"

// Sampling holds the generation parameters sent with a completion request.
type Sampling struct {
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// Candidate pairs a model identifier with the sampling parameters to use
// when calling it.
type Candidate struct {
	Model  string
	Params Sampling
}

// fallbackChain is the single ordered list of models the cascade walks,
// best first. Every enhancement type shares the chain; only sampling
// parameters differ per type.
var fallbackChain = []string{
	"openai/gpt-4o-mini",
	"anthropic/claude-3.5-haiku",
	"google/gemini-3-flash-preview",
	"meta-llama/llama-3.3-70b-instruct",
}

var samplingByType = map[string]Sampling{
	"general":      {Temperature: 0.7, MaxTokens: 2048, TopP: 1.0, FrequencyPenalty: 0.3, PresencePenalty: 0.3},
	"professional": {Temperature: 0.6, MaxTokens: 2048, TopP: 1.0, FrequencyPenalty: 0.3, PresencePenalty: 0.2},
	"creative":     {Temperature: 0.9, MaxTokens: 2048, TopP: 1.0, FrequencyPenalty: 0.5, PresencePenalty: 0.6},
	"academic":     {Temperature: 0.4, MaxTokens: 2048, TopP: 1.0, FrequencyPenalty: 0.2, PresencePenalty: 0.1},
	"concise":      {Temperature: 0.5, MaxTokens: 1024, TopP: 1.0, FrequencyPenalty: 0.4, PresencePenalty: 0.3},
	"technical":    {Temperature: 0.3, MaxTokens: 2048, TopP: 1.0, FrequencyPenalty: 0.2, PresencePenalty: 0.1},
}

// SamplingFor returns the sampling profile for an enhancement type, falling
// back to the general profile for unknown types.
func SamplingFor(enhancementType string) Sampling {
	key := strings.ToLower(strings.TrimSpace(enhancementType))
	if params, ok := samplingByType[key]; ok {
		return params
	}
	return samplingByType["general"]
}

// FallbackChain returns a copy of the ordered model list.
func FallbackChain() []string {
	chain := make([]string, len(fallbackChain))
	copy(chain, fallbackChain)
	return chain
}

// CandidatesFor builds the ordered candidate list for one enhancement type.
// A non-empty preferred model is tried first; if it already appears in the
// chain it is moved to the front rather than duplicated.
func CandidatesFor(enhancementType, preferredModel string) []Candidate {
	params := SamplingFor(enhancementType)

	models := make([]string, 0, len(fallbackChain)+1)
	preferredModel = strings.TrimSpace(preferredModel)
	if preferredModel != "" {
		models = append(models, preferredModel)
	}
	for _, model := range fallbackChain {
		if model == preferredModel {
			continue
		}
		models = append(models, model)
	}

	candidates := make([]Candidate, 0, len(models))
	for _, model := range models {
		candidates = append(candidates, Candidate{Model: model, Params: params})
	}

	return candidates
}
