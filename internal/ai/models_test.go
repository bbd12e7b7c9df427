package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplingFor(t *testing.T) {
	tests := []struct {
		name            string
		enhancementType string
		wantTemperature float64
		wantMaxTokens   int
	}{
		{"general", "general", 0.7, 2048},
		{"professional", "professional", 0.6, 2048},
		{"creative", "creative", 0.9, 2048},
		{"academic", "academic", 0.4, 2048},
		{"concise", "concise", 0.5, 1024},
		{"technical", "technical", 0.3, 2048},
		{"case insensitive", "CREATIVE", 0.9, 2048},
		{"padded", "  concise  ", 0.5, 1024},
		{"unknown falls back", "whimsical", 0.7, 2048},
		{"empty falls back", "", 0.7, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := SamplingFor(tt.enhancementType)
			assert.InDelta(t, tt.wantTemperature, params.Temperature, 1e-9)
			assert.Equal(t, tt.wantMaxTokens, params.MaxTokens)
		})
	}
}

func TestFallbackChainReturnsCopy(t *testing.T) {
	chain := FallbackChain()
	require.Len(t, chain, 4)
	assert.Equal(t, "openai/gpt-4o-mini", chain[0])

	chain[0] = "mutated"
	assert.Equal(t, "openai/gpt-4o-mini", FallbackChain()[0])
}

func TestCandidatesFor(t *testing.T) {
	t.Run("no preferred model", func(t *testing.T) {
		cands := CandidatesFor("general", "")
		require.Len(t, cands, len(FallbackChain()))
		assert.Equal(t, "openai/gpt-4o-mini", cands[0].Model)
		for _, c := range cands {
			assert.Equal(t, SamplingFor("general"), c.Params)
		}
	})

	t.Run("preferred model goes first", func(t *testing.T) {
		cands := CandidatesFor("professional", "mistralai/mistral-large")
		require.Len(t, cands, len(FallbackChain())+1)
		assert.Equal(t, "mistralai/mistral-large", cands[0].Model)
		assert.Equal(t, "openai/gpt-4o-mini", cands[1].Model)
	})

	t.Run("preferred model already in chain is not duplicated", func(t *testing.T) {
		preferred := "google/gemini-3-flash-preview"
		cands := CandidatesFor("general", preferred)
		require.Len(t, cands, len(FallbackChain()))
		assert.Equal(t, preferred, cands[0].Model)

		seen := 0
		for _, c := range cands {
			if c.Model == preferred {
				seen++
			}
		}
		assert.Equal(t, 1, seen)
	})

	t.Run("sampling follows the enhancement type", func(t *testing.T) {
		for _, c := range CandidatesFor("concise", "") {
			assert.Equal(t, 1024, c.Params.MaxTokens)
		}
	})
}
