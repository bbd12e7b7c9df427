package enhance

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"general", TypeGeneral},
		{"professional", TypeProfessional},
		{"creative", TypeCreative},
		{"academic", TypeAcademic},
		{"concise", TypeConcise},
		{"technical", TypeTechnical},
		{"PROFESSIONAL", TypeProfessional},
		{"  creative  ", TypeCreative},
		{"whimsical", TypeGeneral},
		{"", TypeGeneral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseType(tt.in), "input %q", tt.in)
	}
}

func TestTypesReturnsCopy(t *testing.T) {
	types := Types()
	assert.Len(t, types, 6)
	assert.Equal(t, TypeGeneral, types[0])

	types[0] = Type("mutated")
	assert.Equal(t, TypeGeneral, Types()[0])
}

func TestTypeIsValid(t *testing.T) {
	assert.True(t, TypeConcise.IsValid())
	assert.False(t, Type("loud").IsValid())
	assert.False(t, Type("").IsValid())
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		in   string
		want Tone
	}{
		{"formal", ToneFormal},
		{"FRIENDLY", ToneFriendly},
		{" persuasive ", TonePersuasive},
		{"loud", Tone("")},
		{"", Tone("")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTone(tt.in), "input %q", tt.in)
	}
}

func TestToneIsValid(t *testing.T) {
	assert.True(t, Tone("").IsValid())
	assert.True(t, ToneCasual.IsValid())
	assert.False(t, Tone("loud").IsValid())
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"single rune", "a", nil},
		{"at the limit", strings.Repeat("a", 8000), nil},
		{"multibyte at the limit", strings.Repeat("é", 8000), nil},
		{"over the limit", strings.Repeat("a", 8001), ErrTextTooLong},
		{"multibyte over the limit", strings.Repeat("é", 8001), ErrTextTooLong},
		{"empty", "", ErrEmptyText},
		{"whitespace only", " \n\t ", ErrEmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Request{Text: tt.text}.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}
