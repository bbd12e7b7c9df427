package enhance

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxTextChars = 8000

var (
	ErrEmptyText   = errors.New("text is required")
	ErrTextTooLong = errors.New("text exceeds the 8000 character limit")
)

// Type selects the enhancement profile.
type Type string

const (
	TypeGeneral      Type = "general"
	TypeProfessional Type = "professional"
	TypeCreative     Type = "creative"
	TypeAcademic     Type = "academic"
	TypeConcise      Type = "concise"
	TypeTechnical    Type = "technical"
)

var allTypes = []Type{
	TypeGeneral,
	TypeProfessional,
	TypeCreative,
	TypeAcademic,
	TypeConcise,
	TypeTechnical,
}

// Types returns the selectable enhancement types in display order.
func Types() []Type {
	types := make([]Type, len(allTypes))
	copy(types, allTypes)
	return types
}

func (t Type) IsValid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType normalizes user input; unknown or empty values fall back to
// TypeGeneral.
func ParseType(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t
	}
	return TypeGeneral
}

// Tone is an optional stylistic direction; the empty tone means unset.
type Tone string

const (
	ToneFormal        Tone = "formal"
	ToneCasual        Tone = "casual"
	ToneFriendly      Tone = "friendly"
	ToneAuthoritative Tone = "authoritative"
	TonePersuasive    Tone = "persuasive"
)

var allTones = []Tone{
	ToneFormal,
	ToneCasual,
	ToneFriendly,
	ToneAuthoritative,
	TonePersuasive,
}

func (t Tone) IsValid() bool {
	if t == "" {
		return true
	}
	for _, known := range allTones {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTone normalizes user input; unknown values become the unset tone.
func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if t != "" && t.IsValid() {
		return t
	}
	return ""
}

// Request is one enhancement job.
type Request struct {
	Text         string
	Type         Type
	Tone         Tone
	Audience     string
	Instructions string
}

// Validate gates the request before any prompt building or network I/O.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	if utf8.RuneCountInString(r.Text) > maxTextChars {
		return ErrTextTooLong
	}
	return nil
}
