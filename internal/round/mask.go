package round

import (
	"strings"
	"unicode"
)

// Blank marks a hidden character of the completion template.
const Blank = '_'

// SlotMarker in a template stands for the whole solution phrase.
const SlotMarker = "{}"

// Mask is the completion template as shown to the player.
type Mask struct {
	Text     string `json:"text"`
	Blanks   int    `json:"blanks"`
	Revealed int    `json:"revealed"`
}

// MaskTemplate hides the solution inside template. A "{}" slot is expanded to one
// blank per solution letter; any literal occurrence of the solution (any case) has
// its letters blanked. Characters already blank stay blank.
func MaskTemplate(template, solution string) Mask {
	masked := blankLetters(solution)
	text := strings.ReplaceAll(template, SlotMarker, masked)
	if strings.TrimSpace(solution) != "" {
		text = replaceFold(text, solution, masked)
	}

	m := Mask{Text: text}
	for _, r := range text {
		switch {
		case r == Blank:
			m.Blanks++
		case !unicode.IsSpace(r):
			m.Revealed++
		}
	}
	return m
}

func blankLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return Blank
		}
		return r
	}, s)
}

// replaceFold replaces every case-insensitive occurrence of old in s. It works on
// runes so case folding that changes byte length cannot misalign indexes.
func replaceFold(s, old, repl string) string {
	src, pat := []rune(s), []rune(old)
	var b strings.Builder
	for i := 0; i < len(src); {
		if i+len(pat) <= len(src) && strings.EqualFold(string(src[i:i+len(pat)]), old) {
			b.WriteString(repl)
			i += len(pat)
			continue
		}
		b.WriteRune(src[i])
		i++
	}
	return b.String()
}
