package annotate

import (
	"strings"
	"unicode"
)

// Token is one word-like unit of text.
type Token struct {
	Text  string
	Alpha bool // every rune is a letter
}

// Tokenize splits text on every rune that is not a letter or digit.
// Tokens keep their original case.
func Tokenize(text string) []Token {
	var tokens []Token
	var current strings.Builder
	alpha := true

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, Token{Text: current.String(), Alpha: alpha})
			current.Reset()
		}
		alpha = true
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			current.WriteRune(r)
		case unicode.IsDigit(r):
			current.WriteRune(r)
			alpha = false
		default:
			flush()
		}
	}

	// Don't forget the last token
	flush()

	return tokens
}
