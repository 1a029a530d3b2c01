package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stopWords = map[string]bool{
	"los": true, "las": true, "una": true, "unos": true, "unas": true,
	"del": true, "que": true, "por": true, "para": true, "con": true,
	"sin": true, "como": true, "este": true, "esta": true, "esto": true,
	"ese": true, "esa": true, "eso": true, "hay": true, "donde": true,
	"cuando": true, "cual": true, "cuales": true, "quiero": true,
	"necesito": true, "puedo": true, "saber": true, "sobre": true,
	"hacer": true, "tiene": true, "tengo": true, "hola": true,
	"favor": true, "informacion": true, "pregunta": true, "sus": true,
	"mis": true, "son": true, "estan": true,
}

// Normalize lowers the text, strips combining diacritical marks and drops
// everything that is not a letter, digit or space. Idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	words := strings.Fields(result)
	return strings.Join(words, " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Tokenize splits normalized text into content words, dropping stopwords and
// words shorter than MinTokenLength.
func Tokenize(text string) []string {
	words := strings.Fields(Normalize(text))
	var tokens []string

	for _, word := range words {
		if len(word) >= MinTokenLength && !stopWords[word] {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
