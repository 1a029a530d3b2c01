package nlp

import (
	"math"
	"strings"
)

// Ratio scores the closeness of two strings in [0,100]. Both inputs are
// normalized first, so the score is case and diacritic insensitive.
func Ratio(a, b string) int {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return ScoreExact
	}

	maxLen := math.Max(float64(len([]rune(na))), float64(len([]rune(nb))))
	if maxLen == 0 {
		return 0
	}

	distance := levenshteinDistance([]rune(na), []rune(nb))
	score := 100.0 * (1.0 - float64(distance)/maxLen)
	if score < 0 {
		score = 0
	}

	return int(math.Round(score))
}

// PartialRatio scores a short needle against the best-matching word window of
// a longer text. Used for spotting a known keyword inside free text.
func PartialRatio(needle, text string) int {
	nNeedle := Normalize(needle)
	nText := Normalize(text)

	if nNeedle == "" || nText == "" {
		return 0
	}
	if strings.Contains(nText, nNeedle) {
		return ScoreExact
	}

	needleWords := strings.Fields(nNeedle)
	textWords := strings.Fields(nText)
	window := len(needleWords)

	if window == 0 || len(textWords) < window {
		return Ratio(nNeedle, nText)
	}

	best := 0
	for i := 0; i+window <= len(textWords); i++ {
		candidate := strings.Join(textWords[i:i+window], " ")
		if score := Ratio(nNeedle, candidate); score > best {
			best = score
		}
	}

	return best
}

func levenshteinDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}

	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = minOf(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

func minOf(a, b, c int) int {
	if a < b && a < c {
		return a
	} else if b < c {
		return b
	}
	return c
}
