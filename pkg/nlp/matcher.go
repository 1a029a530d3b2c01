package nlp

import (
	"sort"
)

type matcher struct {
	entries []Entry
}

func NewMatcher(entries []Entry) IMatcher {
	return &matcher{entries: entries}
}

// Match resolves a question against the knowledge base. Exact normalized
// matches short-circuit; otherwise fuzzy scoring, category-priority
// disambiguation and a token-overlap fallback decide between a direct answer,
// a confirm prompt, a numbered choice list or a miss.
func (m *matcher) Match(question string) *MatchResult {
	normalized := Normalize(question)

	candidates := make([]Candidate, 0, len(m.entries))
	for _, entry := range m.entries {
		best := Candidate{Category: entry.Category, Answer: entry.Answer}
		for _, variant := range entry.Variants {
			if Normalize(variant) == normalized {
				return &MatchResult{
					Kind:        MatchAnswered,
					Answer:      entry.Answer,
					Category:    entry.Category,
					BestScore:   ScoreExact,
					BestVariant: variant,
				}
			}

			if score := Ratio(normalized, variant); score > best.Score {
				best.Score = score
				best.Variant = variant
			}
		}
		candidates = append(candidates, best)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	var high []Candidate
	for _, c := range candidates {
		if c.Score >= ThresholdHigh {
			high = append(high, c)
		}
	}

	if len(high) > 0 {
		return m.resolveCandidates(filterByCategory(high), candidates)
	}

	if len(candidates) > 0 {
		best := candidates[0]
		if best.Score >= ConfirmBandLow && best.Score < ThresholdHigh {
			return &MatchResult{
				Kind:        MatchClarify,
				Candidate:   &best,
				BestScore:   best.Score,
				BestVariant: best.Variant,
			}
		}
	}

	if overlapping := m.tokenOverlap(question); len(overlapping) > 0 {
		return m.resolveCandidates(filterByCategory(overlapping), candidates)
	}

	result := &MatchResult{Kind: MatchNone}
	if len(candidates) > 0 {
		result.BestScore = candidates[0].Score
		result.BestVariant = candidates[0].Variant
	}
	return result
}

func (m *matcher) resolveCandidates(survivors, all []Candidate) *MatchResult {
	if len(survivors) == 1 {
		only := survivors[0]
		return &MatchResult{
			Kind:        MatchAnswered,
			Answer:      only.Answer,
			Category:    only.Category,
			BestScore:   only.Score,
			BestVariant: only.Variant,
		}
	}

	choices := survivors
	if len(choices) > MaxChoices {
		choices = choices[:MaxChoices]
	}

	result := &MatchResult{Kind: MatchChoose, Choices: choices}
	if len(all) > 0 {
		result.BestScore = all[0].Score
		result.BestVariant = all[0].Variant
	}
	return result
}

// tokenOverlap qualifies entries that share enough content words with the
// question even when edit distance stays low.
func (m *matcher) tokenOverlap(question string) []Candidate {
	questionTokens := tokenSet(Tokenize(question))
	if len(questionTokens) == 0 {
		return nil
	}

	var qualified []Candidate
	for _, entry := range m.entries {
		best := Candidate{Category: entry.Category, Answer: entry.Answer}
		qualifies := false

		for _, variant := range entry.Variants {
			variantTokens := tokenSet(Tokenize(variant))
			if len(variantTokens) == 0 {
				continue
			}

			shared := 0
			for token := range questionTokens {
				if variantTokens[token] {
					shared++
				}
			}

			union := len(questionTokens) + len(variantTokens) - shared
			jaccard := 0.0
			if union > 0 {
				jaccard = float64(shared) / float64(union)
			}

			if shared >= MinSharedTokens || jaccard >= MinJaccard {
				qualifies = true
				if score := Ratio(question, variant); score > best.Score {
					best.Score = score
					best.Variant = variant
				}
			}
		}

		if qualifies {
			qualified = append(qualified, best)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})

	return qualified
}

// filterByCategory applies disambiguation priority: farewell entries always
// win outright, and greeting/mood entries are dropped when mixed with
// substantive ones.
func filterByCategory(candidates []Candidate) []Candidate {
	var farewells []Candidate
	for _, c := range candidates {
		if c.Category == CategoryFarewell {
			farewells = append(farewells, c)
		}
	}
	if len(farewells) > 0 {
		return farewells
	}

	var smallTalk, substantive []Candidate
	for _, c := range candidates {
		if c.Category == CategoryGreeting || c.Category == CategoryMood {
			smallTalk = append(smallTalk, c)
		} else {
			substantive = append(substantive, c)
		}
	}

	if len(smallTalk) > 0 && len(substantive) > 0 {
		return substantive
	}

	return candidates
}
