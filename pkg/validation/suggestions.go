package validation

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 5

// SuggestionList returns the options close enough to input to be worth suggesting,
// closest first. Options differing from input only in case rank right after exact ones.
// Ties are broken by name.
func SuggestionList(input string, options []string) []string {
	threshold := len(input)*2/5 + 1
	lowerInput := strings.ToLower(input)

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, option := range options {
		distance := 0
		if option != input {
			lowerOption := strings.ToLower(option)
			if lowerOption == lowerInput {
				distance = 1
			} else {
				distance = levenshtein.ComputeDistance(lowerInput, lowerOption)
			}
		}
		if distance <= threshold {
			candidates = append(candidates, candidate{name: option, distance: distance})
		}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}

// didYouMean formats up to maxSuggestions names as " Did you mean A, B, or C?".
// It returns "" when there is nothing to suggest.
func didYouMean(suggestions []string) string {
	return didYouMeanPrefixed("", suggestions)
}

func didYouMeanPrefixed(subMessage string, suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	msg := " Did you mean "
	if subMessage != "" {
		msg += subMessage + " "
	}
	return msg + orList(suggestions) + "?"
}

// orList joins names as "A", "A or B" or "A, B, or C", keeping at most maxSuggestions.
func orList(items []string) string {
	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}

// quote wraps a name the way messages refer to schema and document elements.
func quote(name string) string {
	return "< " + name + " >"
}
