package autofill

import (
	"strings"

	"github.com/formpilot/formpilot/pkg/dom"
)

// chooseOption picks the option to select for a set of candidate
// strings, in three passes:
//
//  1. Exact: the first option whose value or text, lowercased, equals
//     any candidate.
//  2. Substring: the first option whose value or text contains any
//     candidate.
//  3. Placeholder-skip fallback: when nothing matched, no option is
//     currently selected, and more than one option exists, pick the
//     first option that does not look like a placeholder (empty value,
//     or text containing "select" or "choose"). A select whose options
//     are all placeholders falls back to the second option. This pass
//     always counts as a match even though no candidate matched; the
//     engine prefers assigning some value over none.
func chooseOption(el *dom.Element, candidates []string) (int, bool) {
	options := el.Options()
	if len(options) == 0 {
		return -1, false
	}

	lowered := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			lowered = append(lowered, strings.ToLower(c))
		}
	}

	// Exact pass.
	for i, opt := range options {
		value := strings.ToLower(opt.OptionValue())
		text := strings.ToLower(opt.Text())
		for _, c := range lowered {
			if value == c || text == c {
				return i, true
			}
		}
	}

	// Substring pass.
	for i, opt := range options {
		value := strings.ToLower(opt.OptionValue())
		text := strings.ToLower(opt.Text())
		for _, c := range lowered {
			if strings.Contains(value, c) || strings.Contains(text, c) {
				return i, true
			}
		}
	}

	// Placeholder-skip fallback.
	if el.SelectedOption() >= 0 || len(options) < 2 {
		return -1, false
	}
	for i, opt := range options {
		if !looksLikePlaceholder(opt) {
			return i, true
		}
	}
	return 1, true
}

// looksLikePlaceholder reports whether an option reads as a prompt
// rather than a real choice.
func looksLikePlaceholder(opt *dom.Element) bool {
	if opt.OptionValue() == "" {
		return true
	}
	text := strings.ToLower(opt.Text())
	return strings.Contains(text, "select") || strings.Contains(text, "choose")
}
