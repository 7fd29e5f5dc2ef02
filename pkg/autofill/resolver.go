package autofill

import (
	"strings"
)

// Tier identifies which precedence level of the matching algorithm
// produced a match. Lower tiers are tried first; the first tier that
// yields a candidate wins outright.
type Tier int

const (
	// TierNone means no mapping matched
	TierNone Tier = iota
	// TierIdentityID matches the field's id exactly
	TierIdentityID
	// TierIdentityName matches the field's name exactly
	TierIdentityName
	// TierTypeKeyword matches on equal type plus keyword score
	TierTypeKeyword
	// TierKeywordOnly matches on keywords alone, any type
	TierKeywordOnly
	// TierTypeFallback matches the first mapping of equal type
	TierTypeFallback
)

// String returns the tier name used in debug logs and reports.
func (t Tier) String() string {
	switch t {
	case TierIdentityID:
		return "identity-id"
	case TierIdentityName:
		return "identity-name"
	case TierTypeKeyword:
		return "type-keyword"
	case TierKeywordOnly:
		return "keyword-only"
	case TierTypeFallback:
		return "type-fallback"
	default:
		return "none"
	}
}

// bagAttributes are the attribute names whose values feed the
// type+keyword matching bag.
var bagAttributes = []string{"title", "alt", "aria-label", "data-label"}

// Resolve selects the best mapping for a field, if any. Tiers are tried
// in precedence order; within a scoring tier the highest score wins and
// equal scores resolve to the mapping configured earlier, so resolution
// is deterministic for a given field and mapping sequence.
func Resolve(field *Field, mappings []Mapping) (*Mapping, Tier) {
	// Identity tiers: exact id, then exact name, first configured wins.
	if field.ID != "" {
		for i := range mappings {
			if mappings[i].ID == field.ID {
				return &mappings[i], TierIdentityID
			}
		}
	}
	if field.Name != "" {
		for i := range mappings {
			if mappings[i].Name == field.Name {
				return &mappings[i], TierIdentityName
			}
		}
	}

	if m := matchTypeKeyword(field, mappings); m != nil {
		return m, TierTypeKeyword
	}
	if m := matchKeywordOnly(field, mappings); m != nil {
		return m, TierKeywordOnly
	}

	// Type fallback: first mapping of equal type, regardless of keywords.
	for i := range mappings {
		if mappings[i].Type != "" && mappings[i].Type == field.Type {
			return &mappings[i], TierTypeFallback
		}
	}

	return nil, TierNone
}

// matchTypeKeyword scores mappings that specify a matching type (and
// neither id nor name) against the field's keyword bag. A mapping with
// zero qualifying keywords never wins this tier.
func matchTypeKeyword(field *Field, mappings []Mapping) *Mapping {
	bag := keywordBag(field)
	if len(bag) == 0 {
		return nil
	}

	var best *Mapping
	bestScore := 0
	for i := range mappings {
		m := &mappings[i]
		if m.ID != "" || m.Name != "" || m.Type == "" || m.Type != field.Type {
			continue
		}
		if score := scoreAgainstBag(m.Keywords, bag); score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

// keywordBag collects the lowercased matching surface for the
// type+keyword tier: label, placeholder, selected attribute values,
// and the field's name.
func keywordBag(field *Field) []string {
	var bag []string
	add := func(s string) {
		if s != "" {
			bag = append(bag, strings.ToLower(s))
		}
	}

	add(field.Label)
	add(field.Placeholder)
	for _, name := range bagAttributes {
		add(field.Attr(name))
	}
	add(field.Name)
	return bag
}

// scoreAgainstBag scores one keyword list against the bag: each keyword
// earns one point when it is a substring of any bag entry, and one more
// when it equals that entry exactly.
func scoreAgainstBag(keywords, bag []string) int {
	total := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		best := 0
		for _, entry := range bag {
			if !strings.Contains(entry, kw) {
				continue
			}
			points := 1
			if entry == kw {
				points = 2
			}
			if points > best {
				best = points
			}
		}
		total += best
	}
	return total
}

// matchKeywordOnly scores mappings with keywords but no selectors at
// all against one concatenated haystack of the field's text surfaces.
// Only attempted when the field has at least one of label, placeholder,
// or name.
func matchKeywordOnly(field *Field, mappings []Mapping) *Mapping {
	if field.Label == "" && field.Placeholder == "" && field.Name == "" {
		return nil
	}

	parts := []string{field.Label, field.Placeholder, field.Name}
	for _, attr := range field.Attributes {
		parts = append(parts, attr.Value)
	}
	haystack := strings.ToLower(strings.Join(parts, " "))

	var best *Mapping
	bestScore := 0
	for i := range mappings {
		m := &mappings[i]
		if m.ID != "" || m.Name != "" || m.Type != "" || len(m.Keywords) == 0 {
			continue
		}
		score := 0
		for _, kw := range m.Keywords {
			if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}
