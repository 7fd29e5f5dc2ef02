package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/pkg/dom"
)

// fieldAttrs builds an attribute list from alternating name/value pairs.
func fieldAttrs(pairs ...string) []dom.Attr {
	attrs := make([]dom.Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, dom.Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return attrs
}

func TestResolve_IdentityBeatsKeyword(t *testing.T) {
	field := &Field{ID: "email", Name: "email", Type: TypeEmail, Label: "Email address"}

	byID := Mapping{ID: "email", Value: TextValue("id wins")}
	byKeyword := Mapping{Type: TypeEmail, Keywords: []string{"email"}, Value: TextValue("keyword")}

	// Identity must win for any configuration order.
	for _, mappings := range [][]Mapping{
		{byID, byKeyword},
		{byKeyword, byID},
	} {
		m, tier := Resolve(field, mappings)
		require.NotNil(t, m)
		assert.Equal(t, TierIdentityID, tier)
		assert.Equal(t, "id wins", m.Value.Text())
	}
}

func TestResolve_IdentityName(t *testing.T) {
	field := &Field{Name: "firstName", Type: TypeText}

	mappings := []Mapping{
		{Type: TypeText, Keywords: []string{"first"}, Value: TextValue("keyword")},
		{Name: "firstName", Value: TextValue("John")},
	}

	m, tier := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, TierIdentityName, tier)
	assert.Equal(t, "John", m.Value.Text())
}

func TestResolve_IdentityIgnoredForEmptyFieldID(t *testing.T) {
	field := &Field{Name: "other", Type: TypeText, Label: "City"}

	// A mapping with an id selector must not match a field without an id.
	mappings := []Mapping{
		{ID: "city", Value: TextValue("wrong")},
		{Keywords: []string{"city"}, Value: TextValue("right")},
	}

	m, tier := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, TierKeywordOnly, tier)
	assert.Equal(t, "right", m.Value.Text())
}

func TestResolve_TypeKeywordScoring(t *testing.T) {
	field := &Field{
		Name:        "user_email",
		Type:        TypeEmail,
		Label:       "email",
		Placeholder: "Your work email",
	}

	// "email" equals the label entry exactly (2 points) while
	// "work" is only a substring of the placeholder (1 point).
	mappings := []Mapping{
		{Type: TypeEmail, Keywords: []string{"work"}, Value: TextValue("substring")},
		{Type: TypeEmail, Keywords: []string{"email"}, Value: TextValue("exact")},
	}

	m, tier := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, TierTypeKeyword, tier)
	assert.Equal(t, "exact", m.Value.Text())
}

func TestResolve_TypeKeywordRequiresTypeMatch(t *testing.T) {
	field := &Field{Name: "phone", Type: TypePhone, Label: "Phone"}

	mappings := []Mapping{
		{Type: TypeEmail, Keywords: []string{"phone"}, Value: TextValue("wrong type")},
	}

	m, tier := Resolve(field, mappings)
	assert.Nil(t, m)
	assert.Equal(t, TierNone, tier)
}

func TestResolve_ZeroScoreFallsThroughToTypeFallback(t *testing.T) {
	field := &Field{Name: "zip", Type: TypeText, Label: "Postal code"}

	// No keyword qualifies, so tier 3 yields nothing and the same
	// mapping wins via the type fallback.
	mappings := []Mapping{
		{Type: TypeText, Keywords: []string{"unrelated"}, Value: TextValue("fallback")},
	}

	m, tier := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, TierTypeFallback, tier)
}

func TestResolve_TieBreakByConfiguredOrder(t *testing.T) {
	field := &Field{Name: "email", Type: TypeEmail, Label: "email"}

	mappings := []Mapping{
		{Type: TypeEmail, Keywords: []string{"email"}, Value: TextValue("first")},
		{Type: TypeEmail, Keywords: []string{"email"}, Value: TextValue("second")},
	}

	m, _ := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, "first", m.Value.Text())
}

func TestResolve_KeywordOnly(t *testing.T) {
	field := &Field{
		Name:  "fname",
		Type:  TypeText,
		Label: "First name",
	}

	mappings := []Mapping{
		{Keywords: []string{"first", "given"}, Value: TextValue("John")},
		{Keywords: []string{"last", "family"}, Value: TextValue("Doe")},
	}

	m, tier := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, TierKeywordOnly, tier)
	assert.Equal(t, "John", m.Value.Text())
}

func TestResolve_KeywordOnlySearchesAttributeValues(t *testing.T) {
	field := &Field{
		Name:       "x1",
		Type:       TypeText,
		Attributes: fieldAttrs("data-qa", "shipping-address"),
	}

	mappings := []Mapping{
		{Keywords: []string{"shipping"}, Value: TextValue("1 Main St")},
	}

	m, tier := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, TierKeywordOnly, tier)
}

func TestResolve_KeywordOnlyNeedsTextSurface(t *testing.T) {
	// Placeholder-only identity but no label/placeholder/name text:
	// the keyword-only tier is never attempted.
	field := &Field{Type: TypeText, Attributes: fieldAttrs("data-x", "city")}

	mappings := []Mapping{
		{Keywords: []string{"city"}, Value: TextValue("x")},
	}

	m, tier := Resolve(field, mappings)
	assert.Nil(t, m)
	assert.Equal(t, TierNone, tier)
}

func TestResolve_TypeFallback(t *testing.T) {
	field := &Field{Name: "when", Type: TypeDate}

	mappings := []Mapping{
		{Type: TypeEmail, Value: TextValue("no")},
		{Type: TypeDate, Value: TextValue("2001-02-03")},
		{Type: TypeDate, Value: TextValue("later date")},
	}

	m, tier := Resolve(field, mappings)
	require.NotNil(t, m)
	assert.Equal(t, TierTypeFallback, tier)
	assert.Equal(t, "2001-02-03", m.Value.Text())
}

func TestResolve_NoMapping(t *testing.T) {
	field := &Field{Name: "anything", Type: TypeText}

	m, tier := Resolve(field, nil)
	assert.Nil(t, m)
	assert.Equal(t, TierNone, tier)

	m, tier = Resolve(field, []Mapping{{Type: TypeEmail, Value: TextValue("x")}})
	assert.Nil(t, m)
	assert.Equal(t, TierNone, tier)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "identity-id", TierIdentityID.String())
	assert.Equal(t, "identity-name", TierIdentityName.String())
	assert.Equal(t, "type-keyword", TierTypeKeyword.String())
	assert.Equal(t, "keyword-only", TierKeywordOnly.String())
	assert.Equal(t, "type-fallback", TierTypeFallback.String())
	assert.Equal(t, "none", TierNone.String())
}
