package autofill

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/pkg/dom"
	"github.com/formpilot/formpilot/pkg/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWriterLogger("test", io.Discard)
}

func scan(t *testing.T, markup string) []*Field {
	t.Helper()
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)
	return NewScanner(testLogger()).Detect(doc.Root())
}

func TestDetect_ExclusionInvariant(t *testing.T) {
	fields := scan(t, `<html><body><form>
		<input type="hidden" name="token">
		<input type="submit" name="go">
		<input type="button" name="btn">
		<input type="image" name="img">
		<input type="reset" name="clear">
		<input type="text" name="kept">
		<input type="text" name="off" disabled>
		<select name="alsoOff" disabled><option>x</option></select>
	</form></body></html>`)

	require.Len(t, fields, 1)
	assert.Equal(t, "kept", fields[0].Name)
}

func TestDetect_IdentityInvariant(t *testing.T) {
	fields := scan(t, `<html><body><form>
		<input type="text">
		<input type="text" id="byId">
		<input type="text" name="byName">
		<input type="text" placeholder="by placeholder">
	</form></body></html>`)

	require.Len(t, fields, 3)
	for _, f := range fields {
		assert.True(t, f.ID != "" || f.Name != "" || f.Placeholder != "",
			"field %+v has no identity signal", f)
	}
}

func TestDetect_FormContainersScannedFirst(t *testing.T) {
	// When forms exist, inputs outside them are not scanned.
	fields := scan(t, `<html><body>
		<input type="text" name="orphan">
		<form><input type="text" name="inFormA"></form>
		<form><input type="text" name="inFormB"></form>
	</body></html>`)

	require.Len(t, fields, 2)
	assert.Equal(t, "inFormA", fields[0].Name)
	assert.Equal(t, "inFormB", fields[1].Name)
}

func TestDetect_FallbackWithoutForms(t *testing.T) {
	fields := scan(t, `<html><body>
		<div><input type="text" name="loose"></div>
		<textarea name="comments"></textarea>
	</body></html>`)

	require.Len(t, fields, 2)
	assert.Equal(t, "loose", fields[0].Name)
	assert.Equal(t, "comments", fields[1].Name)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   FieldType
	}{
		{"text", `<input type="text" name="f">`, TypeText},
		{"email", `<input type="email" name="f">`, TypeEmail},
		{"password", `<input type="password" name="f">`, TypePassword},
		{"tel maps to phone", `<input type="tel" name="f">`, TypePhone},
		{"number", `<input type="number" name="f">`, TypeNumber},
		{"url", `<input type="url" name="f">`, TypeURL},
		{"search", `<input type="search" name="f">`, TypeSearch},
		{"date", `<input type="date" name="f">`, TypeDate},
		{"month", `<input type="month" name="f">`, TypeMonth},
		{"week", `<input type="week" name="f">`, TypeWeek},
		{"time", `<input type="time" name="f">`, TypeTime},
		{"datetime-local", `<input type="datetime-local" name="f">`, TypeDateTime},
		{"checkbox", `<input type="checkbox" name="f">`, TypeCheckbox},
		{"radio", `<input type="radio" name="f">`, TypeRadio},
		{"no type attr defaults to text", `<input name="f">`, TypeText},
		{"unrecognized type defaults to text", `<input type="futuristic" name="f">`, TypeText},
		{"type match is case-sensitive", `<input type="EMAIL" name="f">`, TypeText},
		{"textarea", `<textarea name="f"></textarea>`, TypeTextArea},
		{"select", `<select name="f"><option>x</option></select>`, TypeSelect},
		{"select multiple", `<select name="f" multiple><option>x</option></select>`, TypeSelectMultiple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := scan(t, "<html><body><form>"+tt.markup+"</form></body></html>")
			require.Len(t, fields, 1)
			assert.Equal(t, tt.want, fields[0].Type)
		})
	}
}

func TestClassify_UnknownElementKind(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><button id="b">Go</button></body></html>`)
	require.NoError(t, err)
	button := doc.Root().FindAll("button")[0]
	assert.Equal(t, TypeUnknown, Classify(button))
}

func TestResolveLabel(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name: "explicit for-reference",
			markup: `<label for="email">Email address</label>
				<input type="email" id="email" name="email">`,
			want: "Email address",
		},
		{
			name: "wrapping label with own text subtracted",
			markup: `<label>Country
				<select name="country"><option>Iceland</option></select>
			</label>`,
			want: "Country",
		},
		{
			name:   "aria-label",
			markup: `<input type="text" name="q" aria-label="Search query">`,
			want:   "Search query",
		},
		{
			name: "aria-labelledby",
			markup: `<span id="cap">Phone number</span>
				<input type="tel" name="phone" aria-labelledby="cap">`,
			want: "Phone number",
		},
		{
			name: "for-reference beats aria-label",
			markup: `<label for="f">From label</label>
				<input type="text" id="f" name="f" aria-label="From aria">`,
			want: "From label",
		},
		{
			name:   "no label at all",
			markup: `<input type="text" name="bare">`,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := scan(t, "<html><body><form>"+tt.markup+"</form></body></html>")
			require.Len(t, fields, 1)
			assert.Equal(t, tt.want, fields[0].Label)
		})
	}
}

func TestDetect_AttributesCaptured(t *testing.T) {
	fields := scan(t, `<html><body><form>
		<input type="text" name="user" title="User name" data-label="login" maxlength="20">
	</form></body></html>`)

	require.Len(t, fields, 1)
	f := fields[0]
	assert.Equal(t, "User name", f.Attr("title"))
	assert.Equal(t, "login", f.Attr("data-label"))
	assert.Equal(t, "20", f.Attr("maxlength"))
}

func TestDetect_AutoCompleteMarker(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"autocomplete off", `<input type="text" name="f" autocomplete="off">`, true},
		{"readonly", `<input type="text" name="f" readonly>`, true},
		{"combobox role", `<input type="text" name="f" role="combobox">`, true},
		{"plain input", `<input type="text" name="f">`, false},
		{"autocomplete on", `<input type="text" name="f" autocomplete="on">`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := scan(t, "<html><body><form>"+tt.markup+"</form></body></html>")
			require.Len(t, fields, 1)
			if tt.want {
				assert.Equal(t, "true", fields[0].Attr("isAutoComplete"))
			} else {
				assert.Empty(t, fields[0].Attr("isAutoComplete"))
			}
		})
	}
}

func TestDetect_DocumentOrder(t *testing.T) {
	fields := scan(t, `<html><body><form>
		<input type="text" name="first">
		<select name="second"><option>x</option></select>
		<textarea name="third"></textarea>
	</form></body></html>`)

	require.Len(t, fields, 3)
	assert.Equal(t, "first", fields[0].Name)
	assert.Equal(t, "second", fields[1].Name)
	assert.Equal(t, "third", fields[2].Name)
}

func TestDetect_SelectorsTargetElements(t *testing.T) {
	fields := scan(t, `<html><body><form>
		<input type="text" id="a">
		<input type="text" name="b">
	</form></body></html>`)

	require.Len(t, fields, 2)
	assert.Equal(t, "#a", fields[0].Selector)
	assert.Equal(t, `input[name="b"]`, fields[1].Selector)
}
