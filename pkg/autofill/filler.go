package autofill

import (
	"fmt"

	"github.com/formpilot/formpilot/pkg/logging"
)

// ActionKind tags the kind of mutation applied to a field. One handler
// exists per kind; new field kinds are supported by adding a kind and a
// handler.
type ActionKind int

const (
	// ActionNone means no mutation was applied
	ActionNone ActionKind = iota
	// ActionSetText sets a text value
	ActionSetText
	// ActionSelectOption selects one option of a select
	ActionSelectOption
	// ActionSetChecked sets the checked state of a toggle
	ActionSetChecked
)

// Action describes the mutation applied to one field, in a form the
// live-page glue can replay through its own driver.
type Action struct {
	Kind ActionKind

	// Text is the value written for ActionSetText
	Text string

	// OptionIndex and OptionValue identify the chosen option for
	// ActionSelectOption
	OptionIndex int
	OptionValue string

	// Checked is the target state for ActionSetChecked; Changed reports
	// whether the state actually flipped
	Checked bool
	Changed bool
}

// Result is the outcome of attempting to fill one field.
type Result struct {
	Field   *Field
	Mapping *Mapping
	Tier    Tier
	Action  Action
	Filled  bool
	Err     error
}

// Report collects per-field outcomes for one fill operation.
type Report struct {
	Results []Result
}

// Filled returns the number of fields successfully filled.
func (r *Report) Filled() int {
	count := 0
	for _, res := range r.Results {
		if res.Filled {
			count++
		}
	}
	return count
}

// Filler resolves mappings against detected fields and applies winning
// values to the document snapshot. It holds no locks; callers needing
// serialization of concurrent fill operations provide their own.
type Filler struct {
	mappings []Mapping
	log      *logging.Logger
}

// NewFiller creates a filler over the given mapping table.
func NewFiller(mappings []Mapping, log *logging.Logger) *Filler {
	return &Filler{mappings: mappings, log: log}
}

// UpdateMappings replaces the mapping table wholesale for subsequent
// fill operations.
func (f *Filler) UpdateMappings(mappings []Mapping) {
	f.mappings = mappings
}

// Fill attempts to fill every detected field and returns the count of
// fields actually filled. Failures on individual fields are logged and
// skipped; Fill always completes over the field list it was given.
func (f *Filler) Fill(fields []*Field) int {
	return f.FillAll(fields).Filled()
}

// FillAll is Fill with the full per-field report.
func (f *Filler) FillAll(fields []*Field) *Report {
	report := &Report{Results: make([]Result, 0, len(fields))}
	for _, field := range fields {
		report.Results = append(report.Results, f.fillField(field))
	}

	f.log.Infow("fill complete", "fields", len(fields), "filled", report.Filled())
	return report
}

// FillOne attempts to fill a single field, reporting whether a value
// was applied.
func (f *Filler) FillOne(field *Field) bool {
	return f.fillField(field).Filled
}

// fillField resolves and applies one field. Panics during matching or
// application are recovered and recorded so one bad field never aborts
// the fill operation.
func (f *Filler) fillField(field *Field) (res Result) {
	res = Result{Field: field}
	defer func() {
		if r := recover(); r != nil {
			res.Filled = false
			res.Err = fmt.Errorf("fill panicked: %v", r)
			f.log.Errorw("fill failed", "field", field.Identity(), "error", res.Err)
		}
	}()

	mapping, tier := Resolve(field, f.mappings)
	if mapping == nil {
		f.log.Debugw("no mapping for field", "field", field.Identity(), "type", field.Type)
		return res
	}
	res.Mapping = mapping
	res.Tier = tier

	switch {
	case field.Type.IsTextual():
		res.Action, res.Filled = applyText(field, mapping.Value)
	case field.Type.IsSelect():
		res.Action, res.Filled = applySelect(field, mapping.Value)
	case field.Type.IsToggle():
		res.Action, res.Filled = applyToggle(field, mapping.Value)
	default:
		f.log.Debugw("unsupported field type", "field", field.Identity(), "type", field.Type)
		return res
	}

	if res.Filled {
		f.log.Debugw("field filled", "field", field.Identity(), "tier", tier.String())
	}
	return res
}

// applyText writes a string value into a text-like field, emitting
// input then change. Read-only and disabled fields are skipped.
func applyText(field *Field, value Value) (Action, bool) {
	el := field.Element
	if el.HasAttr("readonly") || el.HasAttr("disabled") {
		return Action{}, false
	}

	text := value.Text()
	el.SetValue(text)
	el.Emit("input", "change")
	return Action{Kind: ActionSetText, Text: text}, true
}

// applySelect runs the option-selection algorithm, emitting change only
// when a selection was made.
func applySelect(field *Field, value Value) (Action, bool) {
	el := field.Element
	if el.HasAttr("disabled") {
		return Action{}, false
	}

	index, ok := chooseOption(el, value.Candidates())
	if !ok {
		return Action{}, false
	}
	if err := el.SelectOption(index); err != nil {
		return Action{}, false
	}

	el.Emit("change")
	return Action{
		Kind:        ActionSelectOption,
		OptionIndex: index,
		OptionValue: el.Options()[index].OptionValue(),
	}, true
}

// applyToggle sets the checked state of a checkbox or radio. The state
// is only touched, and click then change only emitted, when it differs
// from the target; an already-correct toggle still counts as filled.
func applyToggle(field *Field, value Value) (Action, bool) {
	el := field.Element
	if el.HasAttr("disabled") {
		return Action{}, false
	}

	want := value.Bool()
	action := Action{Kind: ActionSetChecked, Checked: want}
	if el.Checked() != want {
		el.SetChecked(want)
		el.Emit("click", "change")
		action.Changed = true
	}
	return action, true
}
