package browser

import (
	"github.com/formpilot/formpilot/pkg/autofill"
)

// PageAction is one snapshot-fill outcome translated into a live-page
// operation: a selector plus the mutation to replay through the driver.
type PageAction struct {
	Selector    string
	Kind        autofill.ActionKind
	Text        string
	OptionIndex int
	Checked     bool
}

// planActions translates a fill report into the ordered list of actions
// to replay on the live page. Unfilled fields are dropped, as are toggle
// results whose state did not change; replaying those would emit events
// the snapshot fill deliberately suppressed.
func planActions(report *autofill.Report) []PageAction {
	var actions []PageAction
	for _, res := range report.Results {
		if !res.Filled || res.Action.Kind == autofill.ActionNone {
			continue
		}
		if res.Action.Kind == autofill.ActionSetChecked && !res.Action.Changed {
			continue
		}
		actions = append(actions, PageAction{
			Selector:    res.Field.Selector,
			Kind:        res.Action.Kind,
			Text:        res.Action.Text,
			OptionIndex: res.Action.OptionIndex,
			Checked:     res.Action.Checked,
		})
	}
	return actions
}
