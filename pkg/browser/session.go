package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/formpilot/formpilot/pkg/autofill"
	"github.com/formpilot/formpilot/pkg/dom"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL. When the
// session config enables auto-fill on load, a fill runs after navigation.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	gotoOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		gotoOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	if s.Config != nil && s.Config.AutoFillOnLoad {
		if _, err := s.AutoFill(); err != nil {
			return fmt.Errorf("auto-fill after navigation failed: %w", err)
		}
	}
	return nil
}

// Snapshot captures the current page markup as a document snapshot.
func (s *Session) Snapshot() (*dom.Document, error) {
	s.UpdateLastUsed()

	content, err := s.Page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return dom.ParseString(content)
}

// AutoFill runs one fill invocation against the current page: wait for
// the page to settle, snapshot it, detect and fill fields on the
// snapshot, then replay the resolved actions onto the live page. The
// returned count is the number of actions applied to the page.
//
// Keyboard shortcuts, menu actions, and explicit UI triggers all funnel
// into this one entry point.
func (s *Session) AutoFill() (int, error) {
	s.UpdateLastUsed()

	if s.Config == nil || !s.Config.Enabled {
		s.log.Debugw("autofill disabled", "session", s.Name)
		return 0, nil
	}

	url := s.Page.URL()
	profile := s.Config.ProfileFor(url)
	if profile == nil {
		s.log.Debugw("no profile for page", "session", s.Name, "url", url)
		return 0, nil
	}

	// Settling delay: let dynamically rendered forms finish mounting
	// before the snapshot is taken.
	s.Page.WaitForTimeout(float64(s.Config.SettleDelayMs))

	doc, err := s.Snapshot()
	if err != nil {
		return 0, err
	}

	fields := s.scanner.Detect(doc.Root())
	s.log.Infow("fields detected", "session", s.Name, "profile", profile.Name, "fields", len(fields))

	s.filler.UpdateMappings(profile.Mappings)
	report := s.filler.FillAll(fields)

	applied := 0
	for _, action := range planActions(report) {
		if err := s.applyAction(action); err != nil {
			s.log.Errorw("failed to apply action", "session", s.Name,
				"selector", action.Selector, "error", err)
			continue
		}
		applied++
	}

	s.log.Infow("autofill complete", "session", s.Name, "applied", applied)
	return applied, nil
}

// applyAction replays one resolved action onto the live page.
func (s *Session) applyAction(action PageAction) error {
	switch action.Kind {
	case autofill.ActionSetText:
		if err := s.Page.Fill(action.Selector, action.Text); err != nil {
			return fmt.Errorf("fill failed: %w", err)
		}
	case autofill.ActionSelectOption:
		// Select by index: snapshot and live page share option order.
		indexes := []int{action.OptionIndex}
		if _, err := s.Page.SelectOption(action.Selector, playwright.SelectOptionValues{
			Indexes: &indexes,
		}); err != nil {
			return fmt.Errorf("select failed: %w", err)
		}
	case autofill.ActionSetChecked:
		if err := s.Page.SetChecked(action.Selector, action.Checked); err != nil {
			return fmt.Errorf("set checked failed: %w", err)
		}
	default:
		return fmt.Errorf("unsupported action kind %d", action.Kind)
	}
	return nil
}
