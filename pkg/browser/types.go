package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/formpilot/formpilot/pkg/autofill"
	"github.com/formpilot/formpilot/pkg/config"
	"github.com/formpilot/formpilot/pkg/logging"
)

// Session is an active browser page plus the engine components bound to
// it for the session's lifetime.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Browser, Context, and Page are the Playwright resources
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	// Config supplies mapping profiles and fill switches
	Config *config.Config

	// Headless indicates if the browser runs without a visible window
	Headless bool

	// CreatedAt and LastUsedAt track session lifecycle
	CreatedAt  time.Time
	LastUsedAt time.Time

	scanner *autofill.Scanner
	filler  *autofill.Filler
	log     *logging.Logger
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Config supplies mapping profiles; nil disables filling
	Config *config.Config

	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful:
	// "load", "domcontentloaded", or "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// SessionInfo contains metadata about a browser session.
type SessionInfo struct {
	Name       string
	CurrentURL string
	Headless   bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// Default values for session management.
const (
	DefaultTimeout        = 30000.0
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxSessions    = 5
)
