// Package config supplies the mapping tables and session switches the
// autofill engine consumes. Configuration lives in a YAML file; mapping
// profiles are selected per page by URL glob patterns. The engine never
// persists configuration itself; callers load a Config here and pass
// mappings into the core per fill session.
package config

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/formpilot/formpilot/pkg/autofill"
)

// Config is the top-level configuration for a fill session.
type Config struct {
	// Enabled is the master toggle; a disabled config fills nothing
	Enabled bool `yaml:"enabled"`

	// AutoFillOnLoad triggers a fill automatically after navigation
	AutoFillOnLoad bool `yaml:"auto_fill_on_load"`

	// SettleDelayMs is how long the glue waits after navigation before
	// filling, letting dynamically rendered forms finish mounting
	SettleDelayMs int `yaml:"settle_delay_ms"`

	// Profiles are tried in order; the first whose URL patterns match
	// the page supplies the mapping table
	Profiles []Profile `yaml:"profiles"`
}

// Profile is one named mapping table with the URLs it applies to.
type Profile struct {
	Name string `yaml:"name"`

	// URLPatterns are glob patterns matched against the page URL.
	// A profile with no patterns applies to every page.
	URLPatterns []string `yaml:"url_patterns,omitempty"`

	Mappings []autofill.Mapping `yaml:"mappings"`

	compiled []glob.Glob
}

// DefaultSettleDelayMs is the settle delay applied when the config does
// not specify one.
const DefaultSettleDelayMs = 300

// Default returns a configuration suitable as a starting point: enabled,
// no automatic fill, no profiles.
func Default() *Config {
	return &Config{
		Enabled:       true,
		SettleDelayMs: DefaultSettleDelayMs,
	}
}

// Validate checks the configuration and compiles profile URL patterns.
// It must be called after loading and before ProfileFor.
func (c *Config) Validate() error {
	if c.SettleDelayMs < 0 {
		return fmt.Errorf("settle_delay_ms cannot be negative")
	}
	if c.SettleDelayMs == 0 {
		c.SettleDelayMs = DefaultSettleDelayMs
	}

	seen := make(map[string]bool, len(c.Profiles))
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.Name == "" {
			return fmt.Errorf("profile at index %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true

		if err := p.compile(); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return nil
}

// compile compiles the profile's URL glob patterns.
func (p *Profile) compile() error {
	p.compiled = p.compiled[:0]
	for _, pattern := range p.URLPatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid url pattern %q: %w", pattern, err)
		}
		p.compiled = append(p.compiled, g)
	}
	return nil
}

// Matches reports whether the profile applies to the given URL.
// A profile with no patterns matches everything.
func (p *Profile) Matches(url string) bool {
	if len(p.URLPatterns) == 0 {
		return true
	}
	for _, g := range p.compiled {
		if g.Match(url) {
			return true
		}
	}
	return false
}

// ProfileFor returns the first profile matching the URL, or nil when
// none applies.
func (c *Config) ProfileFor(url string) *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Matches(url) {
			return &c.Profiles[i]
		}
	}
	return nil
}

// ProfileByName returns the named profile, or nil.
func (c *Config) ProfileByName(name string) *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i]
		}
	}
	return nil
}
