package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/pkg/autofill"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Enabled)
	assert.False(t, cfg.AutoFillOnLoad)
	assert.Equal(t, DefaultSettleDelayMs, cfg.SettleDelayMs)
	assert.Empty(t, cfg.Profiles)
}

func TestValidate(t *testing.T) {
	t.Run("negative settle delay", func(t *testing.T) {
		cfg := &Config{SettleDelayMs: -1}
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero settle delay gets default", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultSettleDelayMs, cfg.SettleDelayMs)
	})

	t.Run("unnamed profile", func(t *testing.T) {
		cfg := Default()
		cfg.Profiles = []Profile{{}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate profile names", func(t *testing.T) {
		cfg := Default()
		cfg.Profiles = []Profile{{Name: "a"}, {Name: "a"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad glob pattern", func(t *testing.T) {
		cfg := Default()
		cfg.Profiles = []Profile{{Name: "a", URLPatterns: []string{"https://[oops"}}}
		assert.Error(t, cfg.Validate())
	})
}

func TestProfileFor(t *testing.T) {
	cfg := Default()
	cfg.Profiles = []Profile{
		{Name: "checkout", URLPatterns: []string{"https://shop.example.com/checkout*"}},
		{Name: "shop", URLPatterns: []string{"https://shop.example.com/*"}},
		{Name: "everywhere"},
	}
	require.NoError(t, cfg.Validate())

	tests := []struct {
		url  string
		want string
	}{
		{"https://shop.example.com/checkout/step2", "checkout"},
		{"https://shop.example.com/cart", "shop"},
		{"https://other.example.com/", "everywhere"},
	}
	for _, tt := range tests {
		p := cfg.ProfileFor(tt.url)
		require.NotNil(t, p, "url %s", tt.url)
		assert.Equal(t, tt.want, p.Name, "url %s", tt.url)
	}
}

func TestProfileFor_NoMatch(t *testing.T) {
	cfg := Default()
	cfg.Profiles = []Profile{
		{Name: "only", URLPatterns: []string{"https://a.example.com/*"}},
	}
	require.NoError(t, cfg.Validate())

	assert.Nil(t, cfg.ProfileFor("https://b.example.com/"))
}

func TestProfileByName(t *testing.T) {
	cfg := Default()
	cfg.Profiles = []Profile{{Name: "a"}, {Name: "b"}}
	require.NoError(t, cfg.Validate())

	require.NotNil(t, cfg.ProfileByName("b"))
	assert.Equal(t, "b", cfg.ProfileByName("b").Name)
	assert.Nil(t, cfg.ProfileByName("missing"))
}

func TestProfileMappingsSurviveValidate(t *testing.T) {
	cfg := Default()
	cfg.Profiles = []Profile{{
		Name: "a",
		Mappings: []autofill.Mapping{
			{Name: "email", Value: autofill.TextValue("x@example.com")},
		},
	}}
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Profiles[0].Mappings, 1)
	assert.Equal(t, "email", cfg.Profiles[0].Mappings[0].Name)
}
