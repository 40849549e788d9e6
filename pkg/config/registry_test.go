package config_test

import (
	"testing"

	"github.com/impact-cms/florence/pkg/config"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_SystemBilling(t *testing.T) {
	reg := config.DefaultRegistry()

	q, ok := reg.Resolve(domain.FrameSystemOverview, "billing")
	require.True(t, ok)
	assert.Equal(t, "How much outstanding billing do I have?", q)
}

func TestResolve_PluralInsensitive(t *testing.T) {
	reg := config.DefaultRegistry()

	cases := []struct {
		noun string
		want string
	}{
		{"claims", "How many claims do I have?"},
		{"claim", "How many claims do I have?"},
		{"cases", "How many claims do I have?"},
		{"case", "How many claims do I have?"},
		{"invoice", "How many invoices do I have?"},
		{"reports", "How many reports do I have?"},
	}

	for _, tc := range cases {
		q, ok := reg.Resolve(domain.FrameSystemOverview, tc.noun)
		require.True(t, ok, "noun %q should resolve", tc.noun)
		assert.Equal(t, tc.want, q)
	}
}

func TestResolve_KeyBeatsSynonym(t *testing.T) {
	// "billables" is a key in claim_overview; "work" only a synonym.
	reg := config.DefaultRegistry()

	q, ok := reg.Resolve(domain.FrameClaimOverview, "billables")
	require.True(t, ok)
	assert.Equal(t, "Summarize billables on this claim", q)

	q, ok = reg.Resolve(domain.FrameClaimOverview, "work")
	require.True(t, ok)
	assert.Equal(t, "Summarize billables on this claim", q)
}

func TestResolve_UnknownFrameOrNoun(t *testing.T) {
	reg := config.DefaultRegistry()

	_, ok := reg.Resolve("no_such_frame", "claims")
	assert.False(t, ok)

	_, ok = reg.Resolve(domain.FrameSystemOverview, "weather")
	assert.False(t, ok)
}

func TestParseRegistry_RejectsIncompleteDomain(t *testing.T) {
	_, err := config.ParseRegistry([]byte(`
frames:
  system_overview:
    domains:
      - key: claims
`))
	assert.Error(t, err)
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := config.LoadSettings("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
}
