package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestLoadCategories(t *testing.T) {
	c := load(t)
	assert.Equal(t, []string{CategoryIndoor, CategoryOutdoor, CategoryRental}, c.Categories())

	for _, cat := range c.Categories() {
		assert.True(t, c.HasCategory(cat))
		assert.NotEmpty(t, c.Models(cat), "category %s should have panels", cat)
		assert.NotEmpty(t, c.Bundles(cat), "category %s should have bundles", cat)
		assert.NotEmpty(t, c.Accessories(cat), "category %s should have accessories", cat)
	}
	assert.False(t, c.HasCategory("underwater"))
	assert.True(t, c.HasCategory("Indoor"), "category match should ignore case")
}

func TestNormalize(t *testing.T) {
	c := load(t)

	tests := []struct {
		input string
		want  string
	}{
		{"P3mm", "P3mm"},
		{"p3mm", "P3mm"},
		{"p3", "P3mm"},
		{"P3.91", "P3.91mm"},
		{"p391", "P3.91mm"},
		{"P391MM", "P3.91mm"},
		{"p1.25", "P1.25mm"},
		{"p125", "P1.25mm"},
		{"P99mm", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Normalize(tt.input), "input %q", tt.input)
	}
}

func TestLookupPrefersIndoor(t *testing.T) {
	c := load(t)

	// P10mm exists indoor and outdoor; indoor wins.
	cat, spec, ok := c.Lookup("p10")
	require.True(t, ok)
	assert.Equal(t, CategoryIndoor, cat)
	assert.Equal(t, "P10mm", spec.Model)

	// P4mm exists only outdoor.
	cat, spec, ok = c.Lookup("P4mm")
	require.True(t, ok)
	assert.Equal(t, CategoryOutdoor, cat)
	assert.Equal(t, "P4mm", spec.Model)

	_, _, ok = c.Lookup("P42mm")
	assert.False(t, ok)
}

func TestLookupIn(t *testing.T) {
	c := load(t)

	spec, ok := c.LookupIn(CategoryRental, "p2.97")
	require.True(t, ok)
	assert.Equal(t, "P2.97mm", spec.Model)
	assert.NotEmpty(t, spec.PricePerDay, "rental panels carry a daily price")

	// P3mm is indoor only.
	_, ok = c.LookupIn(CategoryOutdoor, "P3mm")
	assert.False(t, ok)
}

func TestMatchBundle(t *testing.T) {
	c := load(t)

	b, ok := c.MatchBundle(CategoryIndoor, "the Essential Kit please")
	require.True(t, ok)
	assert.Equal(t, "essential", b.Tier)
	assert.NotEmpty(t, b.Items)

	b, ok = c.MatchBundle(CategoryIndoor, "professional")
	require.True(t, ok)
	assert.Equal(t, "professional", b.Tier)

	_, ok = c.MatchBundle(CategoryIndoor, "deluxe mega pack")
	assert.False(t, ok)
}

func TestPurpose(t *testing.T) {
	c := load(t)

	p, matched := c.Purpose("we are setting up a church hall")
	require.True(t, matched)
	assert.Equal(t, "church", p.Key)
	assert.NotEmpty(t, p.PanelCategory)
	assert.NotEmpty(t, p.SetupSteps)

	p, matched = c.Purpose("an outdoor stage for concerts")
	require.True(t, matched)
	assert.Equal(t, "outdoor stage", p.Key)

	p, matched = c.Purpose("something unusual")
	assert.False(t, matched)
	require.NotNil(t, p, "default profile applies when nothing matches")
	assert.NotEmpty(t, p.Tips)
}

func TestPurposeKeysExcludeDefault(t *testing.T) {
	c := load(t)
	keys := c.PurposeKeys()
	assert.NotEmpty(t, keys)
	assert.NotContains(t, keys, "default")
}

func TestModelKeysMatchModels(t *testing.T) {
	c := load(t)
	keys := c.ModelKeys(CategoryIndoor)
	models := c.Models(CategoryIndoor)
	require.Equal(t, len(models), len(keys))
	for i := range models {
		assert.Equal(t, models[i].Model, keys[i])
	}
	assert.Contains(t, keys, "P3mm")
}
