// Package catalog holds the immutable product knowledge the chatbot sells
// from: panel spec tables per category, accessory recommendations, product
// bundles, and purpose-based consultation profiles. The data ships embedded
// as YAML so deployments never depend on an external data file.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var rawData []byte

// Panel categories in display order.
const (
	CategoryIndoor  = "indoor"
	CategoryOutdoor = "outdoor"
	CategoryRental  = "rental"
)

// PanelSpec describes one panel model within a category.
type PanelSpec struct {
	Model            string `yaml:"model"`
	PixelPitch       string `yaml:"pixel_pitch"`
	ModuleResolution string `yaml:"module_resolution"`
	LEDType          string `yaml:"led_type"`
	Brightness       string `yaml:"brightness"`
	ModuleSize       string `yaml:"module_size"`
	ScanTime         string `yaml:"scan_time,omitempty"`
	DrivingMode      string `yaml:"driving_mode,omitempty"`
	IPRating         string `yaml:"ip_rating"`
	PricePerSqMeter  string `yaml:"price_per_sq_meter,omitempty"`
	PricePerCabinet  string `yaml:"price_per_cabinet,omitempty"`
	PricePerDay      string `yaml:"price_per_day,omitempty"`
}

// BundleItem is one component of a product bundle.
type BundleItem struct {
	Component string `yaml:"component"`
	Product   string `yaml:"product"`
}

// Bundle is a pre-assembled kit offered alongside a panel category.
type Bundle struct {
	Tier  string       `yaml:"tier"`
	Name  string       `yaml:"name"`
	Items []BundleItem `yaml:"items"`
}

// AccessoryGroup is a named group of recommended add-ons.
type AccessoryGroup struct {
	Group string   `yaml:"group"`
	Items []string `yaml:"items"`
}

// PurposeProfile is the consultation profile for one application purpose.
type PurposeProfile struct {
	Key                 string   `yaml:"key"`
	PanelCategory       string   `yaml:"panel_category"`
	PanelRecommendation string   `yaml:"panel_recommendation"`
	EstimatedBrightness string   `yaml:"estimated_brightness"`
	Tips                []string `yaml:"tips"`
	Accessories         []string `yaml:"accessories"`
	SetupSteps          []string `yaml:"setup_steps"`
}

type categoryDoc struct {
	Name   string      `yaml:"name"`
	Panels []PanelSpec `yaml:"panels"`
}

type document struct {
	Categories  []categoryDoc               `yaml:"categories"`
	Accessories map[string][]AccessoryGroup `yaml:"accessories"`
	Bundles     map[string][]Bundle         `yaml:"bundles"`
	Purposes    []PurposeProfile            `yaml:"purposes"`
}

// Catalog is the loaded, read-only product knowledge.
type Catalog struct {
	categories  []string
	panels      map[string][]PanelSpec
	accessories map[string][]AccessoryGroup
	bundles     map[string][]Bundle
	purposes    []PurposeProfile
	defaultUse  *PurposeProfile
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(rawData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog data: %w", err)
	}

	c := &Catalog{
		panels:      make(map[string][]PanelSpec, len(doc.Categories)),
		accessories: doc.Accessories,
		bundles:     doc.Bundles,
	}
	for i := range doc.Categories {
		cat := &doc.Categories[i]
		if len(cat.Panels) == 0 {
			return nil, fmt.Errorf("category %q has no panels", cat.Name)
		}
		c.categories = append(c.categories, cat.Name)
		c.panels[cat.Name] = cat.Panels
	}

	for i := range doc.Purposes {
		p := &doc.Purposes[i]
		if p.Key == "default" {
			c.defaultUse = p
			continue
		}
		c.purposes = append(c.purposes, *p)
	}
	if c.defaultUse == nil {
		return nil, fmt.Errorf("catalog data is missing the default purpose profile")
	}

	return c, nil
}

// Categories returns the panel categories in display order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// HasCategory reports whether name is a known panel category.
func (c *Catalog) HasCategory(name string) bool {
	_, ok := c.panels[strings.ToLower(name)]
	return ok
}

// Models returns the panel specs of a category in display order.
func (c *Catalog) Models(category string) []PanelSpec {
	specs := c.panels[strings.ToLower(category)]
	out := make([]PanelSpec, len(specs))
	copy(out, specs)
	return out
}

// ModelKeys returns just the model names of a category, in display order.
func (c *Catalog) ModelKeys(category string) []string {
	specs := c.panels[strings.ToLower(category)]
	keys := make([]string, len(specs))
	for i := range specs {
		keys[i] = specs[i].Model
	}
	return keys
}

// Normalize resolves free-form input ("p3mm", "P3.91", "p391") to a canonical
// model key, or "" when nothing matches. Comparison ignores case and dots and
// tolerates a missing "mm" suffix.
func (c *Catalog) Normalize(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	up := strings.ToUpper(s)
	candidates := []string{up}
	if !strings.HasSuffix(up, "MM") {
		candidates = append(candidates, up+"MM")
	}

	for _, cat := range c.categories {
		for i := range c.panels[cat] {
			key := c.panels[cat][i].Model
			keyUp := strings.ToUpper(key)
			for _, cand := range candidates {
				if keyUp == cand {
					return key
				}
			}
		}
	}

	// Dot-insensitive pass: "P391MM" matches "P3.91mm".
	for _, cand := range candidates {
		flat := strings.ReplaceAll(cand, ".", "")
		for _, cat := range c.categories {
			for i := range c.panels[cat] {
				key := c.panels[cat][i].Model
				if strings.ReplaceAll(strings.ToUpper(key), ".", "") == flat {
					return key
				}
			}
		}
	}

	return ""
}

// Lookup finds a model across categories, preferring indoor, then outdoor,
// then rental. Input goes through Normalize first.
func (c *Catalog) Lookup(model string) (category string, spec *PanelSpec, ok bool) {
	key := c.Normalize(model)
	if key == "" {
		return "", nil, false
	}
	for _, cat := range c.categories {
		if spec := c.findIn(cat, key); spec != nil {
			return cat, spec, true
		}
	}
	return "", nil, false
}

// LookupIn finds a model inside one category only.
func (c *Catalog) LookupIn(category, model string) (*PanelSpec, bool) {
	key := c.Normalize(model)
	if key == "" {
		return nil, false
	}
	spec := c.findIn(strings.ToLower(category), key)
	return spec, spec != nil
}

func (c *Catalog) findIn(category, key string) *PanelSpec {
	specs := c.panels[category]
	for i := range specs {
		if specs[i].Model == key {
			spec := specs[i]
			return &spec
		}
	}
	return nil
}

// Accessories returns the accessory recommendations for a category.
func (c *Catalog) Accessories(category string) []AccessoryGroup {
	return c.accessories[strings.ToLower(category)]
}

// Bundles returns the product bundles for a category.
func (c *Catalog) Bundles(category string) []Bundle {
	return c.bundles[strings.ToLower(category)]
}

// MatchBundle finds the bundle a reply like "essential kit" refers to.
func (c *Catalog) MatchBundle(category, text string) (*Bundle, bool) {
	t := strings.ToLower(text)
	for _, b := range c.bundles[strings.ToLower(category)] {
		if strings.Contains(t, b.Tier) || strings.Contains(t, strings.ToLower(b.Name)) {
			bundle := b
			return &bundle, true
		}
	}
	return nil, false
}

// Purpose returns the profile whose key occurs in text, or the default
// profile. The second return reports whether a specific profile matched.
func (c *Catalog) Purpose(text string) (*PurposeProfile, bool) {
	t := strings.ToLower(text)
	for i := range c.purposes {
		if strings.Contains(t, c.purposes[i].Key) {
			p := c.purposes[i]
			return &p, true
		}
	}
	p := *c.defaultUse
	return &p, false
}

// PurposeKeys returns the known purpose keys (excluding the default).
func (c *Catalog) PurposeKeys() []string {
	keys := make([]string, len(c.purposes))
	for i := range c.purposes {
		keys[i] = c.purposes[i].Key
	}
	return keys
}
