package bot

import (
	"fmt"
	"strings"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
)

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatSpecs renders one panel's datasheet lines.
func formatSpecs(category string, spec *catalog.PanelSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s Specifications:\n", titleCase(category), spec.Model)
	fmt.Fprintf(&b, "- Pixel Pitch: %s\n", spec.PixelPitch)
	fmt.Fprintf(&b, "- Module Resolution: %s\n", spec.ModuleResolution)
	fmt.Fprintf(&b, "- LED Type: %s\n", spec.LEDType)
	fmt.Fprintf(&b, "- Brightness: %s\n", spec.Brightness)
	fmt.Fprintf(&b, "- Module Size: %s\n", spec.ModuleSize)
	if spec.ScanTime != "" {
		fmt.Fprintf(&b, "- Scan Time: %s\n", spec.ScanTime)
	}
	if spec.DrivingMode != "" {
		fmt.Fprintf(&b, "- Driving Mode: %s\n", spec.DrivingMode)
	}
	fmt.Fprintf(&b, "- IP Rating: %s\n", spec.IPRating)
	if spec.PricePerSqMeter != "" {
		fmt.Fprintf(&b, "- Price: %s per sq meter\n", spec.PricePerSqMeter)
	}
	if spec.PricePerCabinet != "" {
		fmt.Fprintf(&b, "- Price: %s per cabinet\n", spec.PricePerCabinet)
	}
	if spec.PricePerDay != "" {
		fmt.Fprintf(&b, "- Rental Price: %s per day\n", spec.PricePerDay)
	}
	return b.String()
}

// formatBundles renders the kits offered with a category.
func formatBundles(cat *catalog.Catalog, category string) string {
	bundles := cat.Bundles(category)
	if len(bundles) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Complete Kits Available:\n")
	for _, bundle := range bundles {
		fmt.Fprintf(&b, "%s:\n", bundle.Name)
		for _, item := range bundle.Items {
			fmt.Fprintf(&b, "- %s: %s\n", item.Component, item.Product)
		}
	}
	return b.String()
}

// formatAccessories renders the recommended add-ons for a category.
func formatAccessories(cat *catalog.Catalog, category string) string {
	groups := cat.Accessories(category)
	if len(groups) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recommended Add-ons:\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "%s: %s\n", g.Group, strings.Join(g.Items, ", "))
	}
	return b.String()
}

// formatPurposeGuide renders the consultant guide for a matched purpose.
func formatPurposeGuide(p *catalog.PurposeProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Expert Consultant Guide for %s:\n", titleCase(p.Key))
	fmt.Fprintf(&b, "Recommended Panel: %s\n", p.PanelRecommendation)
	fmt.Fprintf(&b, "Estimated Brightness: %s\n", p.EstimatedBrightness)
	if len(p.Tips) > 0 {
		b.WriteString("Tips:\n")
		for _, t := range p.Tips {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	if len(p.Accessories) > 0 {
		fmt.Fprintf(&b, "Suggested Accessories: %s\n", strings.Join(p.Accessories, ", "))
	}
	return b.String()
}

// formatSetupSteps renders the installation walkthrough for a purpose.
func formatSetupSteps(p *catalog.PurposeProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Setup Guide for %s:\n", titleCase(p.Key))
	for i, s := range p.SetupSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}

func yesNo(v *bool) string {
	if v != nil && *v {
		return "Yes"
	}
	return "No"
}

func trimNumber(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
