package baseline

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/Laisky/baseline-mcp/library"
)

// displayDateLayout renders calendar dates as M/D/YYYY.
const displayDateLayout = "1/2/2006"

var inputDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

var browserNames = map[string]string{
	"chrome":          "Chrome",
	"chrome_android":  "Chrome Android",
	"edge":            "Edge",
	"firefox":         "Firefox",
	"firefox_android": "Firefox Android",
	"safari":          "Safari",
	"safari_ios":      "Safari iOS",
}

// BrowserName returns the display name for an upstream browser key,
// or the key itself when it is not recognized.
func BrowserName(key string) string {
	if name, ok := browserNames[key]; ok {
		return name
	}
	return key
}

// StatusGlyph returns the emoji shown next to a baseline status.
func StatusGlyph(status Status) string {
	switch status {
	case StatusWidely:
		return "✅"
	case StatusNewly:
		return "🆕"
	case StatusLimited:
		return "⚠️"
	default:
		return "❓"
	}
}

// ScoreGlyph bands a WPT score. Thresholds are inclusive.
func ScoreGlyph(score float64) string {
	switch {
	case score >= 0.9:
		return "🟢"
	case score >= 0.7:
		return "🟡"
	case score >= 0.5:
		return "🟠"
	default:
		return "🔴"
	}
}

// Recommendation returns the adoption advice for status. A nil baseline
// maps to the empty status.
func Recommendation(status Status) string {
	switch status {
	case StatusWidely:
		return "🟢 Safe for production use"
	case StatusNewly:
		return "🟡 Use with progressive enhancement"
	case StatusLimited:
		return "🔴 Consider polyfills or alternatives"
	default:
		return "❓ Research browser support carefully"
	}
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders the calendar date of raw. Unparseable input is returned unchanged.
func FormatDate(raw string) string {
	t, ok := parseDate(raw)
	if !ok {
		return raw
	}
	return t.Format(displayDateLayout)
}

type browserEntry struct {
	key  string
	impl BrowserImplementation
	at   time.Time
	ok   bool
}

// sortedImplementations orders entries by implementation date, ascending.
// Ties keep upstream order; undated entries go last.
func sortedImplementations(impls *orderedmap.OrderedMap[string, BrowserImplementation]) []browserEntry {
	entries := make([]browserEntry, 0, impls.Len())
	for pair := impls.Oldest(); pair != nil; pair = pair.Next() {
		at, ok := parseDate(pair.Value.Date)
		entries = append(entries, browserEntry{key: pair.Key, impl: pair.Value, at: at, ok: ok})
	}

	slices.SortStableFunc(entries, func(a, b browserEntry) int {
		switch {
		case a.ok && b.ok:
			return a.at.Compare(b.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	return entries
}

// formatPercent renders fraction as a percentage with decimals digits.
// Ties round away from zero.
func formatPercent(fraction float64, decimals int) string {
	scale := math.Pow10(decimals)
	rounded := math.Round(fraction*100*scale) / scale
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}

func hasUsage(usage *orderedmap.OrderedMap[string, UsageStats]) bool {
	for pair := usage.Oldest(); pair != nil; pair = pair.Next() {
		if d := pair.Value.Daily; d != nil && *d != 0 {
			return true
		}
	}
	return false
}

// Format renders features found for q as a markdown document.
// It is pure: identical input always yields identical output.
func Format(q Query, features []Feature) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# 🌐 Baseline Status: **%s**\n\n", library.JoinTerms(q.Terms))

	if len(features) == 0 {
		md.WriteString("_No matching features found._")
		return md.String()
	}

	plural := "s"
	if len(features) == 1 {
		plural = ""
	}
	fmt.Fprintf(&md, "Found **%d** feature%s:\n\n", len(features), plural)

	for i := range features {
		writeFeature(&md, i+1, &features[i], q)
	}

	return md.String()
}

func writeFeature(md *strings.Builder, n int, f *Feature, q Query) {
	fmt.Fprintf(md, "## %d. %s\n\n", n, f.Name)

	var status Status
	if f.Baseline != nil {
		status = f.Baseline.Status
		fmt.Fprintf(md, "**Status:** %s **%s**\n", StatusGlyph(status), strings.ToUpper(string(status)))
		if f.Baseline.LowDate != "" {
			fmt.Fprintf(md, "**Available Since:** %s\n", FormatDate(f.Baseline.LowDate))
		}
		if f.Baseline.HighDate != "" {
			fmt.Fprintf(md, "**Widely Available:** %s\n", FormatDate(f.Baseline.HighDate))
		}
		md.WriteString("\n")
	}

	if q.IncludeBrowserDetails && f.BrowserImplementations != nil {
		md.WriteString("**Browser Support:**\n")
		for _, entry := range sortedImplementations(f.BrowserImplementations) {
			icon := "❌"
			if entry.impl.Status == ImplementationAvailable {
				icon = "✅"
			}
			version := ""
			if entry.impl.Version != "" {
				version = fmt.Sprintf(" (v%s)", entry.impl.Version)
			}
			fmt.Fprintf(md, "- **%s:** %s %s%s\n", BrowserName(entry.key), icon, FormatDate(entry.impl.Date), version)
		}
		md.WriteString("\n")
	}

	if q.IncludeUsageStats && f.Usage != nil && hasUsage(f.Usage) {
		md.WriteString("**Usage Statistics:**\n")
		for pair := f.Usage.Oldest(); pair != nil; pair = pair.Next() {
			if d := pair.Value.Daily; d != nil && *d != 0 {
				fmt.Fprintf(md, "- **%s:** %s%% of daily page views\n", BrowserName(pair.Key), formatPercent(*d, 4))
			}
		}
		md.WriteString("\n")
	}

	if q.IncludeTestResults && f.WPT != nil && f.WPT.Stable != nil {
		md.WriteString("**Web Platform Tests:**\n")
		for pair := f.WPT.Stable.Oldest(); pair != nil; pair = pair.Next() {
			score := pair.Value.Score
			fmt.Fprintf(md, "- **%s:** %s %s%% pass rate\n", BrowserName(pair.Key), ScoreGlyph(score), formatPercent(score, 1))
		}
		md.WriteString("\n")
	}

	if q.IncludeSpecs && f.Spec != nil && f.Spec.Links != nil {
		md.WriteString("**Specifications:**\n")
		for j, link := range f.Spec.Links {
			fmt.Fprintf(md, "%d. [View Specification](%s)\n", j+1, link.Link)
		}
		md.WriteString("\n")
	}

	fmt.Fprintf(md, "**Recommendation:** %s\n\n", Recommendation(status))
	md.WriteString("---\n\n")
}
