// Package baseline queries the web platform Baseline dataset and renders
// the results as markdown.
package baseline

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Status classifies a feature's cross-browser readiness.
type Status string

const (
	// StatusWidely means the feature has been interoperable for 30+ months.
	StatusWidely Status = "widely"
	// StatusNewly means the feature recently became interoperable.
	StatusNewly Status = "newly"
	// StatusLimited means at least one core browser lacks support.
	StatusLimited Status = "limited"
)

// Browser implementation states.
const (
	ImplementationAvailable   = "available"
	ImplementationUnavailable = "unavailable"
)

// BaselineInfo is the baseline section of a feature record.
type BaselineInfo struct {
	Status   Status `json:"status"`
	LowDate  string `json:"low_date,omitempty"`
	HighDate string `json:"high_date,omitempty"`
}

// BrowserImplementation describes when a browser shipped a feature.
type BrowserImplementation struct {
	Date    string `json:"date"`
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// UsageStats carries the daily page-view share for one browser, in [0,1].
type UsageStats struct {
	Daily *float64 `json:"daily,omitempty"`
}

// TestResult is a WPT pass rate in [0,1].
type TestResult struct {
	Score float64 `json:"score"`
}

// WPTResults groups test scores per browser for each channel.
type WPTResults struct {
	Stable       *orderedmap.OrderedMap[string, TestResult] `json:"stable,omitempty"`
	Experimental *orderedmap.OrderedMap[string, TestResult] `json:"experimental,omitempty"`
}

// SpecLink points at a specification document.
type SpecLink struct {
	Link string `json:"link"`
}

// SpecInfo lists the specifications defining a feature.
type SpecInfo struct {
	Links []SpecLink `json:"links"`
}

// Feature is one compatibility-data entry. Browser keyed sections keep the
// key order of the upstream document.
type Feature struct {
	Name                   string                                                `json:"name"`
	FeatureID              string                                                `json:"feature_id,omitempty"`
	Baseline               *BaselineInfo                                         `json:"baseline,omitempty"`
	BrowserImplementations *orderedmap.OrderedMap[string, BrowserImplementation] `json:"browser_implementations,omitempty"`
	Usage                  *orderedmap.OrderedMap[string, UsageStats]            `json:"usage,omitempty"`
	WPT                    *WPTResults                                           `json:"wpt,omitempty"`
	Spec                   *SpecInfo                                             `json:"spec,omitempty"`
}

// FeaturesResponse is the body returned by GET /v1/features.
// Depending on the API revision the list lives under `data` or `features`.
type FeaturesResponse struct {
	Data     []Feature `json:"data"`
	Features []Feature `json:"features"`
}

// List returns the feature list, preferring `data` when it is present.
func (r *FeaturesResponse) List() []Feature {
	if r == nil {
		return nil
	}
	if r.Data != nil {
		return r.Data
	}
	return r.Features
}
