package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxDescriptionLength is the number of description characters kept in a rendered alert.
	MaxDescriptionLength = 200

	// RecordSeparator joins rendered alerts and forecast periods.
	RecordSeparator = "\n---\n"

	truncationMarker = "..."
)

// AlertProperties is the "properties" object of one NWS alert feature.
// Pointer fields distinguish absent (or null) values from empty strings.
type AlertProperties struct {
	Event       *string `json:"event"`
	Severity    *string `json:"severity"`
	Headline    *string `json:"headline"`
	Description *string `json:"description"`
}

// AlertFeature is one GeoJSON feature of the active alerts collection.
type AlertFeature struct {
	Properties AlertProperties `json:"properties"`
}

// Alert is a single active alert with placeholders applied.
type Alert struct {
	Event       string
	Severity    string
	Headline    string
	Description string
}

// NewAlert builds an Alert from feature properties, substituting placeholders
// for missing fields.
func NewAlert(p AlertProperties) Alert {
	return Alert{
		Event:       valueOr(p.Event, "Unknown"),
		Severity:    valueOr(p.Severity, "Unknown"),
		Headline:    valueOr(p.Headline, "No headline"),
		Description: valueOr(p.Description, "No description"),
	}
}

// Render formats the alert as a text block with the description truncated.
func (a Alert) Render() string {
	return fmt.Sprintf("\nAlert: %s\nSeverity: %s\nHeadline: %s\nDescription: %s\n",
		a.Event, a.Severity, a.Headline, TruncateDescription(a.Description))
}

// TruncateDescription keeps the first MaxDescriptionLength characters of s and
// appends "..." when anything was cut. Shorter strings are returned unchanged.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDescriptionLength {
		return s
	}
	return string(runes[:MaxDescriptionLength]) + truncationMarker
}

// RenderAlerts renders every alert and joins them with RecordSeparator.
func RenderAlerts(alerts []Alert) string {
	blocks := make([]string, len(alerts))
	for i, a := range alerts {
		blocks[i] = a.Render()
	}
	return JoinRecords(blocks)
}

// JoinRecords joins rendered records with RecordSeparator.
func JoinRecords(blocks []string) string {
	return strings.Join(blocks, RecordSeparator)
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
