package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxForecastPeriods caps the number of periods rendered for one forecast.
const MaxForecastPeriods = 5

// ErrMalformedPayload reports a provider response that lacks a field the
// forecast lookup depends on.
var ErrMalformedPayload = errors.New("malformed provider payload")

// RawPeriod is one entry of a forecast's "properties.periods" list as decoded
// from the provider. Temperature keeps the provider's numeric text.
type RawPeriod struct {
	Name             *string      `json:"name"`
	Temperature      *json.Number `json:"temperature"`
	TemperatureUnit  *string      `json:"temperatureUnit"`
	WindSpeed        *string      `json:"windSpeed"`
	WindDirection    *string      `json:"windDirection"`
	DetailedForecast *string      `json:"detailedForecast"`
}

// Period is a validated forecast period.
type Period struct {
	Name             string
	Temperature      string
	TemperatureUnit  string
	WindSpeed        string
	WindDirection    string
	DetailedForecast string
}

// ParsePeriod validates that every field of raw is present.
func ParsePeriod(raw RawPeriod) (Period, error) {
	switch {
	case raw.Name == nil:
		return Period{}, missingField("name")
	case raw.Temperature == nil:
		return Period{}, missingField("temperature")
	case raw.TemperatureUnit == nil:
		return Period{}, missingField("temperatureUnit")
	case raw.WindSpeed == nil:
		return Period{}, missingField("windSpeed")
	case raw.WindDirection == nil:
		return Period{}, missingField("windDirection")
	case raw.DetailedForecast == nil:
		return Period{}, missingField("detailedForecast")
	}

	return Period{
		Name:             *raw.Name,
		Temperature:      raw.Temperature.String(),
		TemperatureUnit:  *raw.TemperatureUnit,
		WindSpeed:        *raw.WindSpeed,
		WindDirection:    *raw.WindDirection,
		DetailedForecast: *raw.DetailedForecast,
	}, nil
}

// Render formats the period as a text block.
func (p Period) Render() string {
	return fmt.Sprintf("\n%s:\nTemperature: %s°%s\nWind: %s %s\nForecast: %s\n",
		p.Name, p.Temperature, p.TemperatureUnit, p.WindSpeed, p.WindDirection, p.DetailedForecast)
}

// RenderForecast validates and renders at most MaxForecastPeriods periods,
// joined with RecordSeparator. Periods beyond the cap are not inspected.
func RenderForecast(raws []RawPeriod) (string, error) {
	if len(raws) > MaxForecastPeriods {
		raws = raws[:MaxForecastPeriods]
	}

	blocks := make([]string, 0, len(raws))
	for i, raw := range raws {
		p, err := ParsePeriod(raw)
		if err != nil {
			return "", fmt.Errorf("period %d: %w", i, err)
		}
		blocks = append(blocks, p.Render())
	}
	return JoinRecords(blocks), nil
}

func missingField(name string) error {
	return fmt.Errorf("%w: missing field %q", ErrMalformedPayload, name)
}
