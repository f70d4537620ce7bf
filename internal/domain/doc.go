// Package domain models the National Weather Service (NWS) records rendered by
// the weather tools.
//
// # Data Source
//
// All data comes from the public NWS API at https://api.weather.gov. Responses
// are GeoJSON (Accept: application/geo+json).
//
// Alerts:
//
//	GET /alerts/active/area/{AREA}  →  FeatureCollection
//	Each feature's "properties" carries event, severity, headline and
//	description. Any of them may be absent or null, in which case a
//	placeholder is rendered ("Unknown", "No headline", "No description").
//
// Forecasts take two dependent lookups:
//
//	GET /points/{lat},{lon}  →  properties.forecast (URL of the gridpoint forecast)
//	GET <forecast URL>       →  properties.periods[]
//
// A period ("Tonight", "Monday", ...) must carry name, temperature,
// temperatureUnit, windSpeed, windDirection and detailedForecast. Unlike alert
// fields there are no placeholders: a missing field is [ErrMalformedPayload].
//
// # Rendering
//
// Records render as short multi-line blocks and are joined with
// [RecordSeparator]. Alert descriptions are cut at [MaxDescriptionLength]
// characters with "..." appended; forecasts show at most [MaxForecastPeriods]
// periods.
package domain
