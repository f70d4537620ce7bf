package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFeature(t *testing.T, data string) AlertFeature {
	t.Helper()
	var f AlertFeature
	require.NoError(t, json.Unmarshal([]byte(data), &f))
	return f
}

func TestNewAlert(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		f := decodeFeature(t, `{"properties":{"event":"Flood Warning","severity":"Severe","headline":"Flood Warning issued","description":"River rising."}}`)
		a := NewAlert(f.Properties)

		assert.Equal(t, Alert{
			Event:       "Flood Warning",
			Severity:    "Severe",
			Headline:    "Flood Warning issued",
			Description: "River rising.",
		}, a)
	})

	t.Run("missing fields get placeholders", func(t *testing.T) {
		f := decodeFeature(t, `{"properties":{}}`)
		a := NewAlert(f.Properties)

		assert.Equal(t, "Unknown", a.Event)
		assert.Equal(t, "Unknown", a.Severity)
		assert.Equal(t, "No headline", a.Headline)
		assert.Equal(t, "No description", a.Description)
	})

	t.Run("null fields get placeholders", func(t *testing.T) {
		f := decodeFeature(t, `{"properties":{"event":"Heat Advisory","headline":null,"description":null}}`)
		a := NewAlert(f.Properties)

		assert.Equal(t, "Heat Advisory", a.Event)
		assert.Equal(t, "No headline", a.Headline)
		assert.Equal(t, "No description", a.Description)
	})

	t.Run("feature without properties", func(t *testing.T) {
		f := decodeFeature(t, `{"type":"Feature"}`)
		a := NewAlert(f.Properties)

		assert.Equal(t, "Unknown", a.Event)
	})

	t.Run("empty string is kept", func(t *testing.T) {
		f := decodeFeature(t, `{"properties":{"headline":""}}`)
		assert.Empty(t, NewAlert(f.Properties).Headline)
	})
}

func TestTruncateDescription(t *testing.T) {
	exact := strings.Repeat("a", MaxDescriptionLength)
	long := strings.Repeat("b", MaxDescriptionLength+1)

	assert.Equal(t, "short", TruncateDescription("short"))
	assert.Equal(t, "", TruncateDescription(""))
	assert.Equal(t, exact, TruncateDescription(exact))
	assert.Equal(t, strings.Repeat("b", MaxDescriptionLength)+"...", TruncateDescription(long))
}

func TestTruncateDescription_CountsCharacters(t *testing.T) {
	// 200 multi-byte characters are more than 200 bytes but must not be cut.
	exact := strings.Repeat("é", MaxDescriptionLength)
	assert.Equal(t, exact, TruncateDescription(exact))

	long := strings.Repeat("é", MaxDescriptionLength+5)
	got := TruncateDescription(long)
	assert.Equal(t, exact+"...", got)
}

func TestAlert_Render(t *testing.T) {
	a := Alert{
		Event:       "Winter Storm Warning",
		Severity:    "Moderate",
		Headline:    "Winter Storm Warning until 6 PM",
		Description: "Heavy snow expected.",
	}

	want := "\nAlert: Winter Storm Warning\nSeverity: Moderate\nHeadline: Winter Storm Warning until 6 PM\nDescription: Heavy snow expected.\n"
	if diff := cmp.Diff(want, a.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestAlert_RenderTruncatesDescription(t *testing.T) {
	a := NewAlert(AlertProperties{Description: ptr(strings.Repeat("x", 250))})

	out := a.Render()
	assert.Contains(t, out, "Description: "+strings.Repeat("x", MaxDescriptionLength)+"...\n")
	assert.NotContains(t, out, strings.Repeat("x", MaxDescriptionLength+1))
}

func TestRenderAlerts(t *testing.T) {
	alerts := []Alert{
		{Event: "A", Severity: "Minor", Headline: "h1", Description: "d1"},
		{Event: "B", Severity: "Severe", Headline: "h2", Description: "d2"},
	}

	out := RenderAlerts(alerts)
	parts := strings.Split(out, RecordSeparator)
	require.Len(t, parts, 2)
	assert.Equal(t, alerts[0].Render(), parts[0])
	assert.Equal(t, alerts[1].Render(), parts[1])
}

func TestRenderAlerts_Empty(t *testing.T) {
	assert.Empty(t, RenderAlerts(nil))
}

func ptr(s string) *string { return &s }
