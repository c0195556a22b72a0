package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
)

// newTestParser builds a parser with the patterns used throughout the tests.
func newTestParser(t *testing.T, catalogue ...alarm.Ric) *Parser {
	t.Helper()

	p, err := New(`^Ort: (.*)$`, `^Ortsteil: (.*)$`, `^Objekt: (.*)$`, catalogue)
	require.NoError(t, err)

	return p
}

// sampleBody is a condensed alarm body carrying every marker the
// extraction and resolution passes care about.
const sampleBody = "Meldung:\nUnklare Rauchentwicklung im Hafen\nSchlagwort: FEUER3\n" +
	"Ort: Musterstadt\nOrtsteil: Nord\nObjekt: Hafenlager\n" +
	"Einsatzmittel: HLF-1, LF-10\n"

func sampleInbound() alarm.InboundAlarm {
	return alarm.InboundAlarm{
		ID:       247,
		Number:   "E-123",
		Title:    "FEUER3",
		Text:     sampleBody,
		Address:  "Hauptstraße 247, 12345 Musterstadt",
		Lat:      "1.23456",
		Lng:      "12.34567",
		Priority: 1,
	}
}

// TestExtractSampleAlarm verifies every field of a fully populated alarm.
func TestExtractSampleAlarm(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	fields := p.Extract(context.Background(), sampleInbound())

	require.Equal(t, alarm.ExtractedFields{
		Einsatznrlst:     "E-123",
		Strasse:          "Hauptstraße",
		Hausnummer:       "247",
		Ort:              "Musterstadt",
		Ortsteil:         "Nord",
		Objektname:       "Hafenlager",
		Koordinaten:      "1.23456,12.34567",
		Einsatzstichwort: "FEUER3",
		Zusatzinfo:       "Unklare Rauchentwicklung im Hafen",
	}, fields)
}

// TestExtractIsIdempotent verifies repeated extraction yields identical results.
func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	first := p.Extract(context.Background(), sampleInbound())
	second := p.Extract(context.Background(), sampleInbound())
	require.Equal(t, first, second)
}

// TestExtractLastMatchWins verifies that with several matching lines the
// last one provides the value.
func TestExtractLastMatchWins(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	in := sampleInbound()
	in.Text = "Ort: Altdorf\nOrt:  Neudorf \n"

	fields := p.Extract(context.Background(), in)

	// The later line wins and the captured value is trimmed.
	require.Equal(t, "Neudorf", fields.Ort)
}

// TestExtractCRLFBody verifies carriage returns are stripped before matching.
func TestExtractCRLFBody(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	in := sampleInbound()
	in.Text = strings.ReplaceAll(sampleBody, "\n", "\r\n")

	fields := p.Extract(context.Background(), in)
	require.Equal(t, "Musterstadt", fields.Ort)
	require.Equal(t, "Unklare Rauchentwicklung im Hafen", fields.Zusatzinfo)
}

// TestExtractAddressVariants verifies the street splitting rules.
func TestExtractAddressVariants(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	cases := []struct {
		address string
		street  string
		number  string
	}{
		{"Hauptstraße 247, 12345 Musterstadt", "Hauptstraße", "247"},
		{"Hauptstraße 247", "Hauptstraße", "247"},
		{"Hauptstraße", "Hauptstraße", ""},
		{"Hauptstraße, Musterstadt", "Hauptstraße", ""},
		{", 12345 Musterstadt", "", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		in := sampleInbound()
		in.Address = c.address

		fields := p.Extract(context.Background(), in)
		require.Equal(t, c.street, fields.Strasse, "address %q", c.address)
		require.Equal(t, c.number, fields.Hausnummer, "address %q", c.address)
	}
}

// TestExtractNoteBoundaries verifies the note needs both markers in order.
func TestExtractNoteBoundaries(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"both markers", "Meldung: Keller unter Wasser Schlagwort: THWASSER", "Keller unter Wasser"},
		{"missing start", "Keller unter Wasser Schlagwort: THWASSER", ""},
		{"missing end", "Meldung: Keller unter Wasser", ""},
		{"end before start", "Schlagwort: THWASSER Meldung: Keller unter Wasser", ""},
		{"empty note", "Meldung:Schlagwort", ""},
	}
	for _, c := range cases {
		in := sampleInbound()
		in.Text = c.body

		fields := p.Extract(context.Background(), in)
		require.Equal(t, c.want, fields.Zusatzinfo, c.name)
	}
}

// TestExtractCoordinatesVerbatim verifies lat and lng are joined without
// validation or reformatting.
func TestExtractCoordinatesVerbatim(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	in := sampleInbound()
	in.Lat, in.Lng = "", ""
	require.Equal(t, ",", p.Extract(context.Background(), in).Koordinaten)

	in.Lat, in.Lng = "n/a", " 12.3 "
	require.Equal(t, "n/a, 12.3 ", p.Extract(context.Background(), in).Koordinaten)
}

// TestExtractMissingFieldsStayEmpty verifies an alarm without matching lines
// still produces a usable result.
func TestExtractMissingFieldsStayEmpty(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	fields := p.Extract(context.Background(), alarm.InboundAlarm{})
	require.Equal(t, alarm.ExtractedFields{Koordinaten: ","}, fields)
}
