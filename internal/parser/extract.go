package parser

import (
	"context"
	"strings"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
)

// Markers delimiting the free-text note inside the alarm body.
const (
	noteStartMarker = "Meldung:"
	noteEndMarker   = "Schlagwort"
)

// Extract pulls the dispatch-relevant fields out of one inbound alarm.
// Extraction is line-oriented: every configured pattern is applied to each
// line of the normalized body and the last matching line wins. Fields that
// stay empty are logged as warnings, they never abort the alarm.
//
// Extract has no side effects on the Parser, calling it twice with the
// same alarm yields the same result.
func (p *Parser) Extract(ctx context.Context, in alarm.InboundAlarm) alarm.ExtractedFields {
	body := normalizeBody(in.Text)

	fields := alarm.ExtractedFields{
		Einsatznrlst:     in.Number,
		Einsatzstichwort: in.Title,
		Koordinaten:      in.Lat + "," + in.Lng,
	}

	for _, line := range strings.Split(body, "\n") {
		if m := p.ort.FindStringSubmatch(line); len(m) > 1 {
			fields.Ort = strings.TrimSpace(m[1])
		}

		if m := p.ortsteil.FindStringSubmatch(line); len(m) > 1 {
			fields.Ortsteil = strings.TrimSpace(m[1])
		}

		if m := p.objektname.FindStringSubmatch(line); len(m) > 1 {
			fields.Objektname = strings.TrimSpace(m[1])
		}
	}

	fields.Strasse, fields.Hausnummer = splitAddress(in.Address)
	fields.Zusatzinfo = noteBetweenMarkers(body)

	logMissing(ctx, fields)

	return fields
}

// splitAddress splits "Hauptstraße 247, 12345 Musterstadt" into street and
// house number. Only the part left of the first comma is considered; its
// first whitespace-separated token is the street, the second the number.
func splitAddress(address string) (street, number string) {
	left, _, _ := strings.Cut(address, ",")

	tokens := strings.Fields(left)
	if len(tokens) > 0 {
		street = tokens[0]
	}

	if len(tokens) > 1 {
		number = tokens[1]
	}

	return street, number
}

// noteBetweenMarkers returns the trimmed text between the report marker and
// the keyword marker. The end marker must occur after the start marker,
// otherwise the note is empty.
func noteBetweenMarkers(body string) string {
	_, after, found := strings.Cut(body, noteStartMarker)
	if !found {
		return ""
	}

	note, _, found := strings.Cut(after, noteEndMarker)
	if !found {
		return ""
	}

	return strings.TrimSpace(note)
}

// logMissing warns about every essential field the extraction left empty.
func logMissing(ctx context.Context, fields alarm.ExtractedFields) {
	checks := []struct {
		name  string
		value string
	}{
		{"einsatznrlst", fields.Einsatznrlst},
		{"einsatzstichwort", fields.Einsatzstichwort},
		{"strasse", fields.Strasse},
		{"hausnummer", fields.Hausnummer},
		{"ort", fields.Ort},
		{"ortsteil", fields.Ortsteil},
		{"objektname", fields.Objektname},
	}

	for _, c := range checks {
		if c.value == "" {
			logger.WarnKV(ctx, "field not extracted", "field", c.name)
		}
	}
}
