package alarm

// OutboundAlarm is one alarm record submitted to the Fireplan API.
// The JSON field names are dictated by the API contract.
type OutboundAlarm struct {
	// Ric is the zero-padded pager identifier to alert.
	Ric string `json:"ric"`
	// SubRic is the sub-address of the pager identifier.
	SubRic string `json:"subRic"`
	// Einsatznrlst is the dispatch reference of the control center.
	Einsatznrlst string `json:"einsatznrlst"`
	// Strasse is the street name of the incident address.
	Strasse string `json:"strasse"`
	// Hausnummer is the house number of the incident address.
	Hausnummer string `json:"hausnummer"`
	// Ort is the town of the incident.
	Ort string `json:"ort"`
	// Ortsteil is the district of the incident.
	Ortsteil string `json:"ortsteil"`
	// Objektname is the named object at the incident site.
	Objektname string `json:"objektname"`
	// Koordinaten is the "<lat>,<lng>" coordinate pair.
	Koordinaten string `json:"koordinaten"`
	// Einsatzstichwort is the alarm keyword.
	Einsatzstichwort string `json:"einsatzstichwort"`
	// Zusatzinfo is the free-text note for the crew.
	Zusatzinfo string `json:"zusatzinfo"`
}

// Assemble builds one outbound record per resolved catalogue entry.
// All records share the extracted field values; only the pager identifier
// and its sub-address differ. Identifiers are padded to canonical width,
// so Assemble also accepts entries that skipped resolution.
func Assemble(fields ExtractedFields, rics []Ric) []OutboundAlarm {
	out := make([]OutboundAlarm, 0, len(rics))

	for _, r := range rics {
		r = r.Padded()

		out = append(out, OutboundAlarm{
			Ric:              r.Ric,
			SubRic:           r.SubRic,
			Einsatznrlst:     fields.Einsatznrlst,
			Strasse:          fields.Strasse,
			Hausnummer:       fields.Hausnummer,
			Ort:              fields.Ort,
			Ortsteil:         fields.Ortsteil,
			Objektname:       fields.Objektname,
			Koordinaten:      fields.Koordinaten,
			Einsatzstichwort: fields.Einsatzstichwort,
			Zusatzinfo:       fields.Zusatzinfo,
		})
	}

	return out
}
