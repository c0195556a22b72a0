package alarm

// ExtractedFields holds the dispatch-relevant values pulled out of one
// inbound alarm. Fields that could not be extracted stay empty; an empty
// field never aborts processing.
type ExtractedFields struct {
	// Einsatznrlst is the dispatch reference of the control center.
	Einsatznrlst string
	// Strasse is the street name, split off the incident address.
	Strasse string
	// Hausnummer is the house number, split off the incident address.
	Hausnummer string
	// Ort is the town, matched by the configured pattern.
	Ort string
	// Ortsteil is the district, matched by the configured pattern.
	Ortsteil string
	// Objektname is the named object at the incident site, matched by the configured pattern.
	Objektname string
	// Koordinaten is the "<lat>,<lng>" pair, concatenated verbatim.
	Koordinaten string
	// Einsatzstichwort is the alarm keyword.
	Einsatzstichwort string
	// Zusatzinfo is the free-text note between the report markers.
	Zusatzinfo string
}
