package alarm

// InboundAlarm is the alarm payload posted by the DIVERA 24/7 webhook.
// Every field is optional on the wire; absent fields decode to zero values.
type InboundAlarm struct {
	// ID is the numeric alarm id assigned by the alarm server.
	ID int64 `json:"id"`
	// Number is the external dispatch reference issued by the control center.
	Number string `json:"number"`
	// Title is the alarm keyword, e.g. "FEUER3".
	Title string `json:"title"`
	// Text is the multi-line alarm body carrying the marker sections.
	Text string `json:"text"`
	// Address is the free-form incident address.
	Address string `json:"address"`
	// Lat is the latitude as sent by the webhook, kept verbatim.
	Lat string `json:"lat"`
	// Lng is the longitude as sent by the webhook, kept verbatim.
	Lng string `json:"lng"`
	// Priority is the alarm priority flag.
	Priority int64 `json:"priority"`
	// Cluster lists the alerted organizational subunits.
	Cluster []string `json:"cluster"`
	// Group lists the alerted groups.
	Group []string `json:"group"`
	// Vehicle lists the alerted vehicles.
	Vehicle []string `json:"vehicle"`
	// TsCreate is the creation time as a Unix timestamp.
	TsCreate int64 `json:"ts_create"`
	// TsUpdate is the last update time as a Unix timestamp.
	TsUpdate int64 `json:"ts_update"`
}
