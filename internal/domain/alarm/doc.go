// Package alarm contains core domain types for the alarm bridge.
//
// It defines InboundAlarm (the webhook payload), ExtractedFields (the values
// pulled from it), Ric (one pager catalogue entry), and OutboundAlarm (one
// record submitted to Fireplan), plus Assemble which fans an extraction
// result out into one outbound record per resolved pager identifier.
package alarm
