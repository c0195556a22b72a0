// Package parser implements the two read-only passes over an inbound alarm:
// field extraction (line-oriented, applying the configured patterns) and
// pager resolution (token-oriented substring matching against the catalogue).
//
// Both passes are deterministic and never fail the alarm: values that cannot
// be extracted stay empty and are logged, resource tokens without a
// catalogue match are ignored.
package parser
