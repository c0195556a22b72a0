package alarm

import "strings"

// ricCodeWidth is the canonical width of a pager identifier on the Fireplan side.
const ricCodeWidth = 7

// Ric is one entry of the configured pager catalogue. An entry maps a
// resource string announced in the alarm text to the pager identifier
// that Fireplan alerts for it.
type Ric struct {
	// Text is the resource string searched for in the alarm text.
	Text string `yaml:"text"`
	// Ric is the pager identifier submitted to Fireplan.
	Ric string `yaml:"ric"`
	// SubRic selects the sub-address of the pager identifier.
	SubRic string `yaml:"subric"`
	// Department groups entries that belong to the same fire department.
	Department string `yaml:"department,omitempty"`
	// Dummy marks an entry that is never matched by text but is pulled in
	// whenever another entry of the same department matched.
	Dummy bool `yaml:"dummy,omitempty"`
	// Always marks an entry included in every resolved alarm.
	Always bool `yaml:"always,omitempty"`
}

// Padded returns a copy of the entry with the pager identifier left-padded
// with zeros to the canonical width. Longer identifiers are kept as they are.
func (r Ric) Padded() Ric {
	if len(r.Ric) < ricCodeWidth {
		r.Ric = strings.Repeat("0", ricCodeWidth-len(r.Ric)) + r.Ric
	}

	return r
}
