package parser

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
)

// Parser turns inbound alarms into extraction results and resolved pager sets.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	// ort matches the town line of the alarm body.
	ort *regexp.Regexp
	// ortsteil matches the district line of the alarm body.
	ortsteil *regexp.Regexp
	// objektname matches the object line of the alarm body.
	objektname *regexp.Regexp
	// catalogue is the configured pager catalogue.
	catalogue []alarm.Ric
}

// New compiles the three extraction patterns and captures the catalogue.
// Pattern errors are fatal, the bridge must not start half-configured.
func New(ortPattern, ortsteilPattern, objektnamePattern string, catalogue []alarm.Ric) (*Parser, error) {
	ort, err := regexp.Compile(ortPattern)
	if err != nil {
		return nil, fmt.Errorf("compile ort pattern: %w", err)
	}

	ortsteil, err := regexp.Compile(ortsteilPattern)
	if err != nil {
		return nil, fmt.Errorf("compile ortsteil pattern: %w", err)
	}

	objektname, err := regexp.Compile(objektnamePattern)
	if err != nil {
		return nil, fmt.Errorf("compile objektname pattern: %w", err)
	}

	return &Parser{
		ort:        ort,
		ortsteil:   ortsteil,
		objektname: objektname,
		catalogue:  slices.Clone(catalogue),
	}, nil
}

// normalizeBody strips carriage returns so the body splits cleanly on "\n"
// regardless of the line endings the alarm server sent.
func normalizeBody(text string) string {
	return strings.ReplaceAll(text, "\r", "")
}
