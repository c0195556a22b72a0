package parser

import (
	"context"
	"strings"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
)

// unitsMarker starts the resource list inside the alarm body.
const unitsMarker = "Einsatzmittel:"

// Resolve maps the alarm body to the ordered set of pager entries to alert.
//
// Only the text after the resource marker is considered. It is split on
// commas, and every token is matched against the catalogue by substring.
// When one matching text contains another within the same token, only the
// longer survives. Matched department entries pull in the dummy entries of
// their department, and always-on entries close out every alarm. Each pager
// identifier appears at most once, first occurrence wins.
func (p *Parser) Resolve(ctx context.Context, text string) []alarm.Ric {
	var (
		resolved           []alarm.Ric
		seen               = make(map[string]struct{})
		matchedDepartments = make(map[string]struct{})
	)

	add := func(r alarm.Ric) {
		r = r.Padded()
		if _, ok := seen[r.Ric]; ok {
			return
		}

		seen[r.Ric] = struct{}{}

		resolved = append(resolved, r)
	}

	if _, window, found := strings.Cut(normalizeBody(text), unitsMarker); found {
		for _, token := range strings.Split(window, ",") {
			for _, match := range p.matchToken(token) {
				if match.Department != "" {
					matchedDepartments[match.Department] = struct{}{}
				}

				add(match)
			}
		}
	}

	// Department dummies ride along once any entry of their department matched.
	for _, r := range p.catalogue {
		if !r.Dummy {
			continue
		}

		if _, ok := matchedDepartments[r.Department]; ok {
			add(r)
		}
	}

	// Always-on entries are part of every alarm.
	for _, r := range p.catalogue {
		if r.Always {
			add(r)
		}
	}

	logger.DebugKV(ctx, "resolved pager identifiers", "count", len(resolved))

	return resolved
}

// matchToken returns the catalogue entries whose text occurs in the token.
// Dummy and always-on entries never match by text. When one matching text
// contains another, the shorter match is dropped, so a token naming "LF-10"
// does not also alert the "LF-1" entry.
func (p *Parser) matchToken(token string) []alarm.Ric {
	var matches []alarm.Ric

	for _, r := range p.catalogue {
		if r.Dummy || r.Always || r.Text == "" {
			continue
		}

		if strings.Contains(token, r.Text) {
			matches = append(matches, r)
		}
	}

	var kept []alarm.Ric

	for i, m := range matches {
		shadowed := false

		for j, other := range matches {
			if i == j {
				continue
			}

			if len(other.Text) > len(m.Text) && strings.Contains(other.Text, m.Text) {
				shadowed = true

				break
			}
		}

		if !shadowed {
			kept = append(kept, m)
		}
	}

	return kept
}
