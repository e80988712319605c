package curriculum

import (
	"fmt"
	"strings"
)

// validateNodes performs structural checks on a curriculum table.
// Returns a combined error describing all problems found, or nil if valid.
func validateNodes(nodes []Node) error {
	var errs []string

	if len(nodes) == 0 {
		errs = append(errs, "no grades defined")
	}

	grades := make(map[Grade]bool, len(nodes))
	ids := make(map[string]bool)

	for _, n := range nodes {
		if !n.Grade.Valid() {
			errs = append(errs, fmt.Sprintf("unsupported grade %d", int(n.Grade)))
		}
		if grades[n.Grade] {
			errs = append(errs, fmt.Sprintf("duplicate grade %d", int(n.Grade)))
		}
		grades[n.Grade] = true

		for _, ch := range n.Chapters {
			if ch.ID == "" || ch.Name == "" {
				errs = append(errs, fmt.Sprintf("grade %d: chapter with empty id or name", int(n.Grade)))
			}
			if ids[ch.ID] {
				errs = append(errs, fmt.Sprintf("duplicate id %q", ch.ID))
			}
			ids[ch.ID] = true

			if len(ch.Lessons) == 0 {
				errs = append(errs, fmt.Sprintf("chapter %q has no lessons", ch.ID))
			}
			for _, l := range ch.Lessons {
				if l.ID == "" || l.Name == "" {
					errs = append(errs, fmt.Sprintf("chapter %q: lesson with empty id or name", ch.ID))
				}
				if ids[l.ID] {
					errs = append(errs, fmt.Sprintf("duplicate id %q", l.ID))
				}
				ids[l.ID] = true
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
