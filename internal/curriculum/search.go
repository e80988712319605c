package curriculum

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match is a lesson found by Search, with its surrounding coordinates.
type Match struct {
	Grade   Grade
	Chapter Chapter
	Lesson  Lesson
}

// Search returns every lesson whose name or chapter name contains query.
// Matching ignores case and Vietnamese diacritics, so "dao dong" finds
// "DAO ĐỘNG".
func (c *Catalog) Search(query string) []Match {
	q := Fold(query)
	if q == "" {
		return nil
	}

	var out []Match
	for _, n := range c.nodes {
		for _, ch := range n.Chapters {
			chapterHit := strings.Contains(Fold(ch.Name), q)
			for _, l := range ch.Lessons {
				if chapterHit || strings.Contains(Fold(l.Name), q) || strings.EqualFold(l.ID, query) {
					out = append(out, Match{
						Grade:   n.Grade,
						Chapter: Chapter{ID: ch.ID, Name: ch.Name},
						Lesson:  l,
					})
				}
			}
		}
	}
	return out
}

// Fold lowercases s and strips combining marks; đ/Đ become d.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("đ", "d", "Đ", "d").Replace(folded)
	return strings.ToLower(strings.TrimSpace(folded))
}
