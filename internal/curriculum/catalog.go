package curriculum

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed physics.yaml
var physicsYAML []byte

// Catalog is a read-only grade → chapter → lesson lookup table.
// All lookups return copies; the catalog is never mutated after Load.
type Catalog struct {
	nodes   []Node
	byGrade map[Grade]*Node
}

// document is the on-disk shape of the curriculum table.
type document struct {
	Grades []Node `yaml:"grades"`
}

// defaultCatalog is the compiled-in physics table, parsed once at init.
var defaultCatalog *Catalog

func init() {
	c, err := Load(physicsYAML)
	if err != nil {
		panic(fmt.Sprintf("curriculum: embedded table is invalid: %v", err))
	}
	defaultCatalog = c
}

// Default returns the compiled-in GDPT 2018 physics catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Load parses and validates a curriculum table.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}
	if err := validateNodes(doc.Grades); err != nil {
		return nil, err
	}

	c := &Catalog{
		nodes:   doc.Grades,
		byGrade: make(map[Grade]*Node, len(doc.Grades)),
	}
	for i := range c.nodes {
		c.byGrade[c.nodes[i].Grade] = &c.nodes[i]
	}
	return c, nil
}

// Grades returns the grades present in the catalog, in table order.
func (c *Catalog) Grades() []Grade {
	out := make([]Grade, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, n.Grade)
	}
	return out
}

// Chapters returns the ordered chapters for a grade.
// Unknown grades yield an empty list.
func (c *Catalog) Chapters(grade Grade) []Chapter {
	n, ok := c.byGrade[grade]
	if !ok {
		return []Chapter{}
	}
	out := make([]Chapter, len(n.Chapters))
	for i, ch := range n.Chapters {
		out[i] = Chapter{ID: ch.ID, Name: ch.Name, Lessons: slices.Clone(ch.Lessons)}
	}
	return out
}

// Lessons returns the ordered lessons of a chapter.
// An unknown grade or chapter yields an empty list.
func (c *Catalog) Lessons(grade Grade, chapterID string) []Lesson {
	ch, ok := c.findChapter(grade, chapterID)
	if !ok {
		return []Lesson{}
	}
	return slices.Clone(ch.Lessons)
}

// Chapter looks up a single chapter.
func (c *Catalog) Chapter(grade Grade, chapterID string) (Chapter, bool) {
	ch, ok := c.findChapter(grade, chapterID)
	if !ok {
		return Chapter{}, false
	}
	return Chapter{ID: ch.ID, Name: ch.Name, Lessons: slices.Clone(ch.Lessons)}, true
}

// Lesson looks up a single lesson within a chapter.
func (c *Catalog) Lesson(grade Grade, chapterID, lessonID string) (Lesson, bool) {
	ch, ok := c.findChapter(grade, chapterID)
	if !ok {
		return Lesson{}, false
	}
	for _, l := range ch.Lessons {
		if l.ID == lessonID {
			return l, true
		}
	}
	return Lesson{}, false
}

func (c *Catalog) findChapter(grade Grade, chapterID string) (*Chapter, bool) {
	n, ok := c.byGrade[grade]
	if !ok || chapterID == "" {
		return nil, false
	}
	for i := range n.Chapters {
		if n.Chapters[i].ID == chapterID {
			return &n.Chapters[i], true
		}
	}
	return nil, false
}
