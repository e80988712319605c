package quiz

import (
	"time"

	"github.com/vatly/vatly/internal/curriculum"
)

// Queue accumulates request items in insertion order. It is owned by a
// single surface (a TUI screen, a CLI invocation) and is not safe for
// concurrent use.
type Queue struct {
	catalog *curriculum.Catalog
	items   []RequestItem
	lastID  int64
	now     func() time.Time
}

// NewQueue creates an empty queue resolving names through catalog. A nil
// catalog uses the embedded default.
func NewQueue(catalog *curriculum.Catalog) *Queue {
	if catalog == nil {
		catalog = curriculum.Default()
	}
	return &Queue{catalog: catalog, now: time.Now}
}

// Add validates sel, resolves chapter and lesson names, and appends a new
// item. The queue is unchanged when an error is returned.
func (q *Queue) Add(sel Selection) (RequestItem, error) {
	if sel.ChapterID == "" || sel.LessonID == "" {
		return RequestItem{}, invalidSelection("chapter and lesson are required")
	}
	chapter, ok := q.catalog.Chapter(sel.Grade, sel.ChapterID)
	if !ok {
		return RequestItem{}, invalidSelection("chapter %q not found in %s", sel.ChapterID, sel.Grade)
	}
	lesson, ok := q.catalog.Lesson(sel.Grade, sel.ChapterID, sel.LessonID)
	if !ok {
		return RequestItem{}, invalidSelection("lesson %q not found in chapter %q", sel.LessonID, sel.ChapterID)
	}
	if sel.Quantity < MinQuantity || sel.Quantity > MaxQuantity {
		return RequestItem{}, invalidSelection("quantity must be between %d and %d", MinQuantity, MaxQuantity)
	}
	if !sel.Type.Valid() {
		return RequestItem{}, invalidSelection("unknown question type %q", sel.Type)
	}
	if !sel.Difficulty.Valid() {
		return RequestItem{}, invalidSelection("unknown difficulty %q", sel.Difficulty)
	}

	item := RequestItem{
		ID:          q.nextID(),
		Grade:       sel.Grade,
		ChapterID:   chapter.ID,
		ChapterName: chapter.Name,
		LessonID:    lesson.ID,
		LessonName:  lesson.Name,
		Type:        sel.Type,
		Quantity:    sel.Quantity,
		Difficulty:  sel.Difficulty,
	}
	q.items = append(q.items, item)
	return item, nil
}

// nextID returns the current UnixNano time, bumped past the previous id
// so ids stay unique and increasing.
func (q *Queue) nextID() int64 {
	id := q.now().UnixNano()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id
	return id
}

// Remove deletes the item with the given id. Unknown ids are ignored.
func (q *Queue) Remove(id int64) {
	for i, it := range q.items {
		if it.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// TotalQuestions is the sum of quantities over the queued items.
func (q *Queue) TotalQuestions() int {
	return TotalQuestions(q.items)
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.items = nil
}

// Items returns a snapshot of the queued items.
func (q *Queue) Items() []RequestItem {
	out := make([]RequestItem, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}
