package export

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/vatly/vatly/internal/mathml"
	"github.com/vatly/vatly/internal/quiz"
)

const (
	// DocMIMEType is the content type Word associates with .doc files.
	DocMIMEType = "application/msword"

	filenamePrefix     = "De_Vat_Ly_Tong_Hop_"
	defaultExplanation = "Chưa có lời giải chi tiết."
)

// bom marks the stream as UTF-8 so Word does not guess a legacy codepage.
var bom = []byte{0xEF, 0xBB, 0xBF}

// Document is an exported artifact ready to be written or served.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Exporter renders quiz results into Word-openable documents. It is safe
// for concurrent use.
type Exporter struct {
	conv *mathml.Converter
	now  func() time.Time

	mu   sync.Mutex
	last int64 // unix millis of the previous filename
}

// New creates an Exporter using the wall clock.
func New() *Exporter {
	return &Exporter{
		conv: mathml.NewConverter(
			mathml.WithTextTransform(html.EscapeString),
			mathml.WithErrorHook(func(seg mathml.Segment, err error) {
				slog.Debug("math span left verbatim", "span", seg.Raw, "error", err)
			}),
		),
		now: time.Now,
	}
}

var defaultExporter = New()

// Export renders result with the package default Exporter.
func Export(result *quiz.Result) (*Document, error) {
	return defaultExporter.Export(result)
}

// Export renders result as a two-part exam document: questions first,
// then a page break and the worked solutions. A nil result exports
// nothing and returns (nil, nil).
func (e *Exporter) Export(result *quiz.Result) (*Document, error) {
	if result == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Write(bom)
	if err := docTemplate.Execute(&buf, e.view(result)); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	return &Document{
		Filename: fmt.Sprintf("%s%d.doc", filenamePrefix, e.stamp()),
		MIMEType: DocMIMEType,
		Data:     buf.Bytes(),
	}, nil
}

// stamp returns a strictly increasing millisecond timestamp so two
// exports never share a filename.
func (e *Exporter) stamp() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	ms := e.now().UnixMilli()
	if ms <= e.last {
		ms = e.last + 1
	}
	e.last = ms
	return ms
}

// rich converts math spans and escapes the surrounding prose.
func (e *Exporter) rich(s string) template.HTML {
	return template.HTML(e.conv.Convert(norm.NFC.String(s)))
}

type optionView struct {
	Label string
	Text  template.HTML
}

type questionView struct {
	Number      int
	Kind        string // mc, tf, sa or other
	Content     template.HTML
	Options     []optionView
	Answer      template.HTML
	Explanation template.HTML
}

type docView struct {
	Title     string
	Questions []questionView
}

func (e *Exporter) view(r *quiz.Result) docView {
	v := docView{Title: norm.NFC.String(r.Title)}
	for i, q := range r.Questions {
		qv := questionView{
			Number:  i + 1,
			Content: e.rich(q.Content),
			Answer:  e.rich(q.CorrectAnswer),
		}

		switch q.Type {
		case quiz.MultipleChoice:
			qv.Kind = "mc"
			for j, opt := range q.Options {
				label := string(rune('A' + j))
				if strings.EqualFold(strings.TrimSpace(q.CorrectAnswer), label) {
					label = "*" + label
				}
				text := optionPrefix.ReplaceAllString(strings.TrimSpace(opt), "")
				qv.Options = append(qv.Options, optionView{Label: label, Text: e.rich(text)})
			}
		case quiz.TrueFalse:
			qv.Kind = "tf"
			for j, opt := range q.Options {
				qv.Options = append(qv.Options, optionView{
					Label: statementLabel(j),
					Text:  e.rich(strings.TrimSpace(opt)),
				})
			}
		case quiz.ShortAnswer:
			qv.Kind = "sa"
		default:
			qv.Kind = "other"
		}

		expl := q.Explanation
		if strings.TrimSpace(expl) == "" {
			expl = defaultExplanation
		}
		qv.Explanation = e.rich(expl)

		v.Questions = append(v.Questions, qv)
	}
	return v
}

func statementLabel(i int) string {
	if i < 4 {
		return string(rune('a' + i))
	}
	return "-"
}
