package mathml

import "strings"

// Converter replaces math spans in text with rendered markup.
type Converter struct {
	renderer Renderer
	// text transforms prose and spans left verbatim after a render
	// failure. Identity when nil.
	text func(string) string
	// onError, when set, observes each localized render failure.
	onError func(Segment, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithRenderer replaces the default TeXRenderer.
func WithRenderer(r Renderer) Option {
	return func(c *Converter) { c.renderer = r }
}

// WithTextTransform applies fn to every piece of output that is not
// rendered math, such as an HTML escaper.
func WithTextTransform(fn func(string) string) Option {
	return func(c *Converter) { c.text = fn }
}

// WithErrorHook registers fn to observe spans that failed to render.
func WithErrorHook(fn func(Segment, error)) Option {
	return func(c *Converter) { c.onError = fn }
}

// NewConverter creates a Converter. Without options it renders with
// TeXRenderer and leaves prose untouched.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{renderer: TeXRenderer{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert replaces every math span in src. A span that fails to render
// is kept verbatim, delimiters included; the failure never aborts the
// rest of the conversion.
func (c *Converter) Convert(src string) string {
	if !strings.Contains(src, "$") {
		return c.plain(src)
	}

	var b strings.Builder
	b.Grow(len(src))
	sc := NewScanner(src)
	for {
		seg, ok := sc.Next()
		if !ok {
			break
		}
		if seg.Kind == KindText {
			b.WriteString(c.plain(seg.Raw))
			continue
		}
		out, err := c.renderer.Render(seg.TeX, seg.Kind == KindDisplay)
		if err != nil {
			if c.onError != nil {
				c.onError(seg, err)
			}
			b.WriteString(c.plain(seg.Raw))
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}

func (c *Converter) plain(s string) string {
	if c.text == nil {
		return s
	}
	return c.text(s)
}

var defaultConverter = NewConverter()

// ConvertSpans converts math spans in text using the default renderer.
func ConvertSpans(text string) string {
	return defaultConverter.Convert(text)
}
