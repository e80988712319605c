package mathml

// Kind classifies a scanned segment.
type Kind int

const (
	KindText    Kind = iota // prose outside math delimiters
	KindInline              // $...$
	KindDisplay             // $$...$$
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindDisplay:
		return "display"
	default:
		return "text"
	}
}

// Segment is one piece of scanned input.
type Segment struct {
	Kind Kind
	// Raw is the exact source text, including delimiters for math.
	Raw string
	// TeX is the math body without delimiters. Empty for KindText.
	TeX string
}

// Scanner splits text into prose and math segments lazily.
//
// Display spans ($$...$$) take precedence over inline spans ($...$) at
// the same position. Inside math, and in prose, a backslash escapes the
// following character, so \$ never opens or closes a span. A delimiter
// without a matching closer is prose. Each input byte is visited a
// bounded number of times.
type Scanner struct {
	src string
	pos int

	// Set once a search for a closer has run off the end of the input;
	// no later opener of that kind can succeed either.
	noInline  bool
	noDisplay bool

	pending *Segment
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Reset restarts the scanner on new input.
func (s *Scanner) Reset(src string) {
	*s = Scanner{src: src}
}

// Next returns the next segment. ok is false once the input is exhausted.
// Adjacent prose is always coalesced into a single KindText segment.
func (s *Scanner) Next() (seg Segment, ok bool) {
	if s.pending != nil {
		seg = *s.pending
		s.pending = nil
		return seg, true
	}
	if s.pos >= len(s.src) {
		return Segment{}, false
	}

	start := s.pos
	i := s.pos
	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			i += 2
			continue
		case '$':
			if math, end, found := s.matchAt(i); found {
				s.pos = end
				if i == start {
					return math, true
				}
				s.pending = &math
				return Segment{Kind: KindText, Raw: s.src[start:i]}, true
			}
		}
		i++
	}

	s.pos = len(s.src)
	return Segment{Kind: KindText, Raw: s.src[start:]}, true
}

// matchAt tries to match a math span opening at src[i] == '$'.
func (s *Scanner) matchAt(i int) (Segment, int, bool) {
	if i+1 < len(s.src) && s.src[i+1] == '$' {
		if !s.noDisplay {
			if end, ok := s.findDisplayClose(i + 2); ok {
				body := s.src[i+2 : end]
				if body != "" {
					return Segment{Kind: KindDisplay, Raw: s.src[i : end+2], TeX: body}, end + 2, true
				}
			}
		}
		// The first dollar of an unmatched "$$" is prose; the second may
		// still open an inline span.
		return Segment{}, 0, false
	}

	if s.noInline {
		return Segment{}, 0, false
	}
	end, ok := s.findInlineClose(i + 1)
	if !ok {
		return Segment{}, 0, false
	}
	return Segment{Kind: KindInline, Raw: s.src[i : end+1], TeX: s.src[i+1 : end]}, end + 1, true
}

func (s *Scanner) findDisplayClose(from int) (int, bool) {
	for j := from; j < len(s.src); j++ {
		switch s.src[j] {
		case '\\':
			j++
		case '$':
			if j+1 < len(s.src) && s.src[j+1] == '$' {
				return j, true
			}
		}
	}
	s.noDisplay = true
	return 0, false
}

func (s *Scanner) findInlineClose(from int) (int, bool) {
	for j := from; j < len(s.src); j++ {
		switch s.src[j] {
		case '\\':
			j++
		case '$':
			return j, true
		}
	}
	s.noInline = true
	return 0, false
}

// Segments scans src completely.
func Segments(src string) []Segment {
	var out []Segment
	sc := NewScanner(src)
	for {
		seg, ok := sc.Next()
		if !ok {
			return out
		}
		out = append(out, seg)
	}
}
