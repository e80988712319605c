package mathml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wyatt915/treeblood"
)

// RenderError reports a TeX body that could not be rendered.
type RenderError struct {
	TeX string
	Msg string
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render %q: %s: %v", e.TeX, e.Msg, e.Err)
	}
	return fmt.Sprintf("render %q: %s", e.TeX, e.Msg)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer turns a TeX math body into a markup fragment.
type Renderer interface {
	Render(tex string, display bool) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(tex string, display bool) (string, error)

func (f RendererFunc) Render(tex string, display bool) (string, error) {
	return f(tex, display)
}

// physicsMacros are shorthands the model tends to emit.
var physicsMacros = map[string]string{
	"ohm":     `\Omega`,
	"celsius": `^{\circ}\mathrm{C}`,
}

// TeXRenderer renders TeX to presentation MathML with treeblood.
//
// treeblood marks unknown commands with <merror> instead of failing;
// those are reported as a *RenderError so the caller can keep the span
// verbatim.
type TeXRenderer struct{}

// Render returns a single-line <math> element. Display mode sets
// display="block".
func (TeXRenderer) Render(tex string, display bool) (string, error) {
	if strings.TrimSpace(tex) == "" {
		return "", &RenderError{TeX: tex, Msg: "empty expression"}
	}
	if err := checkRawText(tex); err != nil {
		return "", err
	}

	// A Pitziil carries per-document parse state, so one per call.
	doc := treeblood.NewDocument(physicsMacros, false)
	doc.PrintOneLine = true

	var out string
	var err error
	if display {
		out, err = doc.DisplayStyle(tex)
	} else {
		out, err = doc.TextStyle(tex)
	}
	if err != nil {
		return "", &RenderError{TeX: tex, Msg: "invalid TeX", Err: err}
	}
	if strings.Contains(out, "<merror") {
		return "", &RenderError{TeX: tex, Msg: "unsupported command"}
	}
	return strings.TrimSpace(out), nil
}

var errRawMarkup = errors.New("raw markup character")

// textCommands copy their argument into the output unescaped.
var textCommands = []string{`\text{`, `\textrm{`, `\textbf{`, `\textit{`, `\mbox{`}

// checkRawText rejects any & and text arguments carrying < or >, since
// treeblood would copy them into the document unescaped.
func checkRawText(tex string) error {
	if strings.Contains(tex, "&") {
		return &RenderError{TeX: tex, Msg: "ampersand is not supported", Err: errRawMarkup}
	}
	for _, cmd := range textCommands {
		rest := tex
		for {
			i := strings.Index(rest, cmd)
			if i < 0 {
				break
			}
			rest = rest[i+len(cmd):]
			arg := rest
			if end := strings.IndexByte(arg, '}'); end >= 0 {
				arg = arg[:end]
			}
			if strings.ContainsAny(arg, "<>") {
				return &RenderError{TeX: tex, Msg: "unsafe text", Err: errRawMarkup}
			}
		}
	}
	return nil
}
