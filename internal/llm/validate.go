package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// compiled holds one compiled schema per Schema.Name. Names are stable
// contract identifiers, so a name is compiled once per process.
var compiled = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: map[string]*jsonschema.Schema{}}

var violationPrinter = message.NewPrinter(language.English)

// maxViolations caps how many schema violations an error lists.
const maxViolations = 5

// ValidateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse carrying the raw content.
func ValidateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(err error) error { return &ErrInvalidResponse{Content: raw, Err: err} }

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("not JSON: %w", err))
	}
	sch, err := compile(schema)
	if err != nil {
		return invalid(err)
	}
	if err := sch.Validate(doc); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return invalid(fmt.Errorf("%s: %s", schema.Name, violations(verr)))
		}
		return invalid(err)
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	compiled.Lock()
	defer compiled.Unlock()
	if sch, ok := compiled.byName[schema.Name]; ok {
		return sch, nil
	}

	// The compiler wants decoded JSON, not Go maps with typed slices.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}

	url := "mem://vatly/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	compiled.byName[schema.Name] = sch
	return sch, nil
}

// violations flattens the error tree into "location: reason" entries for
// its leaves, which is where the model's actual mistakes are reported.
func violations(verr *jsonschema.ValidationError) string {
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := "/" + strings.Join(e.InstanceLocation, "/")
			out = append(out, loc+": "+e.ErrorKind.LocalizedString(violationPrinter))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)

	if len(out) > maxViolations {
		out = append(out[:maxViolations], fmt.Sprintf("and %d more", len(out)-maxViolations))
	}
	return strings.Join(out, "; ")
}
