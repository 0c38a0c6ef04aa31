package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator checks untyped payloads against the known shapes using
// JSON Schema Draft 2020-12. It is safe for concurrent use.
type Validator struct {
	schemas map[Shape]*jsonschema.Schema
}

// NewValidator compiles every shape schema.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	// All resources go in first so cross-shape $refs resolve.
	shapes := make([]Shape, 0, len(shapeSchemas))
	for shape, src := range shapeSchemas {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("unmarshal %s schema: %w", shape, err)
		}
		if err := c.AddResource(shape.url(), doc); err != nil {
			return nil, fmt.Errorf("add %s schema resource: %w", shape, err)
		}
		shapes = append(shapes, shape)
	}
	sort.Slice(shapes, func(i, j int) bool { return shapes[i] < shapes[j] })

	v := &Validator{schemas: make(map[Shape]*jsonschema.Schema, len(shapes))}
	for _, shape := range shapes {
		compiled, err := c.Compile(shape.url())
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", shape, err)
		}
		v.schemas[shape] = compiled
	}
	return v, nil
}

var defaultValidator = sync.OnceValues(NewValidator)

// Default returns the process-wide validator, compiled on first use.
func Default() (*Validator, error) {
	return defaultValidator()
}

// Validate checks payload against shape. The returned error, if any, is a
// validation *Error listing every violation.
func (v *Validator) Validate(payload any, shape Shape) error {
	_, err := v.check(payload, shape)
	return err
}

// check validates payload and returns its JSON encoding for decoding.
func (v *Validator) check(payload any, shape Shape) ([]byte, error) {
	compiled, ok := v.schemas[shape]
	if !ok {
		return nil, NewErrorf(ErrCodeValidation, "unknown shape %q", shape)
	}

	raw, doc, err := toJSONValue(payload)
	if err != nil {
		return nil, NewErrorf(ErrCodeValidation, "%s: payload is not valid JSON", shape).WithCause(err)
	}

	if err := compiled.Validate(doc); err != nil {
		return nil, toValidationError(shape, err)
	}
	return raw, nil
}

// Decode validates payload against shape and decodes it into T.
func Decode[T any](v *Validator, payload any, shape Shape) (T, error) {
	var out T

	raw, err := v.check(payload, shape)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, NewErrorf(ErrCodeValidation, "%s: decode: %s", shape, err.Error()).WithCause(err)
	}
	return out, nil
}

// ListTemplatesResponse validates and decodes a list_workflows result.
func (v *Validator) ListTemplatesResponse(payload any) (ListTemplatesResponse, error) {
	return Decode[ListTemplatesResponse](v, payload, ShapeListTemplatesResponse)
}

// GraphWorkflowList validates and decodes a run_graph_workflow listing result.
func (v *Validator) GraphWorkflowList(payload any) ([]GraphWorkflowInfo, error) {
	return Decode[[]GraphWorkflowInfo](v, payload, ShapeGraphWorkflowList)
}

// RunGraphResponse validates and decodes a run_graph_workflow execution result.
func (v *Validator) RunGraphResponse(payload any) (RunGraphResponse, error) {
	return Decode[RunGraphResponse](v, payload, ShapeRunGraphResponse)
}

// QueryTraceResponse validates and decodes a query_trace result.
func (v *Validator) QueryTraceResponse(payload any) (QueryTraceResponse, error) {
	return Decode[QueryTraceResponse](v, payload, ShapeQueryTraceResponse)
}

// RunnerReport validates and decodes a serialized report.
func (v *Validator) RunnerReport(payload any) (RunnerReport, error) {
	return Decode[RunnerReport](v, payload, ShapeRunnerReport)
}

// toJSONValue encodes payload and decodes it back with json.Number for
// numbers, which is what the jsonschema library expects.
func toJSONValue(payload any) ([]byte, any, error) {
	var raw []byte
	switch p := payload.(type) {
	case json.RawMessage:
		raw = p
	default:
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		raw = b
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	return raw, doc, nil
}

// toValidationError converts a jsonschema error tree into a validation
// *Error carrying every leaf violation.
func toValidationError(shape Shape, err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return NewErrorf(ErrCodeValidation, "%s: %s", shape, err.Error()).WithCause(err)
	}

	result := &ValidationResult{}
	collectViolations(verr, result)
	if result.Valid() {
		result.AddError("/", verr.Error())
	}
	return result.ToError(shape)
}

// collectViolations walks a ValidationError tree and records its leaves.
func collectViolations(verr *jsonschema.ValidationError, result *ValidationResult) {
	if len(verr.Causes) == 0 {
		path := "/" + strings.Join(verr.InstanceLocation, "/")
		msg := verr.Error()
		// Leaf messages read "at '<path>': <message>".
		if strings.HasPrefix(msg, "at ") {
			if i := strings.Index(msg, ": "); i > 0 {
				msg = msg[i+2:]
			}
		}
		result.AddError(path, msg)
		return
	}

	for _, cause := range verr.Causes {
		collectViolations(cause, result)
	}
}
