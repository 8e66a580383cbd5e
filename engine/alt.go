package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

// Alt is the alternate JsonSchemaEngine backend, built on
// kaptinlin/jsonschema. That library only understands the 2020-12 dialect,
// so Alt only accepts schemas for that dialect (OpenAPI 3.1/3.2); compiling
// anything else returns an error rather than silently misevaluating it.
type Alt struct{}

// NewAlt constructs the alternate backend.
func NewAlt() *Alt { return &Alt{} }

func (a *Alt) Compile(schema []byte, dialect string) (Schema, error) {
	if dialect != "" && dialect != "https://json-schema.org/draft/2020-12/schema" {
		return nil, fmt.Errorf("engine/alt: dialect %q is not supported, only 2020-12", dialect)
	}
	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile(schema)
	if err != nil {
		return nil, fmt.Errorf("engine/alt: compile: %w", err)
	}
	return &altSchema{compiled: compiled}, nil
}

type altSchema struct {
	compiled *jsonschema.Schema
}

func (s *altSchema) Validate(instance []byte) Result {
	var v interface{}
	if err := json.Unmarshal(instance, &v); err != nil {
		return Result{Valid: false, Failures: []Failure{{Message: err.Error()}}}
	}
	res := s.compiled.Validate(v)
	if res.IsValid() {
		return Result{Valid: true}
	}
	list := res.ToList()
	return Result{Valid: false, Failures: []Failure{convertList(list)}}
}

func convertList(l *jsonschema.EvaluationResult) Failure {
	causes := make([]Failure, 0, len(l.Details))
	for _, d := range l.Details {
		causes = append(causes, convertList(d))
	}
	return Failure{
		InstancePointer: l.InstanceLocation,
		SchemaPointer:   l.EvaluationPath,
		Message:         joinErrors(l.Errors),
		Causes:          causes,
	}
}

func joinErrors(errs map[string]string) string {
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for k, v := range errs {
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, "; ")
}
