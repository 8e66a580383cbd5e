package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

// Native is the default JsonSchemaEngine backend, built on
// santhosh-tekuri/jsonschema/v5.
type Native struct{}

// NewNative constructs the native backend.
func NewNative() *Native { return &Native{} }

var nativeSeq int64

func draftFor(dialect string) *jsonschema.Draft {
	switch dialect {
	case "https://json-schema.org/draft/2020-12/schema":
		return jsonschema.Draft2020
	case "https://json-schema.org/draft/2019-09/schema":
		return jsonschema.Draft2019
	case "http://json-schema.org/draft-07/schema#":
		return jsonschema.Draft7
	case "http://json-schema.org/draft-06/schema#":
		return jsonschema.Draft6
	case "http://json-schema.org/draft-04/schema#", "":
		return jsonschema.Draft4
	default:
		return jsonschema.Draft2020
	}
}

func (n *Native) Compile(schema []byte, dialect string) (Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = draftFor(dialect)

	id := gjson.GetBytes(schema, "$id").String()
	if id == "" {
		id = fmt.Sprintf("mem://oasguard/schema/%d", atomic.AddInt64(&nativeSeq, 1))
	}
	if err := compiler.AddResource(id, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("engine/native: add resource: %w", err)
	}
	compiled, err := compiler.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("engine/native: compile: %w", err)
	}
	return &nativeSchema{compiled: compiled}, nil
}

type nativeSchema struct {
	compiled *jsonschema.Schema
}

func (s *nativeSchema) Validate(instance []byte) Result {
	var v interface{}
	if err := json.Unmarshal(instance, &v); err != nil {
		return Result{Valid: false, Failures: []Failure{{Message: err.Error()}}}
	}
	if err := s.compiled.Validate(v); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return Result{Valid: false, Failures: []Failure{{Message: err.Error()}}}
		}
		return Result{Valid: false, Failures: []Failure{convertValidationError(ve)}}
	}
	return Result{Valid: true}
}

func convertValidationError(ve *jsonschema.ValidationError) Failure {
	causes := make([]Failure, 0, len(ve.Causes))
	for _, c := range ve.Causes {
		causes = append(causes, convertValidationError(c))
	}
	return Failure{
		InstancePointer: joinPointer(ve.InstanceLocation),
		SchemaPointer:   joinPointer(ve.KeywordLocation),
		Message:         ve.Message,
		Causes:          causes,
	}
}

func joinPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return "/" + strings.Join(tokens, "/")
}
