// Package metaschema embeds the meta-schema documents oasguard validates
// OpenAPI/Swagger documents against, one per supported dialect, and indexes
// them by $id the same way chanced-openapi's compiler loads its embedded
// JSON Schema resources.
package metaschema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/tidwall/gjson"
)

//go:embed schema
var schemaDir embed.FS

var byID = map[string][]byte{}

func init() {
	if err := load(); err != nil {
		panic(fmt.Sprintf("oasguard/metaschema: %v", err))
	}
}

func load() error {
	return fs.WalkDir(schemaDir, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".json" {
			return nil
		}
		f, err := schemaDir.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		id := gjson.GetBytes(data, "$id")
		if !id.Exists() || id.String() == "" {
			return fmt.Errorf("%s: missing $id", path)
		}
		byID[id.String()] = data
		return nil
	})
}

// Reader returns an io.ReadCloser for the embedded schema named by id, the
// shape santhosh-tekuri/jsonschema's custom loaders expect.
func Reader(id string) (io.ReadCloser, error) {
	data, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("metaschema: unknown schema %q", id)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Bytes returns the raw embedded schema document named by id.
func Bytes(id string) ([]byte, error) {
	data, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("metaschema: unknown schema %q", id)
	}
	return data, nil
}

var (
	// ErrUnknownVersion is returned by ForVersion when no meta-schema is
	// registered for the requested (keyword, major, minor) triple.
	ErrUnknownVersion = errors.New("metaschema: no meta-schema for version")

	// Dialect2020_12 is the JSON Schema dialect OpenAPI 3.1+ documents use
	// by default when jsonSchemaDialect is not set.
	Dialect2020_12 = "https://json-schema.org/draft/2020-12/schema"
	// DialectDraft04 is the dialect Swagger 2.0 and OpenAPI 3.0.x schema
	// objects use; it is not a registerable JSON Schema dialect string in
	// the 3.1+ sense, only a compiler draft selection.
	DialectDraft04 = "http://json-schema.org/draft-04/schema#"
)

// idsByVersion maps (keyword, major, minor) to the embedded meta-schema's
// $id. It is a map and carries no lookup order.
var idsByVersion = map[[3]string]string{
	{"swagger", "2", "0"}: "https://oasguard.dev/schemas/swagger-2.0.json",
	{"openapi", "3", "0"}: "https://oasguard.dev/schemas/openapi-3.0.json",
	{"openapi", "3", "1"}: "https://oasguard.dev/schemas/openapi-3.1.json",
	{"openapi", "3", "2"}: "https://oasguard.dev/schemas/openapi-3.2.json",
}

// ForVersion returns the embedded meta-schema bytes and the JSON Schema
// dialect it was authored against for the given (keyword, major, minor).
func ForVersion(keyword, major, minor string) (schema []byte, dialect string, err error) {
	id, ok := idsByVersion[[3]string{keyword, major, minor}]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s %s.%s", ErrUnknownVersion, keyword, major, minor)
	}
	data, err := Bytes(id)
	if err != nil {
		return nil, "", err
	}
	dialect = DialectDraft04
	if keyword == "openapi" && major == "3" && (minor == "1" || minor == "2") {
		dialect = Dialect2020_12
	}
	return data, dialect, nil
}
