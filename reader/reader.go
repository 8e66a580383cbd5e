// Package reader implements oasguard's pluggable document-acquisition
// collaborator (spec §6.2): read an OpenAPI document from a local file, from
// stdin, or over HTTP(S), normalizing YAML input to JSON along the way. It
// is adapted from chanced-openapi's Opener abstraction (FSOpener/HTTPOpener)
// generalized to the three sources oasguard's CLI and shortcut functions
// need.
package reader

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/chanced/oasguard/yamlutil"
	"gopkg.in/yaml.v2"
)

// Opener opens the resource named by location and returns its raw bytes,
// YAML or JSON.
type Opener interface {
	Open(location string) ([]byte, error)
}

// FileOpener reads from the local filesystem.
type FileOpener struct{}

func (FileOpener) Open(location string) ([]byte, error) {
	return os.ReadFile(location)
}

// StdinOpener reads the whole of stdin, ignoring location.
type StdinOpener struct{}

func (StdinOpener) Open(string) ([]byte, error) {
	return io.ReadAll(os.Stdin)
}

// HTTPOpener fetches over HTTP(S) with Client, defaulting to
// http.DefaultClient.
type HTTPOpener struct {
	Client *http.Client
}

func (o HTTPOpener) Open(location string) ([]byte, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequest(http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, errors.New("reader: " + location + ": " + res.Status)
	}
	return io.ReadAll(res.Body)
}

// Reader dispatches to the Opener appropriate for a location's scheme, then
// normalizes the result to JSON.
type Reader struct {
	File  Opener
	HTTP  Opener
	Stdin Opener
}

// New builds a Reader with the default file/http/stdin openers.
func New() *Reader {
	return &Reader{File: FileOpener{}, HTTP: HTTPOpener{}, Stdin: StdinOpener{}}
}

// Read acquires the document at location and returns it as JSON bytes,
// converting from YAML when the source is not already JSON. location "-"
// reads stdin; an http(s):// URL is fetched; anything else is treated as a
// filesystem path.
//
// YAML decoding goes through gopkg.in/yaml.v2 first (it is the decoder that
// actually understands YAML's map[interface{}]interface{} keys), then
// yamlutil folds that into string-keyed JSON via sigs.k8s.io/yaml, the same
// two-step chanced-openapi's own YAML path uses.
func (r *Reader) Read(location string) ([]byte, error) {
	raw, err := r.open(location)
	if err != nil {
		return nil, err
	}
	var normalized json.RawMessage
	err = yamlutil.Unmarshal(func(in interface{}) error {
		return yaml.Unmarshal(raw, in)
	}, &normalized)
	if err != nil {
		return nil, err
	}
	return []byte(normalized), nil
}

func (r *Reader) open(location string) ([]byte, error) {
	if location == "-" || location == "" {
		return r.Stdin.Open(location)
	}
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return r.HTTP.Open(location)
	}
	return r.File.Open(strings.TrimPrefix(location, "file://"))
}

// FetchFunc adapts Read to the shape oasguard.FetchFunc expects, so a
// Reader can be handed straight to oasguard.NewSchemaPath for resolving
// cross-document $ref targets.
func (r *Reader) FetchFunc() func(string) ([]byte, error) {
	return r.Read
}
