package oasguard

import (
	"fmt"

	"github.com/chanced/oasguard/reader"
)

// SpecValidator is the facade spec §4.3 describes: it ties a detected
// SpecVersion, a KeywordValidator registry, and a SchemaPath root together
// behind validate/iter_errors/is_valid.
type SpecValidator struct {
	version SpecVersion
	reg     *registry
	root    SchemaPath
}

// NewSpecValidator detects document's version, loads its embedded
// meta-schema (compiled by the root validator on each pass), and builds the
// reference-resolving view rooted at baseURI. fetch is
// consulted for any $ref crossing into another resource; pass nil if the
// document is known to be self-contained.
func NewSpecValidator(document []byte, baseURI string, fetch FetchFunc, settings Settings) (*SpecValidator, error) {
	version, err := FindVersion(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidatorDetect, err)
	}
	eng, err := NewEngine(settings.SchemaValidatorBackend)
	if err != nil {
		return nil, err
	}
	reg, err := newRegistry(version, eng)
	if err != nil {
		return nil, err
	}
	root, err := NewSchemaPath(document, baseURI, fetch, settings.ResolvedCacheMaxSize)
	if err != nil {
		return nil, err
	}
	return &SpecValidator{version: version, reg: reg, root: root}, nil
}

// Version reports the SpecVersion this validator detected.
func (sv *SpecValidator) Version() SpecVersion { return sv.version }

// IterErrors streams every semantic and meta-schema error found in
// document order, stopping early only when yield returns false or a fatal
// error (spec §7, Fatal) is produced.
func (sv *SpecValidator) IterErrors(settings Settings, yield func(*Error) bool) {
	r := newRun(settings)
	sv.reg.get("root").Validate(r, sv.root, func(err *Error) bool {
		if !yield(err) {
			return false
		}
		return !Fatal(err)
	})
}

// Errors collects every error IterErrors would yield.
func (sv *SpecValidator) Errors(settings Settings) []*Error {
	var errs []*Error
	sv.IterErrors(settings, func(err *Error) bool {
		errs = append(errs, err)
		return true
	})
	return errs
}

// IsValid reports whether the document has zero errors, short-circuiting
// on the first one found.
func (sv *SpecValidator) IsValid(settings Settings) bool {
	valid := true
	sv.IterErrors(settings, func(*Error) bool {
		valid = false
		return false
	})
	return valid
}

// Validate returns the first error found, or nil if the document is valid.
func (sv *SpecValidator) Validate(settings Settings) error {
	var first *Error
	sv.IterErrors(settings, func(err *Error) bool {
		first = err
		return false
	})
	if first == nil {
		return nil
	}
	return first
}

// Validate is the package-level shortcut: read document from location
// (file path, "-" for stdin, or an http(s) URL) and return its first
// error, if any.
func Validate(location string) error {
	rd := reader.New()
	doc, err := rd.Read(location)
	if err != nil {
		return err
	}
	settings := SettingsFromEnv()
	sv, err := NewSpecValidator(doc, baseURIFor(location), rd.FetchFunc(), settings)
	if err != nil {
		return err
	}
	return sv.Validate(settings)
}

// ValidateURL is the package-level shortcut for validating a document
// fetched over HTTP(S).
func ValidateURL(url string) error {
	return Validate(url)
}

// IsValid is the package-level shortcut returning whether location's
// document has zero errors.
func IsValid(location string) bool {
	return Validate(location) == nil
}

func baseURIFor(location string) string {
	if location == "-" || location == "" {
		return "mem://oasguard/stdin"
	}
	return location
}
