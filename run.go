package oasguard

// run holds the scratch state a single validate/iter_errors pass accumulates
// as it walks the document, per spec §4.1 (Dispatcher) and §5 (concurrency:
// a run is never shared across goroutines). KeywordValidators read and
// mutate it through the receiver passed to validate; nothing here survives
// past one pass.
type run struct {
	settings Settings

	operationIDsSeen map[string]string // operationId -> first pointer that declared it
	tagNamesDeclared map[string]string // tag name -> first pointer that declared it
	tagOrder         []string          // tag names, in the order they were declared
	tagParents       map[string]string // tag name -> parent name (3.2 hierarchy)
	tagPointers      map[string]string // tag name -> pointer, for error reporting

	schemaIDsVisited   map[string]bool // absolute $id values already indexed
	schemaNodesVisited map[string]bool // resolved schema nodes (nodeKey) already walked this pass, breaking $ref cycles through allOf/properties/items

	dialect string // root jsonSchemaDialect as declared; recorded only, no later step reads it
}

func newRun(settings Settings) *run {
	return &run{
		settings:           settings,
		operationIDsSeen:   make(map[string]string),
		tagNamesDeclared:   make(map[string]string),
		tagParents:         make(map[string]string),
		tagPointers:        make(map[string]string),
		schemaIDsVisited:   make(map[string]bool),
		schemaNodesVisited: make(map[string]bool),
	}
}
