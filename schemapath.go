package oasguard

import (
	"fmt"
	"strconv"
	"strings"

	ouri "github.com/chanced/oasguard/uri"
	"github.com/tidwall/gjson"
)

// FetchFunc retrieves the raw JSON bytes of the resource named by an
// absolute URI. It is the seam SchemaPath uses to reach the Reader
// collaborator (spec §6) without importing it directly.
type FetchFunc func(absoluteURI string) ([]byte, error)

type resolvedNode struct {
	value gjson.Result
	loc   Location // terminal location reached after following every $ref
}

// docStore is the shared state behind every SchemaPath handle produced from
// the same root document: the resource byte cache, the resolved-reference
// LRU, and the in-flight pending set used for cycle detection.
type docStore struct {
	fetch     FetchFunc
	resources map[string][]byte
	cache     *refCache
	pending   map[string]bool
}

// SchemaPath is a lazy, cycle-safe, $ref-following view over a JSON tree,
// per spec §4.1. Every navigation method dereferences $ref transparently;
// callers never see a bare {"$ref": "..."} object.
type SchemaPath struct {
	store *docStore
	loc   Location
}

// NewSchemaPath builds the root SchemaPath over document, which is already
// resolved to an absolute baseURI. fetch is consulted for any other resource
// a $ref crosses into; it may be nil if the document is known to be
// self-contained. cacheCapacity 0 disables the resolved-reference cache and
// a negative value selects the default; pass settings.ResolvedCacheMaxSize
// explicitly to honor configuration.
func NewSchemaPath(document []byte, baseURI string, fetch FetchFunc, cacheCapacity int) (SchemaPath, error) {
	u, err := ouri.Parse(baseURI)
	if err != nil {
		return SchemaPath{}, fmt.Errorf("oasguard: invalid base uri %q: %w", baseURI, err)
	}
	store := &docStore{
		fetch:     fetch,
		resources: map[string][]byte{normalizeURI(*u): document},
		cache:     newRefCache(cacheCapacity),
		pending:   make(map[string]bool),
	}
	return SchemaPath{store: store, loc: NewLocation(*u)}, nil
}

func normalizeURI(u ouri.URI) string {
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

func nodeKey(loc Location) string {
	return normalizeURI(loc.AbsoluteURI()) + "#" + loc.Pointer()
}

// Location returns the position this handle currently names, without
// following any $ref.
func (p SchemaPath) Location() Location { return p.loc }

func splitPointer(ptr string) []string {
	if ptr == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, t := range parts {
		t = strings.ReplaceAll(t, "~1", "/")
		t = strings.ReplaceAll(t, "~0", "~")
		parts[i] = t
	}
	return parts
}

// gjson treats '.', '|', '#', '@', '*', '?', and '\' as path metacharacters;
// escape them so a literal key (e.g. an OpenAPI path template) matches.
func escapeGJSONToken(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		switch r {
		case '.', '|', '#', '@', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (p SchemaPath) resourceBytes(absoluteURI string) ([]byte, error) {
	if b, ok := p.store.resources[absoluteURI]; ok {
		return b, nil
	}
	if p.store.fetch == nil {
		return nil, fmt.Errorf("oasguard: no reader configured to fetch %q", absoluteURI)
	}
	b, err := p.store.fetch(absoluteURI)
	if err != nil {
		return nil, err
	}
	p.store.resources[absoluteURI] = b
	return b, nil
}

// readLiteral fetches the literal JSON value at loc without following a
// $ref it might itself contain.
func (p SchemaPath) readLiteral(loc Location) (gjson.Result, error) {
	root, err := p.resourceBytes(normalizeURI(loc.AbsoluteURI()))
	if err != nil {
		return gjson.Result{}, err
	}
	cur := gjson.ParseBytes(root)
	for _, tok := range splitPointer(loc.Pointer()) {
		cur = cur.Get(escapeGJSONToken(tok))
		if !cur.Exists() {
			return gjson.Result{}, fmt.Errorf("oasguard: pointer %q not found in %q", loc.Pointer(), normalizeURI(loc.AbsoluteURI()))
		}
	}
	return cur, nil
}

func isRefObject(v gjson.Result) (string, bool) {
	if !v.IsObject() {
		return "", false
	}
	ref := v.Get(escapeGJSONToken("$ref"))
	if !ref.Exists() || ref.Type != gjson.String {
		return "", false
	}
	return ref.String(), true
}

func (p SchemaPath) followRef(from Location, ref string) (Location, error) {
	base := from.AbsoluteURI()
	target, err := base.Parse(ref)
	if err != nil {
		return Location{}, err
	}
	frag := target.Fragment
	abs := *target
	abs.Fragment = ""
	abs.RawFragment = ""
	return Location{base: abs, pointer: frag}, nil
}

// resolve follows the $ref chain starting at p.loc until it lands on a
// non-$ref value, per spec §4.1. ok is false when the chain loops back onto
// a position already being resolved higher on the call stack; that case is
// never an error, just a signal to skip.
func (p SchemaPath) resolve() (resolvedNode, bool, error) {
	key0 := nodeKey(p.loc)
	if p.store.pending[key0] {
		return resolvedNode{}, false, nil
	}
	p.store.pending[key0] = true
	defer delete(p.store.pending, key0)

	if cached, ok := p.store.cache.get(key0); ok {
		return cached, true, nil
	}

	localVisited := map[string]bool{key0: true}
	cur := p.loc
	for {
		val, err := p.readLiteral(cur)
		if err != nil {
			return resolvedNode{}, false, newReferenceUnresolvable(p.loc.Pointer(), cur.String(), err)
		}
		ref, isRef := isRefObject(val)
		if !isRef {
			node := resolvedNode{value: val, loc: cur}
			p.store.cache.put(key0, node)
			return node, true, nil
		}
		next, err := p.followRef(cur, ref)
		if err != nil {
			return resolvedNode{}, false, newReferenceUnresolvable(cur.Pointer(), ref, err)
		}
		k := nodeKey(next)
		if localVisited[k] || p.store.pending[k] {
			return resolvedNode{}, false, nil
		}
		localVisited[k] = true
		cur = next
	}
}

// Contents resolves p and returns its literal value. ok is false when p
// participates in a reference cycle currently being resolved; callers must
// treat that as "nothing here", not as an error.
func (p SchemaPath) Contents() (value gjson.Result, ok bool, err error) {
	node, ok, err := p.resolve()
	if err != nil || !ok {
		return gjson.Result{}, ok, err
	}
	return node.value, true, nil
}

// IsRef reports whether the literal value at p (before following any
// $ref) is itself a reference object.
func (p SchemaPath) IsRef() (bool, error) {
	v, err := p.readLiteral(p.loc)
	if err != nil {
		return false, err
	}
	_, ok := isRefObject(v)
	return ok, nil
}

// Child resolves p and returns a handle for the property named key.
func (p SchemaPath) Child(key string) (SchemaPath, bool, error) {
	node, ok, err := p.resolve()
	if err != nil || !ok {
		return SchemaPath{}, ok, err
	}
	return SchemaPath{store: p.store, loc: node.loc.Append(key)}, true, nil
}

// ChildIndex resolves p and returns a handle for array element i.
func (p SchemaPath) ChildIndex(i int) (SchemaPath, bool, error) {
	return p.Child(strconv.Itoa(i))
}

// Has reports whether the resolved object at p has a property named key,
// without allocating a child handle.
func (p SchemaPath) Has(key string) (bool, error) {
	node, ok, err := p.resolve()
	if err != nil || !ok {
		return false, err
	}
	if !node.value.IsObject() {
		return false, nil
	}
	return node.value.Get(escapeGJSONToken(key)).Exists(), nil
}

// Keys returns the resolved object's property names in document order.
// Returns nil if the resolved value is not an object.
func (p SchemaPath) Keys() ([]string, bool, error) {
	node, ok, err := p.resolve()
	if err != nil || !ok {
		return nil, ok, err
	}
	if !node.value.IsObject() {
		return nil, true, nil
	}
	var keys []string
	node.value.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys, true, nil
}

// Len reports the resolved array's length, or -1 if it is not an array.
func (p SchemaPath) Len() (int, bool, error) {
	node, ok, err := p.resolve()
	if err != nil || !ok {
		return 0, ok, err
	}
	if !node.value.IsArray() {
		return -1, true, nil
	}
	n := 0
	node.value.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n, true, nil
}

// Exists reports whether p resolves to anything at all (its literal
// pointer target exists in its resource).
func (p SchemaPath) Exists() bool {
	_, err := p.readLiteral(p.loc)
	return err == nil
}

// String renders the Location p currently names.
func (p SchemaPath) String() string { return p.loc.String() }
