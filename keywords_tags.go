package oasguard

// tagsValidator checks the top-level Tags array: every name must be
// declared once (spec's DuplicateTagName), and, for 3.2's tag hierarchy,
// every "parent" must name a declared tag (UnknownTagParent) with no
// cycles (CircularTagHierarchy).
type tagsValidator struct{ reg *registry }

func (v *tagsValidator) Validate(r *run, p SchemaPath, e emit) bool {
	n, ok, err := p.Len()
	if err != nil {
		return e(asError(err))
	}
	if !ok || n < 0 {
		return true
	}

	for i := 0; i < n; i++ {
		item, ok2, err := p.ChildIndex(i)
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok2 {
			continue
		}
		node, ok3, err := item.Contents()
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok3 {
			continue
		}
		name := node.Get("name").String()
		ptr := item.Location().Pointer()
		if first, dup := r.tagNamesDeclared[name]; dup && first != ptr {
			if !e(newDuplicateTagName(ptr, name)) {
				return false
			}
		} else if !dup {
			r.tagNamesDeclared[name] = ptr
			r.tagPointers[name] = ptr
			r.tagOrder = append(r.tagOrder, name)
		}
		if v.reg.supportsTagHierarchy() {
			if parent := node.Get("parent"); parent.Exists() && parent.String() != "" {
				r.tagParents[name] = parent.String()
			}
		}
	}

	if !v.reg.supportsTagHierarchy() {
		return true
	}

	// Iterate in declaration order, not map order, so which tag a report
	// names (an unknown parent, or the starting point of a cycle) is
	// reproducible across runs of the same document.
	for _, name := range r.tagOrder {
		parent, has := r.tagParents[name]
		if !has {
			continue
		}
		if _, known := r.tagNamesDeclared[parent]; !known {
			if !e(newUnknownTagParent(r.tagPointers[name], name, parent)) {
				return false
			}
		}
	}

	reported := map[string]bool{}
	for _, name := range r.tagOrder {
		if _, has := r.tagParents[name]; !has || reported[name] {
			continue
		}
		cycle := findTagCycle(name, r.tagParents)
		if cycle == nil {
			continue
		}
		cycle = canonicalizeCycle(cycle)
		for _, member := range cycle[:len(cycle)-1] {
			reported[member] = true
		}
		if !e(newCircularTagHierarchy(r.tagPointers[cycle[0]], cycle)) {
			return false
		}
	}
	return true
}

// findTagCycle walks parent pointers starting at name and returns the cycle
// (as a name sequence) if start is reachable from itself, else nil.
func findTagCycle(start string, parents map[string]string) []string {
	visited := map[string]bool{start: true}
	path := []string{start}
	cur := start
	for {
		parent, ok := parents[cur]
		if !ok {
			return nil
		}
		if parent == start {
			return append(path, parent)
		}
		if visited[parent] {
			return nil // cycle exists but doesn't involve start; that
			// occurrence is found (and reported once) when the loop in
			// Validate reaches one of its actual members instead.
		}
		visited[parent] = true
		path = append(path, parent)
		cur = parent
	}
}

// canonicalizeCycle rotates a cycle (as returned by findTagCycle, ending
// with a repeat of its first element) so it starts at its
// lexicographically smallest member. A single cycle can be walked into
// from any of its members with an equally valid but differently-ordered
// result; canonicalizing makes the reported sequence independent of which
// tag the walk happened to start from.
func canonicalizeCycle(cycle []string) []string {
	core := cycle[:len(cycle)-1]
	min := 0
	for i, name := range core {
		if name < core[min] {
			min = i
		}
	}
	rotated := make([]string, 0, len(core)+1)
	rotated = append(rotated, core[min:]...)
	rotated = append(rotated, core[:min]...)
	rotated = append(rotated, rotated[0])
	return rotated
}
