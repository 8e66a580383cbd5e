// Package oasguard validates OpenAPI documents (2.0, 3.0.x, 3.1.x, 3.2.x)
// against their version-specific meta-schema and against a set of semantic
// properties a JSON Schema check alone cannot express: reference
// reachability, path-parameter resolution, operation-id uniqueness, schema
// cross-keyword consistency, and tag-hierarchy correctness.
//
// Validation never aborts on the first problem found; it yields a stream of
// structured errors instead. Document acquisition, meta-schema evaluation
// engines, value-format checking, and CLI concerns are all pluggable
// collaborators reached through small interfaces rather than being built in.
package oasguard
