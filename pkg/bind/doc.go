// Package bind describes bindings between context properties and nodes.
//
// A Descriptor names a target node (by structural path), the dependency
// tokens its value is computed from, and the apply function that writes the
// value into the node. Descriptors are produced by a Factory (from
// `[[expr]]` one-way and `{{expr}}` two-way binding values) or built by hand,
// and are resolved against live nodes by the instance package.
package bind
