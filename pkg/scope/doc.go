// Package scope defines binding contexts and their effect registries.
//
// A Context answers whether it exposes a property (HasProp), reads and writes
// dotted property paths, and keeps an ordered list of effects per path. The
// set of context kinds is closed: Model is the mutable, reactive kind and
// Static is a read-only snapshot. Components embed *Model to become contexts.
//
// Writes are synchronous: Model.Set returns only after every effect
// subscribed to the written path has run.
package scope
