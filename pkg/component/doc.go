// Package component composes template instances, observers and styles into
// a component lifecycle.
//
// A Registry maps tag names to Definitions. Registry.New creates a Controller
// for a host element; the component calls Connected when the host enters the
// tree and Disconnected when it leaves. Templates that mount nested
// components resolve them through the same Registry.
package component
