// Package dom is the in-memory host render tree the binding engine drives.
// It exposes the primitives a host platform provides to a template runtime:
// node insertion and removal, event listeners, comment-marker traversal,
// shadow roots with style-sheet adoption, and markup parsing/rendering backed
// by golang.org/x/net/html. Nodes are not safe for concurrent use; callers
// drive a tree from a single goroutine the way a browser drives its document.
package dom
