// Package instance materialises templates. An Instance clones a template,
// resolves its bind descriptors to live nodes, subscribes them to the
// contexts supplied at attach time, inserts the clone into a host tree and
// keeps it in sync until Detach.
//
// Lifecycle: Created (New) → Attached (Attach, once) → Detached (terminal).
// Detach is idempotent. Every write to a subscribed context property
// re-evaluates and re-applies the affected bindings before the write returns.
package instance
