// Package surface provides the externally mutable tree that blots mirror.
//
// A Document owns nodes (elements and text) and routes every mutation to the
// observers registered on the mutated node or one of its ancestors. Records
// queue up on each observer until they are taken explicitly with
// Observer.TakeRecords or handed to the observer callback by Document.Deliver,
// which plays the role of the host's deferred notification checkpoint.
//
// # Records
//
// Three kinds of change are reported:
//
//	ChildList      children were added to or removed from Target
//	Attributes     an attribute of Target changed
//	CharacterData  the text of Target changed
//
// Child-list records carry the previous and next sibling of the change so a
// consumer can locate neighbours that may need normalization.
//
// # Thread Safety
//
// A Document and its nodes are not safe for concurrent use. All mutation and
// delivery must happen on one goroutine, the same way the surface trees this
// package stands in for are driven by a single-threaded host.
package surface
