// Package blot maintains a logical tree of typed nodes ("blots") that mirrors
// an externally mutable surface tree.
//
// Every blot owns exactly one surface node for its whole lifetime. Parents own
// their children through a ChildList; sibling and root references are
// non-owning. The root of the tree is a Scroll, which subscribes to the
// surface tree's change channel and keeps the two trees consistent.
//
// # Synchronization
//
// Surface mutations are reported as batches of surface.Record values. A
// Scroll drains them (Sync), groups them by the blot that owns each target,
// hands every group to that blot's Update in arrival order, and then runs a
// bounded mark-and-sweep normalization (Normalize): every blot implicated by
// the batch is marked, and one post-order traversal lets each marked blot
// repair its own invariants (merging adjacent text, removing empty leaves,
// unwrapping disallowed children). Normalization can itself mutate the
// surface, so the channel is drained again after each traversal; if the
// tree has not settled after MaxOptimizeIterations passes, Normalize fails
// with ErrMaxOptimizeIterations.
//
// # Kinds
//
// A Registry maps surface nodes to blot constructors. DefaultRegistry
// provides:
//
//   - block (p) and header (h1): block-level containers
//   - inline (span), bold (strong), italic (em): inline containers
//   - text: text leaves
//   - image (img): embeds of length 1
//
// # Lengths
//
// Indexes and lengths count runes in text, 1 for embeds, and the sum of the
// children for parents.
//
// # Concurrency
//
// Blot trees are not safe for concurrent use. All entry points run to
// completion and must be serialized by the caller, the same way the surface
// tree's mutations and deliveries are.
package blot
