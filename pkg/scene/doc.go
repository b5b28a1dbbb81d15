// Package scene keeps a retained set of word nodes in sync with placements.
//
// # Reconciliation
//
// [Scene.Reconcile] diffs the current nodes against a new placed word list,
// keyed by raw text:
//
//   - entering words get a node with their final color and position, then run
//     the move transition in place
//   - updating words tween from where they currently are to the new placement
//   - exiting words fade out and shrink, and are removed when that finishes
//
// Words without a valid placement are parked outside the viewport, hidden,
// so they never flash at the origin.
//
// The call returns immediately; its done callback runs once every move and
// exit transition started by that round has ended. Each round counts its own
// transitions. If the round's stale check reports newer work, the round
// resolves early as abandoned: its animations keep playing, but their ends no
// longer touch the round's bookkeeping.
//
// # Animation
//
// All timing runs on a [loop.Loop]: every frame tick interpolates active
// transitions (cubic in-out) and pushes a [Frame] to the host [Surface].
// With a virtual clock a drained loop plays a whole transition instantly.
//
// # Containment
//
// [Scene.Bounds] is the union of the settled boxes of all non-exiting nodes,
// parked ones included, and [Contained] tests it against the viewport.
package scene
