// Package session tracks one in-progress editing gesture against a
// register's field list.
//
// Gesture protocol:
//  1. StartResize / StartCreate / StartReorder - snapshot the boundaries
//     (or layout) the gesture may move within
//  2. MoveTo - repeated; clamps the moving edge, or replans the preview
//  3. Commit() - hand the result to the document sink as one change
//     ... or Cancel() - drop everything
//
// Between Start and Commit the session holds the only gesture state in
// the engine; the caller's field list is never touched until Commit, and
// Cancel guarantees the sink saw no field mutation at all for the
// gesture. Both terminal calls return the session to Idle.
//
// A session runs one gesture at a time. Starting a second gesture while
// one is active is refused rather than corrupting the first; gating
// normally happens in the host's input layer anyway.
//
// The session is NOT thread-safe. Only one goroutine should use it at a
// time.
package session
