// Package types defines the public data model and call contract for the
// regkit layout engine: registers, fields and their raw bit encodings, the
// Field/Gap segment partition, and the UpdateSink capability interface
// through which the engine proposes document changes.
//
// Design goals:
//   - The engine reads fields and proposes updates; it never mutates the
//     owning document's records in place.
//   - Malformed document input (missing bit encodings, non-finite values)
//     degrades to a safe default instead of propagating errors.
//   - Typed errors with stable categories for the few surfaces that can
//     fail at all (register construction, value validation, documents).
//
// This package has no dependencies beyond the standard library.
package types
