// Package branch owns the list of local branches shown to the user.
//
// A [Store] is bound to one repository for its whole life. It is the only
// writer of its collection, and every mutation goes through git first:
//
//   - [Store.Refresh] runs the list command and replaces the collection
//     wholesale with the parsed result, in git's order.
//   - [Store.DeleteAt] resolves the name at a position from the live
//     collection, runs the delete command, and removes exactly that entry
//     once git has accepted the delete.
//
// Failed operations leave the collection as it was and return a typed
// error ([*RefreshError], [*DeleteError], or [ErrInvalidPosition]).
// Successful ones are reported to an optional [Observer].
//
// A Store is not safe for concurrent use. Each call blocks for exactly one
// git invocation; callers that need to stay responsive run the call
// elsewhere and must not start another until it returns.
package branch
