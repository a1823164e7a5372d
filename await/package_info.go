// Package await polls a probe until it reports a ready state or a timeout elapses.
//
// It is used wherever a test needs to reconcile an asynchronous backend with synchronous
// assertions: waiting for a write to become visible to reads, waiting for a delete to turn
// into a 404, or waiting for a page to settle after an asynchronous update.
//
// A poll is described by a Config, which is created at the call site and used once. The
// result is an Outcome, which is either Success (carrying the accepted value) or TimedOut.
// Timing is read from a Clock so that tests can drive the loop without waiting.
package await
