// Package apitests contains the CRUD test suite for the pet store API.
//
// The API is eventually consistent: a pet that was just created, changed or deleted may be seen in
// its previous state by the next few reads. Every check that follows a write is therefore a poll,
// made with the await package, rather than a single request.
package apitests
