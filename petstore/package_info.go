// Package petstore is the test client for the pet store REST API.
//
// Client methods return the raw status code and body of the API's answer, including 4xx and 5xx
// answers: deciding whether a status code is right is the job of the test. An error is returned
// only if no HTTP response could be obtained at all.
package petstore
