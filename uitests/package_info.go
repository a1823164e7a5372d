// Package uitests contains the browser test suite for the careers flow of the company website.
//
// Every test starts its own browser session and quits it when it ends. When a test fails, a
// screenshot of its browser is saved first, if screenshots on failure are enabled.
package uitests
