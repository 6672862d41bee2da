// Package cli wires the promtui command: resolve settings, fetch and parse the
// exposition once, then hand the result to the dashboard or print it plainly.
package cli
