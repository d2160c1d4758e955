// Package cli implements the nttbot command line interface.
//
// One binary covers all run modes: a single scrape pass, a dry-run test
// pass that prints what was found without persisting, the long-running
// serve mode (HTTP API plus scheduler), and a manual retention sweep.
package cli
