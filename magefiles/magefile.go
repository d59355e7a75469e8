// Package main provides build targets for the wordsmith project using Mage.
//
// Usage:
//
//	mage build       Compile wordsmith binary to bin/
//	mage install     Install wordsmith to GOPATH/bin
//	mage clean       Remove build artifacts
//	mage test:all    Run all tests
//	mage test:unit   Run tests without the race detector or cache
//	mage test:cover  Run tests and write coverage.out
//	mage lint        Run golangci-lint
//	mage stats       Print per-package line counts and doc word counts
package main

const (
	binGo      = "go"
	binaryName = "wordsmith"
	binaryDir  = "bin"
	cmdDir     = "./cmd/wordsmith"
	coverFile  = "coverage.out"
)
