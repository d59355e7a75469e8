// Package wordsmith holds build metadata shared by the wordsmith binary.
package wordsmith

// Version is the wordsmith release version.
const Version = "0.1.0"
