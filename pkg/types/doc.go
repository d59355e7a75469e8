// Package types defines the vocabulary entities, the Vocabulary store
// interface, the lesson material shapes, configuration, and the standard
// errors shared by the wordsmith packages.
package types
