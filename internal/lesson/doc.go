// Package lesson generates vocabulary lessons with a completion model.
//
// A Pipeline runs four steps against a completion.Client and a
// types.Vocabulary: it asks the model for candidate words, stores each word
// that is new together with two generated example sentences, then composes
// a paragraph and practice questions from the most recently stored words.
// When a run adds no new words it stops before composing a lesson.
//
// The Extractor implementations split the composed text into a paragraph
// and questions. A Reviewer sends a student's answers back to the model and
// returns its feedback as text.
package lesson
