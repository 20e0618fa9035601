// Package compat implements dating compatibility scoring.
//
// An Engine is built from a Config holding the question registry, per-question
// weights, categories and the answer similarity table:
//
//	engine, err := compat.NewEngine(compat.DefaultConfig())
//	result := engine.Calculate(mine, theirs)
//
// # Category scoring
//
// Calculate walks the categories in declaration order. Each category's score is
// the mean similarity of its questions. Only categories whose score meets their
// threshold enter the weighted average; the others are still reported in
// Result.CategoryScores and Result.Details. When no category passes, the score
// is 0.
//
// # Similarity
//
// Identical answers score 1.0, curated ordered pairs score their table value,
// anything else scores 0. Unanswered questions and answers outside a question's
// options never match, even when both users skipped the same question.
//
// # Simple scoring
//
// CalculateSimple is the lighter single-pass variant: weighted share of
// questions answered identically, ignoring categories and the similarity table.
//
// # Configuration files
//
// LoadConfigFile reads a YAML registry with the same content as DefaultConfig.
// NewEngine rejects empty categories, unknown question references and
// out-of-range weights, thresholds and similarities.
package compat
