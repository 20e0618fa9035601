package compat

import "sort"

type answerPair struct {
	a, b string
}

// SimilarityEntry is one stored ordered pair
type SimilarityEntry struct {
	QuestionID int
	A          string
	B          string
	Value      float64
}

// SimilarityTable holds partial-credit scores for curated pairs of
// non-identical answers. Pairs are ordered: storing A-B does not imply B-A.
type SimilarityTable struct {
	pairs map[int]map[answerPair]float64
}

// NewSimilarityTable creates an empty table
func NewSimilarityTable() *SimilarityTable {
	return &SimilarityTable{pairs: make(map[int]map[answerPair]float64)}
}

// Set stores the score for the ordered pair (a, b) on a question
func (t *SimilarityTable) Set(questionID int, a, b string, value float64) {
	m, ok := t.pairs[questionID]
	if !ok {
		m = make(map[answerPair]float64)
		t.pairs[questionID] = m
	}
	m[answerPair{a, b}] = value
}

// SetSymmetric stores the score for both (a, b) and (b, a)
func (t *SimilarityTable) SetSymmetric(questionID int, a, b string, value float64) {
	t.Set(questionID, a, b, value)
	t.Set(questionID, b, a, value)
}

// Lookup returns the stored score for the ordered pair, if any
func (t *SimilarityTable) Lookup(questionID int, a, b string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	m, ok := t.pairs[questionID]
	if !ok {
		return 0, false
	}
	v, ok := m[answerPair{a, b}]
	return v, ok
}

// Similarity scores two answers to the same question.
// An empty answer is unanswered and never matches, not even another empty answer.
func (t *SimilarityTable) Similarity(questionID int, a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	if v, ok := t.Lookup(questionID, a, b); ok {
		return v
	}
	return 0
}

// IsSymmetric reports whether every stored pair has a mirror with the same score
func (t *SimilarityTable) IsSymmetric() bool {
	if t == nil {
		return true
	}
	for q, m := range t.pairs {
		for p, v := range m {
			mirror, ok := t.pairs[q][answerPair{p.b, p.a}]
			if !ok || mirror != v {
				return false
			}
		}
	}
	return true
}

// Len returns the number of stored ordered pairs
func (t *SimilarityTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, m := range t.pairs {
		n += len(m)
	}
	return n
}

// Entries lists all stored pairs sorted by question, then A, then B
func (t *SimilarityTable) Entries() []SimilarityEntry {
	if t == nil {
		return nil
	}
	out := make([]SimilarityEntry, 0, t.Len())
	for q, m := range t.pairs {
		for p, v := range m {
			out = append(out, SimilarityEntry{QuestionID: q, A: p.a, B: p.b, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuestionID != out[j].QuestionID {
			return out[i].QuestionID < out[j].QuestionID
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// PairKey renders an ordered pair the way the registry file spells it
func PairKey(a, b string) string {
	return a + "-" + b
}
