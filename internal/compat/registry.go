package compat

import (
	"errors"
	"fmt"
)

// DefaultQuestionWeight applies to any question missing from Config.Weights
const DefaultQuestionWeight = 1.0

// Question is a single questionnaire item with a closed option vocabulary
type Question struct {
	ID      int      `json:"id" yaml:"id"`
	Prompt  string   `json:"question" yaml:"prompt"`
	Options []string `json:"options" yaml:"options"`
}

// IsValidOption reports whether v belongs to the question's option set
func (q Question) IsValidOption(v string) bool {
	for _, opt := range q.Options {
		if opt == v {
			return true
		}
	}
	return false
}

// Category groups questions that share a weight and an inclusion threshold
type Category struct {
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	QuestionIDs []int   `json:"questions" yaml:"questions"`
	Description string  `json:"description" yaml:"description"`
}

// Config is the static matching configuration consumed by the Engine.
// Categories are evaluated in slice order.
type Config struct {
	Questions    []Question
	Weights      map[int]float64
	Categories   []Category
	Similarities *SimilarityTable
}

// Configuration errors
var (
	ErrEmptyCategory     = errors.New("category has no questions")
	ErrUnknownQuestion   = errors.New("unknown question id")
	ErrInvalidWeight     = errors.New("weight must be positive")
	ErrInvalidThreshold  = errors.New("threshold must be between 0 and 1")
	ErrDuplicate         = errors.New("duplicate definition")
	ErrNoOptions         = errors.New("question has no options")
	ErrInvalidSimilarity = errors.New("similarity must be in (0, 1]")
)

// Question returns the question with the given id
func (c Config) Question(id int) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionWeight returns the configured weight for a question, or DefaultQuestionWeight
func (c Config) QuestionWeight(id int) float64 {
	if w, ok := c.Weights[id]; ok {
		return w
	}
	return DefaultQuestionWeight
}

// Validate checks the configuration for structural problems.
// It returns every failure joined into a single error, or nil if valid.
func (c Config) Validate() error {
	var errs []error

	known := make(map[int]bool, len(c.Questions))
	for _, q := range c.Questions {
		if known[q.ID] {
			errs = append(errs, fmt.Errorf("question %d: %w", q.ID, ErrDuplicate))
			continue
		}
		known[q.ID] = true
		if len(q.Options) == 0 {
			errs = append(errs, fmt.Errorf("question %d: %w", q.ID, ErrNoOptions))
		}
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt] {
				errs = append(errs, fmt.Errorf("question %d option %q: %w", q.ID, opt, ErrDuplicate))
			}
			seen[opt] = true
		}
	}

	for id, w := range c.Weights {
		if !known[id] {
			errs = append(errs, fmt.Errorf("weight for question %d: %w", id, ErrUnknownQuestion))
		}
		if w <= 0 {
			errs = append(errs, fmt.Errorf("question %d weight %v: %w", id, w, ErrInvalidWeight))
		}
	}

	names := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if names[cat.Name] {
			errs = append(errs, fmt.Errorf("category %q: %w", cat.Name, ErrDuplicate))
		}
		names[cat.Name] = true

		if len(cat.QuestionIDs) == 0 {
			errs = append(errs, fmt.Errorf("category %q: %w", cat.Name, ErrEmptyCategory))
		}
		if cat.Weight <= 0 {
			errs = append(errs, fmt.Errorf("category %q weight %v: %w", cat.Name, cat.Weight, ErrInvalidWeight))
		}
		if cat.Threshold < 0 || cat.Threshold > 1 {
			errs = append(errs, fmt.Errorf("category %q threshold %v: %w", cat.Name, cat.Threshold, ErrInvalidThreshold))
		}
		for _, id := range cat.QuestionIDs {
			if !known[id] {
				errs = append(errs, fmt.Errorf("category %q question %d: %w", cat.Name, id, ErrUnknownQuestion))
			}
		}
	}

	if c.Similarities != nil {
		for _, e := range c.Similarities.Entries() {
			if !known[e.QuestionID] {
				errs = append(errs, fmt.Errorf("similarity %s on question %d: %w", PairKey(e.A, e.B), e.QuestionID, ErrUnknownQuestion))
			}
			if e.Value <= 0 || e.Value > 1 {
				errs = append(errs, fmt.Errorf("similarity %s on question %d = %v: %w", PairKey(e.A, e.B), e.QuestionID, e.Value, ErrInvalidSimilarity))
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// clone returns a deep copy so the engine never shares mutable state with callers
func (c Config) clone() Config {
	out := Config{
		Questions:    make([]Question, len(c.Questions)),
		Weights:      make(map[int]float64, len(c.Weights)),
		Categories:   make([]Category, len(c.Categories)),
		Similarities: NewSimilarityTable(),
	}
	for i, q := range c.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	for id, w := range c.Weights {
		out.Weights[id] = w
	}
	for i, cat := range c.Categories {
		cat.QuestionIDs = append([]int(nil), cat.QuestionIDs...)
		out.Categories[i] = cat
	}
	if c.Similarities != nil {
		for _, e := range c.Similarities.Entries() {
			out.Similarities.Set(e.QuestionID, e.A, e.B, e.Value)
		}
	}
	return out
}
