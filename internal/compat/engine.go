package compat

import "fmt"

// AnswerSet maps question id to the option a user picked.
// Missing keys are unanswered questions.
type AnswerSet map[int]string

// QuestionScore is the similarity of two answers to one question
type QuestionScore struct {
	QuestionID int     `json:"id"`
	Similarity float64 `json:"similarity"`
}

// CategoryDetail is the breakdown of one category
type CategoryDetail struct {
	Category  string          `json:"category"`
	Score     float64         `json:"score"`
	Questions []QuestionScore `json:"questions"`
}

// Result is the outcome of a category-weighted compatibility calculation
type Result struct {
	Score          float64            `json:"score"`          // 0-1
	CategoryScores map[string]float64 `json:"categoryScores"` // average similarity per category
	Details        []CategoryDetail   `json:"details"`        // registry order
}

// Engine scores pairs of answer sets against an immutable Config.
// It is safe for concurrent use.
type Engine struct {
	cfg     Config
	options map[int]map[string]bool
}

// NewEngine validates cfg and returns an engine holding a private copy of it
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching configuration: %w", err)
	}

	frozen := cfg.clone()
	options := make(map[int]map[string]bool, len(frozen.Questions))
	for _, q := range frozen.Questions {
		set := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			set[opt] = true
		}
		options[q.ID] = set
	}

	return &Engine{cfg: frozen, options: options}, nil
}

// MustNewEngine is like NewEngine but panics on an invalid configuration
func MustNewEngine(cfg Config) *Engine {
	e, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Questions returns the question registry
func (e *Engine) Questions() []Question {
	out := make([]Question, len(e.cfg.Questions))
	for i, q := range e.cfg.Questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Categories returns the category registry in evaluation order
func (e *Engine) Categories() []Category {
	out := make([]Category, len(e.cfg.Categories))
	for i, c := range e.cfg.Categories {
		c.QuestionIDs = append([]int(nil), c.QuestionIDs...)
		out[i] = c
	}
	return out
}

// Question returns a registry question by id
func (e *Engine) Question(id int) (Question, bool) {
	return e.cfg.Question(id)
}

// Similarity scores two raw answers to a question using the similarity table.
// It does not check the answers against the question's options.
func (e *Engine) Similarity(questionID int, a, b string) float64 {
	return e.cfg.Similarities.Similarity(questionID, a, b)
}

// answer returns the user's answer to a question, or "" when the question is
// unanswered or the answer is not one of the question's options
func (e *Engine) answer(set AnswerSet, questionID int) string {
	v := set[questionID]
	if v == "" || !e.options[questionID][v] {
		return ""
	}
	return v
}

// ScoreCategory averages the similarities of every question in the category
func (e *Engine) ScoreCategory(cat Category, a, b AnswerSet) CategoryDetail {
	detail := CategoryDetail{
		Category:  cat.Name,
		Questions: make([]QuestionScore, 0, len(cat.QuestionIDs)),
	}
	if len(cat.QuestionIDs) == 0 {
		return detail
	}

	var sum float64
	for _, id := range cat.QuestionIDs {
		sim := e.Similarity(id, e.answer(a, id), e.answer(b, id))
		sum += sim
		detail.Questions = append(detail.Questions, QuestionScore{QuestionID: id, Similarity: sim})
	}
	detail.Score = sum / float64(len(cat.QuestionIDs))
	return detail
}

// Calculate computes the category-weighted compatibility of two answer sets.
// A category only contributes to the final score when its average meets its
// threshold; categories below threshold are still reported in the breakdown.
func (e *Engine) Calculate(a, b AnswerSet) Result {
	result := Result{
		CategoryScores: make(map[string]float64, len(e.cfg.Categories)),
		Details:        make([]CategoryDetail, 0, len(e.cfg.Categories)),
	}

	var weightedSum, weightUsed float64
	for _, cat := range e.cfg.Categories {
		detail := e.ScoreCategory(cat, a, b)
		result.CategoryScores[cat.Name] = detail.Score
		result.Details = append(result.Details, detail)

		if detail.Score >= cat.Threshold {
			weightedSum += detail.Score * cat.Weight
			weightUsed += cat.Weight
		}
	}

	if weightUsed > 0 {
		result.Score = weightedSum / weightUsed
	}
	return result
}

// CalculateSimple is the single-pass scorer: weighted share of questions
// answered identically. It ignores categories, thresholds and the similarity table.
func (e *Engine) CalculateSimple(a, b AnswerSet) float64 {
	var total, matched float64
	for _, q := range e.cfg.Questions {
		w := e.cfg.QuestionWeight(q.ID)
		total += w

		av := e.answer(a, q.ID)
		if av != "" && av == e.answer(b, q.ID) {
			matched += w
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}
