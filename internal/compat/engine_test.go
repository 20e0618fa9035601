package compat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Helpers
// ============================================================================

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return e
}

// answersAt answers every question with the option at index i
func answersAt(e *Engine, i int) AnswerSet {
	set := make(AnswerSet)
	for _, q := range e.Questions() {
		set[q.ID] = q.Options[i]
	}
	return set
}

func cloneAnswers(a AnswerSet) AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ============================================================================
// NewEngine Tests
// ============================================================================

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := twoQuestionConfig(0.5)
	cfg.Categories[0].QuestionIDs = nil

	e, err := NewEngine(cfg)
	assert.Nil(t, e)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCategory)
	assert.Contains(t, err.Error(), "invalid matching configuration")
}

func TestMustNewEngine_Panics(t *testing.T) {
	t.Parallel()

	cfg := twoQuestionConfig(2)
	assert.Panics(t, func() { MustNewEngine(cfg) })
}

func TestNewEngine_IsolatedFromCallerMutation(t *testing.T) {
	t.Parallel()

	cfg := twoQuestionConfig(0.5)
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	cfg.Categories[0].QuestionIDs[0] = 2
	cfg.Questions[0].Options[0] = "Maybe"
	cfg.Similarities.SetSymmetric(1, "Yes", "No", 1.0)

	a := AnswerSet{1: "Yes", 2: "Yes"}
	b := AnswerSet{1: "No", 2: "Yes"}
	assert.Equal(t, 0.5, e.Calculate(a, b).Score)
	assert.Equal(t, []int{1, 2}, e.Categories()[0].QuestionIDs)
}

// ============================================================================
// Calculate Tests
// ============================================================================

func TestCalculate_IdenticalCompleteAnswersScoreOne(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)

	res := e.Calculate(a, cloneAnswers(a))
	assert.Equal(t, 1.0, res.Score)
	for name, score := range res.CategoryScores {
		assert.Equal(t, 1.0, score, name)
	}
	assert.Equal(t, 1.0, e.CalculateSimple(a, a))
}

func TestCalculate_IsSymmetric(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	b := answersAt(e, 0)
	b[2] = "VideoChat"
	b[4] = "Meditation"
	b[10] = "Crowds"
	b[13] = "Doing"
	delete(b, 18)

	ab := e.Calculate(a, b)
	ba := e.Calculate(b, a)
	assert.Equal(t, ab.Score, ba.Score)
	assert.Equal(t, ab.CategoryScores, ba.CategoryScores)
	assert.Equal(t, e.CalculateSimple(a, b), e.CalculateSimple(b, a))
}

func TestCalculate_AllCategoriesBelowThresholdScoresZero(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	res := e.Calculate(answersAt(e, 0), answersAt(e, 1))

	assert.Equal(t, 0.0, res.Score)
	assert.Len(t, res.Details, 4)
	for _, d := range res.Details {
		assert.Equal(t, 0.0, d.Score, d.Category)
	}
}

func TestCalculate_EmptyAnswerSetsScoreZero(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	assert.Equal(t, 0.0, e.Calculate(nil, nil).Score)
	assert.Equal(t, 0.0, e.Calculate(AnswerSet{}, AnswerSet{}).Score)
	assert.Equal(t, 0.0, e.CalculateSimple(nil, nil))
}

func TestCalculate_ThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	a := AnswerSet{1: "Yes", 2: "Yes"}
	b := AnswerSet{1: "Yes", 2: "No"}

	atThreshold := MustNewEngine(twoQuestionConfig(0.5))
	res := atThreshold.Calculate(a, b)
	assert.Equal(t, 0.5, res.CategoryScores["DRINKS"])
	assert.Equal(t, 0.5, res.Score)

	aboveThreshold := MustNewEngine(twoQuestionConfig(0.51))
	res = aboveThreshold.Calculate(a, b)
	assert.Equal(t, 0.5, res.CategoryScores["DRINKS"], "excluded categories are still reported")
	assert.Equal(t, 0.0, res.Score)
}

func TestCalculate_LifestyleHalfMatchMeetsThreshold(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	b := answersAt(e, 1)
	// LIFESTYLE is [1, 8, 10, 15]; agree on two of them
	b[1] = a[1]
	b[8] = a[8]

	res := e.Calculate(a, b)
	assert.Equal(t, 0.5, res.CategoryScores[CategoryLifestyle])
	assert.Equal(t, 0.5, res.Score, "only LIFESTYLE contributes")
}

func TestCalculate_PartialCreditScenario(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	b := cloneAnswers(a)
	require.Equal(t, "Texting", a[2])
	b[2] = "VideoChat"

	res := e.Calculate(a, b)

	preferences := (0.8 + 5) / 6
	assert.InDelta(t, preferences, res.CategoryScores[CategoryPreferences], 1e-9)
	assert.Equal(t, 1.0, res.CategoryScores[CategoryCoreValues])

	want := (2.5 + 2.0 + 1.5 + 1.0*preferences) / 7.0
	assert.InDelta(t, want, res.Score, 1e-9)

	last := res.Details[len(res.Details)-1]
	assert.Equal(t, CategoryPreferences, last.Category)
	assert.Equal(t, QuestionScore{QuestionID: 2, Similarity: 0.8}, last.Questions[0])

	simple := e.CalculateSimple(a, b)
	assert.InDelta(t, 27.0/28.0, simple, 1e-9)
	assert.Less(t, simple, res.Score)
}

func TestCalculate_ImprovingAnAnswerNeverLowersScore(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	categoryOf := make(map[int]string)
	for _, c := range e.Categories() {
		for _, id := range c.QuestionIDs {
			categoryOf[id] = c.Name
		}
	}

	for _, q := range e.Questions() {
		worse := cloneAnswers(a)
		worse[q.ID] = q.Options[1]
		better := cloneAnswers(worse)
		better[q.ID] = a[q.ID]

		before := e.Calculate(a, worse)
		after := e.Calculate(a, better)

		cat := categoryOf[q.ID]
		assert.GreaterOrEqual(t, after.CategoryScores[cat], before.CategoryScores[cat], "question %d", q.ID)
		assert.GreaterOrEqual(t, after.Score, before.Score, "question %d", q.ID)
	}
}

func TestCalculate_MissingAnswersNeverMatch(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	b := cloneAnswers(a)
	delete(a, 7)
	delete(b, 7)

	res := e.Calculate(a, b)
	core := res.Details[0]
	require.Equal(t, CategoryCoreValues, core.Category)
	assert.InDelta(t, 5.0/6.0, core.Score, 1e-9)
	assert.Contains(t, core.Questions, QuestionScore{QuestionID: 7, Similarity: 0})

	assert.InDelta(t, 26.0/28.0, e.CalculateSimple(a, b), 1e-9)
}

func TestCalculate_AnswersOutsideOptionsCountAsMissing(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	b := cloneAnswers(a)
	a[2] = "Pigeon"
	b[2] = "Pigeon"

	res := e.Calculate(a, b)
	assert.InDelta(t, 5.0/6.0, res.CategoryScores[CategoryPreferences], 1e-9)
	assert.InDelta(t, 27.0/28.0, e.CalculateSimple(a, b), 1e-9)

	// the raw similarity lookup does not validate options
	assert.Equal(t, 1.0, e.Similarity(2, "Pigeon", "Pigeon"))
}

func TestCalculate_DetailsFollowRegistryOrder(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	res := e.Calculate(answersAt(e, 0), answersAt(e, 0))

	cats := e.Categories()
	require.Len(t, res.Details, len(cats))
	for i, c := range cats {
		assert.Equal(t, c.Name, res.Details[i].Category)
		ids := make([]int, len(res.Details[i].Questions))
		for j, q := range res.Details[i].Questions {
			ids[j] = q.QuestionID
		}
		assert.Equal(t, c.QuestionIDs, ids)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	b := answersAt(e, 2)
	b[3] = a[3]
	b[6] = a[6]

	first := e.Calculate(a, b)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Calculate(a, b))
	}
}

func TestCalculate_ConcurrentUse(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	a := answersAt(e, 0)
	b := answersAt(e, 0)
	b[2] = "VideoChat"
	want := e.Calculate(a, b).Score

	var wg sync.WaitGroup
	scores := make([]float64, 16)
	for i := range scores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scores[i] = e.Calculate(a, b).Score
		}(i)
	}
	wg.Wait()

	for _, s := range scores {
		assert.Equal(t, want, s)
	}
}

// ============================================================================
// ScoreCategory Tests
// ============================================================================

func TestScoreCategory_EmptyCategory(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	d := e.ScoreCategory(Category{Name: "NONE"}, AnswerSet{1: "Reading"}, AnswerSet{1: "Reading"})
	assert.Equal(t, "NONE", d.Category)
	assert.Equal(t, 0.0, d.Score)
	assert.Empty(t, d.Questions)
}

func TestScoreCategory_UsesSimilarityTable(t *testing.T) {
	t.Parallel()

	e := newDefaultEngine(t)
	cat := Category{Name: "SOCIAL", Weight: 1, QuestionIDs: []int{10}}

	d := e.ScoreCategory(cat, AnswerSet{10: "SmallGroups"}, AnswerSet{10: "OneOnOne"})
	assert.Equal(t, 0.7, d.Score)

	d = e.ScoreCategory(cat, AnswerSet{10: "Online"}, AnswerSet{10: "Alone"})
	assert.Equal(t, 0.0, d.Score)
}
