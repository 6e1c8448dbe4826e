package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewer/internal/domain"
)

type stubRetriever struct {
	results []domain.SearchResult
	queries []string
}

func (s *stubRetriever) Retrieve(query string, k int, docType domain.DocType) []domain.SearchResult {
	s.queries = append(s.queries, query)
	out := make([]domain.SearchResult, len(s.results))
	copy(out, s.results)
	return out
}

func questionResult(text, category, difficulty string, score float64) domain.SearchResult {
	return domain.SearchResult{
		Document: domain.Document{
			Type:    domain.DocTypeQuestion,
			Content: text,
			Meta:    domain.Metadata{Category: category, Difficulty: difficulty},
		},
		Score: score,
	}
}

var testJob = domain.JobContext{
	Title:       "Backend Engineer",
	Company:     "Acme",
	Description: "Looking for Python and SQL experience with Docker deployments.",
}

func TestExtractSkills(t *testing.T) {
	skills := ExtractSkills("We need Python, SQL, and Docker plus machine learning chops.")
	assert.Equal(t, []string{"python", "sql", "docker", "machine learning"}, skills)

	assert.Empty(t, ExtractSkills("A role about gardening."))
	assert.Empty(t, ExtractSkills(""))
}

func TestGeneratePicksFromTopFive(t *testing.T) {
	stub := &stubRetriever{}
	for i := 0; i < 8; i++ {
		stub.results = append(stub.results, questionResult(
			string(rune('a'+i)), "technical", "Medium", float64(8-i)))
	}
	topFive := map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true}

	gen := New(stub, nil, rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		q := gen.Generate(testJob, nil, CategoryAll, CategoryAll)
		assert.True(t, topFive[q.Question], "picked %q outside the top five", q.Question)
		assert.Greater(t, q.RelevanceScore, 0.0)
	}
}

func TestGenerateComposesQueryFromTitleAndSkills(t *testing.T) {
	stub := &stubRetriever{results: []domain.SearchResult{questionResult("q", "technical", "Easy", 1)}}
	gen := New(stub, nil, rand.New(rand.NewSource(1)))

	gen.Generate(testJob, nil, CategoryAll, CategoryAll)

	require.Len(t, stub.queries, 1)
	assert.Equal(t, "Backend Engineer python sql docker", stub.queries[0])
}

func TestGenerateCategoryAndDifficultyFilters(t *testing.T) {
	stub := &stubRetriever{results: []domain.SearchResult{
		questionResult("t-easy", "technical", "Easy", 0.9),
		questionResult("b-hard", "behavioral", "Hard", 0.8),
		questionResult("t-hard", "technical", "Hard", 0.7),
	}}
	gen := New(stub, nil, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		q := gen.Generate(testJob, nil, "Technical", "Hard")
		assert.Equal(t, "t-hard", q.Question)
		assert.Equal(t, "technical", q.Category)
	}
}

func TestGenerateExcludesAskedQuestions(t *testing.T) {
	stub := &stubRetriever{results: []domain.SearchResult{
		questionResult("one", "technical", "Easy", 0.9),
		questionResult("two", "technical", "Easy", 0.8),
	}}
	history := []domain.HistoryEntry{{Question: "one"}}
	gen := New(stub, nil, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		q := gen.Generate(testJob, history, CategoryAll, CategoryAll)
		assert.Equal(t, "two", q.Question)
	}
}

func TestGenerateFallsBackToBank(t *testing.T) {
	bank := map[string][]domain.BankQuestion{
		"behavioral": {{Question: "bank question", Difficulty: "Easy", Skills: []string{"communication"}}},
	}
	gen := New(&stubRetriever{}, bank, rand.New(rand.NewSource(1)))

	q := gen.Generate(testJob, nil, CategoryAll, CategoryAll)

	assert.Equal(t, "bank question", q.Question)
	assert.Equal(t, "behavioral", q.Category)
	assert.Equal(t, "Easy", q.Difficulty)
	assert.Zero(t, q.RelevanceScore)
}

func TestGenerateFallbackPrefersRequestedCategory(t *testing.T) {
	bank := map[string][]domain.BankQuestion{
		"technical":  {{Question: "tq"}},
		"behavioral": {{Question: "bq"}},
	}
	gen := New(&stubRetriever{}, bank, rand.New(rand.NewSource(1)))

	q := gen.Generate(testJob, nil, "Technical", CategoryAll)

	assert.Equal(t, "tq", q.Question)
	assert.Equal(t, "technical", q.Category)
	assert.Equal(t, "Medium", q.Difficulty, "missing difficulty defaults to Medium")
}

func TestGenerateFallbackEmptyRequestedCategory(t *testing.T) {
	// The requested category has no entries, so a non-empty one is used.
	bank := map[string][]domain.BankQuestion{
		"technical":   {},
		"situational": {{Question: "sq"}},
	}
	gen := New(&stubRetriever{}, bank, rand.New(rand.NewSource(1)))

	q := gen.Generate(testJob, nil, "Technical", CategoryAll)

	assert.Equal(t, "sq", q.Question)
	assert.Equal(t, "situational", q.Category)
}

func TestGenerateGenericDefault(t *testing.T) {
	gen := New(&stubRetriever{}, nil, rand.New(rand.NewSource(1)))

	// All retrieval candidates already asked, bank empty: deterministic.
	q := gen.Generate(testJob, nil, CategoryAll, CategoryAll)

	assert.Equal(t, "Tell me about your experience with this role.", q.Question)
	assert.Equal(t, "General", q.Category)
	assert.Equal(t, "Easy", q.Difficulty)
}

func TestGenerateExhaustedCandidatesFallThrough(t *testing.T) {
	stub := &stubRetriever{results: []domain.SearchResult{
		questionResult("one", "technical", "Easy", 0.9),
		questionResult("two", "technical", "Easy", 0.8),
	}}
	history := []domain.HistoryEntry{{Question: "one"}, {Question: "two"}}
	gen := New(stub, nil, rand.New(rand.NewSource(1)))

	q := gen.Generate(testJob, history, CategoryAll, CategoryAll)

	assert.Equal(t, "Tell me about your experience with this role.", q.Question)
}

func TestGenerateSeededReproducibility(t *testing.T) {
	stub := &stubRetriever{}
	for i := 0; i < 5; i++ {
		stub.results = append(stub.results, questionResult(
			string(rune('a'+i)), "technical", "Medium", float64(5-i)))
	}
	first := New(stub, nil, rand.New(rand.NewSource(42)))
	second := New(stub, nil, rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		assert.Equal(t,
			first.Generate(testJob, nil, CategoryAll, CategoryAll),
			second.Generate(testJob, nil, CategoryAll, CategoryAll))
	}
}

func TestLoadBankMissingFile(t *testing.T) {
	bank, err := LoadBank("testdata/does_not_exist.json")

	require.NoError(t, err)
	assert.Empty(t, bank)
}
