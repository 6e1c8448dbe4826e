package retrieval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewer/internal/domain"
	"interviewer/internal/embedding/tfidf"
	"interviewer/internal/vectorstore/memory"
)

const jobsJSON = `[
  {"title": "Backend Engineer", "company": "Acme", "description": "Python services with SQL storage and Docker deployments."},
  {"title": "Frontend Developer", "company": "Beta", "description": "React interfaces in JavaScript with Node tooling."}
]`

const bankJSON = `{
  "technical": [
    {"question": "How do you deploy containers with Docker and Kubernetes?", "difficulty": "Medium", "skills": ["docker", "kubernetes"]},
    {"question": "Explain SQL indexing strategies.", "difficulty": "Hard", "skills": ["sql"]}
  ],
  "behavioral": [
    {"question": "Tell me about a conflict you resolved on a team."}
  ]
}`

func writeCorpus(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs.json")
	bank := filepath.Join(dir, "bank.json")
	require.NoError(t, os.WriteFile(jobs, []byte(jobsJSON), 0o644))
	require.NoError(t, os.WriteFile(bank, []byte(bankJSON), 0o644))
	return jobs, bank
}

func builtEngine(t *testing.T) *Engine {
	t.Helper()
	jobs, bank := writeCorpus(t)
	engine := NewEngine(tfidf.NewEmbedder(), memory.NewStore())
	require.NoError(t, engine.LoadKnowledgeBase(jobs, bank))
	return engine
}

func TestLoadKnowledgeBaseCounts(t *testing.T) {
	engine := builtEngine(t)

	// 2 job descriptions + 3 bank questions
	assert.Equal(t, 5, engine.Size())
}

func TestLoadKnowledgeBaseMissingFilesDegrades(t *testing.T) {
	engine := NewEngine(tfidf.NewEmbedder(), memory.NewStore())

	err := engine.LoadKnowledgeBase("no/such/jobs.json", "no/such/bank.json")

	require.NoError(t, err)
	assert.Zero(t, engine.Size())
	assert.Empty(t, engine.Retrieve("docker", 5, domain.DocTypeQuestion))
}

func TestLoadKnowledgeBaseMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(jobs, []byte("{not json"), 0o644))

	engine := NewEngine(tfidf.NewEmbedder(), memory.NewStore())
	err := engine.LoadKnowledgeBase(jobs, jobs)

	assert.Error(t, err)
}

func TestRetrieveTypeFilterAndOrdering(t *testing.T) {
	engine := builtEngine(t)

	results := engine.Retrieve("docker kubernetes deployment", 3, domain.DocTypeQuestion)

	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 3)
	for i, r := range results {
		assert.Equal(t, domain.DocTypeQuestion, r.Document.Type)
		if i > 0 {
			assert.LessOrEqual(t, r.Score, results[i-1].Score)
		}
	}
	assert.Contains(t, results[0].Document.Content, "Docker")
}

func TestRetrieveAllTypes(t *testing.T) {
	engine := builtEngine(t)

	results := engine.Retrieve("python sql services", 10, "")

	require.NotEmpty(t, results)
	types := map[domain.DocType]bool{}
	for _, r := range results {
		types[r.Document.Type] = true
	}
	assert.True(t, types[domain.DocTypeJobDescription])
}

func TestRetrieveNeverOverfills(t *testing.T) {
	engine := builtEngine(t)

	// The corpus only holds 3 question documents.
	results := engine.Retrieve("anything at all", 50, domain.DocTypeQuestion)

	assert.LessOrEqual(t, len(results), 3)
}

func TestRetrieveZeroK(t *testing.T) {
	engine := builtEngine(t)

	assert.Empty(t, engine.Retrieve("docker", 0, domain.DocTypeQuestion))
}

func TestCorpusDifficultyDefault(t *testing.T) {
	engine := builtEngine(t)

	results := engine.Retrieve("conflict resolved team", 10, domain.DocTypeQuestion)

	require.NotEmpty(t, results)
	for _, r := range results {
		if r.Document.Meta.Category == "behavioral" {
			assert.Equal(t, "Medium", r.Document.Meta.Difficulty)
		}
	}
}
