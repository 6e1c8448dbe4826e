package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewer/internal/domain"
	"interviewer/internal/vectorstore"
)

func record(content string, vec []float64) vectorstore.Record {
	return vectorstore.Record{
		Document: domain.Document{Type: domain.DocTypeQuestion, Content: content},
		Vector:   vec,
	}
}

func TestSearchOrdering(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]vectorstore.Record{
		record("x", []float64{1, 0}),
		record("y", []float64{0, 1}),
		record("mid", []float64{0.7071, 0.7071}),
	}))

	results, err := s.Search([]float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "x", results[0].Document.Content)
	assert.Equal(t, "mid", results[1].Document.Content)
	assert.Equal(t, "y", results[2].Document.Content)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestSearchTopKBounds(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert([]vectorstore.Record{
		record("a", []float64{1}),
		record("b", []float64{0.5}),
	}))

	results, err := s.Search([]float64{1}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	one, err := s.Search([]float64{1}, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestSearchEmptyStore(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(3))

	results, err := s.Search([]float64{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(2))

	err := s.Upsert([]vectorstore.Record{record("bad", []float64{1, 2, 3})})
	assert.Error(t, err)
}

func TestInitInvalidDimension(t *testing.T) {
	assert.Error(t, NewStore().Init(0))
}

func TestClear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert([]vectorstore.Record{record("a", []float64{1})}))
	require.NoError(t, s.Clear())

	results, err := s.Search([]float64{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInitResetsRecords(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert([]vectorstore.Record{record("a", []float64{1})}))
	require.NoError(t, s.Init(1))

	results, err := s.Search([]float64{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
