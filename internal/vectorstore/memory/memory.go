package memory

import (
	"errors"
	"sort"
	"sync"

	"interviewer/internal/domain"
	"interviewer/internal/vectorstore"
)

// Store is an in-process vector store using brute-force inner-product
// search. The corpus here is tens to low hundreds of documents, so a full
// scan per query is cheaper than maintaining a real index.
type Store struct {
	mu        sync.RWMutex
	dimension int
	records   []vectorstore.Record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store { return &Store{} }

// Init sets the vector dimension and drops any existing records.
func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.records = nil
	return nil
}

// Upsert appends records after checking their vectors match the dimension.
func (s *Store) Upsert(records []vectorstore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if len(r.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.records = append(s.records, records...)
	return nil
}

// Search returns up to topK records ordered by descending inner product
// with the query vector. An empty store returns no results.
func (s *Store) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	if len(s.records) == 0 {
		return nil, nil
	}
	scores := make([]float64, len(s.records))
	idxs := make([]int, len(s.records))
	for i := range s.records {
		scores[i] = dot(s.records[i].Vector, vector)
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{Document: s.records[j].Document, Score: scores[j]})
	}
	return results, nil
}

// Clear drops all records.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
