package vectorstore

import "interviewer/internal/domain"

// Record bundles a document with its embedding vector in one unit. Storing
// the pair together makes desynchronization between a vector and its
// document impossible; a rebuild replaces whole records, never one half.
type Record struct {
	Document domain.Document
	Vector   []float64
}

// Storage persists records and supports similarity search over their
// vectors. Vectors are expected to be L2-normalized by the caller, so the
// inner product used for search equals cosine similarity.
type Storage interface {
	Init(dimension int) error
	Upsert(records []Record) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Clear() error
}
