package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"interviewer/internal/domain"
	"interviewer/internal/vectorstore"
)

// Store is a minimal REST client to Qdrant for corpora too large to hold
// in process. It assumes cosine distance and creates the collection if
// missing. Document fields travel in the point payload so a search result
// reconstructs the full document.
type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	nextID     int
	client     *http.Client
}

// Config contains connection details for a Qdrant store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewStore creates a Qdrant-backed store.
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Init creates the collection if it does not exist.
func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	s.nextID = 0
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

// Upsert writes records as points; the point id is the record's ordinal
// position, preserving the position-is-identity convention of the corpus.
func (s *Store) Upsert(records []vectorstore.Record) error {
	points := make([]map[string]any, len(records))
	for i, r := range records {
		points[i] = map[string]any{
			"id":     s.nextID + i,
			"vector": r.Vector,
			"payload": map[string]any{
				"type":       string(r.Document.Type),
				"content":    r.Document.Content,
				"title":      r.Document.Meta.Title,
				"company":    r.Document.Meta.Company,
				"category":   r.Document.Meta.Category,
				"difficulty": r.Document.Meta.Difficulty,
				"skills":     r.Document.Meta.Skills,
			},
		}
	}
	s.nextID += len(records)
	body := map[string]any{"points": points}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// Search runs a similarity search and rebuilds documents from payloads.
func (s *Store) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		doc := domain.Document{}
		if v, ok := r.Payload["type"].(string); ok {
			doc.Type = domain.DocType(v)
		}
		if v, ok := r.Payload["content"].(string); ok {
			doc.Content = v
		}
		if v, ok := r.Payload["title"].(string); ok {
			doc.Meta.Title = v
		}
		if v, ok := r.Payload["company"].(string); ok {
			doc.Meta.Company = v
		}
		if v, ok := r.Payload["category"].(string); ok {
			doc.Meta.Category = v
		}
		if v, ok := r.Payload["difficulty"].(string); ok {
			doc.Meta.Difficulty = v
		}
		if vs, ok := r.Payload["skills"].([]any); ok {
			for _, sk := range vs {
				if str, ok := sk.(string); ok {
					doc.Meta.Skills = append(doc.Meta.Skills, str)
				}
			}
		}
		results = append(results, domain.SearchResult{Document: doc, Score: r.Score})
	}
	return results, nil
}

// Clear drops the collection, best effort.
func (s *Store) Clear() error {
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	_, _ = s.client.Do(req)
	s.nextID = 0
	return nil
}

func (s *Store) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
