package retrieval

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sort"

	"interviewer/internal/domain"
	"interviewer/internal/embedding"
	"interviewer/internal/vectorstore"
)

// Engine owns the document corpus and its vector index. It is built once
// at startup and read-only afterwards; queries never mutate it. A missing
// corpus degrades the engine to empty rather than failing: retrieval then
// returns no results, which downstream callers treat as a normal outcome.
type Engine struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	docCount int
	built    bool
}

// NewEngine creates an engine with an empty index.
func NewEngine(emb embedding.Embedder, store vectorstore.Storage) *Engine {
	return &Engine{embedder: emb, store: store}
}

// LoadKnowledgeBase reads the job-description and question-bank files,
// embeds every document, and builds the index. If either file is missing
// the engine logs a warning and stays empty; that is not an error.
// Decode or embedding failures are.
func (e *Engine) LoadKnowledgeBase(jobsPath, bankPath string) error {
	docs, ok, err := loadCorpus(jobsPath, bankPath)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	if err := e.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}
	records := make([]vectorstore.Record, len(docs))
	for i, d := range docs {
		vec, err := e.embedder.Embed(d.Content)
		if err != nil {
			return fmt.Errorf("embed document %d: %w", i, err)
		}
		normalize(vec)
		records[i] = vectorstore.Record{Document: d, Vector: vec}
	}
	if err := e.store.Init(e.embedder.Dimension()); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	if err := e.store.Upsert(records); err != nil {
		return fmt.Errorf("index corpus: %w", err)
	}
	e.docCount = len(docs)
	e.built = true
	log.Printf("loaded %d documents into knowledge base", len(docs))
	return nil
}

// Retrieve returns up to k documents most similar to the query, optionally
// restricted to one document type (empty means all). The store is asked
// for 2k candidates as headroom for the type filter; if candidates of the
// wanted type run out, fewer than k results come back. At low type
// selectivity relative to k the result set may under-fill — acceptable at
// this corpus size. An unbuilt index and embedding failures both yield no
// results, never an error.
func (e *Engine) Retrieve(query string, k int, docType domain.DocType) []domain.SearchResult {
	if !e.built || k <= 0 {
		return nil
	}
	vec, err := e.embedder.Embed(query)
	if err != nil {
		log.Printf("warning: query embedding failed: %v", err)
		return nil
	}
	normalize(vec)
	candidates, err := e.store.Search(vec, 2*k)
	if err != nil {
		log.Printf("warning: index search failed: %v", err)
		return nil
	}
	results := make([]domain.SearchResult, 0, k)
	for _, c := range candidates {
		if docType != "" && c.Document.Type != docType {
			continue
		}
		results = append(results, c)
		if len(results) >= k {
			break
		}
	}
	return results
}

// Size reports the number of indexed documents.
func (e *Engine) Size() int { return e.docCount }

// loadCorpus reads both corpus files into a single document slice, job
// descriptions first, then bank questions with categories in sorted order
// so document positions are stable across runs. The second return is
// false when a file is missing.
func loadCorpus(jobsPath, bankPath string) ([]domain.Document, bool, error) {
	var jobs []domain.JobPosting
	if ok, err := readJSON(jobsPath, &jobs); !ok || err != nil {
		return nil, false, err
	}
	bank := map[string][]domain.BankQuestion{}
	if ok, err := readJSON(bankPath, &bank); !ok || err != nil {
		return nil, false, err
	}
	var docs []domain.Document
	for _, jd := range jobs {
		docs = append(docs, domain.Document{
			Type:    domain.DocTypeJobDescription,
			Content: jd.Description,
			Meta:    domain.Metadata{Title: jd.Title, Company: jd.Company},
		})
	}
	categories := make([]string, 0, len(bank))
	for c := range bank {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, category := range categories {
		for _, q := range bank[category] {
			difficulty := q.Difficulty
			if difficulty == "" {
				difficulty = "Medium"
			}
			docs = append(docs, domain.Document{
				Type:    domain.DocTypeQuestion,
				Content: q.Question,
				Meta: domain.Metadata{
					Category:   category,
					Difficulty: difficulty,
					Skills:     q.Skills,
				},
			})
		}
	}
	return docs, true, nil
}

func readJSON(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("warning: could not load knowledge base - %v", err)
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

func normalize(vec []float64) {
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
}
