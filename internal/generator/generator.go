package generator

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"interviewer/internal/domain"
)

// Retriever is the generator-facing subset of the retrieval engine.
type Retriever interface {
	Retrieve(query string, k int, docType domain.DocType) []domain.SearchResult
}

// CategoryAll disables category or difficulty filtering.
const CategoryAll = "All"

const genericQuestion = "Tell me about your experience with this role."

// skillVocabulary is the fixed term list for skill extraction. Substring
// matching against it is a heuristic: synonyms and multi-word skills not
// listed here are missed, and callers wanting better extraction must
// supply a richer vocabulary, not a smarter matcher.
var skillVocabulary = []string{
	"python", "java", "javascript", "react", "node", "sql", "aws", "docker",
	"kubernetes", "machine learning", "data analysis", "leadership", "agile",
	"communication", "problem solving", "teamwork",
}

// Generator produces interview questions for a job context, backed by
// retrieval with a two-tier fallback (static bank, then a generic
// default) so it always returns a usable question.
type Generator struct {
	retriever Retriever
	bank      map[string][]domain.BankQuestion
	rng       *rand.Rand
}

// New creates a generator. A nil rng gets a time-seeded source; tests
// inject a fixed seed for reproducible selection.
func New(retriever Retriever, bank map[string][]domain.BankQuestion, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if bank == nil {
		bank = map[string][]domain.BankQuestion{}
	}
	return &Generator{retriever: retriever, bank: bank, rng: rng}
}

// LoadBank reads the static question bank file. A missing file yields an
// empty bank, logged as a warning; generation then relies on retrieval
// and the generic default.
func LoadBank(path string) (map[string][]domain.BankQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("warning: could not load question bank - %v", err)
			return map[string][]domain.BankQuestion{}, nil
		}
		return nil, err
	}
	bank := map[string][]domain.BankQuestion{}
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// ExtractSkills returns the vocabulary terms found in the description by
// case-insensitive substring match, in vocabulary order.
func ExtractSkills(description string) []string {
	lower := strings.ToLower(description)
	var found []string
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// Generate returns one interview question for the job context. Category
// and difficulty filter the candidates when not "All" (case-insensitive);
// questions already present in history are excluded by exact text. When
// retrieval yields survivors, one of the top five by similarity rank is
// picked uniformly at random; otherwise the static bank supplies a random
// question, and an empty bank yields a fixed generic question.
func (g *Generator) Generate(jobCtx domain.JobContext, history []domain.HistoryEntry, category, difficulty string) domain.Question {
	skills := ExtractSkills(jobCtx.Description)
	query := strings.TrimSpace(jobCtx.Title + " " + strings.Join(skills, " "))
	candidates := g.retriever.Retrieve(query, 10, domain.DocTypeQuestion)

	candidates = filter(candidates, func(r domain.SearchResult) bool {
		if category != "" && category != CategoryAll && !strings.EqualFold(r.Document.Meta.Category, category) {
			return false
		}
		if difficulty != "" && difficulty != CategoryAll && !strings.EqualFold(r.Document.Meta.Difficulty, difficulty) {
			return false
		}
		return true
	})

	asked := make(map[string]struct{}, len(history))
	for _, h := range history {
		asked[h.Question] = struct{}{}
	}
	candidates = filter(candidates, func(r domain.SearchResult) bool {
		_, ok := asked[r.Document.Content]
		return !ok
	})

	if len(candidates) > 0 {
		top := candidates
		if len(top) > 5 {
			top = top[:5]
		}
		sel := top[g.rng.Intn(len(top))]
		q := domain.Question{
			Question:       sel.Document.Content,
			Category:       sel.Document.Meta.Category,
			Difficulty:     sel.Document.Meta.Difficulty,
			Skills:         sel.Document.Meta.Skills,
			RelevanceScore: sel.Score,
		}
		if q.Category == "" {
			q.Category = "General"
		}
		if q.Difficulty == "" {
			q.Difficulty = "Medium"
		}
		return q
	}
	return g.fromBank(category)
}

// fromBank picks a random question from the static bank, preferring the
// requested category, then any non-empty one, then the generic default.
func (g *Generator) fromBank(category string) domain.Question {
	selected := ""
	if category != "" && category != CategoryAll {
		selected = strings.ToLower(category)
	}
	if len(g.bank[selected]) == 0 {
		nonEmpty := make([]string, 0, len(g.bank))
		for c, qs := range g.bank {
			if len(qs) > 0 {
				nonEmpty = append(nonEmpty, c)
			}
		}
		if len(nonEmpty) == 0 {
			return domain.Question{Question: genericQuestion, Category: "General", Difficulty: "Easy"}
		}
		sort.Strings(nonEmpty)
		selected = nonEmpty[g.rng.Intn(len(nonEmpty))]
	}
	entry := g.bank[selected][g.rng.Intn(len(g.bank[selected]))]
	difficulty := entry.Difficulty
	if difficulty == "" {
		difficulty = "Medium"
	}
	return domain.Question{
		Question:   entry.Question,
		Category:   selected,
		Difficulty: difficulty,
		Skills:     entry.Skills,
	}
}

func filter(in []domain.SearchResult, keep func(domain.SearchResult) bool) []domain.SearchResult {
	out := in[:0]
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
