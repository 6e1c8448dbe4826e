package domain

import "time"

// DocType distinguishes the two kinds of documents in the retrieval corpus.
type DocType string

const (
	DocTypeJobDescription DocType = "job_description"
	DocTypeQuestion       DocType = "question"
)

// Metadata carries the per-type attributes of a corpus document.
// Title/Company are set for job descriptions, the rest for questions.
type Metadata struct {
	Title      string
	Company    string
	Category   string
	Difficulty string
	Skills     []string
}

// Document is one unit of the retrieval corpus. The corpus is read-only
// after load; a document's identity is its position in the index.
type Document struct {
	Type    DocType
	Content string
	Meta    Metadata
}

// SearchResult is a matching document with its similarity score.
type SearchResult struct {
	Document Document
	Score    float64
}

// JobContext describes the position the user is practicing for.
// Built by the caller from the library, an uploaded file, or pasted text.
type JobContext struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Question is a single interview question produced by the generator.
// RelevanceScore is only set when the question came from retrieval.
type Question struct {
	Question       string   `json:"question"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	Skills         []string `json:"skills,omitempty"`
	RelevanceScore float64  `json:"relevance_score,omitempty"`
}

// HistoryEntry records one completed question/answer round. The generator
// only reads Question (to avoid repeats); the rest feeds the history log.
type HistoryEntry struct {
	Timestamp  time.Time
	Question   string
	Category   string
	Response   string
	Score      int
	Assessment string
}

// Evaluation is the structured feedback for one response. FollowUp is
// empty when the score did not call for a follow-up question.
type Evaluation struct {
	Score             int      `json:"score"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	Reasoning         string   `json:"reasoning"`
	OverallAssessment string   `json:"overall_assessment"`
	FollowUp          string   `json:"follow_up,omitempty"`
}

// JobPosting is the on-disk shape of one job-description corpus entry.
type JobPosting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// BankQuestion is the on-disk shape of one question-bank entry.
// The bank file maps category name to a list of these.
type BankQuestion struct {
	Question   string   `json:"question"`
	Difficulty string   `json:"difficulty,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}
