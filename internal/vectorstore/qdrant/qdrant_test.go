package qdrant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewer/internal/domain"
	"interviewer/internal/vectorstore"
)

func TestUpsertAndSearchPayloadMapping(t *testing.T) {
	var upserted struct {
		Points []struct {
			ID      int            `json:"id"`
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/collections/interview":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/interview/points":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&upserted))
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Path == "/collections/interview/points/search":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{{
					"score": 0.91,
					"payload": map[string]any{
						"type":       "question",
						"content":    "Explain SQL indexing strategies.",
						"category":   "technical",
						"difficulty": "Hard",
						"skills":     []string{"sql"},
					},
				}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "interview"})
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]vectorstore.Record{{
		Document: domain.Document{
			Type:    domain.DocTypeQuestion,
			Content: "Explain SQL indexing strategies.",
			Meta:    domain.Metadata{Category: "technical", Difficulty: "Hard", Skills: []string{"sql"}},
		},
		Vector: []float64{0.6, 0.8},
	}}))

	require.Len(t, upserted.Points, 1)
	assert.Equal(t, 0, upserted.Points[0].ID)
	assert.Equal(t, "question", upserted.Points[0].Payload["type"])

	results, err := s.Search([]float64{0.6, 0.8}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.DocTypeQuestion, results[0].Document.Type)
	assert.Equal(t, "technical", results[0].Document.Meta.Category)
	assert.Equal(t, []string{"sql"}, results[0].Document.Meta.Skills)
	assert.InDelta(t, 0.91, results[0].Score, 1e-9)
}

func TestUpsertIDsAdvance(t *testing.T) {
	var ids []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections/c/points" {
			var body struct {
				Points []struct {
					ID int `json:"id"`
				} `json:"points"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			for _, p := range body.Points {
				ids = append(ids, p.ID)
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "c"})
	require.NoError(t, s.Init(1))
	rec := vectorstore.Record{Document: domain.Document{Type: domain.DocTypeQuestion}, Vector: []float64{1}}
	require.NoError(t, s.Upsert([]vectorstore.Record{rec, rec}))
	require.NoError(t, s.Upsert([]vectorstore.Record{rec}))

	assert.Equal(t, []int{0, 1, 2}, ids)
}
