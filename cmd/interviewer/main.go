package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"interviewer/internal/config"
	"interviewer/internal/domain"
	"interviewer/internal/embedding"
	"interviewer/internal/embedding/openai"
	"interviewer/internal/embedding/tfidf"
	"interviewer/internal/extract"
	"interviewer/internal/generator"
	"interviewer/internal/history"
	"interviewer/internal/retrieval"
	"interviewer/internal/summarizer"
	"interviewer/internal/tui"
	"interviewer/internal/vectorstore"
	"interviewer/internal/vectorstore/memory"
	"interviewer/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, jdPath, jdTitle, jdCompany string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/interviewer/config.yaml if not provided)")
	flag.StringVar(&jdPath, "jd", "", "Path to a custom job-description file (.txt)")
	flag.StringVar(&jdTitle, "title", "Custom Position", "Job title for a custom job description")
	flag.StringVar(&jdCompany, "company", "Company", "Company for a custom job description")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		ocfg := openai.Config{}
		if cfg.Embedder.OpenAI != nil {
			ocfg = openai.Config{
				APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
				Model:     cfg.Embedder.OpenAI.Model,
				Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
			}
		}
		client, err := openai.NewEmbedder(ocfg)
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStore()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		st = qdrant.NewStore(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	engine := retrieval.NewEngine(emb, st)
	if err := engine.LoadKnowledgeBase(cfg.Data.JobDescriptions, cfg.Data.QuestionsBank); err != nil {
		log.Fatalf("knowledge base build failed: %v", err)
	}

	bank, err := generator.LoadBank(cfg.Data.QuestionsBank)
	if err != nil {
		log.Fatalf("question bank load failed: %v", err)
	}
	gen := generator.New(engine, bank, rand.New(rand.NewSource(time.Now().UnixNano())))

	library := loadLibrary(cfg.Data.JobDescriptions)

	var jobCtx *domain.JobContext
	if jdPath != "" {
		text, err := extract.Text(jdPath)
		if err != nil {
			log.Fatalf("job description upload failed: %v", err)
		}
		jobCtx = &domain.JobContext{Title: jdTitle, Company: jdCompany, Description: text}
	}

	m := tui.New(gen, history.NewLogger(cfg.History.Path), summarizer.NewFrequency(), cfg.Summary.MaxSentences, library, jobCtx)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

// loadLibrary reads the job-description library for the setup screen.
// Missing or malformed files leave the library empty; a custom -jd file
// still works.
func loadLibrary(path string) []domain.JobPosting {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: could not load job library - %v", err)
		return nil
	}
	var jobs []domain.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		log.Printf("warning: could not parse job library - %v", err)
		return nil
	}
	return jobs
}
