package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"recruiter-platform/internal/ai/gemini"
	"recruiter-platform/internal/llm"
	"recruiter-platform/internal/ranking"
	"recruiter-platform/internal/storage"
)

// Store is the persistence surface the HTTP handlers need. *storage.DB
// satisfies it.
type Store interface {
	InsertJobDescription(ctx context.Context, jd *storage.JobDescription) (*storage.JobDescription, error)
	ListJobDescriptionsByUser(ctx context.Context, userID string) ([]*storage.JobDescription, error)
	GetJobDescription(ctx context.Context, jdID string) (*storage.JobDescription, error)
	InsertCandidate(ctx context.Context, c *storage.Candidate) (*storage.Candidate, error)
	InsertFavorite(ctx context.Context, f *storage.Favorite) (*storage.Favorite, error)
	ListFavoritesByJob(ctx context.Context, userID, jobID string) ([]*storage.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, favoriteID string) error
}

// Ranker runs the full ranking pipeline for one JD.
type Ranker interface {
	Run(ctx context.Context, jdID, prompt, userID string) ([]*storage.RankedCandidate, error)
}

// JDParser extracts structured fields from JD text.
type JDParser interface {
	ParseJobDescription(ctx context.Context, text string) (*gemini.JDExtraction, error)
}

// ResumeParser extracts structured fields from resume text.
type ResumeParser interface {
	ParseResume(ctx context.Context, text string) (*llm.ResumeExtraction, error)
}

type API struct {
	store        Store
	ranker       Ranker
	cancels      *ranking.CancellationRegistry
	jdParser     JDParser
	resumeParser ResumeParser
	uploadsDir   string
	logger       *zap.Logger
}

func NewAPI(store Store, ranker Ranker, cancels *ranking.CancellationRegistry, jdParser JDParser, resumeParser ResumeParser, uploadsDir string, logger *zap.Logger) *API {
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	return &API{
		store:        store,
		ranker:       ranker,
		cancels:      cancels,
		jdParser:     jdParser,
		resumeParser: resumeParser,
		uploadsDir:   uploadsDir,
		logger:       logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
