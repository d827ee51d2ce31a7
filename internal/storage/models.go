package storage

import (
	"encoding/json"
	"strings"
	"time"
)

// User is the authenticated caller. Rows are created by the auth service;
// this API only reads them.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// JobDescription is one uploaded and parsed JD, owned by a user.
type JobDescription struct {
	JDID               string    `json:"jd_id"`
	UserID             string    `json:"user_id"`
	FileURL            string    `json:"file_url,omitempty"`
	Location           string    `json:"location,omitempty"`
	JobType            string    `json:"job_type,omitempty"`
	ExperienceRequired string    `json:"experience_required,omitempty"`
	ParsedSummary      string    `json:"jd_parsed_summary,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// Title derives the display title shown in the roles dropdown from the first
// line of the parsed summary.
func (jd *JobDescription) Title() string {
	first, _, _ := strings.Cut(jd.ParsedSummary, "\n")
	title := strings.TrimSpace(first)
	if title == "" {
		return "Untitled Role"
	}
	return title
}

// Candidate is one discovered or uploaded profile tied to a JD.
// Summary holds the parsed resume JSON (or opaque text) as stored.
type Candidate struct {
	ResumeID   string          `json:"resume_id"`
	JDID       string          `json:"jd_id"`
	UserID     string          `json:"user_id"`
	FileURL    string          `json:"file_url,omitempty"`
	PersonName string          `json:"person_name"`
	Role       string          `json:"role"`
	Company    string          `json:"company"`
	ProfileURL string          `json:"profile_url,omitempty"`
	Summary    json.RawMessage `json:"json_content,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Ranking is the persisted scoring outcome for one candidate against one JD.
// Strengths carries the formatted rationale (or an error message for failed
// evaluations). Written exactly once, never updated.
type Ranking struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	JDID       string    `json:"jd_id"`
	ResumeID   string    `json:"resume_id"`
	MatchScore float64   `json:"match_score"`
	Strengths  string    `json:"strengths"`
	CreatedAt  time.Time `json:"created_at"`
}

// RankedCandidate is a ranking joined with the candidate's display fields,
// the shape returned to the frontend.
type RankedCandidate struct {
	ResumeID   string  `json:"resume_id"`
	JDID       string  `json:"jd_id"`
	PersonName string  `json:"person_name"`
	Role       string  `json:"role"`
	Company    string  `json:"company"`
	ProfileURL string  `json:"profile_url,omitempty"`
	MatchScore float64 `json:"match_score"`
	Strengths  string  `json:"strengths"`
}

// Favorite is a candidate saved by a user for a specific job.
type Favorite struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	JobID       string          `json:"job_id"`
	CandidateID string          `json:"candidate_id"`
	RankingData json.RawMessage `json:"ranking_data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
