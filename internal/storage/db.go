package storage

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrNotFound is returned when a point lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// ErrDuplicate is returned when an insert collides with an existing row.
var ErrDuplicate = errors.New("storage: duplicate")

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

// --- Users ---

func (db *DB) GetUserByID(ctx context.Context, id string) (*User, error) {
	u := &User{}
	query := `SELECT id, email, COALESCE(name, '') FROM users WHERE id = $1`
	err := db.connection.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// --- Job descriptions ---

func (db *DB) InsertJobDescription(ctx context.Context, jd *JobDescription) (*JobDescription, error) {
	if jd.JDID == "" {
		jd.JDID = uuid.NewString()
	}
	query := `INSERT INTO jds (jd_id, user_id, file_url, location, job_type, experience_required, jd_parsed_summary, created_at)
              VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NOW())
              RETURNING created_at`
	err := db.connection.QueryRowContext(ctx, query,
		jd.JDID, jd.UserID, jd.FileURL, jd.Location, jd.JobType, jd.ExperienceRequired, jd.ParsedSummary,
	).Scan(&jd.CreatedAt)
	if err != nil {
		return nil, err
	}
	return jd, nil
}

func (db *DB) GetJobDescription(ctx context.Context, jdID string) (*JobDescription, error) {
	jd := &JobDescription{}
	query := `SELECT jd_id, user_id, COALESCE(file_url, ''), COALESCE(location, ''), COALESCE(job_type, ''),
                     COALESCE(experience_required, ''), COALESCE(jd_parsed_summary, ''), created_at
              FROM jds WHERE jd_id = $1`
	err := db.connection.QueryRowContext(ctx, query, jdID).Scan(
		&jd.JDID, &jd.UserID, &jd.FileURL, &jd.Location, &jd.JobType,
		&jd.ExperienceRequired, &jd.ParsedSummary, &jd.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return jd, nil
}

func (db *DB) ListJobDescriptionsByUser(ctx context.Context, userID string) ([]*JobDescription, error) {
	query := `SELECT jd_id, user_id, COALESCE(file_url, ''), COALESCE(location, ''), COALESCE(job_type, ''),
                     COALESCE(experience_required, ''), COALESCE(jd_parsed_summary, ''), created_at
              FROM jds WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := db.connection.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*JobDescription
	for rows.Next() {
		jd := &JobDescription{}
		if err := rows.Scan(
			&jd.JDID, &jd.UserID, &jd.FileURL, &jd.Location, &jd.JobType,
			&jd.ExperienceRequired, &jd.ParsedSummary, &jd.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, jd)
	}
	return res, rows.Err()
}

// --- Candidates (resume rows) ---

func (db *DB) InsertCandidate(ctx context.Context, c *Candidate) (*Candidate, error) {
	if c.ResumeID == "" {
		c.ResumeID = uuid.NewString()
	}
	summary := c.Summary
	if len(summary) == 0 {
		summary = []byte("{}")
	}
	query := `INSERT INTO resume (resume_id, jd_id, user_id, file_url, person_name, role, company, profile_url, json_content, created_at)
              VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, NOW())
              RETURNING created_at`
	err := db.connection.QueryRowContext(ctx, query,
		c.ResumeID, c.JDID, c.UserID, c.FileURL, c.PersonName, c.Role, c.Company, c.ProfileURL, summary,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListUnrankedCandidates returns candidates for the JD that have no ranking row
// yet. Error rows count as ranked, so a permanently failing candidate is not
// re-scored on every run.
func (db *DB) ListUnrankedCandidates(ctx context.Context, jdID string) ([]*Candidate, error) {
	query := `SELECT r.resume_id, r.jd_id, r.user_id, COALESCE(r.person_name, ''), COALESCE(r.role, ''),
                     COALESCE(r.company, ''), COALESCE(r.profile_url, ''), r.json_content, r.created_at
              FROM resume r
              LEFT JOIN ranked_candidates_from_resume rc
                ON rc.resume_id = r.resume_id AND rc.jd_id = r.jd_id
              WHERE r.jd_id = $1 AND rc.resume_id IS NULL`
	rows, err := db.connection.QueryContext(ctx, query, jdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Candidate
	for rows.Next() {
		c := &Candidate{}
		var summary []byte
		if err := rows.Scan(
			&c.ResumeID, &c.JDID, &c.UserID, &c.PersonName, &c.Role,
			&c.Company, &c.ProfileURL, &summary, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		c.Summary = summary
		res = append(res, c)
	}
	return res, rows.Err()
}

// ListCandidatesMissingProfileURL returns candidates with a name but no
// LinkedIn URL, oldest first. Used by the backfill tool.
func (db *DB) ListCandidatesMissingProfileURL(ctx context.Context, limit int) ([]*Candidate, error) {
	query := `SELECT resume_id, jd_id, user_id, COALESCE(person_name, ''), COALESCE(role, ''),
                     COALESCE(company, ''), COALESCE(profile_url, ''), json_content, created_at
              FROM resume
              WHERE (profile_url IS NULL OR profile_url = '') AND person_name IS NOT NULL
              ORDER BY created_at ASC
              LIMIT $1`
	rows, err := db.connection.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Candidate
	for rows.Next() {
		c := &Candidate{}
		var summary []byte
		if err := rows.Scan(
			&c.ResumeID, &c.JDID, &c.UserID, &c.PersonName, &c.Role,
			&c.Company, &c.ProfileURL, &summary, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		c.Summary = summary
		res = append(res, c)
	}
	return res, rows.Err()
}

func (db *DB) UpdateCandidateProfileURL(ctx context.Context, resumeID, profileURL string) error {
	query := `UPDATE resume SET profile_url = $1 WHERE resume_id = $2`
	_, err := db.connection.ExecContext(ctx, query, profileURL, resumeID)
	return err
}

// --- Rankings ---

func (db *DB) InsertRanking(ctx context.Context, r *Ranking) error {
	query := `INSERT INTO ranked_candidates_from_resume (user_id, jd_id, resume_id, match_score, strengths, created_at)
              VALUES ($1, $2, $3, $4, $5, NOW())
              RETURNING id, created_at`
	return db.connection.QueryRowContext(ctx, query,
		r.UserID, r.JDID, r.ResumeID, r.MatchScore, r.Strengths,
	).Scan(&r.ID, &r.CreatedAt)
}

// ListRankedCandidates joins rankings with candidate display fields for one JD,
// best score first.
func (db *DB) ListRankedCandidates(ctx context.Context, jdID string) ([]*RankedCandidate, error) {
	query := `SELECT rc.resume_id, rc.jd_id, COALESCE(r.person_name, ''), COALESCE(r.role, ''),
                     COALESCE(r.company, ''), COALESCE(r.profile_url, ''), rc.match_score, rc.strengths
              FROM ranked_candidates_from_resume rc
              JOIN resume r ON r.resume_id = rc.resume_id AND r.jd_id = rc.jd_id
              WHERE rc.jd_id = $1
              ORDER BY rc.match_score DESC, rc.created_at ASC`
	rows, err := db.connection.QueryContext(ctx, query, jdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*RankedCandidate
	for rows.Next() {
		rc := &RankedCandidate{}
		if err := rows.Scan(
			&rc.ResumeID, &rc.JDID, &rc.PersonName, &rc.Role,
			&rc.Company, &rc.ProfileURL, &rc.MatchScore, &rc.Strengths,
		); err != nil {
			return nil, err
		}
		res = append(res, rc)
	}
	return res, rows.Err()
}

// --- Favorites ---

func (db *DB) InsertFavorite(ctx context.Context, f *Favorite) (*Favorite, error) {
	var exists bool
	check := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND job_id = $2 AND candidate_id = $3)`
	if err := db.connection.QueryRowContext(ctx, check, f.UserID, f.JobID, f.CandidateID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	ranking := f.RankingData
	if len(ranking) == 0 {
		ranking = []byte("{}")
	}
	query := `INSERT INTO favorites (id, user_id, job_id, candidate_id, ranking_data, created_at)
              VALUES ($1, $2, $3, $4, $5, NOW())
              RETURNING created_at`
	err := db.connection.QueryRowContext(ctx, query,
		f.ID, f.UserID, f.JobID, f.CandidateID, ranking,
	).Scan(&f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (db *DB) ListFavoritesByJob(ctx context.Context, userID, jobID string) ([]*Favorite, error) {
	query := `SELECT id, user_id, job_id, candidate_id, ranking_data, created_at
              FROM favorites WHERE user_id = $1 AND job_id = $2 ORDER BY created_at DESC`
	rows, err := db.connection.QueryContext(ctx, query, userID, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Favorite
	for rows.Next() {
		f := &Favorite{}
		var ranking []byte
		if err := rows.Scan(&f.ID, &f.UserID, &f.JobID, &f.CandidateID, &ranking, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.RankingData = ranking
		res = append(res, f)
	}
	return res, rows.Err()
}

func (db *DB) DeleteFavorite(ctx context.Context, userID, favoriteID string) error {
	res, err := db.connection.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = $1 AND user_id = $2`, favoriteID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Schema returns the DDL this store expects. ranked_candidates_from_resume
// deliberately has no unique (jd_id, resume_id) constraint: candidates are
// selected with an anti-join before scoring, so concurrent runs for the same
// JD can double-insert.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT
);

CREATE TABLE IF NOT EXISTS jds (
    jd_id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    file_url TEXT,
    location TEXT,
    job_type TEXT,
    experience_required TEXT,
    jd_parsed_summary TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS resume (
    resume_id UUID PRIMARY KEY,
    jd_id UUID NOT NULL REFERENCES jds(jd_id),
    user_id UUID NOT NULL,
    file_url TEXT,
    person_name TEXT,
    role TEXT,
    company TEXT,
    profile_url TEXT,
    json_content JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ranked_candidates_from_resume (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL,
    jd_id UUID NOT NULL,
    resume_id UUID NOT NULL,
    match_score NUMERIC(5,2) NOT NULL,
    strengths TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_ranked_jd ON ranked_candidates_from_resume (jd_id, resume_id);

CREATE TABLE IF NOT EXISTS favorites (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    job_id UUID NOT NULL,
    candidate_id UUID NOT NULL,
    ranking_data JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
}
