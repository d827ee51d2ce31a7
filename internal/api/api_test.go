package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"recruiter-platform/internal/auth"
	"recruiter-platform/internal/ranking"
	"recruiter-platform/internal/storage"
)

// fakeStore implements Store in memory.
type fakeStore struct {
	jds       []*storage.JobDescription
	favorites []*storage.Favorite
	listErr   error
}

func (f *fakeStore) InsertJobDescription(ctx context.Context, jd *storage.JobDescription) (*storage.JobDescription, error) {
	f.jds = append(f.jds, jd)
	return jd, nil
}

func (f *fakeStore) ListJobDescriptionsByUser(ctx context.Context, userID string) ([]*storage.JobDescription, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*storage.JobDescription
	for _, jd := range f.jds {
		if jd.UserID == userID {
			out = append(out, jd)
		}
	}
	return out, nil
}

func (f *fakeStore) GetJobDescription(ctx context.Context, jdID string) (*storage.JobDescription, error) {
	for _, jd := range f.jds {
		if jd.JDID == jdID {
			return jd, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) InsertCandidate(ctx context.Context, c *storage.Candidate) (*storage.Candidate, error) {
	return c, nil
}

func (f *fakeStore) InsertFavorite(ctx context.Context, fav *storage.Favorite) (*storage.Favorite, error) {
	for _, existing := range f.favorites {
		if existing.UserID == fav.UserID && existing.JobID == fav.JobID && existing.CandidateID == fav.CandidateID {
			return nil, storage.ErrDuplicate
		}
	}
	fav.ID = "fav-1"
	f.favorites = append(f.favorites, fav)
	return fav, nil
}

func (f *fakeStore) ListFavoritesByJob(ctx context.Context, userID, jobID string) ([]*storage.Favorite, error) {
	var out []*storage.Favorite
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.JobID == jobID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteFavorite(ctx context.Context, userID, favoriteID string) error {
	for i, fav := range f.favorites {
		if fav.ID == favoriteID && fav.UserID == userID {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

type fakeRanker struct {
	results []*storage.RankedCandidate
	err     error
	calls   int
	lastJD  string
}

func (f *fakeRanker) Run(ctx context.Context, jdID, prompt, userID string) ([]*storage.RankedCandidate, error) {
	f.calls++
	f.lastJD = jdID
	return f.results, f.err
}

// identityAuth injects a fixed user, standing in for the JWT middleware.
func identityAuth(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func newTestServer(store *fakeStore, ranker *fakeRanker, cancels *ranking.CancellationRegistry) http.Handler {
	a := NewAPI(store, ranker, cancels, nil, nil, "", zap.NewNop())
	return NewRouter(a, identityAuth("u1"))
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearchHandler(t *testing.T) {
	ranker := &fakeRanker{results: []*storage.RankedCandidate{
		{ResumeID: "res-1", PersonName: "Jane Doe", MatchScore: 92.5},
	}}
	srv := newTestServer(&fakeStore{}, ranker, ranking.NewCancellationRegistry())

	rec := postJSON(t, srv, "/search/search", SearchRequest{JDID: "jd-1", Prompt: "Go engineers"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var results []*storage.RankedCandidate
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].MatchScore != 92.5 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if ranker.calls != 1 || ranker.lastJD != "jd-1" {
		t.Fatalf("ranker called %d times with jd %q", ranker.calls, ranker.lastJD)
	}
}

func TestSearchHandlerMissingJDID(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRanker{}, ranking.NewCancellationRegistry())
	rec := postJSON(t, srv, "/search/search", SearchRequest{Prompt: "no jd"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchHandlerRankerError(t *testing.T) {
	ranker := &fakeRanker{err: errors.New("candidate discovery: search service down")}
	srv := newTestServer(&fakeStore{}, ranker, ranking.NewCancellationRegistry())
	rec := postJSON(t, srv, "/search/search", SearchRequest{JDID: "jd-1"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "candidate discovery") {
		t.Fatalf("error detail missing from body: %s", rec.Body.String())
	}
}

func TestSearchHandlerEmptyResults(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRanker{}, ranking.NewCancellationRegistry())
	rec := postJSON(t, srv, "/search/search", SearchRequest{JDID: "jd-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %s", got)
	}
}

func TestCancelSearchHandler(t *testing.T) {
	cancels := ranking.NewCancellationRegistry()
	srv := newTestServer(&fakeStore{}, &fakeRanker{}, cancels)

	rec := postJSON(t, srv, "/search/cancel", struct{}{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !cancels.IsCancelled("u1") {
		t.Fatal("expected the caller's cancellation flag set")
	}
	if cancels.IsCancelled("u2") {
		t.Fatal("other users must be unaffected")
	}
}

func TestListRolesHandler(t *testing.T) {
	store := &fakeStore{jds: []*storage.JobDescription{
		{JDID: "jd-1", UserID: "u1", ParsedSummary: "Senior Go Engineer\nDetails follow."},
		{JDID: "jd-2", UserID: "u1", ParsedSummary: ""},
		{JDID: "jd-3", UserID: "someone-else", ParsedSummary: "Hidden"},
	}}
	srv := newTestServer(store, &fakeRanker{}, ranking.NewCancellationRegistry())

	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var roles []RoleSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &roles); err != nil {
		t.Fatal(err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected only the caller's 2 JDs, got %d", len(roles))
	}
	if roles[0].Title != "Senior Go Engineer" {
		t.Errorf("title = %q", roles[0].Title)
	}
	if roles[1].Title != "Untitled Role" {
		t.Errorf("empty summary title = %q", roles[1].Title)
	}
}

func TestFavoritesLifecycle(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(store, &fakeRanker{}, ranking.NewCancellationRegistry())

	body := FavoriteRequest{JobID: "jd-1", CandidateID: "res-1"}

	rec := postJSON(t, srv, "/favorites", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Same candidate again for the same job conflicts.
	rec = postJSON(t, srv, "/favorites", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/favorites/jd-1", nil)
	rec2 := httptest.NewRecorder()
	srv.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec2.Code)
	}
	var favs []*storage.Favorite
	if err := json.Unmarshal(rec2.Body.Bytes(), &favs); err != nil {
		t.Fatal(err)
	}
	if len(favs) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favs))
	}

	req = httptest.NewRequest(http.MethodDelete, "/favorites/"+favs[0].ID, nil)
	rec3 := httptest.NewRecorder()
	srv.ServeHTTP(rec3, req)
	if rec3.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec3.Code)
	}

	// Deleting again is a 404.
	rec4 := httptest.NewRecorder()
	srv.ServeHTTP(rec4, httptest.NewRequest(http.MethodDelete, "/favorites/"+favs[0].ID, nil))
	if rec4.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec4.Code)
	}
}

func TestCreateFavoriteValidation(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRanker{}, ranking.NewCancellationRegistry())
	rec := postJSON(t, srv, "/favorites", FavoriteRequest{JobID: "jd-1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListFavoritesEmpty(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRanker{}, ranking.NewCancellationRegistry())
	req := httptest.NewRequest(http.MethodGet, "/favorites/jd-none", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %s", got)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRanker{}, ranking.NewCancellationRegistry())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
