package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"recruiter-platform/internal/auth"
	"recruiter-platform/internal/storage"
)

// FavoriteRequest is the body for saving a candidate as a favorite.
type FavoriteRequest struct {
	JobID       string          `json:"job_id"`
	CandidateID string          `json:"candidate_id"`
	RankingData json.RawMessage `json:"ranking_data,omitempty"`
}

// CreateFavoriteHandler saves a candidate as a favorite
// @Summary Favorite a candidate
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body FavoriteRequest true "Favorite payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /favorites [post]
func (a *API) CreateFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.JobID == "" || req.CandidateID == "" {
		http.Error(w, "job_id and candidate_id are required", http.StatusBadRequest)
		return
	}

	_, err := a.store.InsertFavorite(r.Context(), &storage.Favorite{
		UserID:      userID,
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
		RankingData: req.RankingData,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		http.Error(w, "this candidate has already been favorited for this job", http.StatusConflict)
		return
	}
	if err != nil {
		a.logger.Error("favorite insert failed", zap.Error(err))
		http.Error(w, "failed to save favorite", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "candidate favorited successfully"})
}

// ListFavoritesHandler lists favorites for a job
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Param job_id path string true "Job id"
// @Success 200 {array} storage.Favorite
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /favorites/{job_id} [get]
func (a *API) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	favorites, err := a.store.ListFavoritesByJob(r.Context(), userID, r.PathValue("job_id"))
	if err != nil {
		a.logger.Error("favorites list failed", zap.Error(err))
		http.Error(w, "failed to fetch favorites", http.StatusInternalServerError)
		return
	}
	if favorites == nil {
		favorites = []*storage.Favorite{}
	}
	writeJSON(w, http.StatusOK, favorites)
}

// DeleteFavoriteHandler removes a favorite
// @Summary Unfavorite a candidate
// @Tags favorites
// @Param favorite_id path string true "Favorite id"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /favorites/{favorite_id} [delete]
func (a *API) DeleteFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	err := a.store.DeleteFavorite(r.Context(), userID, r.PathValue("favorite_id"))
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "favorite not found", http.StatusNotFound)
		return
	}
	if err != nil {
		a.logger.Error("favorite delete failed", zap.Error(err))
		http.Error(w, "failed to delete favorite", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
