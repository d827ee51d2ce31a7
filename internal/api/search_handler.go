package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"recruiter-platform/internal/auth"
	"recruiter-platform/internal/storage"
)

// SearchRequest is the body of a ranking run request.
type SearchRequest struct {
	JDID   string `json:"jd_id"`
	Prompt string `json:"prompt"`
}

// SearchHandler triggers candidate discovery and ranking for a JD
// @Summary Search and rank candidates
// @Description Runs the deep-search agent for the JD, scores unranked candidates with the LLM and returns the full ranked result set
// @Tags search
// @Accept json
// @Produce json
// @Param request body SearchRequest true "JD id and search prompt"
// @Success 200 {array} storage.RankedCandidate
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /search/search [post]
func (a *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.JDID == "" {
		http.Error(w, "jd_id is required", http.StatusBadRequest)
		return
	}

	results, err := a.ranker.Run(r.Context(), req.JDID, req.Prompt, userID)
	if err != nil {
		a.logger.Error("ranking run failed",
			zap.String("jd_id", req.JDID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if results == nil {
		results = []*storage.RankedCandidate{}
	}
	writeJSON(w, http.StatusOK, results)
}

// CancelSearchHandler flags the caller's in-flight ranking runs for cancellation
// @Summary Cancel search
// @Description Sets the caller's cooperative cancellation flag; takes effect before the scoring phase starts
// @Tags search
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /search/cancel [post]
func (a *API) CancelSearchHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	a.cancels.SetCancelled(userID)
	a.logger.Info("cancellation requested", zap.String("user_id", userID))

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancellation requested"})
}
