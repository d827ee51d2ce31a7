package api

import (
	"net/http"

	"go.uber.org/zap"

	"recruiter-platform/internal/auth"
)

// RoleSummary is the dropdown-friendly view of one JD.
type RoleSummary struct {
	JDID               string `json:"jd_id"`
	Title              string `json:"title"`
	Location           string `json:"location,omitempty"`
	JobType            string `json:"job_type,omitempty"`
	ExperienceRequired string `json:"experience_required,omitempty"`
	ParsedSummary      string `json:"jd_parsed_summary,omitempty"`
}

// ListRolesHandler lists the caller's job descriptions
// @Summary List roles
// @Description Returns every JD uploaded by the authenticated user; the title is derived from the first line of the parsed summary
// @Tags roles
// @Produce json
// @Success 200 {array} RoleSummary
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /roles [get]
func (a *API) ListRolesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	jds, err := a.store.ListJobDescriptionsByUser(r.Context(), userID)
	if err != nil {
		a.logger.Error("failed to list JDs", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "failed to fetch job descriptions", http.StatusInternalServerError)
		return
	}

	roles := make([]RoleSummary, 0, len(jds))
	for _, jd := range jds {
		roles = append(roles, RoleSummary{
			JDID:               jd.JDID,
			Title:              jd.Title(),
			Location:           jd.Location,
			JobType:            jd.JobType,
			ExperienceRequired: jd.ExperienceRequired,
			ParsedSummary:      jd.ParsedSummary,
		})
	}
	writeJSON(w, http.StatusOK, roles)
}
