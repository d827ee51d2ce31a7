package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"recruiter-platform/internal/auth"
	"recruiter-platform/internal/extract"
	"recruiter-platform/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10MB per request

// UploadJDHandler uploads and parses a job description file
// @Summary Upload JD
// @Description Upload a JD file (PDF/DOCX/TXT), extract its text, parse it with the LLM and persist the JD row
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JD file (PDF, DOCX or TXT)"
// @Success 200 {object} storage.JobDescription
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /upload/jd [post]
func (a *API) UploadJDHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "file too large or invalid (max 10MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	text, storedName, err := a.saveAndExtract(userID, header.Filename, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	parsed, err := a.jdParser.ParseJobDescription(r.Context(), text)
	if err != nil {
		a.logger.Error("JD parsing failed", zap.String("file", header.Filename), zap.Error(err))
		http.Error(w, "failed to parse job description", http.StatusInternalServerError)
		return
	}

	jd, err := a.store.InsertJobDescription(r.Context(), &storage.JobDescription{
		UserID:             userID,
		FileURL:            storedName,
		Location:           parsed.Location,
		JobType:            parsed.JobType,
		ExperienceRequired: parsed.ExperienceRequired,
		ParsedSummary:      parsed.Summary,
	})
	if err != nil {
		a.logger.Error("JD insert failed", zap.Error(err))
		http.Error(w, "failed to save job description", http.StatusInternalServerError)
		return
	}

	a.logger.Info("JD uploaded",
		zap.String("jd_id", jd.JDID),
		zap.String("user_id", userID),
		zap.String("file", header.Filename),
	)
	writeJSON(w, http.StatusOK, jd)
}

type uploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResumesHandler uploads and parses resumes against a JD
// @Summary Upload resumes
// @Description Upload one or more resume files for a JD; each is extracted, parsed with the LLM and persisted as a candidate
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param jd_id path string true "JD id"
// @Param files formData file true "Resume files"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]interface{}
// @Router /upload/resumes/{jd_id} [post]
func (a *API) UploadResumesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
		return
	}

	jdID := r.PathValue("jd_id")
	if _, err := a.store.GetJobDescription(r.Context(), jdID); err != nil {
		http.Error(w, "job description not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "files too large or invalid (max 10MB)", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no resume files provided", http.StatusBadRequest)
		return
	}

	var results []*storage.Candidate
	var errs []uploadError

	for _, header := range files {
		candidate, err := a.processResume(r, header, userID, jdID)
		if err != nil {
			a.logger.Warn("resume upload failed",
				zap.String("file", header.Filename),
				zap.Error(err),
			)
			errs = append(errs, uploadError{Filename: header.Filename, Error: err.Error()})
			continue
		}
		results = append(results, candidate)
	}

	if len(results) == 0 && len(errs) > 0 {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "all resume uploads failed",
			"errors":  errs,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"successful_uploads": results,
		"failed_uploads":     errs,
	})
}

func (a *API) processResume(r *http.Request, header *multipart.FileHeader, userID, jdID string) (*storage.Candidate, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	text, storedName, err := a.saveAndExtract(userID, header.Filename, file)
	if err != nil {
		return nil, err
	}

	parsed, err := a.resumeParser.ParseResume(r.Context(), text)
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	candidate, err := a.store.InsertCandidate(r.Context(), &storage.Candidate{
		JDID:       jdID,
		UserID:     userID,
		FileURL:    storedName,
		PersonName: parsed.PersonName,
		Role:       parsed.Role,
		Company:    parsed.Company,
		ProfileURL: parsed.ProfileURL,
		Summary:    parsed.JSONContent,
	})
	if err != nil {
		return nil, fmt.Errorf("save candidate: %w", err)
	}
	return candidate, nil
}

// saveAndExtract stores the upload under the caller's prefix and returns its
// extracted text along with the stored object name.
func (a *API) saveAndExtract(userID, filename string, file multipart.File) (text, storedName string, err error) {
	if filename == "" {
		return "", "", fmt.Errorf("no file provided")
	}
	if !extract.SupportedExt(filename) {
		return "", "", fmt.Errorf("unsupported file type (supported: PDF, DOCX, TXT)")
	}

	ts := time.Now().UTC().Format("20060102T150405Z")
	storedName = path.Join(userID, ts+"_"+path.Base(filename))

	savedPath, size, err := extract.SaveUpload(a.uploadsDir, storedName, file)
	if err != nil {
		return "", "", err
	}
	a.logger.Debug("upload saved", zap.String("path", savedPath), zap.Int64("bytes", size))

	text, err = extract.Text(savedPath)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", "", fmt.Errorf("no text could be extracted from %s", filename)
	}
	return text, storedName, nil
}
