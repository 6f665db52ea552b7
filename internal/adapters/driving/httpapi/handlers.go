package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// envelope is the JSON answered on success.
type envelope struct {
	Status   int `json:"status"`
	Response any `json:"response,omitempty"`
}

// candidateJSON is one fragment offered for translation.
type candidateJSON struct {
	TrechoID     int     `json:"trecho_id"`
	Conteudo     string  `json:"conteudo"`
	SnapshotName *string `json:"snapshot_name"`
	SiteID       *int    `json:"site_id"`
	SiteURL      string  `json:"site_url"`
	SnapshotURL  string  `json:"snapshot_url,omitempty"`
}

// siteJSON answers a site registration.
type siteJSON struct {
	Status  int    `json:"status"`
	SiteID  int    `json:"site_id"`
	SiteURL string `json:"site_url"`
	Created bool   `json:"created"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("writing response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK})
}

func (s *Server) handleGetConteudo(w http.ResponseWriter, r *http.Request) {
	trechoID, err := requiredInt(r, "trecho_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	conteudo, err := s.ports.Trechos.GetConteudo(r.Context(), trechoID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Response: conteudo})
}

func (s *Server) handleGetParaTraduzir(w http.ResponseWriter, r *http.Request) {
	siteID, err := optionalInt(r, "site_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	returnAll, err := optionalBool(r, "get_all_trechos_from_site")
	if err != nil {
		writeError(w, r, err)
		return
	}

	candidates, err := s.ports.Assignment.SelectForTranslation(r.Context(), domain.SelectionOptions{
		SiteID:    siteID,
		ReturnAll: returnAll,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]candidateJSON, len(candidates))
	for i, c := range candidates {
		out[i] = candidateJSON{
			TrechoID:     c.TrechoID,
			Conteudo:     c.Conteudo,
			SnapshotName: c.SnapshotName,
			SiteID:       c.SiteID,
			SiteURL:      c.SiteURL,
			SnapshotURL:  c.SnapshotURL,
		}
	}
	writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Response: out})
}

func (s *Server) handleRegistraVideo(w http.ResponseWriter, r *http.Request) {
	interpreteID, err := requiredInt(r, "interprete_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	trechoID, err := requiredInt(r, "trecho_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, err = s.ports.Registration.RegisterVideo(r.Context(), domain.VideoRegistration{
		InterpreteID: interpreteID,
		VideoURL:     param(r, "video_url"),
		TrechoID:     trechoID,
	})
	s.metrics.registrations.WithLabelValues(registrationOutcome(err)).Inc()
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.Info("registered video for trecho %d by interprete %d", trechoID, interpreteID)
	writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK})
}

func (s *Server) handleRegistraSite(w http.ResponseWriter, r *http.Request) {
	if s.ports.Sites == nil {
		writeError(w, r, fmt.Errorf("site registration: %w", domain.ErrNotImplemented))
		return
	}
	site, created, err := s.ports.Sites.Register(r.Context(), param(r, "site_url"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, siteJSON{Status: status, SiteID: site.SiteID, SiteURL: site.SiteURL, Created: created})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.ports.Snapshots == nil || !s.ports.Snapshots.Available() {
		writeError(w, r, domain.ErrSnapshotsUnavailable)
		return
	}
	link, err := s.ports.Snapshots.URL(r.Context(), param(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, link, http.StatusTemporaryRedirect)
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrAlreadyAssigned):
		return outcomeAlreadyAssigned
	case errors.Is(err, domain.ErrPartialWrite):
		return outcomePartialWrite
	default:
		return outcomeError
	}
}

// param reads a query or form value.
func param(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func requiredInt(r *http.Request, name string) (int, error) {
	raw := param(r, name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidInput, name, raw)
	}
	return n, nil
}

func optionalInt(r *http.Request, name string) (*int, error) {
	if param(r, name) == "" {
		return nil, nil
	}
	n, err := requiredInt(r, name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// optionalBool parses common boolean spellings. Absent is false.
func optionalBool(r *http.Request, name string) (bool, error) {
	switch strings.ToLower(param(r, name)) {
	case "":
		return false, nil
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s must be a boolean", domain.ErrInvalidInput, name)
	}
}
