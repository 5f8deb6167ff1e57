package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"journey-dispatch-service/internal/api/dto"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/ports"
	"journey-dispatch-service/internal/services"
	"log"
	"net/http"
	"strings"
)

// JourneyHandler exposes the sequencing pipeline over HTTP: previews,
// real submissions, and retrieval of persisted journeys.
type JourneyHandler struct {
	Previews *services.PreviewService
	Submits  *services.SubmitService
	Repo     ports.JourneyRepository
}

// Preview assembles the dispatch envelope without submitting anything.
func (h *JourneyHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	journey, ok := h.decodeJourney(w, r)
	if !ok {
		return
	}

	env, err := h.Previews.Preview(r.Context(), journey)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, envelopeToResponse(env))
}

// Collection dispatches /journeys by method: POST submits a journey to
// the dispatch API, GET lists persisted journeys.
func (h *JourneyHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.submit(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *JourneyHandler) submit(w http.ResponseWriter, r *http.Request) {
	journey, ok := h.decodeJourney(w, r)
	if !ok {
		return
	}

	accepted, env, err := h.Submits.Submit(r.Context(), journey)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}

	res := dto.SubmitResponse{
		JourneyID:       accepted.ID,
		JourneyServerID: accepted.ServerID,
		Envelope:        envelopeToResponse(env),
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *JourneyHandler) list(w http.ResponseWriter, r *http.Request) {
	journeys, err := h.Repo.ListJourneys(r.Context())
	if err != nil {
		log.Printf("list journeys failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListJourneysResponse{
		Journeys: make([]dto.JourneySummaryResponse, 0, len(journeys)),
	}
	for _, j := range journeys {
		res.Journeys = append(res.Journeys, journeyToSummary(j))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get serves /journeys/{id}: the persisted journey re-sequenced into a
// fresh envelope, so editing screens always render from stored truth.
func (h *JourneyHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/journeys/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	journey, err := h.Repo.GetJourney(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrJourneyNotFound) {
			writeError(w, r, http.StatusNotFound, "journey not found")
			return
		}
		log.Printf("get journey failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	env, err := h.Previews.Preview(r.Context(), *journey)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, envelopeToResponse(env))
}

// decodeJourney parses and validates the request body; on failure the
// error response has already been written.
func (h *JourneyHandler) decodeJourney(w http.ResponseWriter, r *http.Request) (domain.Journey, bool) {
	var req dto.JourneyRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return domain.Journey{}, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return domain.Journey{}, false
	}

	journey, err := journeyFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Journey{}, false
	}

	return journey, true
}

func (h *JourneyHandler) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNoPickup) {
		writeError(w, r, http.StatusUnprocessableEntity, "cannot create a journey with no pickups")
		return
	}

	log.Printf("journey pipeline failed: %v", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
