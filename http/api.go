package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/placefinder"
	"github.com/go-chi/chi/v5"
)

// SavePlaceRequest is the body of POST /api/places.
type SavePlaceRequest struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if utf8.RuneCountInString(query) < placefinder.MinQueryLength {
		writeJSON(w, r, http.StatusOK, []*placefinder.PlaceSuggestion{})
		return
	}

	finder, err := s.container.Finder()
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}
	suggestions, err := finder.SearchPlaces(r.Context(), query)
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}
	if suggestions == nil {
		suggestions = []*placefinder.PlaceSuggestion{}
	}
	writeJSON(w, r, http.StatusOK, suggestions)
}

func (s *Server) handleListPlaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.container.Places())
}

func (s *Server) handleSavePlace(w http.ResponseWriter, r *http.Request) {
	var req SavePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, s.logger, placefinder.Errorf(placefinder.EINVALID, "Invalid JSON body."))
		return
	}
	req.PlaceID, req.Name = strings.TrimSpace(req.PlaceID), strings.TrimSpace(req.Name)
	if req.PlaceID == "" || req.Name == "" {
		Error(w, r, s.logger, placefinder.Errorf(placefinder.EINVALID, "place_id and name required"))
		return
	}

	finder, err := s.container.Finder()
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}
	details, err := finder.FetchPlaceDetails(r.Context(), req.PlaceID, req.Name)
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	if !s.container.AddPlace(r.Context(), details) {
		existing, _ := s.container.Place(details.ID)
		writeJSON(w, r, http.StatusOK, existing)
		return
	}
	writeJSON(w, r, http.StatusCreated, details)
}

func (s *Server) handleDeletePlace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.container.DeletePlace(r.Context(), id) {
		Error(w, r, s.logger, placefinder.Errorf(placefinder.ENOTFOUND, "Place not found."))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRefreshPlace(w http.ResponseWriter, r *http.Request) {
	place, ok := s.container.Place(chi.URLParam(r, "id"))
	if !ok {
		Error(w, r, s.logger, placefinder.Errorf(placefinder.ENOTFOUND, "Place not found."))
		return
	}

	finder, err := s.container.Finder()
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}
	updated, err := finder.RefreshSummary(r.Context(), place)
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	s.container.UpdatePlace(r.Context(), updated)
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := placefinder.Export(s.container.Places())
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(data))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", placefinder.ExportFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
