package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/advisor"
	"github.com/spigell/car-advisor/internal/logger"
)

const maxBodyBytes = 1 << 20

type suggestionsResponse struct {
	Cars []advisor.Suggestion `json:"cars"`
}

type summaryRequest struct {
	Make  string `json:"make"`
	Model string `json:"model"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"vehicles": s.advisor.Catalog().Len(),
	})
}

func (s *Server) getSuggestions(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()

	budget, err := validateBudget(w, vars)
	if err != nil {
		s.logger.Debug("budget validation failed", zap.Error(err))
		return
	}

	summarize, err := validateFlag(w, vars, "summarize")
	if err != nil {
		s.logger.Debug("summarize flag validation failed", zap.Error(err))
		return
	}

	s.suggest(w, r, advisor.Request{
		Keywords:   vars.Get("keywords"),
		Budget:     budget,
		Type:       vars.Get("type"),
		Size:       vars.Get("size"),
		Drivetrain: vars.Get("drivetrain"),
		Summarize:  summarize,
	})
}

func (s *Server) postSuggestions(w http.ResponseWriter, r *http.Request) {
	var req advisor.Request
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := advisor.ValidateBudget(req.Budget); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.suggest(w, r, req)
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request, req advisor.Request) {
	suggestions, err := s.advisor.Suggest(r.Context(), req)
	if err != nil {
		s.logger.Error("suggestions failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate suggestions")
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Cars: suggestions})
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.advisor.Summarize(r.Context(), req.Make, req.Model)
	if err != nil {
		s.logger.Warn("summary request failed", append(logger.VehicleFields(req.Make, req.Model), zap.Error(err))...)
		writeError(w, http.StatusBadGateway, "summary service is unavailable")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) car(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vehicle, ok := s.advisor.Lookup(vars["make"], vars["model"])
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no car found for %s %s", vars["make"], vars["model"]))
		return
	}

	writeJSON(w, http.StatusOK, advisor.Suggestion{Vehicle: *vehicle, Category: vehicle.PriceCategory()})
}

func (s *Server) listCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.advisor.Catalog().Vehicles())
}

func validateBudget(w http.ResponseWriter, vars url.Values) (*float64, error) {
	budget := strings.TrimSpace(vars.Get("budget"))
	if budget == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(budget, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("budget must be a number: %q", budget))
		return nil, err
	}
	if err := advisor.ValidateBudget(&value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, err
	}
	return &value, nil
}

func validateFlag(w http.ResponseWriter, vars url.Values, name string) (bool, error) {
	raw := strings.TrimSpace(vars.Get(name))
	if raw == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a boolean: %q", name, raw))
		return false, err
	}
	return value, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
