package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/vitos/crypto_gainers/internal/domain"
	"github.com/vitos/crypto_gainers/internal/usecase"
	"go.uber.org/zap"
)

type snapshotView struct {
	Entries    []domain.GainerEntry `json:"entries"`
	CapturedAt string               `json:"captured_at,omitempty"`
}

type snapshotsResponse struct {
	Current    snapshotView `json:"current"`
	Previous   snapshotView `json:"previous"`
	Overlap    []string     `json:"overlap"`
	FetchError string       `json:"fetch_error,omitempty"`
}

func toSnapshotView(s domain.Snapshot) snapshotView {
	v := snapshotView{Entries: s.Entries}
	if v.Entries == nil {
		v.Entries = []domain.GainerEntry{}
	}
	if !s.CapturedAt.IsZero() {
		v.CapturedAt = s.CapturedAt.Format(time.RFC3339)
	}
	return v
}

func overlapList(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for sym := range set {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func renderPayload(res usecase.RefreshResult) snapshotsResponse {
	payload := snapshotsResponse{
		Current:  toSnapshotView(res.Current),
		Previous: toSnapshotView(res.Previous),
		Overlap:  overlapList(res.Overlap),
	}
	if res.FetchErr != nil {
		payload.FetchError = res.FetchErr.Error()
	}
	return payload
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	current, previous := s.tracker.Snapshots()
	s.writeJSON(w, http.StatusOK, snapshotsResponse{
		Current:  toSnapshotView(current),
		Previous: toSnapshotView(previous),
		Overlap:  overlapList(domain.Overlap(current, previous)),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshInFlight) {
			s.writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("Refresh failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, renderPayload(res))
}

type insightRequest struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	GainPercent float64 `json:"gain_percent"`
}

type insightResponse struct {
	Symbol   string `json:"symbol"`
	Summary  string `json:"summary"`
	Degraded bool   `json:"degraded,omitempty"`
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	var req insightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Symbol == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	summary, err := s.insight.MarketSummary(r.Context(), domain.GainerEntry{
		Symbol:      req.Symbol,
		Price:       req.Price,
		GainPercent: req.GainPercent,
	})

	resp := insightResponse{Symbol: req.Symbol, Summary: summary}
	var failure *domain.InsightFailure
	if errors.As(err, &failure) {
		resp.Degraded = true
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	current, previous := s.tracker.Snapshots()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"current_entries":  len(current.Entries),
		"previous_entries": len(previous.Entries),
	})
}
