package server

import (
	"encoding/json"
	"net/http"

	"github.com/compmotifs/likeminds/internal/recommender"
	"github.com/compmotifs/likeminds/pkg/errors"
)

type recommendationRequest struct {
	Reference       string `json:"reference"`
	Seed            string `json:"seed"`
	Strategy        string `json:"strategy"`
	TopN            int    `json:"top_n"`
	PerAccountLikes int    `json:"per_account_likes"`
	ApplyFilter     bool   `json:"apply_filter"`
	ExcludeFollowed bool   `json:"exclude_followed"`
	MaxSeedAccounts int    `json:"max_seed_accounts"`
}

type rankedAccountDTO struct {
	DID    string  `json:"did"`
	Handle string  `json:"handle,omitempty"`
	Score  float64 `json:"score"`
}

type failureDTO struct {
	Account string `json:"account"`
	Error   string `json:"error"`
}

type recommendationResponse struct {
	Results        []rankedAccountDTO `json:"results"`
	Failed         []failureDTO       `json:"failed,omitempty"`
	RemovedByTopic int                `json:"removed_by_topic"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrInvalidInput, "malformed request body"))
		return
	}

	rec, err := s.Recommender.Recommend(r.Context(), recommender.Request{
		Reference:       req.Reference,
		SeedInput:       req.Seed,
		Strategy:        recommender.Strategy(req.Strategy),
		TopN:            req.TopN,
		PerAccountLikes: req.PerAccountLikes,
		ApplyFilter:     req.ApplyFilter,
		ExcludeFollowed: req.ExcludeFollowed,
		MaxSeedAccounts: req.MaxSeedAccounts,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := recommendationResponse{
		Results:        make([]rankedAccountDTO, 0, len(rec.Results)),
		RemovedByTopic: len(rec.RemovedByTopic),
	}
	for _, result := range rec.Results {
		resp.Results = append(resp.Results, rankedAccountDTO{
			DID:    result.Account.DID,
			Handle: result.Account.Handle,
			Score:  result.Score,
		})
	}
	for _, failure := range rec.Failed {
		resp.Failed = append(resp.Failed, failureDTO{
			Account: failure.Account.Label(),
			Error:   failure.Err.Error(),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type likersRequest struct {
	Post      string `json:"post"`
	MaxLikers int    `json:"max_likers"`
}

type likerDTO struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name,omitempty"`
}

func (s *Server) handleLikers(w http.ResponseWriter, r *http.Request) {
	var req likersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrInvalidInput, "malformed request body"))
		return
	}
	if req.MaxLikers <= 0 {
		req.MaxLikers = 100
	}

	likers, err := s.Collector.ExtractLikers(r.Context(), req.Post, req.MaxLikers, s.Config.Bluesky.InterPageDelay)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]likerDTO, 0, len(likers))
	for _, liker := range likers {
		out = append(out, likerDTO{DID: liker.DID, Handle: liker.Handle, DisplayName: liker.DisplayName})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrInvalidInput), errors.Is(err, errors.ErrInvalidReference):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrResolution):
		status = http.StatusUnprocessableEntity
	default:
		if _, ok := errors.IsFetch(err); ok {
			status = http.StatusBadGateway
		}
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
