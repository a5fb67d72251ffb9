package server

import (
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/common"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/matcher"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/graph"
)

// duplicateConfidenceThreshold is the minimum dedupe confidence before an
// incoming profile is dropped as a duplicate during bulk ingest.
const duplicateConfidenceThreshold = 0.8

func (s *Server) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, graph.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, matcher.ErrNoTeams), errors.Is(err, matcher.ErrNoInterviewers):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) AddCandidate(c *gin.Context) {
	var profile model.CandidateProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// Fill in a recruiter-facing summary line when an LLM is available.
	if profile.Summary == "" && s.Summarizer != nil {
		summaryText, err := s.Summarizer.SummarizeCandidate(c.Request.Context(), profile)
		if err != nil {
			s.logger.Warn("failed to summarize candidate", zap.Error(err))
		} else {
			profile.Summary = summaryText
		}
	}

	if err := s.Store.SaveCandidate(c.Request.Context(), &profile); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

type bulkCandidatesRequest struct {
	Candidates []model.CandidateProfile `json:"candidates"`
}

type bulkItemFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// AddCandidatesBulk ingests a batch of candidates: duplicates of existing
// profiles are dropped, the rest are saved concurrently with per-item
// failure isolation.
func (s *Server) AddCandidatesBulk(c *gin.Context) {
	var req bulkCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Candidates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no candidates provided"})
		return
	}

	ctx := c.Request.Context()

	// Dedupe needs stable ids on the incoming side.
	for i := range req.Candidates {
		if req.Candidates[i].ID == "" {
			req.Candidates[i].ID = uuid.New().String()
		}
	}

	var duplicates []model.DuplicatePair
	skip := make(map[string]bool)
	if s.Dedupe != nil {
		existing, err := s.Store.GetAllCandidates(ctx)
		if err != nil {
			s.handleError(c, err)
			return
		}

		pairs, err := s.Dedupe.ResolveDuplicates(ctx, req.Candidates, existing)
		if err != nil {
			// Dedupe is best-effort; ingest proceeds without it.
			s.logger.Warn("deduplication failed, ingesting all candidates", zap.Error(err))
		}
		for _, p := range pairs {
			if p.Confidence >= duplicateConfidenceThreshold {
				duplicates = append(duplicates, p)
				skip[p.DuplicateID] = true
			}
		}
	}

	var toSave []*model.CandidateProfile
	for i := range req.Candidates {
		if !skip[req.Candidates[i].ID] {
			toSave = append(toSave, &req.Candidates[i])
		}
	}

	failures := s.saveCandidates(c, toSave)

	var saved []string
	failed := make(map[string]bool, len(failures))
	for _, f := range failures {
		failed[f.ID] = true
	}
	for _, p := range toSave {
		if !failed[p.ID] {
			saved = append(saved, p.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"saved":      saved,
		"duplicates": duplicates,
		"failures":   failures,
	})
}

func (s *Server) saveCandidates(c *gin.Context, profiles []*model.CandidateProfile) []bulkItemFailure {
	workers := s.Config.Concurrency.BulkIngest
	if workers <= 0 {
		workers = 4
	}
	if workers > len(profiles) {
		workers = len(profiles)
	}

	errs := make([]error, len(profiles))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = s.Store.SaveCandidate(c.Request.Context(), profiles[i])
			}
		}()
	}
	for i := range profiles {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var failures []bulkItemFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, bulkItemFailure{ID: profiles[i].ID, Error: err.Error()})
		}
	}
	return failures
}

func (s *Server) GetCandidate(c *gin.Context) {
	profile, err := s.Store.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) AddTeam(c *gin.Context) {
	var profile model.TeamProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := s.Store.SaveTeam(c.Request.Context(), &profile); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (s *Server) GetTeam(c *gin.Context) {
	profile, err := s.Store.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) AddPosition(c *gin.Context) {
	var profile model.PositionProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := s.Store.SavePosition(c.Request.Context(), &profile); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (s *Server) GetPosition(c *gin.Context) {
	profile, err := s.Store.GetPosition(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) AddInterviewer(c *gin.Context) {
	var profile model.InterviewerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if profile.TeamID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_id is required"})
		return
	}

	if err := s.Store.SaveInterviewer(c.Request.Context(), &profile); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (s *Server) GetInterviewer(c *gin.Context) {
	profile, err := s.Store.GetInterviewer(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type matchTeamRequest struct {
	CandidateID string `json:"candidate_id"`
}

func (s *Server) MatchTeam(c *gin.Context) {
	var req matchTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CandidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate_id is required"})
		return
	}

	result, err := s.Matcher.MatchToTeam(c.Request.Context(), req.CandidateID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type matchTeamBatchRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

type matchBatchItem struct {
	CandidateID string             `json:"candidate_id"`
	Result      *model.MatchResult `json:"result,omitempty"`
	Error       string             `json:"error,omitempty"`
}

func (s *Server) MatchTeamBatch(c *gin.Context) {
	var req matchTeamBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.CandidateIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate_ids is required"})
		return
	}

	results := s.Matcher.MatchBatch(c.Request.Context(), req.CandidateIDs, s.Config.Concurrency.BatchMatch)

	items := make([]matchBatchItem, len(results))
	for i, r := range results {
		items[i] = matchBatchItem{CandidateID: r.CandidateID, Result: r.Result}
		if r.Err != nil {
			items[i].Error = r.Err.Error()
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}

type matchPersonRequest struct {
	CandidateID string `json:"candidate_id"`
	TeamID      string `json:"team_id"`
}

func (s *Server) MatchPerson(c *gin.Context) {
	var req matchPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CandidateID == "" || req.TeamID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate_id and team_id are required"})
		return
	}

	result, err := s.Matcher.MatchToPerson(c.Request.Context(), req.CandidateID, req.TeamID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type decisionRequest struct {
	CandidateID   string              `json:"candidate_id"`
	PositionID    string              `json:"position_id"`
	ExtractedInfo model.ExtractedInfo `json:"extracted_info"`
}

func (s *Server) MakeDecision(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CandidateID == "" || req.PositionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate_id and position_id are required"})
		return
	}

	d, err := s.Engine.MakeDecision(c.Request.Context(), req.CandidateID, req.PositionID, req.ExtractedInfo)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type evaluateRequest struct {
	CandidateID string `json:"candidate_id"`
	PositionID  string `json:"position_id"`
	Transcript  string `json:"transcript"`
}

// EvaluateInterview runs the full phone-screen flow: extract signals from the
// transcript, then decide against the position.
func (s *Server) EvaluateInterview(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CandidateID == "" || req.PositionID == "" || req.Transcript == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate_id, position_id and transcript are required"})
		return
	}
	if s.Extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return
	}

	info, err := s.Extractor.ExtractSignals(c.Request.Context(), req.Transcript)
	if err != nil {
		s.handleError(c, err)
		return
	}

	d, err := s.Engine.MakeDecision(c.Request.Context(), req.CandidateID, req.PositionID, *info)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"decision": d, "extracted_info": info})
}

type poolResponse struct {
	Name         string   `json:"name,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	CandidateIDs []string `json:"candidate_ids"`
}

// ListPools clusters the current candidate base into talent pools. With
// ?summaries=true and an LLM configured, each pool also gets a generated
// summary and name.
func (s *Server) ListPools(c *gin.Context) {
	candidates, err := s.Store.GetAllCandidates(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	pools := s.Pools.Detect(candidates)
	withSummaries := c.Query("summaries") == "true" && s.Summarizer != nil

	out := make([]poolResponse, 0, len(pools))
	for _, members := range pools {
		resp := poolResponse{}
		for _, m := range members {
			resp.CandidateIDs = append(resp.CandidateIDs, m.ID)
		}

		if withSummaries {
			summaryText, err := s.Summarizer.SummarizePool(c.Request.Context(), members)
			if err != nil {
				s.logger.Warn("failed to summarize pool", zap.Error(err))
			} else {
				resp.Summary = summaryText
				if name, err := s.Summarizer.GeneratePoolName(c.Request.Context(), summaryText); err == nil {
					resp.Name = name
				}
			}
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, gin.H{"pools": out})
}

type shortlistRequest struct {
	PositionID string `json:"position_id"`
	Limit      int    `json:"limit"`
	Rerank     bool   `json:"rerank"`
}

type shortlistItem struct {
	CandidateID string  `json:"candidate_id"`
	Score       float64 `json:"score"`
}

// Shortlist ranks the candidate base against a position by embedding
// similarity, optionally refined by the LLM reranker.
func (s *Server) Shortlist(c *gin.Context) {
	var req shortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PositionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position_id is required"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	ctx := c.Request.Context()

	position, err := s.Store.GetPosition(ctx, req.PositionID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	candidates, err := s.Store.GetAllCandidates(ctx)
	if err != nil {
		s.handleError(c, err)
		return
	}

	items := make([]shortlistItem, 0, len(candidates))
	byID := make(map[string]model.CandidateProfile, len(candidates))
	for _, cand := range candidates {
		items = append(items, shortlistItem{
			CandidateID: cand.ID,
			Score:       common.ClippedSimilarity(position.Embedding, cand.Embedding),
		})
		byID[cand.ID] = cand
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if len(items) > req.Limit {
		items = items[:req.Limit]
	}

	if req.Rerank && s.Reranker != nil {
		docs := make([]string, len(items))
		for i, item := range items {
			cand := byID[item.CandidateID]
			docs[i] = cand.Name + ": " + cand.EmbeddingText()
		}

		query := position.Title + " " + position.EmbeddingText()
		order, err := s.Reranker.Rank(ctx, query, docs)
		if err == nil && len(order) > 0 {
			reranked := make([]shortlistItem, 0, len(items))
			for _, idx := range order {
				reranked = append(reranked, items[idx])
			}
			items = reranked
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"position_id": req.PositionID,
		"shortlist":   items,
	})
}
