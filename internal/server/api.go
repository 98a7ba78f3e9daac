package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TobiSchelling/ReelIQ/internal/benchmark"
	"github.com/TobiSchelling/ReelIQ/internal/coach"
	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/ingest"
	"github.com/TobiSchelling/ReelIQ/internal/patterns"
	"github.com/TobiSchelling/ReelIQ/internal/prescore"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
	"github.com/TobiSchelling/ReelIQ/internal/rollup"
)

const maxBodyBytes = 5 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func wantAI(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("ai"))
	return v
}

func (s *Server) userReels(w http.ResponseWriter) ([]reel.Reel, bool) {
	reels, err := s.db.GetUserReels(s.opts.UserID)
	if err != nil {
		log.Printf("Error loading reels: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load reels")
		return nil, false
	}
	return reels, true
}

func (s *Server) handleListReels(w http.ResponseWriter, r *http.Request) {
	reels, ok := s.userReels(w)
	if !ok {
		return
	}
	if reels == nil {
		reels = []reel.Reel{}
	}
	writeJSON(w, http.StatusOK, reels)
}

func (s *Server) handleAddReel(w http.ResponseWriter, r *http.Request) {
	var in diagnostic.Input
	if !decode(w, r, &in) {
		return
	}
	provider := s.opts.Provider
	if !wantAI(r) {
		provider = nil
	}

	added, err := ingest.Add(r.Context(), s.db, provider, s.opts.UserID, in)
	if err != nil {
		log.Printf("Error adding reel: %v", err)
		writeError(w, http.StatusInternalServerError, "could not store reel")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"reel":       added.Reel,
		"diagnostic": added.Result,
		"ai_report":  added.Report,
	})
}

func (s *Server) reelID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reel id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleGetReel(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reelID(w, r)
	if !ok {
		return
	}
	rl, err := s.db.GetReel(s.opts.UserID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load reel")
		return
	}
	if rl == nil {
		writeError(w, http.StatusNotFound, "reel not found")
		return
	}
	writeJSON(w, http.StatusOK, rl)
}

func (s *Server) handleDeleteReel(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reelID(w, r)
	if !ok {
		return
	}
	deleted, err := s.db.DeleteReel(s.opts.UserID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not delete reel")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "reel not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	res, err := ingest.Import(r.Context(), s.db, s.opts.UserID, body, s.opts.Workers)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "CSV file too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	skipped := make([]string, 0, len(res.Skipped))
	for _, e := range res.Skipped {
		skipped = append(skipped, e.Error())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"imported": res.Imported,
		"ids":      res.IDs,
		"skipped":  skipped,
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var in diagnostic.Input
	if !decode(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, diagnostic.Run(in))
}

func (s *Server) handlePreScore(w http.ResponseWriter, r *http.Request) {
	var in prescore.Input
	if !decode(w, r, &in) {
		return
	}
	res := prescore.Run(in)
	resp := map[string]any{"prescore": res}
	if wantAI(r) {
		resp["tips"] = coach.GenerateTips(r.Context(), s.opts.Provider, res)
	}
	writeJSON(w, http.StatusOK, resp)
}

type briefRequest struct {
	Topic string `json:"topic"`
	Goal  string `json:"goal"`
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	var req briefRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	reels, ok := s.userReels(w)
	if !ok {
		return
	}
	brief := coach.GenerateBrief(r.Context(), s.opts.Provider, req.Topic, req.Goal, patterns.Compute(reels))
	writeJSON(w, http.StatusOK, map[string]string{"brief": brief})
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	reels, ok := s.userReels(w)
	if !ok {
		return
	}
	p := patterns.Compute(reels)
	resp := map[string]any{"patterns": p}
	if wantAI(r) {
		resp["ai"] = patterns.GenerateAIContent(r.Context(), s.opts.Provider, p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	now := s.now().UTC()
	year, month := now.Year(), now.Month()
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(m)
	}

	reels, ok := s.userReels(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rollup.ComputeMonthly(reels, year, month))
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	reels, ok := s.userReels(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rollup.BuildDigest(reels, s.opts.Email, s.now()))
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	reels, ok := s.userReels(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, benchmark.ComputeReport(reels))
}
