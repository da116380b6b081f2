package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/storage"
)

// StateView is the JSON shape of GET /api/state.
type StateView struct {
	State     string            `json:"state"`
	Algorithm sorting.Algorithm `json:"algorithm"`
	Size      int               `json:"size"`
	DelayMs   int64             `json:"delay_ms"`
	Paused    bool              `json:"paused"`
	Locked    bool              `json:"locked"`
	Frame     sorting.Frame     `json:"frame"`
	Last      *engine.Result    `json:"last,omitempty"`
}

type startRequest struct {
	Algorithm string `json:"algorithm"`
}

// Pointer fields tell an absent key from zero; zero and negative values are
// clamped by the controller like any other out-of-range value.
type sizeRequest struct {
	Size *int `json:"size"`
}

type speedRequest struct {
	DelayMs *int `json:"delay_ms"`
}

type arrayRequest struct {
	Values []int `json:"values" binding:"required,min=1"`
}

func (s *Server) snapshot() StateView {
	settings := s.ctrl.Settings()
	v := StateView{
		State:     s.ctrl.State().String(),
		Algorithm: s.ctrl.Algorithm(),
		Size:      settings.Size(),
		DelayMs:   settings.Delay().Milliseconds(),
		Paused:    settings.Paused(),
		Locked:    s.ctrl.Locked(),
		Frame:     s.ctrl.Frame(),
	}
	if last, ok := s.ctrl.LastResult(); ok {
		v.Last = &last
	}
	return v
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleGenerate(c *gin.Context) {
	if !s.ctrl.OnGenerate() {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is in progress"})
		return
	}
	c.JSON(http.StatusOK, s.snapshot())
}

// handleStart handles POST /api/start. The run continues after the response.
func (s *Server) handleStart(c *gin.Context) {
	var req startRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	alg := s.ctrl.Algorithm()
	if req.Algorithm != "" {
		parsed, err := sorting.ParseAlgorithm(req.Algorithm)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		alg = parsed
	}

	if s.ctrl.Locked() {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is in progress"})
		return
	}

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.run(alg)
	}()

	c.JSON(http.StatusAccepted, gin.H{"algorithm": alg})
}

func (s *Server) run(alg sorting.Algorithm) {
	res := s.ctrl.OnStart(s.ctx, alg)
	switch res.Outcome {
	case sorting.Rejected:
		log.Printf("start %s rejected: a run is in progress", alg)
		return
	case sorting.Aborted:
		log.Printf("run %d (%s) cancelled after %v", res.Token, alg, res.Elapsed.Round(time.Millisecond))
	default:
		log.Printf("run %d (%s) completed in %v: %d comparisons, %d writes",
			res.Token, alg, res.Elapsed.Round(time.Millisecond), res.Stats.Comparisons, res.Stats.Writes)
	}

	if s.recorder == nil {
		return
	}
	if last, ok := s.ctrl.LastResult(); !ok || last.Token != res.Token {
		return
	}
	frames, _ := s.recorder.Frames()
	rec := storage.NewRecord(res, s.opts.Seed, s.ctrl.Settings().Delay())
	id, err := s.store.Save(rec, frames)
	if err != nil {
		log.Printf("save run %d: %v", res.Token, err)
		return
	}
	log.Printf("saved run %s", id)
}

func (s *Server) handlePause(c *gin.Context) {
	paused := s.ctrl.OnPauseToggle()
	c.JSON(http.StatusOK, gin.H{"paused": paused, "state": s.ctrl.State().String()})
}

func (s *Server) handleReset(c *gin.Context) {
	s.ctrl.OnReset()
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleSize(c *gin.Context) {
	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Size == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size is required"})
		return
	}
	if s.ctrl.Locked() {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is in progress"})
		return
	}
	s.ctrl.OnSizeChange(*req.Size)
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleSpeed(c *gin.Context) {
	var req speedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DelayMs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delay_ms is required"})
		return
	}
	s.ctrl.OnSpeedChange(time.Duration(*req.DelayMs) * time.Millisecond)
	c.JSON(http.StatusOK, gin.H{"delay_ms": s.ctrl.Settings().Delay().Milliseconds()})
}

// handleArray handles PUT /api/array, replacing the array with caller values.
// Values are clamped into the drawable range.
func (s *Server) handleArray(c *gin.Context) {
	var req arrayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Values) > engine.MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d values", engine.MaxSize)})
		return
	}
	values := make([]int, len(req.Values))
	for i, v := range req.Values {
		values[i] = min(max(v, sorting.MinValue), sorting.MaxValue)
	}
	if !s.ctrl.OnLoad(values) {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is in progress"})
		return
	}
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleListRuns(c *gin.Context) {
	runs := []storage.RunRecord{}
	if s.store != nil {
		list, err := s.store.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
			return
		}
		runs = append(runs, list...)
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	rec, err := s.store.Load(c.Param("id"))
	if errors.Is(err, storage.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
