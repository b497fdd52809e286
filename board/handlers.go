// Package board exposes the storyboard session over HTTP for the browser
// UI: generate, poll, resolve playback frames, edit clips, export.
package board

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/export"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/processing"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/session"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/timeline"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/worker"
)

// SessionHeader carries the session id both ways. The server issues one on
// the first request; the client echoes it afterwards.
const SessionHeader = "X-Session-ID"

type Handler struct {
	Sessions  *session.Manager
	Processor *worker.Processor
}

func NewHandler(sessions *session.Manager, processor *worker.Processor) *Handler {
	return &Handler{Sessions: sessions, Processor: processor}
}

// SessionMiddleware resolves (or creates) the caller's session and echoes
// its id in the response.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := h.Sessions.GetOrCreate(c.GetHeader(SessionHeader))
		c.Header(SessionHeader, sess.ID)
		c.Set("session", sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet("session").(*session.Session)
}

type GenerateRequest struct {
	Script string `json:"script" binding:"required"`
	Voice  string `json:"voice"`
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Voice == "" {
		req.Voice = generation.DefaultVoice
	}
	if !generation.ValidVoice(req.Voice) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown voice preset"})
		return
	}

	// Planning errors surface immediately; an empty script should not
	// start a run at all.
	if _, err := processing.PlanSegments(req.Script); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Script contains no sentences"})
		return
	}

	runID := h.Processor.StartRun(currentSession(c), req.Script, req.Voice)
	c.JSON(http.StatusAccepted, gin.H{
		"run_id": runID,
		"status": models.StatusGenerating,
	})
}

func (h *Handler) Status(c *gin.Context) {
	st, ok := currentSession(c).Status()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": models.StatusIdle})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":   st.RunID,
		"status":   st.Status,
		"progress": st.Progress,
	})
}

func (h *Handler) Voices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"voices": generation.Voices})
}

func (h *Handler) GetTimeline(c *gin.Context) {
	// Marshal under the session lock so a concurrent clip edit cannot
	// tear the snapshot.
	var payload []byte
	ready, err := currentSession(c).WithTimeline(func(t *models.TimelineState) error {
		var err error
		payload, err = json.Marshal(t)
		return err
	})
	if !ready {
		c.JSON(http.StatusNotFound, gin.H{"error": "No storyboard generated yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize timeline"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *Handler) Frame(c *gin.Context) {
	position, err := strconv.ParseFloat(c.Query("position"), 64)
	if err != nil || position < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position"})
		return
	}

	frame, ok := currentSession(c).Tick(position)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "No storyboard generated yet"})
		return
	}
	c.JSON(http.StatusOK, frame)
}

func (h *Handler) GetAudio(c *gin.Context) {
	// The WAV bytes are immutable after binding; only the pointer read
	// needs the lock.
	var wav []byte
	ready, _ := currentSession(c).WithTimeline(func(t *models.TimelineState) error {
		if t.Audio != nil {
			wav = t.Audio.WAV
		}
		return nil
	})
	if !ready || wav == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No audio track available"})
		return
	}
	c.Data(http.StatusOK, "audio/wav", wav)
}

func (h *Handler) GetClipImage(c *gin.Context) {
	img, ok := currentSession(c).VisualImage(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

func (h *Handler) SelectClip(c *gin.Context) {
	id := c.Param("id")
	sess := currentSession(c)

	ready, err := sess.Edit(func(e *timeline.Editor) error {
		return e.SelectAsset(id)
	})
	if !ready {
		c.JSON(http.StatusConflict, gin.H{"error": "No storyboard generated yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": id})
}

func (h *Handler) Deselect(c *gin.Context) {
	ready, _ := currentSession(c).Edit(func(e *timeline.Editor) error {
		e.Deselect()
		return nil
	})
	if !ready {
		c.JSON(http.StatusConflict, gin.H{"error": "No storyboard generated yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": ""})
}

type DurationRequest struct {
	Seconds float64 `json:"seconds"`
}

func (h *Handler) SetClipDuration(c *gin.Context) {
	id := c.Param("id")
	var req DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ready, err := currentSession(c).Edit(func(e *timeline.Editor) error {
		return e.SetDuration(id, req.Seconds)
	})
	if !ready {
		c.JSON(http.StatusConflict, gin.H{"error": "No storyboard generated yet"})
		return
	}
	switch {
	case errors.Is(err, timeline.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duration must be positive"})
	case errors.Is(err, timeline.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update clip"})
	default:
		c.JSON(http.StatusOK, gin.H{"id": id, "seconds": req.Seconds})
	}
}

func (h *Handler) SwapClip(c *gin.Context) {
	id := c.Param("id")

	ready, err := currentSession(c).Edit(func(e *timeline.Editor) error {
		return e.SwapVisual(c.Request.Context(), id)
	})
	if !ready {
		c.JSON(http.StatusConflict, gin.H{"error": "No storyboard generated yet"})
		return
	}
	switch {
	case errors.Is(err, timeline.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Clip not found"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image generation failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"id": id, "swapped": true})
	}
}

func (h *Handler) Export(c *gin.Context) {
	// Bundle under the session lock so a concurrent swap cannot replace
	// image bytes mid-archive.
	var archive []byte
	ready, err := currentSession(c).WithTimeline(func(t *models.TimelineState) error {
		var err error
		archive, err = export.Bundle(t)
		return err
	})
	if !ready {
		c.JSON(http.StatusNotFound, gin.H{"error": "No storyboard generated yet"})
		return
	}
	if err != nil {
		// Nothing partial is ever sent; the client may simply retry.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="storyboard.zip"`)
	c.Data(http.StatusOK, "application/zip", archive)
}
