package transcript

import (
	"errors"
	"io"
	"net/http"
	"time"
	"transcript_api/internal/middleware"
	"transcript_api/internal/observability"

	"github.com/gin-gonic/gin"
)

type TranscriptController struct {
	service TranscriptServiceInterface
}

func NewTranscriptController(service TranscriptServiceInterface) *TranscriptController {
	return &TranscriptController{
		service: service,
	}
}

// Transcribe handles POST /transcribe: a multipart audio upload is
// converted and run through the speech-to-text engine. The handler only
// runs once the auth gate has resolved a user.
func (tc *TranscriptController) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	start := time.Now()
	text, err := tc.service.TranscribeUpload(c.Request.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, ErrUnsupportedMediaType) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid file type. Only WAV or MP3 is allowed."})
			return
		}
		observability.GlobalMetrics.TranscriptionRequestsTotal.WithLabelValues("failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	observability.GlobalMetrics.TranscriptionRequestsTotal.WithLabelValues("success").Inc()
	observability.GlobalMetrics.TranscriptionDuration.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, gin.H{"transcript": text})
}

// SaveTranscript handles POST /save_transcript, persisting transcript text
// under the authenticated user's name.
func (tc *TranscriptController) SaveTranscript(c *gin.Context) {
	var req struct {
		Transcript string `json:"transcript" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	currentUser, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}

	tr, err := tc.service.Save(c.Request.Context(), currentUser.Username, req.Transcript)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	observability.GlobalMetrics.TranscriptsSavedTotal.Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Transcript saved successfully",
		"id":      tr.ID,
	})
}

// ListTranscripts handles GET /transcripts for the authenticated user.
func (tc *TranscriptController) ListTranscripts(c *gin.Context) {
	currentUser, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}

	transcripts, err := tc.service.List(c.Request.Context(), currentUser.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to get transcripts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcripts": transcripts,
		"count":       len(transcripts),
	})
}
