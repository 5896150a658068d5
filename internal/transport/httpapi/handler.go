package httpapi

import (
	"errors"
	"net/http"

	"github.com/askhatov/lossbot/internal/domain/event"
	"github.com/askhatov/lossbot/internal/engine"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler delivers transport events into the workflow engine. It is a
// thin shim: the engine owns all conversation logic, the handler only
// converts between JSON and the engine's event types.
type Handler struct {
	engine *engine.Engine
	store  engine.IncidentStore
	limit  int
	logger *zap.Logger
}

// NewHandler creates a new transport handler.
func NewHandler(eng *engine.Engine, store engine.IncidentStore, openLimit int, logger *zap.Logger) *Handler {
	return &Handler{
		engine: eng,
		store:  store,
		limit:  openLimit,
		logger: logger,
	}
}

// InboundRequest is one user input: free text or a selection token,
// never both.
type InboundRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Text           string `json:"text"`
	Token          string `json:"token"`
}

// HandleEvent processes one inbound event and responds with the prompt
// to render.
func (h *Handler) HandleEvent(c *gin.Context) {
	var req InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if (req.Text == "") == (req.Token == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of text or token is required"})
		return
	}

	var in event.Inbound
	if req.Token != "" {
		in = event.NewSelection(req.Token)
	} else {
		in = event.NewText(req.Text)
	}

	prompt, err := h.engine.HandleEvent(c.Request.Context(), req.ConversationID, in)
	if err != nil {
		// The engine still produced a user-facing prompt; report the
		// failure class alongside it.
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrAlreadyClosed) {
			status = http.StatusConflict
		}
		h.logger.Error("event handling failed",
			zap.String("conversation_id", req.ConversationID),
			zap.Error(err))
		c.JSON(status, gin.H{"prompt": prompt, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}

// ListOpenIncidents exposes the open-incident list for monitoring.
func (h *Handler) ListOpenIncidents(c *gin.Context) {
	opens, err := h.store.ListOpen(c.Request.Context(), h.limit)
	if err != nil {
		h.logger.Error("failed to list open incidents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list open incidents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"incidents": opens})
}
