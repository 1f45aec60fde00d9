package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"matero/middleware"
	"matero/services/assistant"
	"matero/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the conversational assistant over HTTP.
type AssistantHandler struct {
	Service assistant.AssistantService
}

func NewAssistantHandler(svc assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{Service: svc}
}

// TurnRequest is one user chat message.
type TurnRequest struct {
	Text string `json:"text" binding:"required"`
}

// StartSessionHandler begins (or restarts) a conversation.
func (h *AssistantHandler) StartSessionHandler(c *gin.Context) {
	ident := middleware.SubmitterFromContext(c)

	result, err := h.Service.StartSession(c.Request.Context(), ident)
	if err != nil {
		utils.GetLogger().Error("start session failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not start a session", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// EndSessionHandler closes the caller's conversation.
func (h *AssistantHandler) EndSessionHandler(c *gin.Context) {
	ident := middleware.SubmitterFromContext(c)

	if err := h.Service.EndSession(c.Request.Context(), ident); err != nil {
		utils.GetLogger().Error("end session failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not end the session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

// MessageHandler processes one turn and answers with the full result.
func (h *AssistantHandler) MessageHandler(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	ident := middleware.SubmitterFromContext(c)

	result, err := h.Service.HandleTurn(c.Request.Context(), ident, req.Text, nil)
	if err != nil {
		utils.GetLogger().Error("turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not process the message", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// StreamMessageHandler processes one turn, relaying incremental AI text as
// SSE "chunk" events and closing with a "done" event holding the result.
func (h *AssistantHandler) StreamMessageHandler(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	ident := middleware.SubmitterFromContext(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	onChunk := func(text string) {
		writeSSE(c.Writer, "chunk", gin.H{"text": text})
		c.Writer.Flush()
	}

	result, err := h.Service.HandleTurn(c.Request.Context(), ident, req.Text, onChunk)
	if err != nil {
		writeSSE(c.Writer, "error", gin.H{"error": err.Error()})
		c.Writer.Flush()
		return
	}

	writeSSE(c.Writer, "done", result)
	c.Writer.Flush()
}

// writeSSE writes a single server-sent event.
func writeSSE(w gin.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
