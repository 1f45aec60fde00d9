package handlers

import (
	"net/http"

	chatlogRepo "matero/database/repository/chatlog"
	requestRepo "matero/database/repository/request"
	"matero/middleware"
	"matero/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler serves submitted material requests and session transcripts.
type RequestHandler struct {
	Requests requestRepo.RequestRepository
	Sessions chatlogRepo.SessionRepository
}

func NewRequestHandler(requests requestRepo.RequestRepository, sessions chatlogRepo.SessionRepository) *RequestHandler {
	return &RequestHandler{Requests: requests, Sessions: sessions}
}

// GetRequestHandler fetches one material request by id.
func (h *RequestHandler) GetRequestHandler(c *gin.Context) {
	id := c.Param("id")
	req, err := h.Requests.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.GetLogger().Error("fetch request failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Request not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListMyRequestsHandler lists the caller's submitted requests.
func (h *RequestHandler) ListMyRequestsHandler(c *gin.Context) {
	ident := middleware.SubmitterFromContext(c)
	reqs, err := h.Requests.GetBySubmitter(c.Request.Context(), ident.UserID)
	if err != nil {
		utils.GetLogger().Error("list requests failed", zap.String("userID", ident.UserID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not list requests", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

// SessionMessagesHandler returns the stored transcript of a chat session.
func (h *RequestHandler) SessionMessagesHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	msgs, err := h.Sessions.GetMessages(c.Request.Context(), sessionID)
	if err != nil {
		utils.GetLogger().Error("fetch transcript failed", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not fetch transcript", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
