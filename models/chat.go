package models

import "time"

// Message roles in a conversation transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single transcript entry, either user-visible or AI-context.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Meta    string `json:"meta,omitempty"`
}

// ChatSession is the persisted audit record of one assistant conversation.
// It is independent of the in-memory dialogue state; logging failures never
// affect the turn loop.
type ChatSession struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Chat session statuses.
const (
	SessionActive    = "active"
	SessionEnded     = "ended"
	SessionSubmitted = "submitted"
)

// SessionMessage is one logged turn within a chat session.
type SessionMessage struct {
	ID         string    `bson:"id" json:"id"`
	SessionID  string    `bson:"sessionId" json:"sessionId"`
	Role       string    `bson:"role" json:"role"`
	Content    string    `bson:"content" json:"content"`
	ActionType string    `bson:"actionType,omitempty" json:"actionType,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// AssistantAction is the structured payload an AI completion may embed in its
// reply between [ACTION_JSON] markers to request draft mutations.
type AssistantAction struct {
	Action   string       `json:"action,omitempty"`
	SiteName string       `json:"siteName,omitempty"`
	Priority string       `json:"priority,omitempty"`
	Items    []ActionItem `json:"items,omitempty"`
	Notes    string       `json:"notes,omitempty"`
}

// ActionItem is one requested item inside an AssistantAction. The model may
// reference a material by id or by either name field; quantity may arrive as
// a number or a numeric string, so it is decoded loosely downstream.
type ActionItem struct {
	MaterialID   string      `json:"materialId,omitempty"`
	MaterialName string      `json:"materialName,omitempty"`
	Name         string      `json:"name,omitempty"`
	Quantity     interface{} `json:"quantity,omitempty"`
}
