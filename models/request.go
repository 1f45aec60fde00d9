package models

import "time"

// Priority levels accepted for a material request.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriority reports whether p is one of the accepted priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RequestItem is one material line in a draft or submitted request.
type RequestItem struct {
	MaterialID   string `bson:"materialId" json:"materialId"`
	MaterialName string `bson:"materialName" json:"materialName"`
	Quantity     int    `bson:"quantity" json:"quantity"`
}

// Draft is the in-progress material request assembled across assistant turns.
// It lives only in the conversation state record until submission.
type Draft struct {
	SiteName string        `json:"siteName"`
	Priority string        `json:"priority"`
	Items    []RequestItem `json:"items"`
	Notes    string        `json:"notes"`
}

// HasItem reports whether the draft already holds an item with the given material id.
func (d Draft) HasItem(materialID string) bool {
	for _, it := range d.Items {
		if it.MaterialID == materialID {
			return true
		}
	}
	return false
}

// Submitter identifies the authenticated user forwarding a request.
type Submitter struct {
	UserID   string `bson:"userId" json:"userId"`
	Username string `bson:"username" json:"username"`
	Role     string `bson:"role" json:"role"`
}

// MaterialRequest is the persisted, submitted form of a draft.
type MaterialRequest struct {
	ID        string        `bson:"id" json:"id"`
	SiteName  string        `bson:"siteName" json:"siteName"`
	Priority  string        `bson:"priority" json:"priority"`
	Items     []RequestItem `bson:"items" json:"items"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Submitter Submitter     `bson:"submitter" json:"submitter"`
	Status    string        `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}
