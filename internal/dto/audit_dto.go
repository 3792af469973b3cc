package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditEntryResponse struct {
	Id             uuid.UUID              `json:"id"`
	ActorId        uuid.UUID              `json:"actorId"`
	ActorEmail     string                 `json:"actorEmail"`
	ActorName      string                 `json:"actorName,omitempty"`
	TargetType     string                 `json:"targetType"`
	TargetId       uuid.UUID              `json:"targetId"`
	MutationType   string                 `json:"mutationType"`
	OldValue       map[string]interface{} `json:"oldValue"`
	NewValue       map[string]interface{} `json:"newValue"`
	Reason         string                 `json:"reason"`
	NotificationId *uuid.UUID             `json:"notificationId,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// --- System Log DTOs ---

type LogListResponse struct {
	Id        string    `json:"id"` // MD5 hash of the log line, not a UUID
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}
