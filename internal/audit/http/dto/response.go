// Package dto maps audit records to API responses.
package dto

import (
	"time"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
)

// AuditLogResponse represents an audit record in API responses.
type AuditLogResponse struct {
	ID            string    `json:"id"`
	EventTime     time.Time `json:"event_time"`
	Actor         string    `json:"actor"`
	PrincipalID   *string   `json:"principal_id,omitempty"`
	Action        string    `json:"action"`
	Outcome       string    `json:"outcome"`
	ClientAddress string    `json:"client_address"`
	Path          string    `json:"path"`
	Method        string    `json:"method"`
	Message       string    `json:"message,omitempty"`
	IsSigned      bool      `json:"is_signed"`
}

// MapAuditLogToResponse converts a domain audit record to an API response.
func MapAuditLogToResponse(record *auditDomain.AuditRecord) AuditLogResponse {
	response := AuditLogResponse{
		ID:            record.ID.String(),
		EventTime:     record.EventTime,
		Actor:         record.Actor,
		Action:        record.Action,
		Outcome:       string(record.Outcome),
		ClientAddress: record.ClientAddress,
		Path:          record.Path,
		Method:        record.Method,
		Message:       record.Message,
		IsSigned:      record.IsSigned,
	}
	if record.PrincipalID != nil {
		principalID := record.PrincipalID.String()
		response.PrincipalID = &principalID
	}
	return response
}

// ListAuditLogsResponse represents a page of audit records.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogsToListResponse converts domain audit records to a list API response.
func MapAuditLogsToListResponse(records []*auditDomain.AuditRecord) ListAuditLogsResponse {
	data := make([]AuditLogResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapAuditLogToResponse(record))
	}
	return ListAuditLogsResponse{Data: data}
}
