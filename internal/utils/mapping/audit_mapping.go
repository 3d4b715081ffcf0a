package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/google/uuid"
)

// ToModelAuditLog converts a domain AuditEntry to a model AuditLog, serialising the
// old and new values as JSON. Nil values stay NULL.
func ToModelAuditLog(d domain.AuditEntry) (models.AuditLog, error) {
	oldValues, err := marshalValues(d.OldValues)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("failed to encode old values: %w", err)
	}
	newValues, err := marshalValues(d.NewValues)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("failed to encode new values: %w", err)
	}
	return models.AuditLog{
		AuditID:      uuid.NewString(),
		CompanyID:    d.CompanyID,
		ActorID:      d.ActorID,
		Action:       string(d.Action),
		ResourceType: d.ResourceType,
		ResourceID:   d.ResourceID,
		OldValues:    oldValues,
		NewValues:    newValues,
		CreatedAt:    d.RecordedAt,
	}, nil
}

func marshalValues(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
