package mapping

import (
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		IsActive:  m.IsActive,
	}
}
