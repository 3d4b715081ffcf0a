package memory

import (
	"fmt"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Seed is the on-disk fixture format accepted by LoadSeed (YAML or JSON).
type Seed struct {
	Companies []struct {
		ID           string `mapstructure:"id"`
		Name         string `mapstructure:"name"`
		BaseCurrency string `mapstructure:"base_currency"`
	} `mapstructure:"companies"`
	Users []struct {
		ID        string `mapstructure:"id"`
		CompanyID string `mapstructure:"company_id"`
		FirstName string `mapstructure:"first_name"`
		LastName  string `mapstructure:"last_name"`
		Email     string `mapstructure:"email"`
		Inactive  bool   `mapstructure:"inactive"`
	} `mapstructure:"users"`
	Categories []struct {
		ID        string `mapstructure:"id"`
		CompanyID string `mapstructure:"company_id"`
		Name      string `mapstructure:"name"`
	} `mapstructure:"categories"`
	Rules []struct {
		ID         string  `mapstructure:"id"`
		CompanyID  string  `mapstructure:"company_id"`
		CategoryID *string `mapstructure:"category_id"`
		ApproverID string  `mapstructure:"approver_id"`
		Type       string  `mapstructure:"type"`
		Sequential bool    `mapstructure:"sequential"`
		OrderIndex int     `mapstructure:"order_index"`
	} `mapstructure:"rules"`
	Expenses []struct {
		ID          string `mapstructure:"id"`
		CompanyID   string `mapstructure:"company_id"`
		UserID      string `mapstructure:"user_id"`
		CategoryID  string `mapstructure:"category_id"`
		Description string `mapstructure:"description"`
		Amount      string `mapstructure:"amount"`
		Currency    string `mapstructure:"currency"`
	} `mapstructure:"expenses"`
}

// LoadSeed reads a fixture file and inserts its records. Expenses are created as drafts.
func (s *Store) LoadSeed(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seed Seed
	if err := v.Unmarshal(&seed); err != nil {
		return fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return s.ApplySeed(seed, time.Now().UTC())
}

// ApplySeed inserts the records of seed, stamping them with now.
func (s *Store) ApplySeed(seed Seed, now time.Time) error {
	for _, c := range seed.Companies {
		s.SaveCompany(domain.Company{CompanyID: c.ID, Name: c.Name, BaseCurrency: c.BaseCurrency, IsActive: true})
	}
	for _, u := range seed.Users {
		if err := s.requireCompany("user", u.ID, u.CompanyID); err != nil {
			return err
		}
		s.SaveUser(domain.User{
			UserID:    u.ID,
			CompanyID: u.CompanyID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			IsActive:  !u.Inactive,
		})
	}
	for _, c := range seed.Categories {
		if err := s.requireCompany("category", c.ID, c.CompanyID); err != nil {
			return err
		}
		s.SaveCategory(domain.Category{CategoryID: c.ID, CompanyID: c.CompanyID, Name: c.Name, IsActive: true})
	}
	for _, r := range seed.Rules {
		t := domain.ApprovalType(r.Type)
		if !t.IsValid() {
			return fmt.Errorf("rule %s: unknown approval type %q", r.ID, r.Type)
		}
		if err := s.requireCompany("rule", r.ID, r.CompanyID); err != nil {
			return err
		}
		s.SaveRule(domain.ApprovalRule{
			RuleID:       r.ID,
			CompanyID:    r.CompanyID,
			CategoryID:   r.CategoryID,
			ApproverID:   r.ApproverID,
			ApprovalType: t,
			IsSequential: r.Sequential,
			OrderIndex:   r.OrderIndex,
			IsActive:     true,
			CreatedAt:    now,
		})
	}
	for _, e := range seed.Expenses {
		if err := s.requireCompany("expense", e.ID, e.CompanyID); err != nil {
			return err
		}
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return fmt.Errorf("expense %s: invalid amount %q: %w", e.ID, e.Amount, err)
		}
		s.SaveExpense(domain.Expense{
			ExpenseID:   e.ID,
			CompanyID:   e.CompanyID,
			UserID:      e.UserID,
			CategoryID:  e.CategoryID,
			Description: e.Description,
			Amount:      amount,
			Currency:    e.Currency,
			Status:      domain.ExpenseDraft,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return nil
}

// requireCompany mirrors the company foreign keys of the Postgres schema.
func (s *Store) requireCompany(kind, id, companyID string) error {
	s.mu.RLock()
	_, ok := s.companies[companyID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s %s: unknown company %q", kind, id, companyID)
	}
	return nil
}
