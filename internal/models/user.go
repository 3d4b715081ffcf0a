package models

// User is the users table row.
type User struct {
	UserID    string `db:"user_id"`
	CompanyID string `db:"company_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	IsActive  bool   `db:"is_active"`
}
