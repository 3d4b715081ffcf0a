package domain

// User is the subset of identity data the approval engine needs.
type User struct {
	UserID    string `json:"userID"`
	CompanyID string `json:"companyID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
}

// DisplayName returns "First Last", falling back to the user ID.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.UserID
	}
}

// Company is the tenant an expense, its rules and its approvers belong to.
type Company struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	BaseCurrency string `json:"baseCurrency"`
	IsActive     bool   `json:"isActive"`
}
