package entity

// User is the authenticated account. The /me/ endpoint returns the user
// together with its shop profile.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Shop      *Shop  `json:"shop,omitempty"`
}

// StaffMember is a shop staff account managed by the owner.
type StaffMember struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
