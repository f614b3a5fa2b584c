package domain

// Principal is the identity derived from a validated token for one request.
// A nil *Principal means the request is anonymous.
type Principal struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
