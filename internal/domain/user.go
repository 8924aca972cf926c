package domain

type ContextKey string

const SessionContextKey ContextKey = "session"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Session is the explicit shopper/admin context every checkout and settings operation receives.
// Token is the bearer token forwarded to the commerce backend.
type Session struct {
	ID     string `json:"id"` // Client state is keyed by this value
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Token  string `json:"-"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
