package user

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleViewer Role = "viewer"
)

// Principal is the capability-tagged session identity attached to every
// authenticated request. Role decides which mutations are allowed; the
// auction and scoring services never consult ambient global state.
type Principal struct {
	UserID  string
	Email   string
	Role    Role
	OwnerID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) CanBid() bool {
	return p.Role == RoleAdmin || p.Role == RoleOwner
}
