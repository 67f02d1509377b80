package model

// UserProfile is the account profile returned by the auth endpoints.
// It is an opaque pass-through from the backend: stored and displayed,
// never transformed client-side.
type UserProfile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"` // user, admin, officer
	CreatedAt string `json:"created_at,omitempty"`
}
