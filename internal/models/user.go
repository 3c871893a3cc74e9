package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

// User represents an application user. The admin account is a static
// record and is never part of the persisted student collection.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
	Role     UserRole `json:"role"`
	Coins    int      `json:"coins"`
	Avatar   string   `json:"avatar"`
	Badges   []string `json:"badges"`
}

// Public returns a copy safe for API responses, with the password removed.
func (u User) Public() User {
	u.Password = ""
	return u
}

// LeaderboardEntry is a ranked view over the student collection.
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Coins   int    `json:"coins"`
	Avatar  string `json:"avatar"`
	Current bool   `json:"current,omitempty"`
}
