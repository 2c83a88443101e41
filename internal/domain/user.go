package domain

// User is the subset of the identity-gateway user record the relay cares
// about. The directory itself (passwords included) lives in the external
// provider; nothing here is persisted locally.
type User struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	Disabled      bool   `json:"disabled"`
}
