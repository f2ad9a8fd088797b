package model

// User is the dispatcher profile returned by the auth endpoints and kept
// in the session store for display in the header bar.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
