package models

// UserSummary is the public part of a user returned by login and admin create
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Summary returns the public fields of u
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// UserCreatedResponse is returned when an administrator creates a user
type UserCreatedResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// StoreCreatedResponse is returned when a store is added
type StoreCreatedResponse struct {
	Message string `json:"message"`
	Store   *Store `json:"store"`
}
