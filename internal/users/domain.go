// Package users defines the directory record and the REST client for the
// remote users resource.
package users

// User represents a directory entry as returned by the backend.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Draft is a user that has not been assigned an id yet.
type Draft struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// WithID turns the draft into a user record carrying id.
func (d Draft) WithID(id int64) User {
	return User{ID: id, Name: d.Name, Username: d.Username, Email: d.Email}
}

// Overlay returns u with every non-empty field of confirmed applied on top.
// A zero id in confirmed keeps the id of u.
func (u User) Overlay(confirmed User) User {
	if confirmed.ID != 0 {
		u.ID = confirmed.ID
	}
	if confirmed.Name != "" {
		u.Name = confirmed.Name
	}
	if confirmed.Username != "" {
		u.Username = confirmed.Username
	}
	if confirmed.Email != "" {
		u.Email = confirmed.Email
	}
	return u
}
