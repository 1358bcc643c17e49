package domain

type User struct {
	ID      string `db:"id"`
	Email   string `db:"email"`
	Name    string `db:"name"`
	Hash    string `db:"password_hash"`
	IsAdmin bool   `db:"is_admin"`
}

// Profile is the public view of a user record. It is the only user shape
// that crosses the API boundary; the password hash never leaves the service.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func (u *User) Public() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
