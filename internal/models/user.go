package models

// User represents an identity record in the remote store. Password holds
// the obfuscated form exactly as stored remotely, never the plaintext.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	CellNumber string `json:"cellNumber"`
	Password   string `json:"password,omitempty"`
}

// RegisterData carries the fields submitted when creating a new user.
type RegisterData struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	CellNumber string `json:"cellNumber"`
}

// FullName returns the user's full name
func (u *User) FullName() string {
	if u.Surname != "" {
		return u.Name + " " + u.Surname
	}
	return u.Name
}
