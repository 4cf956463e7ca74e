package users

import "time"

const RoleUser = "user"

// User es la identidad de un dueño de mascotas.
// Password guarda el hash bcrypt, nunca el texto plano.
type User struct {
	ID       int64
	Email    string
	Username string
	Password string

	Name     string
	Bio      string
	Avatar   string
	Location string
	Role     string

	CreatedAt time.Time
}

// Patch es un update parcial: nil = no tocar.
type Patch struct {
	Name     *string
	Bio      *string
	Avatar   *string
	Location *string
	Password *string
}

// Apply mezcla los campos presentes sobre u.
func (p Patch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
}

// WithDefaults completa los opcionales omitidos.
func (u User) WithDefaults() User {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u
}
