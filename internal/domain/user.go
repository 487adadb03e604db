package domain

type User struct {
	ID        int64   `db:"id"`
	Username  string  `db:"username"`
	Email     string  `db:"email"`
	Hash      string  `db:"password_hash"`
	Name      string  `db:"name"`
	PhotoPath string  `db:"photo_path"`
	Birthdate *string `db:"birthdate"`
	CreatedAt string  `db:"created_at"`
	UpdatedAt *string `db:"updated_at"`
}

// UserDTO is the wire shape for user records; the password hash never leaves
// the service layer.
type UserDTO struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	PhotoPath string  `json:"photoPath"`
	Birthdate *string `json:"birthdate"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

func (u User) DTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		PhotoPath: u.PhotoPath,
		Birthdate: u.Birthdate,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
