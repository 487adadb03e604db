package services

import (
	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

const defaultPhotoPath = "/media/user-photos/default-user.webp"

var ErrBadCreds = Unauthorized("Invalid email or password")

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *TokenService
}

type RegisterInput struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	PhotoPath string  `json:"photoPath"`
	Birthdate *string `json:"birthdate"`
}

func (s *AuthService) Register(in RegisterInput) (*domain.User, error) {
	if _, ok := validate.Email(in.Email); !ok {
		return nil, BadRequest("Email should be valid")
	}
	if _, ok := validate.Username(in.Username); !ok {
		return nil, BadRequest("Username must be 3-50 characters")
	}
	if !validate.Password(in.Password) {
		return nil, BadRequest("Password must be 8-72 characters with upper, lower and digit")
	}
	if in.Birthdate != nil && !validate.Date(*in.Birthdate) {
		return nil, BadRequest("Birthdate must be a YYYY-MM-DD date")
	}

	if _, err := s.Users.ByEmail(in.Email); err == nil {
		return nil, Conflict("Email is already in use.")
	}
	if _, err := s.Users.ByUsername(in.Username); err == nil {
		return nil, Conflict("Username is already in use.")
	}

	photo := in.PhotoPath
	if photo == "" {
		photo = defaultPhotoPath
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:  in.Username,
		Email:     in.Email,
		Hash:      string(hash),
		Name:      in.Name,
		PhotoPath: photo,
		Birthdate: in.Birthdate,
	}
	if err := s.Users.Create(u); err != nil {
		// The unique indexes win races the pre-checks cannot see.
		if repos.IsUniqueViolation(err) {
			return nil, Conflict("Email or username is already in use.")
		}
		return nil, err
	}
	return u, nil
}

// Login checks credentials and returns the user plus a fresh bearer token.
// Every credential failure collapses to ErrBadCreds.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	token, err := s.Tokens.Issue(u.Email, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
