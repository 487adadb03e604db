package services

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxPhotoBytes = 500 * 1024

type UserService struct {
	Users    *repos.UserRepo
	MediaDir string
}

type UserUpdateInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	PhotoPath *string `json:"photoPath"`
	Birthdate *string `json:"birthdate"`
}

func (s *UserService) ByID(id int64) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("User not found with ID: %d", id)
	}
	return u, err
}

func (s *UserService) All() ([]domain.UserDTO, error) {
	users, err := s.Users.All()
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, u.DTO())
	}
	return out, nil
}

// Update applies the provided fields to the user, re-checking email/username
// uniqueness when they change.
func (s *UserService) Update(id int64, in UserUpdateInput) (*domain.User, error) {
	u, err := s.ByID(id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != u.Email {
		if _, ok := validate.Email(*in.Email); !ok {
			return nil, BadRequest("Email should be valid")
		}
		if _, err := s.Users.ByEmail(*in.Email); err == nil {
			return nil, Conflict("Email is already in use.")
		}
		u.Email = *in.Email
	}
	if in.Username != nil && *in.Username != u.Username {
		if _, ok := validate.Username(*in.Username); !ok {
			return nil, BadRequest("Username must be 3-50 characters")
		}
		if _, err := s.Users.ByUsername(*in.Username); err == nil {
			return nil, Conflict("Username is already in use.")
		}
		u.Username = *in.Username
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.PhotoPath != nil {
		u.PhotoPath = *in.PhotoPath
	}
	if in.Birthdate != nil {
		if !validate.Date(*in.Birthdate) {
			return nil, BadRequest("Birthdate must be a YYYY-MM-DD date")
		}
		u.Birthdate = in.Birthdate
	}

	if err := s.Users.Update(u); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, Conflict("Email or username is already in use.")
		}
		return nil, err
	}
	return s.ByID(id)
}

func (s *UserService) UpdatePassword(id int64, password string) error {
	if _, err := s.ByID(id); err != nil {
		return err
	}
	if !validate.Password(password) {
		return BadRequest("Password must be 8-72 characters with upper, lower and digit")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(id, string(hash))
}

func (s *UserService) Delete(id int64) error {
	if _, err := s.ByID(id); err != nil {
		return err
	}
	return s.Users.DeleteCascade(id)
}

// SavePhoto validates and stores an uploaded profile photo, returning the
// public path it will be served from.
func (s *UserService) SavePhoto(data []byte) (string, error) {
	if len(data) > maxPhotoBytes {
		return "", BadRequest("File size exceeds 500 KB.")
	}
	mime := http.DetectContentType(data)
	ext := ""
	switch mime {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	default:
		return "", BadRequest("Invalid file type. Only JPG, PNG, and WEBP are allowed.")
	}

	dir := filepath.Join(s.MediaDir, "user-photos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}
	return "/media/user-photos/" + name, nil
}
