package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,username,email,password_hash,name,photo_path,birthdate,created_at,updated_at`

func (r *UserRepo) Create(u *domain.User) error {
	res, err := r.DB.Exec(`
		INSERT INTO users(username,email,password_hash,name,photo_path,birthdate)
		VALUES(?,?,?,?,?,?)`,
		u.Username, u.Email, u.Hash, u.Name, u.PhotoPath, u.Birthdate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return r.DB.Get(u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(username)=LOWER(?)`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) All() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY id`)
	return out, err
}

func (r *UserRepo) Update(u *domain.User) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET username=?, email=?, name=?, photo_path=?, birthdate=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		u.Username, u.Email, u.Name, u.PhotoPath, u.Birthdate, u.ID)
	return err
}

func (r *UserRepo) UpdatePassword(id int64, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, hash, id)
	return err
}

// DeleteCascade removes the user together with owned inventories and
// products. Product rows go first so the inventory FK never dangles.
func (r *UserRepo) DeleteCascade(userID int64) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM products WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM inventories WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id=?`, userID); err != nil {
		return err
	}

	return tx.Commit()
}
