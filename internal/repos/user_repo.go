package repos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shopline/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,is_admin FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,is_admin FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert persists a new record, assigning an id if the caller left it empty.
func (r *UserRepo) Insert(u *domain.User) (*domain.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.DB.Exec(`INSERT INTO users(id,email,name,password_hash,is_admin)
	                     VALUES(?,?,?,?,?)`, u.ID, u.Email, u.Name, u.Hash, u.IsAdmin)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update writes a full snapshot of the record back; the id never changes.
func (r *UserRepo) Update(u *domain.User) (*domain.User, error) {
	res, err := r.DB.Exec(`UPDATE users
	                       SET email=?, name=?, password_hash=?, is_admin=?, updated_at=CURRENT_TIMESTAMP
	                       WHERE id=?`, u.Email, u.Name, u.Hash, u.IsAdmin, u.ID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (r *UserRepo) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepo) ListAll() ([]domain.User, error) {
	var users []domain.User
	if err := r.DB.Select(&users, `SELECT id,email,name,password_hash,is_admin FROM users ORDER BY email`); err != nil {
		return nil, err
	}
	return users, nil
}
