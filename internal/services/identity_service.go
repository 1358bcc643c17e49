package services

import (
	"database/sql"
	"errors"
	"strings"

	"shopline/internal/auth"
	"shopline/internal/domain"
	"shopline/internal/repos"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidInput       = errors.New("missing or invalid field")
	ErrNotFound           = errors.New("user not found")
)

// Session is what login-shaped operations return: the user's public fields
// plus a fresh bearer token for subsequent requests.
type Session struct {
	domain.Profile
	Token string `json:"token"`
}

// ProfilePatch carries a self-update. An empty field means "leave unchanged";
// a stored value is never overwritten with empty.
type ProfilePatch struct {
	Name     string
	Email    string
	Password string
}

// AdminPatch carries an admin update of another user. IsAdmin is a pointer so
// that an omitted flag is distinguishable from an explicit false.
type AdminPatch struct {
	Name    string
	Email   string
	IsAdmin *bool
}

// IdentityService orchestrates credential verification, hashing and token
// issuance over the user store. Privilege checks happen at the boundary
// guards; every operation here returns a typed failure, never a partial
// result.
type IdentityService struct {
	Users  *repos.UserRepo
	Tokens *auth.Tokens
}

func NewIdentityService(users *repos.UserRepo, tokens *auth.Tokens) *IdentityService {
	return &IdentityService{Users: users, Tokens: tokens}
}

// Login verifies email+password and mints a token. Unknown email and wrong
// password collapse into the same failure so callers cannot enumerate
// accounts.
func (s *IdentityService) Login(email, password string) (*Session, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, u.Hash) {
		return nil, ErrInvalidCredentials
	}
	return s.newSession(u)
}

// Register creates a record with isAdmin=false and returns a live session.
func (s *IdentityService) Register(name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if taken, err := s.emailTaken(email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateEmail
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.Insert(&domain.User{Name: name, Email: email, Hash: hash})
	if err != nil {
		return nil, err
	}
	return s.newSession(u)
}

// GetOwnProfile returns the acting user's public fields. The record can be
// gone if an admin deleted it after the token was issued.
func (s *IdentityService) GetOwnProfile(userID string) (domain.Profile, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, err
	}
	return u.Public(), nil
}

// UpdateOwnProfile merges the provided fields into a fresh snapshot, rehashes
// a new password if one was supplied, persists, and issues a fresh token.
func (s *IdentityService) UpdateOwnProfile(userID string, patch ProfilePatch) (*Session, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.mergeContact(u, patch.Name, patch.Email); err != nil {
		return nil, err
	}
	if patch.Password != "" {
		hash, err := auth.HashPassword(patch.Password)
		if err != nil {
			return nil, err
		}
		u.Hash = hash
	}
	if _, err := s.Users.Update(u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.newSession(u)
}

// ListUsers returns every record's public fields.
func (s *IdentityService) ListUsers() ([]domain.Profile, error) {
	users, err := s.Users.ListAll()
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return profiles, nil
}

func (s *IdentityService) GetUserByID(targetID string) (domain.Profile, error) {
	u, err := s.Users.ByID(targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, err
	}
	return u.Public(), nil
}

// AdminUpdateUser applies an admin patch to another user's record. No token
// is minted: the actor's own session is unaffected. An admin may flip any
// target's admin flag, including their own.
func (s *IdentityService) AdminUpdateUser(targetID string, patch AdminPatch) (domain.Profile, error) {
	u, err := s.Users.ByID(targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, err
	}
	if err := s.mergeContact(u, patch.Name, patch.Email); err != nil {
		return domain.Profile{}, err
	}
	if patch.IsAdmin != nil {
		u.IsAdmin = *patch.IsAdmin
	}
	if _, err := s.Users.Update(u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, err
	}
	return u.Public(), nil
}

func (s *IdentityService) DeleteUser(targetID string) error {
	if err := s.Users.Delete(targetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// mergeContact applies non-empty name/email onto the snapshot, checking that
// a changed email is not already taken by another account.
func (s *IdentityService) mergeContact(u *domain.User, name, email string) error {
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if email = strings.TrimSpace(email); email != "" && !strings.EqualFold(email, u.Email) {
		if taken, err := s.emailTaken(email, u.ID); err != nil {
			return err
		} else if taken {
			return ErrDuplicateEmail
		}
		u.Email = email
	}
	return nil
}

func (s *IdentityService) emailTaken(email, exceptID string) (bool, error) {
	if existing, err := s.Users.ByEmail(email); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return false, err
		}
	} else if existing.ID != exceptID {
		return true, nil
	}
	return false, nil
}

func (s *IdentityService) newSession(u *domain.User) (*Session, error) {
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Profile: u.Public(), Token: token}, nil
}
