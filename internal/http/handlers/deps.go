package handlers

import (
	"shopline/internal/auth"
	"shopline/internal/repos"
	"shopline/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Users        *repos.UserRepo
	Identity     *services.IdentityService
	AuthHandler  *AuthHandler
	UserHandler  *UserHandler
	AdminHandler *AdminHandler
}

func NewDeps(db *sqlx.DB, tokens *auth.Tokens) *Deps {
	users := repos.NewUserRepo(db)
	identity := services.NewIdentityService(users, tokens)

	return &Deps{
		Users:        users,
		Identity:     identity,
		AuthHandler:  &AuthHandler{Identity: identity},
		UserHandler:  &UserHandler{Identity: identity},
		AdminHandler: &AdminHandler{Identity: identity},
	}
}
