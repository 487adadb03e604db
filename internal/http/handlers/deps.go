package handlers

import (
	"stockroom/internal/config"
	"stockroom/internal/repos"
	"stockroom/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	UserRepo *repos.UserRepo
	Tokens   *services.TokenService

	UserHandler      *UserHandler
	InventoryHandler *InventoryHandler
	ProductHandler   *ProductHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	prodRepo := repos.NewProductRepo(db)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := &services.AuthService{Users: userRepo, Tokens: tokens}
	userSvc := &services.UserService{Users: userRepo, MediaDir: cfg.MediaDir}
	invSvc := services.NewInventoryService(invRepo)
	prodSvc := services.NewProductService(prodRepo, invRepo)
	statsSvc := services.NewStatsService(prodRepo, invRepo)

	return &Deps{
		UserRepo: userRepo,
		Tokens:   tokens,

		UserHandler:      &UserHandler{Auth: authSvc, Users: userSvc, Inventories: invSvc, Products: prodSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc, Stats: statsSvc},
		ProductHandler:   &ProductHandler{Prod: prodSvc, Stats: statsSvc},
	}
}
