package service

import (
	"github.com/lindo/claim-system-api/internal/config"
	"github.com/lindo/claim-system-api/internal/repository"
)

type Services struct {
	Auth *AuthService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	hasher := NewBcryptHasher(cfg.BcryptCost)
	return &Services{
		Auth: NewAuthService(repos, hasher, cfg),
	}
}
