package container

import (
	"database/sql"

	auditLogRepo "github.com/achmadwirra/inventory-asset/internal/auditlog"
	"github.com/achmadwirra/inventory-asset/internal/inventory/assets"
	"github.com/achmadwirra/inventory-asset/internal/inventory/assignments"
	"github.com/achmadwirra/inventory-asset/internal/inventory/category"
	"github.com/achmadwirra/inventory-asset/internal/repository"
	"github.com/achmadwirra/inventory-asset/internal/users"
	"github.com/achmadwirra/inventory-asset/pkg/auditlog"
	"github.com/achmadwirra/inventory-asset/pkg/security"
)

type Container struct {
	Repository      *repository.Repository
	AuditLog        *auditlog.Auditlog
	LoginHandler    *security.LoginHandler
	AssetHandler    *assets.AssetHandler
	CategoryHandler *category.CategoryHandler
	UserHandler     *users.UsersHandler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)
	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo)

	assetsRepo := assets.NewRepository(repo)
	assignmentRepo := assignments.NewRepository(repo)
	userRepo := users.NewRepository(repo)

	assetService := assets.NewAssetService(repo, assetsRepo, assignmentRepo, repo, auditLog)
	categoryService := category.NewCategoryService(repo, repo, auditLog)

	loginHandler := security.NewLoginHandler(repo)
	assetHandler := assets.NewAssetHandler(assetService, auditRepo, assignmentRepo)
	categoryHandler := category.NewCategoryHandler(categoryService)
	userHandler := users.NewHandler(userRepo)

	return &Container{
		Repository:      repo,
		AuditLog:        auditLog,
		LoginHandler:    loginHandler,
		AssetHandler:    assetHandler,
		CategoryHandler: categoryHandler,
		UserHandler:     userHandler,
	}
}
