package httpserver

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assetbase/internal/audit"
	"assetbase/internal/auth"
	"assetbase/internal/http/handlers"
	"assetbase/internal/logging"
	"assetbase/internal/models"
	"assetbase/internal/onboarding"
	"assetbase/internal/rbac"
	"assetbase/internal/storage"
	"assetbase/internal/tenancy"
)

// NewRouter wires the full API surface. Reads need only authentication;
// every tenant-owned mutation declares its catalog permission here, and
// catalog mutation is superuser-gated.
func NewRouter(stores *storage.Stores, tokens *auth.Service, logger *zap.Logger) *gin.Engine {
	db := stores.Main

	directory := tenancy.NewDirectory(db)
	checker := rbac.NewChecker(db)
	guard := rbac.NewGuard(checker)
	roles := rbac.NewRoles(db)
	recorder := audit.NewRecorder(stores.For(&models.AuditRecord{}))
	registrar := onboarding.NewService(db)

	departments := tenancy.NewStore[models.Department](db)
	positions := tenancy.NewStore[models.Position](db)
	categories := tenancy.NewStore[models.AssetCategory](db)
	statuses := tenancy.NewStore[models.AssetStatus](db)
	locations := tenancy.NewStore[models.Location](db)
	vendors := tenancy.NewStore[models.Vendor](db)
	assets := tenancy.NewStore[models.FixedAsset](db)
	budgets := tenancy.NewStore[models.Budget](db)

	r := gin.New()
	r.Use(logging.Recovery(logger), logging.RequestLogger(logger))

	// Public routes.
	r.POST("/api/v1/auth/login", handlers.Login(tokens))
	r.POST("/api/v1/auth/refresh", handlers.Refresh(tokens))
	r.POST("/api/v1/tenants/register", handlers.RegisterTenant(registrar))

	authMW := auth.Middleware(tokens, db, directory)
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/me", handlers.Me())
		api.GET("/me/permissions", handlers.MyPermissions(checker))

		// Tenancy administration (system operators).
		api.GET("/tenants", guard.SuperuserOnly(), handlers.ListTenants(db))
		api.DELETE("/tenants/:id", guard.SuperuserOnly(), handlers.DeleteTenant(db))

		// Permission catalog: read for anyone authenticated, mutation
		// for superusers only, never via a named permission.
		api.GET("/permissions", handlers.ListPermissions(db))
		api.POST("/permissions", guard.SuperuserOnly(), handlers.CreatePermission(db))
		api.PUT("/permissions/:id", guard.SuperuserOnly(), handlers.UpdatePermission(db))
		api.DELETE("/permissions/:id", guard.SuperuserOnly(), handlers.DeletePermission(db))

		// Roles.
		api.GET("/roles", handlers.ListRoles(roles))
		api.POST("/roles", guard.Require("manage_role"), handlers.CreateRole(roles))
		api.POST("/roles/:id/permissions", guard.Require("manage_role"), handlers.AddRolePermissions(roles))
		api.DELETE("/roles/:id/permissions/:permission_id", guard.Require("manage_role"), handlers.RemoveRolePermission(roles))
		api.DELETE("/roles/:id", guard.Require("manage_role"), handlers.DeleteRole(roles))

		// Employees.
		api.GET("/employees", handlers.ListEmployees(db))
		api.POST("/employees", guard.Require("manage_employee"), handlers.CreateEmployee(db))
		api.PUT("/employees/:id", guard.Require("manage_employee"), handlers.UpdateEmployee(db))
		api.DELETE("/employees/:id", guard.Require("manage_employee"), handlers.DeleteEmployee(db))
		api.POST("/employees/:id/roles", guard.Require("manage_role"), handlers.AssignEmployeeRoles(roles))

		// Fixed assets.
		api.GET("/assets", handlers.ListAssets(db))
		api.GET("/assets/:id", handlers.GetResource(assets))
		api.POST("/assets", guard.Require("create_asset"), handlers.CreateAsset(db, assets))
		api.PUT("/assets/:id", guard.Require("edit_asset"), handlers.UpdateAsset(db, assets))
		api.DELETE("/assets/:id", guard.Require("delete_asset"), handlers.DeleteResource(assets))

		// Budgets.
		api.GET("/budgets", handlers.ListBudgets(db))
		api.GET("/budgets/:id", handlers.GetResource(budgets))
		api.POST("/budgets", guard.Require("manage_budget"), handlers.CreateBudget(db, budgets))
		api.PUT("/budgets/:id", guard.Require("manage_budget"), handlers.UpdateBudget(db, budgets))
		api.DELETE("/budgets/:id", guard.Require("manage_budget"), handlers.DeleteResource(budgets))

		// Simple tenant-owned resources on the generic store.
		crud(api, "/departments", departments, guard, "manage_department")
		crud(api, "/positions", positions, guard, "manage_position")
		crud(api, "/categories", categories, guard, "manage_category")
		crud(api, "/statuses", statuses, guard, "manage_status")
		crud(api, "/locations", locations, guard, "manage_location")
		crud(api, "/vendors", vendors, guard, "manage_vendor")

		// Audit trail: recording is never permission-gated.
		api.POST("/audit", handlers.RecordAudit(recorder))
		api.GET("/audit", handlers.ListAudit(recorder))
	}

	return r
}

// crud mounts the generic store handlers for one resource path with a
// single declared mutation permission.
func crud[T any, P interface {
	*T
	tenancy.Owned
}](api *gin.RouterGroup, path string, store *tenancy.Store[T, P], guard *rbac.Guard, permission string) {
	api.GET(path, handlers.ListResource(store))
	api.GET(path+"/:id", handlers.GetResource(store))
	api.POST(path, guard.Require(permission), handlers.CreateResource(store))
	api.PUT(path+"/:id", guard.Require(permission), handlers.UpdateResource(store))
	api.DELETE(path+"/:id", guard.Require(permission), handlers.DeleteResource(store))
}
