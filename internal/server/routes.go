package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// 各ハンドラをまとめて受け取る
type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Category      *handler.CategoryHandler
	Order         *handler.OrderHandler
	Contact       *handler.ContactHandler
	Settings      *handler.SettingsHandler
	AdminOrder    *handler.AdminOrderHandler
	AdminProduct  *handler.AdminProductHandler
	AdminUser     *handler.AdminUserHandler
	AdminCategory *handler.AdminCategoryHandler
	AdminAuditLog *handler.AdminAuditLogHandler
}

// RegisterRoutesは公開・要ログイン・管理者の3段でルートを張る。
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.Contact.RegisterRoutes(e)
	h.Settings.RegisterPublicRoutes(e)

	//要ログイン
	authed := e.Group("", middleware.AuthSession(cfg))
	h.Order.RegisterRoutes(authed)

	//管理者のみ
	admin := e.Group("/admin", middleware.AuthSession(cfg), middleware.AdminRoleGuard())
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminUser.RegisterRoutes(admin)
	h.AdminCategory.RegisterRoutes(admin)
	h.AdminAuditLog.RegisterRoutes(admin)

	//設定の更新系もadmin配下ではなく /settings のまま守る
	settings := e.Group("", middleware.AuthSession(cfg), middleware.AdminRoleGuard())
	h.Settings.RegisterAdminRoutes(settings)
}
