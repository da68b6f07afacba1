// Package httpin builds the HTTP surface: one mux serving the storefront
// under /mall and the back office under /admin, with auth and role gates
// applied per mount.
package httpin

import (
	"log"
	"net/http"

	"straightenup/internal/adapters/in/http/handler"
	"straightenup/internal/adapters/in/http/middleware"
	"straightenup/internal/application/authz"
	usecase "straightenup/internal/application/usecase"
	"straightenup/internal/platform/bus"
)

// RouterDeps collects everything injected from main.
type RouterDeps struct {
	AuthUC        *usecase.AuthUsecase
	ProfileUC     *usecase.ProfileUsecase
	ProductUC     *usecase.ProductUsecase
	CartUC        *usecase.CartUsecase
	CheckoutUC    *usecase.CheckoutUsecase
	AddressUC     *usecase.ShippingAddressUsecase
	OrderUC       *usecase.OrderUsecase
	CurrencyUC    *usecase.CurrencyUsecase
	ForumUC       *usecase.ForumUsecase
	SupportUC     *usecase.SupportUsecase
	SiteContentUC *usecase.SiteContentUsecase

	Bus          *bus.Bus
	FirebaseAuth *middleware.FirebaseAuthClient

	// AllowOrigin is the storefront origin for CORS.
	AllowOrigin string
}

// handleSafe mounts h at pattern, or a 404 handler when h is nil, so a
// missing dependency degrades to a logged warning instead of a crash.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// NewRouter wires the full route table.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	userAuth := &middleware.UserAuth{
		FirebaseAuth: deps.FirebaseAuth,
		ProfileUC:    deps.ProfileUC,
	}
	authed := userAuth.Handler
	staff := func(action authz.Action, h http.Handler) http.Handler {
		return authed(middleware.RequireAction(action, h))
	}

	// --- mall: public ---
	handleSafe(mux, "/mall/auth/", handler.NewAuthHandler(deps.AuthUC), "Auth")
	productH := handler.NewProductHandler(deps.ProductUC)
	handleSafe(mux, "/mall/products", productH, "Product")
	handleSafe(mux, "/mall/products/", productH, "Product")
	handleSafe(mux, "/mall/currency/", handler.NewCurrencyHandler(deps.CurrencyUC), "Currency")
	siteH := handler.NewSiteContentHandler(deps.SiteContentUC)
	handleSafe(mux, "/mall/contact", siteH, "SiteContent")
	handleSafe(mux, "/mall/offices", siteH, "SiteContent")

	// --- mall: signed in ---
	cartH := authed(handler.NewCartHandler(deps.CartUC))
	handleSafe(mux, "/mall/cart", cartH, "Cart")
	handleSafe(mux, "/mall/cart/", cartH, "Cart")

	checkoutH := authed(handler.NewCheckoutHandler(deps.CheckoutUC))
	handleSafe(mux, "/mall/checkout", checkoutH, "Checkout")
	handleSafe(mux, "/mall/checkout/", checkoutH, "Checkout")

	addressH := authed(handler.NewAddressHandler(deps.AddressUC))
	handleSafe(mux, "/mall/addresses", addressH, "Address")
	handleSafe(mux, "/mall/addresses/", addressH, "Address")

	orderH := authed(handler.NewOrderHandler(deps.OrderUC))
	handleSafe(mux, "/mall/orders", orderH, "Order")
	handleSafe(mux, "/mall/orders/", orderH, "Order")

	handleSafe(mux, "/mall/me", authed(handler.NewProfileHandler(deps.ProfileUC)), "Profile")
	handleSafe(mux, "/mall/forum/", authed(handler.NewForumHandler(deps.ForumUC)), "Forum")
	handleSafe(mux, "/mall/support/", authed(handler.NewSupportHandler(deps.SupportUC)), "Support")
	handleSafe(mux, "/mall/stream", authed(handler.NewStreamHandler(deps.Bus)), "Stream")

	// --- admin ---
	adminProductH := staff(authz.ManageProducts, handler.NewAdminProductHandler(deps.ProductUC))
	handleSafe(mux, "/admin/products", adminProductH, "AdminProduct")
	handleSafe(mux, "/admin/products/", adminProductH, "AdminProduct")

	adminOrderH := staff(authz.ManageOrders, handler.NewAdminOrderHandler(deps.OrderUC))
	handleSafe(mux, "/admin/orders", adminOrderH, "AdminOrder")
	handleSafe(mux, "/admin/orders/", adminOrderH, "AdminOrder")

	adminUserH := staff(authz.ManageUsers, handler.NewAdminUserHandler(deps.ProfileUC))
	handleSafe(mux, "/admin/users", adminUserH, "AdminUser")
	handleSafe(mux, "/admin/users/", adminUserH, "AdminUser")

	handleSafe(mux, "/admin/forum/", staff(authz.ModerateForum, handler.NewAdminForumHandler(deps.ForumUC)), "AdminForum")
	handleSafe(mux, "/admin/support/", staff(authz.ManageSupport, handler.NewAdminSupportHandler(deps.SupportUC)), "AdminSupport")

	adminSiteH := staff(authz.ManageSiteContent, handler.NewAdminSiteContentHandler(deps.SiteContentUC))
	handleSafe(mux, "/admin/contact", adminSiteH, "AdminSiteContent")
	handleSafe(mux, "/admin/offices", adminSiteH, "AdminSiteContent")
	handleSafe(mux, "/admin/offices/", adminSiteH, "AdminSiteContent")

	// recover innermost so panics still get CORS headers
	return middleware.CORS(deps.AllowOrigin, middleware.Recover(mux))
}
