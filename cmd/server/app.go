package main

import (
	"net/http"

	"github.com/diewo77/go-shopchat/internal/auth"
	"github.com/diewo77/go-shopchat/internal/handlers"
	"github.com/diewo77/go-shopchat/internal/services"
	"github.com/diewo77/go-shopchat/internal/store"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux   *http.ServeMux
	store *store.Store
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB) *App {
	app := &App{
		mux:   http.NewServeMux(),
		store: store.New(db),
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	catalog := services.NewCatalogService(a.store)
	ph := handlers.NewProductHandler(a.store, catalog)
	uh := handlers.NewUserProfileHandler(a.store, auth.BcryptHasher{})
	oh := handlers.NewOrderHandler(a.store)
	sh := handlers.NewChatSessionHandler(a.store)
	mh := handlers.NewChatMessageHandler(a.store)

	// Products, including the three filtered catalog reads. The literal
	// sub-routes take precedence over the {id} wildcard.
	a.mux.HandleFunc("GET /products", ph.List)
	a.mux.HandleFunc("POST /products", ph.Create)
	a.mux.HandleFunc("GET /products/get_out_of_stock_products", ph.OutOfStock)
	a.mux.HandleFunc("GET /products/get_products_price_range", ph.PriceRange)
	a.mux.HandleFunc("GET /products/by_name/{name}", ph.ByName)
	a.mux.HandleFunc("GET /products/{id}", ph.Get)
	a.mux.HandleFunc("PUT /products/{id}", ph.Update)
	a.mux.HandleFunc("PATCH /products/{id}", ph.Patch)
	a.mux.HandleFunc("DELETE /products/{id}", ph.Delete)

	// User profiles
	a.mux.HandleFunc("GET /user-profiles", uh.List)
	a.mux.HandleFunc("POST /user-profiles", uh.Create)
	a.mux.HandleFunc("GET /user-profiles/{id}", uh.Get)
	a.mux.HandleFunc("PUT /user-profiles/{id}", uh.Update)
	a.mux.HandleFunc("PATCH /user-profiles/{id}", uh.Update)
	a.mux.HandleFunc("DELETE /user-profiles/{id}", uh.Delete)

	// Orders
	a.mux.HandleFunc("GET /orders", oh.List)
	a.mux.HandleFunc("POST /orders", oh.Create)
	a.mux.HandleFunc("GET /orders/{id}", oh.Get)
	a.mux.HandleFunc("PUT /orders/{id}", oh.Update)
	a.mux.HandleFunc("PATCH /orders/{id}", oh.Update)
	a.mux.HandleFunc("DELETE /orders/{id}", oh.Delete)

	// Chat sessions and messages
	a.mux.HandleFunc("GET /chat-sessions", sh.List)
	a.mux.HandleFunc("POST /chat-sessions", sh.Create)
	a.mux.HandleFunc("GET /chat-sessions/{id}", sh.Get)
	a.mux.HandleFunc("PUT /chat-sessions/{id}", sh.Update)
	a.mux.HandleFunc("PATCH /chat-sessions/{id}", sh.Update)
	a.mux.HandleFunc("DELETE /chat-sessions/{id}", sh.Delete)

	a.mux.HandleFunc("GET /chat-messages", mh.List)
	a.mux.HandleFunc("POST /chat-messages", mh.Create)
	a.mux.HandleFunc("GET /chat-messages/{id}", mh.Get)
	a.mux.HandleFunc("PUT /chat-messages/{id}", mh.Update)
	a.mux.HandleFunc("PATCH /chat-messages/{id}", mh.Update)
	a.mux.HandleFunc("DELETE /chat-messages/{id}", mh.Delete)
}
