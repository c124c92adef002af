package handler

import (
	"net/http"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	catalog *service.CatalogStore,
	content *service.ContentStore,
	progress *service.ProgressTracker,
	bus domain.Subscriber,
	ids domain.IDGenerator,
	limiter *service.LoginLimiter,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	moduleHandler := NewModuleHandler(catalog)
	contentHandler := NewContentHandler(catalog, content, ids)
	progressHandler := NewProgressHandler(catalog, progress)
	listingHandler := NewListingHandler(catalog, progress, bus)

	admin := func(h http.HandlerFunc) http.Handler { return RequireAuth(auth, h) }

	// Public routes.
	mux.HandleFunc("GET /healthz", HandleHealthz(catalog.Ready))
	mux.HandleFunc("GET /therapies", listingHandler.HandlePage)
	mux.HandleFunc("GET /therapies/stream", listingHandler.HandleStream)
	mux.HandleFunc("GET /api/therapies/{id}/content", contentHandler.HandlePublished)
	mux.HandleFunc("GET /api/progress", progressHandler.HandleGet)
	mux.HandleFunc("POST /api/progress/{moduleId}/complete", progressHandler.HandleComplete)
	mux.HandleFunc("DELETE /api/progress/plan", progressHandler.HandleResetPlan)
	mux.Handle("POST /api/auth/login", RateLimit(limiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)

	// Admin routes.
	mux.Handle("GET /api/auth/me", admin(authHandler.HandleMe))
	mux.Handle("GET /api/modules", admin(moduleHandler.HandleList))
	mux.Handle("POST /api/modules", admin(moduleHandler.HandleCreate))
	mux.Handle("GET /api/modules/{id}", admin(moduleHandler.HandleGet))
	mux.Handle("PATCH /api/modules/{id}", admin(moduleHandler.HandleUpdate))
	mux.Handle("DELETE /api/modules/{id}", admin(moduleHandler.HandleDelete))
	mux.Handle("POST /api/modules/{id}/toggle-status", admin(moduleHandler.HandleToggleStatus))
	mux.Handle("GET /api/modules/{id}/content", admin(contentHandler.HandleGetForModule))
	mux.Handle("PUT /api/modules/{id}/content", admin(contentHandler.HandleSave))
	mux.Handle("GET /api/content", admin(contentHandler.HandleList))
	mux.Handle("POST /api/content/{id}/publish", admin(contentHandler.HandlePublish))
	mux.Handle("DELETE /api/content/{id}", admin(contentHandler.HandleDelete))
	mux.Handle("POST /api/content/{id}/steps", admin(contentHandler.HandleEditSteps))
	mux.Handle("GET /api/content-types", admin(contentHandler.HandleContentTypes))
	mux.Handle("GET /api/content-types/{type}/default", admin(contentHandler.HandleDefault))
	mux.Handle("GET /api/events", admin(HandleEvents(bus)))

	mux.Handle("GET /{$}", http.RedirectHandler("/therapies", http.StatusSeeOther))
}
