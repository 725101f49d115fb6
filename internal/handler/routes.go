package handler

import (
	"net/http"

	appmw "docu360/internal/middleware"
	"docu360/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	customerHandler *CustomerHandler,
	productHandler *ProductHandler,
	editorHandler *EditorHandler,
	publishedHandler *PublishedHandler,
	authHandler *AuthHandler,
	authzMiddleware func(http.Handler) http.Handler,
	errorMiddleware func(appmw.AppHandler) http.Handler,
	sessionManager session.Manager,
	publishDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)

	// Authentication routes
	r.Get("/auth/login", authHandler.handleLogin)
	r.Get("/auth/callback", authHandler.handleCallback)
	r.Post("/auth/logout", authHandler.handleLogout)

	// Published artifacts are public: the hosted site and the download.
	r.Handle("/published/*", http.StripPrefix("/published/", http.FileServer(http.Dir(publishDir))))

	// Everything else goes through the role-based authorizer; product
	// ownership is enforced in the services.
	r.Group(func(r chi.Router) {
		r.Use(authzMiddleware)

		r.Method(http.MethodGet, "/api/published/{id}/download", errorMiddleware(publishedHandler.downloadHandler))

		r.Route("/api/customers", func(r chi.Router) {
			r.Method(http.MethodGet, "/", errorMiddleware(customerHandler.listHandler))
			r.Method(http.MethodPost, "/", errorMiddleware(customerHandler.createHandler))
			r.Method(http.MethodGet, "/{id}", errorMiddleware(customerHandler.getHandler))
			r.Method(http.MethodPut, "/{id}", errorMiddleware(customerHandler.updateHandler))
			r.Method(http.MethodDelete, "/{id}", errorMiddleware(customerHandler.deleteHandler))
		})

		r.Route("/api/products", func(r chi.Router) {
			r.Method(http.MethodGet, "/", errorMiddleware(productHandler.listHandler))
			r.Method(http.MethodPost, "/", errorMiddleware(productHandler.createHandler))
			r.Method(http.MethodGet, "/{id}", errorMiddleware(productHandler.getHandler))
			r.Method(http.MethodPut, "/{id}", errorMiddleware(productHandler.updateHandler))
			r.Method(http.MethodDelete, "/{id}", errorMiddleware(productHandler.deleteHandler))

			r.Method(http.MethodPost, "/{id}/publish", errorMiddleware(productHandler.publishHandler))
			r.Method(http.MethodGet, "/{id}/preview", errorMiddleware(productHandler.previewHandler))

			r.Method(http.MethodGet, "/{id}/tree", errorMiddleware(editorHandler.treeHandler))
			r.Method(http.MethodPost, "/{id}/folders", errorMiddleware(editorHandler.createFolderHandler))
			r.Method(http.MethodPut, "/{id}/folders/{folderID}", errorMiddleware(editorHandler.renameFolderHandler))
			r.Method(http.MethodDelete, "/{id}/folders/{folderID}", errorMiddleware(editorHandler.deleteFolderHandler))
			r.Method(http.MethodPost, "/{id}/pages", errorMiddleware(editorHandler.createPageHandler))
			r.Method(http.MethodPut, "/{id}/pages/{pageID}", errorMiddleware(editorHandler.updatePageHandler))
			r.Method(http.MethodDelete, "/{id}/pages/{pageID}", errorMiddleware(editorHandler.deletePageHandler))
			r.Method(http.MethodPost, "/{id}/import", errorMiddleware(editorHandler.importHandler))
		})
	})

	return r
}
