package http

import (
	_ "github.com/DRSN-tech/semantic-search/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/semantic-search/internal/usecase"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(searchUC usecase.SearchUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		handler := NewSearchHandler(searchUC, r.logger)
		registerSearchRoutes(v1, handler)
	})
}

func registerSearchRoutes(router chi.Router, handler *SearchHandler) {
	router.Post("/search", handler.search)
}
