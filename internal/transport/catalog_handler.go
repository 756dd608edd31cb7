package transport

import (
	"net/http"

	"shophub/internal/domain"
	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductResponse wraps a single product
type ProductResponse struct {
	Product *domain.Product `json:"product"`
}

// CategoriesResponse lists category names
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// CatalogHandler serves the public catalog
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{idOrSlug}", h.GetProduct)
	r.Get("/api/categories", h.ListCategories)
}

// ListProducts answers a filtered, sorted catalog query
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.QueryCatalog(r.Context(), r.URL.Query())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// GetProduct returns one product by ID or slug
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetProduct(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{Product: product})
}

// ListCategories returns every category name
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.Categories(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
