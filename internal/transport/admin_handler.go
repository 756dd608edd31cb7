package transport

import (
	"net/http"

	"shophub/internal/domain"
	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest represents the admin create/update payload
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   string   `json:"description" validate:"required,min=10"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	Category      string   `json:"category" validate:"required,max=100"`
	Image         string   `json:"image" validate:"required,url"`
	Images        []string `json:"images" validate:"omitempty,dive,url"`
	InStock       *bool    `json:"inStock"`
	StockQuantity int      `json:"stockQuantity" validate:"gte=0"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews       *int     `json:"reviews" validate:"omitempty,gte=0"`
	Tags          []string `json:"tags" validate:"omitempty,dive,required,max=50"`
	Slug          string   `json:"slug" validate:"required,max=255"`
}

// toDomain builds the product the request describes. InStock defaults to true.
func (req ProductRequest) toDomain() *domain.Product {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	return &domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		Image:         req.Image,
		Images:        req.Images,
		InStock:       inStock,
		StockQuantity: req.StockQuantity,
		Rating:        req.Rating,
		Reviews:       req.Reviews,
		Tags:          req.Tags,
		Slug:          req.Slug,
	}
}

// AdminHandler serves catalog management for admins
type AdminHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(productService service.ProductService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the admin routes behind authentication and the admin role check
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))

		r.Post("/", h.CreateProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

// CreateProduct adds a product to the catalog
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	product, err := h.productService.Create(r.Context(), req.toDomain())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "create product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, ProductResponse{Product: product})
}

// UpdateProduct replaces a product's fields
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	product, err := h.productService.Update(r.Context(), chi.URLParam(r, "id"), req.toDomain())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{Product: product})
}

// DeleteProduct removes a product from the catalog
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, h.logger, err, "delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
