package transport

import (
	"net/http"
	"strings"
	"time"

	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest represents the add-to-cart payload. Quantity defaults to 1.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=999"`
}

// UpdateCartItemRequest represents the set-quantity payload. Zero removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=999"`
}

// CartHandler serves the session cart
type CartHandler struct {
	cartService service.CartService
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, sessionTTL time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productId}", h.UpdateItem)
		r.Delete("/items/{productId}", h.RemoveItem)
	})
}

// GetCart returns the caller's cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	session := resolveSession(w, r, h.sessionTTL)

	result, err := h.cartService.Get(r.Context(), session)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "load cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// AddItem adds a product to the caller's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session := resolveSession(w, r, h.sessionTTL)

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.cartService.AddItem(r.Context(), session, strings.TrimSpace(req.ProductID), req.Quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "add item to cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// UpdateItem sets the quantity of a cart line
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	session := resolveSession(w, r, h.sessionTTL)

	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("Update cart item validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	result, err := h.cartService.UpdateItem(r.Context(), session, chi.URLParam(r, "productId"), *req.Quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "update cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// RemoveItem drops a cart line
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session := resolveSession(w, r, h.sessionTTL)

	result, err := h.cartService.RemoveItem(r.Context(), session, chi.URLParam(r, "productId"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "remove cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// ClearCart empties the caller's cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session := resolveSession(w, r, h.sessionTTL)

	result, err := h.cartService.Clear(r.Context(), session)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}
