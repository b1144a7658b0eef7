package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mercato/storefront-api/internal/service"
)

// CartHandler handles cart-related API requests.
type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

// NewCartHandler creates a new CartHandler with the given dependencies.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// Add handles POST /cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	accountID, ok := getAccountIDFromContext(r)
	if !ok {
		RespondWithServiceError(w, r, service.ErrNotLoggedIn)
		return
	}

	var req AddToCartRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := h.cartService.AddToCart(r.Context(), accountID, req.ProductID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, item)
}

// Delete handles DELETE /cart/{id}. It responds with the removed line's
// prior snapshot.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := getAccountIDFromContext(r)
	if !ok {
		RespondWithServiceError(w, r, service.ErrNotLoggedIn)
		return
	}

	cartItemID, err := parseIDParam(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	item, err := h.cartService.RemoveFromCart(r.Context(), accountID, cartItemID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, item)
}
