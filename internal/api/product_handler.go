package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mercato/storefront-api/internal/service"
)

// ProductHandler handles product-related API requests.
type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

// NewProductHandler creates a new ProductHandler with the given dependencies.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
	}
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := getAccountIDFromContext(r)
	if !ok {
		RespondWithServiceError(w, r, service.ErrNotLoggedIn)
		return
	}

	var req CreateProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	product, err := h.productService.Create(r.Context(), accountID, req.Description, req.Price, req.ImageURL)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, product)
}

// Update handles PUT /products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := getAccountIDFromContext(r)
	if !ok {
		RespondWithServiceError(w, r, service.ErrNotLoggedIn)
		return
	}

	productID, err := parseIDParam(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	product, err := h.productService.Update(r.Context(), accountID, productID, service.UpdateProductParams{
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, product)
}

// Get handles GET /products/{id}. Public.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(r.Context(), productID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, product)
}

// List handles GET /products. Public.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, products)
}
