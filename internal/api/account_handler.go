package api

import (
	"net/http"

	"github.com/mercato/storefront-api/internal/service"
)

// AccountHandler handles account read API requests.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Get handles GET /accounts/{id}. Self-only: an account can read only
// its own record.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := getAccountIDFromContext(r)
	if !ok {
		RespondWithServiceError(w, r, service.ErrNotLoggedIn)
		return
	}

	requestedID, err := parseIDParam(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid account ID")
		return
	}

	account, err := h.accountService.Get(r.Context(), accountID, requestedID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, account)
}

// List handles GET /accounts. Public.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, accounts)
}
