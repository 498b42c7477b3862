package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"zappayBack/internal/fields"
	"zappayBack/internal/models"
	"zappayBack/internal/repositories"
	"zappayBack/internal/services"
)

type InvoiceHandler struct {
	Service     *services.InvoiceService
	Status      *services.StatusService
	InvoiceRepo *repositories.InvoiceRepository
	UtilityRepo *repositories.UtilityRepository
	ErrorLog    *log.Logger
}

// createInvoiceResponse discloses the signing secret exactly once, in
// the creation response; it never appears in the invoice JSON again.
type createInvoiceResponse struct {
	models.Invoice
	Secret string `json:"secret"`
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UtilityID int64             `json:"utility_id"`
		Amount    string            `json:"amount"`
		Values    map[string]string `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	utility, err := h.UtilityRepo.GetUtilityByID(r.Context(), req.UtilityID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			notFound(w)
			return
		}
		serverError(w, h.ErrorLog, err)
		return
	}

	invoice, err := h.Service.CreateInvoice(r.Context(), utility, req.Values, req.Amount)
	if err != nil {
		var ve *fields.ValidationError
		switch {
		case errors.Is(err, models.ErrInvalidAmount):
			badRequest(w, "amount must be greater than zero")
		case errors.As(err, &ve):
			badRequest(w, ve.Message)
		case errors.Is(err, models.ErrRemoteRejected), errors.Is(err, models.ErrRemoteUnreachable):
			writeJSON(w, http.StatusBadGateway, map[string]string{"message": "failed to create invoice"})
		default:
			serverError(w, h.ErrorLog, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, createInvoiceResponse{Invoice: invoice, Secret: invoice.Secret})
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	token := getParam(r, "token")
	invoice, err := h.InvoiceRepo.GetInvoiceByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			notFound(w)
			return
		}
		serverError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

// UpdateStatus is the call-in point for the settlement watcher. The
// route sits behind the admin bearer token middleware.
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	token := getParam(r, "token")
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	invoice, err := h.Status.UpdateStatus(r.Context(), token, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvoiceNotFound):
			notFound(w)
		case errors.Is(err, models.ErrInvalidStatus):
			writeJSON(w, http.StatusConflict, map[string]string{"message": err.Error()})
		default:
			serverError(w, h.ErrorLog, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}
