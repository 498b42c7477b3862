package handlers

import (
	"errors"
	"log"
	"net/http"

	"zappayBack/internal/models"
	"zappayBack/internal/repositories"
	"zappayBack/internal/ws"
)

// DebugHandler exposes test endpoints used during development. All
// routes 404 unless debug mode is on.
type DebugHandler struct {
	Debug       bool
	Hub         *ws.Hub
	InvoiceRepo *repositories.InvoiceRepository
	ErrorLog    *log.Logger
}

// Invoice re-emits the invoice to its room as an info event and returns
// the invoice JSON.
func (h *DebugHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	if !h.Debug {
		notFound(w)
		return
	}
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
	h.Hub.Broadcast(invoice.Token, "info", invoice)
	writeJSON(w, http.StatusOK, invoice)
}

// Rooms dumps current room membership.
func (h *DebugHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	if !h.Debug {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, h.Hub.Rooms())
}
