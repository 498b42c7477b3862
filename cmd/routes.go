package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Utilities
	mux.Get("/utilities", standardMiddleware.ThenFunc(app.utilityHandler.GetUtilities))
	mux.Get("/utility/:id", standardMiddleware.ThenFunc(app.utilityHandler.GetUtilityByID))

	// Invoices
	mux.Post("/invoice", standardMiddleware.ThenFunc(app.invoiceHandler.CreateInvoice))
	mux.Get("/invoice/:token", standardMiddleware.ThenFunc(app.invoiceHandler.GetInvoice))
	mux.Put("/invoice/:token/status", adminMiddleware.ThenFunc(app.invoiceHandler.UpdateStatus))

	// Live invoice updates
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	// Debug (404 unless debug mode is on)
	mux.Get("/test/invoice/:token", standardMiddleware.ThenFunc(app.debugHandler.Invoice))
	mux.Get("/test/ws", standardMiddleware.ThenFunc(app.debugHandler.Rooms))

	return mux
}
