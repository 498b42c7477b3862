package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"zappayBack/internal/models"
	"zappayBack/internal/repositories"
)

type UtilityHandler struct {
	UtilityRepo *repositories.UtilityRepository
	ErrorLog    *log.Logger
}

func (h *UtilityHandler) GetUtilities(w http.ResponseWriter, r *http.Request) {
	utilities, err := h.UtilityRepo.AllAlphabetical(r.Context())
	if err != nil {
		serverError(w, h.ErrorLog, err)
		return
	}
	if utilities == nil {
		utilities = []models.Utility{}
	}
	writeJSON(w, http.StatusOK, utilities)
}

func (h *UtilityHandler) GetUtilityByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(getParam(r, "id"), 10, 64)
	if err != nil {
		badRequest(w, "invalid utility id")
		return
	}
	utility, err := h.UtilityRepo.GetUtilityByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			notFound(w)
			return
		}
		serverError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, utility)
}
