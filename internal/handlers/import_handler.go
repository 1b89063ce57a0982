package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/finlit/backend/internal/services"
)

type ImportHandler struct {
	service   *services.ImportService
	validator *services.ValidationHelper
}

func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// ParseTransaction parses transaction text and applies its effects
// @Summary Parse transaction text
// @Description Parse an SMS/notification; a debit adds an expense and lowers the balance, a credit raises it
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body object{text=string,userId=string} true "Transaction text"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /transactions/parse [post]
func (h *ImportHandler) ParseTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		UserID string `json:"userId"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		log.Printf("[IMPORT] ParseTransaction - Decode error: %v", err)
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		log.Printf("[IMPORT] ParseTransaction - Multiple JSON objects detected")
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if req.UserID == "" {
		req.UserID = "1"
	}

	// Unparsable text is not an error; the response carries a null amount.
	result, err := h.service.Import(req.UserID, req.Text)
	if err != nil {
		log.Printf("[IMPORT] ParseTransaction - Service error: %v", err)
		services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
