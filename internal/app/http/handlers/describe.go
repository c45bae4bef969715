package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"furnihome/go_backend/internal/domain/ai/describe"
)

func (h *Handlers) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var product describe.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		log.Printf("generate description bad request: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(product.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	generated := h.Describe.Generate(r.Context(), product)
	writeJSON(w, http.StatusOK, map[string]string{"generated_description": generated})
}
