package handlers

import (
	"log"
	"net/http"
	"strings"

	"furnihome/go_backend/internal/domain/catalog"
)

const previewSampleSize = 5

func (h *Handlers) DataPreview(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Load(r.Context())
	if err != nil {
		log.Printf("data preview failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if len(products) > previewSampleSize {
		products = products[:previewSampleSize]
	}
	writeJSON(w, http.StatusOK, map[string][]catalog.Product{"sample": products})
}

func (h *Handlers) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Load(r.Context())
	if err != nil {
		log.Printf("analytics summary failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	withPrice := 0
	for _, p := range products {
		if strings.TrimSpace(p.Price) != "" {
			withPrice++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": map[string]int{
			"total_products": len(products),
			"with_price":     withPrice,
		},
	})
}
