// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nutripress/internal/autoblog"
)

// AutoBlog exposes the generation pipeline: title batches, per-product and
// batch article runs, plus the status/statistics views the dashboard polls.
// Generation runs synchronously within the request; the server's write
// timeout is sized for multi-minute LLM calls.
type AutoBlog struct {
	service *autoblog.Service
	titles  autoblog.TitleMaker
}

func NewAutoBlog(service *autoblog.Service, titles autoblog.TitleMaker) *AutoBlog {
	return &AutoBlog{service: service, titles: titles}
}

// GenerateTitles creates a fresh title batch for one product, replacing
// any existing batch.
func (h *AutoBlog) GenerateTitles(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	titles, err := h.titles.Generate(r.Context(), productID)
	if err != nil {
		slog.Error("title generation failed", "product_id", productID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, titles)
}

type generateProductRequest struct {
	RegenerateTitles bool `json:"regenerate_titles"`
	SkipCompleted    bool `json:"skip_completed"`
}

// GenerateProduct runs the full pipeline for one product.
func (h *AutoBlog) GenerateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req generateProductRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.service.GenerateAllForProduct(r.Context(), productID, autoblog.Options{
		RegenerateTitles: req.RegenerateTitles,
		SkipCompleted:    req.SkipCompleted,
	})
	if err != nil {
		slog.Error("product generation failed", "product_id", productID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type batchRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
	Limit      int         `json:"limit"`
}

// GenerateBatch runs the pipeline over many products.
func (h *AutoBlog) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.service.BatchGenerate(r.Context(), req.ProductIDs, req.Limit)
	if err != nil {
		slog.Error("batch generation failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Status returns the per-product generation dashboard view.
func (h *AutoBlog) Status(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	status, err := h.service.ProductStatus(productID)
	if err != nil {
		slog.Error("product status failed", "product_id", productID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Statistics returns the global generation counters.
func (h *AutoBlog) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics()
	if err != nil {
		slog.Error("statistics failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
