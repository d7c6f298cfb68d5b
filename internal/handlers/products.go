// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"nutripress/internal/store"
	"nutripress/internal/sync"
)

// Products exposes the local product index and the storefront sync
// controls. When the application runs without a storefront connection the
// sync service is nil and the sync endpoints answer 503.
type Products struct {
	products *store.ProductStore
	logs     *store.SyncLogStore
	sync     *sync.Service
}

func NewProducts(products *store.ProductStore, logs *store.SyncLogStore, syncSvc *sync.Service) *Products {
	return &Products{products: products, logs: logs, sync: syncSvc}
}

func (h *Products) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.products.ListActive()
	if err != nil {
		slog.Error("list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// TriggerSync runs a full catalog sync synchronously and returns the run
// log. A concurrent run answers 409.
func (h *Products) TriggerSync(w http.ResponseWriter, r *http.Request) {
	if h.sync == nil {
		writeError(w, http.StatusServiceUnavailable, "storefront sync is not configured")
		return
	}

	result, err := h.sync.SyncAll(r.Context())
	if err != nil {
		if errors.Is(err, sync.ErrSyncRunning) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		slog.Error("product sync failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SyncStatus returns the in-memory progress snapshot.
func (h *Products) SyncStatus(w http.ResponseWriter, r *http.Request) {
	if h.sync == nil {
		writeError(w, http.StatusServiceUnavailable, "storefront sync is not configured")
		return
	}
	writeJSON(w, http.StatusOK, h.sync.Progress())
}

// SyncLogs returns recent audit rows, newest first.
func (h *Products) SyncLogs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			writeError(w, http.StatusBadRequest, "limit must be 1-200")
			return
		}
		limit = n
	}

	logs, err := h.logs.List(limit)
	if err != nil {
		slog.Error("list sync logs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
