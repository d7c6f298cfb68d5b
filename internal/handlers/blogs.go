// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nutripress/internal/models"
	"nutripress/internal/slug"
	"nutripress/internal/store"
)

// Blogs groups the manual blog CRUD endpoints. Auto-generated articles go
// through the autoblog handlers instead; these exist for hand-written
// posts and for editing generated ones.
type Blogs struct {
	blogs *store.BlogStore
	links *store.HyperlinkStore
}

func NewBlogs(blogs *store.BlogStore, links *store.HyperlinkStore) *Blogs {
	return &Blogs{blogs: blogs, links: links}
}

func (h *Blogs) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List()
	if err != nil {
		slog.Error("list blogs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (h *Blogs) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	blog, err := h.blogs.FindByID(id)
	if err != nil {
		slog.Error("find blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if blog == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}

	links, err := h.links.ListByBlog(id)
	if err != nil {
		slog.Error("list hyperlinks failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"blog":       blog,
		"hyperlinks": links,
	})
}

type blogRequest struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	MetaKeywords    *string    `json:"meta_keywords"`
	CategoryID      *uuid.UUID `json:"category_id"`
	Status          string     `json:"status"`
}

func (req *blogRequest) validate() string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		return "content is required"
	}
	switch req.Status {
	case "", string(models.BlogStatusDraft), string(models.BlogStatusPublished):
	default:
		return "status must be draft or published"
	}
	return ""
}

func (req *blogRequest) apply(b *models.Blog) {
	b.Title = strings.TrimSpace(req.Title)
	b.Slug = req.Slug
	if b.Slug == "" {
		b.Slug = slug.Generate(b.Title)
	}
	b.Content = req.Content
	b.MetaTitle = req.MetaTitle
	b.MetaDescription = req.MetaDescription
	b.MetaKeywords = req.MetaKeywords
	b.CategoryID = req.CategoryID
	if req.Status != "" {
		b.Status = models.BlogStatus(req.Status)
	}
}

func (h *Blogs) Create(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	blog := &models.Blog{Status: models.BlogStatusDraft}
	req.apply(blog)

	exists, err := h.blogs.SlugExists(blog.Slug)
	if err != nil {
		slog.Error("slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "slug already in use")
		return
	}

	created, err := h.blogs.Create(blog)
	if err != nil {
		slog.Error("create blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Blogs) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	var req blogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	blog, err := h.blogs.FindByID(id)
	if err != nil {
		slog.Error("find blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if blog == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}

	req.apply(blog)
	if err := h.blogs.Update(blog); err != nil {
		slog.Error("update blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (h *Blogs) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	if err := h.blogs.Delete(id); err != nil {
		slog.Error("delete blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
