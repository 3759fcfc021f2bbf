package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/teslo-shop/storefront/internal/core/port"
)

// GET /v1/products              every product in full
// GET /v1/products/slugs        slug-only projection
// GET /v1/products/{slug}       single product (404 when absent)
// GET /v1/search/{term}         case-insensitive full-text search

type CatalogHandler struct {
	catalog port.CatalogProvider
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogProvider) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/slugs", h.GetSlugs)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProductBySlug)
	mux.HandleFunc("GET /v1/search/{term}", h.SearchProducts)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.AllProducts(r.Context())
	if err != nil {
		http.Error(w, "failed to read products", http.StatusInternalServerError)
		log.Error("failed to read products", "err", err)
		return
	}

	vs := make([]Product, 0, len(ps))
	for _, p := range ps {
		vs = append(vs, toProduct(p))
	}
	writeJSON(w, http.StatusOK, vs)
}

func (h CatalogHandler) GetSlugs(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetSlugs"
	log := slog.With("op", op)

	slugs, err := h.catalog.ProductSlugs(r.Context())
	if err != nil {
		http.Error(w, "failed to read slugs", http.StatusInternalServerError)
		log.Error("failed to read slugs", "err", err)
		return
	}
	if slugs == nil {
		slugs = []string{}
	}
	writeJSON(w, http.StatusOK, slugs)
}

func (h CatalogHandler) GetProductBySlug(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CatalogHandler.GetProductBySlug"
	log := slog.With("op", op)

	p, err := h.catalog.ProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read product", http.StatusInternalServerError)
		log.Error("failed to read product", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, toProduct(p))
}

func (h CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.SearchProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.ProductsByTerm(r.Context(), r.PathValue("term"))
	if err != nil {
		http.Error(w, "failed to search products", http.StatusInternalServerError)
		log.Error("failed to search products", "err", err)
		return
	}

	vs := make([]ProductSummary, 0, len(ps))
	for _, p := range ps {
		vs = append(vs, toProductSummary(p))
	}
	writeJSON(w, http.StatusOK, vs)
}
