package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/auth"
	"inventra/internal/models"
	"inventra/internal/services/product"
)

func parseFilter(r *http.Request) (product.Filter, error) {
	q := r.URL.Query()
	f := product.Filter{Search: q.Get("search"), SortBy: q.Get("sortBy")}
	if c := strings.ToLower(q.Get("category")); c != "" && c != "all" {
		f.Category = models.Category(c)
		if !f.Category.Valid() {
			return f, apperr.Validation(apperr.MsgInvalidCategory)
		}
	}
	bound := func(key string) (*float64, error) {
		s := q.Get(key)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, apperr.Validation(key + " must be a number")
		}
		return &v, nil
	}
	var err error
	if f.MinValue, err = bound("minValue"); err != nil {
		return f, err
	}
	if f.MaxValue, err = bound("maxValue"); err != nil {
		return f, err
	}
	switch f.SortBy {
	case "", product.SortDefault, product.SortPriceAsc, product.SortPriceDesc:
	default:
		return f, apperr.Validation("sortBy must be one of default, price-asc, price-desc")
	}
	return f, nil
}

func ListProducts(svc *product.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			respondError(w, lg, "list products", err)
			return
		}
		ps, err := svc.List(r.Context(), auth.Subject(r.Context()), f)
		if err != nil {
			respondError(w, lg, "list products", err)
			return
		}
		respondJSON(w, http.StatusOK, ps)
	}
}

func GetProduct(svc *product.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "id"), auth.Subject(r.Context()))
		if err != nil {
			respondError(w, lg, "get product", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func CreateProduct(svc *product.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in product.Input
		if err := decodeJSON(r, &in); err != nil {
			respondError(w, lg, "create product", err)
			return
		}
		p, err := svc.Create(r.Context(), in, auth.Subject(r.Context()))
		if err != nil {
			respondError(w, lg, "create product", err)
			return
		}
		respondJSON(w, http.StatusCreated, p)
	}
}

func UpdateProduct(svc *product.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in product.Input
		if err := decodeJSON(r, &in); err != nil {
			respondError(w, lg, "update product", err)
			return
		}
		p, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in, auth.Subject(r.Context()))
		if err != nil {
			respondError(w, lg, "update product", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func DeleteProduct(svc *product.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.Delete(r.Context(), chi.URLParam(r, "id"), auth.Subject(r.Context())); err != nil {
			respondError(w, lg, "delete product", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{})
	}
}
