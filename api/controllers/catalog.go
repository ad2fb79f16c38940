package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shopmallhq/shopmall-backend/api/responses"
	"github.com/shopmallhq/shopmall-backend/internal/categories"
	"github.com/shopmallhq/shopmall-backend/internal/products"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
	"github.com/shopmallhq/shopmall-backend/pkg/logger"
)

type productListResponse struct {
	Items []products.SummaryDTO `json:"items"`
}

func productShelf(svc products.Service, logg *logger.Logger, fetch func(products.Service, context.Context) ([]products.SummaryDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := fetch(svc, r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productListResponse{Items: items})
	}
}

// ProductsHot lists the products pinned to the hot shelf.
func ProductsHot(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return productShelf(svc, logg, func(s products.Service, ctx context.Context) ([]products.SummaryDTO, error) {
		return s.Hot(ctx)
	})
}

// ProductsDiscount lists products currently selling below list price.
func ProductsDiscount(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return productShelf(svc, logg, func(s products.Service, ctx context.Context) ([]products.SummaryDTO, error) {
		return s.Discounted(ctx)
	})
}

// ProductsBestSelling lists the top sellers by units sold.
func ProductsBestSelling(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return productShelf(svc, logg, func(s products.Service, ctx context.Context) ([]products.SummaryDTO, error) {
		return s.BestSelling(ctx)
	})
}

// ProductsUpcoming lists products announced but not yet on sale.
func ProductsUpcoming(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return productShelf(svc, logg, func(s products.Service, ctx context.Context) ([]products.SummaryDTO, error) {
		return s.Upcoming(ctx)
	})
}

// ProductDetail returns one product with its options and variants.
func ProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		guid := strings.TrimSpace(chi.URLParam(r, "guid"))
		detail, err := svc.Detail(r.Context(), guid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// CategoriesList returns the active categories in display order.
func CategoriesList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// CategoryProducts lists the products filed under one category code.
func CategoryProducts(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := strconv.Atoi(chi.URLParam(r, "code"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInvalidRequest, "category code must be an integer"))
			return
		}

		items, err := svc.ListProducts(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productListResponse{Items: items})
	}
}
