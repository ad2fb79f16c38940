package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shopmallhq/shopmall-backend/api/middleware"
	"github.com/shopmallhq/shopmall-backend/api/responses"
	"github.com/shopmallhq/shopmall-backend/api/validators"
	"github.com/shopmallhq/shopmall-backend/internal/products"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
	"github.com/shopmallhq/shopmall-backend/pkg/logger"
	"github.com/shopmallhq/shopmall-backend/pkg/pagination"
)

// AdminProductList pages through the catalog for the console.
func AdminProductList(svc products.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "admin product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1000000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminProductGet returns one product by guid, associations included.
func AdminProductGet(svc products.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "admin product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), strings.TrimSpace(chi.URLParam(r, "guid")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// AdminProductCreate adds a product; the server mints the guid.
func AdminProductCreate(svc products.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "admin product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body products.CreateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Create(r.Context(), body, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// AdminProductUpdate applies a partial update; option and variant lists
// are replaced wholesale when present in the body.
func AdminProductUpdate(svc products.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "admin product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body products.UpdateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		guid := strings.TrimSpace(chi.URLParam(r, "guid"))
		detail, err := svc.Update(r.Context(), guid, body, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// AdminProductDelete removes a product and its associations.
func AdminProductDelete(svc products.AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "admin product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		guid := strings.TrimSpace(chi.URLParam(r, "guid"))
		if err := svc.Delete(r.Context(), guid); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
