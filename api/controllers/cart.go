package controllers

import (
	"net/http"

	"github.com/shopmallhq/shopmall-backend/api/responses"
	"github.com/shopmallhq/shopmall-backend/api/validators"
	"github.com/shopmallhq/shopmall-backend/internal/cart"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
	"github.com/shopmallhq/shopmall-backend/pkg/logger"
)

type cartUpsertRequest struct {
	ProductGUID      string            `json:"product_guid" validate:"required"`
	Quantity         int               `json:"quantity" validate:"min=0"`
	VariantSelection map[string]string `json:"variant_selection,omitempty"`
}

type cartItemsResponse struct {
	Items []cart.LineDTO `json:"items"`
}

// CartItems lists the caller's cart lines, creating the cart on first touch.
func CartItems(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.GetItems(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartItemsResponse{Items: items})
	}
}

// CartItemUpsert adds, updates, or removes one line and echoes the full cart.
func CartItemUpsert(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartUpsertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.UpsertItem(r.Context(), userID, cart.UpsertItemInput{
			ProductGUID:      body.ProductGUID,
			Quantity:         body.Quantity,
			VariantSelection: body.VariantSelection,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartItemsResponse{Items: items})
	}
}
