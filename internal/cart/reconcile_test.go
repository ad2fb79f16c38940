package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
)

var reconcileNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func existingLine(guid string, selection dbtypes.StringMap, qty, position int) models.CartItem {
	return models.CartItem{
		ID:               uuid.New(),
		ProductGUID:      guid,
		Name:             "Existing",
		VariantSelection: selection,
		Quantity:         qty,
		OriginalPrice:    decimal.RequireFromString("30.00"),
		SalePrice:        decimal.RequireFromString("20.00"),
		Position:         position,
		CreatedAt:        reconcileNow.Add(-time.Hour),
		UpdatedAt:        reconcileNow.Add(-time.Hour),
	}
}

func TestReconcileNegativeQuantity(t *testing.T) {
	t.Parallel()

	_, err := Reconcile(nil, singleProduct(), nil, -1, reconcileNow)
	assertCode(t, err, pkgerrors.CodeInvalidRequest)
}

func TestReconcileAppendsNewLine(t *testing.T) {
	t.Parallel()

	lines := []models.CartItem{existingLine("other", nil, 1, 0)}

	out, err := Reconcile(lines, singleProduct(), nil, 2, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected two lines, got %d", len(out))
	}

	added := out[1]
	if added.ProductGUID != "p-single" || added.Quantity != 2 {
		t.Fatalf("unexpected appended line: %+v", added)
	}
	if added.Position != 1 {
		t.Fatalf("expected position 1, got %d", added.Position)
	}
	if !added.SalePrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected snapshot price, got %s", added.SalePrice)
	}
	if !added.CreatedAt.Equal(reconcileNow) || !added.UpdatedAt.Equal(reconcileNow) {
		t.Fatalf("expected timestamps set to now")
	}
}

func TestReconcileVariantSnapshotUsesVariantImage(t *testing.T) {
	t.Parallel()

	product := variantProduct()
	product.ImageURL = strPtr("https://cdn/shirt.png")
	product.Variants[0].ImageURL = strPtr("https://cdn/shirt-red-m.png")

	out, err := Reconcile(nil, product, dbtypes.StringMap{"color": "red", "size": "M"}, 1, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ImageURL == nil || *out[0].ImageURL != "https://cdn/shirt-red-m.png" {
		t.Fatalf("expected variant image on the line, got %v", out[0].ImageURL)
	}
}

func TestReconcileSameLineIdentityNilEqualsEmpty(t *testing.T) {
	t.Parallel()

	lines := []models.CartItem{existingLine("p-single", nil, 1, 0)}

	out, err := Reconcile(lines, singleProduct(), dbtypes.StringMap{}, 5, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("empty selection must hit the nil-selection line, got %d lines", len(out))
	}
	if out[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", out[0].Quantity)
	}
}

func TestReconcileUpdatePreservesLockedPrice(t *testing.T) {
	t.Parallel()

	line := existingLine("p-single", nil, 1, 0)
	lines := []models.CartItem{line}

	// The catalog sale price differs from the locked line price; a quantity
	// update must not refresh it.
	out, err := Reconcile(lines, singleProduct(), nil, 3, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out[0]
	if got.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", got.Quantity)
	}
	if !got.SalePrice.Equal(line.SalePrice) || !got.OriginalPrice.Equal(line.OriginalPrice) {
		t.Fatalf("locked prices must survive a quantity update")
	}
	if got.ID != line.ID || got.Position != line.Position || !got.CreatedAt.Equal(line.CreatedAt) {
		t.Fatalf("identity fields must survive a quantity update")
	}
	if !got.UpdatedAt.Equal(reconcileNow) {
		t.Fatalf("expected updated_at to advance")
	}
}

func TestReconcileQuantityZeroRemoves(t *testing.T) {
	t.Parallel()

	keep := existingLine("other", nil, 1, 0)
	drop := existingLine("p-single", nil, 2, 1)
	lines := []models.CartItem{keep, drop}

	out, err := Reconcile(lines, singleProduct(), nil, 0, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ProductGUID != "other" {
		t.Fatalf("expected only the other line to remain, got %+v", out)
	}
}

func TestReconcileQuantityZeroAbsentLineNoop(t *testing.T) {
	t.Parallel()

	lines := []models.CartItem{existingLine("other", nil, 1, 0)}

	// Removal of an absent line must succeed even when the selection would
	// fail price resolution.
	out, err := Reconcile(lines, variantProduct(), dbtypes.StringMap{"color": "green"}, 0, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected cart unchanged, got %d lines", len(out))
	}
}

func TestReconcilePositionAfterRemoval(t *testing.T) {
	t.Parallel()

	lines := []models.CartItem{
		existingLine("a", nil, 1, 0),
		existingLine("b", nil, 1, 3),
	}

	out, err := Reconcile(lines, singleProduct(), nil, 1, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[2].Position != 4 {
		t.Fatalf("expected position max+1 = 4, got %d", out[2].Position)
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	line := existingLine("p-single", nil, 1, 0)
	lines := []models.CartItem{line}

	if _, err := Reconcile(lines, singleProduct(), nil, 7, reconcileNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Quantity != 1 || !lines[0].UpdatedAt.Equal(line.UpdatedAt) {
		t.Fatalf("input slice must not be mutated: %+v", lines[0])
	}
}

func TestReconcileCanonicalizesSelectionCopy(t *testing.T) {
	t.Parallel()

	selection := dbtypes.StringMap{"color": "red", "size": "M"}
	out, err := Reconcile(nil, variantProduct(), selection, 1, reconcileNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	selection["color"] = "mutated"
	if out[0].VariantSelection["color"] != "red" {
		t.Fatalf("stored selection must be a defensive copy")
	}
}
