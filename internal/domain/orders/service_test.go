package orders

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornada/internal/core/apperror"
	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/costing"
	"fornada/internal/domain/measure"
	"fornada/pkg/numerator"
)

type fakeOrderRepo struct {
	fakeWriter
	byID map[id.ID]*Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: map[id.ID]*Order{}}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *Order) error {
	if err := f.fakeWriter.Create(ctx, order); err != nil {
		return err
	}
	f.byID[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	o, ok := f.byID[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID.String())
	}
	return o, nil
}

func (f *fakeOrderRepo) GetByNumber(ctx context.Context, number string) (*Order, error) {
	for _, o := range f.byID {
		if o.Number == number {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("order", number)
}

func (f *fakeOrderRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	out := domain.ListResult[*Order]{Limit: filter.Limit, Offset: filter.Offset}
	for _, o := range f.byID {
		out.Items = append(out.Items, o)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	o, ok := f.byID[orderID]
	if !ok {
		return apperror.NewNotFound("order", orderID.String())
	}
	o.Status = status
	return nil
}

type fakeProducts struct {
	byID map[id.ID]*product.Product
}

func (f *fakeProducts) GetWithLines(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

type fakeCustomers struct{ known map[id.ID]bool }

func (f *fakeCustomers) Exists(ctx context.Context, customerID id.ID) (bool, error) {
	return f.known[customerID], nil
}

type seqRow struct{ val int64 }

func (r *seqRow) Scan(dest ...any) error {
	if ptr, ok := dest[0].(*int64); ok {
		*ptr = r.val
	}
	return nil
}

type seqQuerier struct{ n int64 }

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.n++
	return &seqRow{val: q.n}
}

type submitFixture struct {
	svc      *Service
	repo     *fakeOrderRepo
	stocks   *fakeStock
	customer id.ID
	cake     *product.Product
	flourID  id.ID
	eggsID   id.ID
}

func newSubmitFixture(flour, eggs float64) *submitFixture {
	flourID, eggsID := id.New(), id.New()

	cake := product.New("PRD-001", "Carrot cake")
	cake.SellingPrice = types.MustMoney("90")
	cake.PriceOverridden = true
	cake.PreparationMinutes = 60
	cake.HourlyLaborRate = types.MustMoney("20")
	cake.AddLine(product.RecipeIngredient{
		Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram,
		UnitCost: types.MustMoney("0.01"), Quantity: 500,
	})
	cake.AddLine(product.RecipeIngredient{
		Name: "eggs", IngredientID: &eggsID, BaseUnit: measure.Count,
		UnitCost: types.MustMoney("0.50"), Quantity: 3,
	})

	customerID := id.New()
	repo := newFakeOrderRepo()
	stocks := newFakeStock(map[id.ID]float64{flourID: flour, eggsID: eggs})

	svc := NewService(
		repo,
		&fakeProducts{byID: map[id.ID]*product.Product{cake.ID: cake}},
		&fakeCustomers{known: map[id.ID]bool{customerID: true}},
		stocks,
		numerator.New(&seqQuerier{}),
		costing.NewCalculator(costing.DefaultConfig()),
		nil,
	)

	return &submitFixture{
		svc: svc, repo: repo, stocks: stocks,
		customer: customerID, cake: cake,
		flourID: flourID, eggsID: eggsID,
	}
}

func TestService_SubmitSufficient(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(2000, 10)

	order, result, err := fx.svc.Submit(ctx, Draft{
		CustomerID: fx.customer,
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 2}},
	}, PolicyFail)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.State)
	require.NotNil(t, order)
	assert.NotEmpty(t, order.Number)
	assert.Equal(t, StatusConfirmed, order.Status)

	// Cost frozen into the line: 500*0.01 + 3*0.5 + 1h*20 = 26.50
	require.Len(t, order.Lines, 1)
	assert.True(t, order.Lines[0].UnitCost.Equal(types.MustMoney("26.5")),
		"unit cost = %s", order.Lines[0].UnitCost)
	assert.True(t, order.Lines[0].UnitPrice.Equal(types.MustMoney("90")))

	// Committing creates no stock movements; consumption is booked at
	// production time.
	assert.InDelta(t, 2000, fx.stocks.levels[fx.flourID], 1e-9)
	assert.InDelta(t, 10, fx.stocks.levels[fx.eggsID], 1e-9)
	assert.Empty(t, fx.stocks.recorded)
}

func TestService_SubmitFailPolicy(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(300, 10)

	order, result, err := fx.svc.Submit(ctx, Draft{
		CustomerID: fx.customer,
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 2}},
	}, PolicyFail)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
	assert.Nil(t, order)
	require.NotNil(t, result)
	require.Len(t, result.Shortfalls, 1)
	assert.Equal(t, "flour", result.Shortfalls[0].Name)

	// Nothing persisted, nothing deducted.
	assert.Empty(t, fx.repo.created)
	assert.InDelta(t, 300, fx.stocks.levels[fx.flourID], 1e-9)
}

func TestService_SubmitProceedPolicy(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(300, 10)

	order, result, err := fx.svc.Submit(ctx, Draft{
		CustomerID: fx.customer,
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 2}},
	}, PolicyProceed)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.State)
	assert.NotNil(t, order)

	// The accepted shortage stays on record; stock is untouched.
	assert.InDelta(t, 300, fx.stocks.levels[fx.flourID], 1e-9)
}

func TestService_SubmitTopUpPolicy(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(300, 2)

	_, result, err := fx.svc.Submit(ctx, Draft{
		CustomerID: fx.customer,
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 2}},
	}, PolicyTopUp)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.State)

	// Both shortfalls topped up to exactly the requirement: 2*500 flour
	// and 2*3 eggs.
	assert.InDelta(t, 1000, fx.stocks.levels[fx.flourID], 1e-9)
	assert.InDelta(t, 6, fx.stocks.levels[fx.eggsID], 1e-9)
}

func TestService_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(2000, 10)

	_, _, err := fx.svc.Submit(ctx, Draft{
		CustomerID: fx.customer,
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 1}},
	}, ShortagePolicy("whatever"))
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, _, err = fx.svc.Submit(ctx, Draft{
		CustomerID: id.New(),
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 1}},
	}, PolicyFail)
	assert.True(t, apperror.IsNotFound(err))

	_, _, err = fx.svc.Submit(ctx, Draft{CustomerID: fx.customer}, PolicyFail)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestService_CheckStockIsReadOnly(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(300, 10)

	result, err := fx.svc.CheckStock(ctx, Draft{
		CustomerID: fx.customer,
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.False(t, result.Sufficient)
	require.Len(t, result.Shortfalls, 1)
	assert.InDelta(t, 700, result.Shortfalls[0].Missing, 1e-9)

	// Checking never touches stock or persists anything.
	assert.InDelta(t, 300, fx.stocks.levels[fx.flourID], 1e-9)
	assert.Empty(t, fx.repo.created)
}

func TestService_UpdateStatusGuards(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(2000, 10)

	order, _, err := fx.svc.Submit(ctx, Draft{
		CustomerID: fx.customer,
		Lines:      []DraftLine{{ProductID: fx.cake.ID, Quantity: 1}},
	}, PolicyFail)
	require.NoError(t, err)

	require.NoError(t, fx.svc.UpdateStatus(ctx, order.ID, StatusDelivered))
	assert.Error(t, fx.svc.UpdateStatus(ctx, order.ID, StatusCancelled),
		"delivered orders are final")
}
