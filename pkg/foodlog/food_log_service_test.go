package foodlog

import (
	"context"
	"testing"
	"time"

	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/internal/storage/memory"
	"food-tracker/pkg/food"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ FoodLogRepository = (*memory.Store)(nil)

var now = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	svc   *foodLogService
	owner string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	foodService := food.NewFoodService(store, store, store, nil, nil)
	svc := NewFoodLogService(store, store, foodService, store).(*foodLogService)
	svc.now = func() time.Time { return now }
	return &fixture{store: store, svc: svc, owner: uuid.NewString()}
}

func (f *fixture) addFood(t *testing.T, name string, quantity float64) string {
	t.Helper()
	item := &entities.Food{
		UserID:   uuid.MustParse(f.owner),
		Name:     name,
		Category: "Pantry",
		Quantity: quantity,
	}
	require.NoError(t, f.store.AddFoodItem(context.Background(), item))
	return item.ID.String()
}

func TestCreateLog_ConsumesWholeFood(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	foodID := f.addFood(t, "rice", 10)

	res, err := f.svc.CreateLog(ctx, domain.CreateFoodLogRequest{
		FoodID:   foodID,
		Action:   "used",
		Quantity: 10,
	}, f.owner)
	require.NoError(t, err)

	assert.Equal(t, domain.LogActionUsed, res.Action)
	assert.Equal(t, "2024-03-10", res.ActionDate)
	require.NotNil(t, res.FoodName)
	assert.Equal(t, "rice", *res.FoodName)

	stored, err := f.store.GetFoodItemByID(ctx, foodID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.Quantity)
	assert.Equal(t, domain.FoodStatusUsed, stored.Status)
}

func TestCreateLog_WastedKeepsReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	foodID := f.addFood(t, "bread", 1)

	_, err := f.svc.CreateLog(ctx, domain.CreateFoodLogRequest{
		FoodID:     foodID,
		Action:     "WASTED",
		Quantity:   1,
		ActionDate: "2024-03-08",
		Reason:     "mould",
	}, f.owner)
	require.NoError(t, err)

	stored, _ := f.store.GetFoodItemByID(ctx, foodID)
	assert.Equal(t, domain.FoodStatusWasted, stored.Status)
	assert.Equal(t, "mould", stored.ReasonOfWaste)
}

func TestCreateLog_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	foodID := f.addFood(t, "milk", 2)

	tests := []struct {
		name string
		req  domain.CreateFoodLogRequest
		user string
		want error
	}{
		{"unknown action", domain.CreateFoodLogRequest{FoodID: foodID, Action: "EATEN", Quantity: 1}, f.owner, domain.ErrInvalidLogAction},
		{"zero quantity", domain.CreateFoodLogRequest{FoodID: foodID, Action: "USED", Quantity: 0}, f.owner, domain.ErrInvalidQuantity},
		{"too much", domain.CreateFoodLogRequest{FoodID: foodID, Action: "USED", Quantity: 3}, f.owner, domain.ErrQuantityExceedsStock},
		{"future date", domain.CreateFoodLogRequest{FoodID: foodID, Action: "USED", Quantity: 1, ActionDate: "2024-03-11"}, f.owner, domain.ErrActionDateInTheFuture},
		{"other owner", domain.CreateFoodLogRequest{FoodID: foodID, Action: "USED", Quantity: 1}, uuid.NewString(), domain.ErrUnauthorizedAccess},
		{"missing food", domain.CreateFoodLogRequest{FoodID: uuid.NewString(), Action: "USED", Quantity: 1}, f.owner, domain.ErrFoodItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateLog(ctx, tt.req, tt.user)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	stored, _ := f.store.GetFoodItemByID(ctx, foodID)
	assert.Equal(t, 2.0, stored.Quantity)
	logs, _ := f.store.GetLogs(ctx, f.owner, domain.FoodLogFilter{})
	assert.Empty(t, logs)
}

func TestGetLogs_FiltersAndOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, "rice", 10)
	milk := f.addFood(t, "milk", 10)

	mustLog := func(foodID, action, date string) {
		_, err := f.svc.CreateLog(ctx, domain.CreateFoodLogRequest{FoodID: foodID, Action: action, Quantity: 1, ActionDate: date}, f.owner)
		require.NoError(t, err)
	}
	mustLog(rice, "USED", "2024-03-01")
	mustLog(milk, "WASTED", "2024-03-05")
	mustLog(rice, "DONATED", "2024-03-09")

	all, err := f.svc.GetLogs(ctx, f.owner, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-09", all[0].ActionDate)
	assert.Equal(t, "2024-03-05", all[1].ActionDate)
	assert.Equal(t, "2024-03-01", all[2].ActionDate)

	riceOnly, err := f.svc.GetLogs(ctx, f.owner, "", rice)
	require.NoError(t, err)
	assert.Len(t, riceOnly, 2)

	wasted, err := f.svc.GetLogs(ctx, f.owner, "wasted", "")
	require.NoError(t, err)
	require.Len(t, wasted, 1)
	assert.Equal(t, "milk", *wasted[0].FoodName)

	_, err = f.svc.GetLogs(ctx, f.owner, "burnt", "")
	assert.ErrorIs(t, err, domain.ErrInvalidLogAction)
}

func TestGetLogs_DeletedFoodHasNoName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	foodID := f.addFood(t, "cake", 2)

	_, err := f.svc.CreateLog(ctx, domain.CreateFoodLogRequest{FoodID: foodID, Action: "USED", Quantity: 1}, f.owner)
	require.NoError(t, err)
	require.NoError(t, f.store.DeleteFoodItem(ctx, foodID))

	logs, err := f.svc.GetLogs(ctx, f.owner, "", "")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].FoodName)
	assert.Equal(t, foodID, logs[0].FoodID)
}

func TestDeleteLog_DoesNotRestoreQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	foodID := f.addFood(t, "soup", 4)

	res, err := f.svc.CreateLog(ctx, domain.CreateFoodLogRequest{FoodID: foodID, Action: "USED", Quantity: 3}, f.owner)
	require.NoError(t, err)

	err = f.svc.DeleteLog(ctx, res.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedFoodLog)

	require.NoError(t, f.svc.DeleteLog(ctx, res.ID, f.owner))

	_, err = f.svc.GetLogByID(ctx, res.ID, f.owner)
	assert.ErrorIs(t, err, domain.ErrFoodLogNotFound)

	stored, _ := f.store.GetFoodItemByID(ctx, foodID)
	assert.Equal(t, 1.0, stored.Quantity)
}
