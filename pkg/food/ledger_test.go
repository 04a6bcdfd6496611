package food

import (
	"testing"
	"time"

	"food-tracker/domain"
	"food-tracker/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func daysFromToday(n int) *time.Time {
	d := today.AddDate(0, 0, n)
	return &d
}

func newFood(name string, quantity float64, expiry *time.Time) *entities.Food {
	return &entities.Food{
		ID:         uuid.New(),
		Name:       name,
		Category:   "Dairy",
		Quantity:   quantity,
		ExpiryDate: expiry,
		Status:     domain.FoodStatusAvailable,
		Version:    1,
	}
}

func TestComputeExpiryState(t *testing.T) {
	tests := []struct {
		name     string
		expiry   *time.Time
		state    domain.ExpiryState
		daysLeft *int
	}{
		{"no expiry date", nil, domain.ExpiryStateNone, nil},
		{"expired yesterday", daysFromToday(-1), domain.ExpiryStateExpired, intPtr(-1)},
		{"expires today stays fresh", daysFromToday(0), domain.ExpiryStateFresh, intPtr(0)},
		{"tomorrow", daysFromToday(1), domain.ExpiryStateNearExpiry, intPtr(1)},
		{"in two days", daysFromToday(2), domain.ExpiryStateNearExpiry, intPtr(2)},
		{"in three days", daysFromToday(3), domain.ExpiryStateNearExpiry, intPtr(3)},
		{"in four days", daysFromToday(4), domain.ExpiryStateFresh, intPtr(4)},
		{"in ten days", daysFromToday(10), domain.ExpiryStateFresh, intPtr(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, daysLeft := ComputeExpiryState(newFood("milk", 1, tt.expiry), today)
			assert.Equal(t, tt.state, state)
			assert.Equal(t, tt.daysLeft, daysLeft)
		})
	}
}

func TestComputeExpiryState_IgnoresClockTime(t *testing.T) {
	lateEvening := today.Add(23 * time.Hour)
	state, daysLeft := ComputeExpiryState(newFood("milk", 1, daysFromToday(1)), lateEvening)

	assert.Equal(t, domain.ExpiryStateNearExpiry, state)
	assert.Equal(t, 1, *daysLeft)
}

func TestApplyConsumption(t *testing.T) {
	t.Run("partial use keeps item available", func(t *testing.T) {
		f := newFood("rice", 5, nil)
		require.NoError(t, ApplyConsumption(f, 2, domain.LogActionUsed, ""))
		assert.Equal(t, 3.0, f.Quantity)
		assert.Equal(t, domain.FoodStatusAvailable, f.Status)
	})

	t.Run("consuming everything sets the action status", func(t *testing.T) {
		f := newFood("rice", 10, nil)
		require.NoError(t, ApplyConsumption(f, 10, domain.LogActionDonated, ""))
		assert.Equal(t, 0.0, f.Quantity)
		assert.Equal(t, domain.FoodStatusDonated, f.Status)
	})

	t.Run("wasting everything records the reason", func(t *testing.T) {
		f := newFood("bread", 1, nil)
		require.NoError(t, ApplyConsumption(f, 1, domain.LogActionWasted, "mould"))
		assert.Equal(t, domain.FoodStatusWasted, f.Status)
		assert.Equal(t, "mould", f.ReasonOfWaste)
	})

	t.Run("float drift is clamped to zero", func(t *testing.T) {
		f := newFood("juice", 0.3, nil)
		require.NoError(t, ApplyConsumption(f, 0.1, domain.LogActionUsed, ""))
		require.NoError(t, ApplyConsumption(f, 0.1, domain.LogActionUsed, ""))
		require.NoError(t, ApplyConsumption(f, 0.1, domain.LogActionUsed, ""))
		assert.Equal(t, 0.0, f.Quantity)
		assert.Equal(t, domain.FoodStatusUsed, f.Status)
	})

	t.Run("overspend fails and leaves food unchanged", func(t *testing.T) {
		f := newFood("eggs", 2, nil)
		before := *f
		err := ApplyConsumption(f, 3, domain.LogActionUsed, "")
		assert.ErrorIs(t, err, domain.ErrQuantityExceedsStock)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, before, *f)
	})

	t.Run("non-positive quantity fails", func(t *testing.T) {
		f := newFood("eggs", 2, nil)
		assert.ErrorIs(t, ApplyConsumption(f, 0, domain.LogActionUsed, ""), domain.ErrInvalidQuantity)
		assert.ErrorIs(t, ApplyConsumption(f, -1, domain.LogActionUsed, ""), domain.ErrInvalidQuantity)
		assert.Equal(t, 2.0, f.Quantity)
	})
}

func TestApplyStatus(t *testing.T) {
	f := newFood("cheese", 3, nil)

	ApplyStatus(f, domain.FoodStatusWasted, "dropped")
	assert.Equal(t, domain.FoodStatusWasted, f.Status)
	assert.Equal(t, "dropped", f.ReasonOfWaste)
	assert.Equal(t, 3.0, f.Quantity)

	ApplyStatus(f, domain.FoodStatusAvailable, "")
	assert.Equal(t, domain.FoodStatusAvailable, f.Status)
}

func TestBuildInventory(t *testing.T) {
	expiredLong := newFood("old yoghurt", 1, daysFromToday(-5))
	expiredRecent := newFood("milk", 1, daysFromToday(-1))
	fresh := newFood("pasta", 1, daysFromToday(30))
	near := newFood("bread", 1, daysFromToday(2))
	nearer := newFood("salad", 1, daysFromToday(1))
	undated := newFood("salt", 1, nil)
	today0 := newFood("ham", 1, daysFromToday(0))
	used := newFood("apples", 0, daysFromToday(-3))
	used.Status = domain.FoodStatusUsed
	wasted := newFood("fish", 0, nil)
	wasted.Status = domain.FoodStatusWasted
	donated := newFood("beans", 0, nil)
	donated.Status = domain.FoodStatusDonated

	inv := BuildInventory([]*entities.Food{
		undated, fresh, expiredRecent, near, used, expiredLong, wasted, nearer, donated, today0,
	}, today)

	names := func(items []domain.FoodItemResponse) []string {
		out := []string{}
		for _, i := range items {
			out = append(out, i.Name)
		}
		return out
	}

	assert.Equal(t, []string{"old yoghurt", "milk"}, names(inv.ExpiredItems))
	assert.Equal(t, []string{"salad", "bread", "ham", "pasta", "salt"}, names(inv.AvailableItems))
	assert.Equal(t, []string{"apples"}, names(inv.UsedItems))
	assert.Equal(t, []string{"beans"}, names(inv.DonatedItems))
	assert.Equal(t, []string{"fish"}, names(inv.WastedItems))

	assert.Equal(t, 2, inv.ExpiredCount)
	assert.Equal(t, 5, inv.AvailableCount)
	assert.Equal(t, 1, inv.UsedCount)
	assert.Equal(t, 1, inv.DonatedCount)
	assert.Equal(t, 1, inv.WastedCount)
}

func TestBuildInventory_EmptyBucketsAreNotNil(t *testing.T) {
	inv := BuildInventory(nil, today)
	assert.NotNil(t, inv.ExpiredItems)
	assert.NotNil(t, inv.AvailableItems)
	assert.Zero(t, inv.AvailableCount)
}

func TestBuildAlerts(t *testing.T) {
	expired := newFood("milk", 1, daysFromToday(-2))
	near := newFood("bread", 1, daysFromToday(3))
	fresh := newFood("pasta", 1, daysFromToday(12))
	undated := newFood("salt", 1, nil)
	usedExpired := newFood("apples", 0, daysFromToday(-1))
	usedExpired.Status = domain.FoodStatusUsed

	alerts := BuildAlerts([]*entities.Food{near, fresh, undated, usedExpired, expired}, today)

	require.Len(t, alerts.Items, 2)
	assert.Equal(t, "milk", alerts.Items[0].Name)
	assert.Equal(t, domain.ExpiryStateExpired, alerts.Items[0].ExpiryState)
	assert.Equal(t, -2, alerts.Items[0].DaysLeft)
	assert.Equal(t, "bread", alerts.Items[1].Name)
	assert.Equal(t, 1, alerts.ExpiredCount)
	assert.Equal(t, 1, alerts.NearExpiryCount)
	assert.Equal(t, 2, alerts.TotalAlerts)
}

func intPtr(n int) *int { return &n }
