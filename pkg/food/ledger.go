package food

import (
	"food-tracker/domain"
	"food-tracker/entities"
	"sort"
	"time"
)

const (
	// nearExpiryDays is the last day, counted from today, that is still "near".
	nearExpiryDays = 3
	// quantityEpsilon absorbs float drift when comparing quantities.
	quantityEpsilon = 1e-9
)

// ComputeExpiryState classifies food against today. Food without an expiry date
// has no state and a nil days-left. An item expiring today (0 days left) stays
// FRESH: the near-expiry window starts at one day.
func ComputeExpiryState(food *entities.Food, today time.Time) (domain.ExpiryState, *int) {
	if food.ExpiryDate == nil {
		return domain.ExpiryStateNone, nil
	}
	daysLeft := domain.DaysBetween(today, *food.ExpiryDate)

	switch {
	case daysLeft < 0:
		return domain.ExpiryStateExpired, &daysLeft
	case daysLeft >= 1 && daysLeft <= nearExpiryDays:
		return domain.ExpiryStateNearExpiry, &daysLeft
	default:
		return domain.ExpiryStateFresh, &daysLeft
	}
}

// ApplyConsumption takes quantity out of food. When nothing is left the item
// takes the status matching action. On error food is left untouched.
func ApplyConsumption(food *entities.Food, quantity float64, action domain.LogAction, reason string) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if quantity-food.Quantity > quantityEpsilon {
		return domain.ErrQuantityExceedsStock
	}

	food.Quantity -= quantity
	if food.Quantity <= quantityEpsilon {
		food.Quantity = 0
		food.Status = action.FoodStatus()
		if action == domain.LogActionWasted {
			food.ReasonOfWaste = reason
		}
	}
	return nil
}

// ApplyStatus is the manual correction path; quantity is not touched.
func ApplyStatus(food *entities.Food, status domain.FoodStatus, reason string) {
	food.Status = status
	if status == domain.FoodStatusWasted && reason != "" {
		food.ReasonOfWaste = reason
	}
}

func toFoodItemResponse(food *entities.Food, today time.Time) domain.FoodItemResponse {
	res := domain.FoodItemResponse{
		ID:              food.ID.String(),
		Name:            food.Name,
		Category:        food.Category,
		Quantity:        food.Quantity,
		Unit:            food.Unit,
		PurchaseDate:    domain.FormatDate(food.PurchaseDate),
		ExpiryDate:      domain.FormatDate(food.ExpiryDate),
		StorageLocation: food.StorageLocation,
		Status:          food.Status,
		ReasonOfWaste:   food.ReasonOfWaste,
		ImageURL:        food.ImageURL,
		CreatedAt:       food.CreatedAt,
	}
	state, daysLeft := ComputeExpiryState(food, today)
	if state != domain.ExpiryStateNone {
		res.ExpiryState = &state
		res.DaysLeft = daysLeft
	}
	return res
}

// BuildInventory sorts foods into buckets. Available food that has expired
// goes to the expired bucket only.
func BuildInventory(foods []*entities.Food, today time.Time) domain.FoodInventoryResponse {
	inv := domain.FoodInventoryResponse{
		ExpiredItems:   []domain.FoodItemResponse{},
		AvailableItems: []domain.FoodItemResponse{},
		UsedItems:      []domain.FoodItemResponse{},
		DonatedItems:   []domain.FoodItemResponse{},
		WastedItems:    []domain.FoodItemResponse{},
	}

	for _, food := range foods {
		item := toFoodItemResponse(food, today)
		switch food.Status {
		case domain.FoodStatusAvailable:
			if item.ExpiryState != nil && *item.ExpiryState == domain.ExpiryStateExpired {
				inv.ExpiredItems = append(inv.ExpiredItems, item)
			} else {
				inv.AvailableItems = append(inv.AvailableItems, item)
			}
		case domain.FoodStatusUsed:
			inv.UsedItems = append(inv.UsedItems, item)
		case domain.FoodStatusDonated:
			inv.DonatedItems = append(inv.DonatedItems, item)
		case domain.FoodStatusWasted:
			inv.WastedItems = append(inv.WastedItems, item)
		}
	}

	// most overdue first
	sort.SliceStable(inv.ExpiredItems, func(i, j int) bool {
		return *inv.ExpiredItems[i].DaysLeft < *inv.ExpiredItems[j].DaysLeft
	})
	sort.SliceStable(inv.AvailableItems, func(i, j int) bool {
		return availableLess(inv.AvailableItems[i], inv.AvailableItems[j])
	})

	inv.ExpiredCount = len(inv.ExpiredItems)
	inv.AvailableCount = len(inv.AvailableItems)
	inv.UsedCount = len(inv.UsedItems)
	inv.DonatedCount = len(inv.DonatedItems)
	inv.WastedCount = len(inv.WastedItems)
	return inv
}

// availableLess orders near-expiry items first, then by days left with
// undated items last.
func availableLess(a, b domain.FoodItemResponse) bool {
	aNear := a.ExpiryState != nil && *a.ExpiryState == domain.ExpiryStateNearExpiry
	bNear := b.ExpiryState != nil && *b.ExpiryState == domain.ExpiryStateNearExpiry
	if aNear != bNear {
		return aNear
	}
	switch {
	case a.DaysLeft == nil:
		return false
	case b.DaysLeft == nil:
		return true
	default:
		return *a.DaysLeft < *b.DaysLeft
	}
}

// BuildAlerts lists available food that is expired or about to expire.
func BuildAlerts(foods []*entities.Food, today time.Time) domain.ExpiryAlertsResponse {
	res := domain.ExpiryAlertsResponse{Items: []domain.ExpiryAlert{}}
	for _, food := range foods {
		if food.Status != domain.FoodStatusAvailable {
			continue
		}
		state, daysLeft := ComputeExpiryState(food, today)
		switch state {
		case domain.ExpiryStateExpired:
			res.ExpiredCount++
		case domain.ExpiryStateNearExpiry:
			res.NearExpiryCount++
		case domain.ExpiryStateNone, domain.ExpiryStateFresh:
			continue
		}
		res.Items = append(res.Items, domain.ExpiryAlert{
			ID:          food.ID.String(),
			Name:        food.Name,
			Category:    food.Category,
			ExpiryDate:  domain.FormatDate(food.ExpiryDate),
			ExpiryState: state,
			DaysLeft:    *daysLeft,
		})
	}
	sort.SliceStable(res.Items, func(i, j int) bool {
		return res.Items[i].DaysLeft < res.Items[j].DaysLeft
	})
	res.TotalAlerts = res.ExpiredCount + res.NearExpiryCount
	return res
}
