package domain

import (
	"strings"
	"time"
)

type FoodStatus string

const (
	FoodStatusAvailable FoodStatus = "AVAILABLE"
	FoodStatusUsed      FoodStatus = "USED"
	FoodStatusDonated   FoodStatus = "DONATED"
	FoodStatusWasted    FoodStatus = "WASTED"
)

func ParseFoodStatus(value string) (FoodStatus, error) {
	switch s := FoodStatus(normalizeEnum(value)); s {
	case FoodStatusAvailable, FoodStatusUsed, FoodStatusDonated, FoodStatusWasted:
		return s, nil
	}
	return "", ErrInvalidFoodStatus
}

// LogAction is a consumption event recorded in the usage log.
type LogAction string

const (
	LogActionUsed    LogAction = "USED"
	LogActionDonated LogAction = "DONATED"
	LogActionWasted  LogAction = "WASTED"
)

// LogActions lists every action in reporting order.
var LogActions = []LogAction{LogActionUsed, LogActionDonated, LogActionWasted}

func ParseLogAction(value string) (LogAction, error) {
	switch a := LogAction(normalizeEnum(value)); a {
	case LogActionUsed, LogActionDonated, LogActionWasted:
		return a, nil
	}
	return "", ErrInvalidLogAction
}

// FoodStatus is the terminal status a food item takes when an action of this
// kind consumes its last unit.
func (a LogAction) FoodStatus() FoodStatus {
	switch a {
	case LogActionUsed:
		return FoodStatusUsed
	case LogActionDonated:
		return FoodStatusDonated
	case LogActionWasted:
		return FoodStatusWasted
	}
	panic("unknown log action " + string(a))
}

type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "PENDING"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusRejected  OfferStatus = "REJECTED"
	OfferStatusPickedUp  OfferStatus = "PICKED_UP"
	OfferStatusCancelled OfferStatus = "CANCELLED"
)

func ParseOfferStatus(value string) (OfferStatus, error) {
	switch s := OfferStatus(normalizeEnum(value)); s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusRejected, OfferStatusPickedUp, OfferStatusCancelled:
		return s, nil
	}
	return "", ErrInvalidOfferStatus
}

func (s OfferStatus) IsTerminal() bool {
	switch s {
	case OfferStatusRejected, OfferStatusPickedUp, OfferStatusCancelled:
		return true
	case OfferStatusPending, OfferStatusAccepted:
		return false
	}
	return false
}

type ExpiryState string

const (
	ExpiryStateNone       ExpiryState = ""
	ExpiryStateFresh      ExpiryState = "FRESH"
	ExpiryStateNearExpiry ExpiryState = "NEAR_EXPIRY"
	ExpiryStateExpired    ExpiryState = "EXPIRED"
)

type AnalyticsPeriod string

const (
	PeriodToday   AnalyticsPeriod = "today"
	Period7Days   AnalyticsPeriod = "7days"
	Period30Days  AnalyticsPeriod = "30days"
	PeriodOverall AnalyticsPeriod = "overall"
)

// ParseAnalyticsPeriod defaults to overall when value is empty.
func ParseAnalyticsPeriod(value string) (AnalyticsPeriod, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return PeriodOverall, nil
	}
	switch p := AnalyticsPeriod(value); p {
	case PeriodToday, Period7Days, Period30Days, PeriodOverall:
		return p, nil
	}
	return "", ErrInvalidAnalyticsPeriod
}

// WindowStart returns the first day included in the period, or nil for overall.
func (p AnalyticsPeriod) WindowStart(today time.Time) *time.Time {
	var start time.Time
	switch p {
	case PeriodToday:
		start = DateOf(today)
	case Period7Days:
		start = DateOf(today).AddDate(0, 0, -7)
	case Period30Days:
		start = DateOf(today).AddDate(0, 0, -30)
	case PeriodOverall:
		return nil
	default:
		return nil
	}
	return &start
}

func normalizeEnum(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
