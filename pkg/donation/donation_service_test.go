package donation

import (
	"bytes"
	"context"
	"testing"
	"time"

	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/internal/storage/memory"
	"food-tracker/pkg/food"
	"food-tracker/pkg/foodlog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ DonationRepository = (*memory.Store)(nil)

var now = time.Date(2024, 3, 10, 11, 30, 0, 0, time.UTC)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendMail(toEmail string, subject string, body string) error {
	return m.Called(toEmail, subject, body).Error(0)
}

type fixture struct {
	store  *memory.Store
	mailer *mockMailer
	svc    *donationService
	owner  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	mailer := new(mockMailer)

	foodService := food.NewFoodService(store, store, store, nil, nil)
	logService := foodlog.NewFoodLogService(store, store, foodService, store)
	svc := NewDonationService(store, store, logService, store, mailer, "https://pantry.example/").(*donationService)
	svc.now = func() time.Time { return now }

	return &fixture{store: store, mailer: mailer, svc: svc, owner: uuid.New()}
}

func (f *fixture) addFood(t *testing.T, owner uuid.UUID, name string, quantity float64) string {
	t.Helper()
	item := &entities.Food{UserID: owner, Name: name, Category: "Pantry", Quantity: quantity}
	require.NoError(t, f.store.AddFoodItem(context.Background(), item))
	return item.ID.String()
}

func (f *fixture) addCenter(t *testing.T, name, email string) string {
	t.Helper()
	center := &entities.DonationCenter{Name: name, City: "Bandung", Email: email}
	require.NoError(t, f.store.CreateCenter(context.Background(), center))
	return center.ID.String()
}

func (f *fixture) food(t *testing.T, id string) *entities.Food {
	t.Helper()
	item, err := f.store.GetFoodItemByID(context.Background(), id)
	require.NoError(t, err)
	return item
}

func (f *fixture) createOffer(t *testing.T, centerID string, items ...domain.DonationOfferItemRequest) domain.DonationOffer {
	t.Helper()
	res, err := f.svc.CreateOffer(context.Background(), domain.CreateDonationOfferRequest{
		DonationCenterID: centerID,
		Remarks:          "after 5pm",
		Items:            items,
	}, f.owner.String())
	require.NoError(t, err)
	return res
}

func TestCreateOffer(t *testing.T) {
	f := newFixture(t)
	rice := f.addFood(t, f.owner, "rice", 5)
	beans := f.addFood(t, f.owner, "beans", 2)
	center := f.addCenter(t, "Food Bank", "bank@example.com")

	f.mailer.On("SendMail", "bank@example.com", "New donation offer", mock.Anything).Return(nil).Once()

	res := f.createOffer(t, center,
		domain.DonationOfferItemRequest{FoodID: rice, Quantity: 3},
		domain.DonationOfferItemRequest{FoodID: beans, Quantity: 2},
	)

	assert.Equal(t, domain.OfferStatusPending, res.Status)
	assert.Equal(t, 2, res.ItemCount)
	require.NotNil(t, res.DonationCenterName)
	assert.Equal(t, "Food Bank", *res.DonationCenterName)
	assert.Equal(t, "rice", *res.Items[0].FoodName)
	assert.Equal(t, 5.0, f.food(t, rice).Quantity)
	f.mailer.AssertExpectations(t)
}

func TestCreateOffer_MailFailureDoesNotFailOffer(t *testing.T) {
	f := newFixture(t)
	rice := f.addFood(t, f.owner, "rice", 5)
	center := f.addCenter(t, "Food Bank", "bank@example.com")

	f.mailer.On("SendMail", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	res := f.createOffer(t, center, domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1})
	assert.NotEmpty(t, res.ID)
}

func TestCreateOffer_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)
	milk := f.addFood(t, f.owner, "milk", 1)
	foreign := f.addFood(t, uuid.New(), "cake", 4)

	tests := []struct {
		name string
		req  domain.CreateDonationOfferRequest
		want error
	}{
		{"no items", domain.CreateDonationOfferRequest{}, domain.ErrOfferWithoutItems},
		{"second item exceeds stock", domain.CreateDonationOfferRequest{Items: []domain.DonationOfferItemRequest{
			{FoodID: rice, Quantity: 1}, {FoodID: milk, Quantity: 2},
		}}, domain.ErrQuantityExceedsStock},
		{"foreign food", domain.CreateDonationOfferRequest{Items: []domain.DonationOfferItemRequest{
			{FoodID: rice, Quantity: 1}, {FoodID: foreign, Quantity: 1},
		}}, domain.ErrUnauthorizedAccess},
		{"missing food", domain.CreateDonationOfferRequest{Items: []domain.DonationOfferItemRequest{
			{FoodID: uuid.NewString(), Quantity: 1},
		}}, domain.ErrFoodItemNotFound},
		{"first violation wins", domain.CreateDonationOfferRequest{Items: []domain.DonationOfferItemRequest{
			{FoodID: milk, Quantity: 9}, {FoodID: foreign, Quantity: 1},
		}}, domain.ErrQuantityExceedsStock},
		{"missing center", domain.CreateDonationOfferRequest{DonationCenterID: uuid.NewString(), Items: []domain.DonationOfferItemRequest{
			{FoodID: rice, Quantity: 1},
		}}, domain.ErrDonationCenterNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateOffer(ctx, tt.req, f.owner.String())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	offers, err := f.store.GetUserOffers(ctx, f.owner.String(), "")
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestUpdateOfferStatus_PickupDonatesEveryItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)
	beans := f.addFood(t, f.owner, "beans", 2)
	center := f.addCenter(t, "Food Bank", "")

	offer := f.createOffer(t, center,
		domain.DonationOfferItemRequest{FoodID: rice, Quantity: 3},
		domain.DonationOfferItemRequest{FoodID: beans, Quantity: 2},
	)

	res, err := f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "picked_up"}, f.owner.String())
	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusPickedUp, res.Status)
	require.NotNil(t, res.PickedUpAt)
	assert.True(t, now.Equal(*res.PickedUpAt))

	assert.Equal(t, 2.0, f.food(t, rice).Quantity)
	assert.Equal(t, domain.FoodStatusAvailable, f.food(t, rice).Status)
	assert.Equal(t, 0.0, f.food(t, beans).Quantity)
	assert.Equal(t, domain.FoodStatusDonated, f.food(t, beans).Status)

	logs, err := f.store.GetLogs(ctx, f.owner.String(), domain.FoodLogFilter{Action: domain.LogActionDonated})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, "Donated to center ID: "+center, l.Reason)
		assert.Equal(t, "after 5pm", l.Remarks)
		assert.True(t, l.ActionDate.Equal(domain.DateOf(now)))
	}

	// repeating the transition changes nothing
	_, err = f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "PICKED_UP"}, f.owner.String())
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.food(t, rice).Quantity)
	logs, _ = f.store.GetLogs(ctx, f.owner.String(), domain.FoodLogFilter{})
	assert.Len(t, logs, 2)

	_, err = f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "PENDING"}, f.owner.String())
	assert.ErrorIs(t, err, domain.ErrOfferClosed)
}

func TestUpdateOfferStatus_PickupRollsBackOnShortStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)
	beans := f.addFood(t, f.owner, "beans", 2)

	offer := f.createOffer(t, "",
		domain.DonationOfferItemRequest{FoodID: rice, Quantity: 3},
		domain.DonationOfferItemRequest{FoodID: beans, Quantity: 2},
	)

	// beans were eaten after the offer was made
	beansFood := f.food(t, beans)
	beansFood.Quantity = 1
	require.NoError(t, f.store.UpdateFoodItem(ctx, beansFood))

	_, err := f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "PICKED_UP"}, f.owner.String())
	assert.ErrorIs(t, err, domain.ErrQuantityExceedsStock)

	assert.Equal(t, 5.0, f.food(t, rice).Quantity)
	stored, _ := f.store.GetOfferByID(ctx, offer.ID)
	assert.Equal(t, domain.OfferStatusPending, stored.Status)
	logs, _ := f.store.GetLogs(ctx, f.owner.String(), domain.FoodLogFilter{})
	assert.Empty(t, logs)
}

func TestUpdateOfferStatus_PickupSkipsDeletedFood(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)
	cake := f.addFood(t, f.owner, "cake", 1)

	offer := f.createOffer(t, "",
		domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1},
		domain.DonationOfferItemRequest{FoodID: cake, Quantity: 1},
	)
	require.NoError(t, f.store.DeleteFoodItem(ctx, cake))

	res, err := f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "PICKED_UP"}, f.owner.String())
	require.NoError(t, err)
	assert.Nil(t, res.Items[1].FoodName)

	logs, _ := f.store.GetLogs(ctx, f.owner.String(), domain.FoodLogFilter{})
	require.Len(t, logs, 1)
	assert.Equal(t, "Donated", logs[0].Reason)
}

func TestUpdateOfferStatus_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)
	offer := f.createOffer(t, "", domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1})

	_, err := f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "SHIPPED"}, f.owner.String())
	assert.ErrorIs(t, err, domain.ErrInvalidOfferStatus)

	_, err = f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "ACCEPTED"}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)

	_, err = f.svc.UpdateOfferStatus(ctx, uuid.NewString(), domain.UpdateDonationOfferStatusRequest{Status: "ACCEPTED"}, f.owner.String())
	assert.ErrorIs(t, err, domain.ErrDonationOfferNotFound)

	res, err := f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "accepted"}, f.owner.String())
	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusAccepted, res.Status)
	assert.Nil(t, res.PickedUpAt)
}

func TestDeleteOffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)

	pending := f.createOffer(t, "", domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1})
	require.Equal(t, 1, f.store.OfferItemCount(pending.ID))

	require.NoError(t, f.svc.DeleteOffer(ctx, pending.ID, f.owner.String()))
	assert.Zero(t, f.store.OfferItemCount(pending.ID))
	_, err := f.svc.GetOfferByID(ctx, pending.ID, f.owner.String())
	assert.ErrorIs(t, err, domain.ErrDonationOfferNotFound)

	picked := f.createOffer(t, "", domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1})
	_, err = f.svc.UpdateOfferStatus(ctx, picked.ID, domain.UpdateDonationOfferStatusRequest{Status: "PICKED_UP"}, f.owner.String())
	require.NoError(t, err)

	err = f.svc.DeleteOffer(ctx, picked.ID, f.owner.String())
	assert.ErrorIs(t, err, domain.ErrDeletePickedUpOffer)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 1, f.store.OfferItemCount(picked.ID))
}

func TestGetUserOffers_FilterByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)

	f.store.SetClock(func() time.Time { return now.Add(-time.Hour) })
	first := f.createOffer(t, "", domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1})
	f.store.SetClock(func() time.Time { return now })
	second := f.createOffer(t, "", domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1})

	_, err := f.svc.UpdateOfferStatus(ctx, first.ID, domain.UpdateDonationOfferStatusRequest{Status: "CANCELLED"}, f.owner.String())
	require.NoError(t, err)

	all, err := f.svc.GetUserOffers(ctx, f.owner.String(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	cancelled, err := f.svc.GetUserOffers(ctx, f.owner.String(), "cancelled")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)

	_, err = f.svc.GetUserOffers(ctx, f.owner.String(), "LOST")
	assert.ErrorIs(t, err, domain.ErrInvalidOfferStatus)
}

func TestGetPickupQRCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.addFood(t, f.owner, "rice", 5)
	offer := f.createOffer(t, "", domain.DonationOfferItemRequest{FoodID: rice, Quantity: 1})

	png, err := f.svc.GetPickupQRCode(ctx, offer.ID, f.owner.String())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = f.svc.UpdateOfferStatus(ctx, offer.ID, domain.UpdateDonationOfferStatusRequest{Status: "REJECTED"}, f.owner.String())
	require.NoError(t, err)

	_, err = f.svc.GetPickupQRCode(ctx, offer.ID, f.owner.String())
	assert.ErrorIs(t, err, domain.ErrOfferClosed)
}
