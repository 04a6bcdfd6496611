package donation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (DonationRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewDonationRepository(db), mock
}

func TestDonationRepository_DeleteOfferRemovesItemsFirst(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.NewString()

	mock.ExpectExec(`DELETE FROM "donation_offer_items" WHERE donation_offer_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "donation_offers" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteOffer(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepository_GetCentersFiltersCity(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "donation_centers" WHERE city ILIKE \$1 ORDER BY name asc`).
		WithArgs("%bandung%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city"}).
			AddRow(uuid.NewString(), "Food Bank", "Bandung"))

	centers, err := repo.GetCenters(context.Background(), " bandung ")
	require.NoError(t, err)
	require.Len(t, centers, 1)
	assert.Equal(t, "Food Bank", centers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepository_GetOfferForUpdateLoadsItems(t *testing.T) {
	repo, mock := newMockRepository(t)
	offerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donation_offers" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow(offerID.String(), uuid.NewString(), "PENDING"))
	mock.ExpectQuery(`SELECT \* FROM "donation_offer_items" WHERE donation_offer_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "donation_offer_id", "food_id", "quantity"}).
			AddRow(uuid.NewString(), offerID.String(), uuid.NewString(), 1.5))

	offer, err := repo.GetOfferForUpdate(context.Background(), offerID.String())
	require.NoError(t, err)
	require.Len(t, offer.Items, 1)
	assert.Equal(t, 1.5, offer.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
