package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository/postgres"
)

var clientCols = []string{
	"id", "first_name", "last_name", "national_id", "phone",
	"email", "address", "created_on", "updated_on",
}

func TestClientRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewClientRepository(db)

	t.Run("Success", func(t *testing.T) {
		c := &domain.Client{
			FirstName:  "Nadia",
			LastName:   "Haddad",
			NationalID: "NID-123",
			Phone:      "+961 3 123456",
		}

		mock.ExpectQuery("INSERT INTO clients").
			WithArgs(c.FirstName, c.LastName, c.NationalID, c.Phone, "", "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).
				AddRow(int64(5), time.Now(), time.Now()))

		err := repo.Create(context.Background(), c)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), c.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateNationalID", func(t *testing.T) {
		c := &domain.Client{
			FirstName:  "Nadia",
			LastName:   "Haddad",
			NationalID: "NID-123",
			Phone:      "+961 3 123456",
		}

		mock.ExpectQuery("INSERT INTO clients").
			WithArgs(c.FirstName, c.LastName, c.NationalID, c.Phone, "", "").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), c)
		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewClientRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM clients WHERE id").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(clientCols).
				AddRow(int64(5), "Nadia", "Haddad", "NID-123", "+961 3 123456",
					"nadia@example.com", "", time.Now(), time.Now()))

		c, err := repo.GetByID(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, "Nadia Haddad", c.FullName())
		assert.Equal(t, "nadia@example.com", c.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM clients WHERE id").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(clientCols))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewClientRepository(db)

	mock.ExpectQuery("SELECT count").
		WithArgs("%had%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
	mock.ExpectQuery("SELECT (.+) FROM clients").
		WithArgs("%had%", int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows(clientCols).
			AddRow(int64(5), "Nadia", "Haddad", "NID-123", "+961 3 123456",
				"", "", time.Now(), time.Now()))

	clients, total, err := repo.List(context.Background(), "had", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	if assert.Len(t, clients, 1) {
		assert.Equal(t, "Haddad", clients[0].LastName)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
