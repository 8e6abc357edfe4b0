package postgres

import (
	"context"
	"database/sql"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, first_name, last_name, national_id, phone,
	COALESCE(email, ''), COALESCE(address, ''), created_on, updated_on`

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.NationalID, &c.Phone,
		&c.Email, &c.Address, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `INSERT INTO clients (first_name, last_name, national_id, phone, email, address, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		client.FirstName, client.LastName, client.NationalID, client.Phone,
		client.Email, client.Address,
	).Scan(&client.ID, &client.CreatedOn, &client.UpdatedOn)
	return translateErr(err)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return scanClient(r.db.QueryRowContext(ctx, query, id))
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `UPDATE clients
	          SET first_name = $1, last_name = $2, national_id = $3, phone = $4,
	              email = NULLIF($5, ''), address = NULLIF($6, ''), updated_on = NOW()
	          WHERE id = $7
	          RETURNING updated_on`
	err := r.db.QueryRowContext(ctx, query,
		client.FirstName, client.LastName, client.NationalID, client.Phone,
		client.Email, client.Address, client.ID,
	).Scan(&client.UpdatedOn)
	return translateErr(err)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Client, int32, error) {
	offset := (page - 1) * pageSize
	where := ``
	args := []any{}
	if search != "" {
		where = `WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR national_id ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var count int32
	countQuery := `SELECT count(*) FROM clients ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients ` + where +
		` ORDER BY last_name, first_name LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, *c)
	}
	return clients, count, rows.Err()
}
