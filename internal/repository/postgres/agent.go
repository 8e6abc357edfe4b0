package postgres

import (
	"context"
	"database/sql"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type agentRepository struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) repository.AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	query := `SELECT id, username, COALESCE(full_name, ''), COALESCE(email, ''), created_on
	          FROM agents WHERE id = $1`
	var a domain.Agent
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Username, &a.FullName, &a.Email, &a.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *agentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	query := `SELECT id, username, COALESCE(full_name, ''), COALESCE(email, ''), created_on
	          FROM agents ORDER BY username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(&a.ID, &a.Username, &a.FullName, &a.Email, &a.CreatedOn); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}
