package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `
		SELECT id, name, type, phone, address, is_blacklisted, blacklist_reason, created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	var reason *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Type, &c.Phone, &c.Address,
		&c.IsBlacklisted, &reason, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if reason != nil {
		c.BlacklistReason = *reason
	}
	return &c, nil
}

// SetBlacklisted marca al cliente en lista negra con el motivo dado.
func (r *CustomerRepo) SetBlacklisted(id string, reason string) error {
	query := `
		UPDATE customers
		SET is_blacklisted = TRUE, blacklist_reason = $1, updated_at = NOW()
		WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, reason, id)
	if err != nil {
		return fmt.Errorf("blacklist customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
