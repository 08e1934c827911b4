package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo lectura de precios sobre PostgreSQL (usable con pool o tx).
// Los roles autorizados viven en price_roles (un rol por fila).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// GetByID obtiene un precio con su lista de roles cargada.
func (r *PriceRepo) GetByID(id string) (*entity.Price, error) {
	query := `
		SELECT p.id, p.product_id, p.amount, p.channel, p.is_active, p.valid_from, p.valid_until,
		       COALESCE(array_agg(pr.role) FILTER (WHERE pr.role IS NOT NULL), '{}'),
		       p.created_at, p.updated_at
		FROM prices p
		LEFT JOIN price_roles pr ON pr.price_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`
	var p entity.Price
	var roles []string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.Amount, &p.Channel, &p.IsActive,
		&p.ValidFrom, &p.ValidUntil, &roles, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	p.Roles = toRoles(roles)
	return &p, nil
}

// ListEligible precios elegibles para rol+canal (activos, canal igual o ALL,
// ventana vigente, rol autorizado), ascendentes por monto.
func (r *PriceRepo) ListEligible(role entity.Role, channel, productID string, now time.Time) ([]*entity.Price, error) {
	query := `
		SELECT p.id, p.product_id, p.amount, p.channel, p.is_active, p.valid_from, p.valid_until,
		       COALESCE(array_agg(pr2.role) FILTER (WHERE pr2.role IS NOT NULL), '{}'),
		       p.created_at, p.updated_at
		FROM prices p
		JOIN price_roles pr ON pr.price_id = p.id AND pr.role = $1
		LEFT JOIN price_roles pr2 ON pr2.price_id = p.id
		WHERE p.is_active = TRUE
		  AND (p.channel = $2 OR p.channel = 'ALL')
		  AND p.valid_from <= $3
		  AND (p.valid_until IS NULL OR p.valid_until > $3)`
	args := []any{string(role), channel, now}
	if productID != "" {
		query += ` AND p.product_id = $4`
		args = append(args, productID)
	}
	query += `
		GROUP BY p.id
		ORDER BY p.amount ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list eligible prices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Price
	for rows.Next() {
		var p entity.Price
		var roles []string
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Amount, &p.Channel, &p.IsActive,
			&p.ValidFrom, &p.ValidUntil, &roles, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		p.Roles = toRoles(roles)
		list = append(list, &p)
	}
	return list, rows.Err()
}

func toRoles(raw []string) []entity.Role {
	roles := make([]entity.Role, 0, len(raw))
	for _, s := range raw {
		roles = append(roles, entity.Role(s))
	}
	return roles
}
