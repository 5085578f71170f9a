package besluiten

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zaakregister/pkg/types"
)

// PostgresStore reads besluit rows from PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func scanBesluit(row pgx.Row) (*Besluit, error) {
	var b Besluit
	var ingangsdatum time.Time
	var vervaldatum *time.Time
	err := row.Scan(&b.UUID, &b.URL, &b.Zaak, &ingangsdatum, &vervaldatum)
	if err != nil {
		return nil, err
	}
	b.Ingangsdatum = types.DateOf(ingangsdatum)
	if vervaldatum != nil {
		b.Vervaldatum = types.DatePtr(types.DateOf(*vervaldatum))
	}
	return &b, nil
}

func (s *PostgresStore) GetBesluit(ctx context.Context, id uuid.UUID) (*Besluit, error) {
	const query = `
		SELECT uuid, url, zaak, ingangsdatum, vervaldatum
		FROM besluiten_besluit
		WHERE uuid = $1
	`
	b, err := scanBesluit(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get besluit: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) ListByZaakURL(ctx context.Context, zaakURL string) ([]*Besluit, error) {
	const query = `
		SELECT uuid, url, zaak, ingangsdatum, vervaldatum
		FROM besluiten_besluit
		WHERE zaak = $1
	`
	rows, err := s.pool.Query(ctx, query, zaakURL)
	if err != nil {
		return nil, fmt.Errorf("list besluiten: %w", err)
	}
	defer rows.Close()

	var out []*Besluit
	for rows.Next() {
		b, err := scanBesluit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan besluit: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
