package documenten

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads document rows from PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetInformatieobject(ctx context.Context, id uuid.UUID) (*EnkelvoudigInformatieObject, error) {
	const query = `
		SELECT uuid, url, identificatie, informatieobjecttype, status, locked,
		       indicatie_gebruiksrecht
		FROM documenten_enkelvoudiginformatieobject
		WHERE uuid = $1
	`
	var eio EnkelvoudigInformatieObject
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&eio.UUID, &eio.URL, &eio.Identificatie, &eio.Informatieobjecttype,
		&eio.Status, &eio.Locked, &eio.IndicatieGebruiksrecht,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get informatieobject: %w", err)
	}
	return &eio, nil
}

func (s *PostgresStore) CreateObjectInformatieObject(ctx context.Context, informatieobjectURL, zaakURL string) error {
	const query = `
		INSERT INTO documenten_objectinformatieobject (informatieobject, object, object_type)
		VALUES ($1, $2, 'zaak')
		ON CONFLICT DO NOTHING
	`
	if _, err := s.pool.Exec(ctx, query, informatieobjectURL, zaakURL); err != nil {
		return fmt.Errorf("create objectinformatieobject: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteObjectInformatieObject(ctx context.Context, informatieobjectURL, zaakURL string) error {
	const query = `
		DELETE FROM documenten_objectinformatieobject
		WHERE informatieobject = $1 AND object = $2 AND object_type = 'zaak'
	`
	if _, err := s.pool.Exec(ctx, query, informatieobjectURL, zaakURL); err != nil {
		return fmt.Errorf("delete objectinformatieobject: %w", err)
	}
	return nil
}
