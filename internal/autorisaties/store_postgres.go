package autorisaties

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zaakregister/pkg/zgw"
)

// PostgresStore reads applications and grants from PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetByClientID(ctx context.Context, clientID string) (*Applicatie, error) {
	const appQuery = `
		SELECT uuid, client_ids, label, heeft_alle_autorisaties
		FROM autorisaties_applicatie
		WHERE $1 = ANY(client_ids)
	`
	var app Applicatie
	err := s.pool.QueryRow(ctx, appQuery, clientID).Scan(
		&app.UUID, &app.ClientIDs, &app.Label, &app.HeeftAlleAutorisaties,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get applicatie: %w", err)
	}

	const autQuery = `
		SELECT component, scopes, zaaktype, max_vertrouwelijkheidaanduiding
		FROM autorisaties_autorisatie
		WHERE applicatie_uuid = $1
	`
	rows, err := s.pool.Query(ctx, autQuery, app.UUID)
	if err != nil {
		return nil, fmt.Errorf("list autorisaties: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var aut Autorisatie
		var maxVA string
		if err := rows.Scan(&aut.Component, &aut.Scopes, &aut.Zaaktype, &maxVA); err != nil {
			return nil, fmt.Errorf("scan autorisatie: %w", err)
		}
		aut.MaxVertrouwelijkheidaanduiding = zgw.VertrouwelijkheidAanduiding(maxVA)
		app.Autorisaties = append(app.Autorisaties, aut)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const catQuery = `
		SELECT component, scopes, catalogus, max_vertrouwelijkheidaanduiding
		FROM autorisaties_catalogusautorisatie
		WHERE applicatie_uuid = $1
	`
	catRows, err := s.pool.Query(ctx, catQuery, app.UUID)
	if err != nil {
		return nil, fmt.Errorf("list catalogusautorisaties: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var aut CatalogusAutorisatie
		var maxVA string
		if err := catRows.Scan(&aut.Component, &aut.Scopes, &aut.Catalogus, &maxVA); err != nil {
			return nil, fmt.Errorf("scan catalogusautorisatie: %w", err)
		}
		aut.MaxVertrouwelijkheidaanduiding = zgw.VertrouwelijkheidAanduiding(maxVA)
		app.CatalogusAutorisaties = append(app.CatalogusAutorisaties, aut)
	}
	return &app, catRows.Err()
}
