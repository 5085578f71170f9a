package catalogi

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zaakregister/pkg/zgw"
)

// PostgresStore reads catalog rows from PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL-backed catalog store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetZaaktype(ctx context.Context, id uuid.UUID) (*Zaaktype, error) {
	const query = `
		SELECT uuid, url, identificatie, omschrijving, catalogus, concept,
		       deelzaaktypen, producten_of_diensten
		FROM catalogi_zaaktype
		WHERE uuid = $1
	`
	var zt Zaaktype
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&zt.UUID, &zt.URL, &zt.Identificatie, &zt.Omschrijving, &zt.Catalogus,
		&zt.Concept, &zt.Deelzaaktypen, &zt.ProductenOfDiensten,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get zaaktype: %w", err)
	}
	return &zt, nil
}

func (s *PostgresStore) GetStatustype(ctx context.Context, id uuid.UUID) (*Statustype, error) {
	const query = `
		SELECT uuid, url, zaaktype, omschrijving, volgnummer, is_eindstatus
		FROM catalogi_statustype
		WHERE uuid = $1
	`
	var st Statustype
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&st.UUID, &st.URL, &st.Zaaktype, &st.Omschrijving, &st.Volgnummer, &st.IsEindstatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get statustype: %w", err)
	}
	return &st, nil
}

func (s *PostgresStore) GetResultaattype(ctx context.Context, id uuid.UUID) (*Resultaattype, error) {
	const query = `
		SELECT uuid, url, zaaktype, omschrijving, resultaattypeomschrijving,
		       selectielijstklasse, archiefnominatie, archiefactietermijn,
		       brondatum_afleidingswijze, brondatum_datumkenmerk,
		       brondatum_objecttype, brondatum_registratie,
		       brondatum_procestermijn, brondatum_einddatum_bekend
		FROM catalogi_resultaattype
		WHERE uuid = $1
	`
	var rt Resultaattype
	var nominatie, afleiding, objecttype string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&rt.UUID, &rt.URL, &rt.Zaaktype, &rt.Omschrijving, &rt.Resultaattypeomschrijving,
		&rt.Selectielijstklasse, &nominatie, &rt.Archiefactietermijn,
		&afleiding, &rt.Brondatum.Datumkenmerk,
		&objecttype, &rt.Brondatum.Registratie,
		&rt.Brondatum.Procestermijn, &rt.Brondatum.EinddatumBekend,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resultaattype: %w", err)
	}
	rt.Archiefnominatie = zgw.Archiefnominatie(nominatie)
	rt.Brondatum.Afleidingswijze = zgw.Afleidingswijze(afleiding)
	rt.Brondatum.Objecttype = zgw.ZaakobjectType(objecttype)
	return &rt, nil
}

func (s *PostgresStore) GetEigenschap(ctx context.Context, id uuid.UUID) (*Eigenschap, error) {
	const query = `
		SELECT uuid, url, zaaktype, naam, definitie
		FROM catalogi_eigenschap
		WHERE uuid = $1
	`
	var e Eigenschap
	err := s.pool.QueryRow(ctx, query, id).Scan(&e.UUID, &e.URL, &e.Zaaktype, &e.Naam, &e.Definitie)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get eigenschap: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) GetRoltype(ctx context.Context, id uuid.UUID) (*Roltype, error) {
	const query = `
		SELECT uuid, url, zaaktype, omschrijving, omschrijving_generiek
		FROM catalogi_roltype
		WHERE uuid = $1
	`
	var rt Roltype
	var generiek string
	err := s.pool.QueryRow(ctx, query, id).Scan(&rt.UUID, &rt.URL, &rt.Zaaktype, &rt.Omschrijving, &generiek)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get roltype: %w", err)
	}
	rt.OmschrijvingGeneriek = zgw.RolOmschrijvingGeneriek(generiek)
	return &rt, nil
}

func (s *PostgresStore) GetZaakobjecttype(ctx context.Context, id uuid.UUID) (*Zaakobjecttype, error) {
	const query = `
		SELECT uuid, url, zaaktype, ander_objecttype, objecttype, relatie_omschrijving
		FROM catalogi_zaakobjecttype
		WHERE uuid = $1
	`
	var zot Zaakobjecttype
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&zot.UUID, &zot.URL, &zot.Zaaktype, &zot.AnderObjecttype, &zot.Objecttype, &zot.RelatieOmschrijving,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get zaakobjecttype: %w", err)
	}
	return &zot, nil
}

func (s *PostgresStore) GetInformatieobjecttype(ctx context.Context, id uuid.UUID) (*Informatieobjecttype, error) {
	const query = `
		SELECT uuid, url, catalogus, omschrijving
		FROM catalogi_informatieobjecttype
		WHERE uuid = $1
	`
	var iot Informatieobjecttype
	err := s.pool.QueryRow(ctx, query, id).Scan(&iot.UUID, &iot.URL, &iot.Catalogus, &iot.Omschrijving)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get informatieobjecttype: %w", err)
	}
	return &iot, nil
}

func (s *PostgresStore) ZaaktypeInformatieobjecttypeExists(ctx context.Context, zaaktypeURL, iotURL string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM catalogi_zaaktypeinformatieobjecttype
			WHERE zaaktype = $1 AND informatieobjecttype = $2
		)
	`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, zaaktypeURL, iotURL).Scan(&exists); err != nil {
		return false, fmt.Errorf("check zaaktype-informatieobjecttype relation: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListZaaktypenByCatalogus(ctx context.Context, catalogusURL string) ([]string, error) {
	const query = `SELECT url FROM catalogi_zaaktype WHERE catalogus = $1`
	rows, err := s.pool.Query(ctx, query, catalogusURL)
	if err != nil {
		return nil, fmt.Errorf("list zaaktypen by catalogus: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan zaaktype url: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
