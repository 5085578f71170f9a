package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb/geojson"

	"zaakregister/internal/zaken/models"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same query
// methods run inside and outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is the production store. Polymorphic identification records
// and gegevensgroepen persist as JSONB documents on their parent rows; the
// tagged-union validation lives in the service layer.
type PostgresStore struct {
	pool     *pgxpool.Pool
	db       querier
	countCap int
}

func NewPostgresStore(pool *pgxpool.Pool, countCap int) *PostgresStore {
	return &PostgresStore{pool: pool, db: pool, countCap: countCap}
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(Store) error) error {
	if _, inTx := s.db.(pgx.Tx); inTx {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txStore := &PostgresStore{pool: s.pool, db: tx, countCap: s.countCap}
	if err := fn(txStore); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// vaOrderSQL maps the confidentiality enum to its order value in SQL, for
// ceiling comparisons in authorization predicates.
const vaOrderSQL = `CASE z.vertrouwelijkheidaanduiding
	WHEN 'openbaar' THEN 0 WHEN 'beperkt_openbaar' THEN 1 WHEN 'intern' THEN 2
	WHEN 'zaakvertrouwelijk' THEN 3 WHEN 'vertrouwelijk' THEN 4
	WHEN 'confidentieel' THEN 5 WHEN 'geheim' THEN 6 WHEN 'zeer_geheim' THEN 7
	ELSE 8 END`

// grantsPredicate appends the authorization predicate and its args. The
// grants unfold into two parallel arrays joined via unnest.
func grantsPredicate(g Grants, where *[]string, args *[]any) {
	if g.All {
		return
	}
	zaaktypen := make([]string, 0, len(g.Ceilings))
	orders := make([]int, 0, len(g.Ceilings))
	for zt, ceiling := range g.Ceilings {
		zaaktypen = append(zaaktypen, zt)
		orders = append(orders, ceiling.Order())
	}
	*args = append(*args, zaaktypen, orders)
	n := len(*args)
	*where = append(*where, fmt.Sprintf(
		`EXISTS (SELECT 1 FROM unnest($%d::text[], $%d::int[]) AS g(zaaktype, max_order)
		 WHERE g.zaaktype = z.zaaktype AND %s <= g.max_order)`, n-1, n, vaOrderSQL))
}

// fuzzyCount counts rows matching the filtered query, capped so large lists
// never pay for a full scan.
func (s *PostgresStore) fuzzyCount(ctx context.Context, baseQuery string, args []any) (int, bool, error) {
	if s.countCap <= 0 {
		var count int
		err := s.db.QueryRow(ctx, "SELECT count(*) FROM ("+baseQuery+") c", args...).Scan(&count)
		return count, true, err
	}
	capped := fmt.Sprintf("SELECT count(*) FROM (%s LIMIT %d) c", baseQuery, s.countCap+1)
	var count int
	if err := s.db.QueryRow(ctx, capped, args...).Scan(&count); err != nil {
		return 0, false, err
	}
	if count > s.countCap {
		return s.countCap, false, nil
	}
	return count, true, nil
}

// --- identificaties ---

func (s *PostgresStore) GenerateIdentificatie(ctx context.Context, bronorganisatie string, year int) (string, error) {
	run := func(st Store) (string, error) {
		ps := st.(*PostgresStore)
		// Named advisory lock: concurrent generators for any organisation
		// queue here, unrelated table access is unaffected.
		if _, err := ps.db.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtext('generate-zaak-identification'))`); err != nil {
			return "", fmt.Errorf("advisory lock: %w", err)
		}
		prefix := fmt.Sprintf("ZAAK-%d-", year)
		var max int
		err := ps.db.QueryRow(ctx, `
			SELECT COALESCE(MAX(CAST(SUBSTRING(identificatie FROM $1) AS int)), 0)
			FROM zaken_zaakidentificatie
			WHERE bronorganisatie = $2 AND identificatie LIKE $3
		`, "^"+prefix+`(\d+)$`, bronorganisatie, prefix+"%").Scan(&max)
		if err != nil {
			return "", fmt.Errorf("max serial: %w", err)
		}
		ident := fmt.Sprintf("%s%010d", prefix, max+1)
		_, err = ps.db.Exec(ctx, `
			INSERT INTO zaken_zaakidentificatie (identificatie, bronorganisatie)
			VALUES ($1, $2)
		`, ident, bronorganisatie)
		if err != nil {
			return "", fmt.Errorf("insert identificatie: %w", err)
		}
		return ident, nil
	}

	if _, inTx := s.db.(pgx.Tx); inTx {
		return run(s)
	}
	var ident string
	err := s.InTx(ctx, func(st Store) error {
		var err error
		ident, err = run(st)
		return err
	})
	return ident, err
}

func (s *PostgresStore) ReservationAvailable(ctx context.Context, bronorganisatie, identificatie string) (bool, error) {
	var available bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM zaken_zaakidentificatie
			WHERE bronorganisatie = $1 AND identificatie = $2 AND zaak_uuid IS NULL
		)
	`, bronorganisatie, identificatie).Scan(&available)
	return available, err
}

func (s *PostgresStore) IdentificatieExists(ctx context.Context, bronorganisatie, identificatie string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM zaken_zaakidentificatie
			WHERE bronorganisatie = $1 AND identificatie = $2
		)
	`, bronorganisatie, identificatie).Scan(&exists)
	return exists, err
}

// --- zaken ---

const zaakColumns = `
	z.uuid, i.identificatie, i.bronorganisatie, z.zaaktype, z.hoofdzaak,
	z.omschrijving, z.toelichting, z.communicatiekanaal, z.communicatiekanaal_naam,
	z.registratiedatum, z.startdatum, z.einddatum, z.einddatum_gepland,
	z.uiterlijke_einddatum_afdoening, z.publicatiedatum,
	z.vertrouwelijkheidaanduiding, z.producten_of_diensten,
	z.betalingsindicatie, z.laatste_betaaldatum, z.zaakgeometrie,
	z.verlenging_reden, z.verlenging_duur,
	z.opschorting_indicatie, z.opschorting_reden, z.opschorting_eerdere,
	z.processobject, z.processobjectaard, z.selectielijstklasse,
	z.archiefnominatie, z.archiefstatus, z.archiefactiedatum,
	z.startdatum_bewaartermijn, z.relevante_andere_zaken, z.kenmerken,
	z.created_at, z.updated_at`

const zaakFrom = ` FROM zaken_zaak z JOIN zaken_zaakidentificatie i ON i.zaak_uuid = z.uuid`

func dateArg(d *types.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

func scanDate(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	d := types.DateOf(*t)
	return &d
}

func scanZaak(row pgx.Row) (*models.Zaak, error) {
	var (
		zaak                                                models.Zaak
		registratie, start                                  time.Time
		eind, gepland, uiterlijk, publicatie, actie, bewaar *time.Time
		geom, processobject, relevante, kenmerken           []byte
		va, betaling, nominatie, status                     string
	)
	err := row.Scan(
		&zaak.UUID, &zaak.Identificatie.Identificatie, &zaak.Identificatie.Bronorganisatie,
		&zaak.Zaaktype, &zaak.Hoofdzaak,
		&zaak.Omschrijving, &zaak.Toelichting, &zaak.Communicatiekanaal, &zaak.CommunicatiekanaalNaam,
		&registratie, &start, &eind, &gepland, &uiterlijk, &publicatie,
		&va, &zaak.ProductenOfDiensten,
		&betaling, &zaak.LaatsteBetaaldatum, &geom,
		&zaak.Verlenging.Reden, &zaak.Verlenging.Duur,
		&zaak.Opschorting.Indicatie, &zaak.Opschorting.Reden, &zaak.Opschorting.EerdereOpschorting,
		&processobject, &zaak.Processobjectaard, &zaak.Selectielijstklasse,
		&nominatie, &status, &actie, &bewaar, &relevante, &kenmerken,
		&zaak.CreatedAt, &zaak.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan zaak: %w", err)
	}
	zaak.Registratiedatum = types.DateOf(registratie)
	zaak.Startdatum = types.DateOf(start)
	zaak.Einddatum = scanDate(eind)
	zaak.EinddatumGepland = scanDate(gepland)
	zaak.UiterlijkeEinddatumAfdoening = scanDate(uiterlijk)
	zaak.Publicatiedatum = scanDate(publicatie)
	zaak.Archiefactiedatum = scanDate(actie)
	zaak.StartdatumBewaartermijn = scanDate(bewaar)
	zaak.Vertrouwelijkheidaanduiding = zgw.VertrouwelijkheidAanduiding(va)
	zaak.Betalingsindicatie = zgw.BetalingsIndicatie(betaling)
	zaak.Archiefnominatie = zgw.Archiefnominatie(nominatie)
	zaak.Archiefstatus = zgw.Archiefstatus(status)
	if len(geom) > 0 {
		g, err := geojson.UnmarshalGeometry(geom)
		if err != nil {
			return nil, fmt.Errorf("unmarshal zaakgeometrie: %w", err)
		}
		zaak.Zaakgeometrie = g
	}
	if len(processobject) > 0 {
		if err := json.Unmarshal(processobject, &zaak.Processobject); err != nil {
			return nil, fmt.Errorf("unmarshal processobject: %w", err)
		}
	}
	if len(relevante) > 0 {
		if err := json.Unmarshal(relevante, &zaak.RelevanteAndereZaken); err != nil {
			return nil, fmt.Errorf("unmarshal relevante_andere_zaken: %w", err)
		}
	}
	if len(kenmerken) > 0 {
		if err := json.Unmarshal(kenmerken, &zaak.Kenmerken); err != nil {
			return nil, fmt.Errorf("unmarshal kenmerken: %w", err)
		}
	}
	return &zaak, nil
}

func zaakArgs(zaak *models.Zaak) ([]any, error) {
	var geom []byte
	if zaak.Zaakgeometrie != nil {
		var err error
		geom, err = json.Marshal(zaak.Zaakgeometrie)
		if err != nil {
			return nil, fmt.Errorf("marshal zaakgeometrie: %w", err)
		}
	}
	processobject, err := json.Marshal(zaak.Processobject)
	if err != nil {
		return nil, err
	}
	relevante, err := json.Marshal(zaak.RelevanteAndereZaken)
	if err != nil {
		return nil, err
	}
	kenmerken, err := json.Marshal(zaak.Kenmerken)
	if err != nil {
		return nil, err
	}
	return []any{
		zaak.UUID, zaak.Zaaktype, zaak.Hoofdzaak,
		zaak.Omschrijving, zaak.Toelichting, zaak.Communicatiekanaal, zaak.CommunicatiekanaalNaam,
		zaak.Registratiedatum.Time(), zaak.Startdatum.Time(),
		dateArg(zaak.Einddatum), dateArg(zaak.EinddatumGepland),
		dateArg(zaak.UiterlijkeEinddatumAfdoening), dateArg(zaak.Publicatiedatum),
		string(zaak.Vertrouwelijkheidaanduiding), zaak.ProductenOfDiensten,
		string(zaak.Betalingsindicatie), zaak.LaatsteBetaaldatum, geom,
		zaak.Verlenging.Reden, zaak.Verlenging.Duur,
		zaak.Opschorting.Indicatie, zaak.Opschorting.Reden, zaak.Opschorting.EerdereOpschorting,
		processobject, zaak.Processobjectaard, zaak.Selectielijstklasse,
		string(zaak.Archiefnominatie), string(zaak.Archiefstatus),
		dateArg(zaak.Archiefactiedatum), dateArg(zaak.StartdatumBewaartermijn),
		relevante, kenmerken,
	}, nil
}

func (s *PostgresStore) CreateZaak(ctx context.Context, zaak *models.Zaak) error {
	return s.InTx(ctx, func(st Store) error {
		ps := st.(*PostgresStore)

		args, err := zaakArgs(zaak)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		zaak.CreatedAt, zaak.UpdatedAt = now, now
		_, err = ps.db.Exec(ctx, `
			INSERT INTO zaken_zaak (
				uuid, zaaktype, hoofdzaak, omschrijving, toelichting,
				communicatiekanaal, communicatiekanaal_naam,
				registratiedatum, startdatum, einddatum, einddatum_gepland,
				uiterlijke_einddatum_afdoening, publicatiedatum,
				vertrouwelijkheidaanduiding, producten_of_diensten,
				betalingsindicatie, laatste_betaaldatum, zaakgeometrie,
				verlenging_reden, verlenging_duur,
				opschorting_indicatie, opschorting_reden, opschorting_eerdere,
				processobject, processobjectaard, selectielijstklasse,
				archiefnominatie, archiefstatus, archiefactiedatum,
				startdatum_bewaartermijn, relevante_andere_zaken, kenmerken,
				created_at, updated_at
			) VALUES (
				$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
				$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34
			)
		`, append(args, now, now)...)
		if err != nil {
			return fmt.Errorf("insert zaak: %w", err)
		}

		// Attach a reserved identification when one exists, otherwise create
		// the identification row alongside the case.
		tag, err := ps.db.Exec(ctx, `
			UPDATE zaken_zaakidentificatie SET zaak_uuid = $1
			WHERE bronorganisatie = $2 AND identificatie = $3 AND zaak_uuid IS NULL
		`, zaak.UUID, zaak.Identificatie.Bronorganisatie, zaak.Identificatie.Identificatie)
		if err != nil {
			return fmt.Errorf("claim identificatie: %w", err)
		}
		if tag.RowsAffected() == 0 {
			_, err = ps.db.Exec(ctx, `
				INSERT INTO zaken_zaakidentificatie (identificatie, bronorganisatie, zaak_uuid)
				VALUES ($1, $2, $3)
			`, zaak.Identificatie.Identificatie, zaak.Identificatie.Bronorganisatie, zaak.UUID)
			if err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicate
				}
				return fmt.Errorf("insert identificatie: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) GetZaak(ctx context.Context, id uuid.UUID) (*models.Zaak, error) {
	row := s.db.QueryRow(ctx, "SELECT"+zaakColumns+zaakFrom+" WHERE z.uuid = $1", id)
	return scanZaak(row)
}

func (s *PostgresStore) UpdateZaak(ctx context.Context, zaak *models.Zaak) error {
	args, err := zaakArgs(zaak)
	if err != nil {
		return err
	}
	zaak.UpdatedAt = time.Now().UTC()
	tag, err := s.db.Exec(ctx, `
		UPDATE zaken_zaak SET
			zaaktype = $2, hoofdzaak = $3, omschrijving = $4, toelichting = $5,
			communicatiekanaal = $6, communicatiekanaal_naam = $7,
			registratiedatum = $8, startdatum = $9, einddatum = $10,
			einddatum_gepland = $11, uiterlijke_einddatum_afdoening = $12,
			publicatiedatum = $13, vertrouwelijkheidaanduiding = $14,
			producten_of_diensten = $15, betalingsindicatie = $16,
			laatste_betaaldatum = $17, zaakgeometrie = $18,
			verlenging_reden = $19, verlenging_duur = $20,
			opschorting_indicatie = $21, opschorting_reden = $22,
			opschorting_eerdere = $23, processobject = $24,
			processobjectaard = $25, selectielijstklasse = $26,
			archiefnominatie = $27, archiefstatus = $28,
			archiefactiedatum = $29, startdatum_bewaartermijn = $30,
			relevante_andere_zaken = $31, kenmerken = $32, updated_at = $33
		WHERE uuid = $1
	`, append(args, zaak.UpdatedAt)...)
	if err != nil {
		return fmt.Errorf("update zaak: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteZaak(ctx context.Context, id uuid.UUID) error {
	return s.InTx(ctx, func(st Store) error {
		ps := st.(*PostgresStore)
		for _, table := range []string{
			"zaken_status", "zaken_resultaat", "zaken_rol", "zaken_zaakeigenschap",
			"zaken_zaakobject", "zaken_zaakinformatieobject", "zaken_zaakbesluit",
			"zaken_zaakcontactmoment", "zaken_zaakverzoek", "zaken_klantcontact",
		} {
			if _, err := ps.db.Exec(ctx, "DELETE FROM "+table+" WHERE zaak_uuid = $1", id); err != nil {
				return fmt.Errorf("delete from %s: %w", table, err)
			}
		}
		if _, err := ps.db.Exec(ctx, "DELETE FROM zaken_zaakidentificatie WHERE zaak_uuid = $1", id); err != nil {
			return fmt.Errorf("delete identificatie: %w", err)
		}
		tag, err := ps.db.Exec(ctx, "DELETE FROM zaken_zaak WHERE uuid = $1", id)
		if err != nil {
			return fmt.Errorf("delete zaak: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *PostgresStore) ListZaken(ctx context.Context, f ZaakFilter) (ListResult[*models.Zaak], error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	grantsPredicate(f.Grants, &where, &args)
	if f.Bronorganisatie != "" {
		add("i.bronorganisatie = ?", f.Bronorganisatie)
	}
	if f.Identificatie != "" {
		add("i.identificatie = ?", f.Identificatie)
	}
	if f.Zaaktype != "" {
		add("z.zaaktype = ?", f.Zaaktype)
	}
	if f.Hoofdzaak != "" {
		add("z.hoofdzaak = ?", f.Hoofdzaak)
	}
	if f.Archiefnominatie != "" {
		add("z.archiefnominatie = ?", f.Archiefnominatie)
	}
	if f.Archiefstatus != "" {
		add("z.archiefstatus = ?", f.Archiefstatus)
	}
	if f.StartdatumFrom != nil {
		add("z.startdatum >= ?", f.StartdatumFrom.Time())
	}
	if f.StartdatumUntil != nil {
		add("z.startdatum <= ?", f.StartdatumUntil.Time())
	}
	if f.EinddatumSet != nil {
		if *f.EinddatumSet {
			where = append(where, "z.einddatum IS NOT NULL")
		} else {
			where = append(where, "z.einddatum IS NULL")
		}
	}
	if len(f.Within) > 0 {
		polygon, err := json.Marshal(geojson.NewGeometry(f.Within))
		if err != nil {
			return ListResult[*models.Zaak]{}, err
		}
		add("z.zaakgeometrie IS NOT NULL AND ST_Within(ST_GeomFromGeoJSON(z.zaakgeometrie::text), ST_GeomFromGeoJSON(?))", string(polygon))
	}

	query := "SELECT" + zaakColumns + zaakFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	count, exact, err := s.fuzzyCount(ctx, query, args)
	if err != nil {
		return ListResult[*models.Zaak]{}, fmt.Errorf("count zaken: %w", err)
	}

	switch f.Ordering {
	case "startdatum":
		query += " ORDER BY z.startdatum ASC"
	case "-startdatum":
		query += " ORDER BY z.startdatum DESC"
	case "identificatie":
		query += " ORDER BY i.identificatie ASC"
	default:
		query += " ORDER BY z.created_at ASC"
	}
	if f.Page.Size > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Page.Size, f.Page.Offset())
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return ListResult[*models.Zaak]{}, fmt.Errorf("list zaken: %w", err)
	}
	defer rows.Close()

	var items []*models.Zaak
	for rows.Next() {
		zaak, err := scanZaak(rows)
		if err != nil {
			return ListResult[*models.Zaak]{}, err
		}
		items = append(items, zaak)
	}
	return ListResult[*models.Zaak]{Items: items, Count: count, CountExact: exact}, rows.Err()
}

// childQuery builds the WHERE clause shared by child list queries: parent
// filter plus the authorization predicate via a join on the case.
func childQuery(f ChildFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.Zaak != nil {
		args = append(args, *f.Zaak)
		where = append(where, fmt.Sprintf("c.zaak_uuid = $%d", len(args)))
	}
	grantsPredicate(f.Grants, &where, &args)
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func listChildRows[T any](ctx context.Context, s *PostgresStore, baseSelect string, f ChildFilter, orderBy string, scan func(pgx.Rows) (*T, error)) (ListResult[*T], error) {
	whereClause, args := childQuery(f)
	query := baseSelect + whereClause

	count, exact, err := s.fuzzyCount(ctx, query, args)
	if err != nil {
		return ListResult[*T]{}, err
	}

	query += " ORDER BY " + orderBy
	if f.Page.Size > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Page.Size, f.Page.Offset())
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return ListResult[*T]{}, err
	}
	defer rows.Close()

	var items []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return ListResult[*T]{}, err
		}
		items = append(items, item)
	}
	return ListResult[*T]{Items: items, Count: count, CountExact: exact}, rows.Err()
}

// --- statussen ---

const statusSelect = `SELECT c.uuid, c.zaak_uuid, c.statustype, c.datum_status_gezet,
	c.statustoelichting, c.gezet_door, c.created_at
	FROM zaken_status c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanStatus(row pgx.Row) (*models.Status, error) {
	var status models.Status
	err := row.Scan(&status.UUID, &status.Zaak, &status.Statustype,
		&status.DatumStatusGezet, &status.Statustoelichting, &status.GezetDoor, &status.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan status: %w", err)
	}
	return &status, nil
}

func (s *PostgresStore) CreateStatus(ctx context.Context, status *models.Status) error {
	status.CreatedAt = time.Now().UTC()
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_status (uuid, zaak_uuid, statustype, datum_status_gezet,
			statustoelichting, gezet_door, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, status.UUID, status.Zaak, status.Statustype, status.DatumStatusGezet,
		status.Statustoelichting, status.GezetDoor, status.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrStatusConflict
		}
		return fmt.Errorf("insert status: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetStatus(ctx context.Context, id uuid.UUID) (*models.Status, error) {
	return scanStatus(s.db.QueryRow(ctx, statusSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) LatestStatus(ctx context.Context, zaak uuid.UUID) (*models.Status, error) {
	return scanStatus(s.db.QueryRow(ctx,
		statusSelect+" WHERE c.zaak_uuid = $1 ORDER BY c.datum_status_gezet DESC LIMIT 1", zaak))
}

func (s *PostgresStore) CountStatussen(ctx context.Context, zaak uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, "SELECT count(*) FROM zaken_status WHERE zaak_uuid = $1", zaak).Scan(&n)
	return n, err
}

func (s *PostgresStore) ListStatussen(ctx context.Context, f ChildFilter) (ListResult[*models.Status], error) {
	return listChildRows(ctx, s, statusSelect, f, "c.datum_status_gezet DESC",
		func(rows pgx.Rows) (*models.Status, error) { return scanStatus(rows) })
}

// --- resultaten ---

const resultaatSelect = `SELECT c.uuid, c.zaak_uuid, c.resultaattype, c.toelichting, c.created_at
	FROM zaken_resultaat c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanResultaat(row pgx.Row) (*models.Resultaat, error) {
	var resultaat models.Resultaat
	err := row.Scan(&resultaat.UUID, &resultaat.Zaak, &resultaat.Resultaattype,
		&resultaat.Toelichting, &resultaat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan resultaat: %w", err)
	}
	return &resultaat, nil
}

func (s *PostgresStore) CreateResultaat(ctx context.Context, resultaat *models.Resultaat) error {
	resultaat.CreatedAt = time.Now().UTC()
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_resultaat (uuid, zaak_uuid, resultaattype, toelichting, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, resultaat.UUID, resultaat.Zaak, resultaat.Resultaattype, resultaat.Toelichting, resultaat.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrResultaatExists
		}
		return fmt.Errorf("insert resultaat: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetResultaat(ctx context.Context, id uuid.UUID) (*models.Resultaat, error) {
	return scanResultaat(s.db.QueryRow(ctx, resultaatSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) GetResultaatByZaak(ctx context.Context, zaak uuid.UUID) (*models.Resultaat, error) {
	return scanResultaat(s.db.QueryRow(ctx, resultaatSelect+" WHERE c.zaak_uuid = $1", zaak))
}

func (s *PostgresStore) UpdateResultaat(ctx context.Context, resultaat *models.Resultaat) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE zaken_resultaat SET resultaattype = $2, toelichting = $3 WHERE uuid = $1
	`, resultaat.UUID, resultaat.Resultaattype, resultaat.Toelichting)
	if err != nil {
		return fmt.Errorf("update resultaat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteResultaat(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM zaken_resultaat WHERE uuid = $1", id)
	if err != nil {
		return fmt.Errorf("delete resultaat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListResultaten(ctx context.Context, f ChildFilter) (ListResult[*models.Resultaat], error) {
	return listChildRows(ctx, s, resultaatSelect, f, "c.created_at ASC",
		func(rows pgx.Rows) (*models.Resultaat, error) { return scanResultaat(rows) })
}

// --- rollen ---

const rolSelect = `SELECT c.uuid, c.zaak_uuid, c.betrokkene, c.betrokkene_type,
	c.roltype, c.omschrijving, c.omschrijving_generiek, c.roltoelichting,
	c.registratiedatum, c.indicatie_machtiging, c.contactpersoon,
	c.authenticatie_context, c.begin_geldigheid, c.einde_geldigheid, c.identificatie
	FROM zaken_rol c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanRol(row pgx.Row) (*models.Rol, error) {
	var (
		rol                           models.Rol
		betrokkeneType, machtiging    string
		generiek                      string
		contactpersoon, identificatie []byte
		begin, einde                  *time.Time
	)
	err := row.Scan(&rol.UUID, &rol.Zaak, &rol.Betrokkene, &betrokkeneType,
		&rol.Roltype, &rol.Omschrijving, &generiek, &rol.Roltoelichting,
		&rol.Registratiedatum, &machtiging, &contactpersoon,
		&rol.AuthenticatieContext, &begin, &einde, &identificatie)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan rol: %w", err)
	}
	rol.BetrokkeneType = zgw.BetrokkeneType(betrokkeneType)
	rol.OmschrijvingGeneriek = zgw.RolOmschrijvingGeneriek(generiek)
	rol.IndicatieMachtiging = zgw.IndicatieMachtiging(machtiging)
	rol.BeginGeldigheid = scanDate(begin)
	rol.EindeGeldigheid = scanDate(einde)
	if len(contactpersoon) > 0 {
		if err := json.Unmarshal(contactpersoon, &rol.ContactpersoonRol); err != nil {
			return nil, fmt.Errorf("unmarshal contactpersoon: %w", err)
		}
	}
	if len(identificatie) > 0 {
		if err := json.Unmarshal(identificatie, &rol.Identificatie); err != nil {
			return nil, fmt.Errorf("unmarshal rol identificatie: %w", err)
		}
	}
	return &rol, nil
}

func (s *PostgresStore) CreateRol(ctx context.Context, rol *models.Rol) error {
	contactpersoon, err := json.Marshal(rol.ContactpersoonRol)
	if err != nil {
		return err
	}
	identificatie, err := json.Marshal(rol.Identificatie)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO zaken_rol (uuid, zaak_uuid, betrokkene, betrokkene_type,
			roltype, omschrijving, omschrijving_generiek, roltoelichting,
			registratiedatum, indicatie_machtiging, contactpersoon,
			authenticatie_context, begin_geldigheid, einde_geldigheid, identificatie)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, rol.UUID, rol.Zaak, rol.Betrokkene, string(rol.BetrokkeneType),
		rol.Roltype, rol.Omschrijving, string(rol.OmschrijvingGeneriek), rol.Roltoelichting,
		rol.Registratiedatum, string(rol.IndicatieMachtiging), contactpersoon,
		rol.AuthenticatieContext, dateArg(rol.BeginGeldigheid), dateArg(rol.EindeGeldigheid), identificatie)
	if err != nil {
		return fmt.Errorf("insert rol: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetRol(ctx context.Context, id uuid.UUID) (*models.Rol, error) {
	return scanRol(s.db.QueryRow(ctx, rolSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) DeleteRol(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM zaken_rol WHERE uuid = $1", id)
	if err != nil {
		return fmt.Errorf("delete rol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRollen(ctx context.Context, f ChildFilter) (ListResult[*models.Rol], error) {
	return listChildRows(ctx, s, rolSelect, f, "c.registratiedatum ASC",
		func(rows pgx.Rows) (*models.Rol, error) { return scanRol(rows) })
}

// --- zaakeigenschappen ---

func scanZaakEigenschap(row pgx.Row) (*models.ZaakEigenschap, error) {
	var ze models.ZaakEigenschap
	err := row.Scan(&ze.UUID, &ze.Zaak, &ze.Eigenschap, &ze.Naam, &ze.Waarde)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan zaakeigenschap: %w", err)
	}
	return &ze, nil
}

func (s *PostgresStore) CreateZaakEigenschap(ctx context.Context, ze *models.ZaakEigenschap) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_zaakeigenschap (uuid, zaak_uuid, eigenschap, naam, waarde)
		VALUES ($1, $2, $3, $4, $5)
	`, ze.UUID, ze.Zaak, ze.Eigenschap, ze.Naam, ze.Waarde)
	if err != nil {
		return fmt.Errorf("insert zaakeigenschap: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetZaakEigenschap(ctx context.Context, zaak, id uuid.UUID) (*models.ZaakEigenschap, error) {
	return scanZaakEigenschap(s.db.QueryRow(ctx, `
		SELECT uuid, zaak_uuid, eigenschap, naam, waarde
		FROM zaken_zaakeigenschap WHERE uuid = $1 AND zaak_uuid = $2
	`, id, zaak))
}

func (s *PostgresStore) UpdateZaakEigenschap(ctx context.Context, ze *models.ZaakEigenschap) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE zaken_zaakeigenschap SET waarde = $2 WHERE uuid = $1
	`, ze.UUID, ze.Waarde)
	if err != nil {
		return fmt.Errorf("update zaakeigenschap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteZaakEigenschap(ctx context.Context, zaak, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		"DELETE FROM zaken_zaakeigenschap WHERE uuid = $1 AND zaak_uuid = $2", id, zaak)
	if err != nil {
		return fmt.Errorf("delete zaakeigenschap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListZaakEigenschappen(ctx context.Context, zaak uuid.UUID) ([]*models.ZaakEigenschap, error) {
	rows, err := s.db.Query(ctx, `
		SELECT uuid, zaak_uuid, eigenschap, naam, waarde
		FROM zaken_zaakeigenschap WHERE zaak_uuid = $1 ORDER BY naam
	`, zaak)
	if err != nil {
		return nil, fmt.Errorf("list zaakeigenschappen: %w", err)
	}
	defer rows.Close()
	var out []*models.ZaakEigenschap
	for rows.Next() {
		ze, err := scanZaakEigenschap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ze)
	}
	return out, rows.Err()
}

// --- zaakobjecten ---

const zaakObjectSelect = `SELECT c.uuid, c.zaak_uuid, c.object, c.object_type,
	c.object_type_overige, c.object_type_overige_definitie, c.zaakobjecttype,
	c.relatieomschrijving, c.identificatie, c.created_at
	FROM zaken_zaakobject c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanZaakObject(row pgx.Row) (*models.ZaakObject, error) {
	var (
		zo                       models.ZaakObject
		objectType               string
		definitie, identificatie []byte
	)
	err := row.Scan(&zo.UUID, &zo.Zaak, &zo.Object, &objectType,
		&zo.ObjectTypeOverige, &definitie, &zo.Zaakobjecttype,
		&zo.RelatieOmschrijving, &identificatie, &zo.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan zaakobject: %w", err)
	}
	zo.ObjectType = zgw.ZaakobjectType(objectType)
	if len(definitie) > 0 {
		if err := json.Unmarshal(definitie, &zo.ObjectTypeOverigeDefinitie); err != nil {
			return nil, fmt.Errorf("unmarshal overige definitie: %w", err)
		}
	}
	if len(identificatie) > 0 {
		if err := json.Unmarshal(identificatie, &zo.Identificatie); err != nil {
			return nil, fmt.Errorf("unmarshal object identificatie: %w", err)
		}
	}
	return &zo, nil
}

func (s *PostgresStore) CreateZaakObject(ctx context.Context, zo *models.ZaakObject) error {
	definitie, err := json.Marshal(zo.ObjectTypeOverigeDefinitie)
	if err != nil {
		return err
	}
	identificatie, err := json.Marshal(zo.Identificatie)
	if err != nil {
		return err
	}
	zo.CreatedAt = time.Now().UTC()
	_, err = s.db.Exec(ctx, `
		INSERT INTO zaken_zaakobject (uuid, zaak_uuid, object, object_type,
			object_type_overige, object_type_overige_definitie, zaakobjecttype,
			relatieomschrijving, identificatie, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, zo.UUID, zo.Zaak, zo.Object, string(zo.ObjectType),
		zo.ObjectTypeOverige, definitie, zo.Zaakobjecttype,
		zo.RelatieOmschrijving, identificatie, zo.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert zaakobject: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetZaakObject(ctx context.Context, id uuid.UUID) (*models.ZaakObject, error) {
	return scanZaakObject(s.db.QueryRow(ctx, zaakObjectSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) UpdateZaakObject(ctx context.Context, zo *models.ZaakObject) error {
	identificatie, err := json.Marshal(zo.Identificatie)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE zaken_zaakobject SET relatieomschrijving = $2, identificatie = $3 WHERE uuid = $1
	`, zo.UUID, zo.RelatieOmschrijving, identificatie)
	if err != nil {
		return fmt.Errorf("update zaakobject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteZaakObject(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM zaken_zaakobject WHERE uuid = $1", id)
	if err != nil {
		return fmt.Errorf("delete zaakobject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListZaakObjecten(ctx context.Context, f ChildFilter) (ListResult[*models.ZaakObject], error) {
	return listChildRows(ctx, s, zaakObjectSelect, f, "c.created_at ASC",
		func(rows pgx.Rows) (*models.ZaakObject, error) { return scanZaakObject(rows) })
}

// --- zaakinformatieobjecten ---

const zioSelect = `SELECT c.uuid, c.zaak_uuid, c.informatieobject, c.aard_relatie,
	c.titel, c.beschrijving, c.registratiedatum, c.vernietigingsdatum, c.status
	FROM zaken_zaakinformatieobject c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanZIO(row pgx.Row) (*models.ZaakInformatieObject, error) {
	var zio models.ZaakInformatieObject
	err := row.Scan(&zio.UUID, &zio.Zaak, &zio.Informatieobject, &zio.AardRelatie,
		&zio.Titel, &zio.Beschrijving, &zio.Registratiedatum, &zio.Vernietigingsdatum, &zio.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan zaakinformatieobject: %w", err)
	}
	return &zio, nil
}

func (s *PostgresStore) CreateZaakInformatieObject(ctx context.Context, zio *models.ZaakInformatieObject) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_zaakinformatieobject (uuid, zaak_uuid, informatieobject,
			aard_relatie, titel, beschrijving, registratiedatum, vernietigingsdatum, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, zio.UUID, zio.Zaak, zio.Informatieobject, zio.AardRelatie,
		zio.Titel, zio.Beschrijving, zio.Registratiedatum, zio.Vernietigingsdatum, zio.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert zaakinformatieobject: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetZaakInformatieObject(ctx context.Context, id uuid.UUID) (*models.ZaakInformatieObject, error) {
	return scanZIO(s.db.QueryRow(ctx, zioSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) UpdateZaakInformatieObject(ctx context.Context, zio *models.ZaakInformatieObject) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE zaken_zaakinformatieobject
		SET titel = $2, beschrijving = $3, vernietigingsdatum = $4, status = $5
		WHERE uuid = $1
	`, zio.UUID, zio.Titel, zio.Beschrijving, zio.Vernietigingsdatum, zio.Status)
	if err != nil {
		return fmt.Errorf("update zaakinformatieobject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteZaakInformatieObject(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM zaken_zaakinformatieobject WHERE uuid = $1", id)
	if err != nil {
		return fmt.Errorf("delete zaakinformatieobject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListZaakInformatieObjecten(ctx context.Context, f ChildFilter) (ListResult[*models.ZaakInformatieObject], error) {
	return listChildRows(ctx, s, zioSelect, f, "c.registratiedatum ASC",
		func(rows pgx.Rows) (*models.ZaakInformatieObject, error) { return scanZIO(rows) })
}

// --- zaakbesluiten ---

func scanZaakBesluit(row pgx.Row) (*models.ZaakBesluit, error) {
	var zb models.ZaakBesluit
	err := row.Scan(&zb.UUID, &zb.Zaak, &zb.Besluit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan zaakbesluit: %w", err)
	}
	return &zb, nil
}

func (s *PostgresStore) CreateZaakBesluit(ctx context.Context, zb *models.ZaakBesluit) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_zaakbesluit (uuid, zaak_uuid, besluit) VALUES ($1, $2, $3)
	`, zb.UUID, zb.Zaak, zb.Besluit)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert zaakbesluit: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetZaakBesluit(ctx context.Context, zaak, id uuid.UUID) (*models.ZaakBesluit, error) {
	return scanZaakBesluit(s.db.QueryRow(ctx, `
		SELECT uuid, zaak_uuid, besluit FROM zaken_zaakbesluit
		WHERE uuid = $1 AND zaak_uuid = $2
	`, id, zaak))
}

func (s *PostgresStore) DeleteZaakBesluit(ctx context.Context, zaak, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		"DELETE FROM zaken_zaakbesluit WHERE uuid = $1 AND zaak_uuid = $2", id, zaak)
	if err != nil {
		return fmt.Errorf("delete zaakbesluit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListZaakBesluiten(ctx context.Context, zaak uuid.UUID) ([]*models.ZaakBesluit, error) {
	rows, err := s.db.Query(ctx,
		"SELECT uuid, zaak_uuid, besluit FROM zaken_zaakbesluit WHERE zaak_uuid = $1", zaak)
	if err != nil {
		return nil, fmt.Errorf("list zaakbesluiten: %w", err)
	}
	defer rows.Close()
	var out []*models.ZaakBesluit
	for rows.Next() {
		zb, err := scanZaakBesluit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, zb)
	}
	return out, rows.Err()
}

// --- zaakcontactmomenten ---

const zcmSelect = `SELECT c.uuid, c.zaak_uuid, c.contactmoment, c.object_contactmoment
	FROM zaken_zaakcontactmoment c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanZCM(row pgx.Row) (*models.ZaakContactMoment, error) {
	var zcm models.ZaakContactMoment
	err := row.Scan(&zcm.UUID, &zcm.Zaak, &zcm.Contactmoment, &zcm.ObjectContactMoment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan zaakcontactmoment: %w", err)
	}
	return &zcm, nil
}

func (s *PostgresStore) CreateZaakContactMoment(ctx context.Context, zcm *models.ZaakContactMoment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_zaakcontactmoment (uuid, zaak_uuid, contactmoment, object_contactmoment)
		VALUES ($1, $2, $3, $4)
	`, zcm.UUID, zcm.Zaak, zcm.Contactmoment, zcm.ObjectContactMoment)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert zaakcontactmoment: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateZaakContactMoment(ctx context.Context, zcm *models.ZaakContactMoment) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE zaken_zaakcontactmoment SET object_contactmoment = $2 WHERE uuid = $1
	`, zcm.UUID, zcm.ObjectContactMoment)
	if err != nil {
		return fmt.Errorf("update zaakcontactmoment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetZaakContactMoment(ctx context.Context, id uuid.UUID) (*models.ZaakContactMoment, error) {
	return scanZCM(s.db.QueryRow(ctx, zcmSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) DeleteZaakContactMoment(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM zaken_zaakcontactmoment WHERE uuid = $1", id)
	if err != nil {
		return fmt.Errorf("delete zaakcontactmoment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListZaakContactMomenten(ctx context.Context, f ChildFilter) (ListResult[*models.ZaakContactMoment], error) {
	return listChildRows(ctx, s, zcmSelect, f, "c.uuid ASC",
		func(rows pgx.Rows) (*models.ZaakContactMoment, error) { return scanZCM(rows) })
}

// --- zaakverzoeken ---

const zvSelect = `SELECT c.uuid, c.zaak_uuid, c.verzoek, c.object_verzoek
	FROM zaken_zaakverzoek c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanZV(row pgx.Row) (*models.ZaakVerzoek, error) {
	var zv models.ZaakVerzoek
	err := row.Scan(&zv.UUID, &zv.Zaak, &zv.Verzoek, &zv.ObjectVerzoek)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan zaakverzoek: %w", err)
	}
	return &zv, nil
}

func (s *PostgresStore) CreateZaakVerzoek(ctx context.Context, zv *models.ZaakVerzoek) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_zaakverzoek (uuid, zaak_uuid, verzoek, object_verzoek)
		VALUES ($1, $2, $3, $4)
	`, zv.UUID, zv.Zaak, zv.Verzoek, zv.ObjectVerzoek)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert zaakverzoek: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateZaakVerzoek(ctx context.Context, zv *models.ZaakVerzoek) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE zaken_zaakverzoek SET object_verzoek = $2 WHERE uuid = $1
	`, zv.UUID, zv.ObjectVerzoek)
	if err != nil {
		return fmt.Errorf("update zaakverzoek: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetZaakVerzoek(ctx context.Context, id uuid.UUID) (*models.ZaakVerzoek, error) {
	return scanZV(s.db.QueryRow(ctx, zvSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) DeleteZaakVerzoek(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM zaken_zaakverzoek WHERE uuid = $1", id)
	if err != nil {
		return fmt.Errorf("delete zaakverzoek: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListZaakVerzoeken(ctx context.Context, f ChildFilter) (ListResult[*models.ZaakVerzoek], error) {
	return listChildRows(ctx, s, zvSelect, f, "c.uuid ASC",
		func(rows pgx.Rows) (*models.ZaakVerzoek, error) { return scanZV(rows) })
}

// --- klantcontacten ---

const kcSelect = `SELECT c.uuid, c.zaak_uuid, c.identificatie, c.datumtijd,
	c.kanaal, c.onderwerp, c.toelichting
	FROM zaken_klantcontact c JOIN zaken_zaak z ON z.uuid = c.zaak_uuid`

func scanKC(row pgx.Row) (*models.KlantContact, error) {
	var kc models.KlantContact
	err := row.Scan(&kc.UUID, &kc.Zaak, &kc.Identificatie, &kc.Datumtijd,
		&kc.Kanaal, &kc.Onderwerp, &kc.Toelichting)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan klantcontact: %w", err)
	}
	return &kc, nil
}

func (s *PostgresStore) CreateKlantContact(ctx context.Context, kc *models.KlantContact) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO zaken_klantcontact (uuid, zaak_uuid, identificatie, datumtijd,
			kanaal, onderwerp, toelichting)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, kc.UUID, kc.Zaak, kc.Identificatie, kc.Datumtijd, kc.Kanaal, kc.Onderwerp, kc.Toelichting)
	if err != nil {
		return fmt.Errorf("insert klantcontact: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetKlantContact(ctx context.Context, id uuid.UUID) (*models.KlantContact, error) {
	return scanKC(s.db.QueryRow(ctx, kcSelect+" WHERE c.uuid = $1", id))
}

func (s *PostgresStore) ListKlantContacten(ctx context.Context, f ChildFilter) (ListResult[*models.KlantContact], error) {
	return listChildRows(ctx, s, kcSelect, f, "c.datumtijd DESC",
		func(rows pgx.Rows) (*models.KlantContact, error) { return scanKC(rows) })
}
