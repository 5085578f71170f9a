// Package audittrail keeps the append-only audit log of the case
// registration: one record per mutation with the full before and after
// serialisation of the affected resource.
package audittrail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zaakregister/internal/zaken/models"
)

// Bron is the component label stamped on every record.
const Bron = "ZRC"

// Store persists audit records.
type Store interface {
	Append(ctx context.Context, record *models.AuditRecord) error
	ListByHoofdObject(ctx context.Context, hoofdObject string) ([]*models.AuditRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.AuditRecord, error)
}

var ErrNotFound = errors.New("audittrail: record not found")

// Recorder builds and appends audit records. Failures are logged, never
// propagated: the primary write has already committed.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Entry is what a mutation reports to the recorder.
type Entry struct {
	ApplicatieID       string
	ApplicatieWeergave string
	Actie              string
	Resultaat          int
	HoofdObject        string
	Resource           string
	ResourceURL        string
	ResourceWeergave   string
	Oud                any
	Nieuw              any
}

func marshalState(v any) []byte {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// Record appends one entry to the trail.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	record := &models.AuditRecord{
		UUID:               uuid.New(),
		Bron:               Bron,
		ApplicatieID:       entry.ApplicatieID,
		ApplicatieWeergave: entry.ApplicatieWeergave,
		Actie:              entry.Actie,
		Resultaat:          entry.Resultaat,
		HoofdObject:        entry.HoofdObject,
		Resource:           entry.Resource,
		ResourceURL:        entry.ResourceURL,
		ResourceWeergave:   entry.ResourceWeergave,
		AanmaakDatum:       time.Now().UTC(),
		Oud:                marshalState(entry.Oud),
		Nieuw:              marshalState(entry.Nieuw),
	}
	if err := r.store.Append(context.WithoutCancel(ctx), record); err != nil {
		r.logger.ErrorContext(ctx, "failed to append audit record",
			"error", err, "resource", entry.Resource, "actie", entry.Actie)
	}
}

// List returns the trail of one hoofdobject, newest first.
func (r *Recorder) List(ctx context.Context, hoofdObject string) ([]*models.AuditRecord, error) {
	return r.store.ListByHoofdObject(ctx, hoofdObject)
}

// Get returns one record.
func (r *Recorder) Get(ctx context.Context, id uuid.UUID) (*models.AuditRecord, error) {
	return r.store.Get(ctx, id)
}

// MemoryStore keeps records in memory for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*models.AuditRecord
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(_ context.Context, record *models.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *record
	s.records = append(s.records, &cp)
	return nil
}

func (s *MemoryStore) ListByHoofdObject(_ context.Context, hoofdObject string) ([]*models.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.AuditRecord
	for _, record := range s.records {
		if record.HoofdObject == hoofdObject {
			cp := *record
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].AanmaakDatum.Before(out[i].AanmaakDatum) })
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.UUID == id {
			cp := *record
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// PostgresStore persists records in the audittrail table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const auditColumns = `uuid, bron, applicatie_id, applicatie_weergave, gebruiker,
	actie, resultaat, hoofd_object, resource, resource_url, resource_weergave,
	aanmaakdatum, oud, nieuw`

func (s *PostgresStore) Append(ctx context.Context, record *models.AuditRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audittrail_auditrecord (`+auditColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, record.UUID, record.Bron, record.ApplicatieID, record.ApplicatieWeergave,
		record.Gebruiker, record.Actie, record.Resultaat, record.HoofdObject,
		record.Resource, record.ResourceURL, record.ResourceWeergave,
		record.AanmaakDatum, record.Oud, record.Nieuw)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (*models.AuditRecord, error) {
	var record models.AuditRecord
	err := row.Scan(&record.UUID, &record.Bron, &record.ApplicatieID,
		&record.ApplicatieWeergave, &record.Gebruiker, &record.Actie,
		&record.Resultaat, &record.HoofdObject, &record.Resource,
		&record.ResourceURL, &record.ResourceWeergave, &record.AanmaakDatum,
		&record.Oud, &record.Nieuw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan audit record: %w", err)
	}
	return &record, nil
}

func (s *PostgresStore) ListByHoofdObject(ctx context.Context, hoofdObject string) ([]*models.AuditRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+auditColumns+` FROM audittrail_auditrecord
		WHERE hoofd_object = $1 ORDER BY aanmaakdatum DESC
	`, hoofdObject)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()
	var out []*models.AuditRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*models.AuditRecord, error) {
	return scanRecord(s.pool.QueryRow(ctx,
		"SELECT "+auditColumns+" FROM audittrail_auditrecord WHERE uuid = $1", id))
}
