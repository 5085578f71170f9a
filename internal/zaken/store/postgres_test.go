//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"zaakregister/internal/platform/postgres"
	"zaakregister/internal/zaken/models"
	"zaakregister/internal/zaken/store"
	"zaakregister/pkg/types"
	"zaakregister/pkg/zgw"
)

// The PostGIS image is required: the geo search predicate uses ST_Within.
const postgresImage = "postgis/postgis:16-3.4-alpine"

func setupStore(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("zaakregister_test"),
		tcpostgres.WithUsername("zaakregister"),
		tcpostgres.WithPassword("zaakregister"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		ConnString: dsn,
		MinConns:   1,
		MaxConns:   4,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return store.NewPostgresStore(pool, 0)
}

func testZaak(bronorganisatie, identificatie, zaaktype string) *models.Zaak {
	return &models.Zaak{
		UUID: uuid.New(),
		Identificatie: models.ZaakIdentificatie{
			Identificatie:   identificatie,
			Bronorganisatie: bronorganisatie,
		},
		Zaaktype:                    zaaktype,
		Omschrijving:                "integratietest",
		Registratiedatum:            types.DateOf(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
		Startdatum:                  types.DateOf(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
		Vertrouwelijkheidaanduiding: zgw.VAOpenbaar,
		Archiefstatus:               zgw.ArchiefstatusNogTeArchiveren,
	}
}

func TestPostgresGenerateIdentificatie(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first, err := s.GenerateIdentificatie(ctx, "517439943", 2026)
	require.NoError(t, err)
	assert.Equal(t, "ZAAK-2026-0000000001", first)

	second, err := s.GenerateIdentificatie(ctx, "517439943", 2026)
	require.NoError(t, err)
	assert.Equal(t, "ZAAK-2026-0000000002", second)

	// Sequences are per organisation.
	other, err := s.GenerateIdentificatie(ctx, "111222333", 2026)
	require.NoError(t, err)
	assert.Equal(t, "ZAAK-2026-0000000001", other)

	available, err := s.ReservationAvailable(ctx, "517439943", first)
	require.NoError(t, err)
	assert.True(t, available)

	// Creating a case with a reserved number claims the reservation.
	zaak := testZaak("517439943", first, "https://catalogi.example.nl/api/v1/zaaktypen/"+uuid.NewString())
	require.NoError(t, s.CreateZaak(ctx, zaak))

	available, err = s.ReservationAvailable(ctx, "517439943", first)
	require.NoError(t, err)
	assert.False(t, available)

	exists, err := s.IdentificatieExists(ctx, "517439943", first)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresZaakRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	zaaktype := "https://catalogi.example.nl/api/v1/zaaktypen/" + uuid.NewString()

	zaak := testZaak("517439943", "ZAAK-2026-0000000042", zaaktype)
	zaak.Toelichting = "eerste versie"
	zaak.ProductenOfDiensten = []string{"https://producten.example.nl/1"}
	zaak.Kenmerken = []models.ZaakKenmerk{{Kenmerk: "X-123", Bron: "extern systeem"}}
	require.NoError(t, s.CreateZaak(ctx, zaak))

	// The same number cannot be registered twice for one organisation.
	dup := testZaak("517439943", "ZAAK-2026-0000000042", zaaktype)
	require.ErrorIs(t, s.CreateZaak(ctx, dup), store.ErrDuplicate)

	got, err := s.GetZaak(ctx, zaak.UUID)
	require.NoError(t, err)
	assert.Equal(t, zaak.Identificatie.Identificatie, got.Identificatie.Identificatie)
	assert.Equal(t, zaak.Identificatie.Bronorganisatie, got.Identificatie.Bronorganisatie)
	assert.Equal(t, zaaktype, got.Zaaktype)
	assert.Equal(t, "eerste versie", got.Toelichting)
	assert.Equal(t, zaak.ProductenOfDiensten, got.ProductenOfDiensten)
	assert.Equal(t, zaak.Kenmerken, got.Kenmerken)
	assert.Nil(t, got.Einddatum)

	got.Toelichting = "bijgewerkt"
	einddatum := types.DateOf(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	got.Einddatum = &einddatum
	require.NoError(t, s.UpdateZaak(ctx, got))

	updated, err := s.GetZaak(ctx, zaak.UUID)
	require.NoError(t, err)
	assert.Equal(t, "bijgewerkt", updated.Toelichting)
	require.NotNil(t, updated.Einddatum)
	assert.Equal(t, einddatum, *updated.Einddatum)

	require.NoError(t, s.DeleteZaak(ctx, zaak.UUID))
	_, err = s.GetZaak(ctx, zaak.UUID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.DeleteZaak(ctx, zaak.UUID), store.ErrNotFound)
}

func TestPostgresStatusConflictAndResultaat(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	zaaktype := "https://catalogi.example.nl/api/v1/zaaktypen/" + uuid.NewString()

	zaak := testZaak("517439943", "ZAAK-2026-0000000007", zaaktype)
	require.NoError(t, s.CreateZaak(ctx, zaak))

	gezet := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	status := &models.Status{
		UUID:             uuid.New(),
		Zaak:             zaak.UUID,
		Statustype:       zaaktype + "/statustypen/1",
		DatumStatusGezet: gezet,
	}
	require.NoError(t, s.CreateStatus(ctx, status))

	conflict := &models.Status{
		UUID:             uuid.New(),
		Zaak:             zaak.UUID,
		Statustype:       zaaktype + "/statustypen/2",
		DatumStatusGezet: gezet,
	}
	require.ErrorIs(t, s.CreateStatus(ctx, conflict), store.ErrStatusConflict)

	later := &models.Status{
		UUID:             uuid.New(),
		Zaak:             zaak.UUID,
		Statustype:       zaaktype + "/statustypen/2",
		DatumStatusGezet: gezet.Add(time.Hour),
	}
	require.NoError(t, s.CreateStatus(ctx, later))

	latest, err := s.LatestStatus(ctx, zaak.UUID)
	require.NoError(t, err)
	assert.Equal(t, later.UUID, latest.UUID)

	resultaat := &models.Resultaat{
		UUID:          uuid.New(),
		Zaak:          zaak.UUID,
		Resultaattype: zaaktype + "/resultaattypen/1",
	}
	require.NoError(t, s.CreateResultaat(ctx, resultaat))

	second := &models.Resultaat{
		UUID:          uuid.New(),
		Zaak:          zaak.UUID,
		Resultaattype: zaaktype + "/resultaattypen/2",
	}
	require.ErrorIs(t, s.CreateResultaat(ctx, second), store.ErrResultaatExists)
}

func TestPostgresListZakenGrants(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	openType := "https://catalogi.example.nl/api/v1/zaaktypen/" + uuid.NewString()
	secretType := "https://catalogi.example.nl/api/v1/zaaktypen/" + uuid.NewString()

	for i := range 3 {
		zaak := testZaak("517439943", fmt.Sprintf("ZAAK-2026-%010d", i+1), openType)
		require.NoError(t, s.CreateZaak(ctx, zaak))
	}
	geheim := testZaak("517439943", "ZAAK-2026-0000000099", secretType)
	geheim.Vertrouwelijkheidaanduiding = zgw.VAGeheim
	require.NoError(t, s.CreateZaak(ctx, geheim))

	all, err := s.ListZaken(ctx, store.ZaakFilter{Grants: store.Grants{All: true}})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
	assert.True(t, all.CountExact)

	// Ceiling on the open type only: the secret case stays invisible.
	scoped, err := s.ListZaken(ctx, store.ZaakFilter{Grants: store.Grants{
		Ceilings: map[string]zgw.VertrouwelijkheidAanduiding{openType: zgw.VAOpenbaar},
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, scoped.Count)
	for _, zaak := range scoped.Items {
		assert.Equal(t, openType, zaak.Zaaktype)
	}

	// A ceiling below the case classification filters it out even when the
	// zaaktype matches.
	low, err := s.ListZaken(ctx, store.ZaakFilter{Grants: store.Grants{
		Ceilings: map[string]zgw.VertrouwelijkheidAanduiding{secretType: zgw.VAVertrouwelijk},
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, low.Count)

	high, err := s.ListZaken(ctx, store.ZaakFilter{Grants: store.Grants{
		Ceilings: map[string]zgw.VertrouwelijkheidAanduiding{secretType: zgw.VAGeheim},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, high.Count)

	// Pagination slices within the authorised set.
	page, err := s.ListZaken(ctx, store.ZaakFilter{
		Grants: store.Grants{All: true},
		Page:   store.Page{Number: 2, Size: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Count)
	assert.Len(t, page.Items, 1)
}
