package syncjobs

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"recordshop-backend/internal/discogs"
	"recordshop-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFetcher struct {
	listings []discogs.WireListing
	err      error
}

func (s *stubFetcher) FetchAllListings(ctx context.Context) ([]discogs.WireListing, error) {
	return s.listings, s.err
}

func setupSyncHandlersTest(t *testing.T, fetcher discogs.Fetcher) *Handlers {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Listing{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return &Handlers{Service: &discogs.SyncService{DB: db, Client: fetcher, Redis: rdb, Seller: "seller"}}
}

func TestTriggerSync(t *testing.T) {
	h := setupSyncHandlersTest(t, &stubFetcher{listings: []discogs.WireListing{
		{ID: 1, Price: discogs.WirePrice{Value: 10}, Release: discogs.WireRelease{ID: 100, Title: "First"}},
	}})
	app := fiber.New()
	app.Post("/api/sync", h.TriggerSync)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body["status"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["added"])
}

func TestSyncStatusBeforeAnyRun(t *testing.T) {
	h := setupSyncHandlersTest(t, &stubFetcher{})
	app := fiber.New()
	app.Get("/api/sync/status", h.SyncStatus)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestSyncStatusAfterRun(t *testing.T) {
	h := setupSyncHandlersTest(t, &stubFetcher{listings: []discogs.WireListing{
		{ID: 1, Price: discogs.WirePrice{Value: 10}, Release: discogs.WireRelease{ID: 100}},
	}})
	app := fiber.New()
	app.Post("/api/sync", h.TriggerSync)
	app.Get("/api/sync/status", h.SyncStatus)

	_, err := app.Test(httptest.NewRequest("POST", "/api/sync", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
}
