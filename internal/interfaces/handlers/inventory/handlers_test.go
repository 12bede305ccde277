package inventory

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	invsvc "recordshop-backend/internal/inventory"
	"recordshop-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInventoryHandlersTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Listing{}))
	return &Handlers{Service: &invsvc.Service{DB: db}}, db
}

func seed(t *testing.T, db *gorm.DB, listingID, title string) {
	t.Helper()
	posted := time.Now().UTC()
	require.NoError(t, db.Create(&models.Listing{
		ListingID:    listingID,
		PriceValue:   19.99,
		ReleaseID:    "release-" + listingID,
		ReleaseTitle: &title,
		Posted:       &posted,
	}).Error)
}

func TestGetDataEmpty(t *testing.T) {
	h, _ := setupInventoryHandlersTest(t)
	app := fiber.New()
	app.Get("/api/data", h.GetData)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/data", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Empty(t, items)
}

func TestGetDataReturnsListings(t *testing.T) {
	h, db := setupInventoryHandlersTest(t)
	seed(t, db, "h-001", "Blue Train")
	app := fiber.New()
	app.Get("/api/data", h.GetData)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/data", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "h-001", items[0]["listing_id"])
	assert.Equal(t, "Blue Train", items[0]["release_title"])
	// Absent timestamps must be present as null, not omitted.
	v, ok := items[0]["sold_at"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestGetItemNotFound(t *testing.T) {
	h, _ := setupInventoryHandlersTest(t)
	app := fiber.New()
	app.Get("/api/data/:listing_id", h.GetItem)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/data/absent", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
}

func TestGetItemFound(t *testing.T) {
	h, db := setupInventoryHandlersTest(t)
	seed(t, db, "h-002", "A Love Supreme")
	app := fiber.New()
	app.Get("/api/data/:listing_id", h.GetItem)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/data/h-002", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var item map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, "A Love Supreme", item["release_title"])
}

func TestSearchByQuery(t *testing.T) {
	h, db := setupInventoryHandlersTest(t)
	seed(t, db, "h-003", "Giant Steps")
	seed(t, db, "h-004", "Paranoid")
	app := fiber.New()
	app.Get("/api/search", h.Search)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/search?q=Giant", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "h-003", items[0]["listing_id"])
}

func TestSearchActiveParam(t *testing.T) {
	h, db := setupInventoryHandlersTest(t)
	seed(t, db, "h-005", "Kind of Blue")
	seed(t, db, "h-006", "Kind of Blue")

	var sold models.Listing
	require.NoError(t, db.Where("listing_id = ?", "h-006").First(&sold).Error)
	sold.MarkSold(time.Now().UTC())
	require.NoError(t, db.Save(&sold).Error)

	app := fiber.New()
	app.Get("/api/search", h.Search)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/search?q=Kind&active=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "h-005", items[0]["listing_id"])
}
