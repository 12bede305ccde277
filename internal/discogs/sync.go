package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recordshop-backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// statsKey holds the last sync run's stats JSON for the status endpoint.
const statsKey = "discogs:sync:last"

// Stats summarizes one sync run.
type Stats struct {
	Added    int       `json:"added"`
	Updated  int       `json:"updated"`
	Removed  int       `json:"removed"`
	Total    int       `json:"total"`
	SyncedAt time.Time `json:"synced_at"`
}

// Fetcher is the inventory source; *Client implements it, tests stub it.
type Fetcher interface {
	FetchAllListings(ctx context.Context) ([]WireListing, error)
}

// SyncService reconciles the local listings table with the seller's Discogs
// inventory: new listings are inserted, known ones updated in place, and rows
// no longer present in the feed are deleted.
type SyncService struct {
	DB     *gorm.DB
	Client Fetcher
	Redis  *redis.Client
	Seller string
}

// SyncAll fetches the full inventory and commits the reconciliation in one
// transaction. The returned stats are also recorded in Redis when a client is
// configured.
func (s *SyncService) SyncAll(ctx context.Context) (*Stats, error) {
	log.Info().Str("seller", s.Seller).Msg("Starting sync")

	wire, err := s.Client.FetchAllListings(ctx)
	if err != nil {
		return nil, err
	}
	if len(wire) == 0 {
		log.Warn().Msg("No listings fetched from API")
		return &Stats{SyncedAt: time.Now().UTC()}, nil
	}

	stats := &Stats{Total: len(wire)}
	now := time.Now().UTC()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []models.Listing
		if err := tx.Find(&current).Error; err != nil {
			return err
		}
		existing := make(map[string]*models.Listing, len(current))
		for i := range current {
			existing[current[i].ListingID] = &current[i]
		}

		seen := make(map[string]bool, len(wire))
		for _, w := range wire {
			flattened := Flatten(w, now)
			if flattened.ListingID == "" || flattened.ListingID == "0" {
				continue
			}
			seen[flattened.ListingID] = true

			if known, ok := existing[flattened.ListingID]; ok {
				applyFlattened(known, &flattened)
				if err := tx.Save(known).Error; err != nil {
					return err
				}
				stats.Updated++
			} else {
				created := flattened
				if err := tx.Create(&created).Error; err != nil {
					return err
				}
				stats.Added++
			}
		}

		for listingID, listing := range existing {
			if !seen[listingID] {
				if err := tx.Delete(listing).Error; err != nil {
					return err
				}
				stats.Removed++
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Error committing sync")
		return nil, fmt.Errorf("sync commit: %w", err)
	}

	stats.SyncedAt = time.Now().UTC()
	log.Info().Int("added", stats.Added).Int("updated", stats.Updated).Int("removed", stats.Removed).Msg("Sync completed")

	s.recordStats(ctx, stats)
	return stats, nil
}

// LastStats returns the stats of the most recent run, or nil when no run has
// been recorded.
func (s *SyncService) LastStats(ctx context.Context) (*Stats, error) {
	if s.Redis == nil {
		return nil, nil
	}
	raw, err := s.Redis.Get(ctx, statsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *SyncService) recordStats(ctx context.Context, stats *Stats) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, statsKey, raw, 0).Err(); err != nil {
		log.Error().Err(err).Msg("Error recording sync stats")
	}
}

// applyFlattened copies refreshed catalog data onto a known row, keeping the
// identity (uuid, listing_id), audit and soft-delete state untouched.
func applyFlattened(dst, src *models.Listing) {
	dst.PriceValue = src.PriceValue
	dst.ReleaseID = src.ReleaseID

	dst.Status = src.Status
	dst.Condition = src.Condition
	dst.SleeveCondition = src.SleeveCondition
	dst.Posted = src.Posted
	dst.URI = src.URI
	dst.ResourceURL = src.ResourceURL

	dst.PriceCurrency = src.PriceCurrency
	dst.ShippingPrice = src.ShippingPrice
	dst.ShippingCurrency = src.ShippingCurrency

	dst.Weight = src.Weight
	dst.FormatQuantity = src.FormatQuantity
	dst.ExternalID = src.ExternalID
	dst.Location = src.Location
	dst.Comments = src.Comments

	dst.ReleaseTitle = src.ReleaseTitle
	dst.ReleaseYear = src.ReleaseYear
	dst.ReleaseResourceURL = src.ReleaseResourceURL
	dst.ReleaseURI = src.ReleaseURI

	dst.ArtistNames = src.ArtistNames
	dst.PrimaryArtist = src.PrimaryArtist
	dst.LabelNames = src.LabelNames
	dst.PrimaryLabel = src.PrimaryLabel
	dst.FormatNames = src.FormatNames
	dst.PrimaryFormat = src.PrimaryFormat

	dst.Genres = src.Genres
	dst.Styles = src.Styles
	dst.Country = src.Country
	dst.CatalogNumber = src.CatalogNumber
	dst.Barcode = src.Barcode
	dst.MasterID = src.MasterID
	dst.MasterURL = src.MasterURL

	dst.ImageURI = src.ImageURI
	dst.ImageResourceURL = src.ImageResourceURL

	dst.ReleaseCommunityHave = src.ReleaseCommunityHave
	dst.ReleaseCommunityWant = src.ReleaseCommunityWant
	dst.ExportTimestamp = src.ExportTimestamp
}
