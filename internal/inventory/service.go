package inventory

import (
	"context"
	"errors"
	"fmt"

	"recordshop-backend/internal/models"

	"gorm.io/gorm"
)

// Service is the read side of the inventory: everything the web layer needs
// to render listings, no mutation.
type Service struct {
	DB *gorm.DB
}

// AllItems returns every listing as its dictionary form, newest posted first.
func (s *Service) AllItems(ctx context.Context) ([]map[string]interface{}, error) {
	var result []models.Listing
	if err := s.DB.WithContext(ctx).Order("posted DESC").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	items := make([]map[string]interface{}, 0, len(result))
	for i := range result {
		items = append(items, result[i].ToDict())
	}
	return items, nil
}

// ItemByListingID returns one listing's dictionary form, or nil when the
// external id is unknown.
func (s *Service) ItemByListingID(ctx context.Context, listingID string) (map[string]interface{}, error) {
	var listing models.Listing
	err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing %s: %w", listingID, err)
	}
	return listing.ToDict(), nil
}

// SearchFilters are the optional search constraints; empty strings mean
// "no constraint". ActiveOnly restricts results to listings still for sale.
type SearchFilters struct {
	Query      string
	Artist     string
	Genre      string
	Format     string
	ActiveOnly bool
}

// Search returns listings matching the filters, newest posted first. The free
// query matches release title or artist names, the rest are per-column
// substring filters.
func (s *Service) Search(ctx context.Context, f SearchFilters) ([]map[string]interface{}, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Listing{})

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		tx = tx.Where("release_title LIKE ? OR artist_names LIKE ?", pattern, pattern)
	}
	if f.Artist != "" {
		tx = tx.Where("artist_names LIKE ?", "%"+f.Artist+"%")
	}
	if f.Genre != "" {
		tx = tx.Where("genres LIKE ?", "%"+f.Genre+"%")
	}
	if f.Format != "" {
		tx = tx.Where("format_names LIKE ?", "%"+f.Format+"%")
	}
	if f.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}

	var result []models.Listing
	if err := tx.Order("posted DESC").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	items := make([]map[string]interface{}, 0, len(result))
	for i := range result {
		items = append(items, result[i].ToDict())
	}
	return items, nil
}
