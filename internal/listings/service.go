package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recordshop-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("Listing not found")

type Service struct {
	DB *gorm.DB
}

// CreateListingInput carries the mandatory fields plus any subset of the
// optional ones. Nil pointers stay NULL in storage.
type CreateListingInput struct {
	UUID       string
	ListingID  string
	PriceValue float64
	ReleaseID  string

	Status          *string
	Condition       *string
	SleeveCondition *string
	Posted          *time.Time
	URI             *string
	ResourceURL     *string

	PriceCurrency    *string
	ShippingPrice    *float64
	ShippingCurrency *string

	Weight         *float64
	FormatQuantity *int
	ExternalID     *string
	Location       *string
	Comments       *string

	ReleaseTitle       *string
	ReleaseYear        *int
	ReleaseResourceURL *string
	ReleaseURI         *string

	ArtistNames   *string
	PrimaryArtist *string
	LabelNames    *string
	PrimaryLabel  *string
	FormatNames   *string
	PrimaryFormat *string

	Genres        *string
	Styles        *string
	Country       *string
	CatalogNumber *string
	Barcode       *string
	MasterID      *string
	MasterURL     *string

	ImageURI         *string
	ImageResourceURL *string

	ReleaseCommunityHave *int
	ReleaseCommunityWant *int
	ExportTimestamp      *time.Time

	IsActive       *bool
	CustomMetadata datatypes.JSONMap
}

// CreateListing inserts a new listing. Constraint violations (duplicate
// listing_id, negative price, missing mandatory fields) surface as errors
// from the commit; the caller decides whether to retry with corrected data.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*models.Listing, error) {
	listing := &models.Listing{
		UUID:       in.UUID,
		ListingID:  in.ListingID,
		PriceValue: in.PriceValue,
		ReleaseID:  in.ReleaseID,

		Status:          in.Status,
		Condition:       in.Condition,
		SleeveCondition: in.SleeveCondition,
		Posted:          in.Posted,
		URI:             in.URI,
		ResourceURL:     in.ResourceURL,

		PriceCurrency:    in.PriceCurrency,
		ShippingPrice:    in.ShippingPrice,
		ShippingCurrency: in.ShippingCurrency,

		Weight:         in.Weight,
		FormatQuantity: in.FormatQuantity,
		ExternalID:     in.ExternalID,
		Location:       in.Location,
		Comments:       in.Comments,

		ReleaseTitle:       in.ReleaseTitle,
		ReleaseYear:        in.ReleaseYear,
		ReleaseResourceURL: in.ReleaseResourceURL,
		ReleaseURI:         in.ReleaseURI,

		ArtistNames:   in.ArtistNames,
		PrimaryArtist: in.PrimaryArtist,
		LabelNames:    in.LabelNames,
		PrimaryLabel:  in.PrimaryLabel,
		FormatNames:   in.FormatNames,
		PrimaryFormat: in.PrimaryFormat,

		Genres:        in.Genres,
		Styles:        in.Styles,
		Country:       in.Country,
		CatalogNumber: in.CatalogNumber,
		Barcode:       in.Barcode,
		MasterID:      in.MasterID,
		MasterURL:     in.MasterURL,

		ImageURI:         in.ImageURI,
		ImageResourceURL: in.ImageResourceURL,

		ReleaseCommunityHave: in.ReleaseCommunityHave,
		ReleaseCommunityWant: in.ReleaseCommunityWant,
		ExportTimestamp:      in.ExportTimestamp,

		IsActive:       in.IsActive,
		CustomMetadata: in.CustomMetadata,
	}

	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

// GetByUUID looks a listing up by its surrogate key.
func (s *Service) GetByUUID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).Where("uuid = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// GetByListingID looks a listing up by the external marketplace identifier.
func (s *Service) GetByListingID(ctx context.Context, listingID string) (*models.Listing, error) {
	if listingID == "" {
		return nil, errors.New("listing_id is required")
	}
	var listing models.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// Save persists field changes on a loaded listing; updated_at refreshes at
// commit. uuid and listing_id are identity fields and must not be reassigned.
func (s *Service) Save(ctx context.Context, listing *models.Listing) error {
	if err := s.DB.WithContext(ctx).Save(listing).Error; err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

// MarkRemoved withdraws the listing without a sale.
func (s *Service) MarkRemoved(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.MarkRemoved(time.Now().UTC())
	if err := s.Save(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// MarkSold records a completed sale.
func (s *Service) MarkSold(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.MarkSold(time.Now().UTC())
	if err := s.Save(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// ReplaceMetadata swaps custom_metadata for a whole new map. Partial in-place
// mutation of a loaded map is not detected by the persistence layer, so the
// full map is reassigned here.
func (s *Service) ReplaceMetadata(ctx context.Context, id string, metadata map[string]interface{}) (*models.Listing, error) {
	listing, err := s.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		listing.CustomMetadata = nil
	} else {
		listing.CustomMetadata = datatypes.JSONMap(metadata)
	}
	if err := s.Save(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// ActiveListings returns every listing still flagged active, newest first.
func (s *Service) ActiveListings(ctx context.Context) ([]models.Listing, error) {
	var result []models.Listing
	if err := s.DB.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch active listings: %w", err)
	}
	return result, nil
}
