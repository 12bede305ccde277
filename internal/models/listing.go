package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing is one marketplace sale offer synced from the Discogs seller
// inventory. Release, artist, label and format fields are denormalized copies
// taken from the catalog at sync time; release_id groups listings by shared
// string value only, there is no foreign key.
type Listing struct {
	UUID      string `gorm:"column:uuid;type:varchar(36);primaryKey" json:"uuid"`
	ListingID string `gorm:"column:listing_id;not null;uniqueIndex:idx_listings_listing_id;check:chk_listings_listing_id,listing_id <> ''" json:"listing_id"`

	Status          *string    `gorm:"column:status" json:"status"`
	Condition       *string    `gorm:"column:condition" json:"condition"`
	SleeveCondition *string    `gorm:"column:sleeve_condition" json:"sleeve_condition"`
	Posted          *time.Time `gorm:"column:posted" json:"posted"`
	URI             *string    `gorm:"column:uri" json:"uri"`
	ResourceURL     *string    `gorm:"column:resource_url" json:"resource_url"`

	PriceValue       float64  `gorm:"column:price_value;not null;check:chk_listings_price_value,price_value >= 0" json:"price_value"`
	PriceCurrency    *string  `gorm:"column:price_currency" json:"price_currency"`
	ShippingPrice    *float64 `gorm:"column:shipping_price" json:"shipping_price"`
	ShippingCurrency *string  `gorm:"column:shipping_currency" json:"shipping_currency"`

	Weight         *float64 `gorm:"column:weight" json:"weight"`
	FormatQuantity *int     `gorm:"column:format_quantity" json:"format_quantity"`
	ExternalID     *string  `gorm:"column:external_id" json:"external_id"`
	Location       *string  `gorm:"column:location" json:"location"`
	Comments       *string  `gorm:"column:comments" json:"comments"`

	ReleaseID          string  `gorm:"column:release_id;not null;index:idx_listings_release_id;check:chk_listings_release_id,release_id <> ''" json:"release_id"`
	ReleaseTitle       *string `gorm:"column:release_title" json:"release_title"`
	ReleaseYear        *int    `gorm:"column:release_year" json:"release_year"`
	ReleaseResourceURL *string `gorm:"column:release_resource_url" json:"release_resource_url"`
	ReleaseURI         *string `gorm:"column:release_uri" json:"release_uri"`

	ArtistNames   *string `gorm:"column:artist_names" json:"artist_names"`
	PrimaryArtist *string `gorm:"column:primary_artist" json:"primary_artist"`
	LabelNames    *string `gorm:"column:label_names" json:"label_names"`
	PrimaryLabel  *string `gorm:"column:primary_label" json:"primary_label"`
	FormatNames   *string `gorm:"column:format_names" json:"format_names"`
	PrimaryFormat *string `gorm:"column:primary_format" json:"primary_format"`

	Genres        *string `gorm:"column:genres" json:"genres"`
	Styles        *string `gorm:"column:styles" json:"styles"`
	Country       *string `gorm:"column:country" json:"country"`
	CatalogNumber *string `gorm:"column:catalog_number" json:"catalog_number"`
	Barcode       *string `gorm:"column:barcode" json:"barcode"`
	MasterID      *string `gorm:"column:master_id" json:"master_id"`
	MasterURL     *string `gorm:"column:master_url" json:"master_url"`

	ImageURI         *string `gorm:"column:image_uri" json:"image_uri"`
	ImageResourceURL *string `gorm:"column:image_resource_url" json:"image_resource_url"`

	ReleaseCommunityHave *int `gorm:"column:release_community_have" json:"release_community_have"`
	ReleaseCommunityWant *int `gorm:"column:release_community_want" json:"release_community_want"`

	ExportTimestamp *time.Time `gorm:"column:export_timestamp" json:"export_timestamp"`

	IsActive  *bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	RemovedAt *time.Time `gorm:"column:removed_at" json:"removed_at"`
	SoldAt    *time.Time `gorm:"column:sold_at" json:"sold_at"`

	CustomMetadata datatypes.JSONMap `gorm:"column:custom_metadata" json:"custom_metadata"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate fills the surrogate key and the is_active default (for DBs
// where the column default cannot be relied on).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.NewString()
	}
	if l.IsActive == nil {
		active := true
		l.IsActive = &active
	}
	return nil
}

// Active reports the is_active flag; a nil pointer counts as active since the
// column defaults to true.
func (l *Listing) Active() bool {
	return l.IsActive == nil || *l.IsActive
}

// MarkRemoved withdraws the listing without a sale. sold_at is left untouched.
func (l *Listing) MarkRemoved(now time.Time) {
	inactive := false
	l.IsActive = &inactive
	l.RemovedAt = &now
}

// MarkSold records a completed sale. removed_at is left untouched.
func (l *Listing) MarkSold(now time.Time) {
	inactive := false
	l.IsActive = &inactive
	l.SoldAt = &now
}

// SoftDeleteConsistent reports whether the flag and the two timestamps agree:
// a set removed_at or sold_at implies is_active false. The schema deliberately
// does not enforce this; callers that care check it here.
func (l *Listing) SoftDeleteConsistent() bool {
	if l.RemovedAt != nil || l.SoldAt != nil {
		return !l.Active()
	}
	return true
}

// ToDict converts the listing to a plain key/value map for JSON responses.
// Every column is present by name; timestamps render as ISO-8601 strings or
// nil, custom_metadata passes through in its native map/nil form.
func (l *Listing) ToDict() map[string]interface{} {
	var metadata interface{}
	if l.CustomMetadata != nil {
		metadata = map[string]interface{}(l.CustomMetadata)
	}
	return map[string]interface{}{
		"uuid":                   l.UUID,
		"listing_id":             l.ListingID,
		"status":                 nullable(l.Status),
		"condition":              nullable(l.Condition),
		"sleeve_condition":       nullable(l.SleeveCondition),
		"posted":                 isoTime(l.Posted),
		"uri":                    nullable(l.URI),
		"resource_url":           nullable(l.ResourceURL),
		"price_value":            l.PriceValue,
		"price_currency":         nullable(l.PriceCurrency),
		"shipping_price":         nullable(l.ShippingPrice),
		"shipping_currency":      nullable(l.ShippingCurrency),
		"weight":                 nullable(l.Weight),
		"format_quantity":        nullable(l.FormatQuantity),
		"external_id":            nullable(l.ExternalID),
		"location":               nullable(l.Location),
		"comments":               nullable(l.Comments),
		"release_id":             l.ReleaseID,
		"release_title":          nullable(l.ReleaseTitle),
		"release_year":           nullable(l.ReleaseYear),
		"release_resource_url":   nullable(l.ReleaseResourceURL),
		"release_uri":            nullable(l.ReleaseURI),
		"artist_names":           nullable(l.ArtistNames),
		"primary_artist":         nullable(l.PrimaryArtist),
		"label_names":            nullable(l.LabelNames),
		"primary_label":          nullable(l.PrimaryLabel),
		"format_names":           nullable(l.FormatNames),
		"primary_format":         nullable(l.PrimaryFormat),
		"genres":                 nullable(l.Genres),
		"styles":                 nullable(l.Styles),
		"country":                nullable(l.Country),
		"catalog_number":         nullable(l.CatalogNumber),
		"barcode":                nullable(l.Barcode),
		"master_id":              nullable(l.MasterID),
		"master_url":             nullable(l.MasterURL),
		"image_uri":              nullable(l.ImageURI),
		"image_resource_url":     nullable(l.ImageResourceURL),
		"release_community_have": nullable(l.ReleaseCommunityHave),
		"release_community_want": nullable(l.ReleaseCommunityWant),
		"export_timestamp":       isoTime(l.ExportTimestamp),
		"is_active":              l.Active(),
		"removed_at":             isoTime(l.RemovedAt),
		"sold_at":                isoTime(l.SoldAt),
		"custom_metadata":        metadata,
		"created_at":             l.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":             l.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// String renders a one-line debug summary. Absent fields keep the <nil> token
// so the summary shows what is missing.
func (l *Listing) String() string {
	return fmt.Sprintf("<Listing %s: %s by %s>", l.ListingID, display(l.ReleaseTitle), display(l.PrimaryArtist))
}

func display(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func isoTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
