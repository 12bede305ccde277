package discogs

import (
	"strconv"
	"strings"
	"time"

	"recordshop-backend/internal/models"
)

// Flatten maps one wire listing onto the flat database schema. Absent or
// empty wire values become NULL columns.
func Flatten(w WireListing, now time.Time) models.Listing {
	release := w.Release

	listing := models.Listing{
		ListingID:  strconv.FormatInt(w.ID, 10),
		PriceValue: w.Price.Value,
		ReleaseID:  strconv.FormatInt(release.ID, 10),

		Status:          optionalString(w.Status),
		Condition:       optionalString(w.Condition),
		SleeveCondition: optionalString(w.SleeveCondition),
		Posted:          parseTimestamp(w.Posted),
		URI:             optionalString(w.URI),
		ResourceURL:     optionalString(w.ResourceURL),

		PriceCurrency:    optionalString(w.Price.Currency),
		ShippingPrice:    optionalFloat(w.Shipping.Price),
		ShippingCurrency: optionalString(w.Shipping.Currency),

		Weight:         optionalFloat(w.Weight),
		FormatQuantity: optionalInt(w.FormatQuantity),
		ExternalID:     optionalString(w.ExternalID),
		Location:       optionalString(w.Location),
		Comments:       optionalString(w.Comments),

		ReleaseTitle:       optionalString(release.Title),
		ReleaseYear:        optionalInt(release.Year),
		ReleaseResourceURL: optionalString(release.ResourceURL),
		ReleaseURI:         optionalString(release.URI),

		Genres:        joined(release.Genres),
		Styles:        joined(release.Styles),
		Country:       optionalString(release.Country),
		CatalogNumber: optionalString(release.CatalogNumber),
		Barcode:       optionalString(release.Barcode),
		MasterURL:     optionalString(release.MasterURL),

		ReleaseCommunityHave: optionalInt(release.Stats.Community.Have),
		ReleaseCommunityWant: optionalInt(release.Stats.Community.Want),
	}

	if release.MasterID != 0 {
		id := strconv.FormatInt(release.MasterID, 10)
		listing.MasterID = &id
	}

	listing.ArtistNames, listing.PrimaryArtist = nameFields(release.Artist, release.Artists)
	listing.LabelNames, listing.PrimaryLabel = nameFields(release.Label, release.Labels)

	if len(release.Formats) > 0 {
		names := make([]string, 0, len(release.Formats))
		for _, f := range release.Formats {
			names = append(names, f.Name)
		}
		listing.FormatNames = optionalString(strings.Join(names, "; "))
		listing.PrimaryFormat = optionalString(release.Formats[0].Name)
	}

	if len(release.Images) > 0 {
		listing.ImageURI = optionalString(release.Images[0].URI)
		listing.ImageResourceURL = optionalString(release.Images[0].ResourceURL)
	}

	exported := now.UTC()
	listing.ExportTimestamp = &exported

	return listing
}

// nameFields resolves the "; "-joined full string and the primary name from
// either the single denormalized field or the structured list, whichever the
// API populated.
func nameFields(single string, list []WireName) (*string, *string) {
	if single != "" {
		return &single, optionalString(single)
	}
	if len(list) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(list))
	for _, n := range list {
		names = append(names, n.Name)
	}
	full := strings.Join(names, "; ")
	return &full, optionalString(list[0].Name)
}

func joined(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	s := strings.Join(values, "; ")
	return &s
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func optionalInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}
