package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.discogs.com"
const perPage = 100

// WireListing is one listing as the Discogs inventory endpoint returns it.
type WireListing struct {
	ID              int64        `json:"id"`
	Status          string       `json:"status"`
	Condition       string       `json:"condition"`
	SleeveCondition string       `json:"sleeve_condition"`
	Posted          string       `json:"posted"`
	URI             string       `json:"uri"`
	ResourceURL     string       `json:"resource_url"`
	Price           WirePrice    `json:"price"`
	Shipping        WireShipping `json:"shipping"`
	Weight          float64      `json:"weight"`
	FormatQuantity  int          `json:"format_quantity"`
	ExternalID      string       `json:"external_id"`
	Location        string       `json:"location"`
	Comments        string       `json:"comments"`
	Release         WireRelease  `json:"release"`
}

type WirePrice struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type WireShipping struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type WireRelease struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Year          int          `json:"year"`
	ResourceURL   string       `json:"resource_url"`
	URI           string       `json:"uri"`
	Artist        string       `json:"artist"`
	Artists       []WireName   `json:"artists"`
	Label         string       `json:"label"`
	Labels        []WireName   `json:"labels"`
	Formats       []WireFormat `json:"formats"`
	Genres        []string     `json:"genres"`
	Styles        []string     `json:"styles"`
	Country       string       `json:"country"`
	CatalogNumber string       `json:"catalog_number"`
	Barcode       string       `json:"barcode"`
	MasterID      int64        `json:"master_id"`
	MasterURL     string       `json:"master_url"`
	Images        []WireImage  `json:"images"`
	Stats         WireStats    `json:"stats"`
}

type WireName struct {
	Name string `json:"name"`
}

type WireFormat struct {
	Name string `json:"name"`
}

type WireImage struct {
	URI         string `json:"uri"`
	ResourceURL string `json:"resource_url"`
}

type WireStats struct {
	Community WireCommunity `json:"community"`
}

type WireCommunity struct {
	Have int `json:"have"`
	Want int `json:"want"`
}

type inventoryPage struct {
	Pagination struct {
		Page  int `json:"page"`
		Pages int `json:"pages"`
		Items int `json:"items"`
	} `json:"pagination"`
	Listings []WireListing `json:"listings"`
}

// Client fetches a seller's inventory from the Discogs API. It paces page
// requests and backs off on rate limiting; 401 and 404 are terminal.
type Client struct {
	BaseURL        string
	Token          string
	SellerUsername string
	UserAgent      string
	HTTPClient     *http.Client

	// Sleep is the pacing hook between pages and on 429 backoff. Tests swap
	// it out; nil means time.Sleep.
	Sleep func(time.Duration)
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

// FetchAllListings walks every inventory page for the seller and returns the
// combined listing set.
func (c *Client) FetchAllListings(ctx context.Context) ([]WireListing, error) {
	var all []WireListing
	page := 1

	for {
		log.Debug().Int("page", page).Msg("Fetching inventory page")

		data, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(data.Listings) == 0 {
			break
		}

		all = append(all, data.Listings...)
		log.Debug().Int("page", page).Int("count", len(data.Listings)).Int("total", len(all)).Msg("Inventory page fetched")

		if data.Pagination.Pages == 0 || page >= data.Pagination.Pages {
			break
		}
		page++
		c.sleep(time.Second)
	}

	log.Info().Int("total", len(all)).Msg("Total listings fetched")
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*inventoryPage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/inventory", c.baseURL(), url.PathEscape(c.SellerUsername))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("status", "For Sale")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("sort", "listed")
	q.Set("sort_order", "desc")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/vnd.discogs.v2.discogs+json")
	req.Header.Set("Authorization", "Discogs token="+c.Token)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching page %d: %w", page, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("authentication error: invalid Discogs token")
	case http.StatusNotFound:
		return nil, fmt.Errorf("seller %q not found", c.SellerUsername)
	case http.StatusTooManyRequests:
		log.Warn().Int("page", page).Msg("Rate limit exceeded, waiting 60 seconds")
		c.sleep(60 * time.Second)
		return c.fetchPage(ctx, page)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching page %d", resp.StatusCode, page)
	}

	var data inventoryPage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding page %d: %w", page, err)
	}
	return &data, nil
}
