// Package geocoding proxies address search and reverse lookup to a
// Nominatim-compatible service.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const searchLimit = "5"

type Place struct {
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Type        string  `json:"type"`
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Error       string `json:"error"`
}

type Client struct {
	http  *resty.Client
	cache Cache
	ttl   time.Duration
}

func NewClient(baseURL string, cache Cache, ttl time.Duration) *Client {
	if cache == nil {
		cache = NopCache{}
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "foodhub-api/1.0")
	return &Client{http: http, cache: cache, ttl: ttl}
}

func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("q is required")
	}
	key := "geocode:search:" + strings.ToLower(query)

	var places []Place
	if c.fromCache(ctx, key, &places) {
		return places, nil
	}

	var raw []nominatimPlace
	if err := c.get(ctx, "/search", map[string]string{
		"q":      query,
		"format": "jsonv2",
		"limit":  searchLimit,
	}, &raw); err != nil {
		return nil, err
	}

	places = make([]Place, 0, len(raw))
	for _, r := range raw {
		p, err := r.toPlace()
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("skipping malformed geocoding result")
			continue
		}
		places = append(places, p)
	}
	c.toCache(ctx, key, places)
	return places, nil
}

func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, apperrors.Validation("lat/lng out of range")
	}
	key := fmt.Sprintf("geocode:reverse:%.5f,%.5f", lat, lng)

	var place Place
	if c.fromCache(ctx, key, &place) {
		return &place, nil
	}

	var raw nominatimPlace
	if err := c.get(ctx, "/reverse", map[string]string{
		"lat":    strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":    strconv.FormatFloat(lng, 'f', -1, 64),
		"format": "jsonv2",
	}, &raw); err != nil {
		return nil, err
	}
	if raw.Error != "" {
		return nil, apperrors.NotFound("no address found for location")
	}

	place, err := raw.toPlace()
	if err != nil {
		return nil, apperrors.Internal("invalid response from geocoding service", err)
	}
	c.toCache(ctx, key, place)
	return &place, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return apperrors.Internal("geocoding service unavailable", err)
	}
	if resp.IsError() {
		return apperrors.Internal("geocoding service unavailable", fmt.Errorf("status %d", resp.StatusCode()))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return apperrors.Internal("invalid response from geocoding service", err)
	}
	return nil
}

// fromCache treats every cache failure as a miss.
func (c *Client) fromCache(ctx context.Context, key string, out any) bool {
	val, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("geocoding cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt geocoding cache entry")
		return false
	}
	return true
}

func (c *Client) toCache(ctx context.Context, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(body), c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("geocoding cache write failed")
	}
}

func (r nominatimPlace) toPlace() (Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("lat %q: %w", r.Lat, err)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("lon %q: %w", r.Lon, err)
	}
	return Place{DisplayName: r.DisplayName, Latitude: lat, Longitude: lng, Type: r.Type}, nil
}
