package iopreschools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chuawjk/ecda/pkg/config"
)

// location is a geocoded WGS84 coordinate pair. found is false when
// OneMap has no match for the postal code.
type location struct {
	lat   float64
	lng   float64
	found bool
}

// geocoder resolves Singapore postal codes to coordinates through the
// OneMap search API. Lookups are cached because centres share a postal
// code when they occupy the same building.
type geocoder struct {
	searchURL string
	token     string
	client    *http.Client
	cache     *lru.Cache[string, location]
}

// newGeocoder creates a geocoder from the configuration. The OneMap
// token is required, anonymous requests are rejected by the API.
func newGeocoder(cfg *config.Config) (*geocoder, error) {
	if strings.TrimSpace(cfg.Geocoder.Token) == "" {
		return nil, TokenError()
	}

	cache, err := lru.New[string, location](cfg.Geocoder.CacheSize)
	if err != nil {
		return nil, err
	}

	return &geocoder{
		searchURL: cfg.Geocoder.SearchURL,
		token:     cfg.Geocoder.Token,
		client:    &http.Client{Timeout: 30 * time.Second},
		cache:     cache,
	}, nil
}

// searchResponse is the part of the OneMap search result the geocoder
// consumes. Coordinates come back as strings.
type searchResponse struct {
	Found   int `json:"found"`
	Results []struct {
		Latitude  string `json:"LATITUDE"`
		Longitude string `json:"LONGITUDE"`
	} `json:"results"`
}

// lookup returns the location of a postal code. Lookups without a
// match return found false with no error, and misses are cached too.
func (g *geocoder) lookup(ctx context.Context, postal string) (location, error) {
	if loc, ok := g.cache.Get(postal); ok {
		return loc, nil
	}

	q := url.Values{}
	q.Set("searchVal", postal)
	q.Set("returnGeom", "Y")
	q.Set("getAddrDetails", "Y")
	q.Set("pageNum", "1")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, g.searchURL+"?"+q.Encode(), nil,
	)
	if err != nil {
		return location{}, RequestError(postal, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return location{}, RequestError(postal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status %s", resp.Status)
		return location{}, RequestError(postal, err)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return location{}, ResponseError(postal, err)
	}

	var loc location
	if sr.Found > 0 && len(sr.Results) > 0 {
		lat, errLat := strconv.ParseFloat(sr.Results[0].Latitude, 64)
		lng, errLng := strconv.ParseFloat(sr.Results[0].Longitude, 64)
		if errLat == nil && errLng == nil {
			loc = location{lat: lat, lng: lng, found: true}
		}
	}

	g.cache.Add(postal, loc)
	return loc, nil
}
