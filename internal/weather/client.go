package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yuqianw/smart-wardrobe/internal/config"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

const (
	publicGeoHost   = "geoapi.qweather.com"
	devAPIHost      = "devapi.qweather.com"
	standardAPIHost = "api.qweather.com"
)

// Client talks to the QWeather geocoding and current-conditions APIs.
// Private deployments serve GeoAPI under a /geo prefix on the main host;
// the public geocoding host does not use the prefix.
type Client struct {
	host        string
	geoFallback string
	nowFallback string
	scheme      string
	tokens      *TokenIssuer
	client      *http.Client
}

// NewClient creates a QWeather client for the configured host
func NewClient(cfg config.WeatherConfig, tokens *TokenIssuer) *Client {
	host := cfg.APIHost
	if host == "" {
		host = devAPIHost
	}
	return &Client{
		host:        host,
		geoFallback: publicGeoHost,
		nowFallback: standardAPIHost,
		scheme:      "https",
		tokens:      tokens,
		client:      &http.Client{Timeout: 8 * time.Second},
	}
}

type geoResponse struct {
	Code     string               `json:"code"`
	Location []domain.GeoLocation `json:"location"`
}

type nowResponse struct {
	Code string `json:"code"`
	Now  struct {
		Temp      string `json:"temp"`
		Text      string `json:"text"`
		FeelsLike string `json:"feelsLike"`
		Humidity  string `json:"humidity"`
		WindDir   string `json:"windDir"`
		WindSpeed string `json:"windSpeed"`
	} `json:"now"`
	UpdateTime string `json:"updateTime"`
}

// Fetch resolves a free-text city to current conditions
func (c *Client) Fetch(ctx context.Context, city string) (*domain.WeatherData, error) {
	loc, err := c.LookupCity(ctx, city)
	if err != nil {
		return nil, err
	}
	return c.currentWeather(ctx, loc)
}

// LookupCity geocodes a city name. The configured host is tried first
// with the /geo prefix; on any non-auth failure the public geocoding
// host is tried without the prefix, unless it is already the configured
// host. Exhausting both yields ErrCityNotFound.
func (c *Client) LookupCity(ctx context.Context, city string) (*domain.GeoLocation, error) {
	token, err := c.tokens.Issue()
	if err != nil {
		return nil, err
	}

	loc, err := c.lookupOnHost(ctx, c.host, "/geo", city, token)
	if err == nil {
		return loc, nil
	}

	var ue *domain.UpstreamError
	if errors.As(err, &ue) && ue.IsAuth() {
		// Bad credentials fail the same way on every host
		return nil, err
	}

	if c.host != c.geoFallback {
		log.Warn().Str("host", c.host).Err(err).Msg("geocoding failed, trying public host")
		if loc, ferr := c.lookupOnHost(ctx, c.geoFallback, "", city, token); ferr == nil {
			return loc, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", domain.ErrCityNotFound, city)
}

func (c *Client) lookupOnHost(ctx context.Context, host, prefix, city, token string) (*domain.GeoLocation, error) {
	u := fmt.Sprintf("%s://%s%s/v2/city/lookup?location=%s", c.scheme, host, prefix, url.QueryEscape(city))

	var geo geoResponse
	if err := c.getJSON(ctx, u, token, &geo); err != nil {
		return nil, err
	}

	if geo.Code != "200" || len(geo.Location) == 0 {
		return nil, &domain.UpstreamError{Service: "qweather-geo", Message: fmt.Sprintf("lookup returned code %s", geo.Code)}
	}
	return &geo.Location[0], nil
}

// currentWeather fetches conditions for a resolved location. When the
// configured host is the development host and the call fails, the
// standard production host is tried once.
func (c *Client) currentWeather(ctx context.Context, loc *domain.GeoLocation) (*domain.WeatherData, error) {
	token, err := c.tokens.Issue()
	if err != nil {
		return nil, err
	}

	now, err := c.weatherOnHost(ctx, c.host, loc.ID, token)
	if err != nil && c.host == devAPIHost {
		log.Warn().Err(err).Msg("dev API failed, trying standard API")
		now, err = c.weatherOnHost(ctx, c.nowFallback, loc.ID, token)
	}
	if err != nil {
		return nil, err
	}

	temp, err := strconv.Atoi(now.Now.Temp)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "qweather", Message: fmt.Sprintf("unparseable temperature %q", now.Now.Temp)}
	}

	return &domain.WeatherData{
		Temp:       temp,
		Condition:  now.Now.Text,
		City:       loc.Name,
		UpdateTime: now.UpdateTime,
	}, nil
}

func (c *Client) weatherOnHost(ctx context.Context, host, locationID, token string) (*nowResponse, error) {
	u := fmt.Sprintf("%s://%s/v7/weather/now?location=%s", c.scheme, host, url.QueryEscape(locationID))

	var now nowResponse
	if err := c.getJSON(ctx, u, token, &now); err != nil {
		return nil, err
	}
	if now.Code != "200" {
		return nil, &domain.UpstreamError{Service: "qweather", Message: fmt.Sprintf("weather API returned code %s", now.Code)}
	}
	return &now, nil
}

func (c *Client) getJSON(ctx context.Context, u, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.UpstreamError{Service: "qweather", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &domain.UpstreamError{
			Service:    "qweather",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message: fmt.Sprintf(
				"authentication failed (%d): verify QWEATHER_KEY_ID, QWEATHER_PROJECT_ID, the private key matching the key ID, and that the project has API access",
				resp.StatusCode,
			),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return &domain.UpstreamError{Service: "qweather", StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.UpstreamError{Service: "qweather", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
