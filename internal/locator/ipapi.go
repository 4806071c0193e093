package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/racewatch/racewatch/internal/buildinfo"
)

// DefaultIPAPIEndpoint is the public ip-api.com JSON endpoint.
const DefaultIPAPIEndpoint = "http://ip-api.com/json/"

// ipapiResponse is the subset of the ip-api.com response we read.
type ipapiResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPAPI resolves the approximate position of this machine's public IP
// through an ip-api.com compatible endpoint.
type IPAPI struct {
	endpoint string
	client   *http.Client
}

// NewIPAPI creates an ip-api locator. A nil client uses http.DefaultClient.
func NewIPAPI(endpoint string, client *http.Client) *IPAPI {
	if endpoint == "" {
		endpoint = DefaultIPAPIEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &IPAPI{endpoint: endpoint, client: client}
}

// Locate queries the endpoint once.
func (p *IPAPI) Locate(ctx context.Context) (Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "racewatch/"+buildinfo.Version)

	resp, err := p.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("fetch location: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusUnauthorized, http.StatusTooManyRequests:
		return Coordinates{}, fmt.Errorf("%w: endpoint returned %d", ErrDenied, resp.StatusCode)
	default:
		return Coordinates{}, fmt.Errorf("location endpoint returned %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coordinates{}, fmt.Errorf("decode location: %w", err)
	}
	if body.Status != "success" {
		return Coordinates{}, fmt.Errorf("%w: %s", ErrDenied, body.Message)
	}

	return Coordinates{Latitude: body.Lat, Longitude: body.Lon}, nil
}
