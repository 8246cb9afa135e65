package mapsdk

import (
	"context"
	"fmt"
	"net/http"

	httppkg "github.com/jumpa-app/jumpa/internal/pkg/http"
)

// HTTPSDK treats a mapping vendor's style/status endpoint as the readiness
// signal: the SDK is usable once the endpoint answers 200.
type HTTPSDK struct {
	client    *httppkg.Client
	statusURL string
}

// NewHTTPSDK creates an SDK boundary probing the given status URL
func NewHTTPSDK(client *httppkg.Client, statusURL string) *HTTPSDK {
	return &HTTPSDK{
		client:    client,
		statusURL: statusURL,
	}
}

// Initialize is a no-op for the HTTP-probed SDK: the vendor side warms up on
// its own, the agent only watches for it to come alive.
func (s *HTTPSDK) Initialize(ctx context.Context) error {
	return nil
}

// ProbeReady issues one status request
func (s *HTTPSDK) ProbeReady(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.statusURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build sdk probe request: %w", err)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("sdk probe request failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
