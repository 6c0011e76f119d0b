// Package resources looks up crisis-support contacts from a remote directory service.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Locator implements domain.ResourceLocator over GET {base}/resources?tier=<tier>.
type Locator struct {
	baseURL string
	client  *http.Client
}

// NewLocator creates a locator for the directory at baseURL.
func NewLocator(baseURL string, timeout time.Duration) (*Locator, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid resources url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Locator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (l *Locator) FindResources(ctx context.Context, tier domain.CrisisTier) (domain.ResourceSet, error) {
	endpoint := l.baseURL + "/resources?tier=" + url.QueryEscape(tier.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.ResourceSet{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.ResourceSet{}, fmt.Errorf("resources request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.ResourceSet{}, fmt.Errorf("resources service returned status %d: %s", resp.StatusCode, string(body))
	}

	var set domain.ResourceSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return domain.ResourceSet{}, fmt.Errorf("failed to decode resources: %w", err)
	}
	return set, nil
}
