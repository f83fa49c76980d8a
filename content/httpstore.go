package content

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"termfolio/vfs"
)

// HTTPStore fetches content from a static asset host. A virtual path like
// "~/artist/bio.md" maps to GET {baseURL}/artist/bio.md.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPStore creates an HTTPStore for the given base URL.
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // prevent hanging on an unresponsive host
		},
	}
}

// Fetch retrieves the bytes for path. A 404 from the host is reported as
// ErrNotFound; any other non-200 status is an error.
func (s *HTTPStore) Fetch(path string) ([]byte, error) {
	segs := vfs.SplitPath(path)
	escaped := make([]string, len(segs))
	for i, seg := range segs {
		escaped[i] = url.PathEscape(seg)
	}

	req, err := http.NewRequest("GET", s.baseURL+"/"+strings.Join(escaped, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("content host returned status %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
