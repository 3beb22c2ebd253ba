package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

// ErrUnavailable is returned when the data source cannot be read.
var ErrUnavailable = errors.New("catalog: data source unavailable")

// Format selects the decoder for a data document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the decoder from a path or URL extension. Anything that is
// not .yaml/.yml is treated as JSON.
func FormatFor(src string) Format {
	if i := strings.IndexAny(src, "?#"); i >= 0 && isURL(src) {
		src = src[:i]
	}
	switch strings.ToLower(filepath.Ext(src)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Options tune Load.
type Options struct {
	// DefaultCategory replaces a missing item category. Empty means model.DefaultCategory.
	DefaultCategory string
	// Client is used for http(s) sources. Nil means a plain http.Client.
	Client *http.Client
}

// Load reads and normalizes the data document at src, which is either a
// filesystem path or an http(s) URL. There is no retry.
func Load(ctx context.Context, src string, opts Options) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if isURL(src) {
		data, err = fetch(ctx, src, opts.Client)
	} else {
		data, err = os.ReadFile(src) //nolint:gosec // path comes from user config
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrUnavailable, src, err)
		}
	}
	if err != nil {
		return nil, err
	}

	return Decode(data, FormatFor(src), opts.DefaultCategory)
}

// Decode parses a data document and normalizes it.
func Decode(data []byte, format Format, defaultCategory string) (*Catalog, error) {
	var raw rawDocument
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("catalog: parsing yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("catalog: parsing json: %w", err)
		}
	}
	return normalize(raw, defaultCategory), nil
}

func fetch(ctx context.Context, url string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = &http.Client{}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrUnavailable, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading response: %v", ErrUnavailable, url, err)
	}
	return body, nil
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
