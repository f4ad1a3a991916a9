package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	// _ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
)

// Fetcher retrieves page markup that is not cached.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// ErrResponseTooLarge is wrapped by a FetchError when a template response
// exceeds the fetcher's size limit.
var ErrResponseTooLarge = errors.New("content: response too large")

// FetchError reports a template request that did not succeed.
type FetchError struct {
	Locator string
	Status  int   // HTTP status, zero for non-HTTP failures
	Err     error // Underlying error, if any
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("content: fetch %q: %v", e.Locator, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("content: fetch %q: status %d", e.Locator, e.Status)
	}
	return fmt.Sprintf("content: fetch %q failed", e.Locator)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPFetcher fetches templates over HTTP(S). Relative locators are resolved
// against BaseURL.
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string
	// MaxBytes caps the response body. Zero means DefaultFetchLimit.
	MaxBytes int64
}

func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: baseURL,
	}
}

func (f *HTTPFetcher) resolve(locator string) (string, error) {
	ref, err := url.Parse(locator)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() || f.BaseURL == "" {
		return ref.String(), nil
	}
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	target, err := f.resolve(locator)
	if err != nil {
		return "", &FetchError{Locator: locator, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &FetchError{Locator: locator, Err: err}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{Locator: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Locator: locator, Status: resp.StatusCode}
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = constants.DefaultFetchLimit
	}

	// One byte past the limit tells a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", &FetchError{Locator: locator, Status: resp.StatusCode, Err: err}
	}
	if int64(len(body)) > limit {
		return "", &FetchError{
			Locator: locator,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, limit),
		}
	}
	return string(body), nil
}

// DirFetcher reads templates from a file system, e.g. os.DirFS("pages").
type DirFetcher struct {
	Root fs.FS
}

func (f *DirFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{Locator: locator, Err: err}
	}

	name := strings.TrimPrefix(path.Clean("/"+locator), "/")
	data, err := fs.ReadFile(f.Root, name)
	if err != nil {
		return "", &FetchError{Locator: locator, Err: err}
	}
	return string(data), nil
}
