package metcolour

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ObjectMetadata is the subset of a catalog object record used here.
type ObjectMetadata struct {
	ObjectID          int    `json:"objectID"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
}

// Catalog looks up object identifiers and records in a museum collection.
type Catalog interface {
	// ObjectIDs lists the objects belonging to a department.
	ObjectIDs(ctx context.Context, departmentID int) ([]int, error)
	// Object fetches a single object record. Unknown ids yield ErrNotFound.
	Object(ctx context.Context, id int) (*ObjectMetadata, error)
}

// objectsResponse is the /objects listing payload. ObjectIDs is null when
// the department is empty.
type objectsResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

// HTTPCatalog talks to a Met-style collection API over HTTP.
type HTTPCatalog struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
}

// ObjectIDs implements Catalog via GET {BaseURL}/objects?departmentIds=N.
func (c *HTTPCatalog) ObjectIDs(ctx context.Context, departmentID int) ([]int, error) {
	q := url.Values{}
	q.Set("departmentIds", strconv.Itoa(departmentID))

	var resp objectsResponse
	if err := c.getJSON(ctx, "/objects?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.ObjectIDs, nil
}

// Object implements Catalog via GET {BaseURL}/objects/{id}.
func (c *HTTPCatalog) Object(ctx context.Context, id int) (*ObjectMetadata, error) {
	var meta ObjectMetadata
	if err := c.getJSON(ctx, "/objects/"+strconv.Itoa(id), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *HTTPCatalog) getJSON(ctx context.Context, path string, dest any) error {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := client.Do(req) //nolint:gosec // G704: catalog URL is operator configuration
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, endpoint)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: HTTP %d from %s", ErrNetwork, resp.StatusCode, endpoint)
	}

	const maxJSONBytes = 64 << 20
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONBytes)).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrNetwork, endpoint, err)
	}
	return nil
}
