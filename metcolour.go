// Package metcolour fetches museum object images from a collection catalog and
// summarises each one by its dominant colour and a coarse primary colour bucket.
package metcolour

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultCatalogURL is the Metropolitan Museum of Art collection API.
	DefaultCatalogURL = "https://collectionapi.metmuseum.org/public/collection/v1"

	// DefaultPaletteSize is the number of palette samples classified per image.
	DefaultPaletteSize = 5

	// DefaultUserAgent is sent with every catalog and image request.
	DefaultUserAgent = "Mozilla/5.0 (compatible; go-metcolour/1.0)"

	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 5 << 20 // 5MB
)

// ImageResult is the per-image record written to the results file.
type ImageResult struct {
	ID                    string        `json:"id"`
	URL                   string        `json:"url"`
	DominantColour        string        `json:"dominantColour"`
	DominantPrimaryColour PrimaryColour `json:"dominantPrimaryColour"`
	Rights                string        `json:"rights,omitempty"`
}

// Config holds all dependencies injected by the consumer.
// Nil collaborators are replaced by HTTP and prominentcolor defaults on first use.
type Config struct {
	Catalog   Catalog     // default: HTTPCatalog against CatalogURL
	Pixels    PixelSource // default: HTTPPixelSource
	Quantizer Quantizer   // default: ProminentQuantizer

	CatalogURL      string        // default: DefaultCatalogURL
	HTTPClient      *http.Client  // default: http.DefaultClient
	PreferredClient *http.Client  // optional: tried first for image downloads
	UserAgent       string        // default: DefaultUserAgent
	Timeout         time.Duration // per-request timeout (default: 10s)
	MaxImageBytes   int64         // image size cap (default: 5MB)
	PaletteSize     int           // default: DefaultPaletteSize (5)

	// ExtractRights fills ImageResult.Rights from EXIF/IPTC/XMP metadata.
	ExtractRights bool

	Logger *slog.Logger // default: slog.Default()

	// Optional callbacks for metrics/logging. OnImage is called from worker
	// goroutines when BatchOpts.Concurrency > 1.
	OnImage func(ImageEvent)
	OnPanic func(tag string, r any)

	once sync.Once
}

// ImageEvent is emitted once per catalog object processed by a batch.
type ImageEvent struct {
	Index    int // 1-based position in the batch
	ObjectID int
	Result   *ImageResult // nil when the image was skipped
	Err      error
}

// defaults fills zero-value fields with sensible defaults.
func (c *Config) defaults() {
	c.once.Do(func() {
		if c.CatalogURL == "" {
			c.CatalogURL = DefaultCatalogURL
		}
		if c.HTTPClient == nil {
			c.HTTPClient = http.DefaultClient
		}
		if c.UserAgent == "" {
			c.UserAgent = DefaultUserAgent
		}
		if c.Timeout <= 0 {
			c.Timeout = defaultTimeout
		}
		if c.MaxImageBytes <= 0 {
			c.MaxImageBytes = defaultMaxBytes
		}
		if c.PaletteSize <= 0 {
			c.PaletteSize = DefaultPaletteSize
		}
		if c.Logger == nil {
			c.Logger = slog.Default()
		}
		if c.Catalog == nil {
			c.Catalog = &HTTPCatalog{
				BaseURL:    c.CatalogURL,
				HTTPClient: c.HTTPClient,
				UserAgent:  c.UserAgent,
				Timeout:    c.Timeout,
			}
		}
		if c.Pixels == nil {
			c.Pixels = &HTTPPixelSource{
				PreferredClient: c.PreferredClient,
				HTTPClient:      c.HTTPClient,
				UserAgent:       c.UserAgent,
				Timeout:         c.Timeout,
				MaxBytes:        c.MaxImageBytes,
			}
		}
		if c.Quantizer == nil {
			c.Quantizer = &ProminentQuantizer{}
		}
	})
}
