package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// Client fetches raw search-results markup. The cloudflare bypass transport
// rotates a browser User-Agent per request, which is what keeps the upstream
// firewall from cutting the run short.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) (*Client, error) {
	client := resty.New()
	client.SetBaseURL(baseURL)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("accept-language", "en-GB,en;q=0.5")
	client.SetHeader("referer", "https://www.google.com")
	client.SetHeader("dnt", "1")
	client.SetTimeout(time.Second * 30)

	return &Client{http: client}, nil
}

// FetchPage downloads one results page and returns its markup. Any non-200
// status is a fetch error; the caller decides whether the run survives it.
func (c *Client) FetchPage(ctx context.Context, path string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", path, res.StatusCode())
	}
	return res.String(), nil
}
