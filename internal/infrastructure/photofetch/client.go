// Package photofetch descarga fotos por URL para la exportación.
package photofetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/obras-api/internal/application/export"
)

var _ export.PhotoFetcher = (*Client)(nil)

// Client GET de un solo intento; sin reintentos.
type Client struct {
	http   *resty.Client
	origin string
}

// NewClient crea el cliente. Las URL relativas se resuelven contra el origen
// (esquema y host) de baseURL; cualquier ruta de baseURL se descarta.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Accept", "image/*"),
		origin: originOf(baseURL),
	}
}

func originOf(baseURL string) string {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Fetch devuelve el cuerpo; un estado distinto de 2xx es error.
func (c *Client) Fetch(ctx context.Context, photoURL string) ([]byte, error) {
	if photoURL == "" {
		return nil, fmt.Errorf("photofetch: URL vacía")
	}
	if strings.HasPrefix(photoURL, "/") && c.origin != "" {
		photoURL = c.origin + photoURL
	}
	resp, err := c.http.R().SetContext(ctx).Get(photoURL)
	if err != nil {
		return nil, fmt.Errorf("photofetch: GET %s: %w", photoURL, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("photofetch: GET %s: estado %d", photoURL, resp.StatusCode())
	}
	return resp.Body(), nil
}
