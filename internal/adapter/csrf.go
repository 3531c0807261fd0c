package adapter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/utils"
)

// csrfSource yields the anti-forgery token. A static token wins; otherwise
// the token is scraped from the csrf-token meta tag of page and cached until
// invalidated.
type csrfSource struct {
	static string
	page   string
	client *utils.HTTPClient

	mu     sync.Mutex
	cached string

	logger *logger.Logger
}

func newCSRFSource(static, page string, client *utils.HTTPClient, log *logger.Logger) *csrfSource {
	return &csrfSource{
		static: strings.TrimSpace(static),
		page:   strings.TrimSpace(page),
		client: client,
		logger: log,
	}
}

// Token returns the current token, or "" when none is configured.
func (c *csrfSource) Token(ctx context.Context) (string, error) {
	if c.static != "" || c.page == "" {
		return c.static, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != "" {
		return c.cached, nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(c.page)
	if err != nil {
		return "", fmt.Errorf("fetch csrf page: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch csrf page: http %d", resp.StatusCode())
	}

	token, err := scrapeCSRFToken(resp.Body())
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "csrfSource.Token").Str("page", c.page).Msg("no csrf token on page")
		return "", err
	}

	c.cached = token
	return token, nil
}

// Invalidate drops the cached scraped token.
func (c *csrfSource) Invalidate() {
	c.mu.Lock()
	c.cached = ""
	c.mu.Unlock()
}

// scrapeCSRFToken finds <meta name="csrf-token" content="..."> in page.
func scrapeCSRFToken(page []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse csrf page: %w", err)
	}

	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, a := range n.Attr {
				switch strings.ToLower(a.Key) {
				case "name":
					name = a.Val
				case "content":
					content = a.Val
				}
			}
			if strings.EqualFold(name, "csrf-token") && content != "" {
				return content
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if v := walk(child); v != "" {
				return v
			}
		}
		return ""
	}

	if token := walk(doc); token != "" {
		return token, nil
	}
	return "", ErrCSRFTokenEmpty
}
