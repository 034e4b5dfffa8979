// Package imagesearch finds a photo for a recipe name.
package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultRecipeImage is returned when no provider finds anything.
const DefaultRecipeImage = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400&h=300&fit=crop&crop=center"

var ErrNoResults = errors.New("imagesearch: no results")

// Searcher returns a 400x300 cropped image URL for query.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// withCrop sets the sizing parameters both providers understand.
func withCrop(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("w", "400")
	q.Set("h", "300")
	q.Set("fit", "crop")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func getJSON(ctx context.Context, hc *http.Client, endpoint, auth string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Unsplash searches api.unsplash.com.
type Unsplash struct {
	key     string
	baseURL string
	http    *http.Client
}

func NewUnsplash(accessKey string) *Unsplash {
	return &Unsplash{key: accessKey, baseURL: "https://api.unsplash.com", http: newHTTPClient()}
}

func (u *Unsplash) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	var res struct {
		Results []struct {
			URLs struct {
				Raw     string `json:"raw"`
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := getJSON(ctx, u.http, u.baseURL+"/search/photos?"+params.Encode(), "Client-ID "+u.key, &res); err != nil {
		return "", fmt.Errorf("unsplash search: %w", err)
	}
	if len(res.Results) == 0 || res.Results[0].URLs.Raw == "" {
		return "", ErrNoResults
	}
	return withCrop(res.Results[0].URLs.Raw)
}

// Pexels searches api.pexels.com.
type Pexels struct {
	key     string
	baseURL string
	http    *http.Client
}

func NewPexels(apiKey string) *Pexels {
	return &Pexels{key: apiKey, baseURL: "https://api.pexels.com", http: newHTTPClient()}
}

func (p *Pexels) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	var res struct {
		Photos []struct {
			Src struct {
				Original string `json:"original"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := getJSON(ctx, p.http, p.baseURL+"/v1/search?"+params.Encode(), p.key, &res); err != nil {
		return "", fmt.Errorf("pexels search: %w", err)
	}
	if len(res.Photos) == 0 || res.Photos[0].Src.Original == "" {
		return "", ErrNoResults
	}
	return withCrop(res.Photos[0].Src.Original)
}

// Chain asks each provider in turn and never fails: the last resort is
// DefaultRecipeImage.
type Chain struct {
	searchers []Searcher
}

func NewChain(searchers ...Searcher) *Chain {
	c := &Chain{}
	for _, s := range searchers {
		if s != nil {
			c.searchers = append(c.searchers, s)
		}
	}
	return c
}

func (c *Chain) Search(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return DefaultRecipeImage, nil
	}
	for _, s := range c.searchers {
		img, err := s.Search(ctx, query)
		if err == nil && img != "" {
			return img, nil
		}
		if err != nil && !errors.Is(err, ErrNoResults) {
			slog.WarnContext(ctx, "image search failed", "component", "imagesearch", "query", query, "error", err)
		}
	}
	return DefaultRecipeImage, nil
}
