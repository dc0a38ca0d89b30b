package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/pkg/config"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"
)

// Client queries the public cocktail, food and barcode catalogs for
// prefill candidates. Every call is best effort: the caller treats any
// error as "no candidate".
type Client struct {
	cfg        config.LookupConfig
	httpClient *http.Client
}

func NewClient(cfg config.LookupConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

var _ commands.CatalogLookup = (*Client)(nil)

func (c *Client) Lookup(ctx context.Context, q commands.LookupQuery) (*commands.LookupCandidate, error) {
	if q.Barcode != nil && *q.Barcode != "" {
		return c.lookupBarcode(ctx, *q.Barcode)
	}
	if q.Kind == catalog.KindCocktail {
		return c.lookupCocktail(ctx, q.Name)
	}
	return c.lookupFood(ctx, q.Name)
}

func (c *Client) lookupCocktail(ctx context.Context, name string) (*commands.LookupCandidate, error) {
	var body struct {
		Drinks []struct {
			Name        string `json:"strDrink"`
			Thumb       string `json:"strDrinkThumb"`
			Instruction string `json:"strInstructions"`
		} `json:"drinks"`
	}
	endpoint := fmt.Sprintf("%s/search.php?s=%s", c.cfg.CocktailBaseURL, url.QueryEscape(name))
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	if len(body.Drinks) == 0 {
		return nil, errs.Newf("no cocktail match for %q", name)
	}

	drink := body.Drinks[0]
	candidate := &commands.LookupCandidate{}
	if drink.Thumb != "" {
		candidate.ImageURL = &drink.Thumb
	}
	if drink.Instruction != "" {
		candidate.Description = &drink.Instruction
	}
	return candidate, nil
}

func (c *Client) lookupFood(ctx context.Context, name string) (*commands.LookupCandidate, error) {
	var body struct {
		Products []struct {
			Code   string `json:"code"`
			Brands string `json:"brands"`
			Image  string `json:"image_url"`
			Name   string `json:"generic_name"`
		} `json:"products"`
	}
	endpoint := fmt.Sprintf("%s/search?search_terms=%s&page_size=1&json=1", c.cfg.FoodBaseURL, url.QueryEscape(name))
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	if len(body.Products) == 0 {
		return nil, errs.Newf("no food match for %q", name)
	}

	product := body.Products[0]
	candidate := &commands.LookupCandidate{}
	if product.Code != "" {
		candidate.Barcode = &product.Code
	}
	if product.Brands != "" {
		candidate.Brand = &product.Brands
	}
	if product.Image != "" {
		candidate.ImageURL = &product.Image
	}
	if product.Name != "" {
		candidate.Description = &product.Name
	}
	return candidate, nil
}

func (c *Client) lookupBarcode(ctx context.Context, barcode string) (*commands.LookupCandidate, error) {
	var body struct {
		Items []struct {
			Brand       string   `json:"brand"`
			Description string   `json:"description"`
			Images      []string `json:"images"`
		} `json:"items"`
	}
	endpoint := fmt.Sprintf("%s/lookup?upc=%s", c.cfg.BarcodeBaseURL, url.QueryEscape(barcode))
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	if len(body.Items) == 0 {
		return nil, errs.Newf("no barcode match for %q", barcode)
	}

	item := body.Items[0]
	candidate := &commands.LookupCandidate{Barcode: &barcode}
	if item.Brand != "" {
		candidate.Brand = &item.Brand
	}
	if item.Description != "" {
		candidate.Description = &item.Description
	}
	if len(item.Images) > 0 {
		candidate.ImageURL = &item.Images[0]
	}
	return candidate, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build lookup request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "lookup request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.Newf("lookup returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode lookup response")
	}
	return nil
}
