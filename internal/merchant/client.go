package merchant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/eighttenaric/gmc-editor/internal/models"
	"golang.org/x/oauth2"
	content "google.golang.org/api/content/v2.1"
	"google.golang.org/api/option"
)

// Catalog is the Content API surface the editor consumes: account discovery,
// feed listing and per-product partial updates of the tracked attributes.
type Catalog interface {
	Accounts(ctx context.Context) ([]string, error)
	ListProducts(ctx context.Context, merchantID string) ([]models.ProductRow, error)
	PatchProduct(ctx context.Context, merchantID string, row models.ProductRow) error
}

// Factory builds a Catalog bound to one operator's token set. Clients are
// per-session because every call must carry the operator's credential.
type Factory interface {
	ForToken(ctx context.Context, token *oauth2.Token) (Catalog, error)
}

type factory struct {
	oauth *oauth2.Config
}

func NewFactory(oauth *oauth2.Config) Factory {
	return &factory{oauth: oauth}
}

func (f *factory) ForToken(ctx context.Context, token *oauth2.Token) (Catalog, error) {
	svc, err := content.NewService(ctx, option.WithTokenSource(f.oauth.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to init content api client: %w", err)
	}
	return &client{svc: svc}, nil
}

type client struct {
	svc *content.APIService
}

// Accounts lists the Merchant Center account identifiers the credential can
// reach, via accounts.authinfo.
func (c *client) Accounts(ctx context.Context) ([]string, error) {
	info, err := c.svc.Accounts.Authinfo().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("authinfo failed: %w", err)
	}

	ids := make([]string, 0, len(info.AccountIdentifiers))
	for _, ai := range info.AccountIdentifiers {
		switch {
		case ai.MerchantId != 0:
			ids = append(ids, strconv.FormatUint(ai.MerchantId, 10))
		case ai.AggregatorId != 0:
			ids = append(ids, strconv.FormatUint(ai.AggregatorId, 10))
		}
	}
	return ids, nil
}

func (c *client) ListProducts(ctx context.Context, merchantID string) ([]models.ProductRow, error) {
	id, err := parseMerchantID(merchantID)
	if err != nil {
		return nil, err
	}

	var rows []models.ProductRow
	call := c.svc.Products.List(id).Context(ctx)
	err = call.Pages(ctx, func(resp *content.ProductsListResponse) error {
		for _, p := range resp.Resources {
			rows = append(rows, toProductRow(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("products list failed: %w", err)
	}
	return rows, nil
}

// PatchProduct pushes only the four tracked attributes; the update mask
// keeps every other product field untouched server-side.
func (c *client) PatchProduct(ctx context.Context, merchantID string, row models.ProductRow) error {
	id, err := parseMerchantID(merchantID)
	if err != nil {
		return err
	}

	patch := &content.Product{
		Title:                 row.Title,
		Description:           row.Description,
		ProductTypes:          splitProductTypes(row.ProductType),
		GoogleProductCategory: row.GoogleProductCategory,
	}

	_, err = c.svc.Products.Update(id, row.ProductID, patch).
		UpdateMask("title,description,productTypes,googleProductCategory").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("product update failed for %s: %w", row.ProductID, err)
	}
	return nil
}

func parseMerchantID(merchantID string) (uint64, error) {
	id, err := strconv.ParseUint(merchantID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid merchant account id %q: %w", merchantID, err)
	}
	return id, nil
}

func toProductRow(p *content.Product) models.ProductRow {
	return models.ProductRow{
		ProductID:             p.Id,
		Link:                  p.Link,
		Title:                 p.Title,
		Description:           p.Description,
		ProductType:           strings.Join(p.ProductTypes, ", "),
		GoogleProductCategory: p.GoogleProductCategory,
	}
}

func splitProductTypes(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
