package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*Catalog)(nil)

// A Catalog serves the read-only product surface. Every read passes
// through the storage adapter unchanged except for image references,
// which are rewritten to absolute URLs under the configured host.
type Catalog struct {
	reader   port.ProductsReader
	hostName string
}

func NewCatalog(reader port.ProductsReader, hostName string) Catalog {
	return Catalog{reader, hostName}
}

func (c Catalog) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "Catalog.ProductBySlug"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := c.reader.ProductBySlug(ctx, slug)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Images = c.absoluteImages(p.Images)
	return p, nil
}

func (c Catalog) ProductSlugs(ctx context.Context) ([]string, error) {
	const op = "Catalog.ProductSlugs"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slugs, err := c.reader.ProductSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slugs, nil
}

func (c Catalog) ProductsByTerm(
	ctx context.Context, term string,
) ([]domain.ProductSummary, error) {
	const op = "Catalog.ProductsByTerm"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	term = strings.ToLower(term)

	ps, err := c.reader.ProductsByTerm(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range ps {
		ps[i].Images = c.absoluteImages(ps[i].Images)
	}
	return ps, nil
}

func (c Catalog) AllProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Catalog.AllProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := c.reader.AllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range ps {
		ps[i].Images = c.absoluteImages(ps[i].Images)
	}
	return ps, nil
}

// absoluteImages prefixes the configured host to every image reference
// that does not already look absolute. Pure transform, no error path.
func (c Catalog) absoluteImages(images []string) []string {
	out := make([]string, len(images))
	for i, img := range images {
		if strings.Contains(img, "http") {
			out[i] = img
			continue
		}
		out[i] = c.hostName + "products/" + img
	}
	return out
}
