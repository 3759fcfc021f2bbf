package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
	"github.com/teslo-shop/storefront/internal/core/service"
)

const testHost = "https://shop.example.com/"

type fakeReader struct {
	product   domain.Product
	products  []domain.Product
	summaries []domain.ProductSummary
	slugs     []string
	err       error
	lastTerm  string
}

func (f *fakeReader) ProductBySlug(
	_ context.Context, slug string,
) (domain.Product, error) {
	if f.err != nil {
		return domain.Product{}, fmt.Errorf("reader: %w", f.err)
	}
	return f.product, nil
}

func (f *fakeReader) ProductSlugs(_ context.Context) ([]string, error) {
	return f.slugs, f.err
}

func (f *fakeReader) ProductsByTerm(
	_ context.Context, term string,
) ([]domain.ProductSummary, error) {
	f.lastTerm = term
	return f.summaries, f.err
}

func (f *fakeReader) AllProducts(_ context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func TestCatalogImageRewrite(t *testing.T) {
	ctx := context.Background()

	t.Run("RelativeGetsPrefixed", func(t *testing.T) {
		reader := &fakeReader{product: domain.Product{
			Slug:   "mens-tee",
			Images: []string{"tee_1.jpg", "tee_2.jpg"},
		}}
		catalog := service.NewCatalog(reader, testHost)

		p, err := catalog.ProductBySlug(ctx, "mens-tee")

		require.NoError(t, err)
		assert.Equal(t, []string{
			testHost + "products/tee_1.jpg",
			testHost + "products/tee_2.jpg",
		}, p.Images)
	})

	t.Run("AbsolutePassesThrough", func(t *testing.T) {
		absolute := "https://cdn.example.com/tee_1.jpg"
		reader := &fakeReader{product: domain.Product{
			Images: []string{absolute, "tee_2.jpg"},
		}}
		catalog := service.NewCatalog(reader, testHost)

		p, err := catalog.ProductBySlug(ctx, "mens-tee")

		require.NoError(t, err)
		assert.Equal(t, absolute, p.Images[0])
		assert.Equal(t, testHost+"products/tee_2.jpg", p.Images[1])
	})

	t.Run("AppliedToSearchAndAll", func(t *testing.T) {
		reader := &fakeReader{
			products:  []domain.Product{{Images: []string{"a.jpg"}}},
			summaries: []domain.ProductSummary{{Images: []string{"b.jpg"}}},
		}
		catalog := service.NewCatalog(reader, testHost)

		ps, err := catalog.AllProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, testHost+"products/a.jpg", ps[0].Images[0])

		ss, err := catalog.ProductsByTerm(ctx, "shirt")
		require.NoError(t, err)
		assert.Equal(t, testHost+"products/b.jpg", ss[0].Images[0])
	})
}

func TestCatalogTermIsLowercased(t *testing.T) {
	reader := &fakeReader{}
	catalog := service.NewCatalog(reader, testHost)

	_, err := catalog.ProductsByTerm(context.Background(), "CyberTruck")

	require.NoError(t, err)
	assert.Equal(t, "cybertruck", reader.lastTerm)
}

func TestCatalogErrorsPropagate(t *testing.T) {
	reader := &fakeReader{err: port.ErrNotFound}
	catalog := service.NewCatalog(reader, testHost)

	_, err := catalog.ProductBySlug(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrNotFound)
}
