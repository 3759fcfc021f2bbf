package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
)

var _ port.ProductsReader = (*ProductsRepository)(nil)

// A ProductsRepository serves the four catalog reads. Each call runs
// one query on the pooled connection; a query error propagates to the
// caller unhandled.
type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "ProductsRepository.ProductBySlug"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT slug, title, description, price, in_stock,
			sizes, tags, product_type, gender, images
		FROM products
		WHERE slug = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, slug)
	v, err := r.scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r ProductsRepository) ProductSlugs(
	ctx context.Context,
) ([]string, error) {
	const op = "ProductsRepository.ProductSlugs"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx, `SELECT slug FROM products;`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slugs, nil
}

func (r ProductsRepository) ProductsByTerm(
	ctx context.Context, term string,
) ([]domain.ProductSummary, error) {
	const op = "ProductsRepository.ProductsByTerm"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT slug, title, price, in_stock, images
		FROM products
		WHERE textsearch @@ plainto_tsquery('english', $1);`

	rows, err := r.sqldb.QueryContext(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.ProductSummary
	for rows.Next() {
		var (
			v       domain.ProductSummary
			inStock int
			imagesS string
		)
		err := rows.Scan(&v.Slug, &v.Title, &v.Price, &inStock, &imagesS)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal([]byte(imagesS), &v.Images); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		v.InStock = inStock > 0
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r ProductsRepository) AllProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.AllProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT slug, title, description, price, in_stock,
			sizes, tags, product_type, gender, images
		FROM products;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Product
	for rows.Next() {
		v, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (ProductsRepository) scanProduct(row rowScanner) (domain.Product, error) {
	var (
		v       domain.Product
		sizesS  string
		tagsS   string
		imagesS string
	)
	err := row.Scan(
		&v.Slug, &v.Title, &v.Description, &v.Price, &v.InStock,
		&sizesS, &tagsS, &v.Type, &v.Gender, &imagesS,
	)
	if err != nil {
		return domain.Product{}, err
	}

	v.Sizes = splitArray(sizesS)
	v.Tags = splitArray(tagsS)

	if err := json.Unmarshal([]byte(imagesS), &v.Images); err != nil {
		return domain.Product{}, err
	}
	return v, nil
}

func splitArray(s string) []string {
	s = strings.Trim(s, "{}")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
