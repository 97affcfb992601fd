package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, title, slug, description, status, published_at, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		product.ID, product.Title, product.Slug, product.Description,
		string(product.Status), product.PublishedAt, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

const productColumns = `id, title, slug, description, status, published_at, created_at`

func scanProduct(row *sql.Row) (domain.Product, error) {
	var p domain.Product
	var status string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &status, &p.PublishedAt, &p.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.Status = domain.ProductStatus(status)
	return p, nil
}

func (r *productRepository) Get(id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *productRepository) GetBySlug(slug string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE LOWER(slug) = LOWER($1)`, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product by slug: %w", err)
	}
	return p, nil
}

func (r *productRepository) List(limit int) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		var status string
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &status, &p.PublishedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		p.Status = domain.ProductStatus(status)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) CreateImage(image domain.ProductImage) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO product_images (id, product_id, url, alt, sort_order, color)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		image.ID, image.ProductID, image.URL, image.Alt, image.SortOrder, image.Color,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

func (r *productRepository) ListImages(productID string) ([]domain.ProductImage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, url, alt, sort_order, color
		FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order, id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	images := make([]domain.ProductImage, 0)
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.SortOrder, &img.Color); err != nil {
			return nil, fmt.Errorf("scan product image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product image rows: %w", err)
	}

	return images, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.ProductRepository = (*productRepository)(nil)
