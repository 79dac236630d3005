package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/pos-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

const productsTable = "products p"

type ProductRepository interface {
	ListProducts() ([]*domain.Product, error)
	GetProductByID(productID string) (*domain.Product, error)
	CreateProduct(product *domain.Product) error
	UpdateProduct(product *domain.Product) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) ListProducts() ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.name, p.category, p.selling_price, p.cost_price, p.quantity, p.min_stock_level, p.created_at, p.updated_at").
		From(productsTable).
		OrderBy("p.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetProductByID(productID string) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.name, p.category, p.selling_price, p.cost_price, p.quantity, p.min_stock_level, p.created_at, p.updated_at").
		From(productsTable).
		Where(squirrel.Eq{"p.id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	var product domain.Product
	err = row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.SellingPrice,
		&product.CostPrice,
		&product.Quantity,
		&product.MinStockLevel,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return &product, nil
}

func (r *productRepository) CreateProduct(product *domain.Product) error {
	query, args, err := squirrel.
		Insert("products").
		Columns("id", "name", "category", "selling_price", "cost_price", "quantity", "min_stock_level").
		Values(
			product.ID,
			product.Name,
			product.Category,
			product.SellingPrice,
			product.CostPrice,
			product.Quantity,
			product.MinStockLevel,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir produto: %w", err)
	}

	return nil
}

func (r *productRepository) UpdateProduct(product *domain.Product) error {
	query, args, err := squirrel.
		Update("products").
		Set("name", product.Name).
		Set("category", product.Category).
		Set("selling_price", product.SellingPrice).
		Set("cost_price", product.CostPrice).
		Set("quantity", product.Quantity).
		Set("min_stock_level", product.MinStockLevel).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	return nil
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	var product domain.Product
	err := rows.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.SellingPrice,
		&product.CostPrice,
		&product.Quantity,
		&product.MinStockLevel,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
