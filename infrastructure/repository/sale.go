package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/pos-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

const (
	salesTable     = "sales s"
	saleItemsTable = "sale_items si"
)

type SaleRepository interface {
	// ListSales busca as vendas dentro do intervalo, com limites nulos
	// tratados como abertos. Os itens de cada venda vêm carregados.
	ListSales(dateRange domain.DateRange) ([]*domain.Sale, error)
	CreateSale(ctx context.Context, sale *domain.Sale) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) ListSales(dateRange domain.DateRange) ([]*domain.Sale, error) {
	queryBuilder := squirrel.
		Select("s.id, s.created_at, s.total, s.payment_method").
		From(salesTable).
		OrderBy("s.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if dateRange.Start != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"s.created_at": *dateRange.Start})
	}
	if dateRange.End != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"s.created_at": *dateRange.End})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	saleIDs := make([]string, 0)
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(&sale.ID, &sale.CreatedAt, &sale.Total, &sale.PaymentMethod); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sale.SaleItems = make([]domain.SaleItem, 0)
		sales = append(sales, &sale)
		saleIDs = append(saleIDs, sale.ID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if len(sales) == 0 {
		return sales, nil
	}

	itemsBySale, err := r.listItemsBySale(saleIDs)
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		if items, ok := itemsBySale[sale.ID]; ok {
			sale.SaleItems = items
		}
	}

	return sales, nil
}

// listItemsBySale carrega os itens das vendas informadas em uma única consulta
func (r *saleRepository) listItemsBySale(saleIDs []string) (map[string][]domain.SaleItem, error) {
	query, args, err := squirrel.
		Select("si.sale_id, si.product_id, si.quantity, si.price_at_sale").
		From(saleItemsTable).
		Where(squirrel.Eq{"si.sale_id": saleIDs}).
		OrderBy("si.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar itens de venda: %w", err)
	}
	defer rows.Close()

	itemsBySale := make(map[string][]domain.SaleItem)
	for rows.Next() {
		var saleID string
		var item domain.SaleItem
		if err := rows.Scan(&saleID, &item.ProductID, &item.Quantity, &item.PriceAtSale); err != nil {
			return nil, fmt.Errorf("erro ao escanear item de venda: %w", err)
		}
		itemsBySale[saleID] = append(itemsBySale[saleID], item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return itemsBySale, nil
}

// CreateSale insere a venda e seus itens em uma única transação
func (r *saleRepository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		saleSQL, saleArgs, err := squirrel.
			Insert("sales").
			Columns("id", "created_at", "total", "payment_method").
			Values(sale.ID, sale.CreatedAt, sale.Total, string(sale.PaymentMethod)).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err = tx.Exec(saleSQL, saleArgs...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("erro ao inserir venda: %w", err)
		}

		for _, item := range sale.SaleItems {
			itemSQL, itemArgs, err := squirrel.
				Insert("sale_items").
				Columns("sale_id", "product_id", "quantity", "price_at_sale").
				Values(sale.ID, item.ProductID, item.Quantity, item.PriceAtSale).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err = tx.Exec(itemSQL, itemArgs...); err != nil {
				return fmt.Errorf("erro ao inserir item de venda: %w", err)
			}
		}

		return nil
	})
}
