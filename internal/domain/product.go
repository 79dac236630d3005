// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Product representa um produto do catálogo do ponto de venda
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	SellingPrice  float64   `json:"selling_price"`
	CostPrice     float64   `json:"cost_price"`
	Quantity      int       `json:"quantity"`        // Estoque atual
	MinStockLevel int       `json:"min_stock_level"` // Estoque mínimo antes do alerta de reposição
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
