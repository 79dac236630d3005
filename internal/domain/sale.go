package domain

import "time"

// PaymentMethod representa a forma de pagamento de uma venda
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodPix  PaymentMethod = "pix"
)

// IsValid verifica se a forma de pagamento é uma das aceitas pelo PDV
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodPix:
		return true
	}
	return false
}

// SaleItem representa um item de uma venda. PriceAtSale é o preço unitário
// congelado no momento da transação, independente do preço atual do produto.
type SaleItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
}

// Sale representa uma venda registrada no ponto de venda
type Sale struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	SaleItems     []SaleItem    `json:"sale_items"`
}
