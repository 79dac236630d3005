package domain

// CategoryRevenue representa a fatia de receita de uma categoria de produtos
// no período filtrado pelo dashboard
type CategoryRevenue struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// ProductRevenue representa a contribuição de receita de um produto.
// A lista exibida contém os 5 maiores e uma entrada "Others" com o restante.
type ProductRevenue struct {
	ProductName string  `json:"product_name"`
	Revenue     float64 `json:"revenue"` // Valor absoluto truncado para baixo
	Percentage  float64 `json:"percentage"`
}

// MonthlyRevenuePoint representa a receita agregada de um mês do calendário.
// A ordem da série segue a primeira ocorrência de cada mês nas vendas filtradas.
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// DashboardInsights é a resposta completa consumida pela camada de exibição:
// intervalo resolvido, análise de consumo ordenada e as três séries agregadas
type DashboardInsights struct {
	Range           DateRange              `json:"range"`
	Consumption     []*ConsumptionAnalysis `json:"consumption"`
	CategoryRevenue []*CategoryRevenue     `json:"category_revenue"`
	ProductRevenue  []*ProductRevenue      `json:"product_revenue"`
	MonthlyRevenue  []*MonthlyRevenuePoint `json:"monthly_revenue"`
}
