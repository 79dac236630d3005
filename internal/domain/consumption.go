package domain

import "time"

// Trend classifica se o consumo recente de um produto está acelerando,
// estável ou desacelerando em relação ao período anterior
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendStable  Trend = "stable"
	TrendFalling Trend = "falling"
)

// ConsumptionAnalysis representa a análise de consumo de um produto do catálogo.
// Recalculada a cada mudança de entrada; nunca mutada após a construção.
// Todas as quantidades são inteiros >= 1 (ver arredondamento em analyzing).
type ConsumptionAnalysis struct {
	ProductName        string `json:"product_name"`
	DailyConsumption   int    `json:"daily_consumption"`
	WeeklyConsumption  int    `json:"weekly_consumption"`
	MonthlyConsumption int    `json:"monthly_consumption"`
	SuggestedQuantity  int    `json:"suggested_quantity"`
	Trend              Trend  `json:"trend"`
}

// ConsumptionSnapshotEntry representa uma foto diária da análise de consumo
// persistida pelo agendador de sincronização
type ConsumptionSnapshotEntry struct {
	ID        int64                  `json:"id"`
	Date      time.Time              `json:"date"`
	Analyses  []*ConsumptionAnalysis `json:"analyses"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
