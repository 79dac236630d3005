// Package perioding resolve seletores simbólicos de período em intervalos
// concretos de datas usados pelos filtros do dashboard
package perioding

import (
	"time"

	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

// Resolve mapeia um seletor de período para um intervalo [start, end] concreto,
// relativo ao instante informado. Para "all" e "custom" ambos os limites ficam
// nulos: "all" significa sem filtro e "custom" recebe os limites do chamador
// via RangeSelection.
func Resolve(selector domain.PeriodSelector, now time.Time) domain.DateRange {
	switch selector {
	case domain.PeriodDaily:
		start := StartOfDay(now)
		end := EndOfDay(now)
		return domain.DateRange{Start: &start, End: &end}

	case domain.PeriodWeekly:
		// A semana começa no domingo mais recente
		sunday := now.AddDate(0, 0, -int(now.Weekday()))
		start := StartOfDay(sunday)
		end := EndOfDay(sunday.AddDate(0, 0, 6))
		return domain.DateRange{Start: &start, End: &end}

	case domain.PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		// Dia zero do mês seguinte normaliza para o último dia do mês atual
		end := EndOfDay(time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()))
		return domain.DateRange{Start: &start, End: &end}

	case domain.PeriodYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := EndOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()))
		return domain.DateRange{Start: &start, End: &end}
	}

	return domain.DateRange{}
}

// FilterSalesByRange devolve apenas as vendas dentro do intervalo. Limites
// nulos são tratados como abertos naquele lado.
func FilterSalesByRange(sales []*domain.Sale, r domain.DateRange) []*domain.Sale {
	if r.Start == nil && r.End == nil {
		return sales
	}

	filtered := make([]*domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale == nil {
			continue
		}
		if r.Contains(sale.CreatedAt) {
			filtered = append(filtered, sale)
		}
	}

	return filtered
}

// StartOfDay retorna a meia-noite do dia do instante informado
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay retorna 23:59:59.999 do dia do instante informado
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
