package domain

import "time"

// PeriodSelector é o filtro simbólico de período escolhido pelo usuário no dashboard
type PeriodSelector string

const (
	PeriodAll     PeriodSelector = "all"
	PeriodDaily   PeriodSelector = "daily"
	PeriodWeekly  PeriodSelector = "weekly"
	PeriodMonthly PeriodSelector = "monthly"
	PeriodYearly  PeriodSelector = "yearly"
	PeriodCustom  PeriodSelector = "custom"
)

// IsValid verifica se o seletor de período é conhecido
func (p PeriodSelector) IsValid() bool {
	switch p {
	case PeriodAll, PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodCustom:
		return true
	}
	return false
}

// DateRange representa um intervalo concreto de datas. Um limite nulo significa
// "sem limite" naquele lado. Invariante: quando ambos são não nulos, Start <= End.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Contains verifica se um instante está dentro do intervalo, tratando limites
// nulos como abertos
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}
