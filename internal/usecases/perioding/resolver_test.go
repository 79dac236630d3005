package perioding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

// Quarta-feira, 12 de junho de 2024
var resolveReference = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		selector domain.PeriodSelector
		validate func(t *testing.T, r domain.DateRange)
	}{
		{
			name:     "Seletor all não impõe limites",
			selector: domain.PeriodAll,
			validate: func(t *testing.T, r domain.DateRange) {
				assert.Nil(t, r.Start)
				assert.Nil(t, r.End)
			},
		},
		{
			name:     "Seletor custom deixa os limites para o chamador",
			selector: domain.PeriodCustom,
			validate: func(t *testing.T, r domain.DateRange) {
				assert.Nil(t, r.Start)
				assert.Nil(t, r.End)
			},
		},
		{
			name:     "Seletor daily cobre o dia corrente inteiro",
			selector: domain.PeriodDaily,
			validate: func(t *testing.T, r domain.DateRange) {
				assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), *r.Start)
				assert.Equal(t, time.Date(2024, 6, 12, 23, 59, 59, int(999*time.Millisecond), time.UTC), *r.End)
			},
		},
		{
			name:     "Seletor weekly começa no domingo mais recente",
			selector: domain.PeriodWeekly,
			validate: func(t *testing.T, r domain.DateRange) {
				// Quarta 12/06 cai na semana de domingo 09/06 a sábado 15/06
				assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), *r.Start)
				assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC), *r.End)
			},
		},
		{
			name:     "Seletor monthly cobre do primeiro ao último dia do mês",
			selector: domain.PeriodMonthly,
			validate: func(t *testing.T, r domain.DateRange) {
				assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *r.Start)
				assert.Equal(t, time.Date(2024, 6, 30, 23, 59, 59, int(999*time.Millisecond), time.UTC), *r.End)
			},
		},
		{
			name:     "Seletor yearly cobre o ano civil inteiro",
			selector: domain.PeriodYearly,
			validate: func(t *testing.T, r domain.DateRange) {
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *r.Start)
				assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), *r.End)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Resolve(tt.selector, resolveReference))
		})
	}
}

func TestResolve_SemanaQueCruzaOMes(t *testing.T) {
	// Segunda-feira, 1º de julho de 2024: o domingo anterior cai em junho
	monday := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	r := Resolve(domain.PeriodWeekly, monday)

	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Date(2024, 7, 6, 23, 59, 59, int(999*time.Millisecond), time.UTC), *r.End)
}

func TestResolve_MesComFevereiroBissexto(t *testing.T) {
	february := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

	r := Resolve(domain.PeriodMonthly, february)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), *r.End)
}

func TestFilterSalesByRange(t *testing.T) {
	inside := &domain.Sale{ID: "S1", CreatedAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	before := &domain.Sale{ID: "S2", CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	after := &domain.Sale{ID: "S3", CreatedAt: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)}
	sales := []*domain.Sale{inside, before, after, nil}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	t.Run("Intervalo fechado mantém apenas as vendas dentro dele", func(t *testing.T) {
		filtered := FilterSalesByRange(sales, domain.DateRange{Start: &start, End: &end})
		assert.Len(t, filtered, 1)
		assert.Equal(t, "S1", filtered[0].ID)
	})

	t.Run("Limite inicial aberto aceita vendas antigas", func(t *testing.T) {
		filtered := FilterSalesByRange(sales, domain.DateRange{End: &end})
		assert.Len(t, filtered, 2)
		assert.Equal(t, "S1", filtered[0].ID)
		assert.Equal(t, "S2", filtered[1].ID)
	})

	t.Run("Sem limites devolve a lista original", func(t *testing.T) {
		filtered := FilterSalesByRange(sales, domain.DateRange{})
		assert.Equal(t, sales, filtered)
	})
}

func TestStartOfDayEndOfDay(t *testing.T) {
	moment := time.Date(2024, 6, 12, 15, 30, 45, 123456789, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), StartOfDay(moment))
	assert.Equal(t, time.Date(2024, 6, 12, 23, 59, 59, int(999*time.Millisecond), time.UTC), EndOfDay(moment))
}
