package perioding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

func TestRangeSelection_DoisCliquesCompletamOIntervalo(t *testing.T) {
	var changes []domain.DateRange
	selection := NewRangeSelection(func(r domain.DateRange) {
		changes = append(changes, r)
	}).WithCloseDelay(10 * time.Millisecond)

	selection.Open()
	assert.Equal(t, SelectionOpen, selection.State())

	first := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	selection.SelectDate(first)

	// Primeiro clique define o início normalizado e deixa o fim aberto
	assert.Len(t, changes, 1)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), *changes[0].Start)
	assert.Nil(t, changes[0].End)
	assert.Equal(t, SelectionOpen, selection.State())

	second := time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)
	selection.SelectDate(second)

	// Segundo clique normaliza o fim para o final do dia e agenda o fechamento
	assert.Len(t, changes, 2)
	assert.Equal(t, time.Date(2024, 6, 20, 23, 59, 59, int(999*time.Millisecond), time.UTC), *changes[1].End)
	assert.Equal(t, SelectionClosing, selection.State())

	assert.Eventually(t, func() bool {
		return selection.State() == SelectionClosed
	}, time.Second, 5*time.Millisecond)

	// O intervalo sobrevive ao fechamento da superfície
	assert.NotNil(t, selection.Range().Start)
	assert.NotNil(t, selection.Range().End)
}

func TestRangeSelection_CliqueAnteriorAoInicioReinicia(t *testing.T) {
	selection := NewRangeSelection(nil)
	selection.Open()

	selection.SelectDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	selection.SelectDate(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

	// A data anterior vira o novo início e o fim continua aberto
	current := selection.Range()
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), *current.Start)
	assert.Nil(t, current.End)
	assert.Equal(t, SelectionOpen, selection.State())
}

func TestRangeSelection_NovaSelecaoAposIntervaloCompleto(t *testing.T) {
	selection := NewRangeSelection(nil).WithCloseDelay(time.Minute)
	selection.Open()

	selection.SelectDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	selection.SelectDate(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, SelectionClosing, selection.State())

	// Reabrir e clicar de novo descarta o intervalo anterior
	selection.Open()
	selection.SelectDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	current := selection.Range()
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), *current.Start)
	assert.Nil(t, current.End)
}

func TestRangeSelection_CliqueForaFechaImediatamente(t *testing.T) {
	selection := NewRangeSelection(nil)

	// Fechada, o clique fora não tem efeito
	selection.ClickOutside()
	assert.Equal(t, SelectionClosed, selection.State())

	selection.Open()
	selection.ClickOutside()
	assert.Equal(t, SelectionClosed, selection.State())
}

func TestRangeSelection_CliqueComSuperficieFechadaIgnorado(t *testing.T) {
	fired := false
	selection := NewRangeSelection(func(domain.DateRange) {
		fired = true
	})

	selection.SelectDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	assert.False(t, fired)
	assert.Nil(t, selection.Range().Start)
}

func TestRangeSelection_Toggle(t *testing.T) {
	selection := NewRangeSelection(nil)

	selection.Toggle()
	assert.Equal(t, SelectionOpen, selection.State())

	selection.Toggle()
	assert.Equal(t, SelectionClosed, selection.State())
}
