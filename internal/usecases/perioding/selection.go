package perioding

import (
	"sync"
	"time"

	"github.com/vfg2006/pos-analytics-api/internal/domain"
)

// SelectionState representa o estado da superfície de seleção de intervalo
type SelectionState string

const (
	SelectionClosed  SelectionState = "closed"
	SelectionOpen    SelectionState = "open"
	SelectionClosing SelectionState = "closing"
)

// Atraso padrão antes de fechar a superfície após completar a seleção,
// para a seleção visual registrar antes do fechamento
const defaultCloseDelay = 300 * time.Millisecond

// RangeSelection modela a seleção de intervalo customizado em dois cliques:
// o primeiro clique define o início (fim aberto), o segundo normaliza o fim
// para 23:59:59.999 do dia escolhido e agenda o fechamento da superfície.
// Selecionar uma nova data com um intervalo completo reinicia a seleção.
//
// Máquina de estados: Closed → Open (toggle ou seletor "custom") →
// Closing (com atraso, após a segunda data) → Closed. Clique fora fecha
// imediatamente.
type RangeSelection struct {
	mu         sync.Mutex
	state      SelectionState
	current    domain.DateRange
	onChange   func(domain.DateRange)
	closeDelay time.Duration
	closeTimer *time.Timer
}

// NewRangeSelection cria a seleção de intervalo fechada, sem limites definidos.
// onChange é disparado a cada mudança do intervalo selecionado e pode ser nil.
func NewRangeSelection(onChange func(domain.DateRange)) *RangeSelection {
	return &RangeSelection{
		state:      SelectionClosed,
		onChange:   onChange,
		closeDelay: defaultCloseDelay,
	}
}

// WithCloseDelay ajusta o atraso de fechamento (usado em testes)
func (s *RangeSelection) WithCloseDelay(d time.Duration) *RangeSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeDelay = d
	return s
}

// State retorna o estado atual da superfície
func (s *RangeSelection) State() SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Range retorna o intervalo selecionado até o momento
func (s *RangeSelection) Range() domain.DateRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Toggle alterna entre aberto e fechado por ação explícita do usuário
func (s *RangeSelection) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SelectionOpen {
		s.closeLocked()
		return
	}

	s.stopTimerLocked()
	s.state = SelectionOpen
}

// Open abre a superfície (disparado ao escolher o seletor "custom")
func (s *RangeSelection) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.state = SelectionOpen
}

// ClickOutside fecha imediatamente a superfície enquanto aberta
func (s *RangeSelection) ClickOutside() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SelectionOpen {
		return
	}
	s.closeLocked()
}

// SelectDate processa o clique em uma data. Ignorado com a superfície fechada.
func (s *RangeSelection) SelectDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SelectionOpen {
		return
	}

	// Primeiro clique, ou reinício quando já existe um intervalo completo
	if s.current.Start == nil || s.current.End != nil {
		start := StartOfDay(date)
		s.current = domain.DateRange{Start: &start}
		s.fireLocked()
		return
	}

	// Clique anterior ao início reinicia a seleção a partir da nova data
	if date.Before(*s.current.Start) {
		start := StartOfDay(date)
		s.current = domain.DateRange{Start: &start}
		s.fireLocked()
		return
	}

	end := EndOfDay(date)
	s.current.End = &end
	s.fireLocked()

	// Seleção completa: fechamento com atraso
	s.state = SelectionClosing
	s.closeTimer = time.AfterFunc(s.closeDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == SelectionClosing {
			s.state = SelectionClosed
		}
	})
}

func (s *RangeSelection) fireLocked() {
	if s.onChange != nil {
		s.onChange(s.current)
	}
}

func (s *RangeSelection) closeLocked() {
	s.stopTimerLocked()
	s.state = SelectionClosed
}

func (s *RangeSelection) stopTimerLocked() {
	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
}
