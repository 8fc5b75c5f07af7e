package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-movers/internal/movers"
	"github.com/rxtech-lab/argo-movers/internal/types"
)

// watchBuffer bounds how many unread updates each container may queue.
const watchBuffer = 16

// Refresher triggers a fetch cycle.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Model is the Bubble Tea model for the most active stocks view. It only
// reads the state; publishing is left to the refresher.
type Model struct {
	ctx       context.Context
	refresher Refresher

	stocksCh  <-chan []types.Stock
	errCh     <-chan optional.Option[string]
	loadingCh <-chan bool

	stocks     []types.Stock
	lastError  optional.Option[string]
	isLoading  bool
	refreshing bool
	stockTable table.Model
	width      int
	height     int
}

// NewModel subscribes to all three containers of state until ctx is done.
func NewModel(ctx context.Context, state *movers.State, refresher Refresher) Model {
	return Model{
		ctx:        ctx,
		refresher:  refresher,
		stocksCh:   state.Stocks.Watch(ctx, watchBuffer),
		errCh:      state.LastError.Watch(ctx, watchBuffer),
		loadingCh:  state.IsLoading.Watch(ctx, watchBuffer),
		stocks:     nil,
		lastError:  optional.None[string](),
		isLoading:  false,
		refreshing: false,
		stockTable: NewStocksTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForStocks(m.stocksCh),
		waitForError(m.errCh),
		waitForLoading(m.loadingCh),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.refreshing {
				return m, nil
			}
			m.refreshing = true
			return m, m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.stockTable.SetWidth(msg.Width)
		m.stockTable.SetHeight(max(msg.Height-8, 3))
		return m, nil

	case StocksMsg:
		m.stocks = msg.Stocks
		m.stockTable = UpdateTableRows(m.stockTable, m.stocks)
		return m, waitForStocks(m.stocksCh)

	case LastErrorMsg:
		m.lastError = msg.Err
		return m, waitForError(m.errCh)

	case LoadingMsg:
		m.isLoading = msg.Loading
		return m, waitForLoading(m.loadingCh)

	case RefreshDoneMsg:
		m.refreshing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.stockTable, cmd = m.stockTable.Update(msg)
	return m, cmd
}

func (m Model) refresh() tea.Cmd {
	ctx, refresher := m.ctx, m.refresher

	return func() tea.Msg {
		refresher.Refresh(ctx)
		return RefreshDoneMsg{}
	}
}

// waitForStocks returns a command that delivers the next published batch.
// It returns nil once the channel is closed, which ends the listen loop.
func waitForStocks(ch <-chan []types.Stock) tea.Cmd {
	return func() tea.Msg {
		stocks, ok := <-ch
		if !ok {
			return nil
		}
		return StocksMsg{Stocks: stocks}
	}
}

func waitForError(ch <-chan optional.Option[string]) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return LastErrorMsg{Err: err}
	}
}

func waitForLoading(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		loading, ok := <-ch
		if !ok {
			return nil
		}
		return LoadingMsg{Loading: loading}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Most Active Stocks"))
	s.WriteString("\n\n")

	if m.isLoading {
		s.WriteString(LoadingStyle.Render("Loading..."))
		s.WriteString("\n\n")
	}

	if msg, err := m.lastError.Take(); err == nil {
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %s", msg)))
		s.WriteString("\n\n")
	}

	if len(m.stocks) == 0 {
		if !m.isLoading {
			s.WriteString("No stocks to display\n")
		}
	} else {
		s.WriteString(m.stockTable.View())
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render(fmt.Sprintf("r: refresh | q: quit | %d stocks", len(m.stocks))))

	return s.String()
}
