package main

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	lipglosstable "github.com/charmbracelet/lipgloss/table"

	"github.com/rxtech-lab/argo-movers/internal/types"
)

var stockHeaders = []string{"Symbol", "Name", "Price", "Change", "Change %"}

// NewStocksTable creates a new table for displaying the most active stocks.
func NewStocksTable() table.Model {
	columns := []table.Column{
		{Title: stockHeaders[0], Width: 8},
		{Title: stockHeaders[1], Width: 32},
		{Title: stockHeaders[2], Width: 12},
		{Title: stockHeaders[3], Width: 12},
		{Title: stockHeaders[4], Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateTableRows replaces the table rows with stocks in published order.
func UpdateTableRows(t table.Model, stocks []types.Stock) table.Model {
	rows := make([]table.Row, 0, len(stocks))
	for _, stock := range stocks {
		rows = append(rows, table.Row(stockRow(stock)))
	}

	t.SetRows(rows)

	return t
}

// RenderStocks renders stocks as a static bordered table.
func RenderStocks(stocks []types.Stock) string {
	rows := make([][]string, 0, len(stocks))
	for _, stock := range stocks {
		rows = append(rows, stockRow(stock))
	}

	return lipglosstable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(stockHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lipglosstable.HeaderRow {
				return cellStyle.Bold(true)
			}

			if row < 0 || row >= len(stocks) {
				return cellStyle
			}

			if col == 3 || col == 4 {
				switch {
				case stocks[row].IsGainer():
					return cellStyle.Inherit(gainerStyle)
				case stocks[row].IsLoser():
					return cellStyle.Inherit(loserStyle)
				}
			}

			return cellStyle
		}).
		String()
}

func stockRow(stock types.Stock) []string {
	return []string{
		stock.Symbol,
		stock.Name,
		stock.Price.StringFixed(2),
		FormatChange(stock),
		FormatPercentage(stock),
	}
}
