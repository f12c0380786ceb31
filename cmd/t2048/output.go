package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/leaderboard"
	"github.com/vovakirdan/t2048/internal/storage"
)

const (
	cellWidth      = 6
	emptyCellColor = "#cdc1b4"
	frameColor     = "#bbada0"
	darkText       = "#776e65"
	lightText      = "#f9f6f2"
	bigTileColor   = "#3c3a32"
)

var tileColors = map[int]string{
	2:    "#eee4da",
	4:    "#ede0c8",
	8:    "#f2b179",
	16:   "#f59563",
	32:   "#f67c5f",
	64:   "#f65e3b",
	128:  "#edcf72",
	256:  "#edcc61",
	512:  "#edc850",
	1024: "#edc53f",
	2048: "#edc22e",
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	rowStyle    = lipgloss.NewStyle().Padding(0, 1)
	goodStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// tileStyle returns the cell style for a tile value.
func tileStyle(value int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Bold(true)

	if value == 0 {
		return style.Background(lipgloss.Color(emptyCellColor))
	}

	bg, ok := tileColors[value]
	if !ok {
		bg = bigTileColor
	}
	fg := lightText
	if value <= 4 {
		fg = darkText
	}
	return style.Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg))
}

// renderBoard draws the board as a bordered grid with tile colors.
func renderBoard(board t2048.Board) string {
	rows := make([][]string, t2048.BoardSize)
	for y := 0; y < t2048.BoardSize; y++ {
		rows[y] = make([]string, t2048.BoardSize)
		for x := 0; x < t2048.BoardSize; x++ {
			if v := board[y][x]; v != 0 {
				rows[y][x] = strconv.Itoa(v)
			}
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(frameColor))).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= t2048.BoardSize || col >= t2048.BoardSize {
				return lipgloss.NewStyle()
			}
			return tileStyle(board[row][col])
		}).
		Rows(rows...)

	return t.String()
}

// renderSummary formats the score line under a board.
func renderSummary(s t2048.Snapshot) string {
	status := goodStyle.Render(string(s.Status))
	if s.Status == t2048.StatusTerminal {
		status = badStyle.Render("game over")
	}

	parts := []string{
		labelStyle.Render("Score:") + " " + titleStyle.Render(strconv.Itoa(s.Score)),
		labelStyle.Render("Max:") + " " + strconv.Itoa(s.MaxTile),
		labelStyle.Render("Moves:") + " " + strconv.Itoa(s.Moves),
		labelStyle.Render("Undos:") + " " + strconv.Itoa(s.Undos),
		labelStyle.Render("Status:") + " " + status,
	}
	if s.Won {
		parts = append(parts, goodStyle.Render("won"))
	}
	return strings.Join(parts, "  ")
}

func newListTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return rowStyle
		}).
		Headers(headers...)
}

// renderLeaderboard formats leaderboard records as a ranked table.
func renderLeaderboard(records []leaderboard.Record) string {
	t := newListTable("Rank", "Score", "Label")
	for i, r := range records {
		t.Row(strconv.Itoa(i+1), strconv.Itoa(r.Score), r.Label)
	}
	return t.String()
}

// renderGames formats stored games as a table.
func renderGames(games []storage.GameRecord) string {
	t := newListTable("Rank", "Score", "Max", "Moves", "Undos", "Won", "Date", "ID")
	for i, g := range games {
		won := ""
		if g.Won {
			won = "yes"
		}
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(g.Score),
			strconv.Itoa(g.MaxTile),
			strconv.Itoa(g.Moves),
			strconv.Itoa(g.Undos),
			won,
			g.CreatedAt.Format("2006-01-02 15:04"),
			g.ID,
		)
	}
	return t.String()
}

// renderStats formats aggregated game statistics.
func renderStats(st *storage.Stats) string {
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Format("2006-01-02 15:04")
	}

	lines := []string{
		fmt.Sprintf("%s %d", labelStyle.Render("Games:"), st.GamesCount),
		fmt.Sprintf("%s %d", labelStyle.Render("Won:"), st.WonCount),
		fmt.Sprintf("%s %d", labelStyle.Render("Best score:"), st.HighScore),
		fmt.Sprintf("%s %d", labelStyle.Render("Best tile:"), st.BestTile),
		fmt.Sprintf("%s %.1f", labelStyle.Render("Average:"), st.AvgScore),
		fmt.Sprintf("%s %d", labelStyle.Render("Total moves:"), st.TotalMoves),
		fmt.Sprintf("%s %s", labelStyle.Render("Last played:"), last),
	}
	return strings.Join(lines, "\n")
}
