package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/termtris/game"
)

// Each cell renders as two terminal columns so the board looks square.
const cellGlyph = "██"

var (
	kindColors = [game.NumPieceKinds]lipgloss.Color{
		game.PieceI: lipgloss.Color("51"),  // cyan
		game.PieceJ: lipgloss.Color("33"),  // blue
		game.PieceL: lipgloss.Color("208"), // orange
		game.PieceO: lipgloss.Color("226"), // yellow
		game.PieceS: lipgloss.Color("46"),  // green
		game.PieceT: lipgloss.Color("201"), // magenta
		game.PieceZ: lipgloss.Color("196"), // red
	}

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	panelStyle = lipgloss.NewStyle().
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func cellText(kind game.PieceKind) string {
	return lipgloss.NewStyle().Foreground(kindColors[kind]).Render(cellGlyph)
}

func (m Model) View() string {
	s := m.state

	board := boardStyle.Render(renderBoard(s))
	panel := panelStyle.Render(renderPanel(s, m.demo, m.sfx.Muted()))
	out := lipgloss.JoinHorizontal(lipgloss.Top, board, panel)

	if banner := bannerFor(s); banner != "" {
		out += "\n" + bannerStyle.Render(banner)
	}
	out += "\n" + helpStyle.Render("←/→ move  ↑ rotate  ↓ soft drop  space hard drop  p pause  m mute  q quit")
	return out
}

// renderBoard draws the stack with the active piece overlaid.
func renderBoard(s *game.GameState) string {
	mask := s.PieceMask()
	var sb strings.Builder
	for r := 0; r < game.BoardH; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < game.BoardW; c++ {
			cell := s.Board[r][c]
			if cell == game.Empty && !s.Over {
				fr, fc := r-s.Y, c-s.X
				if fr >= 0 && fr < 4 && fc >= 0 && fc < 4 && mask[fr][fc] {
					cell = game.Cell(s.Piece)
				}
			}
			if cell == game.Empty {
				sb.WriteString("  ")
			} else {
				sb.WriteString(cellText(game.PieceKind(cell)))
			}
		}
	}
	return sb.String()
}

// renderPanel draws the score column with the lookahead preview.
func renderPanel(s *game.GameState, demo, muted bool) string {
	var sb strings.Builder

	line := func(label string, value any) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-7s", label)))
		sb.WriteString(valueStyle.Render(fmt.Sprint(value)))
		sb.WriteByte('\n')
	}
	line("score", s.Score)
	line("lines", s.Lines)
	line("level", s.Level)
	line("pieces", s.Pieces)

	sb.WriteByte('\n')
	sb.WriteString(labelStyle.Render("next"))
	sb.WriteByte('\n')
	sb.WriteString(renderPreview(s.Next))

	var tags []string
	if demo {
		tags = append(tags, "demo")
	}
	if muted {
		tags = append(tags, "muted")
	}
	if len(tags) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(labelStyle.Render(strings.Join(tags, "  ")))
	}
	return sb.String()
}

// renderPreview draws the lookahead piece in its spawn orientation, cropped
// to the rows it actually occupies.
func renderPreview(kind game.PieceKind) string {
	mask := game.Rotated(kind, 0)
	var rows []string
	for r := 0; r < 4; r++ {
		occupied := false
		var sb strings.Builder
		for c := 0; c < 4; c++ {
			if mask[r][c] {
				occupied = true
				sb.WriteString(cellText(kind))
			} else {
				sb.WriteString("  ")
			}
		}
		if occupied {
			rows = append(rows, sb.String())
		}
	}
	return strings.Join(rows, "\n")
}

func bannerFor(s *game.GameState) string {
	switch {
	case s.Over:
		return fmt.Sprintf(" GAME OVER  score %d ", s.Score)
	case s.Paused:
		return " PAUSED "
	default:
		return ""
	}
}
