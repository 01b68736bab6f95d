package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lausiv7/candysoda-sub007/internal/config"
	"github.com/lausiv7/candysoda-sub007/internal/core"
)

// Match3Mode represents the selected game mode.
type Match3Mode int

const (
	Match3ModeClassic Match3Mode = iota
	Match3ModeEndless
)

// Match3Selection holds the user's selection from the candy menu.
type Match3Selection struct {
	Mode   Match3Mode
	Layout string // Empty means the layout named in the config
}

// Match3ModeModel lets users choose game mode and board layout.
type Match3ModeModel struct {
	cursor         int
	layoutCursor   int
	inLayoutSelect bool
	width          int
	height         int
	keyMapper      *KeyMapper
	cfg            config.Match3Config
	layoutNames    []string
	selection      Match3Selection
	choosing       bool
	quitting       bool
	back           bool
	theme          CandyTheme
}

// NewMatch3ModeModel creates a new mode selection model.
func NewMatch3ModeModel(width, height int) Match3ModeModel {
	cfg, err := config.LoadMatch3("")
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}

	return Match3ModeModel{
		cursor:      0,
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		cfg:         cfg,
		layoutNames: cfg.LayoutNames(),
		choosing:    true,
		theme:       GetCandyTheme(),
	}
}

// Init initializes the model.
func (m Match3ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Match3ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Match3ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLayoutSelect {
		return m.handleLayoutSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m Match3ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 2 { // 3 options: Classic, Endless, Choose Layout
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0: // Classic
			m.choosing = false
			m.selection = Match3Selection{Mode: Match3ModeClassic}
			return m, tea.Quit
		case 1: // Endless
			m.choosing = false
			m.selection = Match3Selection{Mode: Match3ModeEndless}
			return m, tea.Quit
		case 2: // Choose Layout
			m.inLayoutSelect = true
			m.layoutCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Match3ModeModel) handleLayoutSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.layoutCursor > 0 {
			m.layoutCursor--
		}
	case MenuActionDown:
		if m.layoutCursor < len(m.layoutNames)-1 {
			m.layoutCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = Match3Selection{
			Mode:   Match3ModeClassic,
			Layout: m.layoutNames[m.layoutCursor],
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLayoutSelect = false
	}

	return m, nil
}

// View renders the mode/layout selection.
func (m Match3ModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLayoutSelect {
		return m.viewLayoutSelect()
	}
	return m.viewModeSelect()
}

func (m Match3ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("C A N D Y  S O D A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.candyStrip(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select game mode:"), m.width))
	b.WriteString("\n\n")

	classic := "Classic"
	if m.cfg.Rules.MoveLimit > 0 {
		classic = fmt.Sprintf("Classic (%d moves)", m.cfg.Rules.MoveLimit)
	}

	modes := []string{
		classic,
		"Endless Mode",
		"Choose Layout...",
	}

	for i, mode := range modes {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+mode), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))

	return b.String()
}

func (m Match3ModeModel) viewLayoutSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("SELECT LAYOUT"), m.width))
	b.WriteString("\n\n")

	for i, name := range m.layoutNames {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.layoutCursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+name), m.width))
		b.WriteString("\n")
	}

	// Preview of the highlighted layout
	b.WriteString("\n")
	for _, row := range m.layoutPreviewRows(m.layoutNames[m.layoutCursor]) {
		b.WriteString(centerText(row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))

	return b.String()
}

// candyStrip renders a decorative row of candy glyphs in their colors.
func (m Match3ModeModel) candyStrip() string {
	pieces := []string{
		m.theme.RedCandy.Render("●"),
		m.theme.OrangeCandy.Render("◆"),
		m.theme.YellowCandy.Render("▲"),
		m.theme.GreenCandy.Render("■"),
		m.theme.BlueCandy.Render("◉"),
		m.theme.PurpleCandy.Render("♦"),
	}
	return strings.Join(pieces, " ")
}

// layoutPreviewRows renders an obstacle mask as themed preview lines.
func (m Match3ModeModel) layoutPreviewRows(name string) []string {
	mask := m.cfg.Layouts[name]
	rows := make([]string, 0, m.cfg.Board.Height)

	for y := 0; y < m.cfg.Board.Height; y++ {
		var row strings.Builder
		for x := 0; x < m.cfg.Board.Width; x++ {
			cell := byte('.')
			if y < len(mask) && x < len(mask[y]) {
				cell = mask[y][x]
			}
			if cell == '#' {
				row.WriteString(m.theme.PreviewObstacle.Render("▒▒"))
			} else {
				row.WriteString(m.theme.PreviewOpen.Render("· "))
			}
		}
		rows = append(rows, row.String())
	}

	return rows
}

// Selected returns the selection, or nil if still choosing.
func (m Match3ModeModel) Selected() *Match3Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m Match3ModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m Match3ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m Match3ModeModel) WantsBack() bool {
	return m.back
}

// RunMatch3ModeSelector runs the mode selection and returns the selection.
func RunMatch3ModeSelector(cfg core.RuntimeConfig) (*Match3Selection, core.RuntimeConfig, error) {
	model := NewMatch3ModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(Match3ModeModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
