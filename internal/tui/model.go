package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeGii/vomm-sub000/internal/engine"
)

type boardModel struct {
	ctx      context.Context
	svc      *engine.Service
	playerID string

	width  int
	height int

	status   *engine.StatusView
	category engine.Category
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status *engine.StatusView
	err    error
}

type trainedMsg struct {
	res  *engine.TrainingResult
	bulk *engine.BulkTrainingResult
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service, playerID string) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		playerID: playerID,
		category: engine.CategorySports,
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Status(m.ctx, m.playerID)
		return loadedMsg{status: st, err: err}
	}
}

func (m boardModel) trainCmd(actionID string, bulk bool) tea.Cmd {
	return func() tea.Msg {
		if bulk {
			return trainedMsg{bulk: m.svc.PerformTraining5x(m.ctx, m.playerID, m.category, actionID)}
		}
		res, err := m.svc.PerformTraining(m.ctx, m.playerID, m.category, actionID)
		return trainedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, nil

	case trainedMsg:
		switch {
		case msg.err != nil:
			m.lastLog = trainErrorText(msg.err)
		case msg.bulk != nil:
			m.lastLog = fmt.Sprintf("Bulk: %d/%d clicks landed.", len(msg.bulk.Completed), engine.BulkTrainingClicks)
			if msg.bulk.Err != nil {
				m.lastLog += " Stopped: " + trainErrorText(msg.bulk.Err)
			}
		case msg.res != nil:
			m.lastLog = trainedText(msg.res)
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "1":
			m.category = engine.CategorySports
			m.selected = 0
			return m, nil
		case "2":
			m.category = engine.CategoryKitchen
			m.selected = 0
			return m, nil
		case "3":
			m.category = engine.CategoryHandicraft
			m.selected = 0
			return m, nil
		case "tab":
			m.category = nextCategory(m.category)
			m.selected = 0
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.actionLines())-1 {
				m.selected++
			}
			return m, nil
		case "enter", "t", " ":
			lines := m.actionLines()
			if m.selected < 0 || m.selected >= len(lines) {
				return m, nil
			}
			m.lastLog = "Training " + lines[m.selected].id + "…"
			return m, m.trainCmd(lines[m.selected].id, false)
		case "b":
			lines := m.actionLines()
			if m.selected < 0 || m.selected >= len(lines) {
				return m, nil
			}
			m.lastLog = "Bulk training " + lines[m.selected].id + "…"
			return m, m.trainCmd(lines[m.selected].id, true)
		}
	}
	return m, nil
}

type actionLine struct {
	id    string
	label string
	ready bool
	note  string
}

func (m boardModel) actionLines() []actionLine {
	if m.status == nil {
		return nil
	}
	cat := m.svc.Catalog()

	var out []actionLine
	if m.category == engine.CategorySports {
		for _, a := range cat.Activities {
			out = append(out, actionLine{
				id:    a.ID,
				label: fmt.Sprintf("%s (+%d %s)", a.Name, a.XP, a.Skill),
				ready: true,
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
		return out
	}

	views, err := m.svc.Recipes(m.ctx, m.playerID, m.category)
	if err != nil {
		return nil
	}
	for _, rv := range views {
		line := actionLine{
			id:    rv.Recipe.ID,
			label: rv.Recipe.Name,
			ready: rv.LevelMet && rv.HasMaterials,
		}
		switch {
		case !rv.LevelMet:
			line.note = fmt.Sprintf("needs level %d", rv.Recipe.RequiredLevel)
		case !rv.HasMaterials:
			var parts []string
			for _, d := range rv.Deficits {
				parts = append(parts, fmt.Sprintf("%s %d/%d", d.BaseID, d.Have, d.Needed))
			}
			line.note = "missing " + strings.Join(parts, ", ")
		}
		out = append(out, line)
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := "\n" + m.lastLog

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.status == nil {
		return "Training Hall (loading…)"
	}
	p := m.status.Player
	flags := ""
	if p.VIP {
		flags += " VIP"
	}
	if p.Working {
		flags += " working"
	}
	return fmt.Sprintf("Training Hall | Player: %s | Reputation %d |%s", p.ID, p.Reputation, flags)
}

func (m boardModel) renderSidebar() string {
	if m.status == nil {
		return "Stats\n\nLoading…"
	}

	lines := []string{"Quotas"}
	for _, q := range m.status.Quotas {
		marker := "  "
		if q.Category == m.category {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-10s %d/%d (done %d)", marker, q.Category, q.RemainingClicks, q.MaxClicks, q.TotalDone))
	}
	lines = append(lines, "")
	lines = append(lines, "Attributes")
	for _, a := range m.status.Attributes {
		bar := progressBar(a.Experience, a.ExperienceForNextLevel, 10)
		lines = append(lines, fmt.Sprintf("- %-13s L%d %s", a.Skill, a.Level, bar))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- 1/2/3 or tab: category")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- t/enter: train once")
	lines = append(lines, "- b: train 5x")
	lines = append(lines, "- r: refresh, q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, fmt.Sprintf("Actions: %s", m.category))

	lines := m.actionLines()
	if len(lines) == 0 {
		out = append(out, "(none)")
	}
	for i, line := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "·"
		if line.ready {
			mark = "✓"
		}
		row := fmt.Sprintf("%s%s %s %s", cursor, mark, line.id, line.label)
		if line.note != "" {
			row += "  " + line.note
		}
		out = append(out, row)
	}

	out = append(out, "")
	out = append(out, "Inventory")
	if len(m.status.Items) == 0 {
		out = append(out, "(empty)")
	}
	for _, item := range m.status.Items {
		out = append(out, fmt.Sprintf("- %s ×%d (%d lots)", item.Name, item.Total, len(item.Lots)))
	}
	return strings.Join(out, "\n")
}

func trainedText(res *engine.TrainingResult) string {
	var parts []string
	for skill, xp := range res.XPGained {
		s := fmt.Sprintf("+%d %s", xp, skill)
		if res.LevelsUp[skill] > 0 {
			s += fmt.Sprintf(" (L+%d)", res.LevelsUp[skill])
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	text := strings.Join(parts, ", ")
	if res.Craft != nil {
		if res.Craft.GateRolled && !res.Craft.GatePassed {
			text += "; craft failed, materials spent"
		} else {
			for _, line := range res.Craft.Produced {
				text += fmt.Sprintf("; got %d× %s", line.Quantity, line.BaseID)
			}
			if res.Craft.Multiplier > 1 {
				text += fmt.Sprintf(" (yield ×%d)", res.Craft.Multiplier)
			}
		}
	}
	return fmt.Sprintf("%s. Clicks left: %d.", text, res.RemainingClicks)
}

func trainErrorText(err error) string {
	var exhausted engine.QuotaExhaustedError
	if errors.As(err, &exhausted) {
		return "Out of clicks. Wait for the hourly reset or use a booster."
	}
	var missing engine.MissingMaterialsError
	if errors.As(err, &missing) {
		return err.Error()
	}
	return err.Error()
}

func nextCategory(c engine.Category) engine.Category {
	switch c {
	case engine.CategorySports:
		return engine.CategoryKitchen
	case engine.CategoryKitchen:
		return engine.CategoryHandicraft
	default:
		return engine.CategorySports
	}
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
