// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridgeui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/tp/lib/consumer"
)

// FocusRegion says where keyboard input goes.
type FocusRegion int

const (
	// FocusHistory routes keys to history navigation and commands.
	FocusHistory FocusRegion = iota

	// FocusEditor routes keys to the outbound editor.
	FocusEditor

	// FocusFilter routes keys to the history filter input.
	FocusFilter
)

// Layout constants, in terminal rows.
const (
	latestPreviewLines = 6
	editorLines        = 4
	logPanelLines      = 8
	minHistoryRows     = 3

	// minQRSideWidth is the room the latest-content panel needs
	// beside the QR code before the code is shown.
	minQRSideWidth = 30
)

// noticeFadeDelay is how long a status notice stays visible.
const noticeFadeDelay = 3 * time.Second

// pollMsg drives Consumer.Poll.
type pollMsg struct{}

// noticeFadeMsg clears the notice it was scheduled for. A newer
// notice has a higher sequence and survives older fades.
type noticeFadeMsg struct {
	sequence int
}

// Config configures NewModel.
type Config struct {
	// Consumer is polled on every tick. Required.
	Consumer *consumer.Consumer

	// JoinURL is the address phones open. Shown as text and QR code.
	JoinURL string

	// PollInterval is the tick cadence. Zero means
	// consumer.DefaultPollInterval.
	PollInterval time.Duration

	// ShowLogs opens the log panel at startup, e.g. when the listener
	// failed to bind and the log is the only useful content.
	ShowLogs bool

	// Theme and Keys default to DefaultTheme and DefaultKeyMap.
	Theme *Theme
	Keys  *KeyMap
}

// Model is the bubbletea model of the bridge UI.
type Model struct {
	consumer *consumer.Consumer
	joinURL  string
	qr       string
	interval time.Duration
	theme    Theme
	keys     KeyMap

	editor  textarea.Model
	logView viewport.Model

	focus        FocusRegion
	filter       string
	cursor       int
	scrollOffset int
	showLogs     bool

	notice         string
	noticeError    bool
	noticeSequence int

	width  int
	height int
	ready  bool

	slab *util.Slab
}

// NewModel creates the UI model. A QR encoding failure is not fatal:
// the URL is still shown as text.
func NewModel(config Config) Model {
	theme := DefaultTheme
	if config.Theme != nil {
		theme = *config.Theme
	}
	keys := DefaultKeyMap
	if config.Keys != nil {
		keys = *config.Keys
	}
	interval := config.PollInterval
	if interval <= 0 {
		interval = consumer.DefaultPollInterval
	}

	editor := textarea.New()
	editor.Placeholder = "Text for the phone. Ctrl+S publishes it."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetHeight(editorLines)

	model := Model{
		consumer: config.Consumer,
		joinURL:  config.JoinURL,
		interval: interval,
		theme:    theme,
		keys:     keys,
		editor:   editor,
		logView:  viewport.New(0, logPanelLines),
		showLogs: config.ShowLogs,
		slab:     util.MakeSlab(100*1024, 2048),
	}
	if config.JoinURL != "" {
		if qr, err := QR(config.JoinURL); err == nil {
			model.qr = qr
		}
	}
	return model
}

// Init implements tea.Model. Starts the poll tick.
func (model Model) Init() tea.Cmd {
	return model.tick()
}

func (model Model) tick() tea.Cmd {
	return tea.Tick(model.interval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// Focus returns the current focus region.
func (model Model) Focus() FocusRegion { return model.focus }

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch model.focus {
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusEditor:
			return model.handleEditorKeys(message)
		}
		return model.handleHistoryKeys(message)

	case pollMsg:
		return model.handlePoll()

	case noticeFadeMsg:
		if message.sequence == model.noticeSequence {
			model.notice = ""
			model.noticeError = false
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updateSizes()
	}
	return model, nil
}

func (model Model) handlePoll() (tea.Model, tea.Cmd) {
	selected, hasSelection := model.selectedSerial()
	batch := model.consumer.Poll()
	var cmd tea.Cmd
	if count := len(batch.Inbound); count > 0 {
		latest := batch.Inbound[count-1]
		text := fmt.Sprintf("Received %d chars", len([]rune(latest)))
		if count > 1 {
			text = fmt.Sprintf("Received %d messages", count)
		}
		cmd = model.setNotice(text, false)
		model.restoreSelection(selected, hasSelection)
	}
	if len(batch.Logs) > 0 {
		model.refreshLogs()
	}
	return model, tea.Batch(model.tick(), cmd)
}

func (model Model) handleHistoryKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		model.focus = FocusEditor
		cmd := model.editor.Focus()
		return model, cmd

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
		model.ensureCursorVisible()

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.matches())-1 {
			model.cursor++
		}
		model.ensureCursorVisible()

	case key.Matches(message, model.keys.CopySelected):
		matches := model.matches()
		if model.cursor < len(matches) {
			cmd := model.copyText(matches[model.cursor].Text)
			return model, cmd
		}

	case key.Matches(message, model.keys.CopyLatest):
		latest, ok := model.consumer.Latest()
		if !ok {
			cmd := model.setNotice("Nothing received yet", true)
			return model, cmd
		}
		cmd := model.copyText(latest)
		return model, cmd

	case key.Matches(message, model.keys.FilterActivate):
		model.focus = FocusFilter
		model.cursor = 0
		model.scrollOffset = 0

	case key.Matches(message, model.keys.FilterClear):
		model.filter = ""
		model.clampCursor()

	case key.Matches(message, model.keys.ToggleLogs):
		model.showLogs = !model.showLogs
		model.updateSizes()
		model.refreshLogs()

	case key.Matches(message, model.keys.Push):
		cmd := model.push()
		return model, cmd

	case key.Matches(message, model.keys.Paste):
		return model.paste()
	}
	return model, nil
}

func (model Model) handleEditorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Push):
		cmd := model.push()
		return model, cmd

	case key.Matches(message, model.keys.Paste):
		return model.paste()

	case key.Matches(message, model.keys.FocusToggle),
		key.Matches(message, model.keys.Blur):
		model.editor.Blur()
		model.focus = FocusHistory
		return model, nil
	}

	var cmd tea.Cmd
	model.editor, cmd = model.editor.Update(message)
	return model, cmd
}

// handleFilterKeys follows the list filter convention: Esc clears the
// query or leaves filter mode when already empty, Enter confirms.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.FilterClear):
		if model.filter != "" {
			model.filter = ""
		} else {
			model.focus = FocusHistory
		}

	case message.Type == tea.KeyEnter:
		model.focus = FocusHistory

	case message.Type == tea.KeyBackspace:
		if runes := []rune(model.filter); len(runes) > 0 {
			model.filter = string(runes[:len(runes)-1])
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		if message.Type == tea.KeySpace {
			model.filter += " "
		} else {
			model.filter += string(message.Runes)
		}

	default:
		return model, nil
	}
	model.cursor = 0
	model.scrollOffset = 0
	return model, nil
}

func (model *Model) push() tea.Cmd {
	text := model.editor.Value()
	if text == "" {
		return model.setNotice("Editor is empty", true)
	}
	model.consumer.PushOutbound(text)
	return model.setNotice(fmt.Sprintf("Published %d chars for the phone", len([]rune(text))), false)
}

func (model Model) paste() (tea.Model, tea.Cmd) {
	text, err := model.consumer.PasteForOutbound()
	if err != nil {
		cmd := model.setNotice("Paste failed: "+err.Error(), true)
		return model, cmd
	}
	model.editor.SetValue(text)
	model.focus = FocusEditor
	cmd := tea.Batch(model.editor.Focus(), model.setNotice("Pasted clipboard into editor", false))
	return model, cmd
}

func (model *Model) copyText(text string) tea.Cmd {
	if err := model.consumer.CopyToClipboard(text); err != nil {
		return model.setNotice("Copy failed: "+err.Error(), true)
	}
	return model.setNotice(fmt.Sprintf("Copied %d chars", len([]rune(text))), false)
}

func (model *Model) setNotice(text string, isError bool) tea.Cmd {
	model.noticeSequence++
	model.notice = text
	model.noticeError = isError
	sequence := model.noticeSequence
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{sequence: sequence}
	})
}

// matches returns the history entries visible under the filter.
func (model Model) matches() []historyMatch {
	return filterHistory(model.consumer.History(), model.filter, model.slab)
}

// selectedSerial identifies the highlighted entry by its arrival
// number, which stays fixed while newer messages shift history indexes.
func (model Model) selectedSerial() (uint64, bool) {
	matches := model.matches()
	if model.cursor >= len(matches) {
		return 0, false
	}
	return model.consumer.Received() - 1 - uint64(matches[model.cursor].Index), true
}

// restoreSelection moves the cursor back onto the entry with serial.
// An evicted or absent selection falls back to the newest entry.
func (model *Model) restoreSelection(serial uint64, ok bool) {
	if ok {
		newest := model.consumer.Received() - 1
		for position, match := range model.matches() {
			if newest-uint64(match.Index) == serial {
				model.cursor = position
				model.ensureCursorVisible()
				return
			}
		}
	}
	model.cursor = 0
	model.scrollOffset = 0
}

func (model *Model) clampCursor() {
	count := len(model.matches())
	if model.cursor >= count {
		model.cursor = count - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.ensureCursorVisible()
}

func (model *Model) ensureCursorVisible() {
	rows := model.historyRows()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+rows {
		model.scrollOffset = model.cursor - rows + 1
	}
}

func (model *Model) updateSizes() {
	inner := model.innerWidth()
	model.editor.SetWidth(inner)
	model.logView.Width = inner
	model.logView.Height = logPanelLines
	model.ensureCursorVisible()
}

// refreshLogs loads the newest log lines into the log panel.
func (model *Model) refreshLogs() {
	if !model.showLogs {
		return
	}
	lines := model.consumer.Logs()
	if len(lines) > logPanelLines*4 {
		lines = lines[len(lines)-logPanelLines*4:]
	}
	truncated := make([]string, len(lines))
	for index, line := range lines {
		truncated[index] = ansi.Truncate(line, model.innerWidth(), "…")
	}
	model.logView.SetContent(strings.Join(truncated, "\n"))
	model.logView.GotoBottom()
}

func (model Model) innerWidth() int {
	// Rounded border plus one column of padding on each side.
	return max(model.width-4, 10)
}

func (model Model) showQR() bool {
	if model.qr == "" {
		return false
	}
	qrWidth := lipgloss.Width(model.qr)
	qrHeight := lipgloss.Height(model.qr)
	return model.width >= qrWidth+minQRSideWidth && model.height >= qrHeight+editorLines+minHistoryRows+12
}

// historyRows is the number of history rows that fit on screen.
func (model Model) historyRows() int {
	if !model.ready {
		return minHistoryRows
	}
	used := 2 // header and help line
	top := latestPreviewLines + 1
	if model.showQR() {
		top = max(top, lipgloss.Height(model.qr))
	}
	used += top + 2
	used += editorLines + 3
	used += 3 // history title and border
	if model.showLogs {
		used += logPanelLines + 3
	}
	return max(model.height-used, minHistoryRows)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Starting..."
	}

	sections := []string{model.renderHeader(), model.renderTop(), model.renderEditor(), model.renderHistory()}
	if model.showLogs {
		sections = append(sections, model.renderLogs())
	}
	if model.focus == FocusFilter || model.filter != "" {
		sections = append(sections, model.renderFilter())
	} else {
		sections = append(sections, model.renderHelp())
	}
	return strings.Join(sections, "\n")
}

func (model Model) box(title string, body string, focused bool, width int) string {
	borderColor := model.theme.BorderColor
	titleColor := model.theme.FaintText
	if focused {
		borderColor = model.theme.FocusBorderColor
		titleColor = model.theme.AccentForeground
	}
	titleLine := lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2).
		Render(titleLine + "\n" + body)
}

func (model Model) renderHeader() string {
	title := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render(" tp ")
	url := lipgloss.NewStyle().Foreground(model.theme.AccentForeground).Underline(true).Render(model.joinURL)
	status := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(
		fmt.Sprintf("  received %d  outbound v%d", model.consumer.Received(), model.consumer.OutboundVersion()))
	return ansi.Truncate(title+" "+url+status, model.width, "…")
}

func (model Model) renderTop() string {
	latest, ok := model.consumer.Latest()
	var body string
	if !ok {
		body = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Open the address above on your phone and send some text.")
	} else {
		body = model.previewLines(latest, latestPreviewLines)
	}

	if !model.showQR() {
		return model.box("Latest received", body, false, model.width)
	}
	qrWidth := lipgloss.Width(model.qr)
	latestBox := model.box("Latest received", body, false, model.width-qrWidth-1)
	return lipgloss.JoinHorizontal(lipgloss.Top, latestBox, " ", model.qr)
}

// previewLines renders up to limit lines of text, each cut to the
// inner width.
func (model Model) previewLines(text string, limit int) string {
	width := model.innerWidth()
	if model.showQR() {
		width -= lipgloss.Width(model.qr) + 1
	}
	lines := strings.Split(text, "\n")
	extra := 0
	if len(lines) > limit {
		extra = len(lines) - limit + 1
		lines = lines[:limit-1]
	}
	for index, line := range lines {
		lines[index] = ansi.Truncate(strings.ReplaceAll(line, "\t", "    "), width, "…")
	}
	if extra > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(fmt.Sprintf("(%d more lines)", extra)))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderEditor() string {
	return model.box("Send to phone", model.editor.View(), model.focus == FocusEditor, model.width)
}

func (model Model) renderHistory() string {
	matches := model.matches()
	rows := model.historyRows()
	width := model.innerWidth()

	var lines []string
	if len(matches) == 0 {
		empty := "No messages yet"
		if model.filter != "" {
			empty = "No matches"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(empty))
	}
	end := min(model.scrollOffset+rows, len(matches))
	for index := model.scrollOffset; index < end; index++ {
		lines = append(lines, model.renderHistoryRow(matches[index], index == model.cursor, width))
	}

	title := fmt.Sprintf("History (%d)", len(model.consumer.History()))
	if model.filter != "" {
		title = fmt.Sprintf("History (%d of %d)", len(matches), len(model.consumer.History()))
	}
	return model.box(title, strings.Join(lines, "\n"), model.focus != FocusEditor, model.width)
}

// renderHistoryRow flattens an entry to one line, highlights filter
// matches and cuts the result to width.
func (model Model) renderHistoryRow(match historyMatch, selected bool, width int) string {
	runes := []rune(match.Text)
	for index, r := range runes {
		switch r {
		case '\n':
			runes[index] = '⏎'
		case '\t', '\r':
			runes[index] = ' '
		}
	}

	base := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if selected {
		base = base.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
	}
	highlight := base.Foreground(model.theme.MatchForeground).Bold(true)

	var builder strings.Builder
	positions := match.Positions
	for index, r := range runes {
		if len(positions) > 0 && positions[0] == index {
			builder.WriteString(highlight.Render(string(r)))
			positions = positions[1:]
			continue
		}
		builder.WriteString(base.Render(string(r)))
	}

	marker := "  "
	if selected {
		marker = base.Render("▸ ")
	}
	return ansi.Truncate(marker+builder.String(), width, "…")
}

func (model Model) renderLogs() string {
	return model.box("Log", model.logView.View(), false, model.width)
}

func (model Model) renderFilter() string {
	style := lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(model.width)
	if model.focus == FocusFilter {
		cursor := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render("▎")
		return style.Render(" / " + model.filter + cursor)
	}
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(model.width).
		Render(" filter: " + model.filter + "  (Esc clears)")
}

func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	focusIndicator := "HISTORY"
	bindings := []key.Binding{
		model.keys.FocusToggle, model.keys.CopySelected, model.keys.CopyLatest,
		model.keys.FilterActivate, model.keys.ToggleLogs, model.keys.Push, model.keys.Quit,
	}
	if model.focus == FocusEditor {
		focusIndicator = "EDIT"
		bindings = []key.Binding{model.keys.Push, model.keys.Paste, model.keys.Blur}
	}

	parts := []string{style.Render(fmt.Sprintf(" [%s]", focusIndicator))}
	// The notice goes first so truncation on narrow terminals cuts
	// key hints rather than feedback.
	if model.notice != "" {
		color := model.theme.NoticeForeground
		if model.noticeError {
			color = model.theme.ErrorForeground
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Bold(true).Render(model.notice))
	}
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, style.Render(help.Key+" "+help.Desc))
	}
	return ansi.Truncate(strings.Join(parts, "  "), model.width, "…")
}
