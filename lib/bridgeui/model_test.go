// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridgeui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tp/lib/clipboard"
	"github.com/bureau-foundation/tp/lib/consumer"
	"github.com/bureau-foundation/tp/lib/queue"
	"github.com/bureau-foundation/tp/lib/slot"
	"github.com/bureau-foundation/tp/lib/testutil"
)

type fixture struct {
	model     Model
	inbound   *queue.Sender[string]
	logs      *queue.Sender[string]
	outbound  *slot.Slot
	clipboard *clipboard.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	inboundSender, inboundReceiver := queue.New[string]()
	logSender, logReceiver := queue.New[string]()
	logger, _ := testutil.NewLogCapture()
	f := &fixture{
		inbound:   inboundSender,
		logs:      logSender,
		outbound:  slot.New(),
		clipboard: &clipboard.Memory{},
	}
	bridgeConsumer := consumer.New(consumer.Config{
		Inbound:   inboundReceiver,
		Logs:      logReceiver,
		Outbound:  f.outbound,
		Clipboard: f.clipboard,
		Logger:    logger,
	})
	f.model = NewModel(Config{Consumer: bridgeConsumer, JoinURL: "https://192.168.1.5:3000/"})
	f.update(t, tea.WindowSizeMsg{Width: 100, Height: 48})
	return f
}

func (f *fixture) update(t *testing.T, message tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := f.model.Update(message)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	f.model = model
	return cmd
}

func (f *fixture) poll(t *testing.T) tea.Cmd {
	t.Helper()
	return f.update(t, pollMsg{})
}

func (f *fixture) view() string {
	return ansi.Strip(f.model.View())
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestViewBeforeSize(t *testing.T) {
	f := newFixture(t)
	model := NewModel(Config{Consumer: f.model.consumer})
	if got := model.View(); got != "Starting..." {
		t.Fatalf("View before size = %q", got)
	}
	if model.Init() == nil {
		t.Fatal("Init returned no poll command")
	}
}

func TestPollShowsReceivedText(t *testing.T) {
	f := newFixture(t)
	view := f.view()
	if !strings.Contains(view, "https://192.168.1.5:3000/") {
		t.Fatal("view does not show the join URL")
	}
	if !strings.Contains(view, "No messages yet") {
		t.Fatal("empty history placeholder missing")
	}

	f.inbound.Send("hello from the phone")
	if cmd := f.poll(t); cmd == nil {
		t.Fatal("poll returned no follow-up tick")
	}

	view = f.view()
	if !strings.Contains(view, "hello from the phone") {
		t.Fatalf("view does not show received text:\n%s", view)
	}
	if !strings.Contains(view, "History (1)") {
		t.Fatalf("history title not updated:\n%s", view)
	}
	if !strings.Contains(view, "Received 20 chars") {
		t.Fatalf("receive notice missing:\n%s", view)
	}
	if writes := f.clipboard.Writes(); len(writes) != 1 || writes[0] != "hello from the phone" {
		t.Fatalf("clipboard writes = %v", writes)
	}
}

func TestNoticeFades(t *testing.T) {
	f := newFixture(t)
	f.inbound.Send("one")
	f.poll(t)
	first := f.model.noticeSequence

	f.inbound.Send("two")
	f.poll(t)

	f.update(t, noticeFadeMsg{sequence: first})
	if f.model.notice == "" {
		t.Fatal("stale fade cleared a newer notice")
	}
	f.update(t, noticeFadeMsg{sequence: f.model.noticeSequence})
	if f.model.notice != "" {
		t.Fatalf("notice %q survived its fade", f.model.notice)
	}
}

func TestQuitOnlyOutsideEditor(t *testing.T) {
	f := newFixture(t)
	if !isQuit(f.update(t, runes("q"))) {
		t.Fatal("q in history focus did not quit")
	}

	f = newFixture(t)
	f.update(t, tea.KeyMsg{Type: tea.KeyTab})
	if f.model.Focus() != FocusEditor {
		t.Fatalf("focus = %v, want editor", f.model.Focus())
	}
	f.update(t, runes("q"))
	if got := f.model.editor.Value(); got != "q" {
		t.Fatalf("editor value = %q, want q", got)
	}
	if !isQuit(f.update(t, tea.KeyMsg{Type: tea.KeyCtrlC})) {
		t.Fatal("ctrl+c in editor did not quit")
	}
}

func TestPushFromEditor(t *testing.T) {
	f := newFixture(t)
	f.update(t, tea.KeyMsg{Type: tea.KeyTab})
	f.update(t, runes("for the phone"))
	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlS})

	if got := f.outbound.Read(); got != "for the phone" {
		t.Fatalf("slot = %q, want %q", got, "for the phone")
	}
	if !strings.Contains(f.view(), "outbound v1") {
		t.Fatalf("header does not show the publish:\n%s", f.view())
	}

	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	if f.model.Focus() != FocusHistory {
		t.Fatal("Esc did not leave the editor")
	}
}

func TestPushEmptyEditor(t *testing.T) {
	f := newFixture(t)
	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	if f.outbound.Version() != 0 {
		t.Fatal("empty editor was published")
	}
	if !f.model.noticeError || f.model.notice != "Editor is empty" {
		t.Fatalf("notice = %q (error=%v)", f.model.notice, f.model.noticeError)
	}
}

func TestPasteLoadsEditor(t *testing.T) {
	f := newFixture(t)
	f.clipboard.WriteText("from the desktop")

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlV})
	if f.model.Focus() != FocusEditor {
		t.Fatal("paste did not focus the editor")
	}
	if got := f.model.editor.Value(); got != "from the desktop" {
		t.Fatalf("editor = %q", got)
	}
	if f.outbound.Version() != 0 {
		t.Fatal("paste published without ctrl+s")
	}
}

func TestPasteFailureShowsError(t *testing.T) {
	f := newFixture(t)
	f.clipboard.Err = clipboard.ErrUnavailable
	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlP})
	if !f.model.noticeError || !strings.HasPrefix(f.model.notice, "Paste failed") {
		t.Fatalf("notice = %q (error=%v)", f.model.notice, f.model.noticeError)
	}
}

func TestCopyLatestAndSelected(t *testing.T) {
	f := newFixture(t)
	f.update(t, runes("c"))
	if f.model.notice != "Nothing received yet" {
		t.Fatalf("notice = %q", f.model.notice)
	}

	f.inbound.Send("older")
	f.inbound.Send("newer")
	f.poll(t)

	f.update(t, runes("c"))
	writes := f.clipboard.Writes()
	if writes[len(writes)-1] != "newer" {
		t.Fatalf("c copied %q, want newer", writes[len(writes)-1])
	}

	f.update(t, tea.KeyMsg{Type: tea.KeyDown})
	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	writes = f.clipboard.Writes()
	if writes[len(writes)-1] != "older" {
		t.Fatalf("enter copied %q, want older", writes[len(writes)-1])
	}
}

func TestFilterNarrowsHistory(t *testing.T) {
	f := newFixture(t)
	for _, text := range []string{"apple pie", "banana bread", "grape juice"} {
		f.inbound.Send(text)
	}
	f.poll(t)

	f.update(t, runes("/"))
	if f.model.Focus() != FocusFilter {
		t.Fatal("/ did not activate the filter")
	}
	f.update(t, runes("ban"))
	view := f.view()
	if !strings.Contains(view, "History (1 of 3)") {
		t.Fatalf("filtered title missing:\n%s", view)
	}
	if strings.Contains(view, "apple pie") {
		t.Fatal("non-matching entry still shown")
	}

	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	if f.model.Focus() != FocusHistory {
		t.Fatal("Enter did not confirm the filter")
	}
	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	writes := f.clipboard.Writes()
	if writes[len(writes)-1] != "banana bread" {
		t.Fatalf("copied %q, want banana bread", writes[len(writes)-1])
	}

	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	if !strings.Contains(f.view(), "History (3)") {
		t.Fatal("Esc did not clear the filter")
	}
}

func TestSelectionSurvivesNewMessages(t *testing.T) {
	f := newFixture(t)
	for _, text := range []string{"a", "b", "c"} {
		f.inbound.Send(text)
	}
	f.poll(t)
	f.update(t, tea.KeyMsg{Type: tea.KeyDown})

	f.inbound.Send("d")
	f.poll(t)
	if f.model.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (still on b)", f.model.cursor)
	}
	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	writes := f.clipboard.Writes()
	if got := writes[len(writes)-1]; got != "b" {
		t.Fatalf("enter copied %q, want b", got)
	}
}

func TestFilteredSelectionSurvivesNewMessages(t *testing.T) {
	f := newFixture(t)
	for _, text := range []string{"apple one", "banana", "apple two"} {
		f.inbound.Send(text)
	}
	f.poll(t)

	f.update(t, runes("/"))
	f.update(t, runes("apple"))
	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	matches := f.model.matches()
	if len(matches) != 2 {
		t.Fatalf("filter matched %d entries, want 2", len(matches))
	}
	f.update(t, tea.KeyMsg{Type: tea.KeyDown})
	want := matches[1].Text

	f.inbound.Send("apple three")
	f.poll(t)
	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	writes := f.clipboard.Writes()
	if got := writes[len(writes)-1]; got != want {
		t.Fatalf("enter copied %q, want %q", got, want)
	}
}

func TestEvictedSelectionFallsBackToNewest(t *testing.T) {
	f := newFixture(t)
	f.inbound.Send("oldest")
	for index := 1; index < consumer.HistoryCapacity; index++ {
		f.inbound.Send(testutil.UniqueID("filler"))
	}
	f.poll(t)
	for index := 0; index < consumer.HistoryCapacity; index++ {
		f.update(t, tea.KeyMsg{Type: tea.KeyDown})
	}
	if f.model.cursor != consumer.HistoryCapacity-1 {
		t.Fatalf("cursor = %d, want the oldest row", f.model.cursor)
	}

	f.inbound.Send("newest")
	f.poll(t)
	if f.model.cursor != 0 || f.model.scrollOffset != 0 {
		t.Fatalf("cursor = %d offset = %d, want 0/0 after eviction", f.model.cursor, f.model.scrollOffset)
	}
}

func TestFilterBackspaceAndEscape(t *testing.T) {
	f := newFixture(t)
	f.update(t, runes("/"))
	f.update(t, runes("ab"))
	f.update(t, tea.KeyMsg{Type: tea.KeyBackspace})
	if f.model.filter != "a" {
		t.Fatalf("filter = %q, want a", f.model.filter)
	}
	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	if f.model.filter != "" || f.model.Focus() != FocusFilter {
		t.Fatal("first Esc should clear the query and stay in filter mode")
	}
	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	if f.model.Focus() != FocusHistory {
		t.Fatal("second Esc should leave filter mode")
	}
}

func TestLogPanelToggle(t *testing.T) {
	f := newFixture(t)
	f.logs.Send(`level=INFO msg="listener started"`)
	f.poll(t)
	if strings.Contains(f.view(), "listener started") {
		t.Fatal("log panel visible before toggle")
	}

	f.update(t, runes("l"))
	if !strings.Contains(f.view(), "listener started") {
		t.Fatalf("log line not shown after toggle:\n%s", f.view())
	}

	f.logs.Send(`level=INFO msg="received content"`)
	f.poll(t)
	if !strings.Contains(f.view(), "received content") {
		t.Fatal("log panel did not follow new lines")
	}
}

func TestHistoryScrollsWithCursor(t *testing.T) {
	f := newFixture(t)
	for index := 0; index < consumer.HistoryCapacity; index++ {
		f.inbound.Send(testutil.UniqueID("entry"))
	}
	f.poll(t)

	rows := f.model.historyRows()
	for index := 0; index < rows+2; index++ {
		f.update(t, tea.KeyMsg{Type: tea.KeyDown})
	}
	if f.model.cursor != rows+2 {
		t.Fatalf("cursor = %d, want %d", f.model.cursor, rows+2)
	}
	if f.model.scrollOffset != 3 {
		t.Fatalf("scrollOffset = %d, want 3", f.model.scrollOffset)
	}
}

func TestSmallTerminalHidesQR(t *testing.T) {
	f := newFixture(t)
	if !f.model.showQR() {
		t.Fatal("QR hidden on a large terminal")
	}
	f.update(t, tea.WindowSizeMsg{Width: 50, Height: 20})
	if f.model.showQR() {
		t.Fatal("QR shown on a small terminal")
	}
	for _, line := range strings.Split(f.view(), "\n") {
		if width := ansi.StringWidth(line); width > 50 {
			t.Fatalf("line wider than terminal (%d): %q", width, line)
		}
	}
}
