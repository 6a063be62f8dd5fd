package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/comitanigiacomo/concentria/internal/core/countdown"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/quotes"
	"github.com/comitanigiacomo/concentria/internal/core/services"
	"github.com/comitanigiacomo/concentria/internal/core/tree"
)

const (
	fieldTitle = iota
	fieldDuration
	fieldHardness
	fieldNote
	fieldTimer
	focusTree
	focusCount
)

var fieldLabels = [fieldTimer + 1]string{"Title", "Duration", "Hardness", "Note", "Timer"}

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

type tickMsg struct{ gen int }

type quoteMsg struct{}

type analyzeMsg struct{ err error }

type Options struct {
	Store         *services.EntryService
	CSVPath       string
	Quotes        []string
	QuoteInterval time.Duration
	AutoLog       bool
	// Launch starts the chart view for the CSV file. Defaults to DetachedLauncher.
	Launch func(csvPath string) error
	Bell   io.Writer
	Now    func() time.Time
}

type Model struct {
	ctx     context.Context
	store   *services.EntryService
	csvPath string

	inputs [fieldTimer + 1]textinput.Model
	focus  int

	tree   *tree.Tree
	cursor int

	timer   *countdown.Timer
	tickGen int
	bar     progress.Model
	autoLog bool

	rotator       *quotes.Rotator
	quote         string
	quoteInterval time.Duration

	statusKind statusKind
	status     string
	confirm    bool

	keys   keyMap
	help   help.Model
	launch func(string) error
	bell   io.Writer
	now    func() time.Time
	width  int
}

func New(opts Options) *Model {
	m := &Model{
		ctx:           context.Background(),
		store:         opts.Store,
		csvPath:       opts.CSVPath,
		tree:          tree.New(),
		timer:         countdown.New(),
		bar:           progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		autoLog:       opts.AutoLog,
		rotator:       quotes.NewRotator(opts.Quotes),
		quoteInterval: opts.QuoteInterval,
		keys:          defaultKeyMap(),
		help:          help.New(),
		launch:        opts.Launch,
		bell:          opts.Bell,
		now:           opts.Now,
	}
	if m.launch == nil {
		m.launch = DetachedLauncher
	}
	if m.bell == nil {
		m.bell = os.Stderr
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.quoteInterval <= 0 {
		m.quoteInterval = quotes.DefaultInterval
	}

	placeholders := [fieldTimer + 1]string{"What did you focus on?", "minutes", "1-10", "optional", "minutes"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	m.inputs[fieldTitle].CharLimit = 120
	m.inputs[fieldDuration].SetValue("0")
	m.inputs[fieldHardness].SetValue(strconv.Itoa(domain.DefaultHardness))
	m.inputs[fieldTimer].SetValue("25")
	m.inputs[fieldTitle].Focus()

	m.quote = m.rotator.Next()
	m.refreshTree()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.scheduleQuote())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, m.onTick(msg)

	case quoteMsg:
		m.quote = m.rotator.Next()
		return m, m.scheduleQuote()

	case analyzeMsg:
		if msg.err != nil {
			m.setStatus(statusError, msg.err.Error())
		} else {
			m.setStatus(statusInfo, "Chart view started.")
		}
		return m, nil

	case tea.KeyMsg:
		if !key.Matches(msg, m.keys.Clear) {
			m.confirm = false
		}
		return m.onKey(msg)
	}

	return m, m.updateFocused(msg)
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tickGen++
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.Submit):
		if m.focus == fieldTimer {
			return m, m.startTimer()
		}
		m.submit()
		return m, nil

	case key.Matches(msg, m.keys.Timer):
		return m, m.toggleTimer()

	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
		m.tickGen++
		m.setStatus(statusInfo, "Timer reset.")
		return m, nil

	case key.Matches(msg, m.keys.AutoLog):
		m.autoLog = !m.autoLog
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		m.removeSelected()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.clearAll()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		return m, nil

	case key.Matches(msg, m.keys.Analyze):
		return m, m.analyze()
	}

	if m.focus == focusTree {
		rows := m.tree.Flat()
		switch {
		case key.Matches(msg, m.keys.Up) && m.cursor > 0:
			m.cursor--
		case key.Matches(msg, m.keys.Down) && m.cursor < len(rows)-1:
			m.cursor++
		}
		return m, nil
	}

	return m, m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	if m.focus >= len(m.inputs) {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if i < len(m.inputs) {
		return m.inputs[i].Focus()
	}
	return nil
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) refreshTree() {
	var ops []tree.Op
	m.tree, ops = tree.Reconcile(m.tree, m.store.Entries())
	if len(ops) > 0 {
		log.Printf("[TREE] Applied %d ops", len(ops))
	}
	if n := len(m.tree.Flat()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *Model) submit() {
	title := strings.TrimSpace(m.inputs[fieldTitle].Value())
	durationText := strings.TrimSpace(m.inputs[fieldDuration].Value())
	if title == "" {
		m.setStatus(statusWarn, "Missing title: please fill in the Title.")
		return
	}
	if durationText == "" {
		m.setStatus(statusWarn, "Missing duration: please fill in the Duration.")
		return
	}

	hardness := domain.FormHardness(m.inputs[fieldHardness].Value())
	m.inputs[fieldHardness].SetValue(strconv.Itoa(hardness))

	entry := domain.NewSessionEntry(title, domain.ParseMinutes(durationText), hardness, m.inputs[fieldNote].Value(), m.now())
	added, err := m.store.Add(m.ctx, entry)
	if err != nil && !errors.Is(err, domain.ErrPersist) {
		m.setStatus(statusWarn, err.Error())
		return
	}

	m.refreshTree()
	m.inputs[fieldTitle].SetValue("")
	m.inputs[fieldDuration].SetValue("0")
	m.inputs[fieldNote].SetValue("")

	if err != nil {
		m.setStatus(statusError, "Save error: "+err.Error())
		return
	}
	m.setStatus(statusInfo, fmt.Sprintf("Logged %s (%d min).", added.Title, added.Duration))
}

func (m *Model) selected() *tree.Row {
	rows := m.tree.Flat()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor].Row
}

func (m *Model) removeSelected() {
	row := m.selected()
	if m.focus != focusTree || row == nil || row.Entry == nil {
		m.setStatus(statusWarn, "Select a session in the list to remove it.")
		return
	}

	removed, err := m.store.Remove(m.ctx, domain.MatcherFor(*row.Entry))
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		m.setStatus(statusWarn, "That session is no longer stored.")
	case err != nil:
		m.refreshTree()
		m.setStatus(statusError, "Save error: "+err.Error())
	default:
		m.refreshTree()
		m.setStatus(statusInfo, fmt.Sprintf("Removed %s (%d min).", removed.Title, removed.Duration))
	}
}

func (m *Model) clearAll() {
	if !m.confirm {
		m.confirm = true
		m.setStatus(statusWarn, "Press ctrl+x again to delete every session.")
		return
	}
	m.confirm = false

	err := m.store.ClearAll(m.ctx)
	m.refreshTree()
	if err != nil {
		m.setStatus(statusError, "Save error: "+err.Error())
		return
	}
	m.setStatus(statusInfo, "All sessions cleared.")
}

func (m *Model) reload() {
	if err := m.store.LoadAll(m.ctx); err != nil {
		m.setStatus(statusError, "Load error: "+err.Error())
		return
	}
	m.refreshTree()
	m.setStatus(statusInfo, fmt.Sprintf("Loaded %d sessions.", m.store.Len()))
}

func (m *Model) analyze() tea.Cmd {
	if _, err := os.Stat(m.csvPath); err != nil {
		m.setStatus(statusInfo, "Nothing to analyze: add at least one entry first.")
		return nil
	}
	path, launch := m.csvPath, m.launch
	return func() tea.Msg {
		return analyzeMsg{err: launch(path)}
	}
}

func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) startTimer() tea.Cmd {
	if m.timer.Active() {
		return nil
	}
	if err := m.timer.StartText(m.inputs[fieldTimer].Value()); err != nil {
		m.setStatus(statusWarn, "Invalid minutes: enter a number greater than 0 (e.g. 25).")
		return nil
	}
	m.tickGen++
	m.setStatus(statusInfo, fmt.Sprintf("Timer started: %s.", m.timer.Format()))
	return m.tick()
}

func (m *Model) toggleTimer() tea.Cmd {
	switch m.timer.State() {
	case countdown.Running:
		m.timer.Pause()
		m.tickGen++
		return nil
	case countdown.Paused:
		m.timer.Resume()
		m.tickGen++
		return m.tick()
	default:
		return m.startTimer()
	}
}

func (m *Model) onTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.tickGen || m.timer.State() != countdown.Running {
		return nil
	}
	if !m.timer.Tick() {
		return m.tick()
	}

	fmt.Fprint(m.bell, "\a")
	if !m.autoLog {
		m.setStatus(statusInfo, "Time is up.")
		return nil
	}

	m.inputs[fieldDuration].SetValue(strconv.Itoa(m.timer.LoggedMinutes()))
	if strings.TrimSpace(m.inputs[fieldTitle].Value()) == "" {
		m.inputs[fieldTitle].SetValue(domain.TimedTitle)
	}
	m.submit()
	return nil
}

func (m *Model) scheduleQuote() tea.Cmd {
	if m.rotator.Len() < 2 {
		return nil
	}
	return tea.Tick(m.quoteInterval, func(time.Time) tea.Msg {
		return quoteMsg{}
	})
}
