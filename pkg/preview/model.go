package preview

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-mclib/slate/pkg/slate"
	"github.com/go-mclib/slate/pkg/wire"
)

const cellWidth = 12

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	cursorStyle = cellStyle.
			BorderForeground(lipgloss.Color("205")).
			Bold(true)

	hotbarStyle = cellStyle.
			BorderForeground(lipgloss.Color("220"))

	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is a bubbletea model showing the slate open for one viewer and
// turning key presses into the packets a client would send.
type Model struct {
	registry *slate.Registry
	router   *wire.Router
	viewer   *Viewer
	tick     time.Duration

	// MaxLogLines bounds the log pane; zero keeps everything.
	MaxLogLines int

	cursor    int
	textInput textinput.Model
	inputting bool

	viewport viewport.Model
	logs     []string
	logsNew  bool
	logMutex sync.Mutex
	ready    bool
	width    int
	height   int
}

// New returns a model ticking r every tick and acting as v.
func New(r *slate.Registry, v *Viewer, tick time.Duration) *Model {
	ti := textinput.New()
	ti.Placeholder = "anvil text..."
	ti.CharLimit = 50
	ti.Width = 50

	return &Model{
		registry:    r,
		router:      wire.NewRouter(r, v.Logger),
		viewer:      v,
		tick:        tick,
		MaxLogLines: 500,
		textInput:   ti,
	}
}

type tickMsg struct{}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tickMsg:
		m.registry.Tick()
		m.clampCursor()
		m.refreshLogs()
		return m, m.tickCmd()

	case tea.KeyMsg:
		if m.inputting {
			return m, m.updateInput(msg)
		}
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.logHeight(msg.Height))
			m.viewport.SetContent(m.renderLogs())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.logHeight(msg.Height)
		}
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 2
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.router.Input(m.viewer, m.textInput.Value())
		fallthrough
	case tea.KeyEsc:
		m.inputting = false
		m.textInput.SetValue("")
		m.textInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}

// handleKey acts on a key press and reports whether to quit.
func (m *Model) handleKey(key string) bool {
	s := m.viewer.Current()
	if s == nil {
		return key == "esc" || key == "ctrl+c"
	}
	w := s.Kind().Width()

	switch key {
	case "left", "h":
		m.cursor--
	case "right", "l":
		m.cursor++
	case "up", "k":
		m.cursor -= w
	case "down", "j":
		m.cursor += w

	case "enter", " ":
		m.click(slate.ClickEvent{Button: 0, Action: slate.ActionPickup})
	case "r":
		m.click(slate.ClickEvent{Button: 1, Action: slate.ActionPickup})
	case "m":
		m.click(slate.ClickEvent{Button: 2, Action: slate.ActionClone})
	case "q":
		m.click(slate.ClickEvent{Button: 0, Action: slate.ActionThrow})
	case "s":
		m.click(slate.ClickEvent{Button: 0, Action: slate.ActionQuickMove})
	case "D":
		m.click(slate.ClickEvent{Button: 0, Action: slate.ActionPickupAll})
	case "f":
		m.click(slate.ClickEvent{Button: slate.OffhandButton, Action: slate.ActionSwap})
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.click(slate.ClickEvent{Button: int(key[0] - '1'), Action: slate.ActionSwap})

	case "[":
		m.viewer.Select(m.viewer.SelectedSlot() - 1)
	case "]":
		m.viewer.Select(m.viewer.SelectedSlot() + 1)
	case "u":
		s.HandleUse(m.viewer, false)
	case "g":
		s.HandleSwing(m.viewer, false)
	case "x":
		s.HandleDrop(m.viewer, false)

	case "i":
		if s.Kind() == slate.KindAnvil {
			m.inputting = true
			m.textInput.Focus()
		}
	case "esc":
		if m.router.CloseRequest(m.viewer, m.viewer.ScreenID()) {
			_ = m.viewer.CloseScreen()
		}
	}
	m.clampCursor()
	return false
}

// click sends ev for the cursor slot the way a client encodes it.
func (m *Model) click(ev slate.ClickEvent) {
	s := m.viewer.Current()
	if s == nil {
		return
	}
	ev.Slot = m.cursor
	if s.Kind() == slate.KindInventory {
		ev.Slot = wire.InventorySlot(m.cursor)
	}
	pkt := wire.ClickPacket(ev, m.viewer.ScreenID(), int(m.viewer.Conn().StateID()))
	ev, window := wire.ClickFromPacket(pkt)
	if !m.router.ClickEvent(m.viewer, ev, window) {
		m.AddLog(fmt.Sprintf("preview: click on slot %d of window %d was not routed", ev.Slot, window))
	}
}

func (m *Model) clampCursor() {
	s := m.viewer.Current()
	if s == nil {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(m.cursor, s.Size()-1))
}

func (m *Model) logHeight(total int) int {
	return max(3, total/3)
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	s := m.viewer.Current()
	if s == nil {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s - no slate open", m.viewer.Name())))
		b.WriteString("\n")
	} else {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s - %s (%s, screen %d)", m.viewer.Name(), m.viewer.Title().Plain(), s.Kind(), m.viewer.ScreenID())))
		b.WriteString("\n")
		b.WriteString(m.renderGrid(s))
		b.WriteString("\n")
		b.WriteString(m.renderTooltip(s))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("state %d • %d packets sent • hotbar slot %d",
		m.viewer.Conn().StateID(), m.packets(), m.viewer.SelectedSlot()+1)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.inputting {
		b.WriteString(inputStyle.Render("> " + m.textInput.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Enter: submit • Esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("arrows: move • enter: left • r: right • m: middle • q: throw • s: shift • D: double • f: off-hand • 1-9: swap • i: anvil text • u/g/x: use/swing/drop • [ ]: hotbar • esc: close • ctrl+c: quit"))
	}
	return b.String()
}

func (m *Model) renderGrid(s *slate.Slate) string {
	stacks := s.Stacks(m.viewer)
	w := s.Kind().Width()
	hotbar := -1
	if s.Kind() == slate.KindInventory {
		hotbar = slate.HotbarIndex(m.viewer.SelectedSlot())
	}

	var rows []string
	for y := 0; y*w < len(stacks); y++ {
		cells := make([]string, 0, w)
		for x := range w {
			i := y*w + x
			if i >= len(stacks) {
				break
			}
			style := cellStyle
			switch i {
			case m.cursor:
				style = cursorStyle
			case hotbar:
				style = hotbarStyle
			}
			cells = append(cells, style.Render(cellLabel(stacks[i])))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderTooltip(s *slate.Slate) string {
	stacks := s.Stacks(m.viewer)
	if m.cursor >= len(stacks) {
		return ""
	}
	st := stacks[m.cursor]
	if st.IsEmpty() || st.HideTooltip {
		return helpStyle.Render(fmt.Sprintf("slot %d", m.cursor))
	}
	lines := []string{fmt.Sprintf("slot %d: %s x%d", m.cursor, st.DisplayName(), st.Count)}
	for _, l := range st.Lore {
		lines = append(lines, "  "+l.Plain())
	}
	return tooltipStyle.Render(strings.Join(lines, "\n"))
}

// cellLabel abbreviates a stack to fit a cell.
func cellLabel(st slate.Stack) string {
	if st.IsEmpty() {
		return ""
	}
	name := strings.TrimPrefix(st.ItemName(), "minecraft:")
	label := name
	if st.Count > 1 {
		label = fmt.Sprintf("%s %d", name, st.Count)
	}
	if len(label) > cellWidth {
		suffix := ""
		if st.Count > 1 {
			suffix = fmt.Sprintf(" %d", st.Count)
		}
		label = name[:cellWidth-len(suffix)] + suffix
	}
	return label
}

func (m *Model) packets() int {
	if r, ok := m.viewer.conn.Writer().(*Recorder); ok {
		return r.Len()
	}
	return 0
}

// SetLogger makes the model's viewer and packet routing log to logger.
func (m *Model) SetLogger(logger *log.Logger) {
	m.viewer.Logger = logger
	m.router.Logger = logger
}

// AddLog adds a line to the log pane. It is shown on the next tick.
func (m *Model) AddLog(msg string) {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()
	m.logs = append(m.logs, msg)
	m.logsNew = true

	if m.MaxLogLines > 0 && len(m.logs) > m.MaxLogLines {
		m.logs = m.logs[len(m.logs)-m.MaxLogLines:]
	}
}

func (m *Model) refreshLogs() {
	m.logMutex.Lock()
	changed := m.logsNew
	m.logsNew = false
	m.logMutex.Unlock()
	if !changed || !m.ready {
		return
	}

	// do not scroll if not at bottom, to prevent flickering
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderLogs())
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderLogs() string {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()
	return strings.Join(m.logs, "\n")
}

// Writer is an io.Writer that sends output to the log pane of a model.
// Writing never blocks on the program, so slates may log from Update.
type Writer struct {
	model *Model
}

func NewWriter(m *Model) *Writer {
	return &Writer{model: m}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line != "" {
			w.model.AddLog(line)
		}
	}
	return len(p), nil
}

// Start creates a full-screen program running m.
func Start(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}
