package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/weekplan/internal/commands"
	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/persist"
	"github.com/sandeepkv93/weekplan/internal/store"
	"github.com/sandeepkv93/weekplan/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// RunCommandMsg feeds a raw command line through parse and dispatch, the
// same path the command prompt uses.
type RunCommandMsg struct {
	Input string
}

type keyMap struct {
	NextDay  key.Binding
	PrevDay  key.Binding
	NextTask key.Binding
	PrevTask key.Binding
	Add      key.Binding
	Edit     key.Binding
	Done     key.Binding
	ViewAll  key.Binding
	Command  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextDay:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "change day")),
		PrevDay:  key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("", "")),
		NextTask: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("h/l", "change task")),
		PrevTask: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("", "")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		Done:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mark done")),
		ViewAll:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle week view")),
		Command:  key.NewBinding(key.WithKeys(":", "/"), key.WithHelp(":", "command prompt")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Done, k.Command, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextDay, k.NextTask, k.ViewAll},
		{k.Add, k.Edit, k.Done},
		{k.Command, k.Help, k.Quit},
	}
}

const helpMarkdown = `# weekplan

Tasks are grouped into the seven weekdays plus a **General** bucket.
Every change re-saves the last used file automatically.

## Commands

| command | effect |
|---|---|
| ` + "`add [day] <task>`" + ` | add a task (blank day goes to General) |
| ` + "`edit <day> <index> <task>`" + ` | rename a task |
| ` + "`done <day> <index>`" + ` | mark a task done |
| ` + "`view [day]`" + ` | focus one day, or all days |
| ` + "`save [file]`" + ` | write tasks.json or the given file |
| ` + "`load [file]`" + ` | read tasks.json or the given file |
| ` + "`quit`" + ` | exit |
`

type Model struct {
	Store       *store.Store
	Adapter     *persist.Adapter
	Status      StatusBar
	ViewAll     bool
	HelpVisible bool
	Quitting    bool

	cfg    Config
	logger *log.Logger
	keys   keyMap

	cursor     int
	taskCursor int

	weekTable    table.Model
	taskInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model

	adding      bool
	editing     bool
	editID      int
	commandMode bool
}

func NewModel(s *store.Store, adapter *persist.Adapter, cfg Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	m := Model{
		Store:   s,
		Adapter: adapter,
		cfg:     cfg,
		logger:  logger,
		keys:    defaultKeyMap(),
	}
	m.initComponents()
	m.syncTable()
	return m
}

func (m *Model) initComponents() {
	cols := []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Tasks", Width: 6},
		{Title: "Done", Width: 6},
	}
	m.weekTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ": "
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 44

	m.helpModel = help.New()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.commandMode {
			return m.handleCommandKey(typed)
		}
		if m.adding || m.editing {
			return m.handleInputKey(typed)
		}
		return m.handleGlobalKey(typed)
	case RunCommandMsg:
		return m.runCommand(typed.Input)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.keys.ViewAll):
		m.ViewAll = !m.ViewAll
		return m, nil
	case key.Matches(msg, m.keys.Command):
		m.commandMode = true
		m.commandInput.SetValue("")
		return m, m.commandInput.Focus()
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.taskInput.Prompt = "add> "
		m.taskInput.SetValue("")
		return m, m.taskInput.Focus()
	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: fmt.Sprintf("no task selected under %s", m.selectedDay().Capitalized())}
			return m, nil
		}
		m.editing = true
		m.editID = task.ID
		m.taskInput.Prompt = "edit> "
		m.taskInput.SetValue(task.Name)
		return m, m.taskInput.Focus()
	case key.Matches(msg, m.keys.Done):
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: fmt.Sprintf("no task selected under %s", m.selectedDay().Capitalized())}
			return m, nil
		}
		m.Store.MarkDone(string(m.selectedDay()), task.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("done: %s", task.Name)}
		m.syncTable()
		return m, nil
	case key.Matches(msg, m.keys.NextDay):
		if m.cursor < len(model.WeekOrder())-1 {
			m.cursor++
			m.taskCursor = 0
		}
		m.syncTable()
		return m, nil
	case key.Matches(msg, m.keys.PrevDay):
		if m.cursor > 0 {
			m.cursor--
			m.taskCursor = 0
		}
		m.syncTable()
		return m, nil
	case key.Matches(msg, m.keys.NextTask):
		m.taskCursor++
		m.syncTable()
		return m, nil
	case key.Matches(msg, m.keys.PrevTask):
		m.taskCursor--
		m.syncTable()
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.editing = false
		m.taskInput.Blur()
		m.taskInput.SetValue("")
		m.Status = StatusBar{Text: "canceled"}
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.taskInput.Value())
		day := m.selectedDay()
		if m.adding {
			task := m.Store.Add(string(day), text, "")
			m.Status = StatusBar{Text: fmt.Sprintf("added %d: %s to %s", task.ID, task.Name, day.Capitalized())}
			m.taskCursor = m.Store.Count(string(day)) - 1
		} else if m.Store.EditName(string(day), m.editID, text) {
			m.Status = StatusBar{Text: fmt.Sprintf("renamed %d under %s", m.editID, day.Capitalized())}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("no task %d under %s", m.editID, day.Capitalized())}
		}
		m.adding = false
		m.editing = false
		m.taskInput.Blur()
		m.taskInput.SetValue("")
		m.syncTable()
		return m, nil
	default:
		var cmd tea.Cmd
		m.taskInput, cmd = m.taskInput.Update(msg)
		return m, cmd
	}
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandMode = false
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command prompt closed"}
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.commandMode = false
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		return m.runCommand(input)
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}
}

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		return m, nil
	}
	if cmd.Type == commands.TypeQuit {
		m.Quitting = true
		return m, tea.Quit
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task := m.Store.Add(a.Day, a.Name, "")
			day := model.NormalizeDay(a.Day)
			m.focusDay(day)
			m.taskCursor = m.Store.Count(string(day)) - 1
			return commands.Result{Message: fmt.Sprintf("added %d: %s to %s", task.ID, task.Name, day.Capitalized())}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			if !m.Store.EditName(a.Day, a.Index, a.Name) {
				return commands.Result{Message: fmt.Sprintf("no task %d under %s", a.Index, a.Day)}, nil
			}
			m.focusDay(model.NormalizeDay(a.Day))
			return commands.Result{Message: fmt.Sprintf("renamed %d under %s", a.Index, a.Day)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			if !m.Store.MarkDone(a.Day, a.Index) {
				return commands.Result{Message: fmt.Sprintf("no task %d under %s", a.Index, a.Day)}, nil
			}
			m.focusDay(model.NormalizeDay(a.Day))
			return commands.Result{Message: fmt.Sprintf("done: task %d under %s", a.Index, a.Day)}, nil
		},
		View: func(a commands.ViewArgs) (commands.Result, error) {
			if a.Day == "" {
				m.ViewAll = true
				return commands.Result{Message: "viewing all days"}, nil
			}
			m.ViewAll = false
			m.focusDay(model.NormalizeDay(a.Day))
			return commands.Result{Message: fmt.Sprintf("viewing %s", model.NormalizeDay(a.Day).Capitalized())}, nil
		},
		Save: func(a commands.FileArgs) (commands.Result, error) {
			filename := m.resolveFilename(a.Filename)
			if err := m.Adapter.Save(filename); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("saved to %s", filename)}, nil
		},
		Load: func(a commands.FileArgs) (commands.Result, error) {
			filename := m.resolveFilename(a.Filename)
			if err := m.Adapter.Load(filename); err != nil {
				switch {
				case errors.Is(err, persist.ErrNotFound):
					return commands.Result{}, fmt.Errorf("file not found: %s", filename)
				case errors.Is(err, persist.ErrParse):
					return commands.Result{}, fmt.Errorf("could not parse %s", filename)
				default:
					return commands.Result{}, err
				}
			}
			return commands.Result{Message: fmt.Sprintf("loaded from %s", filename)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		m.logger.Warn("command failed", "input", strings.TrimSpace(input), "err", err)
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.syncTable()
	return m, nil
}

func (m Model) resolveFilename(filename string) string {
	if filename != "" {
		return filename
	}
	if m.cfg.DefaultFile != "" {
		return m.cfg.DefaultFile
	}
	return commands.DefaultFilename
}

func (m Model) View() string {
	board := views.RenderBoardPanel(views.BoardPanelData{TableView: m.weekTable.View()})

	var right string
	switch {
	case m.HelpVisible:
		right = views.RenderHelpPanel(views.HelpPanelData{
			Markdown: helpMarkdown,
			HelpView: m.helpModel.View(m.keys),
		})
	case m.ViewAll:
		rows := make([]views.DayPanelData, 0, 8)
		for _, dt := range m.Store.ListAll() {
			rows = append(rows, views.DayPanelData{Day: dt.Day.Capitalized(), Tasks: taskLines(dt.Tasks, -1)})
		}
		right = views.RenderAllDaysPanel(rows)
	default:
		day := m.selectedDay()
		right = views.RenderDayPanel(views.DayPanelData{
			Day:       day.Capitalized(),
			Tasks:     taskLines(m.Store.ListDay(string(day)), m.taskCursor),
			InputView: m.taskInput.View(),
			Adding:    m.adding || m.editing,
		})
	}
	if m.commandMode {
		right += "\n" + views.RenderCommandLine(views.CommandLineData{Active: true, View: m.commandInput.View()})
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + strings.TrimPrefix(m.Status.Text, "error: ")
		} else {
			status = "status: " + m.Status.Text
		}
	}

	file := m.Adapter.Path()
	if file == "" {
		file = "(unsaved)"
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("weekplan | day: %s | file: %s", m.selectedDay().Capitalized(), file),
		LeftPane:   board,
		RightPane:  right,
		StatusLine: status,
		Footer:     "keys: j/k day | h/l task | a add | e edit | x done | v week | : command | ? help | q quit",
	})
}

func taskLines(tasks []model.Task, selected int) []views.TaskLineData {
	out := make([]views.TaskLineData, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, views.TaskLineData{
			ID:       t.ID,
			Name:     t.Name,
			Status:   string(t.Status),
			Selected: i == selected,
		})
	}
	return out
}

func (m Model) selectedDay() model.Day {
	days := model.WeekOrder()
	if m.cursor < 0 || m.cursor >= len(days) {
		return model.DayGeneral
	}
	return days[m.cursor]
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.Store.ListDay(string(m.selectedDay()))
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	i := m.taskCursor
	if i < 0 {
		i = 0
	}
	if i >= len(tasks) {
		i = len(tasks) - 1
	}
	return tasks[i], true
}

func (m *Model) focusDay(day model.Day) {
	for i, d := range model.WeekOrder() {
		if d == day {
			m.cursor = i
			return
		}
	}
}

func (m *Model) syncTable() {
	rows := make([]table.Row, 0, 8)
	for _, dt := range m.Store.ListAll() {
		done := 0
		for _, t := range dt.Tasks {
			if t.Done() {
				done++
			}
		}
		rows = append(rows, table.Row{dt.Day.Capitalized(), strconv.Itoa(len(dt.Tasks)), strconv.Itoa(done)})
	}
	m.weekTable.SetRows(rows)
	if m.cursor < len(rows) {
		m.weekTable.SetCursor(m.cursor)
	}

	count := m.Store.Count(string(m.selectedDay()))
	if m.taskCursor >= count {
		m.taskCursor = count - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}
