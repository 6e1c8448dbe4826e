package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"interviewer/internal/domain"
	"interviewer/internal/evaluator"
	"interviewer/internal/summarizer"
)

// QuestionSource is the TUI-facing subset of the question generator.
type QuestionSource interface {
	Generate(jobCtx domain.JobContext, history []domain.HistoryEntry, category, difficulty string) domain.Question
}

// HistorySink receives completed rounds for durable logging.
type HistorySink interface {
	Append(e domain.HistoryEntry) error
}

type state int

const (
	stateSetup state = iota
	stateQuestion
	stateFeedback
)

var (
	categories   = []string{"All", "Technical", "Behavioral", "Situational"}
	difficulties = []string{"All", "Easy", "Medium", "Hard"}
)

// Model is the Bubble Tea model for the interview flow: pick a position,
// answer generated questions, read the evaluation, repeat.
type Model struct {
	source    QuestionSource
	sink      HistorySink
	condenser *summarizer.Frequency
	maxSum    int

	library []domain.JobPosting
	jobCtx  *domain.JobContext
	summary string

	state    state
	input    textinput.Model
	answer   textarea.Model
	viewport viewport.Model

	question *domain.Question
	history  []domain.HistoryEntry
	catIdx   int
	diffIdx  int

	questionCount int
	totalScore    int
	status        string
	ready         bool
}

// New creates the interview TUI. A non-nil jobCtx (from an uploaded or
// pasted description) skips the library setup screen.
func New(source QuestionSource, sink HistorySink, condenser *summarizer.Frequency, maxSummarySentences int, library []domain.JobPosting, jobCtx *domain.JobContext) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Position number, then Enter"
	ti.Focus()
	ta := textarea.New()
	ta.Placeholder = "Type your response here... Aim for 50+ words with specific examples."
	ta.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		source:    source,
		sink:      sink,
		condenser: condenser,
		maxSum:    maxSummarySentences,
		library:   library,
		input:     ti,
		answer:    ta,
		viewport:  vp,
		state:     stateSetup,
		status:    "Select a position to begin.",
	}
	if jobCtx != nil {
		m.setJobContext(*jobCtx)
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and advances the interview flow.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := boxStyle.GetFrameSize()
		reserved := 6 + fh // header, summary, filters, status, spacers
		vh := msg.Height - reserved - m.answer.Height()
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		m.answer.SetWidth(maxInt(20, msg.Width-4))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateSetup:
			return m.updateSetup(msg)
		case stateQuestion:
			return m.updateQuestion(msg)
		case stateFeedback:
			return m.updateFeedback(msg)
		}
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		choice := strings.TrimSpace(m.input.Value())
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(m.library) {
			m.status = fmt.Sprintf("Enter a number between 1 and %d.", len(m.library))
			return m, nil
		}
		jd := m.library[n-1]
		m.setJobContext(domain.JobContext{Title: jd.Title, Company: jd.Company, Description: jd.Description})
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n":
		m.nextQuestion()
		return m, nil
	case "ctrl+g":
		m.catIdx = (m.catIdx + 1) % len(categories)
		m.status = "Category: " + categories[m.catIdx]
		return m, nil
	case "ctrl+f":
		m.diffIdx = (m.diffIdx + 1) % len(difficulties)
		m.status = "Difficulty: " + difficulties[m.diffIdx]
		return m, nil
	case "ctrl+s":
		m.submit()
		return m, nil
	}
	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m Model) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.nextQuestion()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setJobContext(jc domain.JobContext) {
	m.jobCtx = &jc
	m.summary = m.condenser.Summarize(jc.Description, m.maxSum)
	m.nextQuestion()
}

func (m *Model) nextQuestion() {
	if m.jobCtx == nil {
		return
	}
	q := m.source.Generate(*m.jobCtx, m.history, categories[m.catIdx], difficulties[m.diffIdx])
	m.question = &q
	m.questionCount++
	m.answer.Reset()
	m.answer.Focus()
	m.state = stateQuestion
	m.status = "Answer, then Ctrl+S to submit. Ctrl+N skips, Ctrl+G/Ctrl+F change filters."
}

func (m *Model) submit() {
	if m.question == nil {
		return
	}
	response := m.answer.Value()
	if strings.TrimSpace(response) == "" {
		m.status = "Please provide a response before submitting."
		return
	}
	eval := evaluator.Evaluate(m.question.Question, response, m.jobCtx)
	entry := domain.HistoryEntry{
		Timestamp:  time.Now(),
		Question:   m.question.Question,
		Category:   m.question.Category,
		Response:   response,
		Score:      eval.Score,
		Assessment: eval.OverallAssessment,
	}
	m.history = append(m.history, entry)
	m.totalScore += eval.Score
	m.status = "Press n for the next question, q to quit."
	if m.sink != nil {
		if err := m.sink.Append(entry); err != nil {
			m.status = "History log failed: " + err.Error()
		}
	}
	m.viewport.SetContent(renderEvaluation(eval))
	m.viewport.GotoTop()
	m.state = stateFeedback
}

// View renders the current screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("Mock Interview Agent")
	switch m.state {
	case stateSetup:
		var b strings.Builder
		b.WriteString(header + "\n\n")
		for i, jd := range m.library {
			b.WriteString(fmt.Sprintf("  %d. %s at %s\n", i+1, jd.Title, jd.Company))
		}
		b.WriteString("\n" + boxStyle.Render(m.input.View()))
		b.WriteString("\n" + statusStyle.Render(m.status))
		return b.String()
	case stateQuestion:
		job := fmt.Sprintf("Interviewing for: %s at %s", m.jobCtx.Title, m.jobCtx.Company)
		filters := fmt.Sprintf("Category: %s  Difficulty: %s  %s", categories[m.catIdx], difficulties[m.diffIdx], m.stats())
		question := fmt.Sprintf("Question #%d [%s/%s]\n\n%s", m.questionCount, m.question.Category, m.question.Difficulty, m.question.Question)
		return strings.Join([]string{
			header,
			dimStyle.Render(job),
			dimStyle.Render(m.summary),
			dimStyle.Render(filters),
			boxStyle.Render(question),
			m.answer.View(),
			statusStyle.Render(m.status),
		}, "\n")
	default:
		return strings.Join([]string{
			header,
			dimStyle.Render(m.stats()),
			boxStyle.Render(m.viewport.View()),
			statusStyle.Render(m.status),
		}, "\n")
	}
}

func (m Model) stats() string {
	if len(m.history) == 0 {
		return fmt.Sprintf("Questions: %d", m.questionCount)
	}
	avg := float64(m.totalScore) / float64(len(m.history))
	return fmt.Sprintf("Questions: %d  Average Score: %.1f%%", m.questionCount, avg)
}

func renderEvaluation(eval domain.Evaluation) string {
	var b strings.Builder
	style := scoreBad
	switch {
	case eval.Score >= 70:
		style = scoreGood
	case eval.Score >= 50:
		style = scoreMid
	}
	b.WriteString(style.Render(fmt.Sprintf("Score: %d%%", eval.Score)) + "\n")
	b.WriteString(eval.OverallAssessment + "\n\n")
	if len(eval.Strengths) > 0 {
		b.WriteString("Strengths:\n")
		for _, s := range eval.Strengths {
			b.WriteString("  - " + s + "\n")
		}
		b.WriteString("\n")
	}
	if len(eval.Improvements) > 0 {
		b.WriteString("Areas for Improvement:\n")
		for _, s := range eval.Improvements {
			b.WriteString("  - " + s + "\n")
		}
		b.WriteString("\n")
	}
	if eval.FollowUp != "" {
		b.WriteString("Follow-up Question: " + eval.FollowUp + "\n\n")
	}
	b.WriteString("Analysis:\n" + eval.Reasoning + "\n")
	return b.String()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	scoreGood   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	scoreMid    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	scoreBad    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
