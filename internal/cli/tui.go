package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/pipeline"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// previewTerms is how many terms the browser previews.
const previewTerms = 10

// outcomeMsg delivers a finished invocation to the browser.
type outcomeMsg pipeline.Outcome

// waitOutcome turns an invocation channel into a bubbletea command.
func waitOutcome(ch <-chan pipeline.Outcome) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(<-ch)
	}
}

// =============================================================================
// CorpusBrowserModel - Interactive corpus selection with live preview
// =============================================================================

// CorpusBrowserModel lists corpora and previews the weights of the one under
// the cursor. Moving the cursor starts a new invocation; results of older
// invocations that finish late are discarded.
type CorpusBrowserModel struct {
	Corpora  []string
	Cursor   int
	Offset   int
	Height   int
	Selected string

	ctx     context.Context
	runner  *pipeline.Runner
	opts    pipeline.Options
	display *pipeline.Display
	waiting bool
}

// NewCorpusBrowserModel creates a browser over corpora. Each preview runs
// runner with opts for the corpus under the cursor.
func NewCorpusBrowserModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, corpora []string) CorpusBrowserModel {
	return CorpusBrowserModel{
		Corpora: corpora,
		Height:  15,
		ctx:     ctx,
		runner:  runner,
		opts:    opts,
		display: &pipeline.Display{},
	}
}

// preview starts an invocation for the corpus under the cursor.
func (m *CorpusBrowserModel) preview() tea.Cmd {
	if len(m.Corpora) == 0 {
		return nil
	}
	opts := m.opts
	opts.CorpusID = m.Corpora[m.Cursor]
	ch := m.runner.Start(m.ctx, opts)
	m.waiting = true
	return waitOutcome(ch)
}

func (m CorpusBrowserModel) Init() tea.Cmd {
	return m.preview()
}

func (m CorpusBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		m.display.Offer(pipeline.Outcome(msg))
		m.waiting = m.runner.State() == pipeline.StateFetching || m.runner.State() == pipeline.StateScaling
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
				return m, m.preview()
			}
		case "down", "j":
			if m.Cursor < len(m.Corpora)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
				return m, m.preview()
			}
		case "enter":
			if len(m.Corpora) > 0 {
				m.Selected = m.Corpora[m.Cursor]
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// Shown returns the result currently previewed, if any.
func (m CorpusBrowserModel) Shown() (*pipeline.Result, bool) {
	return m.display.Current()
}

func (m CorpusBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Corpus"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Corpora))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + m.Corpora[i]))
		} else {
			list.WriteString(listNormalStyle.Render("  " + m.Corpora[i]))
		}
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Corpora))))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "   ", m.previewView()))
	return b.String()
}

func (m CorpusBrowserModel) previewView() string {
	var b strings.Builder

	if err := m.display.Err(); err != nil {
		b.WriteString(listErrorStyle.Render(iconError + " " + cerrors.UserMessage(err)))
		b.WriteString("\n")
	}

	result, ok := m.display.Current()
	if !ok {
		if m.waiting {
			b.WriteString(listDimStyle.Render("loading..."))
		}
		return b.String()
	}

	peak := 0.0
	for _, p := range result.Request.List {
		peak = max(peak, p.Weight)
	}
	rows := [][]string{}
	for i, p := range result.Request.List {
		if i == previewTerms {
			break
		}
		rows = append(rows, []string{p.Term, trimWeight(p.Weight), bar(p.Weight, peak)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(result.CorpusID, "Weight", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 1:
				return StyleNumber
			case col == 2:
				return styleBar
			}
			return StyleValue
		})
	b.WriteString(t.Render())

	if m.waiting {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("loading..."))
	}
	return b.String()
}

// browse runs the interactive browser and, once a corpus is picked, prints
// its weights like the non-interactive cloud command.
func (c *CLI) browse(cmd *cobra.Command, opts cloudOptions) error {
	ctx := cmd.Context()

	src, err := c.openSource(ctx, opts.source)
	if err != nil {
		return err
	}
	lister, ok := src.(source.Lister)
	if !ok {
		source.Close(src)
		return cerrors.New(cerrors.ErrCodeInvalidInput, "source %q cannot list its corpora; pass a corpus name", c.sourceKind(opts.source))
	}
	corpora, err := lister.Corpora(ctx)
	if err != nil {
		source.Close(src)
		return err
	}
	if len(corpora) == 0 {
		source.Close(src)
		printWarning(cmd.OutOrStdout(), "no corpora")
		return nil
	}

	model := NewCorpusBrowserModel(ctx, c.newRunner(src), c.pipelineOptions(cmd, "", opts), corpora)
	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
	source.Close(src)
	if err != nil {
		return err
	}

	chosen := final.(CorpusBrowserModel).Selected
	if chosen == "" {
		return nil
	}
	return c.runCloud(cmd, chosen, opts)
}
