// Package tui renders a burn in progress: a thrust chart that grows as
// the solver steps, a stats panel for the current instant, and a final
// status line once the run terminates.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/burnsim/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const historyLimit = 240

// Feed adapts the solver's observer callback to the program's message
// loop. Frames are dropped rather than blocking the solver when the
// display falls behind.
type Feed struct {
	ch chan sim.Sample
}

func NewFeed() *Feed {
	return &Feed{ch: make(chan sim.Sample, 64)}
}

func (f *Feed) OnStep(s sim.Sample) {
	select {
	case f.ch <- s:
	default:
	}
}

type sampleMsg sim.Sample

type doneMsg struct {
	res *sim.Result
	err error
}

// Model is the live view. Run the solver in its own goroutine and hand
// its completion to Done; pressing q cancels the solver's context and
// the view exits once the result arrives.
type Model struct {
	cancel context.CancelFunc
	feed   *Feed
	done   chan doneMsg

	latest  sim.Sample
	history []float64
	samples int

	result   *sim.Result
	finished bool
	quitting bool

	width int
}

func NewModel(cancel context.CancelFunc, feed *Feed) *Model {
	return &Model{
		cancel:  cancel,
		feed:    feed,
		done:    make(chan doneMsg, 1),
		history: make([]float64, 0, historyLimit),
		width:   80,
	}
}

// Done reports the finished run to the view. Safe to call from the
// solver goroutine.
func (m *Model) Done(res *sim.Result, err error) {
	m.done <- doneMsg{res: res, err: err}
}

func (m *Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-m.feed.ch:
			return sampleMsg(s)
		case d := <-m.done:
			return d
		}
	}
}

func (m *Model) Init() tea.Cmd { return m.waitEvent() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "escape":
			if m.finished {
				return m, tea.Quit
			}
			m.quitting = true
			m.cancel()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case sampleMsg:
		m.latest = sim.Sample(msg)
		m.samples++
		m.history = append(m.history, m.latest.Thrust)
		if len(m.history) > historyLimit {
			m.history = m.history[1:]
		}
		return m, m.waitEvent()

	case doneMsg:
		m.result = msg.res
		m.finished = true
		// Drain frames that arrived after the terminal step.
		for {
			select {
			case s := <-m.feed.ch:
				m.latest = s
				m.samples++
			default:
				if m.quitting {
					return m, tea.Quit
				}
				return m, nil
			}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + cyan.Render("burnsim") + "  " + dim.Render("live burn") + "\n")
	b.WriteString("  " + dimmer.Render(strings.Repeat("─", 60)) + "\n\n")

	if len(m.history) >= 2 {
		w := m.width - 14
		if w > 70 {
			w = 70
		}
		if w < 20 {
			w = 20
		}
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(8),
			asciigraph.Width(w),
			asciigraph.Caption("thrust (N)"),
		)
		for _, line := range strings.Split(chart, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("  " + dim.Render("waiting for ignition...") + "\n\n")
	}

	s := m.latest
	b.WriteString(fmt.Sprintf("  %s %s    %s %s\n",
		dim.Render("t"), white.Render(fmt.Sprintf("%7.2f s", s.Time)),
		dim.Render("thrust"), white.Render(fmt.Sprintf("%9.1f N", s.Thrust))))
	b.WriteString(fmt.Sprintf("  %s %s    %s %s\n",
		dim.Render("port"), white.Render(fmt.Sprintf("%7.4f m", s.PortRadius)),
		dim.Render("p_c"), white.Render(fmt.Sprintf("%9.2f bar", s.ChamberPressure/1e5))))

	of := "   --"
	if !s.OFUndefined {
		of = fmt.Sprintf("%5.2f", s.OFRatio)
	}
	isp := "    --"
	if !s.IspUndefined {
		isp = fmt.Sprintf("%6.1f s", s.Isp)
	}
	b.WriteString(fmt.Sprintf("  %s %s      %s %s\n",
		dim.Render("O/F"), white.Render(of),
		dim.Render("Isp"), white.Render(isp)))

	b.WriteString("\n")
	b.WriteString("  " + m.statusLine() + "\n")
	b.WriteString("\n  " + dim.Render("q quit") + "\n")

	return b.String()
}

func (m *Model) statusLine() string {
	if !m.finished {
		if m.quitting {
			return yellow.Render("cancelling...")
		}
		return green.Render("burning") + dim.Render(fmt.Sprintf("  %d samples", m.samples))
	}
	if m.result == nil {
		return red.Render("no result")
	}
	st := m.result.Status
	label := st.String()
	switch st {
	case sim.StatusError:
		return red.Render(fmt.Sprintf("error: %v", m.result.Err)) + dim.Render("  press q to exit")
	case sim.StatusCancelled:
		return yellow.Render(label) + dim.Render("  press q to exit")
	default:
		return green.Render(label) + dim.Render("  press q to exit")
	}
}
