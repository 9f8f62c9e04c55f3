package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/forkup/internal/ui/styles"
)

type progressUpdate struct {
	current int
	message string
}

// Bar shows determinate progress, e.g. "[████░░░░]  40% acme/widget".
type Bar struct {
	program   *tea.Program
	updateCh  chan progressUpdate
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	disabled  bool
	total     int
	current   int
	message   string
}

type barModel struct {
	progress progress.Model
	total    int
	current  int
	message  string
	updateCh chan progressUpdate
}

func (m barModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m barModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updateCh
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, m.waitForUpdate()
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m barModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(render(m.progress, m.current, m.total, m.message))
}

func render(bar progress.Model, current, total int, message string) string {
	percent := 0.0
	if total > 0 {
		percent = min(float64(current)/float64(total), 1)
	}
	return fmt.Sprintf("%s %3d%% %s", bar.ViewAs(percent), int(percent*100), message)
}

// NewBar creates a progress bar for total steps.
func NewBar(total int, message string) *Bar {
	return &Bar{
		updateCh: make(chan progressUpdate, 10),
		done:     make(chan struct{}),
		total:    total,
		message:  message,
		disabled: !Enabled(),
	}
}

// Start begins drawing the bar.
func (p *Bar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning || p.disabled {
		return
	}

	bar := progress.New(
		progress.WithWidth(30),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)

	p.program = newProgram(barModel{
		progress: bar,
		total:    p.total,
		current:  p.current,
		message:  p.message,
		updateCh: p.updateCh,
	})
	p.isRunning = true

	go func() {
		_, _ = p.program.Run()
		close(p.done)
	}()
}

// Set updates the current step and message.
func (p *Bar) Set(current int, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.message = message
	if !p.isRunning {
		return
	}

	select {
	case p.updateCh <- progressUpdate{current: current, message: message}:
	default:
	}
}

// Current returns the last step passed to Set.
func (p *Bar) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Total returns the number of steps.
func (p *Bar) Total() int {
	return p.total
}

// Stop removes the bar from the terminal.
func (p *Bar) Stop() {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = false
	close(p.updateCh)
	p.mu.Unlock()

	p.program.Quit()

	select {
	case <-p.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(os.Stderr, "\r\033[K")
}
