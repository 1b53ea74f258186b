package interactive

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Session runs the confirm demo in a Bubble Tea program.
type Session struct {
	config  Config
	model   *model
	program *tea.Program
}

// NewSession creates a new session.
func NewSession(cfg Config) (*Session, error) {
	return &Session{config: cfg.withDefaults()}, nil
}

// Run starts the Bubble Tea application loop and blocks until the user quits
// or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.model = newModel(ctx, s.config)

	var options []tea.ProgramOption
	options = append(options, tea.WithAltScreen(), tea.WithReportFocus())
	if s.config.Mouse {
		options = append(options, tea.WithMouseCellMotion())
	}
	if s.config.Stdin != nil {
		options = append(options, tea.WithInput(s.config.Stdin))
	}
	if s.config.Stdout != nil {
		options = append(options, tea.WithOutput(s.config.Stdout))
	}

	s.program = tea.NewProgram(s.model, options...)

	log := s.config.Logger
	progDone := make(chan error, 1)
	go func() { _, runErr := s.program.Run(); progDone <- runErr }()

	select {
	case <-ctx.Done():
		log.Debug("context cancelled, quitting program")
		s.program.Quit()
		<-progDone
		return ctx.Err()
	case err := <-progDone:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Debug("program finished", zap.Int("presses", s.model.presses))
		return err
	}
}

// Presses returns the number of confirmed presses in the last Run.
func (s *Session) Presses() int {
	if s.model == nil {
		return 0
	}
	return s.model.presses
}

// Quit signals the Bubble Tea program to quit.
func (s *Session) Quit() {
	if s.program != nil {
		s.program.Quit()
	}
}
