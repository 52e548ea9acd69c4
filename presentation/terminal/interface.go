package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"business_selector/application/dispatcher"
	"business_selector/domain/interfaces"
	"business_selector/infrastructure/browser"
	"business_selector/infrastructure/config"
	"business_selector/infrastructure/storage"
	"business_selector/presentation/steps"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// TerminalInterface runs step lines typed on stdin against one browser session
type TerminalInterface struct {
	session    interfaces.Session
	vocabulary []steps.Step
	logger     *logrus.Logger
	reader     *bufio.Reader
	out        io.Writer
}

func NewTerminalInterface() (*TerminalInterface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := cfg.NewLogger()
	if cfg.DotEnvErr != nil {
		logger.Debugf(".env file not loaded, using environment variables: %v", cfg.DotEnvErr)
	}
	logger.Debugf("Configuration: %s", cfg)

	session, err := browser.NewSession(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	fs := afero.NewOsFs()
	store := storage.NewLookupStore(fs, cfg.Context, logger)
	d := dispatcher.NewDispatcher(session, store, cfg.Context, fs, logger)

	return newTerminal(session, d, logger, os.Stdin, os.Stdout), nil
}

func newTerminal(session interfaces.Session, d *dispatcher.Dispatcher, logger *logrus.Logger, in io.Reader, out io.Writer) *TerminalInterface {
	return &TerminalInterface{
		session:    session,
		vocabulary: steps.Vocabulary(d),
		logger:     logger,
		reader:     bufio.NewReader(in),
		out:        out,
	}
}

// Run - reads steps until quit, end of input or ctx is cancelled
func (t *TerminalInterface) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, "Business selector steps")
	fmt.Fprintln(t.out, "=======================")
	fmt.Fprintln(t.out, "Type a step, or 'quit' to exit")
	fmt.Fprintln(t.out)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(t.out, "> ")
		input, err := t.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF

		input = strings.TrimSpace(input)
		if input == "" {
			if eof {
				return nil
			}
			continue
		}

		if input == "quit" || input == "exit" || input == "q" {
			fmt.Fprintln(t.out, "Bye!")
			return nil
		}

		t.runStep(ctx, input)
		if eof {
			return nil
		}
	}
}

func (t *TerminalInterface) runStep(ctx context.Context, line string) {
	// Gherkin keywords are accepted but not required
	for _, keyword := range []string{"Given ", "When ", "Then ", "And ", "But "} {
		if strings.HasPrefix(line, keyword) {
			line = strings.TrimPrefix(line, keyword)
			break
		}
	}

	step, args, ok := steps.Match(t.vocabulary, line)
	if !ok {
		fmt.Fprintf(t.out, "Unknown step: %s\n\n", line)
		return
	}

	if err := steps.Invoke(ctx, step, args); err != nil {
		t.logger.Debugf("Step %q failed: %v", line, err)
		fmt.Fprintf(t.out, "FAIL: %v\n\n", err)
		return
	}
	fmt.Fprintf(t.out, "ok\n\n")
}

func (t *TerminalInterface) Close() error {
	return t.session.Close()
}
