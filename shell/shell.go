// Package shell implements the interactive command front end over a
// [filesystem.FileSystem]. It is the only layer that turns errors into
// user-visible messages.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"github.com/brettbedarf/ramvfs/config"
	"github.com/brettbedarf/ramvfs/filesystem"
	"github.com/brettbedarf/ramvfs/internal/util"
)

// ErrExit is returned by Exec after the exit command
var ErrExit = errors.New("exit")

// ErrUsage marks a command invoked with bad arguments
var ErrUsage = errors.New("usage")

// Shell holds one interactive session over a filesystem.
//
// NOTE: Shell is **not** thread-safe; run one per goroutine.
type Shell struct {
	fs      *filesystem.FileSystem
	session *filesystem.Session
	cfg     *config.Config
	out     io.Writer
	history []string
	logger  zerolog.Logger
}

// New creates a shell writing its output to out, starting at the root
func New(fs *filesystem.FileSystem, out io.Writer) *Shell {
	session := fs.NewSession()
	return &Shell{
		fs:      fs,
		session: session,
		cfg:     fs.Config(),
		out:     out,
		logger:  util.GetLogger("Shell").With().Stringer("session", session.ID()).Logger(),
	}
}

// Session exposes the shell's current directory state
func (s *Shell) Session() *filesystem.Session {
	return s.session
}

// Prompt renders the current path followed by the configured prompt suffix
func (s *Shell) Prompt() string {
	return s.session.Path() + s.cfg.Prompt
}

// History returns the most recent command lines, oldest first
func (s *Shell) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Shell) record(line string) {
	if s.cfg.HistorySize <= 0 {
		return
	}
	s.history = append(s.history, line)
	if over := len(s.history) - s.cfg.HistorySize; over > 0 {
		s.history = s.history[over:]
	}
}

// Exec runs a single command line. Command failures are printed as
// "Error: <msg>" and also returned; ErrExit is returned without output.
func (s *Shell) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	s.record(line)

	args, err := shlex.Split(line)
	if err != nil {
		s.printError(err)
		return err
	}
	return s.ExecArgs(args)
}

// ExecArgs runs a command that is already split into arguments, reporting
// failures like [Shell.Exec]. It does not record history.
func (s *Shell) ExecArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		err := fmt.Errorf("unknown command: %s (try 'help')", args[0])
		s.printError(err)
		return err
	}

	s.logger.Debug().Str("cmd", cmd.name).Strs("args", args[1:]).Msg("Exec")
	if err := cmd.run(s, args[1:]); err != nil {
		if errors.Is(err, ErrExit) {
			return err
		}
		s.logger.Debug().Err(err).Str("cmd", cmd.name).Msg("Command failed")
		s.printError(err)
		return err
	}
	return nil
}

// Run reads command lines from in until EOF, the exit command, or ctx is
// done. A prompt is printed before each line. Command failures do not stop
// the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.logger.Info().Msg("Shell started")
	defer s.logger.Info().Msg("Shell stopped")

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := s.Exec(scanner.Text()); errors.Is(err, ErrExit) {
			return nil
		}
	}
}

// RunAsync runs the shell in a goroutine and reports its result on the
// returned channel.
func (s *Shell) RunAsync(ctx context.Context, in io.Reader) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- s.Run(ctx, in)
		close(done)
	}()

	return done
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) printError(err error) {
	s.printf("Error: %s\n", err)
}
