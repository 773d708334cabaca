package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"hslc/color"
	"hslc/common"
	"hslc/config"
	"hslc/css"
	"hslc/state"
)

// Shell converts colors line by line printing results to out and problems to
// errOut. Parse errors never end the session.
type Shell struct {
	parser    *css.Parser
	formatter *color.Formatter
	target    common.Space

	out, errOut io.Writer
	prompt      string
	colored     bool
	// print parser trace for every line
	explain bool

	rpt *config.Report
	log *zap.Logger
}

// NewShell creates shell from prepared environment (see
// state.LocalEnv.PrepareEngine). When colored is set and configuration allows
// error kinds are highlighted.
func NewShell(env *state.LocalEnv, target common.Space, out, errOut io.Writer, colored bool) *Shell {
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Shell{
		parser:    env.Parser,
		formatter: env.Formatter,
		target:    target,
		out:       out,
		errOut:    errOut,
		rpt:       env.Rpt,
		log:       log.Named("shell"),
	}
	if env.Cfg != nil {
		s.prompt = env.Cfg.Shell.Prompt
		s.colored = colored && env.Cfg.Shell.ColorErrors
	}
	return s
}

// Convert parses single color and renders it in target notation.
func (s *Shell) Convert(line string) (string, error) {
	s.rpt.Record("input", line)
	if s.explain {
		fmt.Fprint(s.errOut, s.parser.Explain(line))
	}

	c, err := s.parser.Parse(line)
	if err != nil {
		s.rpt.Record("error", err.Error())
		return "", err
	}
	if !c.Valid() {
		s.log.Warn("Color channels are out of range, result may be meaningless", zap.String("input", line), zap.Stringer("color", c))
	}

	res, err := s.formatter.Format(c, s.target)
	if err != nil {
		s.rpt.Record("error", err.Error())
		return "", err
	}
	s.rpt.Record("output", res)
	return res, nil
}

// ConvertAll converts every argument, failures are reported as they happen and
// returned together.
func (s *Shell) ConvertAll(args []string) (err error) {
	for _, arg := range args {
		res, e := s.Convert(arg)
		if e != nil {
			s.report(e)
			err = multierr.Append(err, fmt.Errorf("unable to convert %q: %w", arg, e))
			continue
		}
		fmt.Fprintln(s.out, res)
	}
	return err
}

// Loop reads colors from in until EOF or cancellation. Blank lines are
// skipped. Prompt is printed only for interactive sessions.
func (s *Shell) Loop(ctx context.Context, in io.Reader, interactive bool) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	// NOTE: reader goroutine may stay blocked in Read after cancellation,
	// there is no portable way to interrupt console read. We are exiting
	// anyway.
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()

	count := 0
	defer func() {
		s.log.Debug("Session ended", zap.Int("lines", count))
	}()

	for {
		if interactive {
			fmt.Fprint(s.out, s.prompt)
		}
		select {
		case <-ctx.Done():
			if interactive {
				fmt.Fprintln(s.out)
			}
			s.log.Debug("Session interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				if interactive {
					fmt.Fprintln(s.out)
				}
				if err := <-errc; err != nil {
					return fmt.Errorf("unable to read input: %w", err)
				}
				return nil
			}
			if len(strings.TrimSpace(line)) == 0 {
				continue
			}
			count++
			res, err := s.Convert(line)
			if err != nil {
				s.report(err)
				continue
			}
			fmt.Fprintln(s.out, res)
		}
	}
}

// report prints error prefixed with its kind.
func (s *Shell) report(err error) {
	kind := "Error"
	var perr *css.Error
	if errors.As(err, &perr) {
		kind = perr.Kind.String()
	}
	if s.colored {
		kind = "\033[1;31m" + kind + "\033[0m"
	}
	fmt.Fprintf(s.errOut, "%s: %s\n", kind, err.Error())
	s.log.Debug("Unable to convert color", zap.Error(err))
}
