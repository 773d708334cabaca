// Package convert implements program commands: color conversion either from
// command line arguments or interactively and color wheel output.
package convert

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"hslc/common"
	"hslc/config"
	"hslc/state"
)

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	target, err := selectTarget(env.Cfg.Conversion.Target, cmd)
	if err != nil {
		return err
	}

	sh := NewShell(env, target, os.Stdout, os.Stderr, config.EnableColorOutput(os.Stderr))
	sh.explain = cmd.Bool("explain")

	if cmd.NArg() > 0 {
		log.Debug("Converting arguments", zap.Int("count", cmd.NArg()), zap.Stringer("to", target))
		return sh.ConvertAll(cmd.Args().Slice())
	}

	interactive := config.IsInteractive(os.Stdin)
	log.Debug("Session starting", zap.Stringer("to", target), zap.Bool("interactive", interactive))
	defer func(start time.Time) {
		log.Debug("Session completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return sh.Loop(ctx, os.Stdin, interactive)
}

// selectTarget returns output notation requested on command line or
// configured default.
func selectTarget(def common.Space, cmd *cli.Command) (common.Space, error) {
	if !cmd.IsSet("to") {
		return def, nil
	}
	target, err := common.ParseSpace(strings.ToLower(cmd.String("to")))
	if err != nil {
		return def, fmt.Errorf("unknown output notation (supported: %s): %w", strings.Join(common.SpaceNames(), ", "), err)
	}
	return target, nil
}
