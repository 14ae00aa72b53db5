package site

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pdc/config"
	"pdc/state"
)

//go:embed default.css
var defaultStylesheet []byte

// Run is the action of the generate command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	if env.Cfg.Book.ID == "" {
		return errors.New("no book id has been configured (book.id)")
	}

	dst := cmd.Args().Get(0)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	env.Layout, err = config.ParseOutputLayout(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output layout requested, switching to tree", zap.Error(err))
		env.Layout = config.OutputLayoutTree
	}
	env.Overwrite = cmd.Bool("overwrite")

	env.DefaultStyle = defaultStylesheet
	if env.Cfg.Site.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Site.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Site.StylesheetPath, err)
		}
		env.DefaultStyle = data
	}

	log.Info("Generation starting",
		zap.String("book", env.Cfg.Book.ID), zap.String("destination", dst), zap.Stringer("layout", env.Layout))
	defer func(start time.Time) {
		log.Info("Generation completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return generate(ctx, dst, log)
}
