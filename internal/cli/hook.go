package cli

import (
	"errors"
	"io"
	"os"

	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/handler"
	"github.com/ariel-frischer/claude-notify/internal/hook"
	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runHook handles one hook event from stdin. Only unreadable or malformed
// input is an error; every policy outcome and every delivery failure exits 0
// so Claude Code is never blocked.
func runHook(cmd *cobra.Command, d deps) error {
	stdin := cmd.InOrStdin()
	if d.isTerminal(stdin) {
		return nil
	}

	input, err := hook.Read(stdin)
	if errors.Is(err, hook.ErrEmptyInput) {
		return nil
	}
	if err != nil {
		return shared.WithExitCode(shared.ExitFailure, err)
	}

	cfg, path, cfgErr := shared.LoadConfig(cmd)
	var envErr error
	if cfgErr != nil {
		// keep .env and environment overrides; only the file is dropped
		cfg, envErr = config.LoadWithoutFile(path)
		if envErr != nil {
			cfg = config.Defaults()
		}
	}

	logger, closer := shared.NewLogger(cfg)
	defer closer.Close()

	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Str("path", path).Msg("config file invalid, ignoring it")
	}
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("environment config invalid, using defaults")
	}
	logger.Debug().Str("event", string(input.Event)).Msg("hook event received")

	h := handler.New(handler.Options{
		Config:     cfg,
		Prober:     d.newProbe(logger),
		Dispatcher: notify.NewDispatcher(d.newRegistry(cfg), cfg.SendTimeout(), logger),
		Logger:     logger,
	})
	res := h.Handle(cmd.Context(), input)

	logger.Debug().Str("outcome", string(res.Outcome)).Msg("hook event handled")
	return nil
}

// stdinIsTerminal reports whether r is an interactive terminal. A hook run
// by hand without piped input would otherwise block on the read.
func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
