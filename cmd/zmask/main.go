package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zmask/internal/cli"
	"github.com/zarlcorp/zmask/internal/config"
	"github.com/zarlcorp/zmask/internal/identity"
	"github.com/zarlcorp/zmask/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zmask"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cfg, err := cli.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "zmask: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}
	cli.SetupLogging(cfg, os.Stderr)

	if cmd, args, ok := command(os.Args[1:]); ok {
		if err := runCLI(ctx, cfg, cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "zmask: %v\n", err)
			_ = app.Close()
			os.Exit(1)
		}
		_ = app.Close()
		return
	}

	if err := runTUI(cfg); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

// command returns the subcommand, if any, and the arguments that follow
// it. --config FILE and --config=FILE are consumed wherever they appear.
func command(args []string) (string, []string, bool) {
	var rest []string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config":
			i++
		case strings.HasPrefix(args[i], "--config="):
		default:
			rest = append(rest, args[i])
		}
	}
	if len(rest) == 0 {
		return "", nil, false
	}
	return rest[0], rest[1:], true
}

func runCLI(ctx context.Context, cfg config.Config, cmd string, args []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch cmd {
	case "version":
		fmt.Printf("zmask %s\n", version)
		return nil
	case "generate":
		return cli.CmdGenerate(cfg, args, os.Stdout)
	case "mask":
		return cli.CmdMask(cfg, args, os.Stdout)
	case "identity":
		return cli.CmdIdentity(cfg, args, os.Stdout)
	case "list":
		return cli.CmdList(args, os.Stdout)
	case "forget":
		if len(args) < 1 {
			return fmt.Errorf("usage: zmask forget <id>")
		}
		return cli.CmdForget(args[0], os.Stdout)
	case "config":
		return cli.CmdConfig(cfg, os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runTUI(cfg config.Config) error {
	src, err := cfg.Source()
	if err != nil {
		return err
	}
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		return err
	}

	dataDir := cli.DataDir()
	gen := identity.New(src, opts...)
	firstRun := cli.IsFirstRun(dataDir)

	m := tui.New(version, dataDir, gen, firstRun)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
