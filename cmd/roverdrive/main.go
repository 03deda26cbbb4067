// Package main is a console for driving a two-motor differential-drive rover
// through an L298N H-bridge: an automated motor test sequence and an
// interactive manual mode.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/roverworks/roverdrive/board"
	"github.com/roverworks/roverdrive/config"
	"github.com/roverworks/roverdrive/drive"
	"github.com/roverworks/roverdrive/motor/l298n"
)

var logger = golog.NewDevelopmentLogger("roverdrive")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ConfigFile string `flag:"config,usage=rover config file (JSON); omit for the built-in wiring"`
	Mode       string `flag:"mode,usage=run mode: test or manual (prompts when unset)"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	cfg := config.Default()
	if argsParsed.ConfigFile != "" {
		cfg, err = config.Read(argsParsed.ConfigFile)
		if err != nil {
			return err
		}
	}

	b, err := board.NewBoard(cfg.Board, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, b.Close())
	}()

	left, err := l298n.NewMotor(b, cfg.Left, logger)
	if err != nil {
		return err
	}
	right, err := l298n.NewMotor(b, cfg.Right, logger)
	if err != nil {
		return err
	}

	controller := drive.NewController(left, right, logger)
	// guaranteed stop and release on every exit path, interrupt included
	defer func() {
		err = multierr.Combine(err, controller.Close(context.Background()))
	}()

	logger.Infow("rover initialized",
		"board", cfg.Board,
		"left", cfg.Left.Name,
		"right", cfg.Right.Name,
	)

	mode := argsParsed.Mode
	if mode == "" {
		mode, err = promptMode(ctx)
		if err != nil {
			return err
		}
	}

	switch mode {
	case "test":
		return controller.RunTestSequence(ctx)
	case "manual":
		return controller.RunManualShell(ctx)
	}
	return errors.Errorf("unknown mode %q (want test or manual)", mode)
}

// promptMode asks the operator to pick a run mode on launch.
func promptMode(ctx context.Context) (string, error) {
	fmt.Println("select operation mode:")
	fmt.Println("  1. automated test sequence")
	fmt.Println("  2. manual control")
	fmt.Print("enter choice (1 or 2): ")

	lines := make(chan string, 1)
	utils.PanicCapturingGo(func() {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			close(lines)
			return
		}
		lines <- strings.TrimSpace(line)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", errors.New("no mode selected")
		}
		switch line {
		case "1":
			return "test", nil
		case "2":
			return "manual", nil
		}
		return "", errors.Errorf("invalid choice %q", line)
	}
}
