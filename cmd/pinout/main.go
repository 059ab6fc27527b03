//go:build !rp2040

// Command pinout inspects the board's pin catalog, checks wiring plans and
// reports on the boot2 image, all without hardware.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagDebug = "debug"
	flagGaps  = "gaps"
)

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func newApp() *cli.App {
	p := &pinout{log: zap.NewNop().Sugar()}
	return &cli.App{
		Name:  "pinout",
		Usage: "Challenger NB RP2040 WiFi pin catalog and wiring plans",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: flagDebug, Usage: "verbose logging"},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool(flagDebug) {
				return nil
			}
			l, err := newLogger(true)
			if err != nil {
				return err
			}
			p.log = l
			return nil
		},
		After: func(*cli.Context) error {
			_ = p.log.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "print the pin catalog",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: flagGaps, Usage: "also list functions the silicon has but the board does not declare"}},
				Action: p.list,
			},
			{
				Name:      "show",
				Usage:     "print the functions of one pin",
				ArgsUsage: "<alias|gpio>",
				Action:    p.show,
			},
			{
				Name:      "check",
				Usage:     "validate a wiring plan",
				ArgsUsage: "<plan.json|default>",
				Action:    p.check,
			},
			{
				Name:      "apply",
				Usage:     "apply a wiring plan to a simulated IO bank and print the FUNCSEL state",
				ArgsUsage: "<plan.json|default>",
				Action:    p.apply,
			},
			{
				Name:   "boot2",
				Usage:  "verify the second-stage bootloader image",
				Action: p.boot2,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pinout:", err)
		os.Exit(1)
	}
}
