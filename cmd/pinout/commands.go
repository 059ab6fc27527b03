//go:build !rp2040

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"challenger-go/board"
	"challenger-go/errcode"
	"challenger-go/internal/provider"
	"challenger-go/pins"
	"challenger-go/setups"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type pinout struct {
	log *zap.SugaredLogger
}

func (p *pinout) table(c *cli.Context) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.SetStyle(table.StyleLight)
	return t
}

func (p *pinout) list(c *cli.Context) error {
	t := p.table(c)
	t.SetTitle(board.Challenger.Name)
	t.AppendHeader(table.Row{"GPIO", "Alias", "Functions", "Note"})
	for _, d := range board.Pins() {
		fs := make([]string, 0, len(d.Functions))
		for _, f := range d.Functions {
			fs = append(fs, string(f.Func()))
		}
		t.AppendRow(table.Row{d.Index, d.Alias, strings.Join(fs, " "), d.Note})
	}
	t.Render()

	if !c.Bool(flagGaps) {
		return nil
	}
	gaps := board.Gaps()
	p.log.Debugw("silicon gaps", "count", len(gaps))
	g := p.table(c)
	g.SetTitle("Routable but undeclared")
	g.AppendHeader(table.Row{"GPIO", "Alias", "Function"})
	for _, gap := range gaps {
		g.AppendRow(table.Row{gap.Index, gap.Alias, gap.Function.Func()})
	}
	g.Render()
	return nil
}

func lookup(arg string) (*board.PinDef, bool) {
	if n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(arg), "gp")); err == nil {
		return board.ByIndex(n)
	}
	return board.ByAlias(arg)
}

func (p *pinout) show(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("show takes exactly one pin", 2)
	}
	d, ok := lookup(c.Args().First())
	if !ok {
		return errcode.New(errcode.UnknownPin, "show", strconv.Quote(c.Args().First()))
	}
	t := p.table(c)
	t.SetTitle(fmt.Sprintf("gpio%d (%s)", d.Index, d.Alias))
	t.AppendHeader(table.Row{"Kind", "Controller", "Function", "Alias", "FUNCSEL"})
	for _, f := range d.Functions {
		t.AppendRow(table.Row{f.Kind, f.Controller(), f.Func(), f.Alias, f.Kind.Sel()})
	}
	if d.Digital() {
		t.AppendFooter(table.Row{"", "", "", "digital only", board.SelSIO})
	}
	t.Render()
	return nil
}

func readPlan(arg string) (setups.Plan, error) {
	if arg == "" || arg == "default" {
		return setups.Default(), nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return setups.Plan{}, err
	}
	return setups.Decode(b)
}

func (p *pinout) check(c *cli.Context) error {
	plan, err := readPlan(c.Args().First())
	if err != nil {
		return err
	}
	errs := multierr.Errors(plan.Check())
	p.log.Debugw("plan checked", "violations", len(errs))
	if len(errs) == 0 {
		fmt.Fprintln(c.App.Writer, "ok")
		return nil
	}
	t := p.table(c)
	t.AppendHeader(table.Row{"Code", "Problem"})
	for _, e := range errs {
		msg := e.Error()
		if ce, ok := e.(*errcode.E); ok {
			msg = ce.Msg
		}
		t.AppendRow(table.Row{errcode.Of(e), msg})
	}
	t.Render()
	return cli.Exit(fmt.Sprintf("%d problem(s)", len(errs)), 1)
}

func (p *pinout) apply(c *cli.Context) error {
	plan, err := readPlan(c.Args().First())
	if err != nil {
		return err
	}
	mux := provider.NewSimMux()
	ps, err := pins.Split(pins.NewBank(), mux, pins.WithObserver(func(ch pins.Change) {
		if ch.To.Mode != pins.ModeUnconfigured {
			p.log.Debugw("reconfigured", "gpio", ch.Index, "alias", ch.Alias, "from", ch.From.Mode, "to", ch.To.Mode)
		}
	}))
	if err != nil {
		return err
	}
	sim := provider.NewSim()
	defer sim.Close()
	if _, err := setups.Apply(plan, ps, sim); err != nil {
		return err
	}

	t := p.table(c)
	t.AppendHeader(table.Row{"GPIO", "Alias", "Mode", "FUNCSEL", "Function"})
	for _, pin := range ps.All() {
		if pin.Mode() == pins.ModeUnconfigured {
			continue
		}
		fn := ""
		if pin.Mode() == pins.ModeAlternate {
			fn = string(pin.Function().Func())
		}
		t.AppendRow(table.Row{pin.Index(), pin.Alias(), pin.Mode(), mux.Pad(pin.Index()).Sel, fn})
	}
	t.Render()
	return nil
}

func (p *pinout) boot2(c *cli.Context) error {
	img := board.Boot2()
	sum := sha256.Sum256(img[:])
	stored, computed := board.Boot2Stored(img), board.Boot2CRC(img)

	t := p.table(c)
	t.AppendRows([]table.Row{
		{"size", len(img)},
		{"crc (stored)", fmt.Sprintf("%#08x", stored)},
		{"crc (computed)", fmt.Sprintf("%#08x", computed)},
		{"sha256", hex.EncodeToString(sum[:])},
	})
	t.Render()
	if stored != computed {
		return cli.Exit("boot2 checksum mismatch", 1)
	}
	return nil
}
