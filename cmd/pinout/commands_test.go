//go:build !rp2040

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"pinout"}, args...))
	// Table headers and footers are upper-cased by the renderer.
	return strings.ToLower(out.String()), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list", "--gaps")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"esp_reset", "uart1_tx", "esp8285 reset, active low", "routable but undeclared", "spi1_cs"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output lacks %q", want)
		}
	}
}

func TestShow(t *testing.T) {
	for _, arg := range []string{"sdi", "24", "GP24"} {
		out, err := run(t, "show", arg)
		if err != nil {
			t.Fatalf("%s: %v", arg, err)
		}
		if !strings.Contains(out, "gp24spi1rx") || !strings.Contains(out, "gpio24 (sdi)") {
			t.Fatalf("%s:\n%s", arg, out)
		}
	}
	if _, err := run(t, "show", "nope"); err == nil {
		t.Fatal("unknown pin accepted")
	}
	out, err := run(t, "show", "led")
	if err != nil || !strings.Contains(out, "digital only") {
		t.Fatalf("led: %v\n%s", err, out)
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "default")
	if err != nil || strings.TrimSpace(out) != "ok" {
		t.Fatalf("default: %v\n%s", err, out)
	}

	path := filepath.Join(t.TempDir(), "plan.json")
	plan := `{"spi":[{"id":"spi0","sck":"sck","sdo":"sdo","sdi":"sdi"}],"outputs":[{"pin":"d99"}]}`
	if err := os.WriteFile(path, []byte(plan), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "check", path)
	if err == nil {
		t.Fatal("bad plan passed")
	}
	for _, want := range []string{"invalid_plan", "unknown_pin", "routes spi_rx to spi1"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output lacks %q:\n%s", want, out)
		}
	}
}

func TestApply(t *testing.T) {
	out, err := run(t, "apply", "default")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"i2c0_sda", "uart1_rx", "esp_reset", "output"} {
		if !strings.Contains(out, want) {
			t.Errorf("apply output lacks %q", want)
		}
	}
	if strings.Contains(out, "neopixel") {
		t.Error("unconfigured pin listed")
	}
}

func TestBoot2(t *testing.T) {
	out, err := run(t, "boot2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0x7a4eb274") || !strings.Contains(out, "a1408dd2691089af") {
		t.Fatalf("boot2:\n%s", out)
	}
}
