package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/busstop/pkg/integrations/tfl"
)

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	st := newStatus(&buf)

	st.errorf("No section: %q", "busstop")
	st.detailf("File: %s", "/tmp/busstop_config.toml")
	st.keyValue("Config", "/tmp/busstop_config.toml")

	want := []string{
		iconError + ` No section: "busstop"`,
		"  File: /tmp/busstop_config.toml",
		"Config       /tmp/busstop_config.toml",
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestStatusHasNoColorsOnPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	newStatus(&buf).warnf("slow")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("escape codes written to a non-terminal: %q", buf.String())
	}
}

func TestPrintServeBanner(t *testing.T) {
	t.Setenv(tfl.AppKeyEnv, "")
	var buf bytes.Buffer
	printServeBanner(newStatus(&buf), "/etc/busstop_config.toml", "localhost:8080")

	out := buf.String()
	for _, want := range []string{
		"Serving boards from /etc/busstop_config.toml",
		iconRoute + " http://localhost:8080/arrivals",
		"http://localhost:8080/stoppoint/{id}",
		"http://localhost:8080/healthz",
		tfl.AppKeyEnv + " is not set",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}

	t.Setenv(tfl.AppKeyEnv, "secret")
	buf.Reset()
	printServeBanner(newStatus(&buf), "/etc/busstop_config.toml", "localhost:8080")
	if strings.Contains(buf.String(), "is not set") {
		t.Errorf("warning printed with %s set:\n%s", tfl.AppKeyEnv, buf.String())
	}
}

func TestDisplayHost(t *testing.T) {
	if got := displayHost("", 8080); got != "localhost:8080" {
		t.Errorf("displayHost(\"\", 8080) = %q", got)
	}
	if got := displayHost("0.0.0.0", 9000); got != "0.0.0.0:9000" {
		t.Errorf("displayHost(\"0.0.0.0\", 9000) = %q", got)
	}
}
