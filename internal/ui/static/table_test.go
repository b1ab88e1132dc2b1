package static

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/branchwipe/internal/branch"
)

func TestBranchRows(t *testing.T) {
	t.Parallel()

	rows := BranchRows([]branch.Entry{{Name: "main"}, {Name: "dev"}})
	want := [][]string{{"0", "main"}, {"1", "dev"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("BranchRows = %v, want %v", rows, want)
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(RenderTable(BranchHeaders, [][]string{{"0", "main"}, {"1", "feature/long-name"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "BRANCH") {
		t.Errorf("header = %q", lines[0])
	}
	// names start in the same column
	if strings.Index(lines[1], "main") != strings.Index(lines[2], "feature/long-name") {
		t.Errorf("columns not aligned:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()
	if got := RenderTable(BranchHeaders, nil); got != "" {
		t.Errorf("RenderTable(no rows) = %q, want empty", got)
	}
}
