package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTableDefaults(t *testing.T) {
	tb := NewTable()
	if got := tb.GetNumber("Intake", 0.5); got != 0.5 {
		t.Fatalf("GetNumber on missing key = %v, want default", got)
	}
	tb.PutNumber("Intake", 1)
	if got := tb.GetNumber("Intake", 0.5); got != 1 {
		t.Fatalf("GetNumber = %v, want 1", got)
	}
	tb.PutString(ProgramKey, "Take ball")
	if got := tb.GetString(ProgramKey, "None"); got != "Take ball" {
		t.Fatalf("GetString = %q, want %q", got, "Take ball")
	}
}

func TestKeys(t *testing.T) {
	if StartKey("Drive X") != "Drive X Start (secs)" {
		t.Fatalf("unexpected start key %q", StartKey("Drive X"))
	}
	if EndKey("Shooter") != "Shooter End (secs)" {
		t.Fatalf("unexpected end key %q", EndKey("Shooter"))
	}
	if ValueKey("Hands") != "Hands" {
		t.Fatalf("unexpected value key %q", ValueKey("Hands"))
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.json")
	body := `{"Autonomous modes": "Custom", "Intake": 0.7, "Intake Start (secs)": 2}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	tb, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if tb.GetString(ProgramKey, "") != "Custom" {
		t.Fatalf("program = %q", tb.GetString(ProgramKey, ""))
	}
	if tb.GetNumber(StartKey("Intake"), 0) != 2 {
		t.Fatalf("start = %v", tb.GetNumber(StartKey("Intake"), 0))
	}

	snap := tb.Snapshot()
	if len(snap) != 3 || snap[0] != `Autonomous modes="Custom"` {
		t.Fatalf("unexpected snapshot %v", snap)
	}
}

func TestLoadTableRejectsNested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.json")
	if err := os.WriteFile(path, []byte(`{"Intake": {"value": 1}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Fatal("expected error for nested value")
	}
}
