package cli

import (
	"os"
	"testing"
)

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func TestType_TimeKeystrokes(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "type", "time", "--caret", "0", "2", "5")
	if data["text"] != "23:00" || data["caret"] != float64(3) || data["value"] != "23:00" {
		t.Fatalf("unexpected result: %#v", data)
	}
	if data["changed"] != true {
		t.Fatalf("expected changed=true, got %#v", data["changed"])
	}
}

func TestType_TimePasteAndSeparators(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "type", "time", "--caret", "0", "2", "3", ":", "5", "9")
	if data["text"] != "23:59" || data["caret"] != float64(5) {
		t.Fatalf("unexpected result: %#v", data)
	}
}

func TestType_DateUsesDateFormatFlag(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "--date-format", "%d/%m/%Y", "type", "date", "--value", "2025-12-24", "--caret", "0", "31")
	if data["text"] != "31/12/2025" || data["caret"] != float64(3) || data["value"] != "2025-12-31" {
		t.Fatalf("unexpected result: %#v", data)
	}
	if data["pattern"] != "%d/%m/%Y" {
		t.Fatalf("expected pattern from flag, got %#v", data["pattern"])
	}
}

func TestType_DateValueIsClamped(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "--date-format", "%Y-%m-%d", "type", "date", "--value", "2023-02-31", "--caret", "5", "02")
	if data["text"] != "2023-02-28" {
		t.Fatalf("expected day clamped to February, got %#v", data["text"])
	}
}

func TestType_NonDigitIsNoop(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "type", "time", "--value", "12:34", "--caret", "1", "x")
	if data["text"] != "12:34" || data["caret"] != float64(1) || data["changed"] != false {
		t.Fatalf("unexpected result: %#v", data)
	}
}

func TestType_InvalidKindFails(t *testing.T) {
	isolateEnv(t)

	_, stderr, err := runCLI(t, []string{"type", "week", "1"})
	if err == nil {
		t.Fatalf("expected error for unknown field kind")
	}
	if len(stderr) == 0 {
		t.Fatalf("expected error on stderr")
	}
}

func TestStep_MinutesWrapUp(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "step", "time", "--value", "23:59", "--caret", "3", "--direction", "up")
	if data["text"] != "23:00" || data["caret"] != float64(3) || data["segment"] != "minute" || data["changed"] != true {
		t.Fatalf("unexpected result: %#v", data)
	}
}

func TestStep_HoursWrapDown(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "step", "time", "--value", "00:15", "--caret", "1", "--direction", "down")
	if data["text"] != "23:15" || data["caret"] != float64(0) {
		t.Fatalf("unexpected result: %#v", data)
	}
}

func TestStep_DateDayWrapsWithinMonth(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "--date-format", "%d/%m/%Y", "step", "date", "--value", "2024-02-29", "--caret", "0")
	if data["text"] != "01/02/2024" || data["value"] != "2024-02-01" {
		t.Fatalf("unexpected result: %#v", data)
	}
}

func TestStep_OnSeparatorIsNoop(t *testing.T) {
	isolateEnv(t)

	data := mustData(t, "step", "time", "--value", "10:10", "--caret", "2")
	if data["text"] != "10:10" || data["changed"] != false {
		t.Fatalf("unexpected result: %#v", data)
	}
	if _, ok := data["segment"]; ok {
		t.Fatalf("expected no segment on a separator, got %#v", data["segment"])
	}
}

func TestStep_InvalidDirectionFails(t *testing.T) {
	isolateEnv(t)

	if _, _, err := runCLI(t, []string{"step", "time", "--direction", "sideways"}); err == nil {
		t.Fatalf("expected invalid direction to fail")
	}
}
