package serial

import (
	"testing"
)

func TestSupportedBaud(t *testing.T) {
	for _, rate := range SupportedBaudRates {
		if !SupportedBaud(rate) {
			t.Errorf("SupportedBaud(%d) = false", rate)
		}
	}
	for _, rate := range []int{0, -1, 300, 2401, 921600} {
		if SupportedBaud(rate) {
			t.Errorf("SupportedBaud(%d) = true", rate)
		}
	}
}

func TestSplitLines(t *testing.T) {
	lines, rest := splitLines([]byte("7.00pH\r\n7.10pH\r\npart"))
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if string(lines[0]) != "7.00pH\r" || string(lines[1]) != "7.10pH\r" {
		t.Errorf("lines = %q", lines)
	}
	if string(rest) != "part" {
		t.Errorf("rest = %q, want the unterminated tail", rest)
	}
}

func TestSplitLinesNoTerminator(t *testing.T) {
	lines, rest := splitLines([]byte("7.00p"))
	if len(lines) != 0 {
		t.Errorf("lines = %q, want none for a partial line", lines)
	}
	if string(rest) != "7.00p" {
		t.Errorf("rest = %q", rest)
	}
}

func TestDecodeLineReplacesInvalidBytes(t *testing.T) {
	got := decodeLine([]byte{0xff, '7', '.', '4', '2', 'p', 'H', 0xfe, '\r'})
	want := "�7.42pH�"
	if got != want {
		t.Errorf("decodeLine = %q, want %q", got, want)
	}
}

func TestDecodeLineTrims(t *testing.T) {
	if got := decodeLine([]byte("  7.42pH \r")); got != "7.42pH" {
		t.Errorf("decodeLine = %q, want 7.42pH", got)
	}
}

func TestStopBeforeStart(t *testing.T) {
	r := NewReader(Config{Port: "/dev/null", BaudRate: 9600})
	if err := r.Stop(); err != nil {
		t.Errorf("Stop on idle reader: %v", err)
	}
}
