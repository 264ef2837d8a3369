package app

import (
	"os"
	"path/filepath"
	"testing"

	"nesgo/internal/input"
)

// writeTestROM assembles a minimal one-bank NROM image and writes it to a
// file under dir, returning the path.
func writeTestROM(t *testing.T, dir string) string {
	t.Helper()

	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 16*1024)
	// Reset vector -> $8000.
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	chr := make([]byte, 8*1024)

	data := append(append(header, prg...), chr...)
	path := filepath.Join(dir, "test.nes")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// newTestApplication constructs a headless Application rooted in a
// scratch directory, so config directory creation doesn't touch the
// working tree.
func newTestApplication(t *testing.T) *Application {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	application, err := NewApplicationWithMode("", true)
	if err != nil {
		t.Fatalf("NewApplicationWithMode: %v", err)
	}
	return application
}

func TestNewApplicationWithModeHeadless(t *testing.T) {
	application := newTestApplication(t)
	if application.GetBus() != nil {
		t.Fatalf("expected nil Bus before a ROM is loaded")
	}
	if application.GetCPU() != nil {
		t.Fatalf("expected nil CPU before a ROM is loaded")
	}
	if application.GetEmulator() != nil {
		t.Fatalf("expected nil Emulator before a ROM is loaded")
	}
}

func TestLoadROMWiresUpComponents(t *testing.T) {
	application := newTestApplication(t)
	dir := t.TempDir()
	romPath := writeTestROM(t, dir)

	if err := application.LoadROM(romPath); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	if application.GetBus() == nil {
		t.Fatalf("expected non-nil Bus after LoadROM")
	}
	if application.GetCPU() == nil {
		t.Fatalf("expected non-nil CPU after LoadROM")
	}
	if application.GetEmulator() == nil {
		t.Fatalf("expected non-nil Emulator after LoadROM")
	}
	if application.GetCPU().PC != 0x8000 {
		t.Fatalf("expected PC at reset vector 0x8000, got %#04x", application.GetCPU().PC)
	}
}

func TestSetControllerButtonsDispatchesToCorrectPad(t *testing.T) {
	application := newTestApplication(t)
	dir := t.TempDir()
	romPath := writeTestROM(t, dir)
	if err := application.LoadROM(romPath); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	var pressed [8]bool
	pressed[0] = true // A

	application.SetControllerButtons(0, pressed)
	if !application.GetBus().Joypad1.IsPressed(input.ButtonA) {
		t.Fatalf("expected controller 1's A button latched")
	}
	if application.GetBus().Joypad2.IsPressed(input.ButtonA) {
		t.Fatalf("expected controller 2 to be unaffected")
	}

	application.SetControllerButtons(1, pressed)
	if !application.GetBus().Joypad2.IsPressed(input.ButtonA) {
		t.Fatalf("expected controller 2's A button latched")
	}
}

func TestResetBeforeROMLoadIsANoop(t *testing.T) {
	application := newTestApplication(t)
	application.Reset() // must not panic with a nil Emulator
}

func TestResetSystemReturnsCPUToPowerOnState(t *testing.T) {
	application := newTestApplication(t)
	dir := t.TempDir()
	romPath := writeTestROM(t, dir)
	if err := application.LoadROM(romPath); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	application.GetCPU().Step()
	application.Reset()

	if application.GetCPU().PC != 0x8000 {
		t.Fatalf("expected PC back at reset vector after Reset, got %#04x", application.GetCPU().PC)
	}
}

func TestApplyDebugSettingsWithoutCPUIsANoop(t *testing.T) {
	application := newTestApplication(t)
	application.ApplyDebugSettings() // must not panic with a nil CPU
}
