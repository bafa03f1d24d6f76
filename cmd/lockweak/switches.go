package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode: значение флагов вида auto|on|off (--color, --ui).
type switchMode string

const (
	switchAuto switchMode = "auto"
	switchOn   switchMode = "on"
	switchOff  switchMode = "off"
)

func parseSwitch(flag, value string) (switchMode, error) {
	m := switchMode(strings.ToLower(strings.TrimSpace(value)))
	if m == "" {
		m = switchAuto
	}
	if m != switchAuto && m != switchOn && m != switchOff {
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
	return m, nil
}

// enabled: auto включается только на терминале.
func (m switchMode) enabled(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}

func readUIMode(value string) (switchMode, error) { return parseSwitch("ui", value) }

// TUI рисуем в stderr: stdout занят раскрытым исходником.
func shouldUseTUI(mode switchMode, quiet bool) bool {
	if mode == switchAuto && quiet {
		return false
	}
	return mode.enabled(os.Stderr)
}
