package trace

import (
	"fmt"
	"strings"
)

// Level: насколько подробно пишем.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase  // driver + passes
	LevelDetail // + files
	LevelDebug  // + declarations
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// widestScope: самый мелкий scope, который ещё проходит на уровне.
var widestScope = [...]Scope{LevelPhase: ScopePass, LevelDetail: ScopeFile, LevelDebug: ScopeDecl}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
// LevelError keeps nothing but heartbeats.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(widestScope) {
		return false
	}
	return scope <= widestScope[l]
}
