package parser

import (
	"testing"

	"lockweak/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	inputs := map[string]string{
		"annotated class": anyFooSource,
		"nested": `enum Namespace {
    @LockedWeakReference
    final class Inner {
        @RegisterWeakReference weak var a: A?
        func f() { let x = 1 }
    }
    case one
}
`,
		"accessors": "class C {\n    weak var a: A? { didSet { print(1) } }\n    var b: Int { get { 1 } set {} }\n}\n",
		"extension": "extension Outer.Inner: P {\n    static var shared: Outer.Inner?\n}\n",
		"unclosed":  "class Broken {\n    weak var a: A?\n",
		"empty":     "",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			p := parseSource(t, input)
			if err := testkit.CheckSpanInvariants(p.builder, p.fileID, p.file); err != nil {
				t.Fatalf("span invariants: %v", err)
			}
		})
	}
}
