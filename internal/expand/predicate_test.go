package expand

import "testing"

func TestCanLockWeakReference(t *testing.T) {
	cases := []struct {
		member string
		want   bool
	}{
		{"weak var delegate: FooDelegate?", true},
		{"weak var delegate: FooDelegate? = nil", true},
		{"private weak var delegate: (any FooDelegate)?", true},
		// не Optional
		{"weak var delegate: FooDelegate!", false},
		{"var name = \"\"", false},
		// не weak
		{"var delegate: FooDelegate?", false},
		{"unowned(unsafe) var owner: Owner?", false},
		// уровень типа
		{"static weak var shared: FooDelegate?", false},
		{"class weak var shared: FooDelegate?", false},
		// вычисляемое и наблюдатели
		{"weak var delegate: FooDelegate? { nil }", false},
		{"weak var delegate: FooDelegate? { get { nil } set {} }", false},
		{"weak var delegate: FooDelegate? { didSet {} }", false},
		// константа
		{"weak let delegate: FooDelegate?", false},
		// несколько привязок
		{"weak var a: FooDelegate?, b: FooDelegate?", false},
	}
	for _, tc := range cases {
		t.Run(tc.member, func(t *testing.T) {
			if got := CanLockWeakReference(varDecl(t, tc.member)); got != tc.want {
				t.Fatalf("CanLockWeakReference(%q) = %v, want %v", tc.member, got, tc.want)
			}
		})
	}
}

func TestSubPredicates(t *testing.T) {
	v := varDecl(t, "static weak let x: Foo? { nil }")
	if !IsOptional(v) || !IsWeak(v) || IsInstance(v) || !HasAccessorBlock(v) || !IsImmutable(v) {
		t.Fatalf("unexpected sub-predicates for %+v", v)
	}
}

func TestPredicatesNilSafe(t *testing.T) {
	if CanLockWeakReference(nil) || IsOptional(nil) || IsWeak(nil) || IsInstance(nil) || HasAccessorBlock(nil) || IsImmutable(nil) || IsSingleBinding(nil) {
		t.Fatalf("nil member must fail every predicate")
	}
}
