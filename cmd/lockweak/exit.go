package main

import (
	"errors"
	"fmt"
	"io"
)

// errDiagnostics: ошибки уже напечатаны как диагностики, выходим с 1 молча.
var errDiagnostics = errors.New("errors reported")

func reportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errDiagnostics) {
		return
	}
	fmt.Fprintf(w, "lockweak: %v\n", err)
}
