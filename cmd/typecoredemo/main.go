// Command typecoredemo builds a small class hierarchy on a fresh runtime
// and prints each type's MRO, one line per type, the way the
// teacher's cmd/rage is a thin driver over an interpreter session rather
// than a general-purpose tool.
package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ATSOTECK/pytypecore/pkg/pytypecore"
)

type animalMethods struct{}

func (animalMethods) PyInit(self pytypecore.Value, args []pytypecore.Value, kwnames []string) (pytypecore.Value, error) {
	return nil, nil
}

func (animalMethods) PyRepr(self pytypecore.Value) (pytypecore.Value, error) {
	return "<animal>", nil
}

type dogMethods struct{}

func (dogMethods) PyRepr(self pytypecore.Value) (pytypecore.Value, error) {
	return "<dog>", nil
}

func main() {
	rt := pytypecore.NewRuntime()

	animal, err := pytypecore.NewClass("Animal").
		Bases(pytypecore.Object(rt)).
		Slots("name").
		Methods(animalMethods{}).
		Build(rt)
	if err != nil {
		fail(err)
	}

	dog, err := pytypecore.NewClass("Dog").
		Bases(animal).
		Methods(dogMethods{}).
		Build(rt)
	if err != nil {
		fail(err)
	}

	width := terminalWidth()
	for _, t := range []*pytypecore.Type{pytypecore.Object(rt), animal, dog} {
		printType(t, width)
	}
}

func printType(t *pytypecore.Type, width int) {
	names := make([]string, 0, len(t.MRO()))
	for _, m := range t.MRO() {
		names = append(names, m.Name())
	}
	line := fmt.Sprintf("%s: MRO = [%s]", t.Name(), strings.Join(names, ", "))
	if width > 0 && len(line) > width {
		line = line[:width-1] + "…"
	}
	fmt.Println(line)
}

// terminalWidth probes stdout's column count when it is a terminal,
// falling back to a sane default for piped output (e.g. in CI).
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "typecoredemo:", err)
	os.Exit(1)
}
