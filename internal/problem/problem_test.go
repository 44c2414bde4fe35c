package problem

import (
	"errors"
	"sort"
	"testing"
)

func TestListIncludesBuiltins(t *testing.T) {
	names := List()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("problem list not sorted: %v", names)
	}
	want := map[string]bool{"ackley": false, "nqueens": false, "rosenbrock": false}
	for _, name := range names {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("builtin problem %q missing from %v", name, names)
		}
	}
}

func TestResolveUnknownProblem(t *testing.T) {
	if _, err := Resolve("no-such-problem"); !errors.Is(err, ErrProblemNotFound) {
		t.Fatalf("err = %v, want ErrProblemNotFound", err)
	}
}

func TestResolveReturnsRegisteredProblem(t *testing.T) {
	p, err := Resolve("nqueens")
	if err != nil {
		t.Fatalf("resolve nqueens: %v", err)
	}
	if p.Name() != "nqueens" {
		t.Fatalf("name = %q, want nqueens", p.Name())
	}
}

func TestRegisterDuplicate(t *testing.T) {
	if err := Register("ackley", func() Problem { return Ackley{} }); !errors.Is(err, ErrProblemExists) {
		t.Fatalf("err = %v, want ErrProblemExists", err)
	}
}

func TestBuiltinOperatorsMatchChromosomeKind(t *testing.T) {
	for _, name := range List() {
		p, err := Resolve(name)
		if err != nil {
			t.Fatalf("resolve %q: %v", name, err)
		}
		kind := p.NewChromosome().Kind()
		if got := p.Fitness().Kind(); got != kind {
			t.Fatalf("%s: fitness kind %q != chromosome kind %q", name, got, kind)
		}
		if got := p.Mutator().Kind(); got != kind {
			t.Fatalf("%s: mutator kind %q != chromosome kind %q", name, got, kind)
		}
		if got := p.Recombiner().Kind(); got != kind {
			t.Fatalf("%s: recombiner kind %q != chromosome kind %q", name, got, kind)
		}
	}
}
