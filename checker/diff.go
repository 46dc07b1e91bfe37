package checker

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// RenderDiff formats two counter-example paths as a unified diff over
// their partition-ID sequences, one line per partition, so the path a
// previous counter-example took can be compared with a newer one
// without printing both in full.
func RenderDiff(before, after *CounterExamplePath) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        partitionLines(before),
		B:        partitionLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}

func partitionLines(cep *CounterExamplePath) []string {
	if cep == nil {
		return nil
	}
	out := make([]string, len(cep.Path))
	for i, id := range cep.Path {
		out[i] = string(id)
	}
	return out
}

// String renders a CounterExamplePath as its invariant followed by the
// arrow-joined walk, e.g. "AFby(a, b)[t]: p1 -> p2 -> p3", or "<holds>"
// when the invariant was not violated.
func (cep *CounterExamplePath) String() string {
	if cep == nil {
		return "<nil>"
	}
	if cep.Holds {
		return "<holds>"
	}
	parts := make([]string, len(cep.Path))
	for i, id := range cep.Path {
		parts[i] = string(id)
	}
	return fmt.Sprintf("%s: %s", cep.Invariant, strings.Join(parts, " -> "))
}
