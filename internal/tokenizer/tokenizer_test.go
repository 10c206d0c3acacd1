package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

func TestTokenize_NoIdentChars(t *testing.T) {
	assert.Empty(t, Tokenize("()[]<>,:;.*&|?!=+-=>"))
}

func TestTokenize_SubstringSafety(t *testing.T) {
	// "Error" must not match inside "ErrorHandler" -- tokenization, not substring.
	toks := Tokenize("func Handle(h ErrorHandler) error")
	assert.Contains(t, toks, "ErrorHandler")
	assert.NotContains(t, toks, "Error")
}

func TestTokenize_MaximalRuns(t *testing.T) {
	toks := Tokenize("Map<string, List<Policy>>")
	assert.ElementsMatch(t, []string{"Map", "string", "List", "Policy"}, keys(toks))
}

func TestAppendInto_AccumulatesAcrossCalls(t *testing.T) {
	set := make(map[string]struct{})
	AppendInto(set, "func(a *Widget) (*Widget, error)")
	AppendInto(set, "func(b Gadget) error")
	assert.ElementsMatch(t, []string{"func", "a", "Widget", "error", "b", "Gadget"}, keys(set))
}

func TestTokenize_NeverLongerThanInput(t *testing.T) {
	sig := "Dict[str, Optional[MyClass]] -> None"
	for tok := range Tokenize(sig) {
		assert.LessOrEqual(t, len(tok), len(sig))
	}
}
