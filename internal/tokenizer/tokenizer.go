// Package tokenizer splits a signature string into the set of identifier
// tokens it contains. It underlies the cross-reference resolver (internal/xref)
// and replaces substring-containment matching, which previously gave "Error"
// a false positive on "ErrorHandler".
package tokenizer

// isIdentChar reports whether r is part of the identifier-character alphabet:
// letters, digits, and underscore. Everything else is a delimiter.
func isIdentChar(r byte) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}

// Tokenize returns the set of maximal identifier runs in sig. A nil or empty
// signature, or one with no identifier characters, yields an empty set. The
// function never fails.
func Tokenize(sig string) map[string]struct{} {
	out := make(map[string]struct{})
	AppendInto(out, sig)
	return out
}

// AppendInto tokenizes sig and adds every token into the caller-supplied set,
// without allocating a new set. Used by callers (notably the resolver) that
// accumulate tokens across many signatures.
func AppendInto(set map[string]struct{}, sig string) {
	n := len(sig)
	start := -1
	for i := 0; i < n; i++ {
		if isIdentChar(sig[i]) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			set[sig[start:i]] = struct{}{}
			start = -1
		}
	}
	if start != -1 {
		set[sig[start:]] = struct{}{}
	}
}
