package sexy

import "fmt"

// Match checks that actual has the shape of pattern. Atoms must be equal in
// type and text. Inside a list, an ellipsis matches zero or more items;
// as a whole pattern it matches anything.
//
// The returned error names the first mismatch by its path from the root,
// e.g. "root[2][1]: expected symbol ident, got symbol call".
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("%s: expected %s, got %s", path, describe(pattern), describe(actual))
	}
	if pattern.Type != NodeList {
		if pattern.Text != actual.Text {
			return fmt.Errorf("%s: expected %s, got %s", path, describe(pattern), describe(actual))
		}
		return nil
	}
	return matchItems(pattern.Items, actual.Items, path, 0)
}

// matchItems matches pattern items against actual items starting at index
// offset of the enclosing list. Ellipses backtrack.
func matchItems(patterns, actuals []*Node, path string, offset int) error {
	for i, pat := range patterns {
		if pat.Type == NodeEllipsis {
			rest := patterns[i+1:]
			if len(rest) == 0 {
				return nil
			}
			var firstErr error
			for skip := 0; skip <= len(actuals)-i; skip++ {
				err := matchItems(rest, actuals[i+skip:], path, offset+i+skip)
				if err == nil {
					return nil
				}
				if firstErr == nil {
					firstErr = err
				}
			}
			return firstErr
		}
		if i >= len(actuals) {
			return fmt.Errorf("%s: expected %s at index %d, got end of list", path, describe(pat), offset+i)
		}
		if err := match(pat, actuals[i], fmt.Sprintf("%s[%d]", path, offset+i)); err != nil {
			return err
		}
	}
	if len(actuals) > len(patterns) {
		return fmt.Errorf("%s: unexpected %s at index %d", path, describe(actuals[len(patterns)]), offset+len(patterns))
	}
	return nil
}

func describe(n *Node) string {
	if n.Type == NodeList {
		return "list " + n.String()
	}
	return n.Type.String() + " " + n.String()
}
