package testkit

import (
	"fmt"

	"cbridge/cnode"
)

// CheckRanges runs a minimal set of range invariants on a subtree: every
// located node has Begin <= End, and a located child of a located parent in
// the same file lies inside the parent's range.
// Nodes without a range (builtins, the translation unit) are skipped but
// their children are still checked.
func CheckRanges(root cnode.Node) error {
	var walk func(n cnode.Node, parent cnode.SourceRange, hasParent bool) error
	walk = func(n cnode.Node, parent cnode.SourceRange, hasParent bool) error {
		r, ok := n.Range()
		if ok {
			if before(r.End, r.Begin) {
				return fmt.Errorf("%s %#x: range ends before it begins: %s .. %s", n.KindName(), n.ID(), r.Begin, r.End)
			}
			if hasParent && !n.IsImplicit() && r.Begin.Filename == parent.Begin.Filename {
				if before(r.Begin, parent.Begin) || before(parent.End, r.End) {
					return fmt.Errorf("%s %#x: range %s .. %s is outside parent %s .. %s",
						n.KindName(), n.ID(), r.Begin, r.End, parent.Begin, parent.End)
				}
			}
			parent, hasParent = r, true
		}
		for _, c := range n.Children() {
			if err := walk(c, parent, hasParent); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, cnode.SourceRange{}, false)
}

// CheckLocations checks that every located node has 1-based line and
// column numbers and a file name.
func CheckLocations(root cnode.Node) error {
	var err error
	cnode.Inspect(root, func(n cnode.Node) bool {
		if err != nil {
			return false
		}
		loc, ok := n.Location()
		if !ok {
			return true
		}
		if loc.Filename == "" || loc.Line == 0 || loc.Column == 0 {
			err = fmt.Errorf("%s %#x: bad location %+v", n.KindName(), n.ID(), loc)
			return false
		}
		return true
	})
	return err
}

func before(a, b cnode.SourceLocation) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}
