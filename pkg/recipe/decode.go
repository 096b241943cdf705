package recipe

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/drip/pkg/paths"
	"github.com/arthur-debert/drip/pkg/types"
)

// Node names understood by the decoder
const (
	NodeTap  = "tap"
	NodeCask = "cask"
	NodeBrew = "brew"
)

type decoder struct {
	diags []Diagnostic
}

func (d *decoder) errorf(pos Position, format string, args ...interface{}) {
	d.diags = append(d.diags, Diagnostic{
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf(format, args...),
	})
}

// decode maps the node tree onto a Recipe, collecting every problem instead
// of stopping at the first one.
func (d *decoder) decode(nodes []*node) types.Recipe {
	var r types.Recipe
	for _, n := range nodes {
		switch n.Name {
		case NodeTap:
			if name, ok := d.leaf(n, "name"); ok {
				r.Taps = append(r.Taps, name)
			}
		case NodeCask:
			if name, ok := d.leaf(n, "name"); ok {
				r.Casks = append(r.Casks, name)
			}
		case NodeBrew:
			if f, ok := d.formula(n); ok {
				r.Formulas = append(r.Formulas, f)
			}
		default:
			d.errorf(n.Pos, "unknown node %q, expected %s, %s or %s", n.Name, NodeTap, NodeCask, NodeBrew)
		}
	}
	return r
}

// plain reports annotations and properties, which no recipe node accepts
func (d *decoder) plain(n *node) bool {
	ok := true
	if n.Annotation != "" {
		d.errorf(n.Pos, "type annotation (%s) is not allowed on %q", n.Annotation, n.Name)
		ok = false
	}
	for _, p := range n.Props {
		d.errorf(p.Pos, "unexpected property %q on %q", p.Key, n.Name)
		ok = false
	}
	for _, a := range n.Args {
		if a.Annotation != "" {
			d.errorf(a.Pos, "type annotation (%s) is not allowed on arguments of %q", a.Annotation, n.Name)
			ok = false
		}
	}
	return ok
}

func (d *decoder) arity(n *node, names ...string) bool {
	if len(n.Args) == len(names) {
		return true
	}
	pos := n.Pos
	if len(n.Args) > len(names) {
		pos = n.Args[len(names)].Pos
	}
	d.errorf(pos, "%q expects %d argument(s) (%s), found %d", n.Name, len(names), strings.Join(names, ", "), len(n.Args))
	return false
}

func (d *decoder) noChildren(n *node) bool {
	if n.HasChildren {
		d.errorf(n.Pos, "%q does not take a children block", n.Name)
		return false
	}
	return true
}

// leaf decodes a single-argument node without children
func (d *decoder) leaf(n *node, argName string) (string, bool) {
	ok := d.plain(n)
	ok = d.arity(n, argName) && ok
	ok = d.noChildren(n) && ok
	if !ok {
		return "", false
	}
	return n.Args[0].Text, true
}

func (d *decoder) formula(n *node) (types.Formula, bool) {
	ok := d.plain(n)
	ok = d.arity(n, "name") && ok

	var steps []types.Postinstall
	for _, child := range n.Children {
		if step, stepOK := d.postinstall(child); stepOK {
			steps = append(steps, step)
		} else {
			ok = false
		}
	}
	if !ok {
		return types.Formula{}, false
	}
	return types.Formula{Name: n.Args[0].Text, Postinstall: steps}, true
}

func (d *decoder) postinstall(n *node) (types.Postinstall, bool) {
	ok := d.plain(n)
	ok = d.noChildren(n) && ok

	switch types.PostinstallKind(n.Name) {
	case types.KindCopy:
		if !d.arity(n, "source", "destination") || !ok {
			return nil, false
		}
		src, srcOK := d.path(n.Args[0])
		dst, dstOK := d.path(n.Args[1])
		if !srcOK || !dstOK {
			return nil, false
		}
		return types.Copy{Source: src, Destination: dst}, true
	case types.KindDownload:
		if !d.arity(n, "url", "destination") || !ok {
			return nil, false
		}
		dst, dstOK := d.path(n.Args[1])
		if !dstOK {
			return nil, false
		}
		return types.Download{URL: n.Args[0].Text, Destination: dst}, true
	case types.KindAppend:
		if !d.arity(n, "text", "destination") || !ok {
			return nil, false
		}
		dst, dstOK := d.path(n.Args[1])
		if !dstOK {
			return nil, false
		}
		return types.Append{Text: n.Args[0].Text, Destination: dst}, true
	case types.KindRunCommand:
		if !d.arity(n, "command") || !ok {
			return nil, false
		}
		return types.RunCommand{Command: n.Args[0].Text}, true
	default:
		d.errorf(n.Pos, "unknown postinstall step %q, expected %s, %s, %s or %s",
			n.Name, types.KindCopy, types.KindDownload, types.KindAppend, types.KindRunCommand)
		return nil, false
	}
}

// path expands a leading ~ in a path-bearing argument
func (d *decoder) path(v value) (string, bool) {
	expanded, err := paths.ExpandHome(v.Text)
	if err != nil {
		d.errorf(v.Pos, "cannot expand %q: %v", v.Text, err)
		return "", false
	}
	return expanded, true
}
