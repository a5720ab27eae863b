package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	pyrt "github.com/jeff5/very-slow-jython-sub016/runtime"
)

// catalog provides implementations generic enough to explore dispatch
// without writing Go:
//
//	decline      always returns NotImplemented
//	left         returns its first operand
//	right        returns its second operand (binary operators only)
//	const_<lit>  returns the number <lit>, e.g. const_3 or const_0.5
type catalog struct{}

func (catalog) Implementation(name string, op pyrt.Op) (interface{}, bool) {
	var result func(v, w *pyrt.Object) *pyrt.Object
	switch {
	case name == "decline":
		result = func(v, w *pyrt.Object) *pyrt.Object { return pyrt.NotImplemented }
	case name == "left":
		result = func(v, w *pyrt.Object) *pyrt.Object { return v }
	case name == "right":
		if op.IsUnary() {
			return nil, false
		}
		result = func(v, w *pyrt.Object) *pyrt.Object { return w }
	case strings.HasPrefix(name, "const_"):
		value, err := pyrt.ParseNumber(strings.TrimPrefix(name, "const_"))
		if err != nil {
			return nil, false
		}
		result = func(v, w *pyrt.Object) *pyrt.Object { return value }
	default:
		return nil, false
	}
	if op.IsUnary() {
		return pyrt.UnaryOpFunc(func(v *pyrt.Object) (*pyrt.Object, error) {
			return result(v, nil), nil
		}), true
	}
	return pyrt.BinaryOpFunc(func(v, w *pyrt.Object) (*pyrt.Object, error) {
		return result(v, w), nil
	}), true
}

// Names lists the fixed entries, for suggestions.
func (catalog) Names() []string {
	return []string{"decline", "left", "right"}
}

const unsupported = "unsupported"

type cell struct {
	plan string
	ok   bool
}

func (c cell) String() string {
	if !c.ok {
		return unsupported
	}
	return c.plan
}

// opTable holds the plans for one operator. Rows are left operand types,
// columns right operand types; a unary operator has a single column.
type opTable struct {
	op    pyrt.Op
	types []*pyrt.Type
	cells [][]cell
}

func tabulate(op pyrt.Op, types []*pyrt.Type) (*opTable, error) {
	t := &opTable{op: op, types: types, cells: make([][]cell, len(types))}
	for i, vt := range types {
		if op.IsUnary() {
			plan, err := pyrt.ResolveUnary(op, vt)
			c, err := newCell(plan, err)
			if err != nil {
				return nil, err
			}
			t.cells[i] = []cell{c}
			continue
		}
		resolve := pyrt.ResolveBinary
		if op.IsInplace() {
			resolve = pyrt.ResolveInplace
		}
		t.cells[i] = make([]cell, len(types))
		for j, wt := range types {
			plan, err := resolve(op, vt, wt)
			c, err := newCell(plan, err)
			if err != nil {
				return nil, err
			}
			t.cells[i][j] = c
		}
	}
	resolved, failed := t.counts()
	log.Debug("%s: %d plans, %d unsupported", op, resolved, failed)
	return t, nil
}

// newCell records a plan, or the absence of one. Errors other than an
// unsupported operand type are returned.
func newCell(plan fmt.Stringer, err error) (cell, error) {
	var opErr *pyrt.OperandTypeError
	switch {
	case err == nil:
		return cell{plan: plan.String(), ok: true}, nil
	case errors.As(err, &opErr):
		return cell{}, nil
	default:
		return cell{}, err
	}
}

func (t *opTable) counts() (resolved, failed int) {
	for _, row := range t.cells {
		for _, c := range row {
			if c.ok {
				resolved++
			} else {
				failed++
			}
		}
	}
	return resolved, failed
}

func (t *opTable) write(w io.Writer, color bool) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s)", t.op, t.op.Symbol())
	if t.op.IsUnary() {
		fmt.Fprint(tw, "\toperand")
	} else {
		for _, wt := range t.types {
			fmt.Fprintf(tw, "\t%s", wt.Name())
		}
	}
	fmt.Fprintln(tw)
	for i, vt := range t.types {
		fmt.Fprint(tw, vt.Name())
		for _, c := range t.cells[i] {
			fmt.Fprintf(tw, "\t%s", c)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	out := buf.String()
	if color {
		// Styling goes on after alignment so escapes take no width.
		lines := strings.SplitAfterN(out, "\n", 2)
		out = "\x1b[1m" + strings.TrimSuffix(lines[0], "\n") + "\x1b[0m\n"
		if len(lines) > 1 {
			out += strings.ReplaceAll(lines[1], unsupported, "\x1b[31m"+unsupported+"\x1b[0m")
		}
	}
	_, err := io.WriteString(w, out)
	return err
}
