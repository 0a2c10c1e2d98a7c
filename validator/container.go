package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/404Wolf/mdvalidate-sub001/matcher"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

type slotKind int

const (
	// slotNode is a schema node compared through the dispatcher.
	slotNode slotKind = iota
	// slotText is a text node whose expected content was rewritten, as after
	// a code span marked literal with `!`.
	slotText
	// slotMatcher is a prefix, matcher and suffix that share one input text node.
	slotMatcher
)

// slot is one expected input child of a container.
type slot struct {
	kind slotKind
	node mdtree.Cursor
	text string

	m      *matcher.Matcher
	prefix string
	suffix string
}

// validateContainer compares the inline children of a paragraph, heading,
// emphasis, table cell or link label.
func validateContainer(w walker) *Result {
	r := newResult(w)

	slots, active, err := containerSlots(w.schema)
	if err != nil {
		r.AddError(err)
		return r
	}
	if active > 1 {
		// Until the input is complete the schema cannot be blamed for a
		// container the input has not reached yet.
		if w.eof {
			r.AddError(w.schemaError(mderrors.MultipleMatchersInContainer, "",
				fmt.Sprintf("found %d matchers, at most one is allowed", active)))
		}
		return r
	}

	inputs := w.input.Children()
	if len(inputs) > len(slots) || (len(inputs) < len(slots) && !w.waiting()) {
		r.AddError(w.childrenMismatch(mderrors.Exactly(len(slots)), len(inputs)))
		return r
	}

	for i, in := range inputs {
		sl := slots[i]
		cw := w.at(sl.node, in)
		switch sl.kind {
		case slotNode:
			r.Join(validateNode(cw))
		case slotText:
			if in.Kind() != mdtree.KindText {
				if !cw.waiting() {
					r.AddError(cw.typeMismatch())
				}
				continue
			}
			if err := compareLiteral(cw, mderrors.ContentLiteral, sl.text, in.Text()); err != nil {
				r.AddError(err)
			}
		case slotMatcher:
			mixed := len(slots) > 1 || sl.prefix != "" || sl.suffix != ""
			r.Join(validateMatcherSlot(cw, sl, mixed))
		}
	}
	return r
}

// containerSlots lays out the input children the schema container under c
// expects, and counts its active matchers.
func containerSlots(c mdtree.Cursor) ([]slot, int, error) {
	children := c.Children()
	slots := make([]slot, 0, len(children))
	active := 0

	for i := 0; i < len(children); i++ {
		child := children[i]
		if child.Kind() != mdtree.KindCodeSpan {
			slots = append(slots, slot{kind: slotNode, node: child})
			continue
		}

		m, suffix, err := spanMatcher(child)
		hasText := i+1 < len(children) && children[i+1].Kind() == mdtree.KindText
		if errors.Is(err, matcher.ErrLiteral) {
			slots = append(slots, slot{kind: slotNode, node: child})
			if hasText && suffix != children[i+1].Text() {
				i++
				if suffix != "" {
					slots = append(slots, slot{kind: slotText, node: children[i], text: suffix})
				}
			}
			continue
		}
		if err != nil {
			return nil, 0, err
		}

		active++
		sl := slot{kind: slotMatcher, node: child, m: m}
		if n := len(slots); n > 0 {
			switch prev := slots[n-1]; {
			case prev.kind == slotText:
				sl.prefix = prev.text
				slots = slots[:n-1]
			case prev.kind == slotNode && prev.node.Kind() == mdtree.KindText:
				sl.prefix = prev.node.Text()
				slots = slots[:n-1]
			}
		}
		if hasText {
			sl.suffix = suffix
			i++
		}
		slots = append(slots, sl)
	}
	return slots, active, nil
}

// validateMatcherSlot checks one input text node against a prefix, a matcher
// and a suffix, and captures what the matcher matched.
func validateMatcherSlot(w walker, sl slot, mixed bool) *Result {
	r := newResult(w)
	m := sl.m

	if m.IsRepeated() && mixed && !w.inList {
		r.AddError(w.schemaError(mderrors.RepeatingMatcherInContainer, m.String(),
			"a repeated matcher must be the only content of its paragraph"))
		return r
	}
	if m.IsRuler() || w.input.Kind() != mdtree.KindText {
		if !w.waiting() {
			err := w.typeMismatch()
			err.Expected = mdtree.KindText.String()
			if m.IsRuler() {
				err.Expected = mdtree.KindThematicBreak.String()
			}
			r.AddError(err)
		}
		return r
	}

	text := w.input.Text()
	if !strings.HasPrefix(text, sl.prefix) {
		if err := compareLiteral(w, mderrors.ContentPrefix, sl.prefix, text); err != nil {
			r.AddError(err)
		}
		return r
	}

	rest := text[len(sl.prefix):]
	match, ok := matchRemainder(m, rest, sl.suffix)
	if !ok {
		if !w.waiting() {
			r.AddError(w.contentMismatch(mderrors.ContentMatcher, m.String(), rest))
		}
		return r
	}
	if err := compareLiteral(w, mderrors.ContentSuffix, sl.suffix, rest[len(match):]); err != nil {
		r.AddError(err)
		return r
	}

	if id, ok := m.ID(); ok {
		if m.IsRepeated() && !w.inList {
			r.SetMatch(id, []any{match})
		} else {
			r.SetMatch(id, match)
		}
	}
	return r
}

// matchRemainder runs m against rest. A match that leaves exactly suffix
// behind is preferred; otherwise the longest match wins.
func matchRemainder(m *matcher.Matcher, rest, suffix string) (string, bool) {
	if suffix != "" && strings.HasSuffix(rest, suffix) {
		candidate := strings.TrimSuffix(rest, suffix)
		if got, ok := m.Match(candidate); ok && got == candidate {
			return candidate, true
		}
	}
	return m.Match(rest)
}
