package render

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"pdc/book"
)

// AppendFormatTree renders a parsed format tree under parent. Text leaves
// split on newlines with <br/> between the lines and never after the last
// one, styled nodes dispatch through the style table and recurse.
func (r *Renderer) AppendFormatTree(parent *etree.Element, node *book.FormatNode) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case book.FormatText:
		if node.Text == "" {
			return nil
		}
		for i, line := range strings.Split(node.Text, "\n") {
			if i > 0 {
				parent.CreateElement("br")
			}
			appendText(parent, line)
		}
		return nil
	case book.FormatStyled:
		fn, ok := r.styles[node.Style.Kind]
		if !ok {
			return fmt.Errorf("style %q has no renderer", node.Style.Kind)
		}
		el := fn(parent, node.Style)
		for _, child := range node.Children {
			if err := r.AppendFormatTree(el, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format node kind %q", node.Kind)
	}
}
