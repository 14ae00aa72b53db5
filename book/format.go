package book

import (
	"fmt"
	"regexp"
	"strings"
)

// Styled text support. Book strings use "$(...)" formatting codes, this file
// parses them into a tree of format nodes which the renderer walks later.

// FormatNodeKind distinguishes format tree node types.
type FormatNodeKind string

const (
	FormatText   FormatNodeKind = "text"
	FormatStyled FormatNodeKind = "styled"
)

// StyleKind identifies a style annotation on a format tree node.
type StyleKind string

const (
	StyleBase          StyleKind = "base"
	StyleColor         StyleKind = "color"
	StyleLink          StyleKind = "link"
	StyleTooltip       StyleKind = "tooltip"
	StyleListItem      StyleKind = "list"
	StyleBold          StyleKind = "bold"
	StyleItalic        StyleKind = "italic"
	StyleUnderline     StyleKind = "underline"
	StyleStrikethrough StyleKind = "strikethrough"
	StyleObfuscate     StyleKind = "obfuscate"
)

// Style is a style annotation. Value carries the argument for parameterized
// styles: hex color for StyleColor, target for StyleLink, text for
// StyleTooltip, indent level for StyleListItem.
type Style struct {
	Kind  StyleKind
	Value string
}

// FormatNode is a node of the styled text tree. Text leaves may contain
// embedded line breaks ("\n") which the renderer expands, styled nodes carry
// their style and an ordered list of children. A nil *FormatNode renders as
// nothing.
type FormatNode struct {
	Kind     FormatNodeKind
	Text     string
	Style    Style
	Children []*FormatNode
}

// AsPlainText extracts text content of the whole tree, mostly for search
// indexing and debug dumps.
func (n *FormatNode) AsPlainText() string {
	if n == nil {
		return ""
	}
	if n.Kind == FormatText {
		return n.Text
	}
	var buf strings.Builder
	for _, child := range n.Children {
		buf.WriteString(child.AsPlainText())
	}
	return buf.String()
}

// Vanilla text color codes 0-f.
var colorCodes = map[string]string{
	"0": "000000", "1": "0000aa", "2": "00aa00", "3": "00aaaa",
	"4": "aa0000", "5": "aa00aa", "6": "ffaa00", "7": "aaaaaa",
	"8": "555555", "9": "5555ff", "a": "55ff55", "b": "ffff55",
	"c": "ff5555", "d": "ff55ff", "e": "ffffff", "f": "ffffff",
}

var letterStyles = map[string]StyleKind{
	"k": StyleObfuscate, "obf": StyleObfuscate,
	"l": StyleBold, "bold": StyleBold,
	"m": StyleStrikethrough, "strike": StyleStrikethrough,
	"n": StyleUnderline, "underline": StyleUnderline,
	"o": StyleItalic, "italic": StyleItalic, "italics": StyleItalic,
}

var formatCodeRe = regexp.MustCompile(`\$\(([^)]*)\)`)

// macroExpansionLimit bounds repeated macro substitution, self referencing
// macros would otherwise never converge.
const macroExpansionLimit = 16

// ExpandMacros repeatedly applies book macro substitutions until the string
// stops changing.
func ExpandMacros(s string, macros map[string]string) (string, error) {
	if len(macros) == 0 {
		return s, nil
	}
	for range macroExpansionLimit {
		old := s
		for from, to := range macros {
			s = strings.ReplaceAll(s, from, to)
		}
		if s == old {
			return s, nil
		}
	}
	return "", fmt.Errorf("macro expansion does not converge: %q", s)
}

type formatParser struct {
	root  *FormatNode
	stack []*FormatNode
}

func (p *formatParser) top() *FormatNode {
	return p.stack[len(p.stack)-1]
}

func (p *formatParser) push(style Style) {
	node := &FormatNode{Kind: FormatStyled, Style: style}
	top := p.top()
	top.Children = append(top.Children, node)
	p.stack = append(p.stack, node)
}

// pop removes innermost open nodes until a node of the given kind is closed.
func (p *formatParser) pop(kind StyleKind) error {
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i].Style.Kind == kind {
			p.stack = p.stack[:i]
			return nil
		}
	}
	return fmt.Errorf("closing %q without matching open style", kind)
}

// popIfOpen is pop for styles which implicitly replace each other, absence is
// not an error.
func (p *formatParser) popIfOpen(kind StyleKind) {
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i].Style.Kind == kind {
			p.stack = p.stack[:i]
			return
		}
	}
}

func (p *formatParser) reset() {
	p.stack = p.stack[:1]
}

func (p *formatParser) text(s string) {
	if s == "" {
		return
	}
	top := p.top()
	// merge adjacent text runs to keep trees small
	if n := len(top.Children); n > 0 && top.Children[n-1].Kind == FormatText {
		top.Children[n-1].Text += s
		return
	}
	top.Children = append(top.Children, &FormatNode{Kind: FormatText, Text: s})
}

func (p *formatParser) code(code string) error {
	switch {
	case code == "" || code == "/":
		p.reset()
	case code == "br":
		p.text("\n")
	case code == "br2" || code == "p":
		p.text("\n\n")
	case code == "nocolor":
		p.popIfOpen(StyleColor)
	case strings.HasPrefix(code, "li"):
		level := "1"
		if rest := code[2:]; rest != "" {
			if rest < "1" || rest > "9" || len(rest) != 1 {
				return fmt.Errorf("unknown formatting code $(%s)", code)
			}
			level = rest
		}
		p.popIfOpen(StyleListItem)
		p.text("\n")
		p.push(Style{Kind: StyleListItem, Value: level})
	case strings.HasPrefix(code, "#"):
		hex := strings.ToLower(code[1:])
		switch len(hex) {
		case 3:
			hex = strings.Repeat(string(hex[0]), 2) + strings.Repeat(string(hex[1]), 2) + strings.Repeat(string(hex[2]), 2)
		case 6:
		default:
			return fmt.Errorf("malformed color code $(%s)", code)
		}
		p.popIfOpen(StyleColor)
		p.push(Style{Kind: StyleColor, Value: hex})
	case strings.HasPrefix(code, "l:"):
		p.push(Style{Kind: StyleLink, Value: code[2:]})
	case code == "/l":
		return p.pop(StyleLink)
	case strings.HasPrefix(code, "t:"):
		p.push(Style{Kind: StyleTooltip, Value: code[2:]})
	case code == "/t":
		return p.pop(StyleTooltip)
	default:
		if color, ok := colorCodes[code]; ok {
			p.popIfOpen(StyleColor)
			p.push(Style{Kind: StyleColor, Value: color})
			return nil
		}
		if kind, ok := letterStyles[code]; ok {
			p.push(Style{Kind: kind})
			return nil
		}
		return fmt.Errorf("unknown formatting code $(%s)", code)
	}
	return nil
}

// ParseFormatString expands book macros and parses formatting codes into a
// format tree rooted at a base styled node.
func ParseFormatString(s string, macros map[string]string) (*FormatNode, error) {
	s, err := ExpandMacros(s, macros)
	if err != nil {
		return nil, err
	}

	p := &formatParser{root: &FormatNode{Kind: FormatStyled, Style: Style{Kind: StyleBase}}}
	p.stack = []*FormatNode{p.root}

	last := 0
	for _, m := range formatCodeRe.FindAllStringSubmatchIndex(s, -1) {
		p.text(s[last:m[0]])
		if err := p.code(s[m[2]:m[3]]); err != nil {
			return nil, err
		}
		last = m[1]
	}
	p.text(s[last:])

	return p.root, nil
}
