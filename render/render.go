// Package render converts the loaded book model into HTML element trees.
//
// Everything here follows the same shape: append functions take a parent
// element and build markup under it. Renderers are pure over their inputs,
// leaf lookups (textures, localization) go through collaborators supplied at
// construction time.
package render

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"pdc/assets"
	"pdc/book"
	"pdc/lang"
)

// StyleFunc renders the opening markup for one style kind and returns the
// element which receives the styled content.
type StyleFunc func(parent *etree.Element, style book.Style) *etree.Element

// StyleTable maps style kinds to their render functions. The table is
// validated once at construction, an incomplete table is a configuration
// error we want to surface before any page is rendered.
type StyleTable map[book.StyleKind]StyleFunc

// requiredStyles lists every style kind the format parser can produce.
var requiredStyles = []book.StyleKind{
	book.StyleBase,
	book.StyleColor,
	book.StyleLink,
	book.StyleTooltip,
	book.StyleListItem,
	book.StyleBold,
	book.StyleItalic,
	book.StyleUnderline,
	book.StyleStrikethrough,
	book.StyleObfuscate,
}

type Renderer struct {
	i18n     *lang.I18n
	textures *assets.Index
	styles   StyleTable
	log      *zap.Logger
}

// New creates a renderer over the given collaborators. A nil styles table
// selects DefaultStyles, a partial one fails fast.
func New(i18n *lang.I18n, textures *assets.Index, styles StyleTable, log *zap.Logger) (*Renderer, error) {
	if styles == nil {
		styles = DefaultStyles()
	}
	for _, kind := range requiredStyles {
		if _, ok := styles[kind]; !ok {
			return nil, fmt.Errorf("style table has no renderer for %q", kind)
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{i18n: i18n, textures: textures, styles: styles, log: log.Named("render")}, nil
}

// appendText adds character data under parent, either as element text or as
// tail of the last child.
func appendText(parent *etree.Element, text string) {
	if text == "" {
		return
	}
	children := parent.ChildElements()
	if len(children) == 0 {
		parent.SetText(parent.Text() + text)
		return
	}
	last := children[len(children)-1]
	last.SetTail(last.Tail() + text)
}

// DefaultStyles returns the standard style table used by the site.
func DefaultStyles() StyleTable {
	wrap := func(tag string, attrs ...string) StyleFunc {
		return func(parent *etree.Element, _ book.Style) *etree.Element {
			el := parent.CreateElement(tag)
			for i := 0; i+1 < len(attrs); i += 2 {
				el.CreateAttr(attrs[i], attrs[i+1])
			}
			return el
		}
	}
	return StyleTable{
		// base is the tree root, content flows into the parent directly
		book.StyleBase: func(parent *etree.Element, _ book.Style) *etree.Element {
			return parent
		},
		book.StyleColor: func(parent *etree.Element, style book.Style) *etree.Element {
			el := parent.CreateElement("span")
			el.CreateAttr("style", "color: #"+style.Value)
			return el
		},
		book.StyleLink: func(parent *etree.Element, style book.Style) *etree.Element {
			el := parent.CreateElement("a")
			el.CreateAttr("href", linkTarget(style.Value))
			return el
		},
		book.StyleTooltip: func(parent *etree.Element, style book.Style) *etree.Element {
			el := parent.CreateElement("span")
			el.CreateAttr("class", "has-tooltip")
			el.CreateAttr("title", style.Value)
			return el
		},
		book.StyleListItem: func(parent *etree.Element, style book.Style) *etree.Element {
			el := parent.CreateElement("span")
			el.CreateAttr("class", "list-item list-item-"+style.Value)
			return el
		},
		book.StyleBold:          wrap("strong"),
		book.StyleItalic:        wrap("em"),
		book.StyleUnderline:     wrap("span", "class", "underlined"),
		book.StyleStrikethrough: wrap("s"),
		book.StyleObfuscate:     wrap("span", "class", "obfuscated"),
	}
}

// linkTarget turns a book link target into an href. External links are used
// as is, everything else is an entry reference which becomes a fragment link
// on the generated page.
func linkTarget(target string) string {
	if hasSchema(target) {
		return target
	}
	return "#" + anchorName(target)
}

func hasSchema(s string) bool {
	for i := range len(s) {
		switch {
		case s[i] == ':':
			return i > 0 && i+2 < len(s) && s[i+1] == '/' && s[i+2] == '/'
		case (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z'):
		default:
			return false
		}
	}
	return false
}
