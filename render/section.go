package render

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"

	"pdc/book"
)

const (
	keyJumpToTop = "pdc.gui.jump_to_top"
	keyPermalink = "pdc.gui.permalink"
)

// anchorName turns a book internal reference like "basics/getting_started" or
// "basics/getting_started#anchor" into a stable fragment identifier.
func anchorName(ref string) string {
	base, frag, found := strings.Cut(ref, "#")
	name := slug.Make(strings.ReplaceAll(base, "/", "-"))
	if found {
		name += "-" + slug.Make(frag)
	}
	return name
}

// AnchorFor returns the fragment identifier of a book object, the same value
// internal links resolve to.
func AnchorFor(id book.ResourceLocation) string {
	return anchorName(id.Path)
}

// AppendSectionHeader renders a category or entry heading: optional icon, the
// localized name, a jump to top link and a permalink carrying the anchor.
func (r *Renderer) AppendSectionHeader(parent *etree.Element, level int, id book.ResourceLocation, icon book.ItemStack, name string) error {
	level = max(min(level, 6), 1)
	anchor := AnchorFor(id)

	h := parent.CreateElement("h" + strconv.Itoa(level))
	h.CreateAttr("class", "section-header")
	h.CreateAttr("id", anchor)

	if err := r.AppendIcon(h, icon); err != nil {
		return err
	}
	appendText(h, name)

	topTitle, err := r.i18n.Localize(keyJumpToTop)
	if err != nil {
		return err
	}
	top := h.CreateElement("a")
	top.CreateAttr("class", "top-link")
	top.CreateAttr("href", "#table-of-contents")
	top.CreateAttr("title", topTitle)
	top.SetText("⬆")

	permaTitle, err := r.i18n.Localize(keyPermalink)
	if err != nil {
		return err
	}
	perma := h.CreateElement("a")
	perma.CreateAttr("class", "permalink")
	perma.CreateAttr("href", "#"+anchor)
	perma.CreateAttr("title", permaTitle)
	perma.SetText("🔗")
	return nil
}

// MaybeSpoilered runs render against a spoiler wrapper when the content is
// gated, against parent directly otherwise.
func (r *Renderer) MaybeSpoilered(parent *etree.Element, spoiler bool, render func(parent *etree.Element) error) error {
	target := parent
	if spoiler {
		target = parent.CreateElement("div")
		target.CreateAttr("class", "spoilered")
	}
	return render(target)
}
