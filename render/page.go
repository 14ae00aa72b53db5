package render

import (
	"fmt"

	"github.com/beevik/etree"

	"pdc/book"
)

// AppendCategory renders a category section: header, description, spoiler
// wrapped when the category is secret, then every entry at the next heading
// level.
func (r *Renderer) AppendCategory(parent *etree.Element, category *book.Category, level int) error {
	section := parent.CreateElement("section")
	section.CreateAttr("class", "category")

	return r.MaybeSpoilered(section, category.Secret, func(target *etree.Element) error {
		if err := r.AppendSectionHeader(target, level, category.ID, category.Icon, category.Name); err != nil {
			return err
		}
		if category.Description != nil {
			desc := target.CreateElement("p")
			desc.CreateAttr("class", "category-description")
			if err := r.AppendFormatTree(desc, category.Description); err != nil {
				return err
			}
		}
		for _, entry := range category.Entries {
			if err := r.AppendEntry(target, entry, level+1); err != nil {
				return fmt.Errorf("entry %s: %w", entry.ID, err)
			}
		}
		return nil
	})
}

// AppendEntry renders an entry section with all of its pages.
func (r *Renderer) AppendEntry(parent *etree.Element, entry *book.Entry, level int) error {
	section := parent.CreateElement("section")
	section.CreateAttr("class", "entry")

	return r.MaybeSpoilered(section, entry.IsSpoiler(), func(target *etree.Element) error {
		if err := r.AppendSectionHeader(target, level, entry.ID, entry.Icon, entry.Name); err != nil {
			return err
		}
		for i, page := range entry.Pages {
			if err := r.AppendPage(target, entry, page, level+1); err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}
		}
		return nil
	})
}

// AppendPage renders a single page by kind.
func (r *Renderer) AppendPage(parent *etree.Element, entry *book.Entry, page *book.Page, level int) error {
	div := parent.CreateElement("div")
	div.CreateAttr("class", "page")
	if page.Anchor != "" {
		div.CreateAttr("id", AnchorFor(entry.ID)+"-"+page.Anchor)
	}
	if page.Title != "" {
		if err := r.appendPageTitle(div, page.Title, level); err != nil {
			return err
		}
	}

	switch page.Kind {
	case book.PageText:
		return r.appendTextBody(div, page.Text)
	case book.PageCrafting:
		if err := r.appendTextBody(div, page.Text); err != nil {
			return err
		}
		return r.AppendCraftingTables(div, page.Recipes)
	case book.PageSpotlight:
		if err := r.appendSpotlight(div, page.Item); err != nil {
			return err
		}
		return r.appendTextBody(div, page.Text)
	case book.PageImage:
		if err := r.appendImages(div, page.Images); err != nil {
			return err
		}
		return r.appendTextBody(div, page.Text)
	default:
		return fmt.Errorf("page kind %q has no renderer", page.Kind)
	}
}

func (r *Renderer) appendPageTitle(parent *etree.Element, title string, level int) error {
	h := parent.CreateElement("h" + fmt.Sprint(max(min(level, 6), 1)))
	h.CreateAttr("class", "page-title")
	h.SetText(title)
	return nil
}

func (r *Renderer) appendTextBody(parent *etree.Element, text *book.FormatNode) error {
	if text == nil {
		return nil
	}
	p := parent.CreateElement("p")
	p.CreateAttr("class", "page-text")
	return r.AppendFormatTree(p, text)
}

func (r *Renderer) appendSpotlight(parent *etree.Element, item book.ItemStack) error {
	name, err := r.i18n.LocalizeItem(item)
	if err != nil {
		return err
	}
	box := parent.CreateElement("div")
	box.CreateAttr("class", "spotlight")
	if err := r.AppendItem(box, item, true); err != nil {
		return err
	}
	label := box.CreateElement("span")
	label.CreateAttr("class", "spotlight-name")
	label.SetText(name)
	return nil
}

func (r *Renderer) appendImages(parent *etree.Element, images []book.ResourceLocation) error {
	gallery := parent.CreateElement("div")
	gallery.CreateAttr("class", "image-gallery")
	for _, rl := range images {
		url, err := r.textures.Resolve(rl)
		if err != nil {
			return err
		}
		img := gallery.CreateElement("img")
		img.CreateAttr("class", "texture page-image")
		img.CreateAttr("src", url)
		img.CreateAttr("alt", rl.String())
		img.CreateAttr("loading", "lazy")
	}
	return nil
}
