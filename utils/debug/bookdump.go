package debug

import (
	"pdc/book"
)

// DumpBook renders the whole loaded book as an indented tree. Stored in the
// debug report so structural loading problems can be diagnosed without the
// source resources.
func DumpBook(b *book.Book) string {
	tw := NewTreeWriter()
	tw.Line(0, "book %s", b.ID)
	tw.TextBlock(1, "name", b.Name)
	if b.LandingText != nil {
		tw.TextBlock(1, "landing", b.LandingText.AsPlainText())
	}
	tw.Line(1, "macros: %d", len(b.Macros))
	tw.Line(1, "recipes: %d", len(b.Recipes))
	for _, category := range b.Categories {
		dumpCategory(tw, category)
	}
	return tw.String()
}

func dumpCategory(tw *TreeWriter, c *book.Category) {
	tw.Line(1, "category %s (sortnum=%d, secret=%v)", c.ID, c.Sortnum, c.Secret)
	tw.TextBlock(2, "name", c.Name)
	if !c.Icon.ID.IsZero() {
		tw.Line(2, "icon %s", c.Icon.ID)
	}
	for _, entry := range c.Entries {
		dumpEntry(tw, entry)
	}
}

func dumpEntry(tw *TreeWriter, e *book.Entry) {
	tw.Line(2, "entry %s (sortnum=%d, spoiler=%v)", e.ID, e.Sortnum, e.IsSpoiler())
	tw.TextBlock(3, "name", e.Name)
	for i, page := range e.Pages {
		dumpPage(tw, i, page)
	}
}

func dumpPage(tw *TreeWriter, index int, p *book.Page) {
	tw.Line(3, "page %d %s", index, p.Kind)
	if p.Anchor != "" {
		tw.Line(4, "anchor %s", p.Anchor)
	}
	if p.Title != "" {
		tw.TextBlock(4, "title", p.Title)
	}
	if p.Text != nil {
		tw.TextBlock(4, "text", p.Text.AsPlainText())
	}
	for _, recipe := range p.Recipes {
		tw.Line(4, "recipe %s -> %s", recipe.ID, recipe.Result)
	}
	if p.Kind == book.PageSpotlight {
		tw.Line(4, "item %s", p.Item)
	}
	for _, image := range p.Images {
		tw.Line(4, "image %s", image)
	}
}
