package site

import (
	"fmt"

	"github.com/beevik/etree"

	"pdc/book"
	"pdc/render"
)

const stylesheetURL = "css/style.css"

// buildIndexDocument assembles the whole site page: head with the expanded
// title, table of contents, landing text and every category section.
func (g *Generator) buildIndexDocument(b *book.Book, title string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("lang", g.i18n.Lang())

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	viewport := head.CreateElement("meta")
	viewport.CreateAttr("name", "viewport")
	viewport.CreateAttr("content", "width=device-width, initial-scale=1")
	head.CreateElement("title").SetText(title)
	css := head.CreateElement("link")
	css.CreateAttr("rel", "stylesheet")
	css.CreateAttr("href", stylesheetURL)

	body := html.CreateElement("body")
	header := body.CreateElement("header")
	h1 := header.CreateElement("h1")
	h1.SetText(b.Name)

	if b.LandingText != nil {
		landing := header.CreateElement("p")
		landing.CreateAttr("class", "landing-text")
		if err := g.renderer.AppendFormatTree(landing, b.LandingText); err != nil {
			return nil, fmt.Errorf("landing text: %w", err)
		}
	}

	g.appendTableOfContents(body, b)

	main := body.CreateElement("main")
	for _, category := range b.Categories {
		if err := g.renderer.AppendCategory(main, category, 2); err != nil {
			return nil, fmt.Errorf("category %s: %w", category.ID, err)
		}
	}

	g.appendFooter(body)
	return doc, nil
}

func (g *Generator) appendTableOfContents(parent *etree.Element, b *book.Book) {
	nav := parent.CreateElement("nav")
	nav.CreateAttr("id", "table-of-contents")

	ul := nav.CreateElement("ul")
	for _, category := range b.Categories {
		li := ul.CreateElement("li")
		a := li.CreateElement("a")
		a.CreateAttr("href", "#"+render.AnchorFor(category.ID))
		a.SetText(category.Name)

		if len(category.Entries) == 0 {
			continue
		}
		sub := li.CreateElement("ul")
		for _, entry := range category.Entries {
			item := sub.CreateElement("li")
			link := item.CreateElement("a")
			link.CreateAttr("href", "#"+render.AnchorFor(entry.ID))
			link.SetText(entry.Name)
		}
	}
}

func (g *Generator) appendFooter(parent *etree.Element) {
	footer := parent.CreateElement("footer")
	footer.CreateAttr("class", "site-footer")
	footer.SetText(g.generatorTag)
	build := footer.CreateElement("span")
	build.CreateAttr("class", "build-id")
	build.SetText(g.buildID)
}
