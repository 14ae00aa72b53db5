package book

import (
	"cmp"
	"slices"

	"github.com/maruel/natural"
)

// Resolved book model. The loader builds these from raw JSON resources,
// everything below is fully localized and cross referenced.

// Book is a loaded Patchouli style book with categories sorted for display.
type Book struct {
	ID          ResourceLocation
	Name        string
	LandingText *FormatNode
	Macros      map[string]string
	Categories  []*Category
	Recipes     map[string]*CraftingRecipe
}

// Category groups entries. Secret categories render behind a spoiler wrapper.
type Category struct {
	ID          ResourceLocation
	Name        string
	Description *FormatNode
	Icon        ItemStack
	Parent      ResourceLocation
	Sortnum     int
	Secret      bool
	Entries     []*Entry
}

// Entry is a single article of a category. An entry gated behind an
// advancement is treated as a spoiler.
type Entry struct {
	ID          ResourceLocation
	Name        string
	Icon        ItemStack
	Sortnum     int
	Advancement ResourceLocation
	Pages       []*Page
}

// IsSpoiler reports whether entry content must be visually obscured until the
// reader opts in.
func (e *Entry) IsSpoiler() bool {
	return !e.Advancement.IsZero()
}

// PageKind distinguishes page variants. Values match the "type" field of page
// JSON with the default namespace applied.
type PageKind string

const (
	PageText      PageKind = "patchouli:text"
	PageCrafting  PageKind = "patchouli:crafting"
	PageSpotlight PageKind = "patchouli:spotlight"
	PageImage     PageKind = "patchouli:image"
)

// Page is one page of an entry. Only fields relevant to the page kind are
// populated.
type Page struct {
	Kind   PageKind
	Anchor string
	Title  string
	Text   *FormatNode

	// crafting
	Recipes []*CraftingRecipe

	// spotlight
	Item ItemStack

	// image
	Images []ResourceLocation
}

// sortCategories orders categories by sortnum, breaking ties with natural
// name order so "chapter 2" sorts before "chapter 10".
func sortCategories(categories []*Category) {
	slices.SortStableFunc(categories, func(a, b *Category) int {
		if c := cmp.Compare(a.Sortnum, b.Sortnum); c != 0 {
			return c
		}
		if a.Name != b.Name && natural.Less(a.Name, b.Name) {
			return -1
		}
		if a.Name == b.Name {
			return 0
		}
		return 1
	})
}

func sortEntries(entries []*Entry) {
	slices.SortStableFunc(entries, func(a, b *Entry) int {
		if c := cmp.Compare(a.Sortnum, b.Sortnum); c != 0 {
			return c
		}
		if a.Name != b.Name && natural.Less(a.Name, b.Name) {
			return -1
		}
		if a.Name == b.Name {
			return 0
		}
		return 1
	})
}
