package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Loading of the raw JSON resource tree into the resolved model. Resource
// directories are searched in order, first match wins - this is how resource
// pack overrides work for us.

// defaultMacros are the formatting macros every book gets before its own.
var defaultMacros = map[string]string{
	"$(obf)":     "$(k)",
	"$(bold)":    "$(l)",
	"$(strike)":  "$(m)",
	"$(italic)":  "$(o)",
	"$(italics)": "$(o)",
	"$(list":     "$(li",
	"$(reset)":   "$()",
	"$(clear)":   "$()",
	"$(2br)":     "$(br2)",
	"$(p)":       "$(br2)",
	"/$":         "$()",
	"<br>":       "$(br)",
	"$(item)":    "$(#b0b)",
	"$(thing)":   "$(#490)",
}

// Localizer resolves UI strings, implemented by the lang package. Keys with
// no translation either resolve to themselves or fail depending on
// configuration.
type Localizer interface {
	Localize(key string) (string, error)
}

type Loader struct {
	dirs []string
	lang string
	i18n Localizer
	log  *zap.Logger
}

func NewLoader(dirs []string, lang string, i18n Localizer, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{dirs: dirs, lang: lang, i18n: i18n, log: log.Named("book")}
}

// jsonUnmarshalStrict decodes JSON rejecting fields we do not know about.
func jsonUnmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// readResource returns content of the first file matching the relative path
// across resource directories.
func (l *Loader) readResource(rel string) ([]byte, error) {
	for _, dir := range l.dirs {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("resource %q not found in any resource directory: %w", rel, fs.ErrNotExist)
}

// listResources returns relative paths of all *.json files under the given
// relative directory across resource directories, without duplicates (first
// directory wins).
func (l *Loader) listResources(rel string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, dir := range l.dirs {
		root := filepath.Join(dir, filepath.FromSlash(rel))
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return filepath.SkipAll
				}
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".json") {
				return nil
			}
			sub, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			sub = filepath.ToSlash(sub)
			if !seen[sub] {
				seen[sub] = true
				out = append(out, path.Join(rel, sub))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

type rawBook struct {
	Name        string            `json:"name"`
	LandingText string            `json:"landing_text"`
	Macros      map[string]string `json:"macros"`
	Version     json.RawMessage   `json:"version"`
	Creator     string            `json:"creative_tab"`
}

type rawCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Parent      string `json:"parent"`
	Flag        string `json:"flag"`
	Sortnum     int    `json:"sortnum"`
	Secret      bool   `json:"secret"`
}

type rawEntry struct {
	Name        string            `json:"name"`
	Category    ResourceLocation  `json:"category"`
	Icon        string            `json:"icon"`
	Sortnum     int               `json:"sortnum"`
	Advancement string            `json:"advancement"`
	Flag        string            `json:"flag"`
	Pages       []json.RawMessage `json:"pages"`
}

type rawPage struct {
	Type    string           `json:"type"`
	Anchor  string           `json:"anchor"`
	Title   string           `json:"title"`
	Text    string           `json:"text"`
	Recipe  ResourceLocation `json:"recipe"`
	Recipe2 ResourceLocation `json:"recipe2"`
	Item    string           `json:"item"`
	Images  []string         `json:"images"`
	Border  bool             `json:"border"`
}

// localize resolves a string which may be a localization key. Plain text is
// returned unchanged.
func (l *Loader) localize(s string) (string, error) {
	if l.i18n == nil || !strings.Contains(s, ".") || strings.ContainsAny(s, " \n") {
		return s, nil
	}
	return l.i18n.Localize(s)
}

// Load reads the book with the given id from the resource directories,
// resolving localization, format trees and recipe references.
func (l *Loader) Load(id ResourceLocation) (*Book, error) {
	bookDir := path.Join("data", id.Namespace, "patchouli_books", id.Path)

	data, err := l.readResource(path.Join(bookDir, "book.json"))
	if err != nil {
		return nil, fmt.Errorf("unable to read book definition: %w", err)
	}
	var raw rawBook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed book definition for %s: %w", id, err)
	}

	book := &Book{
		ID:      id,
		Macros:  make(map[string]string, len(defaultMacros)+len(raw.Macros)),
		Recipes: make(map[string]*CraftingRecipe),
	}
	for k, v := range defaultMacros {
		book.Macros[k] = v
	}
	for k, v := range raw.Macros {
		book.Macros[k] = v
	}

	if book.Name, err = l.localize(raw.Name); err != nil {
		return nil, err
	}
	if raw.LandingText != "" {
		text, err := l.localize(raw.LandingText)
		if err != nil {
			return nil, err
		}
		if book.LandingText, err = ParseFormatString(text, book.Macros); err != nil {
			return nil, fmt.Errorf("book landing text: %w", err)
		}
	}

	categories, err := l.loadCategories(id, bookDir, book)
	if err != nil {
		return nil, err
	}
	if err := l.loadEntries(id, bookDir, book, categories); err != nil {
		return nil, err
	}

	for _, cat := range categories {
		sortEntries(cat.Entries)
		book.Categories = append(book.Categories, cat)
	}
	sortCategories(book.Categories)

	l.log.Info("Loaded book",
		zap.String("id", id.String()),
		zap.Int("categories", len(book.Categories)),
		zap.Int("recipes", len(book.Recipes)))
	return book, nil
}

func (l *Loader) loadCategories(id ResourceLocation, bookDir string, book *Book) (map[string]*Category, error) {
	categoriesDir := path.Join(bookDir, l.lang, "categories")
	files, err := l.listResources(categoriesDir)
	if err != nil {
		return nil, err
	}

	categories := make(map[string]*Category, len(files))
	for _, file := range files {
		data, err := l.readResource(file)
		if err != nil {
			return nil, err
		}
		var raw rawCategory
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("malformed category %s: %w", file, err)
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(file, categoriesDir+"/"), ".json")
		cat := &Category{
			ID:      ResourceLocation{Namespace: id.Namespace, Path: rel},
			Sortnum: raw.Sortnum,
			Secret:  raw.Secret,
		}
		if cat.Name, err = l.localize(raw.Name); err != nil {
			return nil, err
		}
		if raw.Description != "" {
			text, err := l.localize(raw.Description)
			if err != nil {
				return nil, err
			}
			if cat.Description, err = ParseFormatString(text, book.Macros); err != nil {
				return nil, fmt.Errorf("category %s description: %w", cat.ID, err)
			}
		}
		if raw.Icon != "" {
			if cat.Icon, err = ParseItemStack(raw.Icon); err != nil {
				return nil, fmt.Errorf("category %s icon: %w", cat.ID, err)
			}
		}
		if raw.Parent != "" {
			if cat.Parent, err = ParseResourceLocation(raw.Parent); err != nil {
				return nil, fmt.Errorf("category %s parent: %w", cat.ID, err)
			}
		}
		categories[cat.ID.Path] = cat
	}
	return categories, nil
}

func (l *Loader) loadEntries(id ResourceLocation, bookDir string, book *Book, categories map[string]*Category) error {
	entriesDir := path.Join(bookDir, l.lang, "entries")
	files, err := l.listResources(entriesDir)
	if err != nil {
		return err
	}

	for _, file := range files {
		data, err := l.readResource(file)
		if err != nil {
			return err
		}
		var raw rawEntry
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("malformed entry %s: %w", file, err)
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(file, entriesDir+"/"), ".json")
		entry := &Entry{
			ID:      ResourceLocation{Namespace: id.Namespace, Path: rel},
			Sortnum: raw.Sortnum,
		}
		if entry.Name, err = l.localize(raw.Name); err != nil {
			return err
		}
		if raw.Icon != "" {
			if entry.Icon, err = ParseItemStack(raw.Icon); err != nil {
				return fmt.Errorf("entry %s icon: %w", entry.ID, err)
			}
		}
		if raw.Advancement != "" {
			if entry.Advancement, err = ParseResourceLocation(raw.Advancement); err != nil {
				return fmt.Errorf("entry %s advancement: %w", entry.ID, err)
			}
		}

		for i, pageData := range raw.Pages {
			page, err := l.loadPage(book, pageData)
			if err != nil {
				return fmt.Errorf("entry %s page %d: %w", entry.ID, i, err)
			}
			entry.Pages = append(entry.Pages, page)
		}

		cat, ok := categories[raw.Category.Path]
		if !ok {
			return fmt.Errorf("entry %s references unknown category %s", entry.ID, raw.Category)
		}
		cat.Entries = append(cat.Entries, entry)
	}
	return nil
}

func (l *Loader) loadPage(book *Book, data json.RawMessage) (*Page, error) {
	// pages may also be plain strings, shorthand for a text page
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil, err
		}
		data = []byte(fmt.Sprintf(`{"type":"patchouli:text","text":%s}`, jsonQuote(text)))
	}

	var raw rawPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed page: %w", err)
	}
	if raw.Type == "" {
		return nil, fmt.Errorf("page has no type")
	}
	kind, err := ParseResourceLocation(raw.Type)
	if err != nil {
		return nil, err
	}

	page := &Page{Kind: PageKind(kind.String()), Anchor: raw.Anchor}
	if page.Title, err = l.localize(raw.Title); err != nil {
		return nil, err
	}
	if raw.Text != "" {
		text, err := l.localize(raw.Text)
		if err != nil {
			return nil, err
		}
		if page.Text, err = ParseFormatString(text, book.Macros); err != nil {
			return nil, err
		}
	}

	switch page.Kind {
	case PageText:
	case PageCrafting:
		for _, rid := range []ResourceLocation{raw.Recipe, raw.Recipe2} {
			if rid.IsZero() {
				continue
			}
			recipe, err := l.loadRecipe(book, rid)
			if err != nil {
				return nil, err
			}
			page.Recipes = append(page.Recipes, recipe)
		}
		if len(page.Recipes) == 0 {
			return nil, fmt.Errorf("crafting page has no recipes")
		}
	case PageSpotlight:
		if raw.Item == "" {
			return nil, fmt.Errorf("spotlight page has no item")
		}
		if page.Item, err = ParseItemStack(raw.Item); err != nil {
			return nil, err
		}
	case PageImage:
		for _, img := range raw.Images {
			rl, err := ParseResourceLocation(img)
			if err != nil {
				return nil, err
			}
			page.Images = append(page.Images, rl)
		}
		if len(page.Images) == 0 {
			return nil, fmt.Errorf("image page has no images")
		}
	default:
		return nil, fmt.Errorf("page matches no known variant: %q", raw.Type)
	}
	return page, nil
}

// loadRecipe reads and caches a crafting recipe by id.
func (l *Loader) loadRecipe(book *Book, id ResourceLocation) (*CraftingRecipe, error) {
	if recipe, ok := book.Recipes[id.String()]; ok {
		return recipe, nil
	}
	data, err := l.readResource(path.Join("data", id.Namespace, "recipes", id.Path+".json"))
	if err != nil {
		return nil, fmt.Errorf("unable to read recipe %s: %w", id, err)
	}
	recipe, err := ParseCraftingRecipe(id, data)
	if err != nil {
		return nil, err
	}
	book.Recipes[id.String()] = recipe
	return recipe, nil
}

// jsonQuote quotes a string as a JSON literal.
func jsonQuote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
