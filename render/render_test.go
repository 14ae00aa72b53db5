package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap/zaptest"

	"pdc/assets"
	"pdc/book"
	"pdc/config"
	"pdc/lang"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "assets", "testmod", "lang", "en_us.json"), []byte(`{
		"item.minecraft.stick": "Stick",
		"item.minecraft.bone": "Bone",
		"block.minecraft.oak_planks": "Oak Planks",
		"pdc.gui.show_recipes": "Show recipes"
	}`))
	img := testPNG(t)
	for _, p := range []string{
		"assets/minecraft/textures/item/stick.png",
		"assets/minecraft/textures/item/bone.png",
		"assets/minecraft/textures/block/oak_planks.png",
		"assets/testmod/textures/page/shrine.png",
	} {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(p)), img)
	}

	log := zaptest.NewLogger(t)
	i18n, err := lang.Load([]string{dir}, "en_us", "en_us", true, log)
	if err != nil {
		t.Fatal(err)
	}
	idx, err := assets.Scan([]string{dir}, &config.TexturesConfig{Scale: config.TextureScaleModeNone, IconSize: 64}, nil, log)
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(i18n, idx, nil, log)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// serialize renders the children of root without the root element itself.
func serialize(t *testing.T, root *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(root.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		t.Fatal(err)
	}
	s = strings.TrimPrefix(s, "<root>")
	s = strings.TrimSuffix(s, "</root>")
	if strings.HasSuffix(s, "<root/>") {
		s = ""
	}
	return s
}

func newRoot() *etree.Element {
	return etree.NewDocument().CreateElement("root")
}

func mustItem(t *testing.T, s string) book.Ingredient {
	t.Helper()
	stack, err := book.ParseItemStack(s)
	if err != nil {
		t.Fatal(err)
	}
	return book.Ingredient{Kind: book.IngredientItem, Item: stack}
}

func TestAppendIngredientsOrder(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	slot := []book.Ingredient{mustItem(t, "stick"), mustItem(t, "bone"), mustItem(t, "oak_planks")}
	if err := r.AppendIngredients(root, slot, false); err != nil {
		t.Fatal(err)
	}

	divs := root.ChildElements()
	if len(divs) != 3 {
		t.Fatalf("got %d items, want 3", len(divs))
	}
	wantTitles := []string{"Stick", "Bone", "Oak Planks"}
	for i, div := range divs {
		if got := div.SelectAttrValue("title", ""); got != wantTitles[i] {
			t.Errorf("item %d title = %q, want %q", i, got, wantTitles[i])
		}
		cycles := strings.Contains(div.SelectAttrValue("class", ""), "cycle-textures")
		if i == 0 && cycles {
			t.Errorf("first item must not cycle")
		}
		if i > 0 && !cycles {
			t.Errorf("item %d must cycle", i)
		}
	}
}

func TestAppendIngredientsConditional(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	slot := []book.Ingredient{{
		Kind:     book.IngredientConditional,
		Default:  []book.Ingredient{mustItem(t, "stick")},
		IfLoaded: []book.Ingredient{mustItem(t, "bone"), mustItem(t, "oak_planks")},
	}}
	if err := r.AppendIngredients(root, slot, false); err != nil {
		t.Fatal(err)
	}

	divs := root.ChildElements()
	if len(divs) != 3 {
		t.Fatalf("got %d items, want both branches rendered (3 items)", len(divs))
	}
	if got := divs[0].SelectAttrValue("title", ""); got != "Stick" {
		t.Errorf("default branch must render before if_loaded, first item is %q", got)
	}
	for i, div := range divs {
		if !strings.Contains(div.SelectAttrValue("class", ""), "cycle-textures") {
			t.Errorf("item %d below a conditional must not be first", i)
		}
	}
}

func TestAppendIngredientsRecursiveNeverFirst(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	if err := r.AppendIngredients(root, []book.Ingredient{mustItem(t, "stick")}, true); err != nil {
		t.Fatal(err)
	}
	div := root.ChildElements()[0]
	if !strings.Contains(div.SelectAttrValue("class", ""), "cycle-textures") {
		t.Error("index 0 of a recursive call must not be first")
	}
}

func TestAppendIngredientsUnknownKind(t *testing.T) {
	r := newTestRenderer(t)
	err := r.AppendIngredients(newRoot(), []book.Ingredient{{Kind: "tagged"}}, false)
	if err == nil || !strings.Contains(err.Error(), "no renderer") {
		t.Fatalf("unknown ingredient kind must fail, got %v", err)
	}
}

func shapedRecipe(t *testing.T, id string) *book.CraftingRecipe {
	t.Helper()
	rl, err := book.ParseResourceLocation(id)
	if err != nil {
		t.Fatal(err)
	}
	recipe, err := book.ParseCraftingRecipe(rl, []byte(`{
		"type": "minecraft:crafting_shaped",
		"pattern": ["##", " #"],
		"key": {"#": {"item": "minecraft:stick"}},
		"result": {"item": "minecraft:bone", "count": 2}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return recipe
}

func TestAppendCraftingTablesSingleDisclosure(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	recipes := []*book.CraftingRecipe{shapedRecipe(t, "testmod:one"), shapedRecipe(t, "testmod:two")}
	if err := r.AppendCraftingTables(root, recipes); err != nil {
		t.Fatal(err)
	}

	out := serialize(t, root)
	if got := strings.Count(out, "<details"); got != 1 {
		t.Errorf("got %d disclosure wrappers, want exactly 1 for the whole block", got)
	}
	if got := strings.Count(out, `class="crafting-table"`); got != 2 {
		t.Errorf("got %d tables, want 2", got)
	}
	if !strings.Contains(out, "Show recipes") {
		t.Error("summary label is not localized")
	}
}

func TestAppendCraftingTablesGridGeometry(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	if err := r.AppendCraftingTables(root, []*book.CraftingRecipe{shapedRecipe(t, "testmod:one")}); err != nil {
		t.Fatal(err)
	}

	grid := root.FindElement("//div[@class='crafting-table-grid']")
	if grid == nil {
		t.Fatal("no grid rendered")
	}
	cells := grid.ChildElements()
	if len(cells) != book.GridSize {
		t.Fatalf("got %d grid cells, want %d", len(cells), book.GridSize)
	}
	// pattern ["##", " #"] fills slots 0, 1 and 4
	wantFilled := map[int]bool{0: true, 1: true, 4: true}
	for i, cell := range cells {
		filled := len(cell.ChildElements()) > 0
		if filled != wantFilled[i] {
			t.Errorf("cell %d filled = %v, want %v", i, filled, wantFilled[i])
		}
	}
}

func TestAppendCraftingTablesEmpty(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	if err := r.AppendCraftingTables(root, nil); err != nil {
		t.Fatal(err)
	}
	if len(root.ChildElements()) != 0 {
		t.Error("no recipes must render nothing, not an empty disclosure")
	}
}

func TestAppendResultList(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	one := shapedRecipe(t, "testmod:one")
	two := shapedRecipe(t, "testmod:two")
	stick, _ := book.ParseItemStack("minecraft:stick")
	one.Result = stick
	bone, _ := book.ParseItemStack("minecraft:bone")
	two.Result = bone

	if err := r.AppendResultList(root, []*book.CraftingRecipe{one, two}, "item", "Craftable results:", ", "); err != nil {
		t.Fatal(err)
	}
	want := "Craftable results: <code>stick</code>, <code>bone</code>."
	if got := serialize(t, root); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendResultListUnknownField(t *testing.T) {
	r := newTestRenderer(t)
	err := r.AppendResultList(newRoot(), []*book.CraftingRecipe{shapedRecipe(t, "testmod:one")}, "damage", "d", ", ")
	if err == nil || !strings.Contains(err.Error(), "no field") {
		t.Fatalf("unknown result field must fail, got %v", err)
	}
}

func parseFormat(t *testing.T, s string) *book.FormatNode {
	t.Helper()
	node, err := book.ParseFormatString(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestAppendFormatTreeText(t *testing.T) {
	r := newTestRenderer(t)
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"newline", "a\nb", "a<br/>b"},
		{"breaks only between fragments", "a\nb\n", "a<br/>b<br/>"},
		{"empty", "", ""},
		{"bold", "a$(l)b$()c", "a<strong>b</strong>c"},
		{"color", "$(#1fc)x$()", `<span style="color: #11ffcc">x</span>`},
		{"link", "$(l:https://example.com)x$(/l)", `<a href="https://example.com">x</a>`},
		{"entry link", "$(l:basics/start)x$(/l)", `<a href="#basics-start">x</a>`},
		{"tooltip", "$(t:hi there)x$(/t)", `<span class="has-tooltip" title="hi there">x</span>`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root := newRoot()
			if err := r.AppendFormatTree(root, parseFormat(t, c.in)); err != nil {
				t.Fatal(err)
			}
			if got := serialize(t, root); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestNewRejectsIncompleteStyleTable(t *testing.T) {
	styles := DefaultStyles()
	delete(styles, book.StyleTooltip)
	if _, err := New(nil, nil, styles, nil); err == nil {
		t.Fatal("incomplete style table must fail at construction")
	}
}

func TestAnchorName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"basics/getting_started", "basics-getting-started"},
		{"basics/getting_started#crafting", "basics-getting-started-crafting"},
		{"intro", "intro"},
	}
	for _, c := range cases {
		if got := anchorName(c.in); got != c.want {
			t.Errorf("anchorName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLinkTarget(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://example.com/page", "https://example.com/page"},
		{"basics/start", "#basics-start"},
		{"intro#top", "#intro-top"},
	}
	for _, c := range cases {
		if got := linkTarget(c.in); got != c.want {
			t.Errorf("linkTarget(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAppendSectionHeader(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	id, _ := book.ParseResourceLocation("testmod:basics/start")
	stack, _ := book.ParseItemStack("minecraft:stick")
	if err := r.AppendSectionHeader(root, 2, id, stack, "Getting Started"); err != nil {
		t.Fatal(err)
	}

	h := root.FindElement("//h2")
	if h == nil {
		t.Fatal("no h2 rendered")
	}
	if got := h.SelectAttrValue("id", ""); got != "basics-start" {
		t.Errorf("anchor = %q, want basics-start", got)
	}
	perma := h.FindElement("a[@class='permalink']")
	if perma == nil {
		t.Fatal("no permalink rendered")
	}
	if got := perma.SelectAttrValue("href", ""); got != "#basics-start" {
		t.Errorf("permalink href = %q, want #basics-start", got)
	}
}

func TestMaybeSpoilered(t *testing.T) {
	r := newTestRenderer(t)
	for _, spoiler := range []bool{false, true} {
		root := newRoot()
		err := r.MaybeSpoilered(root, spoiler, func(parent *etree.Element) error {
			parent.CreateElement("p")
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		out := serialize(t, root)
		wrapped := strings.Contains(out, `class="spoilered"`)
		if wrapped != spoiler {
			t.Errorf("spoiler=%v rendered %q", spoiler, out)
		}
	}
}

func TestAppendEntrySpoiler(t *testing.T) {
	r := newTestRenderer(t)
	root := newRoot()
	id, _ := book.ParseResourceLocation("testmod:secrets/hidden")
	adv, _ := book.ParseResourceLocation("testmod:main/root")
	entry := &book.Entry{
		ID:          id,
		Name:        "Hidden",
		Advancement: adv,
		Pages:       []*book.Page{{Kind: book.PageText, Text: parseFormat(t, "secret text")}},
	}
	if err := r.AppendEntry(root, entry, 3); err != nil {
		t.Fatal(err)
	}
	out := serialize(t, root)
	if !strings.Contains(out, `class="spoilered"`) {
		t.Error("advancement gated entry must render spoilered")
	}
	if !strings.Contains(out, "secret text") {
		t.Error("spoilered content must still be rendered")
	}
}

func TestAppendPageUnknownKind(t *testing.T) {
	r := newTestRenderer(t)
	id, _ := book.ParseResourceLocation("testmod:basics/start")
	entry := &book.Entry{ID: id, Name: "Start"}
	err := r.AppendPage(newRoot(), entry, &book.Page{Kind: "patchouli:multiblock"}, 4)
	if err == nil || !strings.Contains(err.Error(), "no renderer") {
		t.Fatalf("unknown page kind must fail, got %v", err)
	}
}
