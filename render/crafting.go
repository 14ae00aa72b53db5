package render

import (
	"fmt"

	"github.com/beevik/etree"

	"pdc/book"
)

// Localization keys for recipe chrome. Books routinely override these in
// their lang files, the defaults come from the bundled resources.
const (
	keyShowRecipes = "pdc.gui.show_recipes"
	keyCraftingAt  = "pdc.gui.crafting_at"
	keyRecipeArrow = "pdc.gui.recipe_result"
)

// AppendCraftingTables renders all recipes of a page under one collapsible
// disclosure. One wrapper per page regardless of recipe count, collapsing it
// hides every table at once.
func (r *Renderer) AppendCraftingTables(parent *etree.Element, recipes []*book.CraftingRecipe) error {
	if len(recipes) == 0 {
		return nil
	}
	label, err := r.i18n.Localize(keyShowRecipes)
	if err != nil {
		return err
	}

	details := parent.CreateElement("details")
	details.CreateAttr("class", "details-collapsible crafting-tables")
	summary := details.CreateElement("summary")
	summary.CreateAttr("class", "collapse-details")
	summary.CreateElement("span").SetText(label)

	for _, recipe := range recipes {
		if err := r.appendCraftingTable(details, recipe); err != nil {
			return fmt.Errorf("recipe %s: %w", recipe.ID, err)
		}
	}
	return nil
}

func (r *Renderer) appendCraftingTable(parent *etree.Element, recipe *book.CraftingRecipe) error {
	station, err := r.i18n.LocalizeItem(book.ItemStack{ID: recipe.Type})
	if err != nil {
		return err
	}
	caption, err := r.i18n.Localize(keyCraftingAt)
	if err != nil {
		return err
	}

	table := parent.CreateElement("div")
	table.CreateAttr("class", "crafting-table")
	table.CreateAttr("data-recipe", recipe.ID.String())

	head := table.CreateElement("h5")
	head.SetText(caption + " ")
	em := head.CreateElement("em")
	em.SetText(station)

	grid := table.CreateElement("div")
	grid.CreateAttr("class", "crafting-table-grid")
	for _, slot := range recipe.Ingredients {
		cell := grid.CreateElement("div")
		cell.CreateAttr("class", "crafting-table-slot")
		// empty slots keep their cell so the grid geometry survives
		if err := r.AppendIngredients(cell, slot, false); err != nil {
			return err
		}
	}

	arrow, err := r.i18n.Localize(keyRecipeArrow)
	if err != nil {
		return err
	}
	result := table.CreateElement("div")
	result.CreateAttr("class", "crafting-table-result")
	result.CreateAttr("title", arrow)
	return r.AppendItem(result, recipe.Result, true)
}

// AppendResultList renders a compact textual summary of recipe outputs:
// the description followed by one <code> element per recipe, separator
// joined, closed with a period. The field selector picks which result
// attribute is shown.
func (r *Renderer) AppendResultList(parent *etree.Element, recipes []*book.CraftingRecipe, field, description, separator string) error {
	appendText(parent, description+" ")
	for i, recipe := range recipes {
		if i > 0 {
			appendText(parent, separator)
		}
		value, err := r.resultField(recipe, field)
		if err != nil {
			return err
		}
		code := parent.CreateElement("code")
		code.SetText(value)
	}
	appendText(parent, ".")
	return nil
}

// resultField extracts the named attribute of a recipe result. An unknown
// field name is a template configuration error and fails the render.
func (r *Renderer) resultField(recipe *book.CraftingRecipe, field string) (string, error) {
	switch field {
	case "item":
		return recipe.Result.ID.Path, nil
	case "id":
		return recipe.Result.ID.String(), nil
	case "name":
		return r.i18n.LocalizeItem(recipe.Result)
	default:
		return "", fmt.Errorf("recipe result has no field %q", field)
	}
}
