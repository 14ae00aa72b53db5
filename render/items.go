package render

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"pdc/book"
)

// AppendItem renders a single item cell: icon, localized tooltip and stack
// count badge. The first item of a slot is shown, alternatives after it start
// hidden and cycle into view client side.
func (r *Renderer) AppendItem(parent *etree.Element, stack book.ItemStack, first bool) error {
	name, err := r.i18n.LocalizeItem(stack)
	if err != nil {
		return err
	}
	url, err := r.textures.ResolveItem(stack.ID)
	if err != nil {
		return err
	}

	class := "item-texture"
	if !first {
		class += " cycle-textures"
	}
	wrapper := parent.CreateElement("div")
	wrapper.CreateAttr("class", class)
	wrapper.CreateAttr("title", name)

	img := wrapper.CreateElement("img")
	img.CreateAttr("class", "texture pixelated")
	img.CreateAttr("src", url)
	img.CreateAttr("alt", name)
	img.CreateAttr("loading", "lazy")

	if stack.Count > 1 {
		badge := wrapper.CreateElement("span")
		badge.CreateAttr("class", "stack-count")
		badge.SetText(strconv.Itoa(stack.Count))
	}
	return nil
}

// AppendIcon renders a small inline item icon without the slot chrome, used
// for category and entry headers.
func (r *Renderer) AppendIcon(parent *etree.Element, stack book.ItemStack) error {
	if stack.ID.IsZero() {
		return nil
	}
	name, err := r.i18n.LocalizeItem(stack)
	if err != nil {
		return err
	}
	url, err := r.textures.ResolveItem(stack.ID)
	if err != nil {
		return err
	}
	img := parent.CreateElement("img")
	img.CreateAttr("class", "texture pixelated header-icon")
	img.CreateAttr("src", url)
	img.CreateAttr("alt", name)
	img.CreateAttr("loading", "lazy")
	return nil
}

// AppendIngredients renders a slot's alternatives in order. Conditional
// groups contribute their default branch first, then the if_loaded branch,
// both flattened in place. Every ingredient below a conditional renders as a
// non first alternative regardless of its position, which keeps the initially
// visible item stable across mod load conditions.
func (r *Renderer) AppendIngredients(parent *etree.Element, ingredients []book.Ingredient, recursive bool) error {
	for i, ing := range ingredients {
		switch ing.Kind {
		case book.IngredientItem:
			first := i == 0 && !recursive
			if err := r.AppendItem(parent, ing.Item, first); err != nil {
				return err
			}
		case book.IngredientConditional:
			if err := r.AppendIngredients(parent, ing.Default, true); err != nil {
				return err
			}
			if err := r.AppendIngredients(parent, ing.IfLoaded, true); err != nil {
				return err
			}
		default:
			return fmt.Errorf("ingredient kind %q has no renderer", ing.Kind)
		}
	}
	return nil
}
