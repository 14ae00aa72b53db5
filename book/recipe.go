package book

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Crafting recipe structures decoded from data/<namespace>/recipes/*.json.

// GridSize is the number of slots in a crafting grid, always 3x3 here.
const GridSize = 9

// IngredientKind distinguishes ingredient variants.
type IngredientKind string

const (
	// IngredientItem is a plain item reference, always a leaf.
	IngredientItem IngredientKind = "item"
	// IngredientConditional is a mod compatibility wrapper with alternative
	// ingredient lists. Nesting is only possible through Default/IfLoaded.
	IngredientConditional IngredientKind = "conditional"
)

// Ingredient is a crafting input, either a single item or a conditional group
// of alternatives.
type Ingredient struct {
	Kind     IngredientKind
	Item     ItemStack
	Default  []Ingredient
	IfLoaded []Ingredient
}

// UnmarshalJSON decodes the known ingredient shapes: {"item": id},
// {"tag": id} (treated as an item reference to the tag icon) and the
// conditional wrapper {"type": "...conditional", "default": [...],
// "if_loaded": [...]}. Anything else is a broken data pack and fails the
// decode instead of being dropped.
func (ing *Ingredient) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type     string          `json:"type"`
		Item     string          `json:"item"`
		Tag      string          `json:"tag"`
		Default  json.RawMessage `json:"default"`
		IfLoaded json.RawMessage `json:"if_loaded"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("malformed ingredient: %w", err)
	}

	switch {
	case probe.Default != nil || probe.IfLoaded != nil || strings.HasSuffix(probe.Type, "conditional"):
		ing.Kind = IngredientConditional
		if probe.Default != nil {
			if err := json.Unmarshal(probe.Default, &ing.Default); err != nil {
				return fmt.Errorf("malformed conditional ingredient default branch: %w", err)
			}
		}
		if probe.IfLoaded != nil {
			if err := json.Unmarshal(probe.IfLoaded, &ing.IfLoaded); err != nil {
				return fmt.Errorf("malformed conditional ingredient if_loaded branch: %w", err)
			}
		}
		return nil
	case probe.Item != "":
		stack, err := ParseItemStack(probe.Item)
		if err != nil {
			return err
		}
		ing.Kind = IngredientItem
		ing.Item = stack
		return nil
	case probe.Tag != "":
		stack, err := ParseItemStack(probe.Tag)
		if err != nil {
			return err
		}
		ing.Kind = IngredientItem
		ing.Item = stack
		return nil
	default:
		return fmt.Errorf("ingredient matches no known variant: %s", string(data))
	}
}

// CraftingRecipe is a 3x3 crafting grid recipe. Ingredients slots follow grid
// order row by row, a nil slot is an empty (air) cell and must keep its
// position when rendered.
type CraftingRecipe struct {
	ID          ResourceLocation
	Type        ResourceLocation
	Ingredients [GridSize][]Ingredient
	Result      ItemStack
}

type rawRecipe struct {
	Type        ResourceLocation           `json:"type"`
	Pattern     []string                   `json:"pattern"`
	Key         map[string]json.RawMessage `json:"key"`
	Ingredients []json.RawMessage          `json:"ingredients"`
	Result      ItemStack                  `json:"result"`
	Group       string                     `json:"group"`
	Conditions  json.RawMessage            `json:"conditions"`
	Category    string                     `json:"category"`
	ShowNotif   *bool                      `json:"show_notification"`
}

// decodeIngredientList decodes a slot value which may be a single ingredient
// object or an array of alternatives.
func decodeIngredientList(data json.RawMessage) ([]Ingredient, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []Ingredient
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var single Ingredient
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []Ingredient{single}, nil
}

// ParseCraftingRecipe decodes a shaped or shapeless crafting recipe.
func ParseCraftingRecipe(id ResourceLocation, data []byte) (*CraftingRecipe, error) {
	var raw rawRecipe
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed recipe %s: %w", id, err)
	}

	recipe := &CraftingRecipe{ID: id, Type: raw.Type, Result: raw.Result}
	if recipe.Result.ID.IsZero() {
		return nil, fmt.Errorf("recipe %s has no result", id)
	}

	switch {
	case len(raw.Pattern) > 0:
		if len(raw.Pattern) > 3 {
			return nil, fmt.Errorf("recipe %s pattern has %d rows, at most 3 supported", id, len(raw.Pattern))
		}
		for row, line := range raw.Pattern {
			if len(line) > 3 {
				return nil, fmt.Errorf("recipe %s pattern row %d is too wide", id, row)
			}
			for col, sym := range []byte(line) {
				if sym == ' ' || sym == '.' {
					continue
				}
				keyed, ok := raw.Key[string(sym)]
				if !ok {
					return nil, fmt.Errorf("recipe %s pattern uses %q with no key entry", id, string(sym))
				}
				list, err := decodeIngredientList(keyed)
				if err != nil {
					return nil, fmt.Errorf("recipe %s key %q: %w", id, string(sym), err)
				}
				recipe.Ingredients[row*3+col] = list
			}
		}
	case len(raw.Ingredients) > 0:
		if len(raw.Ingredients) > GridSize {
			return nil, fmt.Errorf("recipe %s has %d ingredients, at most %d supported", id, len(raw.Ingredients), GridSize)
		}
		for i, data := range raw.Ingredients {
			list, err := decodeIngredientList(data)
			if err != nil {
				return nil, fmt.Errorf("recipe %s ingredient %d: %w", id, i, err)
			}
			recipe.Ingredients[i] = list
		}
	default:
		return nil, fmt.Errorf("recipe %s has neither pattern nor ingredients", id)
	}
	return recipe, nil
}
