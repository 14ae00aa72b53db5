package book

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultNamespace is assumed when a resource location string carries no
// explicit namespace, same as the game does.
const DefaultNamespace = "minecraft"

// ResourceLocation identifies a resource as "namespace:path". Path may contain
// forward slashes.
type ResourceLocation struct {
	Namespace string
	Path      string
}

// ParseResourceLocation parses "namespace:path" falling back to the default
// namespace when none is present.
func ParseResourceLocation(s string) (ResourceLocation, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ResourceLocation{}, fmt.Errorf("empty resource location")
	}
	ns, path, found := strings.Cut(s, ":")
	if !found {
		return ResourceLocation{Namespace: DefaultNamespace, Path: ns}, nil
	}
	if ns == "" || path == "" {
		return ResourceLocation{}, fmt.Errorf("malformed resource location %q", s)
	}
	if strings.Contains(path, ":") {
		return ResourceLocation{}, fmt.Errorf("malformed resource location %q", s)
	}
	return ResourceLocation{Namespace: ns, Path: path}, nil
}

func (rl ResourceLocation) String() string {
	return rl.Namespace + ":" + rl.Path
}

func (rl ResourceLocation) IsZero() bool {
	return rl.Namespace == "" && rl.Path == ""
}

// BaseName returns the last path segment, used for permalinks and file names.
func (rl ResourceLocation) BaseName() string {
	if i := strings.LastIndexByte(rl.Path, '/'); i >= 0 {
		return rl.Path[i+1:]
	}
	return rl.Path
}

// LangKey builds a localization key of the form "prefix.namespace.path" with
// path separators flattened, matching the keys the game generates for
// registered objects.
func (rl ResourceLocation) LangKey(prefix string) string {
	return prefix + "." + rl.Namespace + "." + strings.ReplaceAll(rl.Path, "/", ".")
}

// UnmarshalJSON accepts a plain resource location string.
func (rl *ResourceLocation) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("resource location must be a string: %w", err)
	}
	parsed, err := ParseResourceLocation(s)
	if err != nil {
		return err
	}
	*rl = parsed
	return nil
}

// ItemStack is an item reference with an optional stack count, parsed from
// "namespace:path#count". Count of zero means unspecified and renders as a
// single item.
type ItemStack struct {
	ID    ResourceLocation
	Count int
}

// ParseItemStack parses "namespace:path" with an optional "#count" suffix.
func ParseItemStack(s string) (ItemStack, error) {
	id, count, found := strings.Cut(s, "#")
	rl, err := ParseResourceLocation(id)
	if err != nil {
		return ItemStack{}, err
	}
	stack := ItemStack{ID: rl}
	if found {
		n, err := strconv.Atoi(count)
		if err != nil || n <= 0 {
			return ItemStack{}, fmt.Errorf("malformed stack count in %q", s)
		}
		stack.Count = n
	}
	return stack, nil
}

func (is ItemStack) String() string {
	if is.Count > 1 {
		return is.ID.String() + "#" + strconv.Itoa(is.Count)
	}
	return is.ID.String()
}

// UnmarshalJSON accepts either a plain item id string (with optional #count)
// or an object with "item" and "count" fields as used in recipe results.
func (is *ItemStack) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("item stack must be a string or an object: %w", err)
		}
		parsed, err := ParseItemStack(s)
		if err != nil {
			return err
		}
		*is = parsed
		return nil
	}

	var obj struct {
		Item  ResourceLocation `json:"item"`
		Count int              `json:"count"`
	}
	if err := jsonUnmarshalStrict(data, &obj); err != nil {
		return err
	}
	if obj.Item.IsZero() {
		return fmt.Errorf("item stack object is missing item id")
	}
	is.ID = obj.Item
	is.Count = obj.Count
	return nil
}
