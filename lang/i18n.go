// Package lang resolves localization keys against the game's lang files.
package lang

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"pdc/book"
)

// I18n handles localization of strings. Lookup misses fall back to the
// default language and then, when allowed, to the key itself.
type I18n struct {
	lang         string
	allowMissing bool
	lookup       map[string]string
	fallback     map[string]string
	log          *zap.Logger
}

// tagFor converts a lang file name like "en_us" to a BCP 47 tag.
func tagFor(name string) language.Tag {
	return language.Make(strings.ReplaceAll(name, "_", "-"))
}

// ListLanguages returns names of all languages present in the resource
// directories, sorted.
func ListLanguages(dirs []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "assets", "*", "lang", "*.json"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			seen[strings.TrimSuffix(filepath.Base(m), ".json")] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// matchLanguage picks the closest available language for the requested one.
// Exact name match is preferred, otherwise BCP 47 matching decides, so
// requesting "en_gb" with only "en_us" present still works.
func matchLanguage(available []string, requested string) (string, error) {
	if len(available) == 0 {
		return "", fmt.Errorf("no languages available")
	}
	for _, name := range available {
		if name == requested {
			return name, nil
		}
	}
	tags := make([]language.Tag, len(available))
	for i, name := range available {
		tags[i] = tagFor(name)
	}
	matcher := language.NewMatcher(tags)
	_, index, conf := matcher.Match(tagFor(requested))
	if conf == language.No {
		return "", fmt.Errorf("no match for language %q among %s", requested, strings.Join(available, ", "))
	}
	return available[index], nil
}

// flatten converts nested objects into dot separated keys, lang files are
// allowed to group keys this way.
func flatten(prefix string, value any, into map[string]string) error {
	switch v := value.(type) {
	case string:
		into[prefix] = v
	case map[string]any:
		for k, child := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if err := flatten(key, child, into); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("lang value for %q is neither string nor object", prefix)
	}
	return nil
}

// loadLang merges all lang files for the given language across resource
// directories. Earlier directories win, same as everywhere else.
func loadLang(dirs []string, name string) (map[string]string, error) {
	lookup := make(map[string]string)
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "assets", "*", "lang", name+".json"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("malformed lang file %s: %w", m, err)
			}
			flat := make(map[string]string, len(raw))
			if err := flatten("", raw, flat); err != nil {
				return nil, fmt.Errorf("malformed lang file %s: %w", m, err)
			}
			for k, v := range flat {
				if _, exists := lookup[k]; !exists {
					lookup[k] = v
				}
			}
		}
	}
	if len(lookup) == 0 {
		return nil, fmt.Errorf("no lang files for %q: %w", name, fs.ErrNotExist)
	}
	return lookup, nil
}

// Load prepares localization for the requested language with fallback to the
// default one.
func Load(dirs []string, requested, fallback string, allowMissing bool, log *zap.Logger) (*I18n, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("i18n")

	available, err := ListLanguages(dirs)
	if err != nil {
		return nil, err
	}
	name, err := matchLanguage(available, requested)
	if err != nil {
		return nil, err
	}
	if name != requested {
		log.Warn("Requested language is not available, using closest match",
			zap.String("requested", requested), zap.String("using", name))
	}

	i18n := &I18n{lang: name, allowMissing: allowMissing, log: log}
	if i18n.lookup, err = loadLang(dirs, name); err != nil {
		return nil, err
	}
	if name != fallback {
		if i18n.fallback, err = loadLang(dirs, fallback); err != nil {
			log.Warn("Default language is not available, no fallback", zap.String("lang", fallback), zap.Error(err))
		}
	}
	log.Debug("Localization ready", zap.String("lang", name), zap.Int("keys", len(i18n.lookup)))
	return i18n, nil
}

// Lang returns the resolved language name.
func (i *I18n) Lang() string {
	return i.lang
}

func (i *I18n) tryLocalize(key string) (string, bool) {
	if v, ok := i.lookup[key]; ok {
		return v, true
	}
	if v, ok := i.fallback[key]; ok {
		return v, true
	}
	return "", false
}

// Localize resolves a localization key. Missing keys resolve to the key
// itself when allowed, otherwise fail - a missing translation usually means a
// broken resource pack and silently shipping raw keys is worse than stopping.
func (i *I18n) Localize(key string) (string, error) {
	if v, ok := i.tryLocalize(key); ok {
		return v, nil
	}
	if i.allowMissing {
		i.log.Debug("No translation", zap.String("key", key))
		return key, nil
	}
	return "", fmt.Errorf("no translation for %q in %q", key, i.lang)
}

// LocalizeItem resolves the display name of an item, trying the item key
// first and the block key second.
func (i *I18n) LocalizeItem(stack book.ItemStack) (string, error) {
	if name, ok := i.tryLocalize(stack.ID.LangKey("item")); ok {
		return name, nil
	}
	if name, ok := i.tryLocalize(stack.ID.LangKey("block")); ok {
		return name, nil
	}
	if i.allowMissing {
		return stack.ID.LangKey("item"), nil
	}
	return "", fmt.Errorf("no translation for item %q in %q", stack.ID, i.lang)
}
