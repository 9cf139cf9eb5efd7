// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category selects the tag and platform defaults applied to a blueprint.
type Category int

const (
	Core Category = iota
	Language
	Technology
	Task
)

var categoryNames = [...]string{
	Core:       "core",
	Language:   "language",
	Technology: "technology",
	Task:       "task",
}

// Folders lists the category folders recognized under a rules root, in
// discovery order.
var Folders = []string{"core", "languages", "technologies", "stacks", "tasks", "assistants", "tools"}

// folderCategories maps folder names to categories. Folders absent from
// the map fall back to Core.
var folderCategories = map[string]Category{
	"core":         Core,
	"languages":    Language,
	"technologies": Technology,
	"stacks":       Technology,
	"tasks":        Task,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{Core, Language, Technology, Task}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(s, name) {
			return Category(i), nil
		}
	}
	return Core, fmt.Errorf("unknown category %q", s)
}

// CategoryFromPath derives the category from the nearest recognized folder
// in path and returns that folder name. Paths outside any recognized
// folder are Core with an empty folder.
func CategoryFromPath(path string) (Category, string) {
	segments := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		for _, folder := range Folders {
			if seg != folder {
				continue
			}
			if c, ok := folderCategories[seg]; ok {
				return c, seg
			}
			return Core, seg
		}
	}
	return Core, ""
}
