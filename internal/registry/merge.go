package registry

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Merge overlays local on top of global. Local entries win on alias
// collisions; neither input is modified.
func Merge(global, local Registries) Registries {
	merged := make(Registries, len(global)+len(local))
	for name, url := range global {
		merged[name] = url
	}
	for name, url := range local {
		merged[name] = url
	}
	return merged
}

// SortedAliases returns the aliases of r in display order.
func SortedAliases(r Registries) []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	collate.New(language.Und, collate.Numeric).SortStrings(names)
	return names
}
