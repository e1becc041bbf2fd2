package schema

import (
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModuleName derives the output module from a description path relative to
// the description root: models/user_profile.yaml becomes models/user_profile
func ModuleName(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// ClassName derives a class name from a module or file name:
// user_profile, user-profile and models/user.profile all become UserProfile
func ClassName(module string) string {
	base := path.Base(filepath.ToSlash(module))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '$'
	})
	// Casers carry state, so each call gets its own
	title := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(title.String(w))
	}
	name := sb.String()
	if name != "" && unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}
