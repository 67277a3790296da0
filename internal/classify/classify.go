// Package classify maps file names to category directory names. The
// built-in extension table is data, not code branches, so adding a
// category never touches control flow.
package classify

import (
	"strings"

	"organizer/internal/errors"
	"organizer/pkg/types"

	"github.com/gobwas/glob"
)

// DefaultCategory is where files with an unknown or missing extension go.
const DefaultCategory = "Other"

// Extensions of this many characters or more are treated as unmatched.
const maxExtensionLength = 64

// extensionCategory pairs a lowercase extension (without dot) with the
// category directory name it maps to.
type extensionCategory struct {
	ext      string
	category string
}

// First exact match wins. Several extensions may share a category.
var extensionTable = []extensionCategory{
	{"jpg", "Images"},
	{"jpeg", "Images"},
	{"png", "Images"},
	{"gif", "Images"},
	{"bmp", "Images"},
	{"tif", "Images"},
	{"tiff", "Images"},
	{"svg", "Images"},

	{"txt", "Documents"},
	{"md", "Documents"},
	{"pdf", "Documents"},
	{"doc", "Documents"},
	{"docx", "Documents"},
	{"rtf", "Documents"},

	{"xls", "Spreadsheets"},
	{"xlsx", "Spreadsheets"},
	{"csv", "Spreadsheets"},

	{"ppt", "Presentations"},
	{"pptx", "Presentations"},

	{"mp3", "Audio"},
	{"wav", "Audio"},
	{"flac", "Audio"},
	{"aac", "Audio"},
	{"ogg", "Audio"},

	{"mp4", "Video"},
	{"mkv", "Video"},
	{"avi", "Video"},
	{"mov", "Video"},
	{"wmv", "Video"},

	{"zip", "Archives"},
	{"rar", "Archives"},
	{"7z", "Archives"},
	{"tar", "Archives"},
	{"gz", "Archives"},

	{"c", "Source"},
	{"h", "Source"},
	{"cpp", "Source"},
	{"hpp", "Source"},
	{"py", "Source"},
	{"java", "Source"},
	{"js", "Source"},
	{"ts", "Source"},
	{"cs", "Source"},
	{"go", "Source"},
	{"rb", "Source"},
	{"php", "Source"},
}

// Extension returns the extension of name without the dot. A name with no
// dot, or whose only dot is the leading character (dotfiles), has no
// extension.
func Extension(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return ""
	}
	return name[dot+1:]
}

// lowerASCII lowercases A-Z only; extensions are compared byte-wise.
func lowerASCII(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// CategoryFor returns the category directory for a file name. It always
// returns a category; unmatched and missing extensions map to
// DefaultCategory.
func CategoryFor(name string) string {
	ext := Extension(name)
	if ext == "" || len(ext) >= maxExtensionLength {
		return DefaultCategory
	}
	ext = lowerASCII(ext)
	for _, entry := range extensionTable {
		if entry.ext == ext {
			return entry.category
		}
	}
	return DefaultCategory
}

// RuleSet holds compiled user rules, consulted in order before the
// extension table. An empty (or nil) rule set classifies exactly like
// CategoryFor.
type RuleSet struct {
	rules []compiledRule
}

type compiledRule struct {
	matcher  glob.Glob
	category string
}

// NewRuleSet compiles the given rules.
func NewRuleSet(rules []types.Rule) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, r := range rules {
		g, err := glob.Compile(r.Match)
		if err != nil {
			return nil, errors.NewOrganizeError("invalid rule pattern", r.Match, errors.InvalidConfig, err)
		}
		rs.rules = append(rs.rules, compiledRule{matcher: g, category: r.Category})
	}
	return rs, nil
}

// CategoryFor returns the category for name, preferring user rules over
// the built-in extension table.
func (rs *RuleSet) CategoryFor(name string) string {
	if rs != nil {
		for _, r := range rs.rules {
			if r.matcher.Match(name) {
				return r.category
			}
		}
	}
	return CategoryFor(name)
}
