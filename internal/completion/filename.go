package completion

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// filenameIsSpace matches readline's default: completion of an
// unquoted filename stops at whitespace.
func filenameIsSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// FilenameCompleter is quoted-word completion with quote chars `"` and `'`
// and escape char `\`, falling back to plain word completion on
// filenameIsSpace when the cursor isn't inside a quote (spec.md
// §4.6).
func FilenameCompleter() Func {
	word := WordCompleter(true, '\\', filenameIsSpace, listFiles)
	return QuotedWordCompleter([]rune{'"', '\''}, true, '\\', listFiles, word)
}

// listFiles resolves path (supporting a leading "~/") and lists the
// candidates whose name has the path's final segment as a prefix. rest is
// ignored: filename completion never looks at text right of the cursor.
func listFiles(path, _ string) []Completion {
	expanded, err := homedir.Expand(path)
	if err != nil {
		expanded = path
	}

	dir, file := filepath.Split(expanded)
	origDir, _ := filepath.Split(path) // keep the caller's original (un-expanded) prefix for replacement text

	lookupDir := dir
	if lookupDir == "" {
		lookupDir = "."
	}
	entries, err := os.ReadDir(lookupDir)
	if err != nil {
		return nil
	}

	var out []Completion
	for _, ent := range entries {
		name := ent.Name()
		if name == "." || name == ".." {
			continue
		}
		if !strings.HasPrefix(name, file) {
			continue
		}
		replacement := origDir + name
		isDir := ent.IsDir()
		if isDir {
			replacement += string(filepath.Separator)
		}
		out = append(out, Completion{
			Replacement: replacement,
			Display:     name,
			IsFinished:  !isDir,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Display < out[j].Display })
	return out
}
