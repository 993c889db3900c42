// Package pathutil repairs input paths mangled by shells that strip backslashes.
package pathutil

import (
	"os"
	"regexp"
	"runtime"
	"strings"
)

var mangledDrivePath = regexp.MustCompile(`^[A-Za-z]:[^\\/]`)

// Windows folder names that mark where a stripped separator used to be
var knownFolders = []string{
	"Users",
	"Desktop",
	"Documents",
	"Downloads",
	"Music",
	"Pictures",
	"Videos",
	"AppData",
	"OneDrive",
}

// Resolve returns path if it exists. Otherwise it tries a reconstruction of a
// mangled Windows path and, on Windows, slash-swapped variants, returning the
// first that exists. When nothing exists the original path is returned so the
// caller reports the path the user typed.
func Resolve(path string) string {
	if exists(path) {
		return path
	}

	candidates := []string{ReconstructWindowsPath(path)}
	if runtime.GOOS == "windows" {
		candidates = append(candidates,
			strings.ReplaceAll(path, `\`, "/"),
			strings.ReplaceAll(path, "/", `\`))
	}
	for _, c := range candidates {
		if c != path && exists(c) {
			return c
		}
	}
	return path
}

// ReconstructWindowsPath rebuilds a drive path whose separators were stripped,
// e.g. "C:UsersjohnDownloadsfile.txt" becomes `C:\Users\john\Downloads\file.txt`.
// Paths that still contain a separator, or in which no known folder name is
// found, are returned unchanged.
func ReconstructWindowsPath(path string) string {
	if !mangledDrivePath.MatchString(path) || strings.ContainsAny(path, `\/`) {
		return path
	}

	drive, rest := path[:2], path[2:]
	var parts []string
	found := false
	for rest != "" {
		i, folder := nextFolder(rest)
		if i < 0 {
			parts = append(parts, rest)
			break
		}
		found = true
		if i > 0 {
			parts = append(parts, rest[:i])
		}
		parts = append(parts, folder)
		rest = rest[i+len(folder):]
	}

	if !found {
		return path
	}
	return drive + `\` + strings.Join(parts, `\`)
}

// nextFolder finds the earliest known folder name in s
func nextFolder(s string) (int, string) {
	best, name := -1, ""
	for _, f := range knownFolders {
		if i := strings.Index(s, f); i >= 0 && (best < 0 || i < best) {
			best, name = i, f
		}
	}
	return best, name
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
