package importdb

import (
	"os"
	"path/filepath"
	"sort"
)

// defaultPathEntry is the sentinel directory consulted when a path list
// entry is "-" or "...". Mirrors pyflyby's own default of a single
// dotfile directory in the user's home.
const defaultPathEntry = "~/.pyflyby"

// ancestorSentinel means "also search every ancestor directory of the
// target file for a same-named entry, deepest first".
const ancestorSentinel = ".../.pyflyby"

// expandUser resolves a leading "~" to the user's home directory.
func expandUser(path string) string {
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ResolvePathList expands a raw path-list entry (as passed to --db) into
// the ordered list of concrete file/directory roots to scan (§4.7 "Path
// resolution"). targetFile is the file being rewritten, needed to anchor
// the ".../.pyflyby" ancestor walk; it may be "" if unknown (the
// ancestor sentinel then expands to nothing).
func ResolvePathList(entries []string, targetFile string) []string {
	var out []string
	for _, e := range entries {
		switch e {
		case "-", "...":
			out = append(out, defaultPathEntry)
		case ancestorSentinel:
			out = append(out, ancestorRoots(targetFile)...)
		default:
			out = append(out, e)
		}
	}
	return expandAll(out)
}

func expandAll(roots []string) []string {
	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = expandUser(r)
	}
	return out
}

// ancestorRoots walks every ancestor directory of targetFile, deepest
// first, looking for a ".pyflyby" entry (file or directory) in each;
// every one found is a root, in deepest-to-shallowest order.
func ancestorRoots(targetFile string) []string {
	if targetFile == "" {
		return nil
	}
	abs, err := filepath.Abs(targetFile)
	if err != nil {
		return nil
	}
	dir := filepath.Dir(abs)
	var roots []string
	for {
		candidate := filepath.Join(dir, ".pyflyby")
		if _, err := os.Stat(candidate); err == nil {
			roots = append(roots, candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return roots
}

// contributorExtension is the target-language source extension scanned
// within a directory root.
const contributorExtension = ".py"

// listContributorFiles returns every regular file in root matching
// contributorExtension, recursively, in stable (locale-independent)
// sorted order — root itself may also be a single file, returned alone.
// A root that no longer exists yields no files and no error, per §4.10's
// "tolerant of files that vanish mid-scan" suspension rule.
func listContributorFiles(root string, ignore *ignoreMatcher) []string {
	info, err := os.Stat(root)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		if filepath.Ext(root) == contributorExtension {
			return []string{root}
		}
		return nil
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // tolerate a vanished entry, keep walking
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != contributorExtension {
			return nil
		}
		if ignore != nil && ignore.matches(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return files
}
