package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceRoots are the trees whose Go code is counted per package.
var sourceRoots = []string{"cmd", "internal", "pkg"}

// assetExts are the embedded non-Go files shipped inside the binary.
var assetExts = map[string]bool{".sql": true, ".tmpl": true}

type pkgStats struct {
	Prod  int `json:"prod"`
	Test  int `json:"test"`
	Asset int `json:"asset,omitempty"`
}

type statsRecord struct {
	Packages map[string]*pkgStats `json:"packages"`
	Prod     int                  `json:"prod"`
	Test     int                  `json:"test"`
	Asset    int                  `json:"asset"`
	DocWords int                  `json:"doc_words"`
}

// Stats prints line counts per package, including embedded templates and
// SQL, and the word count of the top-level Markdown documents.
func Stats() error {
	rec := statsRecord{Packages: map[string]*pkgStats{}}

	for _, root := range sourceRoots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return filepath.SkipDir
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext != ".go" && !assetExts[ext] {
				return nil
			}
			n, err := lineCount(path)
			if err != nil {
				return err
			}
			pkg := packageOf(path)
			ps := rec.Packages[pkg]
			if ps == nil {
				ps = &pkgStats{}
				rec.Packages[pkg] = ps
			}
			switch {
			case assetExts[ext]:
				ps.Asset += n
				rec.Asset += n
			case strings.HasSuffix(path, "_test.go"):
				ps.Test += n
				rec.Test += n
			default:
				ps.Prod += n
				rec.Prod += n
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", root, err)
		}
	}

	docs, err := filepath.Glob("*.md")
	if err != nil {
		return err
	}
	sort.Strings(docs)
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			return err
		}
		rec.DocWords += len(strings.Fields(string(data)))
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// packageOf maps a file to its Go package directory. Template files roll up
// into the package that embeds them.
func packageOf(path string) string {
	dir := filepath.ToSlash(filepath.Dir(path))
	return strings.TrimSuffix(dir, "/templates")
}

// lineCount counts newline-terminated lines, plus a final unterminated one.
func lineCount(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n, nil
}
