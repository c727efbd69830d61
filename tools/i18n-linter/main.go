// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that every message ID referenced from Go code exists in
// the English catalog, that other catalogs carry the same IDs, and lists
// catalog entries nothing references.
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	// keyLiteral matches any string literal shaped like a message ID, e.g.
	// "validation.email_invalid". It decides what counts as referenced.
	keyLiteral = regexp.MustCompile(`"([a-z]+\.[a-z0-9_.]+)"`)
	// keyCall matches IDs passed to T/Tf or to validation's fail helper.
	// Only these must exist in the catalog.
	keyCall = regexp.MustCompile(`(?:\bTf?\(|\bfail\(\w+,)\s*"([a-z]+\.[a-z0-9_.]+)"`)
)

// Report is the outcome of one lint run.
type Report struct {
	// Unknown IDs are used in code but absent from the primary catalog.
	Unknown []string
	// Missing maps a secondary catalog to the primary IDs it lacks.
	Missing map[string][]string
	// Orphaned IDs are in the primary catalog but never referenced.
	Orphaned []string
}

// Failed reports whether the run found blocking problems. Orphans only warn.
func (r Report) Failed() bool {
	if len(r.Unknown) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	fmt.Println("Running i18n linter...")
	r, err := lint(projectRoot, localesDir, primaryLocale)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	printList("Unknown message IDs (used in code, not in "+primaryLocale+")", r.Unknown)
	files := make([]string, 0, len(r.Missing))
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		printList("Missing in "+f, r.Missing[f])
	}
	printList("Orphaned message IDs", r.Orphaned)

	if r.Failed() {
		fmt.Println("Found issues that need to be addressed.")
		os.Exit(1)
	}
	fmt.Println("All translation files are consistent.")
}

func printList(title string, items []string) {
	fmt.Printf("--- %s ---\n", title)
	if len(items) == 0 {
		fmt.Println("  none")
		return
	}
	for _, it := range items {
		fmt.Printf("  - %s\n", it)
	}
}

func lint(root, locales, primary string) (Report, error) {
	used, called, err := findUsedKeys(root)
	if err != nil {
		return Report{}, fmt.Errorf("scan sources: %w", err)
	}
	primaryKeys, err := loadKeysFromLocale(filepath.Join(locales, primary))
	if err != nil {
		return Report{}, fmt.Errorf("load primary locale %s: %w", primary, err)
	}

	r := Report{Missing: map[string][]string{}}
	for k := range called {
		if _, ok := primaryKeys[k]; !ok {
			r.Unknown = append(r.Unknown, k)
		}
	}
	for k := range primaryKeys {
		if _, ok := used[k]; !ok {
			r.Orphaned = append(r.Orphaned, k)
		}
	}

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return Report{}, err
	}
	for _, f := range files {
		if filepath.Base(f) == primary {
			continue
		}
		keys, err := loadKeysFromLocale(f)
		if err != nil {
			return Report{}, fmt.Errorf("load %s: %w", f, err)
		}
		var missing []string
		for k := range primaryKeys {
			if _, ok := keys[k]; !ok {
				missing = append(missing, k)
			}
		}
		sort.Strings(missing)
		r.Missing[filepath.Base(f)] = missing
	}

	sort.Strings(r.Unknown)
	sort.Strings(r.Orphaned)
	return r, nil
}

// findUsedKeys scans non-test Go files outside tools/. It returns every
// ID-shaped literal and the subset passed to a translation call.
func findUsedKeys(root string) (literals, called map[string]struct{}, err error) {
	literals = make(map[string]struct{})
	called = make(map[string]struct{})
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || name == "_examples" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyLiteral.FindAllStringSubmatch(string(content), -1) {
			literals[m[1]] = struct{}{}
		}
		for _, m := range keyCall.FindAllStringSubmatch(string(content), -1) {
			called[m[1]] = struct{}{}
		}
		return nil
	})
	return literals, called, err
}

// loadKeysFromLocale reads a YAML catalog and returns its flattened IDs.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML turns nested maps into dot-separated IDs. Flat catalogs pass
// through unchanged.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
