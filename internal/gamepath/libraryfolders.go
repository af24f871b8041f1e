package gamepath

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/andygrunwald/vdf"
)

// Library is one entry of Steam's libraryfolders.vdf.
type Library struct {
	Path string
	Apps map[string]bool
}

// HasApp reports whether the library lists appID as installed.
func (l Library) HasApp(appID string) bool {
	return l.Apps[appID]
}

// LibraryFolders parses a libraryfolders.vdf file. Entries are returned in
// their numeric key order.
func LibraryFolders(path string) ([]Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root, ok := data["libraryfolders"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("parsing %s: missing libraryfolders section", path)
	}

	keys := make([]string, 0, len(root))
	for k := range root {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})

	var libs []Library
	for _, k := range keys {
		entry, ok := root[k].(map[string]interface{})
		if !ok {
			continue
		}
		p, _ := entry["path"].(string)
		if p == "" {
			continue
		}
		lib := Library{Path: p, Apps: map[string]bool{}}
		if apps, ok := entry["apps"].(map[string]interface{}); ok {
			for id := range apps {
				lib.Apps[id] = true
			}
		}
		libs = append(libs, lib)
	}
	return libs, nil
}
