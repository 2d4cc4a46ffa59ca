package utils

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//ListDir returns a sorted list of files/ directories in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if entries, err := os.ReadDir(path); err != nil {
		return nil, fmt.Errorf("ListDir: Error, got '%v'", err)
	} else {
		for _, e := range entries {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

//TrimExt returns file name without its extension ("match.mp4" -> "match")
func TrimExt(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}

	return name
}
