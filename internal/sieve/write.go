package sieve

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteScripts writes each script to dest/<name>.sieve. Rule names are not
// unique, so a repeated name gets a numeric suffix.
func WriteScripts(scripts []SieveScript, dest string) ([]string, error) {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dest, err)
	}

	used := map[string]int{}
	var paths []string
	for _, s := range scripts {
		base := fileName(s.Name)
		used[base]++
		if n := used[base]; n > 1 {
			base += "-" + strconv.Itoa(n)
		}
		path := filepath.Join(dest, base+".sieve")
		if err := os.WriteFile(path, []byte(s.Content()), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func fileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return "unnamed"
	}
	return name
}
