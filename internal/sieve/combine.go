package sieve

import "strings"

// CombineScripts merges many SieveScript objects into a single script:
//
// - Merges every script's require list into one header.
// - Keeps all the IF blocks from each rule, separated by comments.
func CombineScripts(name string, scripts []SieveScript) SieveScript {
	exts := extSet{}
	var bodyChunks []string

	for _, sc := range scripts {
		exts.add(sc.Requires...)

		// Skip completely empty bodies
		content := strings.TrimSpace(sc.Body)
		if content == "" {
			continue
		}

		bodyChunks = append(bodyChunks, "# Rule: "+sc.Name)
		bodyChunks = append(bodyChunks, content)
		bodyChunks = append(bodyChunks, "") // blank line between rules
	}

	return SieveScript{
		Name:     name,
		Requires: exts.sorted(),
		Body:     strings.Join(bodyChunks, "\n"),
	}
}
