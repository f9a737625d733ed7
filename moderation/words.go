package moderation

import (
	"embed"
	"strings"
)

//go:embed censored/*
var censoredFS embed.FS

// LoadWords reads the embedded censored word lists, one word per line.
func LoadWords() ([]string, error) {
	entries, err := censoredFS.ReadDir("censored")
	if err != nil {
		return nil, err
	}

	var words []string
	for _, entry := range entries {
		data, err := censoredFS.ReadFile("censored/" + entry.Name())
		if err != nil {
			return nil, err
		}
		for _, line := range strings.Split(string(data), "\n") {
			if word := strings.TrimSpace(line); word != "" {
				words = append(words, word)
			}
		}
	}
	return words, nil
}
