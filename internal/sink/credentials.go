package sink

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoCredentials means none of the candidate credential files exist.
var ErrNoCredentials = errors.New("no credentials file found")

// ResolveCredentials returns the first path that is an existing regular file.
func ResolveCredentials(paths []string) (string, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNoCredentials, strings.Join(paths, ", "))
}
