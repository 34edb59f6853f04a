// Utilities for parsing cURL commands copied from browser DevTools.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlCredentials holds the auth headers extracted from a cURL command
// captured against the library API.
type CurlCredentials struct {
	DeveloperToken string // Authorization bearer token
	MediaUserToken string // Media-User-Token header value
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts credentials.
func ParseCurlFile(filepath string) (*CurlCredentials, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

var curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)

// ParseCurlCommand parses a cURL command string and extracts the
// Authorization and Media-User-Token headers.
func ParseCurlCommand(data []byte) (*CurlCredentials, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	creds := &CurlCredentials{}

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch key {
		case "authorization":
			creds.DeveloperToken = strings.TrimSpace(strings.TrimPrefix(value, "Bearer"))
		case "media-user-token", "music-user-token":
			creds.MediaUserToken = value
		}
	}

	if creds.DeveloperToken == "" && creds.MediaUserToken == "" {
		return nil, fmt.Errorf("no auth headers found in curl command")
	}

	return creds, nil
}
