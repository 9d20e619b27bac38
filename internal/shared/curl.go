// Utilities for parsing cURL commands.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlHeaders represents parsed headers from a cURL command.
type CurlHeaders struct {
	Headers map[string]string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*CurlHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// Accepts the "Copy as cURL" output from browser DevTools for a request made
// by a logged-in studio web session.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)

	headerRegex := regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)

	for _, match := range matches {
		var headerLine string
		if match[1] != "" {
			headerLine = match[1]
		} else {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			headers[key] = value
		}
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &CurlHeaders{Headers: headers}, nil
}

// BearerToken extracts the bearer token from the Authorization header, if present.
//
// A header with the Bearer scheme but no token value is treated the same as
// a missing header.
func (c *CurlHeaders) BearerToken() (string, error) {
	for key, value := range c.Headers {
		if !strings.EqualFold(key, "Authorization") {
			continue
		}
		fields := strings.Fields(value)
		switch {
		case len(fields) == 2 && strings.EqualFold(fields[0], "Bearer"):
			return fields[1], nil
		case len(fields) == 1 && !strings.EqualFold(fields[0], "Bearer"):
			return fields[0], nil
		}
		break
	}
	return "", fmt.Errorf("%w: no Authorization header in curl command", ErrMissingCredentials)
}
