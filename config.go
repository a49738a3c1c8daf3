package main

// BackendPresets maps friendly names to processing API base URLs
var BackendPresets = map[string]string{
	"local":  "http://localhost:8000",
	"docker": "http://host.docker.internal:8000",
}

// ResolveBackendURL resolves a backend identifier to a URL.
// Preset names map to their URL; anything else is returned as-is.
func ResolveBackendURL(input string) string {
	if url, exists := BackendPresets[input]; exists {
		return url
	}
	return input
}
