package validation

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/username/salesdash/src/logger"
)

// ValidateDatasetContent checks the actual file content signature (magic bytes)
// of the sales data file before it is handed to the CSV parser.
// It returns the detected content type and an error if validation fails.
func ValidateDatasetContent(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512) // Read first 512 bytes for MIME detection
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// IMPORTANT: Reset the file read pointer to the beginning so the actual parser can read the full file.
	_, seekErr := file.Seek(0, io.SeekStart)
	if seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	detectedContentType := http.DetectContentType(buffer[:n])
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0]) // Normalize (e.g. "text/plain; charset=utf-8")

	// For CSV, we are primarily concerned it's text-based and not something
	// like a spreadsheet binary or an executable dropped at the data path.
	allowedDetectedTypes := map[string]bool{
		"text/plain":               true,
		"text/csv":                 true,
		"application/csv":          true,
		"application/octet-stream": true, // Be cautious with this; strict parsing is key later
	}

	if !allowedDetectedTypes[detectedContentType] {
		if logger.L != nil {
			logger.L.Warn("Disallowed detected file content type (magic bytes)", "detectedContentType", detectedContentType)
		}
		return detectedContentType, fmt.Errorf("detected file content type '%s' is not consistent with a CSV file", detectedContentType)
	}

	if logger.L != nil {
		logger.L.Debug("File content type (magic bytes) validated", "detectedContentType", detectedContentType)
	}
	return detectedContentType, nil
}
