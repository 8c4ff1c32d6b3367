package service

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Attachment policy for building documents. The limits and the storage path
// layout are an external contract shared with already-stored blobs; changing
// them breaks compatibility with existing data.
const (
	// MaxDocumentsPerBuilding bounds the documents list on one building.
	MaxDocumentsPerBuilding = 5
	// MaxFileSizeBytes is the per-file upload ceiling (3 MiB).
	MaxFileSizeBytes = 3 * 1024 * 1024
)

// allowedFileTypes is the MIME allow-list for uploads: PDF, Word, Excel and
// common image formats.
var allowedFileTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

// FileInfo describes a candidate upload as reported by the client.
type FileInfo struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// ValidationIssue is a machine-readable validation failure kind.
type ValidationIssue string

const (
	IssueLimitExceeded  ValidationIssue = "LIMIT_EXCEEDED"
	IssueFileTooLarge   ValidationIssue = "FILE_TOO_LARGE"
	IssueTypeNotAllowed ValidationIssue = "TYPE_NOT_ALLOWED"
)

// Message returns the human-readable text for the issue.
func (v ValidationIssue) Message() string {
	switch v {
	case IssueLimitExceeded:
		return fmt.Sprintf("a building can hold at most %d documents", MaxDocumentsPerBuilding)
	case IssueFileTooLarge:
		return fmt.Sprintf("file exceeds the maximum size of %s", FormatFileSize(MaxFileSizeBytes))
	case IssueTypeNotAllowed:
		return "file type is not allowed (PDF, Word, Excel, JPG, PNG or GIF)"
	default:
		return string(v)
	}
}

// ValidationResult reports every policy violation found for a candidate file,
// so the caller can display all of them at once.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"errors,omitempty"`
}

// Validate checks a candidate file against the attachment policy. The checks
// are independent and all violations are collected; there are no side effects.
func Validate(file FileInfo, currentDocumentCount int) ValidationResult {
	var issues []ValidationIssue

	if currentDocumentCount >= MaxDocumentsPerBuilding {
		issues = append(issues, IssueLimitExceeded)
	}
	if file.Size > MaxFileSizeBytes {
		issues = append(issues, IssueFileTooLarge)
	}
	if _, ok := allowedFileTypes[normalizeContentType(file.ContentType)]; !ok {
		issues = append(issues, IssueTypeNotAllowed)
	}

	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// ValidationFailedError carries a failed ValidationResult across the service
// boundary so handlers can render every issue.
type ValidationFailedError struct {
	Result ValidationResult
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, len(e.Result.Issues))
	for i, issue := range e.Result.Issues {
		msgs[i] = issue.Message()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// FormatFileSize renders a byte count for display, scaled to the largest unit
// (B, KB, MB or GB) keeping the magnitude in [1, 1024), with at most one
// decimal place.
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	units := []string{"KB", "MB", "GB"}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	v := float64(bytes) / float64(div)
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + " " + units[exp]
}

// StorageKey derives the deterministic blob key for a document. The layout
// buildings/{buildingId}/documents/{id}-{fileName} is a stable external
// contract. The filename component is sanitized so path-hostile client names
// cannot escape the building's prefix; the original name stays untouched on
// the metadata record.
func StorageKey(buildingID, documentID, fileName string) string {
	return fmt.Sprintf("buildings/%s/documents/%s-%s", buildingID, documentID, sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "file"
	}
	return name
}

func normalizeContentType(ct string) string {
	// Strip parameters such as "; charset=utf-8" before the allow-list check.
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
