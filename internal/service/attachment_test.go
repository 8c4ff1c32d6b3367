package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	pdf := FileInfo{Name: "roof.pdf", Size: 1_000_000, ContentType: "application/pdf"}

	tests := []struct {
		name       string
		file       FileInfo
		count      int
		wantValid  bool
		wantIssues []ValidationIssue
	}{
		{
			name:      "valid pdf",
			file:      pdf,
			count:     2,
			wantValid: true,
		},
		{
			name:       "limit reached regardless of file",
			file:       pdf,
			count:      5,
			wantIssues: []ValidationIssue{IssueLimitExceeded},
		},
		{
			name:       "limit exceeded",
			file:       pdf,
			count:      7,
			wantIssues: []ValidationIssue{IssueLimitExceeded},
		},
		{
			name:       "file too large",
			file:       FileInfo{Name: "big.pdf", Size: 3_145_729, ContentType: "application/pdf"},
			count:      0,
			wantIssues: []ValidationIssue{IssueFileTooLarge},
		},
		{
			name:      "file exactly at the size limit",
			file:      FileInfo{Name: "edge.pdf", Size: 3 * 1024 * 1024, ContentType: "application/pdf"},
			count:     0,
			wantValid: true,
		},
		{
			name:       "type not allowed",
			file:       FileInfo{Name: "movie.mp4", Size: 100, ContentType: "video/mp4"},
			count:      0,
			wantIssues: []ValidationIssue{IssueTypeNotAllowed},
		},
		{
			name:      "content type with parameters",
			file:      FileInfo{Name: "plan.png", Size: 100, ContentType: "image/png; charset=binary"},
			count:     0,
			wantValid: true,
		},
		{
			name:      "content type case insensitive",
			file:      FileInfo{Name: "plan.PDF", Size: 100, ContentType: "Application/PDF"},
			count:     0,
			wantValid: true,
		},
		{
			name:  "all violations collected",
			file:  FileInfo{Name: "movie.mp4", Size: 10_000_000, ContentType: "video/mp4"},
			count: 5,
			wantIssues: []ValidationIssue{
				IssueLimitExceeded,
				IssueFileTooLarge,
				IssueTypeNotAllowed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.file, tt.count)

			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantIssues, res.Issues)
		})
	}
}

func TestValidationIssue_Message(t *testing.T) {
	// Every issue must render distinct, human-readable text.
	seen := map[string]bool{}
	for _, issue := range []ValidationIssue{IssueLimitExceeded, IssueFileTooLarge, IssueTypeNotAllowed} {
		msg := issue.Message()
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message %q", msg)
		seen[msg] = true
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2_500_000, "2.4 MB"},
		{3 * 1024 * 1024, "3 MB"},
		{5 << 30, "5 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestStorageKey(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		key := StorageKey("b1", "d1", "roof.pdf")
		assert.Equal(t, "buildings/b1/documents/d1-roof.pdf", key)
	})

	t.Run("path-hostile names cannot escape the prefix", func(t *testing.T) {
		tests := []struct {
			name string
			want string
		}{
			{"../../etc/passwd", "passwd"},
			{`..\..\boot.ini`, "boot.ini"},
			{"dir/sub/plan.pdf", "plan.pdf"},
			{"report..v2.pdf", "report_v2.pdf"},
			{"", "file"},
		}
		for _, tt := range tests {
			key := StorageKey("b1", "d1", tt.name)
			assert.True(t, strings.HasPrefix(key, "buildings/b1/documents/d1-"), "key=%q", key)
			assert.Equal(t, "buildings/b1/documents/d1-"+tt.want, key)
		}
	})
}
