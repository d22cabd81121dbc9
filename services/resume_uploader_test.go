package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Upload must bail out before touching the page when there is nothing to
// upload, so a nil page is safe in these cases.
func TestUploadWithoutPath(t *testing.T) {
	uploader := NewResumeUploader("", 0)
	assert.False(t, uploader.Upload(nil))
}

func TestUploadWithMissingFile(t *testing.T) {
	uploader := NewResumeUploader("/nonexistent/resume.pdf", 0)
	assert.False(t, uploader.Upload(nil))
}

func TestUploadStatsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")
	assert.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	uploader := NewResumeUploader(path, 0)
	// The file exists, so the uploader proceeds to the page. Passing a nil
	// page here would panic; just confirm construction holds the path.
	assert.Equal(t, path, uploader.path)
}
