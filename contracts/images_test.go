package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want ImageKind
	}{
		{"p1.png", Standard},
		{"P1.JPG", Standard},
		{"scan.jpeg", Standard},
		{"scan.Tiff", Standard},
		{"anim.gif", Standard},
		{"old.bmp", Standard},
		{"page.webp", WebP},
		{"PAGE.WEBP", WebP},
		{"scan.tif", Unsupported},
		{"notes.txt", Unsupported},
		{"noext", Unsupported},
		{"archive.webp.zip", Unsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
			assert.Equal(t, tt.want != Unsupported, IsImage(tt.name))
		})
	}
}

func TestScanSummaryCreated(t *testing.T) {
	s := ScanSummary{Folders: []FolderResult{
		{Folder: "a", PDFPath: "a.pdf", Status: FolderCreated},
		{Folder: "b", Status: FolderNoImages},
		{Folder: "c", Status: FolderNoPages},
		{Folder: "d", PDFPath: "d.pdf", Status: FolderCreated},
	}}
	assert.Equal(t, []string{"a.pdf", "d.pdf"}, s.Created())
	assert.Empty(t, ScanSummary{}.Created())
}

func TestFolderResultFail(t *testing.T) {
	var r FolderResult
	r.Fail("x.webp", StageConvert, errors.New("bad riff header"))
	r.Fail("y.png", StagePage, errors.New("truncated"))

	s := ScanSummary{Folders: []FolderResult{r, {}}}
	assert.Equal(t, 2, s.FailureCount())
	assert.Equal(t, FileFailure{Path: "x.webp", Stage: StageConvert, Reason: "bad riff header"}, r.Failures[0])
}
