package files_manager

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"img2pdf/contracts"
	"img2pdf/fixtures"
)

var grey = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// recorder stands in for the assembler and remembers the folders it saw.
type recorder struct {
	folders []string
}

func (r *recorder) Assemble(folder string) contracts.FolderResult {
	r.folders = append(r.folders, folder)
	return contracts.FolderResult{
		Folder:  folder,
		PDFPath: PDFPath(folder),
		Status:  contracts.FolderCreated,
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestCheckRootDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	touch(t, file)

	assert.NoError(t, CheckRootDir(dir))
	assert.ErrorIs(t, CheckRootDir(file), ErrNotDirectory)
	assert.ErrorIs(t, CheckRootDir(filepath.Join(dir, "missing")), ErrNotDirectory)
	assert.ErrorIs(t, CheckRootDir(""), ErrNotDirectory)
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.webp", "c.tif", "d.txt", "e.jpeg", "._f.jpg"} {
		touch(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	images, err := ListImages(dir)
	require.NoError(t, err)

	want := []contracts.ImageFile{
		{Path: filepath.Join(dir, "._f.jpg"), Kind: contracts.Standard},
		{Path: filepath.Join(dir, "a.webp"), Kind: contracts.WebP},
		{Path: filepath.Join(dir, "b.PNG"), Kind: contracts.Standard},
		{Path: filepath.Join(dir, "e.jpeg"), Kind: contracts.Standard},
	}
	assert.Equal(t, want, images)

	_, err = ListImages(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestCountImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"1.jpg", "2.WEBP", "3.gif", "4.bmp", "5.tiff", "6.pdf", "7"} {
		touch(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "8.png"), 0o755))

	n, err := CountImages(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPDFPath(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{filepath.Join("root", "ChapterA"), filepath.Join("root", "ChapterA.pdf")},
		{filepath.Join("root", "ChapterA") + string(filepath.Separator), filepath.Join("root", "ChapterA.pdf")},
		{filepath.Join("root", "a", "b"), filepath.Join("root", "a", "b.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			assert.Equal(t, tt.want, PDFPath(tt.folder))
		})
	}
}

func TestScanAndProcess(t *testing.T) {
	root := t.TempDir()
	fixtures.WritePNG(t, filepath.Join(root, "top.png"), 2, 2, grey)
	touch(t, filepath.Join(root, "A", "1.jpg"))
	touch(t, filepath.Join(root, "A", "2.webp"))
	touch(t, filepath.Join(root, "A", "B", "1.png"))
	touch(t, filepath.Join(root, "C", "notes.txt"))
	touch(t, filepath.Join(root, "D", "x.gif"))
	touch(t, filepath.Join(root, "D", "y.gif"))
	touch(t, filepath.Join(root, "D", "z.gif"))

	tests := []struct {
		name      string
		minImages int
		want      []string
	}{
		{"default", 1, []string{"A", filepath.Join("A", "B"), "D"}},
		{"two or more", 2, []string{"A", "D"}},
		{"three or more", 3, []string{"D"}},
		{"zero includes empty folders", 0, []string{"A", filepath.Join("A", "B"), "C", "D"}},
		{"none qualify", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			summary, err := NewScanner(rec, tt.minImages, nil).ScanAndProcess(root)
			require.NoError(t, err)

			var want []string
			for _, rel := range tt.want {
				want = append(want, filepath.Join(root, rel))
			}
			assert.Equal(t, want, rec.folders)
			assert.Equal(t, root, summary.Root)
			assert.Len(t, summary.Created(), len(tt.want))
		})
	}
}

func TestScanAndProcessLogsFolders(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "A", "1.jpg"))
	touch(t, filepath.Join(root, "A", "2.jpg"))

	core, logs := observer.New(zapcore.InfoLevel)
	_, err := NewScanner(&recorder{}, 1, zap.New(core)).ScanAndProcess(root)
	require.NoError(t, err)

	found := logs.FilterMessage("found folder with images").All()
	require.Len(t, found, 1)
	assert.Equal(t, int64(2), found[0].ContextMap()["images"])
	assert.Equal(t, filepath.Join(root, "A"), found[0].ContextMap()["folder"])
}

func TestScanAndProcessInvalidRoot(t *testing.T) {
	rec := &recorder{}
	_, err := NewScanner(rec, 1, nil).ScanAndProcess(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotDirectory)
	assert.Empty(t, rec.folders)
}

func TestScanAndProcessSkipsUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	touch(t, filepath.Join(root, "A", "1.jpg"))
	touch(t, filepath.Join(root, "Locked", "1.jpg"))
	touch(t, filepath.Join(root, "Z", "1.jpg"))
	locked := filepath.Join(root, "Locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	core, logs := observer.New(zapcore.WarnLevel)
	rec := &recorder{}
	_, err := NewScanner(rec, 1, zap.New(core)).ScanAndProcess(root)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "A"), filepath.Join(root, "Z")}, rec.folders)
	assert.NotZero(t, logs.FilterMessage("skipping unreadable directory").Len())
}
