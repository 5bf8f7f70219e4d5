package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img2pdf/contracts"
	"img2pdf/converter"
	"img2pdf/files_manager"
	"img2pdf/fixtures"
	"img2pdf/report"
)

var paper = color.NRGBA{R: 240, G: 235, B: 220, A: 255}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(viper.New())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func chapters(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	fixtures.WritePNG(t, filepath.Join(root, "ChapterA", "p1.png"), 30, 40, paper)
	fixtures.WriteWebP(t, filepath.Join(root, "ChapterA", "p2.webp"), 30, 40, paper)
	fixtures.WriteGarbage(t, filepath.Join(root, "ChapterB", "only.txt"))
	return root
}

func TestRunChapters(t *testing.T) {
	root := chapters(t)

	out, err := execute(t, root)
	require.NoError(t, err)

	pdf := filepath.Join(root, "ChapterA.pdf")
	assert.Contains(t, out, "Summary: PDFs created:\n- "+pdf+"\n")
	assert.Contains(t, out, "Total PDFs created: 1\n")
	assert.Equal(t, 1, strings.Count(out, "\n- "))
	assert.NoFileExists(t, filepath.Join(root, "ChapterB.pdf"))
	assert.FileExists(t, filepath.Join(root, "ChapterA", "p2.jpg"))

	n, err := api.PageCountFile(pdf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRunNothingQualifies(t *testing.T) {
	root := chapters(t)

	out, err := execute(t, root, "--min-images", "3")
	require.NoError(t, err)
	assert.Equal(t, "No PDFs were created. No suitable folders found.\n", out)
	assert.NoFileExists(t, filepath.Join(root, "ChapterA.pdf"))
}

func TestRunEmptyRoot(t *testing.T) {
	out, err := execute(t, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No PDFs were created. No suitable folders found.\n", out)
}

func TestRunInvalidRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := execute(t, missing)
	require.ErrorIs(t, err, files_manager.ErrNotDirectory)
	assert.Equal(t, missing+" is not a valid directory", err.Error())
}

func TestRunRequiresOnePath(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, t.TempDir(), t.TempDir())
	assert.Error(t, err)
}

func TestRunRejectsNegativeMinImages(t *testing.T) {
	_, err := execute(t, t.TempDir(), "--min-images", "-1")
	assert.Error(t, err)
}

func TestRunUnavailableDecoder(t *testing.T) {
	_, err := execute(t, chapters(t), "--decoder", "nonexistent")
	assert.ErrorIs(t, err, converter.ErrBackendUnavailable)
}

func TestRunStreamEngineWithReport(t *testing.T) {
	root := chapters(t)
	reportPath := filepath.Join(t.TempDir(), "run.yaml")

	_, err := execute(t, root, "--engine", "stream", "--report", reportPath)
	require.NoError(t, err)

	r, err := report.Read(reportPath)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "ChapterA.pdf")}, r.Created)
	require.Len(t, r.Folders, 1)
	assert.Equal(t, contracts.FolderCreated, r.Folders[0].Status)
	assert.Equal(t, 2, r.Folders[0].Pages)
	assert.Equal(t, []string{filepath.Join(root, "ChapterA", "p2.jpg")}, r.Folders[0].Converted)
}

func TestRunConfigFile(t *testing.T) {
	root := chapters(t)
	cfg := filepath.Join(t.TempDir(), "img2pdf.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("min_images: 5\n"), 0o644))

	out, err := execute(t, root, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No PDFs were created.")

	// Flags given on the command line win over the file.
	out, err = execute(t, root, "--config", cfg, "--min-images", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Total PDFs created: 1")
}

func TestRunZeroMinImagesReportsEmptyFolders(t *testing.T) {
	root := chapters(t)
	reportPath := filepath.Join(t.TempDir(), "run.yaml")

	out, err := execute(t, root, "--min-images", "0", "--report", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Total PDFs created: 1")

	r, err := report.Read(reportPath)
	require.NoError(t, err)
	require.Len(t, r.Folders, 2)
	assert.Equal(t, contracts.FolderNoImages, r.Folders[1].Status)
}

func TestRunMissingConfigFile(t *testing.T) {
	_, err := execute(t, t.TempDir(), "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "img2pdf dev\n", out)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, contracts.ScanSummary{Folders: []contracts.FolderResult{
		{PDFPath: "root/A.pdf", Status: contracts.FolderCreated},
		{Status: contracts.FolderNoPages},
		{PDFPath: "root/B.pdf", Status: contracts.FolderCreated},
	}})
	assert.Equal(t, "\nSummary: PDFs created:\n- root/A.pdf\n- root/B.pdf\n\nTotal PDFs created: 2\n", buf.String())
}
