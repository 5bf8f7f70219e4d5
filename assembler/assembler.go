// Package assembler turns one folder of images into a single PDF.
package assembler

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"img2pdf/contracts"
	"img2pdf/converter"
	"img2pdf/files_manager"
	"img2pdf/pdf_writer"
	"img2pdf/progress"
)

var ErrNoImages = errors.New("no image files found")

type Options struct {
	Engine     contracts.Engine
	PageSize   contracts.PageSizeMode
	Background color.RGBA
}

type Assembler struct {
	conv     contracts.Converter
	progress *progress.Reporter
	log      *zap.Logger
	opts     Options
}

func New(conv contracts.Converter, reporter *progress.Reporter, log *zap.Logger, opts Options) *Assembler {
	if reporter == nil {
		reporter = progress.NewReporter(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Engine == "" {
		opts.Engine = contracts.EngineFpdf
	}
	if opts.PageSize == "" {
		opts.PageSize = contracts.PageSizePixels
	}
	if opts.Background == (color.RGBA{}) {
		opts.Background = converter.White
	}
	return &Assembler{conv: conv, progress: reporter, log: log, opts: opts}
}

// Assemble converts the WebP files in folder, then writes every image as one
// page of <folder>.pdf in the parent directory. Images that cannot be drawn
// are skipped. No document is written when no page could be drawn.
func (a *Assembler) Assemble(folder string) contracts.FolderResult {
	folder = filepath.Clean(folder)
	result := contracts.FolderResult{
		Folder: folder,
		Status: contracts.FolderFailed,
	}

	images, sources, err := a.collect(folder, &result)
	switch {
	case errors.Is(err, ErrNoImages):
		a.log.Info(ErrNoImages.Error(), zap.String("folder", folder))
		result.Status = contracts.FolderNoImages
		return result
	case err != nil:
		a.log.Error("error listing folder", zap.String("folder", folder), zap.Error(err))
		result.Fail(folder, contracts.StageList, err)
		return result
	}
	result.Images = len(images)

	output := files_manager.PDFPath(folder)
	a.log.Info("creating PDF", zap.String("folder", filepath.Base(folder)), zap.Int("images", len(images)))

	opts := pdf_writer.Options{
		Title:   filepath.Base(folder),
		Created: newestModTime(sources),
		Dir:     filepath.Dir(output),
	}
	if w, h, err := a.pageSize(images[0]); err == nil {
		opts.InitialWidth, opts.InitialHeight = w, h
	} else {
		a.log.Warn("cannot read size of first image", zap.String("file", images[0]), zap.Error(err))
	}

	doc, err := pdf_writer.New(a.opts.Engine, opts)
	if err != nil {
		a.log.Error("error creating PDF", zap.String("file", output), zap.Error(err))
		result.Fail(output, contracts.StageSave, err)
		return result
	}

	for _, path := range images {
		page := a.addPage(doc, path)
		if !page.OK() {
			a.log.Error("error processing image", zap.String("file", path), zap.Error(page.Err))
			result.Fail(path, contracts.StagePage, page.Err)
			continue
		}
		a.progress.Render(doc.PageCount(), len(images))
	}
	a.progress.Finish()

	result.Pages = doc.PageCount()
	if result.Pages == 0 {
		doc.Abort()
		a.log.Warn("no pages could be drawn, PDF not written", zap.String("folder", folder))
		result.Status = contracts.FolderNoPages
		return result
	}

	if err := doc.Save(output); err != nil {
		doc.Abort()
		a.log.Error("error saving PDF", zap.String("file", output), zap.Error(err))
		result.Fail(output, contracts.StageSave, err)
		return result
	}

	a.log.Info("PDF saved", zap.String("file", output), zap.Int("pages", result.Pages))
	result.PDFPath = output
	result.Status = contracts.FolderCreated
	return result
}

// collect lists folder, converts its WebP files and returns the merged image
// set in path order together with the files it was derived from.
func (a *Assembler) collect(folder string, result *contracts.FolderResult) ([]string, []string, error) {
	files, err := files_manager.ListImages(folder)
	if err != nil {
		return nil, nil, err
	}

	var standard, webps []string
	derived := make(map[string]bool)
	for _, f := range files {
		if f.Kind == contracts.WebP {
			webps = append(webps, f.Path)
			derived[converter.JPEGPath(f.Path)] = true
		} else {
			standard = append(standard, f.Path)
		}
	}

	// JPEGs produced from a WebP by an earlier run are not sources.
	sources := make([]string, 0, len(files))
	for _, f := range files {
		if !derived[f.Path] {
			sources = append(sources, f.Path)
		}
	}

	for _, path := range webps {
		res := a.conv.Convert(path)
		if res.OK() {
			result.Converted = append(result.Converted, res.Output)
		} else {
			result.Fail(path, contracts.StageConvert, res.Err)
		}
		a.progress.Render(len(result.Converted), len(webps))
	}
	a.progress.Finish()

	// A JPEG left by an earlier run is both listed and reconverted.
	seen := make(map[string]bool, len(standard)+len(result.Converted))
	images := make([]string, 0, len(standard)+len(result.Converted))
	for _, path := range append(standard, result.Converted...) {
		if seen[path] {
			continue
		}
		seen[path] = true
		images = append(images, path)
	}
	if len(images) == 0 {
		return nil, nil, ErrNoImages
	}
	sort.Strings(images)
	return images, sources, nil
}

func newestModTime(paths []string) time.Time {
	var newest time.Time
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if t := info.ModTime(); t.After(newest) {
			newest = t
		}
	}
	return newest.UTC().Truncate(time.Second)
}
