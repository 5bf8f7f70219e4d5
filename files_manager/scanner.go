package files_manager

import (
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"img2pdf/contracts"
)

// Scanner walks a tree and hands every folder holding enough images to an
// assembler.
type Scanner struct {
	assembler contracts.Assembler
	minImages int
	log       *zap.Logger
}

func NewScanner(assembler contracts.Assembler, minImages int, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{assembler: assembler, minImages: minImages, log: log}
}

// ScanAndProcess visits every directory below root in lexical pre-order.
// The root itself is never assembled. Directories that cannot be read are
// logged and skipped.
func (s *Scanner) ScanAndProcess(root string) (contracts.ScanSummary, error) {
	summary := contracts.ScanSummary{Root: root}
	if err := CheckRootDir(root); err != nil {
		return summary, err
	}

	s.log.Info("scanning for folders with images", zap.String("root", root))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.log.Warn("skipping unreadable directory", zap.String("folder", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}

		count, err := CountImages(path)
		if err != nil {
			s.log.Warn("skipping unreadable directory", zap.String("folder", path), zap.Error(err))
			return filepath.SkipDir
		}
		if count < s.minImages {
			return nil
		}

		s.log.Info("found folder with images", zap.Int("images", count), zap.String("folder", path))
		summary.Folders = append(summary.Folders, s.assembler.Assemble(path))
		return nil
	})
	return summary, err
}
