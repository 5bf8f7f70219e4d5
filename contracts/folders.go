package contracts

type FolderStatus string

const (
	// FolderCreated means a PDF was written.
	FolderCreated FolderStatus = "created"
	// FolderNoImages means nothing usable was left after conversion.
	FolderNoImages FolderStatus = "no-images"
	// FolderNoPages means images existed but none could be drawn.
	FolderNoPages FolderStatus = "no-pages"
	// FolderFailed means the folder could not be listed or the PDF could not be saved.
	FolderFailed FolderStatus = "failed"
)

type FailureStage string

const (
	StageConvert FailureStage = "convert"
	StagePage    FailureStage = "page"
	StageSave    FailureStage = "save"
	StageList    FailureStage = "list"
)

type FileFailure struct {
	Path   string       `yaml:"path"`
	Stage  FailureStage `yaml:"stage"`
	Reason string       `yaml:"reason"`
}

type FolderResult struct {
	Folder    string        `yaml:"folder"`
	PDFPath   string        `yaml:"pdf,omitempty"`
	Status    FolderStatus  `yaml:"status"`
	Images    int           `yaml:"images"`
	Pages     int           `yaml:"pages"`
	Converted []string      `yaml:"converted,omitempty"`
	Failures  []FileFailure `yaml:"failures,omitempty"`
}

// Fail records a per-file failure on the folder.
func (r *FolderResult) Fail(path string, stage FailureStage, err error) {
	r.Failures = append(r.Failures, FileFailure{
		Path:   path,
		Stage:  stage,
		Reason: err.Error(),
	})
}

type ScanSummary struct {
	Root    string         `yaml:"root"`
	Folders []FolderResult `yaml:"folders"`
}

// Created returns the PDFs written during the scan, in visitation order.
func (s ScanSummary) Created() []string {
	var pdfs []string
	for _, f := range s.Folders {
		if f.Status == FolderCreated && f.PDFPath != "" {
			pdfs = append(pdfs, f.PDFPath)
		}
	}
	return pdfs
}

// FailureCount returns the number of per-file failures across all folders.
func (s ScanSummary) FailureCount() int {
	n := 0
	for _, f := range s.Folders {
		n += len(f.Failures)
	}
	return n
}

// Assembler turns one folder of images into a PDF beside it.
type Assembler interface {
	Assemble(folder string) FolderResult
}
