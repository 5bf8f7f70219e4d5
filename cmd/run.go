package main

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"img2pdf/assembler"
	"img2pdf/config"
	"img2pdf/contracts"
	"img2pdf/converter"
	"img2pdf/files_manager"
	"img2pdf/logger"
	"img2pdf/progress"
	"img2pdf/report"
)

// run processes every qualifying folder below root. Progress bars and the
// summary go to out; diagnostics go to the logger.
func run(out io.Writer, v *viper.Viper, root string) error {
	if err := files_manager.CheckRootDir(root); err != nil {
		return err
	}

	flags, err := config.Load(v, root)
	if err != nil {
		return err
	}

	log, err := logger.New(flags.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	backend, err := converter.NewBackend(flags.Decoder)
	if err != nil {
		return err
	}

	conv := converter.NewWebPConverter(backend, converter.Options{
		Quality:    flags.JpegQuality,
		Background: flags.Background,
	}, log)
	asm := assembler.New(conv, progress.NewReporter(out), log, assembler.Options{
		Engine:     flags.Engine,
		PageSize:   flags.PageSize,
		Background: flags.Background,
	})

	summary, err := files_manager.NewScanner(asm, flags.MinImages, log).ScanAndProcess(flags.InputRootDir)
	if err != nil {
		return err
	}

	printSummary(out, summary)
	if failures := summary.FailureCount(); failures > 0 {
		log.Warn("some files were skipped", zap.Int("failures", failures))
	}

	if flags.ReportPath != "" {
		if err := report.Write(flags.ReportPath, summary); err != nil {
			return err
		}
		log.Info("report written", zap.String("file", flags.ReportPath))
	}
	return nil
}

func printSummary(out io.Writer, summary contracts.ScanSummary) {
	created := summary.Created()
	if len(created) == 0 {
		fmt.Fprintln(out, "No PDFs were created. No suitable folders found.")
		return
	}

	fmt.Fprintln(out, "\nSummary: PDFs created:")
	for _, pdf := range created {
		fmt.Fprintf(out, "- %s\n", pdf)
	}
	fmt.Fprintf(out, "\nTotal PDFs created: %d\n", len(created))
}
