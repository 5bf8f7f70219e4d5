// Package main is the img2pdf command line: it turns every folder of images
// below a directory into one PDF per folder.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"img2pdf/config"
	"img2pdf/contracts"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "img2pdf <parent_path>",
		Short: "Convert images in all subfolders to PDFs",
		Long: `img2pdf walks parent_path and, for every subfolder holding enough images,
converts its WebP files to JPEG and writes all of its images as one PDF named
after the folder, next to it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), v, args[0])
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./img2pdf.yaml or ~/.config/img2pdf/img2pdf.yaml)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")

	flags := rootCmd.Flags()
	flags.Int("min-images", config.DefaultMinImages, "minimum number of images required in a folder to process it")
	flags.String("engine", string(contracts.EngineFpdf), "PDF engine: fpdf or stream")
	flags.String("decoder", config.DefaultDecoder, "WebP decoder backend")
	flags.Int("quality", config.DefaultQuality, "JPEG quality for converted WebP files (1-100)")
	flags.String("page-size", string(contracts.PageSizePixels), "page size mode: pixels or dpi")
	flags.String("background", config.DefaultBackground, "colour transparent pixels are flattened onto")
	flags.String("report", "", "write a YAML report of the run to this file")

	config.SetDefaults(v)
	for key, name := range map[string]string{
		config.KeyMinImages:  "min-images",
		config.KeyEngine:     "engine",
		config.KeyDecoder:    "decoder",
		config.KeyQuality:    "quality",
		config.KeyPageSize:   "page-size",
		config.KeyBackground: "background",
		config.KeyReport:     "report",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
	_ = v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("img2pdf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "img2pdf"))
		}
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

func main() {
	if err := newRootCmd(viper.GetViper()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
