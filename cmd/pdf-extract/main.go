// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-extract CLI. Run without
// arguments it extracts the default document into data/extracted.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultInput     = "assets/how-to-not-fail-lemons-tech-inspection.pdf"
	defaultOutput    = "data/extracted"
	defaultCatalog   = "data/catalog"
	defaultMaxResult = 20
)

// rootCmd extracts text and images from a PDF.
var rootCmd = &cobra.Command{
	Use:   "pdf-extract",
	Short: "Extract page text and embedded images from a PDF",
	Long: `pdf-extract opens a PDF, writes every embedded image to <output>/images/
as page_<N>_img_<M>.<ext> with its original bytes, and writes
<output>/extracted_metadata.json describing the text and images of each page.

With no flags it reads ` + defaultInput + `
and writes to ` + defaultOutput + `.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-extract.yaml or ~/.config/pdf-extract/pdf-extract.yaml)")
	rootCmd.PersistentFlags().String("catalog-dir", defaultCatalog, "directory holding the SQLite catalog")

	rootCmd.Flags().StringP("input", "i", defaultInput, "PDF document to extract")
	rootCmd.Flags().StringP("output", "o", defaultOutput, "output directory (receives images/ and extracted_metadata.json)")
	rootCmd.Flags().Bool("skip-unreadable-images", false, "record images the PDF library cannot resolve instead of aborting")
	rootCmd.Flags().Bool("index", false, "also ingest the manifest into the catalog")

	viper.SetDefault("input", defaultInput)
	viper.SetDefault("output", defaultOutput)
	viper.SetDefault("catalog_dir", defaultCatalog)
	viper.SetDefault("max_results", defaultMaxResult)

	mustBind("input", rootCmd.Flags().Lookup("input"))
	mustBind("output", rootCmd.Flags().Lookup("output"))
	mustBind("skip_unreadable_images", rootCmd.Flags().Lookup("skip-unreadable-images"))
	mustBind("index", rootCmd.Flags().Lookup("index"))
	mustBind("catalog_dir", rootCmd.PersistentFlags().Lookup("catalog-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-extract"))
		}
	}

	viper.SetEnvPrefix("PDF_EXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
