// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the settings pdf-extract would use after merging defaults,
the config file, PDF_EXTRACT_* environment variables, and flags. The output
is a valid pdf-extract.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfig(cmd.OutOrStdout(), resolveConfig())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// resolveConfig reads the merged viper settings.
func resolveConfig() types.Config {
	return types.Config{
		Extract: types.ExtractConfig{
			Input:                viper.GetString("input"),
			Output:               viper.GetString("output"),
			SkipUnreadableImages: viper.GetBool("skip_unreadable_images"),
		},
		Catalog: types.CatalogConfig{
			Dir:        viper.GetString("catalog_dir"),
			MaxResults: viper.GetInt("max_results"),
		},
		Index: viper.GetBool("index"),
	}
}

// fileConfig is the flat key layout viper reads from pdf-extract.yaml.
type fileConfig struct {
	Input                string `yaml:"input"`
	Output               string `yaml:"output"`
	SkipUnreadableImages bool   `yaml:"skip_unreadable_images"`
	Index                bool   `yaml:"index"`
	CatalogDir           string `yaml:"catalog_dir"`
	MaxResults           int    `yaml:"max_results"`
}

func writeConfig(w io.Writer, cfg types.Config) error {
	data, err := yaml.Marshal(fileConfig{
		Input:                cfg.Extract.Input,
		Output:               cfg.Extract.Output,
		SkipUnreadableImages: cfg.Extract.SkipUnreadableImages,
		Index:                cfg.Index,
		CatalogDir:           cfg.Catalog.Dir,
		MaxResults:           cfg.Catalog.MaxResults,
	})
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		fmt.Fprintf(os.Stderr, "binding flag %s: %v\n", key, err)
		os.Exit(1)
	}
}
