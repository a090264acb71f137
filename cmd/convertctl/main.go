// Command convertctl runs the conversion pipeline on local files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vovarama1992/file_converter/internal/config"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/pdf"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "convertctl",
		Short: "Convert PDFs and images from the command line",
		Long: `convertctl rasterizes PDFs into page images, assembles images into a
single PDF, and converts images between PNG, JPEG, WEBP, BMP and GIF.

Every flag can also be set through a CONVERTCTL_<FLAG> environment variable
or a convertctl.yaml config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: ./convertctl.yaml)")
	root.PersistentFlags().Int("quality", format.DefaultQuality, "JPEG quality 1..100")

	root.AddCommand(
		newPDF2ImgCmd(v),
		newImg2PDFCmd(),
		newTranscodeCmd(v),
	)
	return root
}

func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("convertctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CONVERTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	} else if cfgFile != "" {
		return err
	}

	q := v.GetInt("quality")
	if q < 1 || q > 100 {
		return fmt.Errorf("quality must be within 1..100, got %d", q)
	}
	return nil
}

func newRenderer(v *viper.Viper) (pdf.PageRenderer, error) {
	dpi := v.GetInt("dpi")
	switch strings.ToLower(v.GetString("backend")) {
	case config.BackendPoppler:
		p := pdf.NewPopplerPDFConverter(dpi)
		if !p.Available() {
			return nil, fmt.Errorf("pdftoppm is not installed")
		}
		return p, nil
	case config.BackendFitz, "":
		return pdf.NewFitzPDFConverter(dpi), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", v.GetString("backend"))
	}
}

func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, data, 0o644)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
