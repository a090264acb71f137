package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vovarama1992/file_converter/internal/archive"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/pdf"
)

func newPDF2ImgCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf2img <file.pdf>",
		Short: "Rasterize every page of a PDF",
		Long: `pdf2img renders each page of the PDF into page_<n>.<format> in the output
directory. With --zip the pages are packed into converted_images.zip instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := format.ParseFormat(v.GetString("format"))
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			renderer, err := newRenderer(v)
			if err != nil {
				return err
			}

			svc := pdf.NewPDFService(renderer, format.EncodeOptions{Quality: v.GetInt("quality")})
			pages, err := svc.Convert(cmd.Context(), data, target)
			if err != nil {
				return err
			}

			out := v.GetString("out")
			if v.GetBool("zip") {
				z, err := archive.Package(pages)
				if err != nil {
					return err
				}
				path, err := writeFile(out, z.FileName, z.Bytes)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, %s)\n", path, len(pages), humanize.Bytes(uint64(len(z.Bytes))))
				return nil
			}

			for _, p := range pages {
				path, err := writeFile(out, p.FileName, p.Bytes)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, humanize.Bytes(uint64(len(p.Bytes))))
			}
			return nil
		},
	}

	cmd.Flags().String("format", "PNG", "page format: png, jpeg, webp, bmp")
	cmd.Flags().String("out", ".", "output directory")
	cmd.Flags().Bool("zip", false, "pack pages into converted_images.zip")
	cmd.Flags().String("backend", "fitz", "renderer: fitz or poppler")
	cmd.Flags().Int("dpi", pdf.DefaultDPI, "render resolution")

	return cmd
}
