package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/file_converter/internal/assemble"
	"github.com/Vovarama1992/file_converter/internal/ports"
)

func newImg2PDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "img2pdf <images...>",
		Short: "Combine images into one PDF, one page per image",
		Long: `img2pdf builds a PDF whose pages follow the order of the arguments.
Each page has the pixel size of its image.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := make([]ports.InputArtifact, 0, len(args))
			for _, name := range args {
				b, err := os.ReadFile(name)
				if err != nil {
					return err
				}
				inputs = append(inputs, ports.InputArtifact{
					FileName: filepath.Base(name),
					Kind:     ports.KindImage,
					Bytes:    b,
				})
			}

			out, err := assemble.NewService(assemble.NewPdfcpuWriter()).Convert(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			dst, _ := cmd.Flags().GetString("out")
			if err := os.WriteFile(dst, out.Bytes, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, %s)\n", dst, len(inputs), humanize.Bytes(uint64(len(out.Bytes))))
			return nil
		},
	}

	cmd.Flags().String("out", assemble.OutputName, "output PDF path")

	return cmd
}
