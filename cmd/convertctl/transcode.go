package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/Vovarama1992/file_converter/internal/transcode"
)

func newTranscodeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcode <image>",
		Short: "Convert one image to another format",
		Long: `transcode writes <stem>.<ext> into the output directory. Transparent
images converted to JPEG are flattened onto white.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := format.ParseFormat(v.GetString("format"))
			if err != nil {
				return err
			}

			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			in := ports.InputArtifact{FileName: filepath.Base(args[0]), Kind: ports.KindImage, Bytes: b}

			out, err := transcode.NewService(format.EncodeOptions{}).Convert(in, target, v.GetInt("quality"))
			if err != nil {
				return err
			}

			path, err := writeFile(v.GetString("out"), out.FileName, out.Bytes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().String("format", "PNG", "target format: png, jpg, jpeg, webp, bmp, gif")
	cmd.Flags().String("out", ".", "output directory")

	return cmd
}
