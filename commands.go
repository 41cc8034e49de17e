package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oGsLP/lyrics-download-and-translate/config"
)

func newDownloadCommand() *cobra.Command {
	var configPath, source string

	cmd := &cobra.Command{
		Use:   "download <artist> <title> [output_dir]",
		Short: "Fetch lyrics for a song and save them as a text file",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			outputDir := "."
			if len(args) == 3 {
				outputDir = args[2]
			}

			return runDownload(cmd.Context(), cfg, args[0], args[1], outputDir, source)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	cmd.Flags().StringVar(&source, "source", "", "use only the named lyrics source")
	return cmd
}

func newTranslateCommand() *cobra.Command {
	var configPath, target string

	cmd := &cobra.Command{
		Use:   "translate <lyrics_file> [output_dir]",
		Short: "Translate a downloaded lyrics file to Chinese",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			outputDir := ""
			if len(args) == 2 {
				outputDir = args[1]
			}

			return runTranslate(cmd.Context(), cfg, args[0], outputDir, target)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	cmd.Flags().StringVar(&target, "target", "zh", "target language code")
	return cmd
}

func newSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List lyrics sources in the order they are tried",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for i, name := range sourceNames() {
				fmt.Printf("%d. %s\n", i+1, name)
			}
		},
	}
}
