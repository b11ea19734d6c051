// Package cli — fileio.go implements the "langtour fileio" command.
//
// The command writes a fixed string to a file (replacing any previous
// content) and reads the whole file back. I/O errors are not retried; they
// end the command with ExitFileIOError.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/config"
	"github.com/shinji-kodama/langtour/internal/fileio"
	"github.com/shinji-kodama/langtour/internal/model"
)

// fileIOFlags holds the flag values for the fileio command.
type fileIOFlags struct {
	path    string // --path: file to write and read back
	content string // --content: text to write
}

// NewFileIOCommand creates the "fileio" cobra command.
func NewFileIOCommand() *cobra.Command {
	flags := &fileIOFlags{}

	cmd := &cobra.Command{
		Use:   "fileio",
		Short: "Write a file and read it back",
		Long: `Write a fixed string to a file, creating it if needed and replacing any
previous content, then read the whole file back and print it.

Examples:
  langtour fileio
  langtour fileio --path /tmp/example.txt --content "Hi there"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("path") {
				cfg.File.Path = flags.path
			}
			if cmd.Flags().Changed("content") {
				cfg.File.Content = flags.content
			}
			if err := validateOverrides(cfg); err != nil {
				return err
			}
			return runFileIO(streamsOf(cmd), cfg.File)
		},
	}

	cmd.Flags().StringVar(&flags.path, "path", fileio.DefaultPath, "File to write and read back")
	cmd.Flags().StringVar(&flags.content, "content", fileio.DefaultContent, "Text to write")

	return cmd
}

// fileIOResultJSON is the JSON output structure of the fileio command.
type fileIOResultJSON struct {
	Path    string `json:"path"`
	Written string `json:"written"`
	Read    string `json:"read"`
	Equal   bool   `json:"equal"`
}

func runFileIO(s streams, fc config.FileConfig) error {
	VerboseLog("Writing %d bytes to %s", len(fc.Content), fc.Path)

	read, err := fileio.RoundTrip(fc.Path, fc.Content)
	if err != nil {
		return model.WrapCLIError(model.ExitFileIOError, "file round trip failed", err)
	}
	VerboseLog("Read %d bytes back from %s", len(read), fc.Path)

	if IsJSONOutput() {
		return printJSON(s.out, fileIOResultJSON{
			Path:    fc.Path,
			Written: fc.Content,
			Read:    read,
			Equal:   read == fc.Content,
		})
	}

	fmt.Fprintln(s.out, read)
	return nil
}
