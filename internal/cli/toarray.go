// Package cli — toarray.go implements the "langtour toarray" command.
//
// The command copies a fixed list of fruit names into a fixed-size array
// and prints one element per line.
package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/collection"
)

// NewToArrayCommand creates the "toarray" cobra command.
func NewToArrayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toarray",
		Short: "Convert an ordered collection into a fixed-size array",
		Long: `Convert the list "apple", "banana", "cherry" into a fixed-size array
and print each element on its own line. Length and order are preserved.

Examples:
  langtour toarray
  langtour toarray --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToArray(streamsOf(cmd))
		},
	}
}

// toArrayResultJSON is the JSON output structure of the toarray command.
type toArrayResultJSON struct {
	Array  []string `json:"array"`
	Length int      `json:"length"`
}

func runToArray(s streams) error {
	array := collection.ToArray(collection.Fruits)
	VerboseLog("Converted %d elements", len(array))

	if IsJSONOutput() {
		return printJSON(s.out, toArrayResultJSON{Array: array, Length: len(array)})
	}

	lo.ForEach(array, func(fruit string, _ int) {
		fmt.Fprintln(s.out, fruit)
	})
	return nil
}
