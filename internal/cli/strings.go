// Package cli — strings.go implements the "langtour strings" command.
//
// The command runs a fixed set of whitespace and repetition checks and
// prints each result. An optional positional argument replaces the sample
// string of the summary section, and --repeat changes the repeat count
// used there.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/model"
	"github.com/shinji-kodama/langtour/internal/textutil"
)

// summarySample is the default subject of the summary section.
const summarySample = " Hello World "

// sectionSeparator is printed after every section in text mode.
const sectionSeparator = "\n#################\n\n"

// stringsFlags holds the flag values for the strings command.
type stringsFlags struct {
	repeat int // --repeat: repeat count used in the summary section
}

// NewStringsCommand creates the "strings" cobra command.
func NewStringsCommand() *cobra.Command {
	flags := &stringsFlags{}

	cmd := &cobra.Command{
		Use:   "strings [text]",
		Short: "Run whitespace-aware string checks",
		Long: `Run blank detection, Unicode-aware stripping, line splitting, and
repetition checks on fixed sample strings and print every result.

Examples:
  langtour strings
  langtour strings "  custom sample  " --repeat 2
  langtour strings --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample := summarySample
			if len(args) == 1 {
				sample = args[0]
			}
			return runStrings(streamsOf(cmd), sample, flags.repeat)
		},
	}

	cmd.Flags().IntVar(&flags.repeat, "repeat", 3, "Repeat count used in the summary section")

	return cmd
}

// stringCheck is one evaluated expression and its rendered result.
type stringCheck struct {
	Expr   string `json:"expr"`
	Result string `json:"result"`
}

// stringSection groups related checks under a title. The summary section
// has no title and prints its checks as labelled lines.
type stringSection struct {
	Title  string        `json:"title,omitempty"`
	Checks []stringCheck `json:"checks"`
}

// stringsResultJSON is the JSON output structure of the strings command.
type stringsResultJSON struct {
	Sections []stringSection `json:"sections"`
}

// buildStringSections evaluates every check. It returns an error only for
// a negative repeat count.
func buildStringSections(sample string, repeat int) ([]stringSection, error) {
	repeated, err := textutil.Repeat(sample, repeat)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid --repeat value", err)
	}

	b := strconv.FormatBool
	q := strconv.Quote
	quoted := func(x string) string { return `"` + x + `"` }

	mixed := "Line1\nLine2\rLine3\r\nLine4"
	lineChecks := make([]stringCheck, 0, 4)
	for i, line := range textutil.Lines(mixed) {
		lineChecks = append(lineChecks, stringCheck{
			Expr:   fmt.Sprintf("lines(%s)[%d]", q(mixed), i),
			Result: line,
		})
	}

	abc, _ := textutil.Repeat("abc-", 3)
	padded := "   Hello World!   "
	unicodePadded := "\u2000 Hello \u2000"

	return []stringSection{
		{
			Checks: []stringCheck{
				{Expr: "isBlank", Result: b(textutil.IsBlank(sample))},
				{Expr: "lines", Result: strconv.Itoa(len(textutil.Lines(sample)))},
				{Expr: "strip", Result: textutil.Strip(sample)},
				{Expr: "stripLeading", Result: textutil.StripLeading(sample)},
				{Expr: "stripTrailing", Result: textutil.StripTrailing(sample)},
				{Expr: "repeat", Result: repeated},
			},
		},
		{
			Title: "Testing isBlank()",
			Checks: []stringCheck{
				{Expr: `isBlank("")`, Result: b(textutil.IsBlank(""))},
				{Expr: `isBlank("   ")`, Result: b(textutil.IsBlank("   "))},
				{Expr: `isBlank("abc")`, Result: b(textutil.IsBlank("abc"))},
			},
		},
		{
			Title: "Testing strip() | stripLeading() | stripTrailing()",
			Checks: []stringCheck{
				{Expr: "strip(" + q(padded) + ")", Result: q(textutil.Strip(padded))},
				{Expr: "stripLeading(" + q(padded) + ")", Result: q(textutil.StripLeading(padded))},
				{Expr: "stripTrailing(" + q(padded) + ")", Result: q(textutil.StripTrailing(padded))},
			},
		},
		{
			Title:  "Testing lines()",
			Checks: lineChecks,
		},
		{
			Title: "Testing repeat(int count)",
			Checks: []stringCheck{
				{Expr: `repeat("abc-", 3)`, Result: abc},
			},
		},
		{
			Title: "Testing strip() versus trim()",
			Checks: []stringCheck{
				{Expr: "strip(" + q(unicodePadded) + ")", Result: quoted(textutil.Strip(unicodePadded))},
				{Expr: "trim(" + q(unicodePadded) + ")", Result: quoted(textutil.Trim(unicodePadded))},
			},
		},
		{
			Title: "Testing isEmpty() versus isBlank()",
			Checks: []stringCheck{
				{Expr: `isEmpty("")`, Result: b(textutil.IsEmpty(""))},
				{Expr: `isEmpty("   ")`, Result: b(textutil.IsEmpty("   "))},
				{Expr: `isBlank("")`, Result: b(textutil.IsBlank(""))},
				{Expr: `isBlank("   ")`, Result: b(textutil.IsBlank("   "))},
			},
		},
	}, nil
}

// dotLabel pads label with dots to a fixed width, e.g. "strip........".
func dotLabel(label string, width int) string {
	if len(label) >= width {
		return label
	}
	return label + strings.Repeat(".", width-len(label))
}

func runStrings(s streams, sample string, repeat int) error {
	sections, err := buildStringSections(sample, repeat)
	if err != nil {
		return err
	}
	VerboseLog("Evaluated %d sections", len(sections))

	if IsJSONOutput() {
		return printJSON(s.out, stringsResultJSON{Sections: sections})
	}

	for _, sec := range sections {
		if sec.Title == "" {
			for _, c := range sec.Checks {
				fmt.Fprintf(s.out, "%s: %s\n", dotLabel(c.Expr, 14), c.Result)
			}
		} else {
			fmt.Fprintln(s.out, sec.Title)
			for _, c := range sec.Checks {
				fmt.Fprintln(s.out, c.Result)
			}
		}
		fmt.Fprint(s.out, sectionSeparator)
	}
	return nil
}
