// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/zxdetok/internal/arch"
	"github.com/retroenv/zxdetok/internal/options"
)

// ParseFlags parses command line flags and returns program and decoder options
func ParseFlags() (options.Program, options.Decoder, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Decoder{}, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, options.Decoder{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Decoder{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, options.NewDecoder(opts), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: zxdetok [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg: fmt.Sprintf("Potential argument %s found after the program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.System == "" {
		return nil
	}

	system, ok := arch.SystemFromString(opts.System)
	if !ok {
		return fmt.Errorf("unsupported system: %s. Valid options: %s",
			opts.System, systemNames())
	}
	opts.System = system.String()
	return nil
}

func systemNames() string {
	systems := arch.Systems()
	names := make([]string, len(systems))
	for i, system := range systems {
		names[i] = system.String()
	}
	return strings.Join(names, ", ")
}

// parseOrigin parses a 16 bit address, a 0x prefix selects hex.
func parseOrigin(opts *options.Program) func(string) error {
	return func(s string) error {
		value, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid origin address '%s': %w", s, err)
		}
		opts.Origin = uint16(value)
		opts.OriginSet = true
		return nil
	}
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file, defaults to the input name with .bas appended, - prints on console")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .bas file naming, for example *.p")
	flags.StringVar(&opts.System, "s", "", "system of the program ("+systemNames()+") - if not auto-detected from file extension or tape header")
	flags.BoolVar(&opts.Info, "info", false, "print header information and file size only, do not decode")
	flags.BoolVar(&opts.Dump, "dump", false, "print a hex and ASCII dump of the file, do not decode")
	flags.Func("org", "load address of Z80 machine code without tape header, for example 0x1200", parseOrigin(opts))
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.BoolVar(&opts.ZXpand, "zxpand", false, "decode the ZXpand keyword extension (CONFIG, DELETE, CAT)")
	flags.BoolVar(&opts.Numbers, "numbers", false, "show the values of hidden number literals")
	flags.BoolVar(&opts.NoVariables, "novars", false, "do not output the variables area")
	flags.BoolVar(&opts.Color, "color", false, "render inverse characters in reverse video when printing to a terminal")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output address, opcode bytes and ASCII comments of disassembled code")
	flags.BoolVar(&opts.OutputUnofficial, "output-unofficial", false, "use mnemonics for undocumented Z80 instructions instead of DB")
}
