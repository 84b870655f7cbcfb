package mainboilerplate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// MustParseConfig requires that the Parser parse from the combination of an
// optional INI file, configured environment bindings, and explicit flags,
// returning remaining positional arguments. An INI file matching
// |configName| is searched for in:
//   - The current working directory.
//   - ~/.config/bsuitor (under the users's $HOME or %UserProfile% directory).
func MustParseConfig(parser *flags.Parser, configName string, args []string) []string {
	// Allow unknown options while parsing an INI file.
	var origOptions = parser.Options
	parser.Options |= flags.IgnoreUnknown

	var iniParser = flags.NewIniParser(parser)

	var prefixes = []string{
		".",
		filepath.Join(os.Getenv("HOME"), ".config", "bsuitor"),
		filepath.Join(os.Getenv("UserProfile"), ".config", "bsuitor"),
	}
	for _, prefix := range prefixes {
		var path = filepath.Join(prefix, configName)

		if err := iniParser.ParseFile(path); err == nil {
			break
		} else if os.IsNotExist(err) {
			// Pass.
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// Restore original options for parsing argument flags.
	parser.Options = origOptions
	return MustParseArgs(parser, args)
}

// MustParseArgs requires that Parser be able to ParseArgs without error,
// and returns remaining positional arguments.
func MustParseArgs(parser *flags.Parser, args []string) []string {
	var rest, err = parser.ParseArgs(args)
	if err == nil {
		return rest
	}
	var flagErr, ok = err.(*flags.Error)
	if !ok {
		Must(err, "fatal error")
	}

	switch flagErr.Type {
	case flags.ErrDuplicatedFlag, flags.ErrTag, flags.ErrInvalidTag, flags.ErrShortNameTooLong, flags.ErrMarshal:
		// These error types indicate a problem in the configuration object
		// |parser| was asked to parse (eg, a developer error rather than input error).
		panic(err)

	case flags.ErrHelp:
		if parser.Options&flags.PrintErrors == 0 {
			WriteUsage(os.Stderr, parser)
		}
		os.Exit(0)

	default:
		// Other error types indicate a problem of input. Generally, `go-flags`
		// already prints a helpful message and we can simply exit.
		os.Exit(1)
	}
	return nil // Not reached.
}

// WriteUsage writes the help text of the Parser, and the program version.
func WriteUsage(w io.Writer, parser *flags.Parser) {
	parser.WriteHelp(w)
	fmt.Fprintf(w, "\nVersion %s, built at %s.\n", Version, BuildDate)
}
