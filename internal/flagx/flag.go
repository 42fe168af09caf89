// Package flagx lets independent components pick their own flags out of
// os.Args without tripping over flags that belong to someone else.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to allowedFlags,
// preserving order. Both "-f value" and "-f=value" forms are recognized; in
// the separated form the following token is taken as the value unless it
// starts with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// lookupString parses only the given aliases of one string flag from
// os.Args and returns its value, or "" when it is absent.
func lookupString(aliases ...string) string {
	var value string

	dashed := make([]string, 0, len(aliases))
	fs := flag.NewFlagSet(aliases[0], flag.ContinueOnError)
	fs.SetOutput(discard{})
	for _, a := range aliases {
		dashed = append(dashed, "-"+a)
		fs.StringVar(&value, a, "", "")
	}

	_ = fs.Parse(FilterArgs(os.Args[1:], dashed))
	return value
}

// JsonConfigFlags returns the config file path given via -c or -config.
func JsonConfigFlags() string {
	return lookupString("config", "c")
}

// EnvFileFlags returns the dotenv file path given via -env-file.
func EnvFileFlags() string {
	return lookupString("env-file")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
