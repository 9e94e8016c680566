package configure

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"go.trai.ch/kiln/internal/core/domain"
)

// Usage returns the option listing printed by --help.
func (r *Resolver) Usage() string {
	var buf bytes.Buffer
	buf.WriteString("Usage: kiln configure [options]\n\nOptions:\n")

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  -h, --help\tshow this listing")
	for _, opt := range r.options {
		flag := opt.FlagName()
		if opt.Kind == domain.OptionValue {
			flag += "=<" + strings.TrimPrefix(strings.TrimPrefix(opt.Key, "dest_"), "use_") + ">"
		}

		usage := opt.Usage
		if len(opt.Choices) > 0 {
			usage += " [" + strings.Join(opt.Choices, "|") + "]"
		}
		if opt.Kind == domain.OptionValue && opt.Default != nil {
			usage += fmt.Sprintf(" (default: %v)", opt.Default)
		}
		if opt.Requires != "" {
			usage += " (requires " + opt.Requires + ")"
		}
		_, _ = fmt.Fprintf(tw, "      %s\t%s\n", flag, usage)
	}
	_ = tw.Flush()

	buf.WriteString("\nEnvironment:\n  CC, CXX, AR  compilers and archiver (default: cc, c++, ar)\n")
	return buf.String()
}
