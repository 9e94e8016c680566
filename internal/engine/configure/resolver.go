// Package configure resolves configure flags and the host environment into a build configuration.
package configure

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// DebugArea is the debug area the resolver logs under.
const DebugArea = "configure"

// assignment is one flag driving one key to one value.
type assignment struct {
	token string
	flag  string
	key   string
	value any
}

// Resolver turns configure arguments into a BuildConfiguration.
type Resolver struct {
	host     ports.Host
	logger   ports.Logger
	options  []domain.Option
	validate *validator.Validate
}

// NewResolver creates a Resolver over the declared option table.
func NewResolver(host ports.Host, logger ports.Logger) *Resolver {
	return &Resolver{
		host:     host,
		logger:   logger,
		options:  domain.Options(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Resolve validates args and returns the configuration they describe.
// It fails with ErrHelpRequested, unwrapped, when args ask for the option listing.
func (r *Resolver) Resolve(args []string, outputDir string) (*domain.BuildConfiguration, error) {
	if err := r.checkTokens(args); err != nil {
		return nil, err
	}

	fs, switches, values := r.flagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, domain.ErrHelpRequested
		}
		return nil, zerr.Wrap(err, domain.ErrInvalidOptionValue.Error())
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, zerr.With(domain.ErrUnexpectedArgument, "argument", rest[0])
	}

	assigned, err := r.collect(fs, switches, values)
	if err != nil {
		return nil, err
	}
	if err := r.checkConflicts(fs, assigned); err != nil {
		return nil, err
	}

	resolved := r.defaults()
	for _, a := range assigned {
		resolved[a.key] = a.value
	}

	hostPlatform := r.host.Platform()
	resolved[domain.KeyHostOS] = hostPlatform.OS
	resolved[domain.KeyHostArch] = hostPlatform.Arch
	if resolved[domain.KeyDestOS] == nil {
		resolved[domain.KeyDestOS] = hostPlatform.OS
	}
	if resolved[domain.KeyDestCPU] == nil {
		resolved[domain.KeyDestCPU] = hostPlatform.Arch
	}

	dest := domain.Platform{OS: fmt.Sprint(resolved[domain.KeyDestOS]), Arch: fmt.Sprint(resolved[domain.KeyDestCPU])}
	if !dest.Supported() {
		return nil, zerr.With(zerr.With(domain.ErrUnsupportedPlatform, "platform", dest.String()), "flags", "--dest-os, --dest-cpu")
	}

	if err := r.probeToolchain(resolved); err != nil {
		return nil, err
	}
	resolved[domain.KeyOutputDir] = outputDir

	if r.logger.DebugEnabled(DebugArea) {
		r.logger.Debug(DebugArea, fmt.Sprintf("resolved %d options for %s (%s)", len(resolved), dest, resolved[domain.KeyBuildType]))
	}
	return domain.NewBuildConfiguration(args, resolved), nil
}

// checkTokens rejects flags that are not in the option table, naming the token as given.
func (r *Resolver) checkTokens(args []string) error {
	for _, arg := range args {
		if arg == "--" {
			return nil
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}
		if arg == "-h" {
			continue
		}
		if !strings.HasPrefix(arg, "--") {
			return zerr.With(domain.ErrUnknownOption, "option", arg)
		}
		name, _, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if name == "help" {
			continue
		}
		if !slices.ContainsFunc(r.options, func(o domain.Option) bool { return o.Flag == name }) {
			return zerr.With(domain.ErrUnknownOption, "option", arg)
		}
	}
	return nil
}

func (r *Resolver) flagSet() (*pflag.FlagSet, map[string]*bool, map[string]*[]string) {
	fs := pflag.NewFlagSet("configure", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	switches := make(map[string]*bool)
	values := make(map[string]*[]string)
	for _, opt := range r.options {
		if opt.Kind == domain.OptionSwitch {
			switches[opt.Flag] = fs.Bool(opt.Flag, false, opt.Usage)
			continue
		}
		values[opt.Flag] = fs.StringArray(opt.Flag, nil, opt.Usage)
	}
	return fs, switches, values
}

// collect turns every flag present on the command line into assignments, validating values.
func (r *Resolver) collect(fs *pflag.FlagSet, switches map[string]*bool, values map[string]*[]string) ([]assignment, error) {
	var out []assignment
	for _, opt := range r.options {
		if !fs.Changed(opt.Flag) {
			continue
		}

		if opt.Kind == domain.OptionSwitch {
			if *switches[opt.Flag] {
				out = append(out, assignment{token: opt.FlagName(), flag: opt.Flag, key: opt.Key, value: opt.Set})
			}
			continue
		}

		for _, v := range *values[opt.Flag] {
			if err := r.checkValue(opt, v); err != nil {
				return nil, err
			}
			out = append(out, assignment{token: opt.FlagName() + "=" + v, flag: opt.Flag, key: opt.Key, value: v})
		}
	}
	return out, nil
}

func (r *Resolver) checkValue(opt domain.Option, v string) error {
	tag := "required"
	if len(opt.Choices) > 0 {
		tag = "required,oneof=" + strings.Join(opt.Choices, " ")
	}
	if err := r.validate.Var(v, tag); err != nil {
		e := zerr.With(zerr.With(domain.ErrInvalidOptionValue, "flag", opt.FlagName()), "value", v)
		if len(opt.Choices) > 0 {
			e = zerr.With(e, "choices", strings.Join(opt.Choices, ", "))
		}
		return e
	}
	return nil
}

// checkConflicts rejects declared conflicting pairs and flags driving one key to different values.
func (r *Resolver) checkConflicts(fs *pflag.FlagSet, assigned []assignment) error {
	for _, opt := range r.options {
		if !fs.Changed(opt.Flag) {
			continue
		}
		for _, other := range opt.Conflicts {
			if fs.Changed(other) {
				return zerr.With(domain.ErrConflictingOptions, "flags", opt.FlagName()+", --"+other)
			}
		}
	}

	byKey := make(map[string][]assignment)
	var keys []string
	for _, a := range assigned {
		if _, seen := byKey[a.key]; !seen {
			keys = append(keys, a.key)
		}
		byKey[a.key] = append(byKey[a.key], a)
	}
	for _, key := range keys {
		group := byKey[key]
		for _, a := range group[1:] {
			if a.value == group[0].value {
				continue
			}
			tokens := make([]string, 0, len(group))
			for _, g := range group {
				if !slices.Contains(tokens, g.token) {
					tokens = append(tokens, g.token)
				}
			}
			return zerr.With(zerr.With(domain.ErrConflictingOptions, "flags", strings.Join(tokens, ", ")), "key", key)
		}
	}
	return nil
}

// defaults returns the table defaults. The first option declaring a default for a key wins.
func (r *Resolver) defaults() map[string]any {
	out := make(map[string]any)
	for _, opt := range r.options {
		if opt.Default == nil {
			continue
		}
		if _, ok := out[opt.Key]; !ok {
			out[opt.Key] = opt.Default
		}
	}
	return out
}
