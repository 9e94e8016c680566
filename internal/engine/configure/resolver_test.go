package configure_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/configure"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// newResolver returns a resolver on a linux/x64 host where every tool except missing is on PATH.
func newResolver(t *testing.T, env map[string]string, missing ...string) *configure.Resolver {
	t.Helper()
	ctrl := gomock.NewController(t)

	host := mocks.NewMockHost(ctrl)
	host.EXPECT().Platform().Return(domain.Platform{OS: "linux", Arch: "x64"}).AnyTimes()
	host.EXPECT().Getenv(gomock.Any()).DoAndReturn(func(key string) string { return env[key] }).AnyTimes()
	host.EXPECT().LookPath(gomock.Any()).DoAndReturn(func(tool string) (string, error) {
		for _, m := range missing {
			if m == tool {
				return "", errors.New("executable file not found in $PATH")
			}
		}
		return "/usr/bin/" + tool, nil
	}).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().DebugEnabled(gomock.Any()).Return(true).AnyTimes()

	return configure.NewResolver(host, log)
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	return zErr.Metadata()
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := newResolver(t, nil).Resolve(nil, "out")
	require.NoError(t, err)

	assert.Equal(t, domain.BuildTypeRelease, cfg.BuildType())
	assert.Equal(t, domain.Platform{OS: "linux", Arch: "x64"}, cfg.Target())
	assert.Equal(t, domain.Platform{OS: "linux", Arch: "x64"}, cfg.Host())
	assert.Equal(t, "full-icu", cfg.String(domain.KeyIntl))
	assert.Equal(t, "/usr/local", cfg.String(domain.KeyPrefix))
	assert.Equal(t, "cc", cfg.String(domain.KeyCC))
	assert.Equal(t, "c++", cfg.String(domain.KeyCXX))
	assert.Equal(t, "ar", cfg.String(domain.KeyAR))
	assert.Equal(t, "out", cfg.String(domain.KeyOutputDir))
	assert.True(t, cfg.Bool("use_ssl"))
	assert.False(t, cfg.Bool("shared_zlib"))
	assert.False(t, cfg.UseNinja())
	assert.Empty(t, cfg.Args())
}

func TestResolve_Flags(t *testing.T) {
	args := []string{"--debug", "--dest-os=mac", "--dest-cpu", "arm64", "--without-ssl", "--with-intl=small-icu", "--ninja"}
	cfg, err := newResolver(t, map[string]string{"CC": "clang", "CXX": "clang++"}).Resolve(args, "build")
	require.NoError(t, err)

	assert.Equal(t, domain.BuildTypeDebug, cfg.BuildType())
	assert.Equal(t, domain.Platform{OS: "mac", Arch: "arm64"}, cfg.Target())
	assert.Equal(t, domain.Platform{OS: "linux", Arch: "x64"}, cfg.Host())
	assert.False(t, cfg.Bool("use_ssl"))
	assert.Equal(t, "small-icu", cfg.String(domain.KeyIntl))
	assert.True(t, cfg.UseNinja())
	assert.Equal(t, "clang", cfg.String(domain.KeyCC))
	assert.Equal(t, "clang++", cfg.String(domain.KeyCXX))
	assert.Equal(t, args, cfg.Args())
}

func TestResolve_SameValueTwice(t *testing.T) {
	cfg, err := newResolver(t, nil).Resolve([]string{"--without-intl", "--with-intl=none"}, "out")
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.String(domain.KeyIntl))
}

func TestResolve_Help(t *testing.T) {
	for _, arg := range []string{"--help", "-h"} {
		_, err := newResolver(t, nil).Resolve([]string{"--debug", arg}, "out")
		require.ErrorIs(t, err, domain.ErrHelpRequested, arg)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		missing []string
		want    error
		meta    map[string]any
	}{
		{
			name: "unknown option",
			args: []string{"--debug", "--frobnicate"},
			want: domain.ErrUnknownOption,
			meta: map[string]any{"option": "--frobnicate"},
		},
		{
			name: "unknown option with value",
			args: []string{"--frobnicate=yes"},
			want: domain.ErrUnknownOption,
			meta: map[string]any{"option": "--frobnicate=yes"},
		},
		{
			name: "single dash",
			args: []string{"-debug"},
			want: domain.ErrUnknownOption,
			meta: map[string]any{"option": "-debug"},
		},
		{
			name: "positional argument",
			args: []string{"--debug", "release"},
			want: domain.ErrUnexpectedArgument,
			meta: map[string]any{"argument": "release"},
		},
		{
			name: "declared conflict",
			args: []string{"--without-ssl", "--shared-openssl"},
			want: domain.ErrConflictingOptions,
			meta: map[string]any{"flags": "--without-ssl, --shared-openssl"},
		},
		{
			name: "intl disagreement",
			args: []string{"--with-intl=small-icu", "--without-intl"},
			want: domain.ErrConflictingOptions,
			meta: map[string]any{"flags": "--with-intl=small-icu, --without-intl", "key": domain.KeyIntl},
		},
		{
			name: "repeated value",
			args: []string{"--dest-cpu=x64", "--dest-cpu=arm64"},
			want: domain.ErrConflictingOptions,
			meta: map[string]any{"flags": "--dest-cpu=x64, --dest-cpu=arm64", "key": domain.KeyDestCPU},
		},
		{
			name: "invalid choice",
			args: []string{"--dest-os=beos"},
			want: domain.ErrInvalidOptionValue,
			meta: map[string]any{"flag": "--dest-os", "value": "beos"},
		},
		{
			name: "empty value",
			args: []string{"--prefix="},
			want: domain.ErrInvalidOptionValue,
			meta: map[string]any{"flag": "--prefix", "value": ""},
		},
		{
			name: "unsupported platform",
			args: []string{"--dest-os=mac", "--dest-cpu=ia32"},
			want: domain.ErrUnsupportedPlatform,
			meta: map[string]any{"platform": "mac/ia32"},
		},
		{
			name:    "missing ninja",
			args:    []string{"--ninja"},
			missing: []string{"ninja"},
			want:    domain.ErrToolchainMissing,
			meta:    map[string]any{"tool": "ninja", "flag": "--ninja"},
		},
		{
			name:    "missing compiler",
			missing: []string{"c++"},
			want:    domain.ErrToolchainMissing,
			meta:    map[string]any{"tool": "c++", "env": "CXX"},
		},
		{
			name:    "missing make",
			missing: []string{"make"},
			want:    domain.ErrToolchainMissing,
			meta:    map[string]any{"tool": "make"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := newResolver(t, nil, tt.missing...).Resolve(tt.args, "out")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.want.Error())

			meta := metadata(t, err)
			for k, v := range tt.meta {
				assert.Equal(t, v, meta[k], "metadata %s", k)
			}
		})
	}
}

func TestResolve_NinjaSkipsMake(t *testing.T) {
	cfg, err := newResolver(t, nil, "make").Resolve([]string{"--ninja"}, "out")
	require.NoError(t, err)
	assert.True(t, cfg.UseNinja())
}

func TestUsage(t *testing.T) {
	usage := newResolver(t, nil).Usage()

	assert.Contains(t, usage, "Usage: kiln configure [options]")
	assert.Contains(t, usage, "--dest-os=<os>")
	assert.Contains(t, usage, "[full-icu|small-icu|system-icu|none]")
	assert.Contains(t, usage, "(requires ccache)")
	for _, opt := range domain.Options() {
		assert.Contains(t, usage, opt.FlagName())
	}
}
