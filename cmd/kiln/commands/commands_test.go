package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/cmd/kiln/commands"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
)

type mockApp struct {
	configureFunc func(ctx context.Context, opts app.ConfigureOptions) error
	generateFunc  func(ctx context.Context, opts app.GenerateOptions) error
	buildFunc     func(ctx context.Context, opts app.BuildOptions) error
	cleanFunc     func(ctx context.Context, layout domain.Layout) error
	distcleanFunc func(ctx context.Context, layout domain.Layout) error
	testFunc      func(ctx context.Context, opts app.TestOptions) error
	graphFunc     func(ctx context.Context, opts app.GraphOptions) error
}

func (m *mockApp) Configure(ctx context.Context, opts app.ConfigureOptions) error {
	if m.configureFunc != nil {
		return m.configureFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Generate(ctx context.Context, opts app.GenerateOptions) error {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, layout domain.Layout) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, layout)
	}
	return nil
}

func (m *mockApp) Distclean(ctx context.Context, layout domain.Layout) error {
	if m.distcleanFunc != nil {
		return m.distcleanFunc(ctx, layout)
	}
	return nil
}

func (m *mockApp) Test(ctx context.Context, opts app.TestOptions) error {
	if m.testFunc != nil {
		return m.testFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Graph(ctx context.Context, opts app.GraphOptions) error {
	if m.graphFunc != nil {
		return m.graphFunc(ctx, opts)
	}
	return nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Configure(t *testing.T) {
	t.Run("passes raw arguments through", func(t *testing.T) {
		var captured app.ConfigureOptions
		mock := &mockApp{configureFunc: func(_ context.Context, opts app.ConfigureOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock, "-C", "/src/node", "--out", "build", "configure", "--debug", "--dest-cpu=arm64", "--help")
		require.NoError(t, err)

		assert.Equal(t, []string{"--debug", "--dest-cpu=arm64", "--help"}, captured.Args)
		assert.Equal(t, domain.NewLayout("/src/node", "build"), captured.Layout)
	})

	t.Run("unknown options reach the resolver", func(t *testing.T) {
		var captured []string
		mock := &mockApp{configureFunc: func(_ context.Context, opts app.ConfigureOptions) error {
			captured = opts.Args
			return domain.ErrUnknownOption
		}}

		_, err := execute(t, mock, "configure", "-x", "positional")
		require.ErrorIs(t, err, domain.ErrUnknownOption)
		assert.Equal(t, []string{"-x", "positional"}, captured)
	})
}

func TestCommands_Generate(t *testing.T) {
	var captured app.GenerateOptions
	mock := &mockApp{generateFunc: func(_ context.Context, opts app.GenerateOptions) error {
		captured = opts
		return nil
	}}

	_, err := execute(t, mock, "generate", "--force")
	require.NoError(t, err)
	assert.True(t, captured.Force)
	assert.Equal(t, domain.NewLayout(".", "out"), captured.Layout)

	_, err = execute(t, mock, "generate", "extra")
	require.Error(t, err)
}

func TestCommands_Build(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.BuildOptions
	}{
		{
			name: "primary target",
			args: []string{"build"},
			want: app.BuildOptions{Layout: domain.NewLayout(".", "")},
		},
		{
			name: "named target with jobs",
			args: []string{"build", "libuv", "-j", "8"},
			want: app.BuildOptions{Layout: domain.NewLayout(".", ""), Target: "libuv", Jobs: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.BuildOptions
			mock := &mockApp{buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				return nil
			}}

			_, err := execute(t, mock, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, captured)
		})
	}

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{buildFunc: func(_ context.Context, _ app.BuildOptions) error {
			return errors.New("simulated error")
		}}

		_, err := execute(t, mock, "build")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Clean(t *testing.T) {
	var cleaned, distcleaned domain.Layout
	mock := &mockApp{
		cleanFunc: func(_ context.Context, layout domain.Layout) error {
			cleaned = layout
			return nil
		},
		distcleanFunc: func(_ context.Context, layout domain.Layout) error {
			distcleaned = layout
			return nil
		},
	}

	_, err := execute(t, mock, "--out", "o", "clean")
	require.NoError(t, err)
	_, err = execute(t, mock, "distclean")
	require.NoError(t, err)

	assert.Equal(t, domain.NewLayout(".", "o"), cleaned)
	assert.Equal(t, domain.NewLayout(".", "out"), distcleaned)
}

func TestCommands_Test(t *testing.T) {
	t.Run("selection and flags", func(t *testing.T) {
		var captured app.TestOptions
		mock := &mockApp{testFunc: func(_ context.Context, opts app.TestOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock, "test", "parallel", "sequential/test-b.js", "--filter", "http", "--format", "tap", "-j", "4")
		require.NoError(t, err)

		assert.Equal(t, []string{"parallel", "sequential/test-b.js"}, captured.Selection)
		assert.Equal(t, "http", captured.Filter)
		assert.Equal(t, "tap", captured.Format)
		assert.Equal(t, 4, captured.Jobs)
		assert.Empty(t, captured.Mode)
	})

	t.Run("filter from environment", func(t *testing.T) {
		t.Setenv("KILN_TEST_FILTER", "fs")
		var captured app.TestOptions
		mock := &mockApp{testFunc: func(_ context.Context, opts app.TestOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock, "test")
		require.NoError(t, err)
		assert.Equal(t, "fs", captured.Filter)
		assert.Equal(t, "linear", captured.Format)
	})

	t.Run("mode shortcuts", func(t *testing.T) {
		var modes []domain.TestMode
		mock := &mockApp{testFunc: func(_ context.Context, opts app.TestOptions) error {
			modes = append(modes, opts.Mode)
			return nil
		}}

		_, err := execute(t, mock, "test-parallel")
		require.NoError(t, err)
		_, err = execute(t, mock, "test-sequential")
		require.NoError(t, err)

		assert.Equal(t, []domain.TestMode{domain.ModeParallel, domain.ModeSequential}, modes)
	})

	t.Run("propagates failure", func(t *testing.T) {
		mock := &mockApp{testFunc: func(_ context.Context, _ app.TestOptions) error {
			return domain.ErrTestsFailed
		}}

		_, err := execute(t, mock, "test")
		require.ErrorIs(t, err, domain.ErrTestsFailed)
	})
}

func TestCommands_Graph(t *testing.T) {
	var captured app.GraphOptions
	mock := &mockApp{graphFunc: func(_ context.Context, opts app.GraphOptions) error {
		captured = opts
		return nil
	}}

	_, err := execute(t, mock, "graph", "node")
	require.NoError(t, err)
	assert.Equal(t, "node", captured.Target)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, build.Commit)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "kiln version "+build.Version)
}

func TestCommands_Help(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--help")
	require.NoError(t, err)
	for _, name := range []string{"configure", "generate", "build", "clean", "distclean", "test", "graph"} {
		assert.Contains(t, out, name)
	}
}
