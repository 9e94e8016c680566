package targetfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/targetfile"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

var nodeGraph = dedent.Dedent(`
	primary = "node"

	target "node" {
	  type       = "executable"
	  sources    = ["src/node_main.cc"]
	  depends_on = ["libnode"]
	  ldflags    = ["-pthread"]
	}

	target "libnode" {
	  type       = "static_library"
	  sources    = ["src/node.cc", "src/node_buffer.cc"]
	  depends_on = ["libuv"]
	  cflags     = ["-Wall"]
	  defines    = ["NODE_WANT_INTERNALS=1"]

	  condition {
	    when       = config.use_ssl && !config.shared_openssl
	    sources    = ["src/crypto/crypto_tls.cc"]
	    depends_on = ["openssl"]
	    defines    = ["HAVE_OPENSSL=1"]
	  }

	  condition {
	    when    = config.intl == "none"
	    defines = ["NODE_HAVE_I18N_SUPPORT=0"]
	  }
	}

	target "libuv" {
	  type    = "static_library"
	  sources = ["deps/uv/src/uv-common.c"]
	}

	target "openssl" {
	  type    = "static_library"
	  sources = ["deps/openssl/ssl.c"]
	}
`)

func mustParse(t *testing.T, src string) *domain.TargetGraph {
	t.Helper()
	g, err := targetfile.Parse([]byte(src), "targets.hcl")
	require.NoError(t, err)
	return g
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.DefaultGraphFileName)
	require.NoError(t, os.WriteFile(path, []byte(nodeGraph), 0o600))

	g, err := targetfile.NewLoader().Load(path)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, "node", g.Primary())

	libnode, ok := g.Target("libnode")
	require.True(t, ok)
	assert.Equal(t, domain.TargetStaticLibrary, libnode.Type)
	assert.Equal(t, []string{"src/node.cc", "src/node_buffer.cc"}, libnode.Sources)
	assert.Equal(t, []string{"libuv"}, domain.Strings(libnode.Dependencies))
	assert.Equal(t, []string{"-Wall"}, libnode.CFlags)
	require.Len(t, libnode.Conditions, 2)
	assert.Equal(t, "config.use_ssl && !config.shared_openssl", libnode.Conditions[0].When.String())
	assert.Equal(t, []string{"openssl"}, domain.Strings(libnode.Conditions[0].Dependencies))
}

func TestLoader_Load_Missing(t *testing.T) {
	_, err := targetfile.NewLoader().Load(filepath.Join(t.TempDir(), "targets.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrGraphReadFailed.Error())
}

func TestPredicate_Evaluate(t *testing.T) {
	g := mustParse(t, nodeGraph)
	libnode, _ := g.Target("libnode")
	ssl, intl := libnode.Conditions[0].When, libnode.Conditions[1].When

	tests := []struct {
		name     string
		values   map[string]any
		wantSSL  bool
		wantIntl bool
	}{
		{
			name:    "bundled openssl",
			values:  map[string]any{"use_ssl": true, "shared_openssl": false, "intl": "full-icu"},
			wantSSL: true,
		},
		{
			name:   "shared openssl",
			values: map[string]any{"use_ssl": true, "shared_openssl": true, "intl": "full-icu"},
		},
		{
			name:     "without ssl or intl",
			values:   map[string]any{"use_ssl": false, "shared_openssl": false, "intl": "none"},
			wantIntl: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.NewBuildConfiguration(nil, tt.values)

			got, err := ssl.Evaluate(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSSL, got)

			got, err = intl.Evaluate(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntl, got)
		})
	}
}

func TestPredicate_Evaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		when string
	}{
		{"unknown key", "config.use_quic"},
		{"not a boolean", "config.intl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, "target \"a\" {\n  type = \"executable\"\n  condition {\n    when = "+tt.when+"\n  }\n}\n")
			a, _ := g.Target("a")

			_, err := a.Conditions[0].When.Evaluate(domain.NewBuildConfiguration(nil, map[string]any{"intl": "full-icu"}))
			require.Error(t, err)

			var zErr *zerr.Error
			require.True(t, errors.As(err, &zErr))
			assert.Equal(t, tt.when, zErr.Metadata()["when"])
			assert.Contains(t, err.Error(), domain.ErrConditionEvaluation.Error())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "target \"a\" {", domain.ErrGraphParseFailed.Error()},
		{"unknown attribute", "target \"a\" {\n  type = \"executable\"\n  linker = \"lld\"\n}\n", domain.ErrGraphParseFailed.Error()},
		{"missing type", "target \"a\" {\n}\n", domain.ErrGraphParseFailed.Error()},
		{"non-literal attribute", "target \"a\" {\n  type = \"executable\"\n  sources = [config.main]\n}\n", domain.ErrGraphParseFailed.Error()},
		{"invalid type", "target \"a\" {\n  type = \"module\"\n}\n", domain.ErrInvalidTargetType.Error()},
		{
			"duplicate",
			"target \"a\" {\n  type = \"executable\"\n}\ntarget \"a\" {\n  type = \"executable\"\n}\n",
			domain.ErrTargetAlreadyExists.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := targetfile.Parse([]byte(tt.src), "targets.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_DanglingDependencyIsLeftToValidation(t *testing.T) {
	g := mustParse(t, "target \"app\" {\n  type = \"executable\"\n  depends_on = [\"ghost\"]\n}\n")

	err := g.Validate()
	require.Error(t, err)
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "ghost", zErr.Metadata()["dependency"])
}
