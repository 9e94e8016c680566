package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func TestLoader_Load_Missing(t *testing.T) {
	m, err := newLoader(t).Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultManifest(), m)
}

func TestLoader_Load_Success(t *testing.T) {
	root := t.TempDir()
	content := dedent.Dedent(`
		project: node
		graph: build/targets.hcl
		tests:
		  root: test
		  pattern: "test-*.js"
		  binary: out/Release/node
		  timeout: 30s
		  suite_timeout: 1h
		  jobs: 4
		  groups:
		    - dir: parallel
		      mode: parallel
		    - dir: sequential
		      mode: sequential
		    - dir: pummel
		      mode: sequential
	`)
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ManifestFileName), []byte(content), 0o600))

	m, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "node", m.Project)
	assert.Equal(t, "build/targets.hcl", m.Graph)
	assert.Equal(t, "test-*.js", m.Tests.Pattern)
	assert.Equal(t, "out/Release/node", m.Tests.Binary)
	assert.Equal(t, 30*time.Second, m.Tests.Timeout)
	assert.Equal(t, time.Hour, m.Tests.SuiteTimeout)
	assert.Equal(t, 4, m.Tests.Jobs)
	assert.Equal(t, []domain.TestGroup{
		{Dir: "parallel", Mode: domain.ModeParallel},
		{Dir: "sequential", Mode: domain.ModeSequential},
		{Dir: "pummel", Mode: domain.ModeSequential},
	}, m.Tests.Groups)
}

func TestLoader_Parse_Defaults(t *testing.T) {
	m, err := newLoader(t).Parse([]byte("project: node\n"))
	require.NoError(t, err)

	want := domain.DefaultManifest()
	want.Project = "node"
	assert.Equal(t, want, m)
}

func TestLoader_Parse_Empty(t *testing.T) {
	m, err := newLoader(t).Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultManifest(), m)
}

func TestLoader_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"syntax", "tests: [", domain.ErrManifestParseFailed},
		{"unknown key", "test:\n  jobs: 2\n", domain.ErrManifestParseFailed},
		{"unknown nested key", "tests:\n  job: 2\n", domain.ErrManifestParseFailed},
		{"bad mode", "tests:\n  groups:\n    - dir: parallel\n      mode: fast\n", domain.ErrManifestInvalid},
		{"missing dir", "tests:\n  groups:\n    - mode: parallel\n", domain.ErrManifestInvalid},
		{"nested dir", "tests:\n  groups:\n    - dir: a/b\n      mode: parallel\n", domain.ErrManifestInvalid},
		{"negative jobs", "tests:\n  jobs: -1\n", domain.ErrManifestInvalid},
		{"bad timeout", "tests:\n  timeout: soon\n", domain.ErrManifestInvalid},
		{"bad pattern", "tests:\n  pattern: \"[\"\n", domain.ErrManifestInvalid},
		{
			"duplicate group",
			"tests:\n  groups:\n    - dir: parallel\n      mode: parallel\n    - dir: parallel\n      mode: sequential\n",
			domain.ErrManifestInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want.Error())
		})
	}
}

func TestLoader_Parse_InvalidFieldMetadata(t *testing.T) {
	_, err := newLoader(t).Parse([]byte("tests:\n  groups:\n    - dir: parallel\n      mode: fast\n"))
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "oneof", zErr.Metadata()["rule"])
	assert.Equal(t, "Manifest.Tests.Groups[0].Mode", zErr.Metadata()["field"])
}
