package change

import (
	"bytes"
	"testing"

	"github.com/fbkclanna/gerritfetch/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func fullEnv() map[string]string {
	return map[string]string{
		EnvHost:    "review.gerrithub.io",
		EnvProject: "org/repoA",
		EnvRefspec: "refs/changes/12/1234/1",
	}
}

func bufLogger(buf *bytes.Buffer) *logging.Logger {
	return logging.New(logging.Options{Level: "debug", Format: logging.FormatJSON, Output: buf})
}

func TestRead_runnable(t *testing.T) {
	res := Read(envOf(fullEnv()), nil, nil)

	require.True(t, res.IsRunnable())
	assert.Equal(t, ReasonNone, res.Reason)
	assert.Equal(t, Request{
		Host:    "review.gerrithub.io",
		Project: "org/repoA",
		Refspec: "refs/changes/12/1234/1",
	}, *res.Request)
}

func TestRead_missingVariables(t *testing.T) {
	for _, key := range []string{EnvHost, EnvProject, EnvRefspec} {
		t.Run("unset "+key, func(t *testing.T) {
			env := fullEnv()
			delete(env, key)

			var buf bytes.Buffer
			res := Read(envOf(env), nil, bufLogger(&buf))

			assert.False(t, res.IsRunnable())
			assert.Equal(t, ReasonMissingConfiguration, res.Reason)
			assert.Equal(t, []string{key}, res.Missing)
			assert.Contains(t, buf.String(), `"level":"warn"`)
			assert.Contains(t, buf.String(), key)
		})

		t.Run("empty "+key, func(t *testing.T) {
			env := fullEnv()
			env[key] = ""

			res := Read(envOf(env), nil, nil)
			assert.False(t, res.IsRunnable())
			assert.Equal(t, ReasonMissingConfiguration, res.Reason)
		})
	}
}

func TestRead_allMissing(t *testing.T) {
	res := Read(envOf(nil), nil, nil)

	assert.False(t, res.IsRunnable())
	assert.Equal(t, []string{EnvHost, EnvProject, EnvRefspec}, res.Missing)
}

func TestRead_disallowedHost(t *testing.T) {
	for _, host := range []string{"review.example.org", "REVIEW.GERRITHUB.IO", "review.gerrithub.io.evil", " review.gerrithub.io"} {
		t.Run(host, func(t *testing.T) {
			env := fullEnv()
			env[EnvHost] = host

			var buf bytes.Buffer
			res := Read(envOf(env), nil, bufLogger(&buf))

			assert.False(t, res.IsRunnable())
			assert.Equal(t, ReasonDisallowedHost, res.Reason)
			assert.Empty(t, res.Missing)
			assert.Contains(t, buf.String(), "GERRIT_HOST not allowed")
		})
	}
}

func TestRead_customAllowList(t *testing.T) {
	env := fullEnv()
	env[EnvHost] = "review.example.org"

	res := Read(envOf(env), []string{"review.example.org"}, nil)
	require.True(t, res.IsRunnable())
	assert.Equal(t, "review.example.org", res.Request.Host)

	res = Read(envOf(fullEnv()), []string{"review.example.org"}, nil)
	assert.Equal(t, ReasonDisallowedHost, res.Reason)
}

func TestRead_malformedProjectIsStillRunnable(t *testing.T) {
	env := fullEnv()
	env[EnvProject] = "reponame"

	res := Read(envOf(env), nil, nil)
	assert.True(t, res.IsRunnable(), "project shape is checked when resolving the working copy")
}

func TestRead_defaultsToProcessEnvironment(t *testing.T) {
	t.Setenv(EnvHost, "review.gerrithub.io")
	t.Setenv(EnvProject, "org/repoB")
	t.Setenv(EnvRefspec, "refs/changes/34/3434/2")

	res := Read(nil, nil, nil)
	require.True(t, res.IsRunnable())
	assert.Equal(t, "org/repoB", res.Request.Project)
}

func TestRead_optionLikeRefspec(t *testing.T) {
	for _, refspec := range []string{"--upload-pack=touch pwned", "-q"} {
		t.Run(refspec, func(t *testing.T) {
			env := fullEnv()
			env[EnvRefspec] = refspec

			var buf bytes.Buffer
			res := Read(envOf(env), nil, bufLogger(&buf))

			assert.False(t, res.IsRunnable())
			assert.Equal(t, ReasonInvalidRefspec, res.Reason)
			assert.Contains(t, buf.String(), "GERRIT_REFSPEC rejected")
		})
	}
}

func TestValidateRefspec(t *testing.T) {
	for _, refspec := range []string{"refs/changes/12/1234/1", "+refs/heads/*:refs/remotes/origin/*", "main"} {
		assert.NoError(t, ValidateRefspec(refspec), refspec)
	}
	assert.ErrorIs(t, ValidateRefspec("--upload-pack=x"), ErrInvalidRefspec)
}
