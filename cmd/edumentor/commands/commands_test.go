package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfig writes a properties file pointing at a fresh SQLite database
// and returns its path.
func newTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "edumentor.properties")
	content := "driverIdentifier = sqlite\nurl = " + filepath.Join(dir, "edumentor.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("EDUMENTOR_JWT_SECRET", "cli-test-secret-0123456789")
	return path
}

// run executes the CLI with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_MigrateAndPing(t *testing.T) {
	cfg := newTestConfig(t)

	out, err := run(t, "--config", cfg, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema up to date (sqlite)\n", out)

	out, err = run(t, "--config", cfg, "migrate")
	require.NoError(t, err, "migrate must be repeatable")

	out, err = run(t, "--config", cfg, "ping")
	require.NoError(t, err)
	assert.Equal(t, "ok (sqlite)\n", out)
}

func TestCLI_SignupLoginSearch(t *testing.T) {
	cfg := newTestConfig(t)
	_, err := run(t, "--config", cfg, "migrate")
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "signup",
		"--username", "alice", "--email", "alice@example.com",
		"--first-name", "Alice", "--last-name", "Liddell", "--password", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, "registered alice (id 1)\n", out)

	token, err := run(t, "--config", cfg, "login", "--username", "alice", "--password", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(token), "."), "login should print a JWT")

	_, err = run(t, "--config", cfg, "login", "--username", "alice", "--password", "looking-glass")
	assert.Error(t, err)

	out, err = run(t, "--config", cfg, "--json", "users", "search", "lid")
	require.NoError(t, err)
	var users []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])
	assert.NotContains(t, out, "$2a$", "password hashes must not be printed")
}

func TestCLI_UserDeleteNeedsOwnerOrAdmin(t *testing.T) {
	cfg := newTestConfig(t)
	t.Setenv("EDUMENTOR_TOKEN", "")
	_, err := run(t, "--config", cfg, "migrate")
	require.NoError(t, err)

	tokens := map[string]string{}
	for _, name := range []string{"alice", "bobby"} {
		_, err := run(t, "--config", cfg, "signup",
			"--username", name, "--email", name+"@example.com",
			"--first-name", name, "--last-name", "Test", "--password", "secret-pw")
		require.NoError(t, err)
		token, err := run(t, "--config", cfg, "login", "--username", name, "--password", "secret-pw")
		require.NoError(t, err)
		tokens[name] = strings.TrimSpace(token)
	}

	_, err = run(t, "--config", cfg, "users", "delete", "1", "--token", tokens["bobby"])
	assert.ErrorContains(t, err, "you do not have permission to delete this user")

	_, err = run(t, "--config", cfg, "users", "delete", "1")
	assert.Error(t, err, "a token is required")

	out, err := run(t, "--config", cfg, "users", "delete", "1", "--token", tokens["alice"])
	require.NoError(t, err)
	assert.Equal(t, "deleted user 1\n", out)
}

func TestCLI_ReviewUnknownPost(t *testing.T) {
	cfg := newTestConfig(t)
	_, err := run(t, "--config", cfg, "migrate")
	require.NoError(t, err)
	_, err = run(t, "--config", cfg, "signup",
		"--username", "alice", "--email", "alice@example.com",
		"--first-name", "Alice", "--last-name", "Liddell", "--password", "wonderland")
	require.NoError(t, err)
	token, err := run(t, "--config", cfg, "login", "--username", "alice", "--password", "wonderland")
	require.NoError(t, err)

	_, err = run(t, "--config", cfg, "reviews", "add", "9", "--rating", "4", "--message", "nice", "--token", strings.TrimSpace(token))
	assert.ErrorContains(t, err, "post not found with id 9")

	_, err = run(t, "--config", cfg, "questions", "answer", "3", "because", "--token", strings.TrimSpace(token))
	assert.ErrorContains(t, err, "question not found with id 3")
}

func TestCLI_MetricsAddr(t *testing.T) {
	cfg := newTestConfig(t)

	out, err := run(t, "--config", cfg, "--metrics-addr", "127.0.0.1:0", "ping")
	require.NoError(t, err)
	assert.Equal(t, "ok (sqlite)\n", out)

	_, err = run(t, "--config", cfg, "--metrics-addr", "not-an-address", "ping")
	assert.Error(t, err)
}

func TestCLI_EmptyLookups(t *testing.T) {
	cfg := newTestConfig(t)
	_, err := run(t, "--config", cfg, "migrate")
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "posts", "search", "algebra")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")

	_, err = run(t, "--config", cfg, "messages", "recent", "nobody")
	assert.ErrorContains(t, err, `no user named "nobody"`)

	_, err = run(t, "--config", cfg, "posts", "search", "algebra", "--category", "1")
	assert.Error(t, err)
}

func TestCLI_BadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.properties")
	require.NoError(t, os.WriteFile(path, []byte("driverIdentifier = oracle\n"), 0o600))

	_, err := run(t, "--config", path, "ping")
	assert.Error(t, err)

	_, err = run(t, "--config", filepath.Join(dir, "missing.properties"), "ping")
	assert.Error(t, err)
}
