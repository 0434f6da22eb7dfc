package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestQueryCommand_Text(t *testing.T) {
	csv := writeTempCSV(t, "id,age\n1,30\n2,40\n7,20\n")

	out, _, err := runCLI(t,
		"query", "SELECT id, age+10 FROM t1 WHERE id<6 LIMIT 3",
		"--csv", csv, "--table", "t1")
	require.NoError(t, err)

	assert.Contains(t, out, "Logical plan:")
	assert.Contains(t, out, "[Limit] count=3")
	assert.Contains(t, out, "Optimized plan (applied: Limit Pushdown):")
	assert.Contains(t, out, "-> SequentialScan(table=t1)")
	assert.Contains(t, out, "2 row(s):")
	assert.Contains(t, out, `"age_plus_10":50`)
}

func TestQueryCommand_JSON(t *testing.T) {
	csv := writeTempCSV(t, "id,city\n1,Gander\n2,Goose Bay\n")

	out, _, err := runCLI(t,
		"query", "SELECT city FROM t1 WHERE city='Gander'",
		"--csv", csv, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Token string   `json:"token"`
			Rules []string `json:"applied_rules"`
			Rows  []map[string]any
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"Selection Pushdown"}, resp.Data.Rules)
	require.Len(t, resp.Data.Rows, 1)
	assert.Equal(t, "Gander", resp.Data.Rows[0]["city"])
}

func TestQueryCommand_SyntaxError(t *testing.T) {
	csv := writeTempCSV(t, "a,b\n1,2\n")

	out, _, err := runCLI(t, "query", "SELECT x y", "--csv", csv)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E_SYNTAX")
	assert.Contains(t, out, "missing SELECT clause")
}

func TestQueryCommand_MissingCSVFile(t *testing.T) {
	_, _, err := runCLI(t, "query", "SELECT a FROM t1", "--csv", "/nonexistent.csv")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	csv := writeTempCSV(t, "a\n1\n")

	_, _, err := runCLI(t, "query", "SELECT a FROM t1", "--csv", csv, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
