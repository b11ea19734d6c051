// Package cli — cli_test.go runs the commands end to end through the root
// command with captured stdout and stderr.
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/langtour/internal/model"
)

// execute runs the root command with args and returns captured output.
// A fresh root command is built each time, which also resets the global
// flag variables to their defaults.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// requireExitCode asserts err is a CLIError with the given code.
func requireExitCode(t *testing.T, err error, code model.ExitCode) {
	t.Helper()
	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected CLIError, got %T: %v", err, err)
	assert.Equal(t, code, cliErr.Code)
}

// writeFile writes content to name inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// echoServer starts a WebSocket echo server and returns its ws:// URL.
func echoServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// silentServer starts a WebSocket server that never replies.
func silentServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestToArray(t *testing.T) {
	stdout, _, err := execute(t, "toarray")
	require.NoError(t, err)
	assert.Equal(t, "apple\nbanana\ncherry\n", stdout)
}

func TestToArray_JSON(t *testing.T) {
	stdout, _, err := execute(t, "toarray", "--json")
	require.NoError(t, err)

	var got toArrayResultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []string{"apple", "banana", "cherry"}, got.Array)
	assert.Equal(t, 3, got.Length)
}

func TestStackTrace(t *testing.T) {
	stdout, stderr, err := execute(t, "stacktrace")
	require.NoError(t, err, "the raised error is caught by the demo")
	assert.Empty(t, stdout)

	lines := strings.Split(strings.TrimRight(stderr, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "Caught: Exception with stack trace", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "\tat "))
	assert.Contains(t, lines[1], "failure.ThrowWithStackTrace")
}

func TestStackTrace_JSON(t *testing.T) {
	stdout, _, err := execute(t, "stacktrace", "--json")
	require.NoError(t, err)

	var got stackTraceResultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "Exception with stack trace", got.Caught)
	require.NotEmpty(t, got.Frames)
	assert.Contains(t, got.Frames[0].Function, "ThrowWithStackTrace")
}

func TestSuppressed(t *testing.T) {
	stdout, stderr, err := execute(t, "suppressed")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "Caught: Primary Exception\nSuppressed: Suppressed Exception\n", stderr)
}

func TestSuppressed_JSON(t *testing.T) {
	stdout, _, err := execute(t, "suppressed", "--json")
	require.NoError(t, err)

	var got suppressedResultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "Primary Exception", got.Caught)
	assert.Equal(t, []string{"Suppressed Exception"}, got.Suppressed)
}

func TestFileIO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.txt")

	stdout, _, err := execute(t, "fileio", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!\n", stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(data))
}

func TestFileIO_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.txt")

	stdout, _, err := execute(t, "fileio", "--json", "--path", path, "--content", "custom")
	require.NoError(t, err)

	var got fileIOResultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, path, got.Path)
	assert.Equal(t, "custom", got.Read)
	assert.True(t, got.Equal)
}

func TestFileIO_IOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "example.txt")

	_, _, err := execute(t, "fileio", "--path", path)
	requireExitCode(t, err, model.ExitFileIOError)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestFileIO_ConfigAndFlagPrecedence verifies config values apply and that
// explicitly set flags win over them.
func TestFileIO_ConfigAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	fromConfig := filepath.Join(dir, "from-config.txt")
	cfgPath := writeFile(t, "langtour.yaml",
		"file:\n  path: "+fromConfig+"\n  content: from config\n")

	stdout, _, err := execute(t, "fileio", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "from config\n", stdout)

	stdout, _, err = execute(t, "fileio", "--config", cfgPath, "--content", "from flag")
	require.NoError(t, err)
	assert.Equal(t, "from flag\n", stdout)
}

func TestFileIO_BlankPathFlag(t *testing.T) {
	_, _, err := execute(t, "fileio", "--path", " ")
	requireExitCode(t, err, model.ExitInvalidArgument)
}

func TestConfig_Invalid(t *testing.T) {
	cfgPath := writeFile(t, "langtour.jsonc", `{"lambda": {"concurrency": -2}}`)
	_, _, err := execute(t, "lambda", "--config", cfgPath)
	requireExitCode(t, err, model.ExitConfigError)
}

func TestWebSocket_Echo(t *testing.T) {
	url := echoServer(t)

	stdout, stderr, err := execute(t, "websocket", "--url", url, "--message", "hi", "--timeout", "5s")
	require.NoError(t, err)
	assert.Equal(t, "WebSocket opened\nReceived message: hi\n", stdout)
	assert.Empty(t, stderr)
}

func TestWebSocket_JSON(t *testing.T) {
	url := echoServer(t)

	stdout, _, err := execute(t, "websocket", "--json", "--url", url, "--message", "hi")
	require.NoError(t, err)

	var got struct {
		URL     string               `json:"url"`
		Events  []webSocketEventJSON `json:"events"`
		Outcome struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, url, got.URL)
	assert.Equal(t, "message", got.Outcome.Kind)
	assert.Equal(t, "hi", got.Outcome.Message)
	require.GreaterOrEqual(t, len(got.Events), 2)
	assert.Equal(t, "open", got.Events[0].Event)
	assert.Equal(t, "message", got.Events[1].Event)
}

func TestWebSocket_Timeout(t *testing.T) {
	url := silentServer(t)

	stdout, _, err := execute(t, "websocket", "--url", url, "--timeout", "100ms")
	requireExitCode(t, err, model.ExitWebSocketTimeout)
	assert.Equal(t, "WebSocket opened\n", stdout)
}

func TestWebSocket_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	_, _, err := execute(t, "websocket", "--url", url, "--timeout", "1s")
	requireExitCode(t, err, model.ExitWebSocketError)
}

func TestWebSocket_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "http scheme", args: []string{"--url", "http://example.org"}},
		{name: "zero timeout", args: []string{"--timeout", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"websocket"}, tt.args...)...)
			requireExitCode(t, err, model.ExitInvalidArgument)
		})
	}
}

func TestLambda(t *testing.T) {
	stdout, _, err := execute(t, "lambda", "--concurrency", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Lengths of strings: [1 2 3 2]\n")
	assert.Contains(t, stdout, "Result of multiplyAndAdd(3, 5): 25\n")
	assert.Contains(t, stdout, "Concatenation of 'hello' and 'world': helloworld\n")
	for _, pair := range []string{"a: 1\n", "b: 2\n", "c: 3\n"} {
		assert.Contains(t, stdout, pair)
	}
}

func TestLambda_JSON(t *testing.T) {
	stdout, _, err := execute(t, "lambda", "--json")
	require.NoError(t, err)

	var got lambdaResultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []int{1, 2, 3, 2}, got.Lengths)
	assert.Equal(t, 25, got.MultiplyAndAdd)
	assert.Equal(t, "helloworld", got.Concat)
	assert.ElementsMatch(t, []lambdaPairJSON{
		{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3},
	}, got.Pairs)
}

func TestLambda_InvalidConcurrency(t *testing.T) {
	_, _, err := execute(t, "lambda", "--concurrency", "0")
	requireExitCode(t, err, model.ExitInvalidArgument)
}

func TestStrings(t *testing.T) {
	stdout, _, err := execute(t, "strings")
	require.NoError(t, err)

	assert.Contains(t, stdout, "isBlank.......: false\n")
	assert.Contains(t, stdout, "lines.........: 1\n")
	assert.Contains(t, stdout, "strip.........: Hello World\n")
	assert.Contains(t, stdout, "repeat........:  Hello World  Hello World  Hello World \n")
	assert.Contains(t, stdout, "Testing isBlank()\ntrue\ntrue\nfalse\n")
	assert.Contains(t, stdout, "\"Hello World!\"\n\"Hello World!   \"\n\"   Hello World!\"\n")
	assert.Contains(t, stdout, "Testing lines()\nLine1\nLine2\nLine3\nLine4\n")
	assert.Contains(t, stdout, "abc-abc-abc-\n")
	assert.Contains(t, stdout, "\"Hello\"\n\"\u2000 Hello \u2000\"\n")
	assert.NotContains(t, stdout, `\u2000`)
	assert.Contains(t, stdout, "Testing isEmpty() versus isBlank()\ntrue\nfalse\ntrue\ntrue\n")
	assert.Contains(t, stdout, "\n#################\n\n")
	assert.True(t, strings.HasSuffix(stdout, "\n#################\n\n"))
}

func TestStrings_CustomSample(t *testing.T) {
	stdout, _, err := execute(t, "strings", "   ", "--repeat", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "isBlank.......: true\n")
	assert.Contains(t, stdout, "repeat........: \n")
}

func TestStrings_NegativeRepeat(t *testing.T) {
	_, _, err := execute(t, "strings", "--repeat=-1")
	requireExitCode(t, err, model.ExitInvalidArgument)
}

func TestStrings_JSON(t *testing.T) {
	stdout, _, err := execute(t, "strings", "--json")
	require.NoError(t, err)

	var got stringsResultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.NotEmpty(t, got.Sections)
	assert.Empty(t, got.Sections[0].Title)
	assert.Equal(t, "Testing lines()", got.Sections[3].Title)
	require.Len(t, got.Sections[3].Checks, 4)
	assert.Equal(t, "Line4", got.Sections[3].Checks[3].Result)
}

func TestAll(t *testing.T) {
	cfgPath := writeFile(t, "langtour.yaml",
		"file:\n  path: "+filepath.Join(t.TempDir(), "all.txt")+"\n")

	stdout, stderr, err := execute(t, "all", "--config", cfgPath)
	require.NoError(t, err)

	// Demos run in the fixed order and the network demo is skipped.
	last := -1
	for _, d := range model.LocalDemos {
		idx := strings.Index(stdout, "=== "+d.String()+" ===")
		require.GreaterOrEqual(t, idx, 0, "missing header for %s", d)
		assert.Greater(t, idx, last, "%s out of order", d)
		last = idx
	}
	assert.NotContains(t, stdout, "=== websocket ===")
	assert.Contains(t, stderr, "Caught: Primary Exception")
}

func TestAll_Only(t *testing.T) {
	stdout, _, err := execute(t, "all", "--only", "strings,toarray")
	require.NoError(t, err)

	toarray := strings.Index(stdout, "=== toarray ===")
	str := strings.Index(stdout, "=== strings ===")
	require.GreaterOrEqual(t, toarray, 0)
	require.GreaterOrEqual(t, str, 0)
	assert.Less(t, toarray, str, "standard order is kept regardless of --only order")
	assert.NotContains(t, stdout, "=== lambda ===")
}

func TestAll_OnlyInvalid(t *testing.T) {
	_, _, err := execute(t, "all", "--only", "bogus")
	requireExitCode(t, err, model.ExitInvalidArgument)
}

func TestAll_OnlyWebSocket(t *testing.T) {
	url := echoServer(t)
	cfgPath := writeFile(t, "langtour.jsonc",
		`{"websocket": {"url": "`+url+`", "message": "via all"}}`)

	stdout, _, err := execute(t, "all", "--config", cfgPath, "--only", "websocket")
	require.NoError(t, err)
	assert.Equal(t, "=== websocket ===\nWebSocket opened\nReceived message: via all\n", stdout)
}

func TestSelectDemos(t *testing.T) {
	tests := []struct {
		name  string
		flags allFlags
		want  []model.DemoName
	}{
		{name: "default is local demos", flags: allFlags{}, want: model.LocalDemos},
		{
			name:  "network appends websocket",
			flags: allFlags{network: true},
			want:  append(append([]model.DemoName{}, model.LocalDemos...), model.DemoWebSocket),
		},
		{
			name:  "only keeps standard order and dedupes",
			flags: allFlags{only: []string{"lambda", "toarray", "LAMBDA"}},
			want:  []model.DemoName{model.DemoToArray, model.DemoLambda},
		},
		{
			name:  "only websocket needs no network flag",
			flags: allFlags{only: []string{"websocket"}},
			want:  []model.DemoName{model.DemoWebSocket},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := tt.flags
			got, err := selectDemos(&flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintError(t *testing.T) {
	t.Cleanup(func() { jsonOutput = false })

	t.Run("text", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		printError(&buf, "file round trip failed", errors.New("disk full"))
		assert.Equal(t, "Error: file round trip failed: disk full\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		jsonOutput = true
		var buf bytes.Buffer
		printError(&buf, "file round trip failed", errors.New("disk full"))

		var got map[string]map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "file round trip failed", got["error"]["message"])
		assert.Equal(t, "disk full", got["error"]["detail"])
	})
}

func TestDotLabel(t *testing.T) {
	assert.Equal(t, "strip.........", dotLabel("strip", 14))
	assert.Equal(t, "stripTrailing.", dotLabel("stripTrailing", 14))
	assert.Equal(t, "averyverylonglabel", dotLabel("averyverylonglabel", 14))
}
