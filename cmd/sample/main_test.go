package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `version: "1"
name: demo
contexts:
  - name: staging
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), &stdout, &stderr, args)

	return code, stdout.String(), stderr.String()
}

func TestExecute_Run(t *testing.T) {
	code, out, _ := runCLI(t, "run")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Engine running\n", out)
}

func TestExecute_ProcessDefaultContext(t *testing.T) {
	code, out, _ := runCLI(t, "process", "--config", writeConfig(t, testConfig))

	assert.Equal(t, 0, code)
	assert.Equal(t, "Processing with context: \"demo\"\n", out)
}

func TestExecute_ProcessNamedContext(t *testing.T) {
	code, out, _ := runCLI(t, "process", "staging", "--config", writeConfig(t, testConfig))

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "staging")
}

func TestExecute_ProcessUnknownContext(t *testing.T) {
	code, out, errOut := runCLI(t, "process", "prod", "--config", writeConfig(t, testConfig))

	assert.Equal(t, exitNotFound, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Not found: context prod")
}

func TestExecute_MissingConfig(t *testing.T) {
	code, _, errOut := runCLI(t, "contexts", "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, exitNotFound, code)
	assert.Contains(t, errOut, "Not found: config file")
}

func TestExecute_InvalidConfig(t *testing.T) {
	code, _, errOut := runCLI(t, "process", "--config", writeConfig(t, "version: \"1\"\nname: \"\"\n"))

	assert.Equal(t, exitInvalidInput, code)
	assert.Contains(t, errOut, "Invalid input:")
}

func TestExecute_Contexts(t *testing.T) {
	code, out, _ := runCLI(t, "contexts", "--config", writeConfig(t, testConfig))

	assert.Equal(t, 0, code)
	assert.Equal(t, "demo\nstaging\n", out)
}

func TestExecute_UnknownCommand(t *testing.T) {
	code, _, _ := runCLI(t, "explode")

	assert.Equal(t, exitError, code)
}

func TestServe_ProcessesContextsUntilCanceled(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())

	ctx, cancel := context.WithCancel(context.Background())

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- execute(ctx, &stdout, &stderr, []string{
			"serve",
			"--config", writeConfig(t, testConfig),
			"--grpc-port", strconv.Itoa(port),
		})
	}()

	require.Eventually(t, func() bool {
		code, out, _ := runCLI(t, "status", "--addr", "127.0.0.1:"+strconv.Itoa(port), "--timeout", "500ms")
		return code == 0 && bytes.Contains([]byte(out), []byte("SERVING"))
	}, 10*time.Second, 100*time.Millisecond)

	cancel()

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}

	assert.Equal(t,
		"Engine running\nProcessing with context: \"demo\"\nProcessing with context: \"staging\"\n",
		stdout.String(),
	)
}
