package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const roofInput = `{
	"protocol_type": "roof",
	"date": "15.03.2024",
	"customer": "ООО \"Ромашка\"",
	"object_description": "склад, г. Екатеринбург",
	"temperature": "12",
	"wind_speed": "2",
	"fence_name": "А",
	"length": 50,
	"height": "1,2",
	"mount_points": 20,
	"paint_compliant": true
}`

type cliEnv struct {
	workDir    string
	configFile string
}

// newCLIEnv writes a config rooted at a temp work dir with the network
// features switched off.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv(configEnv, "")
	t.Setenv("CONTRACTS_DIR", "")
	t.Setenv("PRODUCTION", "")
	t.Setenv("LOG_LEVEL", "")

	work := t.TempDir()
	cfg := fmt.Sprintf("work_dir: %q\nweather:\n  enabled: false\nemail:\n  enabled: false\n", work)
	path := filepath.Join(work, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return &cliEnv{workDir: work, configFile: path}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLI(t, append([]string{"--config", e.configFile}, args...)...)
}

func (e *cliEnv) writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(e.workDir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func (e *cliEnv) reportsDir() string {
	return filepath.Join(e.workDir, "отчёты")
}

// runCLI executes rootCmd in-process. Flag values live in package variables,
// so every flag is reset to its default first.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	closeApp()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
