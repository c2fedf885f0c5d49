package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

const (
	EnvLogLevel     = "IBKR_LOG_LEVEL"
	EnvLogFormat    = "IBKR_LOG_FORMAT"
	EnvNAVTolerance = "IBKR_NAV_TOLERANCE"
	EnvStrict       = "IBKR_STRICT"
)

// extensionEnv returns the environment of an extension: the current one plus the resolved settings.
func extensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvLogLevel+"="+settings.LogLevel.String())
	env = append(env, EnvLogFormat+"="+settings.LogFormat)
	env = append(env, EnvNAVTolerance+"="+settings.NAVTolerance.String())
	env = append(env, EnvStrict+"="+strconv.FormatBool(settings.Strict))
	return env
}

// RunExtension attempts to find and execute an external ibkr-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "ibkr-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("extension not found", "name", name, "error", err)
		return false, 0
	}

	c := exec.Command(lp, args...)
	c.Stdin = os.Stdin
	c.Stdout = stdout
	c.Stderr = os.Stderr
	c.Env = extensionEnv()

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
