package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment passed to extensions. SBK_LEDGER is also read by the
// configuration, so an extension built on this module sees the same ledger.
const (
	EnvConfigFile = "SBK_CONFIG"
	EnvLedgerFile = "SBK_LEDGER"
	EnvRaw        = "SBK_RAW"
)

// RunExtension attempts to find and execute an external sbk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath("sbk-" + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv(os.Environ())

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv passes global flags as environment variables.
func extensionEnv(environ []string) []string {
	env := append([]string{}, environ...)
	env = append(env, EnvConfigFile+"="+*configFile)
	if *ledgerFile != "" {
		env = append(env, EnvLedgerFile+"="+*ledgerFile)
	}
	return append(env, EnvRaw+"="+strconv.FormatBool(*raw))
}
