package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
)

// Environment variables set for extensions.
const (
	EnvStoreDriver = "LOANS_STORE_DRIVER"
	EnvStorePath   = "LOANS_STORE_PATH"
	EnvCurrency    = "LOANS_CURRENCY"
	EnvVerbose     = "LOANS_VERBOSE"
)

// RunExtension attempts to find and execute an external loans-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension receives the store location and the display currency resolved from the
// configuration and the global flags. The store path is absolute.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "loans-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("external command not found in PATH", "command", externalCmdName, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the environment describing the configuration to an extension.
// When the configuration is invalid, the raw global flags are passed instead.
func extensionEnv() []string {
	driver, path, currency := *storeDriver, *storePath, ""
	if cfg, err := loadConfig(); err == nil {
		driver, path, currency = cfg.Store.Driver, cfg.Store.Path, cfg.Currency
	} else {
		slog.Debug("invalid configuration passed as is to the extension", "error", err)
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return []string{
		EnvStoreDriver + "=" + driver,
		EnvStorePath + "=" + path,
		EnvCurrency + "=" + currency,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
