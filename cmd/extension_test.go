package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles binaries")
	}
	tempDir := t.TempDir()

	// loans-hello prints the environment it received.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	for _, name := range []string{%q, %q, %q, %q} {
		fmt.Printf("%%s=%%s\n", name, os.Getenv(name))
	}
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvStoreDriver, EnvStorePath, EnvCurrency, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "loans-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write loans-hello source: %v", err)
	}
	build := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile loans-hello: %v", err)
	}

	loansBinaryPath := filepath.Join(tempDir, "loans")
	build = exec.Command("go", "build", "-o", loansBinaryPath, "../loans")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile loans binary: %v", err)
	}

	workDir := t.TempDir()
	storeDir := filepath.Join(workDir, "data")
	loansCmd := exec.Command(loansBinaryPath, "-store", storeDir, "-driver", "sqlite", "-v", "hello", "world")
	loansCmd.Dir = workDir
	loansCmd.Env = []string{
		"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH"),
		"HOME=" + workDir,
		"LOANS_CURRENCY=EUR",
	}
	var stdout, stderr bytes.Buffer
	loansCmd.Stdout = &stdout
	loansCmd.Stderr = &stderr
	if err := loansCmd.Run(); err != nil {
		t.Fatalf("loans command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvStoreDriver + "=sqlite",
		EnvStorePath + "=" + storeDir,
		EnvCurrency + "=EUR",
		EnvVerbose + "=true",
		"args=[world]",
	} {
		if !strings.Contains(output, want+"\n") {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}
