package e2e

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/creack/pty"
)

// buildSnapfest builds the snapfest binary for testing.
func buildSnapfest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	binPath := filepath.Join(dir, "snapfest")

	rootDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	rootDir = filepath.Join(rootDir, "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/snapfest")
	cmd.Dir = rootDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

func TestE2E_BrowseAndSearch(t *testing.T) {
	binPath := buildSnapfest(t)

	api := startFixtureAPI()
	defer api.Close()

	// Fresh home directory so the run gets its own ~/.snapfest.
	homeDir := t.TempDir()

	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(),
		"HOME="+homeDir,
		"SNAPFEST_API_URL="+api.URL,
		// The console below never answers terminal status queries; a
		// screen TERM keeps termenv from emitting one and stalling
		// startup waiting for the reply.
		"TERM=screen",
	)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Fatalf("failed to start pty: %v", err)
	}
	defer func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
	}()

	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: 120, Rows: 40}); err != nil {
		t.Fatalf("failed to set pty size: %v", err)
	}

	var outputBuf bytes.Buffer
	console, err := expect.NewConsole(
		expect.WithStdin(ptmx),
		expect.WithStdout(&outputBuf),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	defer console.Close()

	// WithStdin pipes the app's output into the console's tty; nothing
	// reads that tty's input queue, so drain it or the pipe (and the
	// app's renders) block once the queue fills.
	go io.Copy(io.Discard, console.Tty())

	dumpLogs := func() {
		logDir := filepath.Join(homeDir, ".snapfest", "logs")
		entries, _ := os.ReadDir(logDir)
		for _, e := range entries {
			if logs, err := os.ReadFile(filepath.Join(logDir, e.Name())); err == nil {
				t.Logf("%s:\n%s", e.Name(), logs)
			}
		}
	}

	// 1. The fixture page loads.
	if _, err := console.ExpectString("Fixture Photo One"); err != nil {
		dumpLogs()
		t.Fatalf("startup failed: fixture item not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 2. Open search.
	time.Sleep(500 * time.Millisecond)
	if _, err := ptmx.WriteString("/"); err != nil {
		t.Fatalf("failed to send slash: %v", err)
	}

	// 3. Type a query and submit; the fixture backend matches titles
	// by substring. Pace the writes so each lands in its own pty read:
	// back-to-back writes coalesce into one key event and "/two" as a
	// single rune batch matches no binding.
	time.Sleep(100 * time.Millisecond)
	if _, err := ptmx.WriteString("two"); err != nil {
		t.Fatalf("failed to send query: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if _, err := ptmx.WriteString("\r"); err != nil {
		t.Fatalf("failed to send enter: %v", err)
	}

	// 4. The filtered result appears and the header shows the term.
	if _, err := console.ExpectString("Fixture Photo Two"); err != nil {
		dumpLogs()
		t.Fatalf("search result not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	time.Sleep(500 * time.Millisecond)

	// 5. Quit.
	if _, err := ptmx.WriteString("q"); err != nil {
		t.Fatalf("failed to send q: %v", err)
	}

	done := make(chan error)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("process did not exit after 'q'")
	}
}
