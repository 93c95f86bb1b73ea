//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

// scrollback kept from the app's terminal output
const ringSize = 1 << 20

var binPath = "boatyard_e2e"

const (
	KeyEnter  = "\r"
	KeyEsc    = "\x1b"
	KeyQuit   = "q"
	KeyHelp   = "?"
	KeyRecord = "o"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// TUITestFramework runs boatyard in a pty and records everything it draws
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu   sync.Mutex
	out  []byte
	head int
	full bool
}

// NewTUITest creates a framework bound to t
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, out: make([]byte, ringSize)}
}

// CreateTestWorkspace creates the directory the app runs in and uses as $HOME
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	return tf.workspace, nil
}

// StartApp launches boatyard with args on a 120x40 pty, against a config
// file inside the workspace.
func (tf *TUITestFramework) StartApp(args ...string) error {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return err
		}
	}
	args = append([]string{"-config", filepath.Join(tf.workspace, "config.toml")}, args...)
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Dir = tf.workspace
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"BOATYARD_E2E_TEST=1",
	)

	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	tf.pty, tf.tty = ptmx, tty
	tf.cmd.Stdin, tf.cmd.Stdout, tf.cmd.Stderr = tty, tty, tty

	size := struct{ rows, cols, x, y uint16 }{40, 120, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptmx.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&size)))

	if err := tf.cmd.Start(); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("failed to start boatyard: %w", err)
	}
	go tf.capture()
	return nil
}

// capture copies pty output into the ring until the pty closes
func (tf *TUITestFramework) capture() {
	chunk := make([]byte, 8192)
	for {
		n, err := tf.pty.Read(chunk)
		tf.mu.Lock()
		for _, c := range chunk[:n] {
			tf.out[tf.head] = c
			tf.head = (tf.head + 1) % ringSize
			if tf.head == 0 {
				tf.full = true
			}
		}
		tf.mu.Unlock()
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw input to the app
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Type sends text one key at a time so each rune arrives as its own key press
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	for _, r := range text {
		if err := tf.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(30 * time.Millisecond)
	}
	return nil
}

func (tf *TUITestFramework) SendEnter() error { return tf.SendKeys(KeyEnter) }

// Select shows the reviews of the boat under the cursor
func (tf *TUITestFramework) Select() error { return tf.SendKeys(KeyEnter) }

// OpenRecord opens the page of the boat under the cursor
func (tf *TUITestFramework) OpenRecord() error { return tf.SendKeys(KeyRecord) }

func (tf *TUITestFramework) Back() error { return tf.SendKeys(KeyEsc) }

func (tf *TUITestFramework) Quit() error { return tf.SendKeys(KeyQuit) }

// Ready waits for the marker the app prints once it has started
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, "__READY__") }, 5*time.Second)
}

// SeePlain waits up to 3s for text to show up in the output without escapes
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

// WaitFor polls the raw output until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for !pred(tf.Snapshot()) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
	return true
}

// WaitForE is WaitFor returning failMsg plus the output tail on timeout
func (tf *TUITestFramework) WaitForE(pred func(string) bool, timeout time.Duration, failMsg string) error {
	tf.t.Helper()
	if tf.WaitFor(pred, timeout) {
		return nil
	}
	return fmt.Errorf("%s\n--- tail ---\n%s", failMsg, tail(tf.SnapshotPlain(), 4096))
}

// Snapshot returns everything captured so far, oldest first
func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.out[:tf.head])
	}
	return string(tf.out[tf.head:]) + string(tf.out[:tf.head])
}

// SnapshotPlain is Snapshot without escape sequences
func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail writes the last n bytes of plain output to a temp file
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(tail(tf.SnapshotPlain(), n)), 0644)
	t.Logf("Saved tail to %s", p)
}

func tail(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// Cleanup closes the pty, which hangs up the app, then kills it if needed
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
