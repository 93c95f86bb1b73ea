//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startDemo(t *testing.T) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp("-storage", "memory"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("boatyard / Boat Search"), "Should show the search page")
	return tf
}

func waitExit(t *testing.T, tf *TUITestFramework, timeout time.Duration) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("app did not exit")
		return nil
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	// flag exits with status 0 for -help
	require.NoError(t, err)
	require.Contains(t, string(out), "-storage")
	require.Contains(t, string(out), "-empty-id-policy")
}

func TestStartShowsDemoBoats(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.True(t, tf.SeePlain("Wave Dancer"))
	require.True(t, tf.SeePlain("Blue Heron"))
	require.True(t, tf.SeePlain("Select a boat to see its reviews."))

	require.NoError(t, tf.Quit())
	require.NoError(t, waitExit(t, tf, 2*time.Second))
}

func TestSelectShowsReviews(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.Type("/Wave"))
	require.NoError(t, tf.SendEnter())
	require.NoError(t, tf.Select())
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "Great weekend")
	}, 3*time.Second, "reviews for Wave Dancer never showed"))
	require.True(t, tf.SeePlain("Cramped galley"))
}

func TestRecordPageAndBack(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.OpenRecord())
	require.True(t, tf.SeePlain("marco@harbor.example"), "Should show the boat's contact")
	require.NoError(t, tf.Back())
	require.True(t, tf.WaitFor(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.LastIndex(plain, "Boat Search") > strings.LastIndex(plain, "marco@harbor.example")
	}, 3*time.Second), "Should return to the search page")
}

func TestHelpOpensPager(t *testing.T) {
	t.Parallel()
	tf := startDemo(t)

	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.SeePlain("Boatyard Help"), "Should show help in the pager")

	// q leaves the pager, the second q leaves the app
	require.NoError(t, tf.Quit())
	require.True(t, tf.SeePlain("boatyard / Boat Search"))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tf.Quit())
	require.NoError(t, waitExit(t, tf, 2*time.Second))
}

func TestSnapshotPersistsEdits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	snapshot := filepath.Join(workspace, "boats.msgpack")

	require.NoError(t, tf.StartApp("-storage", "memory", "-db", snapshot))
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("Blue Heron"))

	// rename the first boat and save
	require.NoError(t, tf.SendKeys("e"))
	require.True(t, tf.SeePlain("Edit: "))
	require.NoError(t, tf.Type(" II"))
	require.NoError(t, tf.SendEnter())
	require.NoError(t, tf.SendKeys("s"))
	require.True(t, tf.SeePlain("Blue Heron II"))
	time.Sleep(300 * time.Millisecond)

	require.NoError(t, tf.Quit())
	require.NoError(t, waitExit(t, tf, 2*time.Second))

	info, err := os.Stat(snapshot)
	require.NoError(t, err, "snapshot should be written")
	require.Greater(t, info.Size(), int64(0))
}
