package logs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func TestTailMissingFileIsEmpty(t *testing.T) {
	result, err := Tail(context.Background(), filepath.Join(t.TempDir(), "absent.log"), TailOptions{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 0 || result.Offset != 0 {
		t.Errorf("result: %+v", result)
	}
}

func TestTailLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cradle.log")
	writeLog(t, path, "one\ntwo\nthree\nfour\n")

	result, err := Tail(context.Background(), path, TailOptions{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[0] != "three" || result.Lines[1] != "four" {
		t.Errorf("lines: %v", result.Lines)
	}
	if result.Offset == 0 {
		t.Error("expected end-of-file offset")
	}
}

func TestTailResumesFromOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cradle.log")
	writeLog(t, path, "one\ntwo\n")

	first, err := Tail(context.Background(), path, TailOptions{Offset: 0})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(first.Lines) != 2 {
		t.Fatalf("lines: %v", first.Lines)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString("three\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	second, err := Tail(context.Background(), path, TailOptions{Offset: first.Offset})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(second.Lines) != 1 || second.Lines[0] != "three" {
		t.Errorf("lines: %v", second.Lines)
	}
}

func TestTailWaitStopsOnContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cradle.log")
	writeLog(t, path, "")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Tail(ctx, path, TailOptions{Offset: 0, Wait: 5 * time.Second})
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Tail did not stop promptly on cancel")
	}
}

func TestTailRestartsAfterTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cradle.log")
	writeLog(t, path, "one\ntwo\nthree\n")

	first, err := Tail(context.Background(), path, TailOptions{Offset: 0})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	writeLog(t, path, "new\n")

	second, err := Tail(context.Background(), path, TailOptions{Offset: first.Offset})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(second.Lines) != 1 || second.Lines[0] != "new" {
		t.Errorf("lines: %v", second.Lines)
	}
}
