// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"licer/testutil"
)

func TestGetDefaultDiscards(t *testing.T) {
	// Must not panic and must not need a handler.
	Info(context.Background(), "nobody listens")
	testutil.AssertEqual(t, Get(context.Background()), defaultLogger)
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	l := New(nil)
	l.Attach(NewTextHandler(&buf, l.Level, false))
	ctx := Put(context.Background(), l)

	Debug(ctx, "hidden")
	Warn(ctx, "cannot read directory", PathAttr("a/b"), ErrAttr(errors.New("permission denied")))

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug message logged at info level: %q", got)
	}
	for _, want := range []string{"WRN", "cannot read directory", "path=a/b", "permission denied"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("output contains color escapes: %q", got)
	}
}

func TestLevelVar(t *testing.T) {
	var buf bytes.Buffer
	l := New(nil)
	l.Attach(NewTextHandler(&buf, l.Level, false))
	ctx := Put(context.Background(), l)

	LevelVar(ctx).Set(slog.LevelError)
	Warn(ctx, "quiet")
	testutil.AssertEqual(t, buf.String(), "")

	Error(ctx, "loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("error not logged: %q", buf.String())
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	l := New(nil)
	l.Attach(NewTextHandler(&a, l.Level, false))
	l.Attach(NewTextHandler(&b, l.Level, false))
	l.With("k", "v").Info("both")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "both") || !strings.Contains(buf.String(), "k=v") {
			t.Errorf("%s handler output = %q", name, buf.String())
		}
	}
}
