// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff reports differences between expected and actual test
// output.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Diff returns a human-readable description of the differences
// between want and got, or "" if they are equal. It uses the system
// "diff" command when there is one and otherwise falls back to the
// first differing line.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	cmd := "diff"
	if runtime.GOOS == "plan9" {
		cmd = "/bin/ape/diff"
	}
	if _, err := exec.LookPath(cmd); err != nil {
		return firstDiff(want, got)
	}

	dir, err := os.MkdirTemp("", "benchplot-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)
	wantPath, gotPath := filepath.Join(dir, "want"), filepath.Join(dir, "got")
	if err := os.WriteFile(wantPath, []byte(want), 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(gotPath, []byte(got), 0666); err != nil {
		return err.Error()
	}

	data, err := exec.Command(cmd, "-u", wantPath, gotPath).CombinedOutput()
	if len(data) > 0 {
		// diff exits 1 when the files differ.
		return string(data)
	}
	if err != nil {
		return fmt.Sprintf("%s failed: %v\n%s", cmd, err, firstDiff(want, got))
	}
	return firstDiff(want, got)
}

// firstDiff describes the first line at which want and got differ.
func firstDiff(want, got string) string {
	wl, gl := strings.Split(want, "\n"), strings.Split(got, "\n")
	for i := 0; ; i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return fmt.Sprintf("line %d:\nwant: %q\ngot:  %q\n", i+1, w, g)
		}
	}
}
