// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/config"
	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/randomizer"
	"github.com/coinshuffle/coinshuffle/lib/record"
	"github.com/coinshuffle/coinshuffle/lib/testutil"
	"github.com/coinshuffle/coinshuffle/lib/version"
)

type fixture struct {
	directory string
	resources string
	input     string
	output    string
	record    string
}

// newFixture randomizes a synthetic image twice with different seeds
// and appends a record for each run.
func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")

	directory := t.TempDir()
	image := testutil.StandardImage(0)
	f := fixture{
		directory: directory,
		resources: testutil.PatchDirectory(t, 0),
		input:     testutil.WriteFile(t, directory, "land2.gb", image),
		record:    filepath.Join(directory, "runs.cbor"),
	}

	patches := testutil.PatchSet{"v1.0.ips": testutil.EmptyPatch()}
	mask := feature.Mask(0).With(feature.Locations).With(feature.Music)
	for _, seed := range []uint32{0x10000000, 0x2468ACE0} {
		r := randomizer.New(image, mask, seed)
		output, err := r.Randomize(context.Background(), patches)
		if err != nil {
			t.Fatalf("Randomize: %v", err)
		}
		f.output = testutil.WriteFile(t, directory, r.SeedHex()+".gb", output)
		if err := record.Append(f.record, record.New(r, image, output, version.Tool())); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return f
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	previous := cli.Stdout
	cli.Stdout = &stdout
	t.Cleanup(func() { cli.Stdout = previous })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := Command().Execute(context.Background(), args, logger)
	return stdout.String(), err
}

func exitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestShow(t *testing.T) {
	f := newFixture(t)

	output, err := execute(t, "show", f.record)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d diagnostic lines, want 2:\n%s", len(lines), output)
	}
	if !strings.Contains(lines[1], "610839776") {
		t.Errorf("second record does not show its seed:\n%s", lines[1])
	}

	output, err = execute(t, "show", f.record, "--json")
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}
	var records []record.Record
	if err := json.Unmarshal([]byte(output), &records); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(records) != 2 || records[0].Seed != 0x10000000 || records[1].Version != "v1.0" {
		t.Errorf("records = %+v", records)
	}
}

func TestShowErrors(t *testing.T) {
	garbage := testutil.WriteFile(t, t.TempDir(), "bad.cbor", []byte{0xFF, 0x00})
	for _, args := range [][]string{
		{"show"},
		{"show", filepath.Join(t.TempDir(), "missing.cbor")},
		{"show", garbage},
		{"show", garbage, "--json"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v succeeded, want error", args)
		}
	}
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	unrelated := testutil.WriteFile(t, f.directory, "other.gb", testutil.StandardImage(1))

	tests := []struct {
		name  string
		image string
		want  []string
		code  int
	}{
		{"output of the last run", f.output, []string{matchNone, matchOutput}, 0},
		{"shared input", f.input, []string{matchInput, matchInput}, 0},
		{"unrelated image", unrelated, []string{matchNone, matchNone}, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			output, err := execute(t, "verify", f.record, test.image, "--json")
			if test.code == 0 && err != nil {
				t.Fatalf("verify: %v", err)
			}
			if test.code != 0 && exitCode(err) != test.code {
				t.Fatalf("exit code = %d (err %v), want %d", exitCode(err), err, test.code)
			}
			var results []verifyResult
			if err := json.Unmarshal([]byte(output), &results); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			for index, want := range test.want {
				if results[index].Match != want {
					t.Errorf("record %d match = %q, want %q", index, results[index].Match, want)
				}
			}
		})
	}
}

func TestReplay(t *testing.T) {
	f := newFixture(t)
	copyPath := filepath.Join(f.directory, "copy.gb")

	output, err := execute(t, "replay", f.record, f.input, "--resources", f.resources, "-o", copyPath)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(output, "replay of record 1 matches") {
		t.Errorf("output = %q", output)
	}
	original, _ := os.ReadFile(f.output)
	replayed, _ := os.ReadFile(copyPath)
	if !bytes.Equal(original, replayed) {
		t.Error("replayed image differs from the recorded output")
	}

	if _, err := execute(t, "replay", f.record, f.input, "--resources", f.resources, "--index", "0"); err != nil {
		t.Errorf("replay --index 0: %v", err)
	}
}

func TestReplayDetectsChangedPatch(t *testing.T) {
	f := newFixture(t)
	changed := testutil.PatchDirectory(t)
	testutil.WriteFile(t, changed, "v1.0.ips", []byte("PATCH\x00\x30\x00\x00\x01\x42EOF"))

	output, err := execute(t, "replay", f.record, f.input, "--resources", changed)
	if exitCode(err) != 1 {
		t.Fatalf("exit code = %d (err %v), want 1", exitCode(err), err)
	}
	if !strings.Contains(output, "differs") {
		t.Errorf("output = %q", output)
	}
}

func TestReplayErrors(t *testing.T) {
	f := newFixture(t)
	empty := testutil.WriteFile(t, f.directory, "empty.cbor", nil)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"wrong input", []string{f.record, f.output, "--resources", f.resources}, "is not the input"},
		{"index out of range", []string{f.record, f.input, "--index", "5"}, "out of range"},
		{"empty record file", []string{empty, f.input}, "holds no records"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"replay"}, test.args...)...)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error = %v, want %q", err, test.wantErr)
			}
		})
	}
}
