package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	biterrors "github.com/tamirms/bitwise/errors"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestDemoDefaults(t *testing.T) {
	out, _, err := run(t, "demo")
	require.NoError(t, err)

	want := []string{
		"value:          11111101 10111000 01100100 00100000 [0xFDB86420]",
		"get 24:         00000001 00000000 00000000 00000000 [0x1000000]",
		"set 3:          11111101 10111000 01100100 00101000 [0xFDB86428]",
		"set lower 3:    11111101 10111000 01100100 00101111 [0xFDB8642F]",
		"set higher 3:   11111111 11111111 11111111 11111000 [0xFFFFFFF8]",
		"clear 24:       11111100 10111000 01100100 00100000 [0xFCB86420]",
		"clear lower 20: 11111101 10100000 00000000 00000000 [0xFDA00000]",
		"clear higher 20:00000000 00001000 01100100 00100000 [0x86420]",
		"lowest set bit: 00000000 00000000 00000000 00100000 [0x20]",
		"highest set bit:10000000 00000000 00000000 00000000 [0x80000000]",
		"previous:       11111101 10111000 01100100 00010000 [0xFDB86410]",
		"next:           11111101 10111000 01100100 01000000 [0xFDB86440]",
		"count:          15",
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", out)
}

func TestDemoNarrowWidth(t *testing.T) {
	out, _, err := run(t, "demo", "--width", "8", "--value", "0b11110000", "--pos", "7", "--low", "3", "--range", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "highest set bit:10000000 [0x80]\n")
	assert.Contains(t, out, "lowest set bit: 00010000 [0x10]\n")
	assert.Contains(t, out, "next:           11110000 [0xF0]\n")
	assert.Contains(t, out, "previous:       11101000 [0xE8]\n")
	assert.Contains(t, out, "count:          4\n")
}

func TestDemoErrors(t *testing.T) {
	_, _, err := run(t, "demo", "--pos", "32")
	require.ErrorIs(t, err, biterrors.ErrPositionOutOfRange)

	_, _, err = run(t, "demo", "--width", "8", "--range", "-1")
	require.ErrorIs(t, err, biterrors.ErrPositionOutOfRange)

	_, _, err = run(t, "demo", "--width", "12")
	require.ErrorIs(t, err, biterrors.ErrInvalidWidth)

	_, _, err = run(t, "demo", "--width", "16", "--value", "0x10000")
	require.ErrorContains(t, err, "does not fit in 16 bits")

	_, _, err = run(t, "demo", "--value", "banana")
	require.ErrorContains(t, err, "invalid value")
}

func TestCheck(t *testing.T) {
	out, stderr, err := run(t, "check", "--samples", "2000", "--seed", "7")
	require.NoError(t, err)
	for _, line := range []string{
		" 8-bit: 2000 samples, 0 violations",
		"16-bit: 2000 samples, 0 violations",
		"32-bit: 2000 samples, 0 violations",
		"64-bit: 2000 samples, 0 violations",
	} {
		assert.Contains(t, out, line)
	}
	assert.NotContains(t, stderr, "property violated")

	_, _, err = run(t, "check", "--samples", "-1")
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "check", "--samples", "1")
	require.ErrorContains(t, err, "--log-level")

	_, stderr, err := run(t, "--log-level", "debug", "check", "--samples", "10")
	require.NoError(t, err)
	assert.Contains(t, stderr, "width checked")
}

func TestTableCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combos.bwct")

	out, stderr, err := run(t, "--log-level", "debug", "table", "build", path,
		"--width", "8", "--ones", "3", "--workers", "2", "--chunk", "10", "--checksum", "xxh3")
	require.NoError(t, err)
	assert.Contains(t, out, "56 entries")
	assert.Contains(t, stderr, "table build started")
	assert.Contains(t, stderr, "chunk filled")

	out, _, err = run(t, "table", "stat", path)
	require.NoError(t, err)
	assert.Contains(t, out, "entries:    56\n")
	assert.Contains(t, out, "chunks:     6\n")
	assert.Contains(t, out, "checksum:   xxh3\n")

	out, _, err = run(t, "table", "get", path, "0")
	require.NoError(t, err)
	assert.Equal(t, "00000111 [0x7]\n", out)

	out, _, err = run(t, "table", "get", path, "55")
	require.NoError(t, err)
	assert.Equal(t, "11100000 [0xE0]\n", out)

	_, _, err = run(t, "table", "get", path, "56")
	require.ErrorIs(t, err, biterrors.ErrRankOutOfRange)

	out, _, err = run(t, "table", "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (56 entries)")
}

func TestTableBuildErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "table", "build", filepath.Join(dir, "a"), "--width", "8", "--ones", "3", "--checksum", "crc")
	require.ErrorIs(t, err, biterrors.ErrUnknownChecksum)

	_, _, err = run(t, "table", "build", filepath.Join(dir, "b"), "--width", "64", "--ones", "32")
	require.ErrorIs(t, err, biterrors.ErrTableTooLarge)

	_, _, err = run(t, "table", "build")
	require.Error(t, err)
}

func TestTableVerifyDetectsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combos.bwct")
	_, _, err := run(t, "table", "build", path, "--width", "16", "--ones", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[64+17] ^= 0x40
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, _, err = run(t, "table", "verify", path)
	require.ErrorIs(t, err, biterrors.ErrChecksumFailed)
}
