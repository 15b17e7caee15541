// Package testutil holds assertions and fixture builders shared by the
// tilechess-go package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/tilechess-go/internal/chess"
)

// AssertEqual compares got and want with cmp.Diff.
// msgAndArgs is an optional format string and arguments prefixed to the
// failure.
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		fail(t, msgAndArgs, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertSameCells compares destination sets: order is ignored and nil
// equals empty.
func AssertSameCells(t *testing.T, got, want []chess.Cell, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(lessCell), cmpopts.EquateEmpty()); diff != "" {
		fail(t, msgAndArgs, "cells differ (-want +got):\n%s", diff)
	}
}

// AssertSamePieces compares two snapshots ignoring order.
func AssertSamePieces(t *testing.T, got, want []chess.Piece, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(lessPiece), cmpopts.EquateEmpty()); diff != "" {
		fail(t, msgAndArgs, "snapshots differ (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		fail(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// AssertError fails if err is nil.
func AssertError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		fail(t, msgAndArgs, "expected an error, got nil")
	}
}

// AssertContains fails if substr is not in got.
func AssertContains(t *testing.T, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		fail(t, msgAndArgs, "%q does not contain %q", got, substr)
	}
}

// AssertNotContains fails if substr is in got.
func AssertNotContains(t *testing.T, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if strings.Contains(got, substr) {
		fail(t, msgAndArgs, "%q should not contain %q", got, substr)
	}
}

func fail(t *testing.T, msgAndArgs []interface{}, format string, args ...interface{}) {
	t.Helper()
	text := fmt.Sprintf(format, args...)
	if msg := formatMessage(msgAndArgs...); msg != "" {
		text = msg + ": " + text
	}
	t.Error(text)
}

// lessCell orders cells rank first, as a tile map reads bottom up.
func lessCell(a, b chess.Cell) bool {
	if a.J != b.J {
		return a.J < b.J
	}
	return a.I < b.I
}

func lessPiece(a, b chess.Piece) bool {
	if a.Cell != b.Cell {
		return lessCell(a.Cell, b.Cell)
	}
	if a.Colour != b.Colour {
		return a.Colour < b.Colour
	}
	return a.Kind < b.Kind
}

func formatMessage(msgAndArgs ...interface{}) string {
	switch {
	case len(msgAndArgs) == 0:
		return ""
	case len(msgAndArgs) > 1:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
	}
	return fmt.Sprint(msgAndArgs[0])
}
