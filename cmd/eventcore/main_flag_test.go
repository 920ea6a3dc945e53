package main

import (
	"testing"

	"eventcore/internal/bignum"
)

func TestApplyFFTThresholdSpaceForm(t *testing.T) {
	defer bignum.SetFFTThreshold(bignum.SetFFTThreshold(96))

	rest, err := applyFFTThreshold([]string{"--fft-threshold", "4", "dump", "a.json"})
	if err != nil {
		t.Fatalf("applyFFTThreshold: %v", err)
	}
	if len(rest) != 2 || rest[0] != "dump" || rest[1] != "a.json" {
		t.Errorf("rest = %v, want [dump a.json]", rest)
	}
}

func TestApplyFFTThresholdEqualsForm(t *testing.T) {
	defer bignum.SetFFTThreshold(bignum.SetFFTThreshold(96))

	rest, err := applyFFTThreshold([]string{"--fft-threshold=8", "explore", "a.json"})
	if err != nil {
		t.Fatalf("applyFFTThreshold: %v", err)
	}
	if len(rest) != 2 || rest[0] != "explore" {
		t.Errorf("rest = %v, want [explore a.json]", rest)
	}
}

func TestApplyFFTThresholdNoFlag(t *testing.T) {
	in := []string{"dump", "a.json"}
	rest, err := applyFFTThreshold(in)
	if err != nil {
		t.Fatalf("applyFFTThreshold: %v", err)
	}
	if len(rest) != 2 || rest[0] != "dump" {
		t.Errorf("rest = %v, want unchanged %v", rest, in)
	}
}

func TestApplyFFTThresholdMissingValue(t *testing.T) {
	if _, err := applyFFTThreshold([]string{"--fft-threshold"}); err == nil {
		t.Error("expected an error for a missing value")
	}
}

func TestApplyFFTThresholdBadValue(t *testing.T) {
	if _, err := applyFFTThreshold([]string{"--fft-threshold=nope"}); err == nil {
		t.Error("expected an error for a non-integer value")
	}
}
