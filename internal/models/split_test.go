package models

import "testing"

func TestSplitStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to SplitStatus
		want     bool
	}{
		{StatusPending, StatusRequested, true},
		{StatusRequested, StatusConfirmed, true},
		{StatusRequested, StatusRejected, true},
		{StatusPending, StatusConfirmed, false},
		{StatusPending, StatusRejected, false},
		{StatusRequested, StatusPending, false},
		{StatusConfirmed, StatusRequested, false},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusRequested, false},
		{StatusRejected, StatusPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSplitStatusOutstanding(t *testing.T) {
	for status, want := range map[SplitStatus]bool{
		StatusPending:   true,
		StatusRequested: true,
		StatusConfirmed: false,
		StatusRejected:  false,
	} {
		if got := status.Outstanding(); got != want {
			t.Errorf("Outstanding(%s) = %v, want %v", status, got, want)
		}
	}
}
