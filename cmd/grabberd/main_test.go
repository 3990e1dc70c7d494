package main

import (
	"testing"

	"github.com/pqrs-org/karabiner-go-core/internal/mousekey"
)

func TestClampByteBoundaries(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 0},
		{127, 127},
		{128, 127},
		{1000, 127},
		{-127, -127},
		{-128, -127},
		{-1000, -127},
	}
	for _, c := range cases {
		if got := clampByte(c.in); got != c.want {
			t.Errorf("clampByte(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToPointingReportClampsEachAxis(t *testing.T) {
	out := mousekey.PointingOutput{X: 200, Y: -200, VerticalWheel: 5, HorizontalWheel: -5}
	report := toPointingReport(out)

	if report.X != 127 {
		t.Errorf("X = %d, want 127", report.X)
	}
	if report.Y != -127 {
		t.Errorf("Y = %d, want -127", report.Y)
	}
	if report.VerticalWheel != 5 || report.HorizontalWheel != -5 {
		t.Errorf("unexpected wheel values: %+v", report)
	}
}
