package scanfit

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/banshee-data/scangeom/geom"
)

func TestSetLogWriters(t *testing.T) {
	defer SetLogWriters(LogWriters{})

	var ops, diag, trace bytes.Buffer
	SetLogWriters(LogWriters{Ops: &ops, Diag: &diag, Trace: &trace})

	Opsf("ops message: %d", 1)
	Diagf("diag message: %d", 2)
	Tracef("trace message: %d", 3)

	if !strings.Contains(ops.String(), "ops message: 1") {
		t.Errorf("ops output = %q, want to contain 'ops message: 1'", ops.String())
	}
	if !strings.Contains(diag.String(), "diag message: 2") {
		t.Errorf("diag output = %q, want to contain 'diag message: 2'", diag.String())
	}
	if !strings.Contains(trace.String(), "trace message: 3") {
		t.Errorf("trace output = %q, want to contain 'trace message: 3'", trace.String())
	}
	if !strings.Contains(diag.String(), "[scanfit] ") {
		t.Errorf("diag output = %q, want the [scanfit] prefix", diag.String())
	}
	// Streams stay separate.
	if strings.Contains(ops.String(), "diag message") {
		t.Error("diag message leaked into the ops stream")
	}
}

func TestLogWritersNilDisables(t *testing.T) {
	defer SetLogWriters(LogWriters{})

	var diag bytes.Buffer
	SetLogWriters(LogWriters{Diag: &diag})

	// Disabled streams must not panic.
	Opsf("should not appear")
	Tracef("should not appear")
	Diagf("should appear")

	if !strings.Contains(diag.String(), "should appear") {
		t.Errorf("diag output = %q, want message", diag.String())
	}
}

func TestDegradedFitsWarnOnOps(t *testing.T) {
	defer SetLogWriters(LogWriters{})

	var ops bytes.Buffer
	SetLogWriters(LogWriters{Ops: &ops})

	// An empty cloud leaves the sentinel endpoints untouched.
	FitLineSegmentRANSAC(nil, DefaultRANSACParams())
	if !strings.Contains(ops.String(), "sentinel") {
		t.Errorf("ops output = %q, want a sentinel pass-through warning", ops.String())
	}

	ops.Reset()

	// A collinear cloud never yields a circumcircle.
	pts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	FitCircleRANSAC(pts, RANSACParams{Delta: 0.1, Iterations: 5, Rand: rand.New(rand.NewSource(1))})
	if !strings.Contains(ops.String(), "no circumcircle") {
		t.Errorf("ops output = %q, want a no-candidate warning", ops.String())
	}
}

func TestLogWritersConcurrent(t *testing.T) {
	defer SetLogWriters(LogWriters{})

	var buf bytes.Buffer
	SetLogWriters(LogWriters{Diag: &buf})

	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func(id int) {
			for j := 0; j < 25; j++ {
				Diagf("worker %d message %d", id, j)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if buf.Len() == 0 {
		t.Error("expected output from concurrent writers, got none")
	}
}
