package synthetic

import (
	"reflect"
	"testing"
	"time"
)

var anchor = time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(200, DefaultSeed, anchor)
	b := Generate(200, DefaultSeed, anchor)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Generate() with the same seed returned different series")
	}

	c := Generate(200, DefaultSeed+1, anchor)
	if reflect.DeepEqual(a, c) {
		t.Error("Generate() with different seeds returned identical series")
	}
}

func TestGenerateShape(t *testing.T) {
	candles := Generate(200, DefaultSeed, anchor)
	if len(candles) != 200 {
		t.Fatalf("len = %d, want 200", len(candles))
	}

	last := candles[len(candles)-1].Timestamp
	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC); !last.Equal(want) {
		t.Errorf("last timestamp = %v, want %v", last, want)
	}

	for i, c := range candles {
		if i > 0 && !c.Timestamp.After(candles[i-1].Timestamp) {
			t.Fatalf("timestamps not strictly ascending at %d", i)
		}
		if c.Low > c.Close || c.Close > c.High {
			t.Errorf("candle %d: low %.4f close %.4f high %.4f out of order", i, c.Low, c.Close, c.High)
		}
		if c.Close < 1 {
			t.Errorf("candle %d: close %.4f below floor", i, c.Close)
		}
		if c.Volume < 1000 || c.Volume >= 5000 {
			t.Errorf("candle %d: volume %.0f out of range", i, c.Volume)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	if got := Generate(0, DefaultSeed, anchor); got != nil {
		t.Errorf("Generate(0) = %v, want nil", got)
	}
}
