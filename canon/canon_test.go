package canon

import (
	"bytes"
	"testing"
)

type sample struct {
	B string            `json:"b"`
	A int               `json:"a"`
	M map[string]int     `json:"m,omitempty"`
}

func TestEncodeIsDeterministic(t *testing.T) {
	v := sample{B: "x", A: 1, M: map[string]int{"z": 1, "a": 2, "m": 3}}

	first, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("Encode is not deterministic across calls: %q vs %q", first, again)
		}
	}
}

func TestEncodePreservesDeclaredFieldOrder(t *testing.T) {
	// Field B is declared before A; the encoding must follow declaration
	// order, not alphabetical order, regardless of JSON tag names.
	b, err := Encode(sample{B: "x", A: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	wantPrefix := `{"b":"x","a":1`
	if !bytes.HasPrefix(b, []byte(wantPrefix)) {
		t.Fatalf("Encode(%+v) = %q, want prefix %q", sample{B: "x", A: 1}, b, wantPrefix)
	}
}

func TestEncodeSortsMapKeys(t *testing.T) {
	b, err := Encode(sample{M: map[string]int{"z": 1, "a": 2, "m": 3}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(b, []byte(`"a":2,"m":3,"z":1`)) {
		t.Fatalf("Encode did not sort map keys: %q", b)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	want := sample{B: "hello", A: 42, M: map[string]int{"k": 7}}
	b, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got sample
	if err := Decode(b, &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.A != want.A || got.B != want.B || got.M["k"] != want.M["k"] {
		t.Fatalf("Decode(Encode(x)) = %+v, want %+v", got, want)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var dst sample
	if err := Decode([]byte("not json"), &dst); err == nil {
		t.Fatal("Decode of invalid input should fail")
	}
}
