package utils

import "testing"

func TestReferenceCodecRoundTrip(t *testing.T) {
	codec, err := NewReferenceCodec("test-salt")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	for _, id := range []int64{1, 42, 987654321} {
		code, err := codec.Encode(id)
		if err != nil {
			t.Fatalf("encode %d: %v", id, err)
		}
		if len(code) < 12 {
			t.Errorf("code %q shorter than the minimum length", code)
		}

		decoded, err := codec.Decode(code)
		if err != nil {
			t.Fatalf("decode %q: %v", code, err)
		}
		if decoded != id {
			t.Errorf("round trip %d -> %q -> %d", id, code, decoded)
		}
	}
}

func TestReferenceCodecSaltMatters(t *testing.T) {
	first, err := NewReferenceCodec("salt-one")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	second, err := NewReferenceCodec("salt-two")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	codeOne, err := first.Encode(42)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	codeTwo, err := second.Encode(42)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if codeOne == codeTwo {
		t.Errorf("different salts produced identical codes")
	}
}

func TestReferenceCodecRejectsGarbage(t *testing.T) {
	codec, err := NewReferenceCodec("test-salt")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	if _, err := codec.Decode("!!not-a-code!!"); err == nil {
		t.Errorf("expected an error for a malformed code")
	}
}
