package kmac

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"golang.org/x/crypto/sha3"
)

// NIST SP 800-185 sample #4 inputs.
var (
	sampleKey    = seq(0x40, 32)
	sampleData   = []byte{0x00, 0x01, 0x02, 0x03}
	sampleCustom = []byte("My Tagged Application")
)

func seq(start byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

func TestKMAC256Sample4(t *testing.T) {
	want := mustHex(t, "20C570C31346F703C9AC36C61C03CB64C3970D0CFC787E9B79599D273A68D2F7"+
		"F69D4CC3DE9D104A351689F27CF6F5951F0103F33F4F24871024D9C27773A8DD")
	got := Sum(sampleKey, sampleData, 512, sampleCustom)
	if !bytes.Equal(got, want) {
		t.Fatalf("KMAC256 sample #4\n got %X\nwant %X", got, want)
	}
}

func TestKMACXOF256Sample4(t *testing.T) {
	want := mustHex(t, "1755133F1534752AAD0748F2C706FB5C784512CAB835CD15676B16C0C6647FA9"+
		"6FAA7AF634A0BF8FF6DF39374FA00FAD9A39E322A7C92065A64EB1FB0801EB2B")
	got := XOF(sampleKey, sampleData, 512, sampleCustom)
	if !bytes.Equal(got, want) {
		t.Fatalf("KMACXOF256 sample #4\n got %X\nwant %X", got, want)
	}
}

func TestHashGolden(t *testing.T) {
	want := mustHex(t, "7DE126230098DBF9B3150C8A16F92FBF8AEA3FDA32CC6CB954570D5813AEFFEE"+
		"70B544CEF4404BDE6D9E08110E1DC39D320BEE751718853C247D0056489F14DB")
	got := Sum(nil, []byte("abc"), 512, []byte("D"))
	if !bytes.Equal(got, want) {
		t.Fatalf("Sum(\"\", \"abc\", 512, \"D\")\n got %X\nwant %X", got, want)
	}
}

// kmacViaXCrypto builds KMAC from the x/crypto cSHAKE256.
func kmacViaXCrypto(key, data []byte, outputBits int, custom []byte, encodedBits uint64) []byte {
	h := sha3.NewCShake256(functionName, custom)
	_, _ = h.Write(Bytepad(EncodeString(key), Rate))
	_, _ = h.Write(data)
	_, _ = h.Write(RightEncode(encodedBits))
	out := make([]byte, (outputBits+7)/8)
	_, _ = h.Read(out)
	return out
}

func TestMatchesXCryptoCShake(t *testing.T) {
	keys := [][]byte{nil, []byte("k"), seq(0, Rate), seq(1, 300)}
	data := [][]byte{nil, []byte("abc"), seq(9, Rate-1), seq(3, 1000)}
	customs := [][]byte{nil, []byte("D"), []byte("SKE"), bytes.Repeat([]byte("x"), 200)}
	for _, k := range keys {
		for _, d := range data {
			for _, c := range customs {
				for _, bits := range []int{8, 512, 1024, 4000} {
					want := kmacViaXCrypto(k, d, bits, c, uint64(bits))
					if got := Sum(k, d, bits, c); !bytes.Equal(got, want) {
						t.Fatalf("Sum mismatch key=%d data=%d custom=%d bits=%d", len(k), len(d), len(c), bits)
					}
					want = kmacViaXCrypto(k, d, bits, c, 0)
					if got := XOF(k, d, bits, c); !bytes.Equal(got, want) {
						t.Fatalf("XOF mismatch key=%d data=%d custom=%d bits=%d", len(k), len(d), len(c), bits)
					}
				}
			}
		}
	}
}

func TestCShake256MatchesXCrypto(t *testing.T) {
	data := seq(0, 200)
	h := sha3.NewCShake256([]byte("Email Signature"), []byte("app"))
	_, _ = h.Write(data)
	want := make([]byte, 64)
	_, _ = h.Read(want)
	if got := CShake256(data, 512, []byte("Email Signature"), []byte("app")); !bytes.Equal(got, want) {
		t.Fatalf("CShake256 mismatch\n got %x\nwant %x", got, want)
	}

	// Empty N and S degrade to SHAKE256.
	want = make([]byte, 64)
	sha3.ShakeSum256(want, data)
	if got := CShake256(data, 512, nil, nil); !bytes.Equal(got, want) {
		t.Fatalf("CShake256 without N/S should be SHAKE256")
	}
}

func TestSumDeterministic(t *testing.T) {
	a := Sum([]byte("key"), []byte("data"), 512, []byte("T"))
	b := Sum([]byte("key"), []byte("data"), 512, []byte("T"))
	if !bytes.Equal(a, b) {
		t.Fatal("Sum is not deterministic")
	}
}

func TestSumEachArgumentMatters(t *testing.T) {
	base := Sum([]byte("key"), []byte("data"), 512, []byte("T"))
	variants := map[string][]byte{
		"key":           Sum([]byte("kez"), []byte("data"), 512, []byte("T")),
		"empty key":     Sum(nil, []byte("data"), 512, []byte("T")),
		"data":          Sum([]byte("key"), []byte("datb"), 512, []byte("T")),
		"customization": Sum([]byte("key"), []byte("data"), 512, []byte("K")),
		"length":        Sum([]byte("key"), []byte("data"), 520, []byte("T"))[:64],
	}
	for name, v := range variants {
		if bytes.Equal(base, v) {
			t.Errorf("changing %s did not change the output", name)
		}
	}
}

func TestKeyDataBoundary(t *testing.T) {
	// The key is block-padded, so moving bytes between key and data must matter.
	a := Sum([]byte("ab"), []byte("c"), 512, nil)
	b := Sum([]byte("a"), []byte("bc"), 512, nil)
	if bytes.Equal(a, b) {
		t.Fatal("key/data split is not separated")
	}
}

func TestSumIsNotTruncationStable(t *testing.T) {
	long := Sum(nil, []byte("message"), 1024, []byte("S"))
	short := Sum(nil, []byte("message"), 512, []byte("S"))
	if bytes.Equal(long[:64], short) {
		t.Fatal("Sum(1024)[:64] == Sum(512); output length is not bound into the input")
	}

	// The NIST XOF variant is prefix-stable by construction.
	longX := XOF(nil, []byte("message"), 1024, []byte("S"))
	shortX := XOF(nil, []byte("message"), 512, []byte("S"))
	if !bytes.Equal(longX[:64], shortX) {
		t.Fatal("XOF output should be prefix-stable")
	}
}

func TestOutputLength(t *testing.T) {
	for _, bits := range []int{0, 1, 7, 8, 9, 512, 1024, 8 * 1000} {
		if got := len(Sum(nil, nil, bits, nil)); got != (bits+7)/8 {
			t.Errorf("len(Sum(bits=%d)) = %d", bits, got)
		}
	}
}

func TestNegativeLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative output length")
		}
	}()
	Sum(nil, nil, -8, nil)
}

func TestEncoders(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"left_encode(0)", LeftEncode(0), []byte{0x01, 0x00}},
		{"left_encode(136)", LeftEncode(136), []byte{0x01, 0x88}},
		{"left_encode(256)", LeftEncode(256), []byte{0x02, 0x01, 0x00}},
		{"right_encode(0)", RightEncode(0), []byte{0x00, 0x01}},
		{"right_encode(512)", RightEncode(512), []byte{0x02, 0x00, 0x02}},
		{"encode_string(\"\")", EncodeString(nil), []byte{0x01, 0x00}},
		{"encode_string(KMAC)", EncodeString([]byte("KMAC")), []byte{0x01, 0x20, 'K', 'M', 'A', 'C'}},
	}
	for _, tt := range tests {
		if !bytes.Equal(tt.got, tt.want) {
			t.Errorf("%s = %x, want %x", tt.name, tt.got, tt.want)
		}
	}
}

func TestBytepad(t *testing.T) {
	for _, n := range []int{0, 1, Rate - 2, Rate - 1, Rate, 500} {
		out := Bytepad(seq(1, n), Rate)
		if len(out)%Rate != 0 {
			t.Errorf("Bytepad(len=%d) length %d not a multiple of %d", n, len(out), Rate)
		}
		if !bytes.Equal(out[:2], []byte{0x01, Rate}) {
			t.Errorf("Bytepad(len=%d) prefix = %x", n, out[:2])
		}
	}
}

func BenchmarkSum512(b *testing.B) {
	data := seq(0, 1024)
	key := []byte("benchmark key")
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Sum(key, data, 512, []byte("T"))
	}
}
