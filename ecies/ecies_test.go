package ecies

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/core"
	"github.com/BackendStack21/kmacx-go/primitives/edwards"
)

const (
	passphraseVx = "0161B8AFCBD56BA8B6BE5EB54405C415055AA5A6A54971A54CCB8EB047218CFE750863298902ED47511E0EA645A3EB828A98FAA7F7E593791E8645E1CF31A3DC7FF8"
	passphraseVy = "6DEDD8882190BD94E7B793B357D22979ABA717ACFB0BF0A52A5BF0C8E7E4870DE19D0F28D56ECBE063D23393409D518FC24C37D6B864B505507BA9B36A4C71CDC2"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	return new(big.Int).SetBytes(mustHex(t, s))
}

func onesEphemeral() []byte {
	return bytes.Repeat([]byte{0x01}, core.EphemeralSize)
}

func TestGenerateKeyPairGolden(t *testing.T) {
	kp := GenerateKeyPair([]byte("passphrase"))
	if kp.Public.X.Cmp(mustInt(t, passphraseVx)) != 0 {
		t.Errorf("Vx = %X", kp.Public.X)
	}
	if kp.Public.Y.Cmp(mustInt(t, passphraseVy)) != 0 {
		t.Errorf("Vy = %X", kp.Public.Y)
	}
	if kp.Secret.Cmp(core.DeriveSecret([]byte("passphrase"))) != 0 {
		t.Error("secret does not match DeriveSecret")
	}
	if new(big.Int).Mod(kp.Secret, big.NewInt(4)).Sign() != 0 {
		t.Error("secret is not a multiple of the cofactor")
	}
	if !edwards.E521().IsOnCurve(kp.Public) {
		t.Error("public key is off the curve")
	}

	other := GenerateKeyPair([]byte("passphrasE"))
	if edwards.E521().Equal(kp.Public, other.Public) {
		t.Error("distinct passphrases produced the same public key")
	}
}

func TestEncryptDeterministicGolden(t *testing.T) {
	v := GenerateKeyPair([]byte("passphrase")).Public
	ct, err := EncryptDeterministic(v, []byte("hello"), onesEphemeral())
	if err != nil {
		t.Fatalf("EncryptDeterministic: %v", err)
	}

	wantZx := mustInt(t, "01ABC9976F86263F742F4C2B415015F3F5EFF34A67F6CDB72D50BB46C66F66747EA0E431AA2F4728DA191E37507C889839AA5C03BB6EECFB146A28E8A7AD507976AE")
	wantZy := mustInt(t, "04989FBA2063900B10BCEC68EE20DC9E89A36D49531A36211722C76DAC1B702387833E467C512149DE351F5DF0F4C691F358017A5402FC87881D137F425D873BBD")
	if ct.Ephemeral.X.Cmp(wantZx) != 0 || ct.Ephemeral.Y.Cmp(wantZy) != 0 {
		t.Errorf("Z = (%X, %X)", ct.Ephemeral.X, ct.Ephemeral.Y)
	}
	if want := mustHex(t, "F691C457A9"); !bytes.Equal(ct.Ciphertext, want) {
		t.Errorf("ciphertext = %X, want %X", ct.Ciphertext, want)
	}
	wantTag := mustHex(t, "96691C06DF93172C08D6F87AC830D405FC77BB2D783AB4920538BD3D2C3BA802"+
		"77EB662C0DA1B4C28B9870DFCB7693DD567E13A85C4F740E1CB4444D2E08620D")
	if !bytes.Equal(ct.Tag, wantTag) {
		t.Errorf("tag = %X, want %X", ct.Tag, wantTag)
	}

	m, err := Decrypt([]byte("passphrase"), ct)
	if err != nil || string(m) != "hello" {
		t.Fatalf("Decrypt = %q, %v", m, err)
	}
}

func TestEmptyMessage(t *testing.T) {
	v := GenerateKeyPair([]byte("passphrase")).Public
	ct, err := EncryptDeterministic(v, nil, onesEphemeral())
	if err != nil {
		t.Fatalf("EncryptDeterministic: %v", err)
	}
	if len(ct.Ciphertext) != 0 {
		t.Fatalf("ciphertext = %X, want empty", ct.Ciphertext)
	}
	wantTag := mustHex(t, "95DCC8E0E173D514D7244D449D3355E632CC69B643F1070FE6BEBAE22FEED095"+
		"730C02B1F51E1AF8EC2325D206599D460B0B4C08205A1866E22242E0E328E1EA")
	if !bytes.Equal(ct.Tag, wantTag) {
		t.Errorf("tag = %X, want %X", ct.Tag, wantTag)
	}
	m, err := Decrypt([]byte("passphrase"), ct)
	if err != nil || len(m) != 0 {
		t.Fatalf("Decrypt = %q, %v", m, err)
	}
}

func TestRoundTrip(t *testing.T) {
	kp := GenerateKeyPair([]byte("recipient"))
	messages := [][]byte{nil, []byte("x"), []byte("Hello, world"), bytes.Repeat([]byte{0x5A}, 777)}
	for _, m := range messages {
		ct, err := Encrypt(kp.Public, m)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		if len(ct.Ciphertext) != len(m) || len(ct.Tag) != core.DigestSize {
			t.Fatalf("bad cryptogram shape %d/%d", len(ct.Ciphertext), len(ct.Tag))
		}
		got, err := Decrypt([]byte("recipient"), ct)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if !bytes.Equal(got, m) {
			t.Fatalf("round trip mismatch for len %d", len(m))
		}
		got, err = DecryptWithSecret(kp.Secret, ct)
		if err != nil || !bytes.Equal(got, m) {
			t.Fatalf("DecryptWithSecret = %q, %v", got, err)
		}
	}
}

func TestFreshEphemeral(t *testing.T) {
	v := GenerateKeyPair([]byte("recipient")).Public
	a, _ := Encrypt(v, []byte("same"))
	b, _ := Encrypt(v, []byte("same"))
	if edwards.E521().Equal(a.Ephemeral, b.Ephemeral) {
		t.Fatal("two encryptions reused the ephemeral scalar")
	}
}

func TestDecryptRejects(t *testing.T) {
	v := GenerateKeyPair([]byte("recipient")).Public
	ct, err := Encrypt(v, []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if m, err := Decrypt([]byte("intruder"), ct); !errors.Is(err, kmacx.ErrAuthentication) || m != nil {
		t.Errorf("wrong passphrase: got %q, %v", m, err)
	}

	curve := edwards.E521()
	tamper := func(mutate func(*kmacx.AsymmetricCryptogram)) *kmacx.AsymmetricCryptogram {
		c := &kmacx.AsymmetricCryptogram{
			Ephemeral:  ct.Ephemeral,
			Ciphertext: append([]byte{}, ct.Ciphertext...),
			Tag:        append([]byte{}, ct.Tag...),
		}
		mutate(c)
		return c
	}
	auth := map[string]*kmacx.AsymmetricCryptogram{
		"ciphertext bit": tamper(func(c *kmacx.AsymmetricCryptogram) { c.Ciphertext[2] ^= 0x10 }),
		"tag bit":        tamper(func(c *kmacx.AsymmetricCryptogram) { c.Tag[0] ^= 1 }),
		"other point":    tamper(func(c *kmacx.AsymmetricCryptogram) { c.Ephemeral = curve.Double(c.Ephemeral) }),
		"negated point":  tamper(func(c *kmacx.AsymmetricCryptogram) { c.Ephemeral = curve.Negate(c.Ephemeral) }),
	}
	for name, c := range auth {
		if m, err := Decrypt([]byte("recipient"), c); !errors.Is(err, kmacx.ErrAuthentication) || m != nil {
			t.Errorf("%s: got %q, %v", name, m, err)
		}
	}

	offCurve := tamper(func(c *kmacx.AsymmetricCryptogram) {
		c.Ephemeral = kmacx.Point{X: new(big.Int).Add(ct.Ephemeral.X, big.NewInt(1)), Y: ct.Ephemeral.Y}
	})
	if _, err := Decrypt([]byte("recipient"), offCurve); !errors.Is(err, kmacx.ErrInvalidPoint) {
		t.Errorf("off-curve Z: err = %v, want ErrInvalidPoint", err)
	}

	malformed := map[string]*kmacx.AsymmetricCryptogram{
		"nil":       nil,
		"short tag": tamper(func(c *kmacx.AsymmetricCryptogram) { c.Tag = c.Tag[:63] }),
	}
	for name, c := range malformed {
		if _, err := Decrypt([]byte("recipient"), c); !errors.Is(err, kmacx.ErrMalformed) {
			t.Errorf("%s: err = %v, want ErrMalformed", name, err)
		}
	}
}

func TestEncryptRejects(t *testing.T) {
	v := GenerateKeyPair([]byte("recipient")).Public
	if _, err := EncryptDeterministic(v, []byte("m"), make([]byte, 32)); !errors.Is(err, kmacx.ErrMalformed) {
		t.Errorf("short ephemeral: err = %v, want ErrMalformed", err)
	}

	bad := kmacx.Point{X: big.NewInt(4), Y: big.NewInt(5)}
	if _, err := Encrypt(bad, []byte("m")); !errors.Is(err, kmacx.ErrInvalidPoint) {
		t.Errorf("off-curve key: err = %v, want ErrInvalidPoint", err)
	}
	if _, err := Encrypt(kmacx.Point{}, []byte("m")); !errors.Is(err, kmacx.ErrInvalidPoint) {
		t.Errorf("empty key: err = %v, want ErrInvalidPoint", err)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	v := GenerateKeyPair([]byte("bench")).Public
	msg := make([]byte, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encrypt(v, msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecrypt(b *testing.B) {
	kp := GenerateKeyPair([]byte("bench"))
	ct, _ := Encrypt(kp.Public, make([]byte, 1024))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecryptWithSecret(kp.Secret, ct); err != nil {
			b.Fatal(err)
		}
	}
}
