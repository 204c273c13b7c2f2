package sign

import (
	"testing"
)

// FuzzDeserializeSignature tests signature parsing with random inputs
func FuzzDeserializeSignature(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte(goldenH + "\n" + goldenZ + "\n"))
	f.Add([]byte("00\n00\n"))

	pub := GenerateKeyPair([]byte("passphrase")).Public
	f.Fuzz(func(t *testing.T, data []byte) {
		sig, err := DeserializeSignature(data)
		if err == nil {
			_ = Verify(pub, []byte("abc"), sig)
		}
	})
}

// FuzzSignVerify checks that every signature verifies and does not transfer to
// another message
func FuzzSignVerify(f *testing.F) {
	f.Add([]byte("pw"), []byte("message"))
	f.Add([]byte{}, []byte{})

	f.Fuzz(func(t *testing.T, pw, msg []byte) {
		kp := GenerateKeyPair(pw)
		sig := SignWithSecret(kp.Secret, msg)
		if !Verify(kp.Public, msg, sig) {
			t.Fatal("valid signature rejected")
		}
		if Verify(kp.Public, append(msg, 0), sig) {
			t.Fatal("signature verified for an extended message")
		}
	})
}
