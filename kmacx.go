// Package kmacx implements a small self-contained cryptographic toolkit built from
// two primitives: the KMAC256 keyed extendable-output function over Keccak-f[1600]
// and the E-521 Edwards curve group.
//
// Every protocol in this module is a composition of those two primitives:
// plain hashing, message authentication, passphrase-based authenticated encryption,
// ECIES-style public-key encryption and Schnorr-style signatures.
package kmacx

// Version of the kmacx Go implementation.
const Version = "1.0.0"

// API summary:
//
// Primitives:
//   - keccak.KeccakF1600(state) - The 24-round permutation on a 200-byte state
//   - keccak.New(mdlen) - Sponge with rate 200-2*mdlen
//   - kmac.Sum(key, data, bits, custom) - KMAC256 with the output length bound in
//   - edwards.E521() - The E-521 curve group
//
// Symmetric:
//   - symmetric.Hash(m) - 512-bit plain hash
//   - symmetric.MAC(pw, m) - 512-bit authentication tag
//   - symmetric.Encrypt(pw, m) / symmetric.Decrypt(pw, c) - Authenticated encryption
//
// Public key:
//   - ecies.GenerateKeyPair(pw) - Key pair derived from a passphrase
//   - ecies.Encrypt(V, m) / ecies.Decrypt(pw, c) - ECIES-style encryption
//   - sign.Sign(pw, m) / sign.Verify(V, m, sig) - Schnorr-style signatures
