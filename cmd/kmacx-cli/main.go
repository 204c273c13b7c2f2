// Package main provides the kmacx-cli command line interface for KMACXOF256 and
// E-521 operations.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/ecies"
	"github.com/BackendStack21/kmacx-go/sign"
	"github.com/BackendStack21/kmacx-go/symmetric"
	"github.com/BackendStack21/kmacx-go/utils"
)

const (
	version = "1.0.0"
	appName = "kmacx-cli"

	passphraseEnv  = "KMACX_PASSPHRASE"
	defaultEnvFile = ".env"
)

// CLIConfig holds CLI configuration
type CLIConfig struct {
	OutputFile string
	InputFile  string
	Message    string
	HasMessage bool
	Passphrase string
	EnvFile    string
	Verbose    bool
	Timing     bool
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, version)
		fmt.Printf("kmacx library version %s\n", kmacx.Version)
	case "hash":
		cmdHash(args)
	case "mac":
		cmdMAC(args)
	case "encrypt":
		cmdEncrypt(args)
	case "decrypt":
		cmdDecrypt(args)
	case "keygen":
		cmdKeygen(args)
	case "pk-encrypt":
		cmdPKEncrypt(args)
	case "pk-decrypt":
		cmdPKDecrypt(args)
	case "sign":
		cmdSign(args)
	case "verify":
		cmdVerify(args)
	case "benchmark":
		handleBenchmark(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - KMACXOF256 / E-521 cryptography CLI

USAGE:
    %s <COMMAND> [OPTIONS]

COMMANDS:
    hash        Hash a message (512-bit digest)
    mac         Authentication tag of a message under a passphrase
    encrypt     Symmetric encryption under a passphrase
    decrypt     Symmetric decryption under a passphrase
    keygen      Write the public key of a passphrase
    pk-encrypt  Encrypt a message to a public key
    pk-decrypt  Decrypt a message with the passphrase of the public key
    sign        Sign a message with a passphrase
    verify      Verify a signature against a public key
    benchmark   Run performance benchmarks
    version     Show version information
    help        Show this help message

OPTIONS:
    --message, -m <text>       Message text
    --input, -i <file>         Message file (default: stdin)
    --output, -o <file>        Output file (default: stdout)
    --passphrase, -p <text>    Passphrase (else $%s, else prompt)
    --env-file <file>          File to load $%s from (default: %s if present)
    --public-key, -pk <file>   Public key file (keygen output)
    --ciphertext, -ct <file>   Cryptogram file
    --signature, -sig <file>   Signature file
    --verbose, -v              Verbose output
    --timing, -t               Report timings on stderr

EXAMPLES:
    %s hash --input report.pdf
    %s keygen --passphrase "secret" --output key.pub
    %s pk-encrypt --public-key key.pub --message "Hello" --output msg.ct
    %s pk-decrypt --passphrase "secret" --ciphertext msg.ct
    %s sign --passphrase "secret" --input report.pdf --output report.sig
    %s verify --public-key key.pub --input report.pdf --signature report.sig
`, appName, appName, passphraseEnv, passphraseEnv, defaultEnvFile,
		appName, appName, appName, appName, appName, appName)
}

// ============================================================================
// Symmetric Commands
// ============================================================================

func cmdHash(args []string) {
	config := parseConfig(args)
	msg := readMessage(config)

	start := time.Now()
	digest := symmetric.Hash(msg)
	reportTiming(config, "Hash", start)

	writeOutput(utils.EncodeHexLines(digest), config.OutputFile)
}

func cmdMAC(args []string) {
	config := parseConfig(args)
	msg := readMessage(config)
	pw := resolvePassphrase(config)
	defer utils.Zeroize(pw)

	start := time.Now()
	tag := symmetric.MAC(pw, msg)
	reportTiming(config, "MAC", start)

	writeOutput(utils.EncodeHexLines(tag), config.OutputFile)
}

func cmdEncrypt(args []string) {
	config := parseConfig(args)
	msg := readMessage(config)
	pw := resolvePassphrase(config)
	defer utils.Zeroize(pw)

	start := time.Now()
	ct, err := symmetric.Encrypt(pw, msg)
	reportTiming(config, "Encryption", start)
	if err != nil {
		fail("Error encrypting: %v", err)
	}

	writeOutput(symmetric.SerializeCryptogram(ct), config.OutputFile)
	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Encrypted %d bytes\n", len(msg))
	}
}

func cmdDecrypt(args []string) {
	config := parseConfig(args)
	ctData := readRequiredFile(args, "--ciphertext", "-ct", "ciphertext")

	ct, err := symmetric.DeserializeCryptogram(ctData)
	if err != nil {
		fail("Error deserializing cryptogram: %v", err)
	}
	pw := resolvePassphrase(config)
	defer utils.Zeroize(pw)

	start := time.Now()
	plaintext, err := symmetric.Decrypt(pw, ct)
	reportTiming(config, "Decryption", start)
	if err != nil {
		fail("Error decrypting: %v", err)
	}
	writePlaintext(plaintext, config)
}

// ============================================================================
// Public-Key Commands
// ============================================================================

func cmdKeygen(args []string) {
	config := parseConfig(args)
	pw := resolvePassphrase(config)
	defer utils.Zeroize(pw)

	start := time.Now()
	kp := ecies.GenerateKeyPair(pw)
	reportTiming(config, "Key derivation", start)

	writeOutput(ecies.SerializePublicKey(kp.Public), config.OutputFile)
	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Derived E-521 public key\n")
	}
}

func cmdPKEncrypt(args []string) {
	config := parseConfig(args)
	pub := loadPublicKey(args)
	msg := readMessage(config)

	start := time.Now()
	ct, err := ecies.Encrypt(pub, msg)
	reportTiming(config, "Encryption", start)
	if err != nil {
		fail("Error encrypting: %v", err)
	}

	writeOutput(ecies.SerializeCryptogram(ct), config.OutputFile)
	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Encrypted %d bytes\n", len(msg))
	}
}

func cmdPKDecrypt(args []string) {
	config := parseConfig(args)
	ctData := readRequiredFile(args, "--ciphertext", "-ct", "ciphertext")

	ct, err := ecies.DeserializeCryptogram(ctData)
	if err != nil {
		fail("Error deserializing cryptogram: %v", err)
	}
	pw := resolvePassphrase(config)
	defer utils.Zeroize(pw)

	start := time.Now()
	plaintext, err := ecies.Decrypt(pw, ct)
	reportTiming(config, "Decryption", start)
	if err != nil {
		fail("Error decrypting: %v", err)
	}
	writePlaintext(plaintext, config)
}

// ============================================================================
// Signature Commands
// ============================================================================

func cmdSign(args []string) {
	config := parseConfig(args)
	msg := readMessage(config)
	pw := resolvePassphrase(config)
	defer utils.Zeroize(pw)

	start := time.Now()
	sig := sign.Sign(pw, msg)
	reportTiming(config, "Signing", start)

	writeOutput(sign.SerializeSignature(sig), config.OutputFile)
}

func cmdVerify(args []string) {
	config := parseConfig(args)
	pub := loadPublicKey(args)
	sigData := readRequiredFile(args, "--signature", "-sig", "signature")

	sig, err := sign.DeserializeSignature(sigData)
	if err != nil {
		fail("Error deserializing signature: %v", err)
	}
	msg := readMessage(config)

	start := time.Now()
	valid := sign.Verify(pub, msg, sig)
	reportTiming(config, "Verification", start)

	if valid {
		writeOutput([]byte("valid\n"), config.OutputFile)
		if config.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Signature is VALID\n")
		}
		os.Exit(0)
	}
	writeOutput([]byte("invalid\n"), config.OutputFile)
	if config.Verbose {
		fmt.Fprintf(os.Stderr, "✗ Signature is INVALID\n")
	}
	os.Exit(1)
}

// ============================================================================
// Benchmark Command
// ============================================================================

func handleBenchmark(args []string) {
	iterationsStr := getArg(args, "--iterations", "-n")

	iterations := 10
	if iterationsStr != "" {
		_, _ = fmt.Sscanf(iterationsStr, "%d", &iterations)
	}
	if iterations < 1 {
		iterations = 1
	}

	fmt.Printf("kmacx Benchmark Results\n")
	fmt.Printf("=======================\n")
	fmt.Printf("Iterations: %d\n\n", iterations)

	pw := []byte("benchmark passphrase")
	msg := bytes.Repeat([]byte("Hello, KMACX!"), 80)

	measure := func(name string, op func() error) {
		var total time.Duration
		for i := 0; i < iterations; i++ {
			start := time.Now()
			err := op()
			total += time.Since(start)
			if err != nil {
				fail("%s error: %v", name, err)
			}
		}
		fmt.Printf("  %-12s %v (avg)\n", name+":", total/time.Duration(iterations))
	}

	fmt.Println("Symmetric")
	fmt.Println("---------")
	measure("Hash", func() error { symmetric.Hash(msg); return nil })
	measure("MAC", func() error { symmetric.MAC(pw, msg); return nil })
	var sct *kmacx.SymmetricCryptogram
	measure("Encrypt", func() (err error) { sct, err = symmetric.Encrypt(pw, msg); return err })
	measure("Decrypt", func() error { _, err := symmetric.Decrypt(pw, sct); return err })
	fmt.Println()

	fmt.Println("Public Key (E-521)")
	fmt.Println("------------------")
	var kp *kmacx.KeyPair
	measure("KeyGen", func() error { kp = ecies.GenerateKeyPair(pw); return nil })
	var act *kmacx.AsymmetricCryptogram
	measure("Encrypt", func() (err error) { act, err = ecies.Encrypt(kp.Public, msg); return err })
	measure("Decrypt", func() error { _, err := ecies.DecryptWithSecret(kp.Secret, act); return err })
	var sig *kmacx.Signature
	measure("Sign", func() error { sig = sign.SignWithSecret(kp.Secret, msg); return nil })
	measure("Verify", func() error {
		if !sign.Verify(kp.Public, msg, sig) {
			return errors.New("signature rejected")
		}
		return nil
	})
}

// ============================================================================
// Helpers
// ============================================================================

func parseConfig(args []string) CLIConfig {
	config := CLIConfig{}
	config.OutputFile = getArg(args, "--output", "-o")
	config.InputFile = getArg(args, "--input", "-i")
	config.Message = getArg(args, "--message", "-m")
	config.HasMessage = hasValue(args, "--message", "-m")
	config.Passphrase = getArg(args, "--passphrase", "-p")
	config.EnvFile = getArg(args, "--env-file", "")
	config.Verbose = hasFlag(args, "--verbose", "-v")
	config.Timing = hasFlag(args, "--timing", "-t")

	if config.HasMessage && config.InputFile != "" {
		fail("Error: --message and --input are mutually exclusive")
	}
	return config
}

func getArg(args []string, long, short string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == long || (short != "" && args[i] == short) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || (short != "" && arg == short) {
			return true
		}
	}
	return false
}

// hasValue reports whether the option is present with a value, so an empty
// --message "" is distinguishable from no --message.
func hasValue(args []string, long, short string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == long || (short != "" && args[i] == short) {
			return true
		}
	}
	return false
}

// resolvePassphrase returns the passphrase from --passphrase, then from
// $KMACX_PASSPHRASE (after loading the env file), then from a terminal prompt.
func resolvePassphrase(config CLIConfig) []byte {
	if config.Passphrase != "" {
		return []byte(config.Passphrase)
	}

	if config.EnvFile != "" {
		if err := godotenv.Load(config.EnvFile); err != nil {
			fail("Error loading env file: %v", err)
		}
	} else if _, err := os.Stat(defaultEnvFile); err == nil {
		if err := godotenv.Load(defaultEnvFile); err != nil {
			fail("Error loading %s: %v", defaultEnvFile, err)
		}
	}
	if pw, ok := os.LookupEnv(passphraseEnv); ok && pw != "" {
		return []byte(pw)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fail("Error: passphrase required (use --passphrase or $%s)", passphraseEnv)
	}
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fail("Error reading passphrase: %v", err)
	}
	return pw
}

// readMessage returns the message from --message, --input or stdin.
func readMessage(config CLIConfig) []byte {
	if config.HasMessage {
		return []byte(config.Message)
	}
	if config.InputFile != "" {
		return readFile(config.InputFile, "input")
	}
	data, err := io.ReadAll(io.LimitReader(os.Stdin, utils.MaxMessageSize+1))
	if err != nil {
		fail("Error reading stdin: %v", err)
	}
	if err := utils.CheckLength(len(data), utils.MaxMessageSize); err != nil {
		fail("Error reading stdin: %v", err)
	}
	return data
}

func readFile(filename, what string) []byte {
	info, err := os.Stat(filename)
	if err != nil {
		fail("Error reading %s file: %v", what, err)
	}
	if err := utils.CheckLength(int(min(info.Size(), int64(utils.MaxMessageSize)+1)), utils.MaxMessageSize); err != nil {
		fail("Error reading %s file: %v", what, err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		fail("Error reading %s file: %v", what, err)
	}
	return data
}

func readRequiredFile(args []string, long, short, what string) []byte {
	filename := getArg(args, long, short)
	if filename == "" {
		fail("Error: %s is required", long)
	}
	return readFile(filename, what)
}

func loadPublicKey(args []string) kmacx.Point {
	data := readRequiredFile(args, "--public-key", "-pk", "public key")
	pub, err := ecies.DeserializePublicKey(data)
	if err != nil {
		fail("Error loading public key: %v", err)
	}
	return pub
}

func reportTiming(config CLIConfig, what string, start time.Time) {
	if config.Timing {
		fmt.Fprintf(os.Stderr, "%s took: %v\n", what, time.Since(start))
	}
}

func writePlaintext(plaintext []byte, config CLIConfig) {
	if config.OutputFile != "" {
		writeOutput(plaintext, config.OutputFile)
	} else {
		_, _ = os.Stdout.Write(plaintext)
	}
	if config.Verbose {
		fmt.Fprintf(os.Stderr, "\nDecryption successful (%d bytes)\n", len(plaintext))
	}
}

func writeOutput(data []byte, filename string) {
	if filename == "" {
		fmt.Print(string(data))
		return
	}

	// Outputs may hold plaintext, so the file is owner-only.
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		fail("Error creating output file: %v", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		fail("Error writing output file: %v", err)
	}
	if err := os.Chmod(filename, 0600); err != nil {
		fail("Error setting file permissions: %v", err)
	}
}

func fail(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(os.Stderr, msg)
	os.Exit(1)
}
