package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"math/big"
)

// Reference is a stdlib-only Verifier: RSA PKCS#1 v1.5/SHA-1 for
// Generation 1 data, and plain-format (r||s) ECDSA/SHA-256..512 for
// Generation 2 and 2.2 data. It never reaches StatusVerified on its own,
// because it has no notion of a trusted ERCA root: the best it can report
// is StatusVerifiedLocalChain, meaning the signature checks out against
// the supplied certificate alone.
type Reference struct{}

// Verify implements Verifier.
func (Reference) Verify(req VerifyRequest) VerifyResult {
	if len(req.SignerCertificateBytes) == 0 {
		return VerifyResult{Status: StatusIncompleteCertificates, Reason: "no signer certificate supplied"}
	}
	switch req.Algorithm {
	case AlgorithmRSA:
		return verifyRSA(req)
	case AlgorithmECDSA:
		return verifyECDSA(req)
	default:
		return VerifyResult{Status: StatusInvalid, Reason: fmt.Sprintf("unsupported algorithm %d", req.Algorithm)}
	}
}

// verifyRSA implements PKCS#1 v1.5 verification over SHA-1, the scheme
// Generation 1 downloads sign with:
//
//	signature = EQT.SK['00' || '01' || PS || '00' || DER(SHA-1(data))]
func verifyRSA(req VerifyRequest) VerifyResult {
	pub, err := parseRSAPublicKey(req.SignerCertificateBytes)
	if err != nil {
		return VerifyResult{Status: StatusIncompleteCertificates, Reason: err.Error()}
	}
	hash := sha1.Sum(req.SignedDataBytes)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA1, hash[:], req.SignatureBytes); err != nil {
		return VerifyResult{Status: StatusInvalid, Reason: err.Error()}
	}
	return VerifyResult{Status: StatusVerifiedLocalChain}
}

// verifyECDSA implements plain-format ECDSA verification with a hash
// chosen by the signer's curve size, the scheme Generation 2/2.2 use:
//
//	signature = r || s, each the curve's coordinate size in bytes
func verifyECDSA(req VerifyRequest) VerifyResult {
	pub, err := parseECDSAPublicKey(req.SignerCertificateBytes)
	if err != nil {
		return VerifyResult{Status: StatusIncompleteCertificates, Reason: err.Error()}
	}

	hashBits := pub.Curve.Params().BitSize
	var hash []byte
	switch {
	case hashBits <= 256:
		h := sha256.Sum256(req.SignedDataBytes)
		hash = h[:]
	case hashBits <= 384:
		h := sha512.Sum384(req.SignedDataBytes)
		hash = h[:]
	default:
		h := sha512.Sum512(req.SignedDataBytes)
		hash = h[:]
	}

	coordLen := (hashBits + 7) / 8
	if len(req.SignatureBytes) != coordLen*2 {
		return VerifyResult{Status: StatusInvalid, Reason: fmt.Sprintf("invalid signature length: got %d, want %d", len(req.SignatureBytes), coordLen*2)}
	}
	r := new(big.Int).SetBytes(req.SignatureBytes[:coordLen])
	s := new(big.Int).SetBytes(req.SignatureBytes[coordLen:])

	if !ecdsa.Verify(pub, hash, r, s) {
		return VerifyResult{Status: StatusInvalid, Reason: "ECDSA signature verification failed"}
	}
	return VerifyResult{Status: StatusVerifiedLocalChain}
}
