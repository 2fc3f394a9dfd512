package tachograph

import "github.com/haulageworks/tachograph-go/internal/security"

// SignatureVerifier is the pluggable collaborator Decode's
// SignatureBlocks are handed to for cryptographic verification. The
// core never walks a certificate chain to an ERCA root itself; that is
// this interface's contract to fulfill.
type SignatureVerifier = security.Verifier

// VerifyRequest is the boundary payload for one SignatureBlock.
type VerifyRequest = security.VerifyRequest

// VerifyResult is a SignatureVerifier's response to one VerifyRequest.
type VerifyResult = security.VerifyResult

// VerifyStatus is a VerifyResult's outcome.
type VerifyStatus = security.Status

const (
	VerifyStatusUnspecified            = security.StatusUnspecified
	VerifyStatusVerified               = security.StatusVerified
	VerifyStatusVerifiedLocalChain     = security.StatusVerifiedLocalChain
	VerifyStatusIncompleteCertificates = security.StatusIncompleteCertificates
	VerifyStatusInvalid                = security.StatusInvalid
)

// SignatureAlgorithmRef selects the cryptographic scheme a VerifyRequest
// should be checked with.
type SignatureAlgorithmRef = security.Algorithm

const (
	SignatureAlgorithmRefUnspecified = security.AlgorithmUnspecified
	SignatureAlgorithmRefRSA         = security.AlgorithmRSA
	SignatureAlgorithmRefECDSA       = security.AlgorithmECDSA
)

// ReferenceVerifier is a stdlib-only SignatureVerifier: RSA PKCS#1
// v1.5/SHA-1 for Generation 1, plain-format ECDSA/SHA-256..512 for
// Generation 2 and 2.2. It can reach at best VerifyStatusVerifiedLocalChain,
// since it has no notion of a trusted ERCA root.
type ReferenceVerifier = security.Reference

// VerifyRequestFor builds a VerifyRequest from one decoded SignatureBlock,
// choosing the algorithm by the block's own Algorithm field so callers do
// not need to re-derive it from the file's Generation.
func VerifyRequestFor(block SignatureBlock, signerCertificateBytes []byte) VerifyRequest {
	var alg SignatureAlgorithmRef
	switch block.Algorithm {
	case SignatureAlgorithmRSASHA1:
		alg = SignatureAlgorithmRefRSA
	case SignatureAlgorithmECDSA:
		alg = SignatureAlgorithmRefECDSA
	}
	return VerifyRequest{
		Algorithm:              alg,
		SignedDataBytes:        block.DataRef,
		SignatureBytes:         block.SignatureBytes,
		SignerCertificateBytes: signerCertificateBytes,
	}
}
