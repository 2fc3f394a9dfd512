package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
	"math/big"
)

// keyType tags the first byte of a SignerCertificateBytes payload this
// package understands. Real Appendix 11 certificate bodies are ASN.1 CV
// certificates with a CertificateHolderAuthorisation/validity/signature
// envelope; walking that structure is certificate-chain territory, which
// this package deliberately does not own. The layout below keeps only
// what a reference verifier needs to recover a public key from the bytes
// a caller already trusts (see DESIGN.md for the simplification).
type keyType byte

const (
	keyTypeRSA   keyType = 0x01
	keyTypeECDSA keyType = 0x02
)

const (
	rsaModulusLen  = 128 // 1024-bit modulus, Generation 1
	rsaExponentLen = 8
)

// curveID selects the curve an ECDSA certificate's public point is on.
// Brainpool curves are not supported: see DESIGN.md for why.
type curveID byte

const (
	curveP256 curveID = 0x01
	curveP384 curveID = 0x02
	curveP521 curveID = 0x03
)

func curveByID(id curveID) (elliptic.Curve, error) {
	switch id {
	case curveP256:
		return elliptic.P256(), nil
	case curveP384:
		return elliptic.P384(), nil
	case curveP521:
		return elliptic.P521(), nil
	default:
		return nil, fmt.Errorf("unsupported or Brainpool curve id %d (not supported, see DESIGN.md)", id)
	}
}

// parseRSAPublicKey recovers an RSA public key from a certificate payload
// of the form: keyType(1) || modulus(128) || exponent(8).
func parseRSAPublicKey(certBytes []byte) (*rsa.PublicKey, error) {
	want := 1 + rsaModulusLen + rsaExponentLen
	if len(certBytes) < want {
		return nil, fmt.Errorf("RSA certificate too short: got %d bytes, want at least %d", len(certBytes), want)
	}
	if keyType(certBytes[0]) != keyTypeRSA {
		return nil, fmt.Errorf("certificate is not an RSA key (type byte 0x%02x)", certBytes[0])
	}
	modulus := new(big.Int).SetBytes(certBytes[1 : 1+rsaModulusLen])
	exponent := new(big.Int).SetBytes(certBytes[1+rsaModulusLen : 1+rsaModulusLen+rsaExponentLen])
	if exponent.BitLen() > 31 {
		return nil, fmt.Errorf("RSA exponent too large: %d bits", exponent.BitLen())
	}
	return &rsa.PublicKey{N: modulus, E: int(exponent.Int64())}, nil
}

// parseECDSAPublicKey recovers an ECDSA public key from a certificate
// payload of the form: keyType(1) || curveID(1) || X || Y, where X and Y
// are each the curve's coordinate size in bytes.
func parseECDSAPublicKey(certBytes []byte) (*ecdsa.PublicKey, error) {
	if len(certBytes) < 2 {
		return nil, fmt.Errorf("ECDSA certificate too short: got %d bytes, want at least 2", len(certBytes))
	}
	if keyType(certBytes[0]) != keyTypeECDSA {
		return nil, fmt.Errorf("certificate is not an ECDSA key (type byte 0x%02x)", certBytes[0])
	}
	curve, err := curveByID(curveID(certBytes[1]))
	if err != nil {
		return nil, err
	}
	coordLen := (curve.Params().BitSize + 7) / 8
	want := 2 + 2*coordLen
	if len(certBytes) < want {
		return nil, fmt.Errorf("ECDSA certificate too short for curve: got %d bytes, want %d", len(certBytes), want)
	}
	x := new(big.Int).SetBytes(certBytes[2 : 2+coordLen])
	y := new(big.Int).SetBytes(certBytes[2+coordLen : 2+2*coordLen])
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}
