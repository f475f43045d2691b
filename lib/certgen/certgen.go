// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package certgen produces the self-signed certificate the listener
// presents in secure mode. Certificates live only in memory and are
// regenerated on every start; the phone accepts them once per run.
package certgen

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net"
	"strings"
	"time"
)

// Validity window. NotBefore is backdated so a phone with a slightly
// slow clock does not reject the certificate as not yet valid.
const (
	backdate = time.Hour
	lifetime = 365 * 24 * time.Hour
)

// Bundle is a DER certificate and its DER (PKCS#8) private key.
type Bundle struct {
	Certificate []byte
	PrivateKey  []byte
}

// GenerationError reports why a certificate could not be produced.
type GenerationError struct {
	Names []string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating certificate for %s: %v", strings.Join(e.Names, ", "), e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generate creates a self-signed ECDSA P-256 certificate valid for
// every name. IP literals become IP SANs; everything else must be a
// valid DNS name. The first name is also the subject common name.
func Generate(names []string) (*Bundle, error) {
	return generate(names, time.Now())
}

func generate(names []string, now time.Time) (*Bundle, error) {
	fail := func(err error) (*Bundle, error) {
		return nil, &GenerationError{Names: names, Err: err}
	}

	if len(names) == 0 {
		return fail(fmt.Errorf("at least one subject name is required"))
	}

	var dnsNames []string
	var addresses []net.IP
	for _, name := range names {
		if ip := net.ParseIP(name); ip != nil {
			addresses = append(addresses, ip)
			continue
		}
		if !validDNSName(name) {
			return fail(fmt.Errorf("invalid subject name %q", name))
		}
		dnsNames = append(dnsNames, name)
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fail(fmt.Errorf("generating key: %w", err))
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return fail(fmt.Errorf("generating serial number: %w", err))
	}

	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: names[0], Organization: []string{"tp self-signed"}},
		NotBefore:             now.Add(-backdate),
		NotAfter:              now.Add(lifetime),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              dnsNames,
		IPAddresses:           addresses,
	}

	certificate, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return fail(fmt.Errorf("self-signing: %w", err))
	}

	privateKey, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fail(fmt.Errorf("encoding private key: %w", err))
	}

	return &Bundle{Certificate: certificate, PrivateKey: privateKey}, nil
}

// TLSCertificate converts the bundle into a certificate usable in a
// tls.Config.
func (bundle *Bundle) TLSCertificate() (tls.Certificate, error) {
	key, err := x509.ParsePKCS8PrivateKey(bundle.PrivateKey)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("parsing private key: %w", err)
	}
	leaf, err := x509.ParseCertificate(bundle.Certificate)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("parsing certificate: %w", err)
	}
	return tls.Certificate{
		Certificate: [][]byte{bundle.Certificate},
		PrivateKey:  key,
		Leaf:        leaf,
	}, nil
}

// ServerConfig returns a TLS server configuration presenting the
// bundle's certificate.
func (bundle *Bundle) ServerConfig() (*tls.Config, error) {
	certificate, err := bundle.TLSCertificate()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// validDNSName accepts hostnames made of letters, digits, hyphens and
// dots, with labels of 1-63 bytes and no leading or trailing hyphen.
func validDNSName(name string) bool {
	if name == "" || len(name) > 253 {
		return false
	}
	for _, label := range strings.Split(strings.TrimSuffix(name, "."), ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for index := 0; index < len(label); index++ {
			character := label[index]
			switch {
			case character >= 'a' && character <= 'z':
			case character >= 'A' && character <= 'Z':
			case character >= '0' && character <= '9':
			case character == '-':
			default:
				return false
			}
		}
	}
	return true
}
