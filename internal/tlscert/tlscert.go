// Package tlscert готовит пару сертификат/ключ для HTTPS.
// Если файлов нет, они пустые или сертификат просрочен, выпускается самоподписанный сертификат.
package tlscert

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrBlankPEM        = errors.New("pem is blank")
	ErrCertExpired     = errors.New("certificate is expired")
	ErrCertNotValidYet = errors.New("certificate is not valid yet")
)

const (
	DefaultCertFile = "certs/cert.pem"
	DefaultKeyFile  = "certs/key.pem"

	validFor = 365 * 24 * time.Hour
)

// Pair пути к файлам сертификата и ключа.
type Pair struct {
	CertFile string
	KeyFile  string
	// Hosts имена и IP, на которые выпускается сертификат. localhost добавляется всегда.
	Hosts []string
	now   func() time.Time
}

// New создает Pair. Пустые пути заменяются значениями по умолчанию.
func New(certFile, keyFile string, hosts ...string) *Pair {
	if certFile == "" {
		certFile = DefaultCertFile
	}
	if keyFile == "" {
		keyFile = DefaultKeyFile
	}
	return &Pair{CertFile: certFile, KeyFile: keyFile, Hosts: hosts, now: time.Now}
}

// Ensure проверяет файлы и при необходимости выпускает новую пару.
// Возвращает true, если пара была создана заново.
func (p *Pair) Ensure() (bool, error) {
	certPEM, err := readOptional(p.CertFile)
	if err != nil {
		return false, err
	}
	keyPEM, err := readOptional(p.KeyFile)
	if err != nil {
		return false, err
	}

	err = p.check(certPEM, keyPEM)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrBlankPEM), errors.Is(err, ErrCertExpired):
	default:
		return false, errors.Wrap(err, "check certificate")
	}

	certPEM, keyPEM, err = p.generate()
	if err != nil {
		return false, err
	}
	if err = writeFile(p.CertFile, certPEM); err != nil {
		return false, err
	}
	if err = writeFile(p.KeyFile, keyPEM); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Pair) check(certPEM, keyPEM []byte) error {
	if len(bytes.TrimSpace(certPEM)) == 0 || len(bytes.TrimSpace(keyPEM)) == 0 {
		return ErrBlankPEM
	}
	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return errors.New("certificate file holds no CERTIFICATE block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return errors.Wrap(err, "parse certificate")
	}

	now := p.now()
	if cert.NotBefore.After(now) {
		return ErrCertNotValidYet
	}
	if cert.NotAfter.Before(now) {
		return ErrCertExpired
	}
	return nil
}

func (p *Pair) generate() ([]byte, []byte, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128)) //nolint:mnd
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate serial number")
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate private key")
	}

	now := p.now()
	tpl := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{Organization: []string{"shortener"}},
		NotBefore:    now.Add(-time.Minute),
		NotAfter:     now.Add(validFor),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}, //nolint:mnd
	}
	for _, h := range p.Hosts {
		if ip := net.ParseIP(h); ip != nil {
			tpl.IPAddresses = append(tpl.IPAddresses, ip)
		} else if h != "" && h != "localhost" {
			tpl.DNSNames = append(tpl.DNSNames, h)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, tpl, tpl, &key.PublicKey, key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create certificate")
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshal private key")
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}),
		nil
}

func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return errors.Wrapf(err, "create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:mnd
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
