// Command ringtarget-preview serves a generated code set over HTTP(S) so the
// targets can be inspected in a browser or on a phone before printing.
// The code set is built once at startup; targets are rendered per request.
//
// Endpoints:
//
//	GET /api/codes               config, codes and arc layout as JSON
//	GET /api/lookup?observed=N   resolve any rotation of an issued code
//	GET /targets/{code}.png      rendered target
//	GET /targets/{code}.svg      vector target
package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/big"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/satindergrewal/ringtarget"
)

func main() {
	bits := flag.Int("bits", 12, "Number of bits to encode (even, 2-32)")
	transitions := flag.Int("transitions", -1, "Required number of rising bit transitions (-1 = any)")
	maxCodes := flag.Int("max-codes", 0, "Maximum number of codes to generate (0 = all)")
	scale := flag.Float64("scale", 0.25, "Scale applied to the default 3000px target geometry")
	port := flag.Int("port", 8443, "Listen port")
	useTLS := flag.Bool("tls", false, "Serve HTTPS with an in-memory self-signed certificate")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ringtarget.SetLogger(logger)

	cfg := ringtarget.DefaultConfig().Scaled(*scale)
	cfg.Bits = *bits
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	var opts []ringtarget.GenerateOption
	if *transitions >= 0 {
		opts = append(opts, ringtarget.WithTransitions(*transitions))
	}
	if *maxCodes > 0 {
		opts = append(opts, ringtarget.WithMaxCodes(*maxCodes))
	}
	codes, err := ringtarget.Generate(cfg.Bits, opts...)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	book, err := ringtarget.NewCodebook(cfg.Bits, codes)
	if err != nil {
		log.Fatalf("codebook: %v", err)
	}

	handler, err := newServer(cfg, book, logger)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheme := "http"
	if *useTLS {
		tlsCert, err := selfSignedCert()
		if err != nil {
			log.Fatalf("tls cert: %v", err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{tlsCert}}
		scheme = "https"
	}

	fmt.Printf("ringtarget preview\n")
	fmt.Printf("  codes:  %d (%d-bit)\n", book.Len(), cfg.Bits)
	fmt.Printf("  canvas: %dx%d\n", cfg.Width, cfg.Height)
	fmt.Printf("  listen: %s://%s:%d/api/codes\n", scheme, getLANIP(), *port)

	if *useTLS {
		// Empty cert/key paths: the certificate is already in TLSConfig.
		log.Fatal(srv.ListenAndServeTLS("", ""))
	}
	log.Fatal(srv.ListenAndServe())
}

// selfSignedCert generates an in-memory self-signed TLS certificate valid for
// 24 hours. No files are written to disk.
func selfSignedCert() (tls.Certificate, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("serial: %w", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: "ringtarget-preview"},
		NotBefore:    time.Now().Add(-5 * time.Minute),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	if ip := net.ParseIP(getLANIP()); ip != nil {
		tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("create cert: %w", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("marshal key: %w", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})

	return tls.X509KeyPair(certPEM, keyPEM)
}

// getLANIP returns the first non-loopback IPv4 address, or "127.0.0.1".
func getLANIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "127.0.0.1"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip4 := ip.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return "127.0.0.1"
}
