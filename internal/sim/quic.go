package sim

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"net"
	"time"

	"github.com/quic-go/quic-go"
	"go.uber.org/zap"
)

// TelemetryServer streams newline-delimited JSON snapshot frames over one
// QUIC stream per connection.
type TelemetryServer struct {
	manager  *Manager
	interval time.Duration
	log      *zap.Logger
}

// NewTelemetryServer creates a QUIC telemetry server.
func NewTelemetryServer(manager *Manager, interval time.Duration, logger *zap.Logger) *TelemetryServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelemetryServer{manager: manager, interval: interval, log: logger}
}

// Listen accepts connections on addr until ctx is cancelled.
func (s *TelemetryServer) Listen(ctx context.Context, addr string) error {
	listener, err := quic.ListenAddr(addr, devTLSConfig(), &quic.Config{
		MaxIdleTimeout:  30 * time.Second,
		KeepAlivePeriod: 15 * time.Second,
	})
	if err != nil {
		return err
	}
	defer func() { _ = listener.Close() }()
	s.log.Info("quic telemetry listening", zap.String("addr", addr))

	for {
		conn, err := listener.Accept(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		go s.serve(ctx, conn)
	}
}

func (s *TelemetryServer) serve(ctx context.Context, conn *quic.Conn) {
	defer func() { _ = conn.CloseWithError(0, "connection closed") }()
	s.log.Info("quic telemetry client connected", zap.String("remote", conn.RemoteAddr().String()))

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		s.log.Warn("quic stream open failed", zap.Error(err))
		return
	}
	defer func() { _ = stream.Close() }()

	enc := json.NewEncoder(stream)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame := stateFrame{Time: time.Now(), Agents: s.manager.Snapshot()}
			if err := enc.Encode(frame); err != nil {
				s.log.Info("quic telemetry client gone", zap.Error(err))
				return
			}
		}
	}
}

// devTLSConfig generates a self-signed TLS config for development.
func devTLSConfig() *tls.Config {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Behave"},
		},
		NotBefore:   time.Now(),
		NotAfter:    time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:    x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:    []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		panic(err)
	}

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	tlsCert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		panic(err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		NextProtos:   []string{"behave-telemetry"},
	}
}
