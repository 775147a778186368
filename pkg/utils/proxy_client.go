// pkg/utils/proxy_client.go
package utils

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	utls "github.com/refraction-networking/utls"
	proxy "golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

var clientHelloIDs = []utls.ClientHelloID{
	utls.HelloChrome_Auto,
	utls.HelloFirefox_Auto,
	utls.HelloSafari_Auto,
	utls.HelloEdge_Auto,
}

type ProxyRotator struct {
	proxyURLs  []string
	parsedURLs []*url.URL
	currentIdx uint32
	mutex      sync.RWMutex
}

func NewProxyRotator(proxyURLs []string) (*ProxyRotator, error) {
	rotator := &ProxyRotator{
		proxyURLs:  proxyURLs,
		currentIdx: 0,
	}

	for _, rawURL := range proxyURLs {
		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse proxy URL %s: %w", maskProxyURL(rawURL), err)
		}
		rotator.parsedURLs = append(rotator.parsedURLs, parsedURL)
	}

	return rotator, nil
}

// NextProxy returns the next proxy in round-robin order, or nil when no
// proxies are configured.
func (r *ProxyRotator) NextProxy() *url.URL {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if len(r.parsedURLs) == 0 {
		return nil
	}

	idx := atomic.AddUint32(&r.currentIdx, 1) % uint32(len(r.parsedURLs))
	return r.parsedURLs[idx]
}

// Proxy has the signature of http.Transport.Proxy.
func (r *ProxyRotator) Proxy(*http.Request) (*url.URL, error) {
	return r.NextProxy(), nil
}

type FingerprintingDialer struct {
	rotator            *ProxyRotator
	clientHelloID      utls.ClientHelloID
	insecureSkipVerify bool
}

func NewFingerprintingDialer(rotator *ProxyRotator, insecureSkipVerify bool) *FingerprintingDialer {
	return &FingerprintingDialer{
		rotator:            rotator,
		clientHelloID:      clientHelloIDs[rand.Intn(len(clientHelloIDs))],
		insecureSkipVerify: insecureSkipVerify,
	}
}

func (d *FingerprintingDialer) DialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	var conn net.Conn
	var err error

	proxyURL := d.rotator.NextProxy()
	if proxyURL == nil {
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, fmt.Errorf("direct dial: %w", err)
		}
	} else {
		conn, err = dialThroughProxy(ctx, proxyURL, network, addr, d.insecureSkipVerify)
		if err != nil {
			return nil, fmt.Errorf("proxy dial: %w", err)
		}
	}

	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	spec, err := utls.UTLSIdToSpec(d.clientHelloID)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("building client hello %s: %w", d.clientHelloID.Str(), err)
	}
	// The transport speaks HTTP/1.1 over this connection.
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
		}
	}

	uconn := utls.UClient(conn, &utls.Config{
		ServerName:         host,
		InsecureSkipVerify: d.insecureSkipVerify,
	}, utls.HelloCustom)
	if err := uconn.ApplyPreset(&spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying client hello: %w", err)
	}
	if err := uconn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("uTLS handshake: %w", err)
	}

	return uconn, nil
}

// dialThroughProxy opens a tunnel to addr. http and https proxies get a
// CONNECT request, the latter over TLS to the proxy itself.
func dialThroughProxy(ctx context.Context, proxyURL *url.URL, network, addr string, insecureSkipVerify bool) (net.Conn, error) {
	switch proxyURL.Scheme {
	case "http", "https":
		var dialer net.Dialer
		conn, err := dialer.DialContext(ctx, "tcp", proxyURL.Host)
		if err != nil {
			return nil, fmt.Errorf("dial HTTP proxy: %w", err)
		}

		if proxyURL.Scheme == "https" {
			tlsConn := tls.Client(conn, &tls.Config{
				ServerName:         proxyURL.Hostname(),
				InsecureSkipVerify: insecureSkipVerify,
				NextProtos:         []string{"http/1.1"},
			})
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, fmt.Errorf("TLS handshake with proxy: %w", err)
			}
			conn = tlsConn
		}

		connectReq := &http.Request{
			Method: http.MethodConnect,
			URL:    &url.URL{Opaque: addr},
			Host:   addr,
			Header: make(http.Header),
		}
		if proxyURL.User != nil {
			password, _ := proxyURL.User.Password()
			creds := base64.StdEncoding.EncodeToString([]byte(proxyURL.User.Username() + ":" + password))
			connectReq.Header.Set("Proxy-Authorization", "Basic "+creds)
		}

		if deadline, ok := ctx.Deadline(); ok {
			conn.SetDeadline(deadline)
			defer conn.SetDeadline(time.Time{})
		}
		if err := connectReq.Write(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("write CONNECT: %w", err)
		}
		resp, err := http.ReadResponse(bufio.NewReader(conn), connectReq)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("read CONNECT response: %w", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			conn.Close()
			return nil, fmt.Errorf("proxy refused CONNECT: %s", resp.Status)
		}
		return conn, nil

	case "socks5":
		auth := &proxy.Auth{}
		if proxyURL.User != nil {
			auth.User = proxyURL.User.Username()
			if password, ok := proxyURL.User.Password(); ok {
				auth.Password = password
			}
		}

		dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, &net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("create SOCKS5 dialer: %w", err)
		}

		if cd, ok := dialer.(proxy.ContextDialer); ok {
			conn, err := cd.DialContext(ctx, network, addr)
			if err != nil {
				return nil, fmt.Errorf("dial via SOCKS5 proxy: %w", err)
			}
			return conn, nil
		}
		conn, err := dialer.Dial(network, addr)
		if err != nil {
			return nil, fmt.Errorf("dial via SOCKS5 proxy: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported proxy scheme for fingerprinted TLS: %s", proxyURL.Scheme)
	}
}

func maskProxyURL(proxyURL string) string {
	if !strings.Contains(proxyURL, "@") {
		return proxyURL
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return "[masked]"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		return strings.Replace(proxyURL, parsedURL.User.String(), username+":****", 1)
	}

	return proxyURL
}

type BrowserClientOptions struct {
	// Headers are set on every request that does not already carry them.
	Headers map[string]string
	// ProxyURLs are used round-robin; empty means direct connections.
	ProxyURLs []string
	// Timeout bounds a whole exchange, body included.
	Timeout time.Duration
	// MaxRequestsPerSecond caps the request rate across all callers.
	// Zero or less disables the limiter.
	MaxRequestsPerSecond float64
	TLSFingerprint       bool
	InsecureSkipVerify   bool
}

// BrowserClient performs single requests that look like browser
// navigations. It never follows redirects and never touches cookies;
// callers own both.
type BrowserClient struct {
	client  *http.Client
	headers map[string]string
	limiter *rate.Limiter
}

func NewBrowserClient(opts BrowserClientOptions) (*BrowserClient, error) {
	rotator, err := NewProxyRotator(opts.ProxyURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy rotator: %w", err)
	}

	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     false,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify},
	}
	if opts.TLSFingerprint {
		dialer := NewFingerprintingDialer(rotator, opts.InsecureSkipVerify)
		transport.DialTLSContext = dialer.DialTLSContext
	} else if len(opts.ProxyURLs) > 0 {
		transport.Proxy = rotator.Proxy
	}

	var limiter *rate.Limiter
	if opts.MaxRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.MaxRequestsPerSecond), 1)
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &BrowserClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		headers: headers,
		limiter: limiter,
	}, nil
}

// Do waits until the client is within rate limits, adds the browser
// headers and performs the request. The caller closes the response body.
func (c *BrowserClient) Do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		r := c.limiter.Reserve()
		if !r.OK() {
			return nil, errors.New("invalid limiter configuration")
		}
		select {
		case <-req.Context().Done():
			r.Cancel()
			return nil, req.Context().Err()
		case <-time.After(r.Delay()):
		}
	}

	for k, v := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	return c.client.Do(req)
}
