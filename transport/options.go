package transport

import (
	"crypto/tls"
	"time"

	"github.com/kasuga-db/chconn/internal/chopt"
)

// options holds the resolved configuration Dial applies to every endpoint
// it tries.
type options struct {
	connectTimeout time.Duration
	sendTimeout    time.Duration
	recvTimeout    time.Duration
	tls            *tls.Config
}

func defaultOptions() *options {
	return &options{
		connectTimeout: 5 * time.Second,
	}
}

// Option configures a Dial call.
type Option = chopt.Option[*options]

func applyOptions(o *options, opts []Option) error {
	return chopt.Apply(o, opts...)
}

// WithConnectTimeout bounds how long a single endpoint's dial attempt may
// take before Dial moves on to the next endpoint in the failover list.
func WithConnectTimeout(d time.Duration) Option {
	return chopt.NoError(func(o *options) { o.connectTimeout = d })
}

// WithSendTimeout bounds how long a blocking write may take when its
// context carries no deadline of its own.
func WithSendTimeout(d time.Duration) Option {
	return chopt.NoError(func(o *options) { o.sendTimeout = d })
}

// WithRecvTimeout bounds how long a blocking read may take when its context
// carries no deadline of its own.
func WithRecvTimeout(d time.Duration) Option {
	return chopt.NoError(func(o *options) { o.recvTimeout = d })
}

// WithTLS enables TLS using cfg verbatim: callers control CA roots (via
// cfg.RootCAs, nil for the system pool), SNI (cfg.ServerName, or
// cfg.InsecureSkipVerify to disable it), and mutual auth (cfg.Certificates).
func WithTLS(cfg *tls.Config) Option {
	return chopt.NoError(func(o *options) { o.tls = cfg })
}
