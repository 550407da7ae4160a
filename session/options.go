package session

import (
	"crypto/tls"
	"time"

	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/internal/chopt"
)

// options holds every Session-construction option §6 lists.
type options struct {
	addrs []string

	user       string
	password   string
	database   string
	clientName string
	quotaKey   string

	compression compress.Method
	negotiate   bool

	pingBeforeQuery bool

	connectTimeout time.Duration
	sendTimeout    time.Duration
	recvTimeout    time.Duration

	tls *tls.Config
}

func defaultOptions() *options {
	return &options{
		user:           "default",
		database:       "default",
		clientName:     "chconn",
		connectTimeout: 5 * time.Second,
	}
}

// Option configures a Session at Dial time.
type Option = chopt.Option[*options]

func applyOptions(o *options, opts []Option) error {
	return chopt.Apply(o, opts...)
}

// WithEndpoints sets the ordered list of "host:port" endpoints Connect
// tries in turn, failing over to the next on a dial error.
func WithEndpoints(addrs ...string) Option {
	return chopt.NoError(func(o *options) { o.addrs = addrs })
}

// WithAddr is shorthand for WithEndpoints with a single endpoint.
func WithAddr(addr string) Option {
	return WithEndpoints(addr)
}

// WithCredentials sets the user, password, and default database sent in
// the Hello packet.
func WithCredentials(user, password, database string) Option {
	return chopt.NoError(func(o *options) {
		o.user = user
		o.password = password
		o.database = database
	})
}

// WithClientName overrides the client_name field sent in Hello and
// ClientInfo. Defaults to "chconn".
func WithClientName(name string) Option {
	return chopt.NoError(func(o *options) { o.clientName = name })
}

// WithQuotaKey sets ClientInfo.QuotaKey for quota accounting on the
// server side.
func WithQuotaKey(key string) Option {
	return chopt.NoError(func(o *options) { o.quotaKey = key })
}

// WithCompression negotiates method for block bodies. MethodNone disables
// compression; any other method is flagged in every Query packet and used
// to frame outgoing and expect incoming Data blocks.
func WithCompression(method compress.Method) Option {
	return chopt.NoError(func(o *options) {
		o.compression = method
		o.negotiate = method != compress.MethodNone
	})
}

// WithPingBeforeQuery asks Execute/Insert to Ping the server immediately
// before sending the Query packet, surfacing a dead connection early
// rather than mid-query.
func WithPingBeforeQuery(enabled bool) Option {
	return chopt.NoError(func(o *options) { o.pingBeforeQuery = enabled })
}

// WithConnectTimeout bounds a single endpoint's dial attempt.
func WithConnectTimeout(d time.Duration) Option {
	return chopt.NoError(func(o *options) { o.connectTimeout = d })
}

// WithSendTimeout bounds a blocking write when its context carries no
// deadline of its own.
func WithSendTimeout(d time.Duration) Option {
	return chopt.NoError(func(o *options) { o.sendTimeout = d })
}

// WithRecvTimeout bounds a blocking read when its context carries no
// deadline of its own.
func WithRecvTimeout(d time.Duration) Option {
	return chopt.NoError(func(o *options) { o.recvTimeout = d })
}

// WithTLS enables TLS using cfg verbatim, the same contract as
// transport.WithTLS.
func WithTLS(cfg *tls.Config) Option {
	return chopt.NoError(func(o *options) { o.tls = cfg })
}
