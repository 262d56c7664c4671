// Package remoteterm implements OASIS's remote terminal listener: a
// non-blocking TCP server polled once per frame from the main loop,
// authenticating clients against a pre-shared key before handing their
// command lines to the terminal interpreter. Modeled on
// oasis-net/src/listener.rs.
package remoteterm

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oasis-os/oasis/internal/oerr"
)

// DefaultMaxConnections bounds simultaneous remote connections.
const DefaultMaxConnections = 4

// MaxLineLen bounds a single buffered input line before it is
// considered overlong and discarded.
const MaxLineLen = 1024

// MaxAuthFailures is the number of failed auth attempts within
// AuthRateLimitSecs that trips the rate limiter.
const MaxAuthFailures = 3

// AuthRateLimitSecs is the rolling window auth failures are counted in.
const AuthRateLimitSecs = 60

// IdleTimeoutSecs is the default idle-connection timeout.
const IdleTimeoutSecs = 300

// DefaultPort is the listener's default TCP port.
const DefaultPort = 9000

// pollDeadline bounds how long a single Accept or Read call may block
// during one Poll, keeping the whole call effectively non-blocking
// relative to the main loop's frame budget.
const pollDeadline = 500 * time.Microsecond

const (
	msgAuthRequired  = "AUTH_REQUIRED\n"
	msgAuthOK        = "AUTH_OK\n> "
	msgAuthFail      = "AUTH_FAIL\n"
	msgRateLimited   = "RATE_LIMITED\n"
	msgIdleTimeout   = "\nIdle timeout. Goodbye.\n"
	msgLineTooLong   = "error: line too long\n> "
	msgGoodbye       = "Goodbye.\n"
	msgShuttingDown  = "\nServer shutting down.\n"
	msgWelcome       = "OASIS_OS remote terminal\n> "
)

type authState int

const (
	awaitingAuth authState = iota
	authenticated
)

// Config configures a Listener.
type Config struct {
	Port int
	// PSK is the pre-shared key clients must send. Empty means no
	// authentication is required.
	PSK            string
	MaxConnections int
	// IdleTimeoutSecs is the idle-connection timeout in seconds. Zero
	// disables idle timeout enforcement.
	IdleTimeoutSecs int
}

// DefaultConfig returns the listener's zero-configuration defaults.
func DefaultConfig() Config {
	return Config{
		Port:            DefaultPort,
		MaxConnections:  DefaultMaxConnections,
		IdleTimeoutSecs: IdleTimeoutSecs,
	}
}

// Command is one authenticated command line ready for the interpreter.
type Command struct {
	Line      string
	ConnIndex int
}

type connection struct {
	id           string
	conn         net.Conn
	auth         authState
	readBuf      []byte
	lastActivity time.Time
}

type authFailures struct {
	count       int
	windowStart time.Time
}

// Listener is the remote terminal listener. Poll is called once per
// main-loop frame; every other method is safe to call from the same
// goroutine Poll runs on (Listener is not otherwise safe for concurrent
// use).
type Listener struct {
	cfg       Config
	log       zerolog.Logger
	ln        *net.TCPListener
	conns     []*connection
	listening bool
	failures  authFailures
	now       func() time.Time
}

// NewListener creates a Listener with the given configuration. Port
// and max connections default per DefaultConfig when left at their
// zero value; a zero idle timeout is kept and disables idle enforcement.
func NewListener(log zerolog.Logger, cfg Config) *Listener {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.MaxConnections == 0 {
		cfg.MaxConnections = DefaultMaxConnections
	}
	return &Listener{cfg: cfg, log: log, now: time.Now}
}

// Start binds the configured port and begins accepting connections.
func (l *Listener) Start() error {
	ln, err := net.ListenTCP("tcp", &net.TCPAddr{Port: l.cfg.Port})
	if err != nil {
		return oerr.Wrap(oerr.KindBackend, fmt.Sprintf("listen on port %d", l.cfg.Port), err)
	}
	l.ln = ln
	l.listening = true
	l.failures.windowStart = l.now()
	return nil
}

// IsListening reports whether Start has been called without a matching Stop.
func (l *Listener) IsListening() bool { return l.listening }

// ConnectionCount reports the number of currently open connections.
func (l *Listener) ConnectionCount() int { return len(l.conns) }

// isRateLimited reports whether auth-failure rate limiting is currently
// in effect, resetting the rolling window first if it has expired.
func (l *Listener) isRateLimited() bool {
	l.resetFailureWindowIfExpired()
	return l.failures.count >= MaxAuthFailures
}

func (l *Listener) resetFailureWindowIfExpired() {
	if l.now().Sub(l.failures.windowStart) > AuthRateLimitSecs*time.Second {
		l.failures.count = 0
		l.failures.windowStart = l.now()
	}
}

func (l *Listener) recordAuthFailure() {
	l.resetFailureWindowIfExpired()
	l.failures.count++
}

// Poll accepts at most one new connection, reads whatever is buffered
// on every open connection, and returns complete command lines from
// authenticated clients. It never blocks longer than a few pollDeadline
// windows, making it safe to call once per frame from the main loop.
func (l *Listener) Poll() []Command {
	if !l.listening {
		return nil
	}

	l.acceptOne()

	var commands []Command
	var toRemove []int
	var failedAuth int

	for i, c := range l.conns {
		lines, drop, authFailed := l.readConnection(c)
		for _, line := range lines {
			commands = append(commands, Command{Line: line, ConnIndex: i})
		}
		if drop {
			toRemove = append(toRemove, i)
		}
		if authFailed {
			failedAuth++
		}
	}

	for i := 0; i < failedAuth; i++ {
		l.recordAuthFailure()
	}

	l.removeConnections(toRemove)
	return commands
}

func (l *Listener) acceptOne() {
	if len(l.conns) >= l.cfg.MaxConnections {
		return
	}

	l.ln.SetDeadline(l.now().Add(pollDeadline))
	raw, err := l.ln.Accept()
	if err != nil {
		if !errors.Is(err, os.ErrDeadlineExceeded) {
			l.log.Debug().Err(err).Msg("remoteterm: accept error")
		}
		return
	}

	if l.cfg.PSK != "" && l.isRateLimited() {
		raw.Write([]byte(msgRateLimited))
		raw.Close()
		return
	}

	c := &connection{
		id:           uuid.NewString(),
		conn:         raw,
		auth:         awaitingAuth,
		readBuf:      make([]byte, 0, 256),
		lastActivity: l.now(),
	}
	if l.cfg.PSK == "" {
		c.auth = authenticated
		raw.Write([]byte(msgWelcome))
	} else {
		raw.Write([]byte(msgAuthRequired))
	}
	l.conns = append(l.conns, c)
}

// readConnection reads whatever is buffered on c, processes complete
// lines, and reports lines ready for the interpreter, whether c should
// be dropped, and whether an auth failure occurred this call.
func (l *Listener) readConnection(c *connection) (lines []string, drop bool, authFailed bool) {
	if l.cfg.IdleTimeoutSecs > 0 && l.now().Sub(c.lastActivity) > time.Duration(l.cfg.IdleTimeoutSecs)*time.Second {
		c.conn.Write([]byte(msgIdleTimeout))
		return nil, true, false
	}

	var buf [512]byte
	c.conn.SetReadDeadline(l.now().Add(pollDeadline))
	n, err := c.conn.Read(buf[:])
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, false, false
		}
		// EOF or any other read error: treat as connection closed.
		return nil, true, false
	}
	if n == 0 {
		return nil, false, false
	}

	c.lastActivity = l.now()
	c.readBuf = append(c.readBuf, buf[:n]...)

	for {
		nl := bytes.IndexByte(c.readBuf, '\n')
		if nl < 0 {
			break
		}
		line := strings.TrimSpace(string(c.readBuf[:nl]))
		c.readBuf = c.readBuf[nl+1:]
		if line == "" {
			continue
		}

		switch c.auth {
		case awaitingAuth:
			if constantTimeEqual(line, l.cfg.PSK) {
				c.auth = authenticated
				c.conn.Write([]byte(msgAuthOK))
			} else {
				c.conn.Write([]byte(msgAuthFail))
				return lines, true, true
			}
		case authenticated:
			if line == "quit" || line == "exit" {
				c.conn.Write([]byte(msgGoodbye))
				return lines, true, false
			}
			lines = append(lines, line)
		}
	}

	if len(c.readBuf) > MaxLineLen {
		c.readBuf = c.readBuf[:0]
		c.conn.Write([]byte(msgLineTooLong))
	}

	return lines, false, false
}

func (l *Listener) removeConnections(idx []int) {
	if len(idx) == 0 {
		return
	}
	dead := make(map[int]bool, len(idx))
	for _, i := range idx {
		dead[i] = true
	}
	kept := l.conns[:0]
	for i, c := range l.conns {
		if dead[i] {
			l.log.Debug().Str("conn", c.id).Msg("remoteterm: closing connection")
			c.conn.Close()
			continue
		}
		kept = append(kept, c)
	}
	l.conns = kept
}

// SendResponse writes text followed by a newline and a fresh prompt to
// the connection at connIndex.
func (l *Listener) SendResponse(connIndex int, text string) error {
	if connIndex < 0 || connIndex >= len(l.conns) {
		return oerr.New(oerr.KindBackend, "invalid connection index")
	}
	c := l.conns[connIndex]
	if _, err := c.conn.Write([]byte(text)); err != nil {
		return oerr.Wrap(oerr.KindBackend, "send response", err)
	}
	if _, err := c.conn.Write([]byte("\n> ")); err != nil {
		return oerr.Wrap(oerr.KindBackend, "send prompt", err)
	}
	return nil
}

// Stop closes every open connection and stops listening.
func (l *Listener) Stop() {
	for _, c := range l.conns {
		c.conn.Write([]byte(msgShuttingDown))
		c.conn.Close()
	}
	l.conns = nil
	l.listening = false
	if l.ln != nil {
		l.ln.Close()
	}
}

// constantTimeEqual compares line against psk in constant time relative
// to their lengths, never short-circuiting on the first differing byte.
func constantTimeEqual(line, psk string) bool {
	if len(line) != len(psk) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(line), []byte(psk)) == 1
}
