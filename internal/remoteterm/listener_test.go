package remoteterm

import (
	"bufio"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestListener(t *testing.T, cfg Config) (*Listener, int) {
	t.Helper()
	cfg.Port = 0
	l := NewListener(zerolog.Nop(), cfg)
	ln, err := net.ListenTCP("tcp", &net.TCPAddr{Port: 0})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	l.ln = ln
	l.listening = true
	l.now = time.Now
	t.Cleanup(l.Stop)
	return l, ln.Addr().(*net.TCPAddr).Port
}

func dial(t *testing.T, port int) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.SetDeadline(time.Now().Add(2 * time.Second))
	t.Cleanup(func() { conn.Close() })
	return conn, bufio.NewReader(conn)
}

func pollUntil(t *testing.T, l *Listener, timeout time.Duration, want func([]Command) bool) []Command {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		cmds := l.Poll()
		if want(cmds) {
			return cmds
		}
		if len(cmds) > 0 {
			return cmds
		}
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}

// readLine reads up to and including the next newline, stripping a
// leading "> " prompt left over from the previous message (the
// protocol's prompt has no trailing newline of its own, so it rides
// along with whatever the server sends next).
func readLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("read line: %v", err)
	}
	return strings.TrimPrefix(line, "> ")
}

func TestNoPSKAuthenticatesImmediatelyAndAcceptsCommands(t *testing.T) {
	l, port := newTestListener(t, Config{MaxConnections: 4})
	conn, r := dial(t, port)

	// drive accept
	for i := 0; i < 20 && l.ConnectionCount() == 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	if l.ConnectionCount() != 1 {
		t.Fatalf("got %d connections, want 1", l.ConnectionCount())
	}

	welcome := readLine(t, r)
	if welcome != "OASIS_OS remote terminal\n" {
		t.Fatalf("got welcome %q", welcome)
	}

	conn.Write([]byte("help\n"))
	cmds := pollUntil(t, l, time.Second, func(c []Command) bool { return len(c) > 0 })
	if len(cmds) != 1 || cmds[0].Line != "help" {
		t.Fatalf("got %+v", cmds)
	}
}

func TestPSKRequiredSendsAuthRequired(t *testing.T) {
	l, port := newTestListener(t, Config{PSK: "secret", MaxConnections: 4})
	_, r := dial(t, port)

	for i := 0; i < 20 && l.ConnectionCount() == 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	if got := readLine(t, r); got != "AUTH_REQUIRED\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWrongPSKSendsAuthFailAndDropsConnection(t *testing.T) {
	l, port := newTestListener(t, Config{PSK: "secret", MaxConnections: 4})
	conn, r := dial(t, port)

	for i := 0; i < 20 && l.ConnectionCount() == 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	readLine(t, r) // AUTH_REQUIRED

	conn.Write([]byte("wrong\n"))
	for i := 0; i < 20; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	if got := readLine(t, r); got != "AUTH_FAIL\n" {
		t.Fatalf("got %q", got)
	}
	if l.ConnectionCount() != 0 {
		t.Fatalf("got %d connections, want 0 after auth failure", l.ConnectionCount())
	}
}

func TestCorrectPSKAuthenticatesConnection(t *testing.T) {
	l, port := newTestListener(t, Config{PSK: "secret", MaxConnections: 4})
	conn, r := dial(t, port)

	for i := 0; i < 20 && l.ConnectionCount() == 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	readLine(t, r) // AUTH_REQUIRED

	conn.Write([]byte("secret\n"))
	for i := 0; i < 20; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	if got := readLine(t, r); got != "AUTH_OK\n" {
		t.Fatalf("got %q", got)
	}
	if l.conns[0].auth != authenticated {
		t.Fatal("expected connection authenticated")
	}
}

func TestQuitClosesAuthenticatedConnection(t *testing.T) {
	l, port := newTestListener(t, Config{MaxConnections: 4})
	conn, r := dial(t, port)

	for i := 0; i < 20 && l.ConnectionCount() == 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	readLine(t, r) // welcome

	conn.Write([]byte("quit\n"))
	for i := 0; i < 20 && l.ConnectionCount() > 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	if got := readLine(t, r); got != "Goodbye.\n" {
		t.Fatalf("got %q", got)
	}
	if l.ConnectionCount() != 0 {
		t.Fatalf("got %d connections, want 0", l.ConnectionCount())
	}
}

func TestMaxConnectionsRejectsExtraAccepts(t *testing.T) {
	l, port := newTestListener(t, Config{MaxConnections: 1})
	dial(t, port)
	for i := 0; i < 20 && l.ConnectionCount() == 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	if l.ConnectionCount() != 1 {
		t.Fatalf("got %d, want 1", l.ConnectionCount())
	}

	dial(t, port)
	for i := 0; i < 10; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	if l.ConnectionCount() != 1 {
		t.Fatalf("got %d connections, want max of 1 enforced", l.ConnectionCount())
	}
}

func TestConstantTimeEqualMatchesAndMismatches(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"hello", "hello", true},
		{"", "", true},
		{"hello", "world", false},
		{"hello", "hello!", false},
		{"a", "", false},
	}
	for _, tc := range cases {
		if got := constantTimeEqual(tc.a, tc.b); got != tc.want {
			t.Errorf("constantTimeEqual(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIsRateLimitedAfterMaxFailures(t *testing.T) {
	l := NewListener(zerolog.Nop(), Config{PSK: "x"})
	l.now = time.Now
	l.failures.windowStart = time.Now()

	if l.isRateLimited() {
		t.Fatal("expected not rate limited initially")
	}
	for i := 0; i < MaxAuthFailures; i++ {
		l.recordAuthFailure()
	}
	if !l.isRateLimited() {
		t.Fatal("expected rate limited after MaxAuthFailures failures")
	}
}

func TestIsRateLimitedResetsAfterWindowExpires(t *testing.T) {
	l := NewListener(zerolog.Nop(), Config{PSK: "x"})
	base := time.Now()
	l.now = func() time.Time { return base }
	l.failures.windowStart = base
	for i := 0; i < MaxAuthFailures; i++ {
		l.recordAuthFailure()
	}
	if !l.isRateLimited() {
		t.Fatal("expected rate limited within window")
	}

	l.now = func() time.Time { return base.Add((AuthRateLimitSecs + 1) * time.Second) }
	if l.isRateLimited() {
		t.Fatal("expected rate limit reset after window expiry")
	}
}

func TestDefaultConfigMatchesSpecConstants(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != DefaultPort {
		t.Errorf("got port %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.MaxConnections != DefaultMaxConnections {
		t.Errorf("got max connections %d, want %d", cfg.MaxConnections, DefaultMaxConnections)
	}
	if cfg.IdleTimeoutSecs != IdleTimeoutSecs {
		t.Errorf("got idle timeout %d, want %d", cfg.IdleTimeoutSecs, IdleTimeoutSecs)
	}
	if cfg.PSK != "" {
		t.Errorf("got psk %q, want empty", cfg.PSK)
	}
}

func TestSendResponseWritesTextAndPrompt(t *testing.T) {
	l, port := newTestListener(t, Config{MaxConnections: 4})
	_, r := dial(t, port)

	for i := 0; i < 20 && l.ConnectionCount() == 0; i++ {
		l.Poll()
		time.Sleep(2 * time.Millisecond)
	}
	readLine(t, r) // welcome

	if err := l.SendResponse(0, "result text"); err != nil {
		t.Fatalf("SendResponse: %v", err)
	}
	got := readLine(t, r)
	if got != "result text\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSendResponseInvalidIndexReturnsError(t *testing.T) {
	l, _ := newTestListener(t, Config{MaxConnections: 4})
	if err := l.SendResponse(0, "x"); err == nil {
		t.Fatal("expected error for out-of-range connection index")
	}
}
