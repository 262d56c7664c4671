// Command oasisctl is a thin client for the remote terminal listener:
// it dials oasisd's remote port, authenticates with the configured PSK
// if one is set, sends one command line, prints the response, and
// disconnects.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/oasis-os/oasis/internal/config"
)

type cliOptions struct {
	Host      string `long:"host" description:"remote terminal host" default:"127.0.0.1"`
	Port      int    `short:"p" long:"port" description:"remote terminal port (0 = read from oasis.yaml)"`
	PSK       string `long:"psk" description:"pre-shared key (overrides oasis.yaml)"`
	ConfigDir string `short:"C" long:"config-dir" description:"directory to search upward from for oasis.yaml" default:"."`
	Timeout   int    `long:"timeout" description:"connection timeout in seconds" default:"5"`
}

func main() {
	var opts cliOptions
	args, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "oasisctl: usage: oasisctl [options] <command line...>")
		os.Exit(1)
	}
	line := strings.Join(args, " ")

	port := opts.Port
	psk := opts.PSK
	if port == 0 || psk == "" {
		cfg, err := config.Load(opts.ConfigDir)
		if err == nil {
			if port == 0 {
				port = cfg.Remote.Port
			}
			if psk == "" {
				psk = cfg.Remote.PSK
			}
		}
	}

	resp, err := runCommand(opts.Host, port, psk, line, time.Duration(opts.Timeout)*time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, "oasisctl:", err)
		os.Exit(1)
	}
	fmt.Print(resp)
}

func runCommand(host string, port int, psk, line string, timeout time.Duration) (string, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	r := bufio.NewReader(conn)

	first, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read greeting: %w", err)
	}

	switch strings.TrimSpace(first) {
	case "AUTH_REQUIRED":
		if _, err := fmt.Fprintf(conn, "%s\n", psk); err != nil {
			return "", fmt.Errorf("send psk: %w", err)
		}
		status, err := r.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read auth status: %w", err)
		}
		if strings.TrimSpace(status) != "AUTH_OK" {
			return "", fmt.Errorf("authentication failed")
		}
	case "OASIS_OS remote terminal":
		// No auth required; the prompt ("> ") follows on the same line
		// without a newline, so nothing further to read here.
	default:
		return "", fmt.Errorf("unexpected greeting: %q", strings.TrimSpace(first))
	}

	if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
		return "", fmt.Errorf("send command: %w", err)
	}
	if _, err := fmt.Fprintln(conn, "quit"); err != nil {
		return "", fmt.Errorf("send quit: %w", err)
	}

	var out strings.Builder
	for {
		chunk, err := r.ReadString('\n')
		out.WriteString(chunk)
		if err != nil {
			break
		}
	}

	return strings.TrimSuffix(strings.TrimPrefix(out.String(), "> "), "Goodbye.\n"), nil
}
