package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func cmdServe(n *node, input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("serve", "", `
Read commands from stdin, one per line, and execute them against the same
ledger. A failed command is reported and does not stop the processing.

When CUSTODY_METRICS_ADDR is set, metrics are exposed over HTTP on /metrics
until the input is consumed.
`)
	if _, err := parseArgs(fl, args, 0, 0); err != nil {
		return err
	}
	if _, err := n.Ledger(); err != nil {
		return err
	}

	if n.conf.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(n.metrics, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: n.conf.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				n.logger.Error("metrics server", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := serveLine(n, output, fields); err != nil {
			fmt.Fprintf(output, "error: %s\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(errors.ErrInput, "read input: %s", err)
	}
	return nil
}

// serveLine executes a single command. The CUSTODY_KEY=<path> prefix
// selects the signer of this command only.
func serveLine(n *node, output io.Writer, fields []string) error {
	key := n.conf.Key
	defer func() { n.conf.Key = key }()
	if strings.HasPrefix(fields[0], "CUSTODY_KEY=") {
		n.conf.Key = strings.TrimPrefix(fields[0], "CUSTODY_KEY=")
		fields = fields[1:]
		if len(fields) == 0 {
			return errors.Wrap(errors.ErrInput, "missing command")
		}
	}

	name := fields[0]
	run, ok := commands[name]
	if !ok || name == "serve" {
		return errors.Wrapf(errors.ErrInput, "unknown command %q", name)
	}
	return run(n, nil, output, fields[1:])
}
