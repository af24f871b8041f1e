package mirror

import (
	"context"
	"fmt"
	"runtime"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// DefaultProbeTimeout bounds a single echo round trip.
const DefaultProbeTimeout = 3 * time.Second

// ICMPProber sends one ICMP echo request per probe.
type ICMPProber struct {
	Timeout time.Duration
}

// Probe resolves host and returns the round-trip time of a single echo.
func (p ICMPProber) Probe(ctx context.Context, host string) (time.Duration, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, ctx.Err()
	}

	pinger, err := probing.NewPinger(host)
	if err != nil {
		return 0, fmt.Errorf("resolving %s: %w", host, err)
	}
	pinger.Count = 1
	pinger.Timeout = timeout
	// Windows only supports raw ICMP sockets; elsewhere use unprivileged
	// datagram pings so the installer does not need root.
	pinger.SetPrivileged(runtime.GOOS == "windows")

	done := make(chan error, 1)
	go func() { done <- pinger.Run() }()

	select {
	case <-ctx.Done():
		pinger.Stop()
		<-done
		return 0, ctx.Err()
	case err := <-done:
		if err != nil {
			return 0, fmt.Errorf("pinging %s: %w", host, err)
		}
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, fmt.Errorf("pinging %s: no reply within %s", host, timeout)
	}
	return stats.MinRtt, nil
}
