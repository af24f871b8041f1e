package mirror

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
)

// Candidate is a GitHub download proxy. Requests are sent to
// "{URL}/{original github URL}".
type Candidate struct {
	URL string
}

// Host returns the bare host name that gets probed.
func (c Candidate) Host() string {
	if u, err := url.Parse(c.URL); err == nil && u.Host != "" {
		return u.Hostname()
	}
	host := strings.TrimPrefix(strings.TrimPrefix(c.URL, "https://"), "http://")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return host
}

// DefaultCandidates is the built-in proxy list, in preference order for ties.
var DefaultCandidates = []Candidate{
	{URL: "https://gh.llkk.cc"},
	{URL: "https://github.moeyy.xyz"},
	{URL: "https://ghproxy.cn"},
	{URL: "https://ghproxy.net"},
	{URL: "https://ghp.ci"},
}

// ProbeResult is one candidate's reachability measurement.
type ProbeResult struct {
	Mirror    Candidate
	Latency   time.Duration
	Reachable bool
}

// Prober measures round-trip latency to a host.
type Prober interface {
	Probe(ctx context.Context, host string) (time.Duration, error)
}

// ProbeAll probes every candidate concurrently. Results keep input order.
func ProbeAll(ctx context.Context, prober Prober, candidates []Candidate) []ProbeResult {
	results := make([]ProbeResult, len(candidates))

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logging.Debugf("Verbose: probing mirror %s\n", c.URL)
			latency, err := prober.Probe(ctx, c.Host())
			results[i] = ProbeResult{Mirror: c, Latency: latency, Reachable: err == nil}
			if err != nil {
				logging.Debugf("Verbose: mirror %s unreachable: %v\n", c.URL, err)
			}
		}()
	}
	wg.Wait()
	return results
}

// Best returns the reachable result with the lowest latency. Ties go to the
// earliest result. ok is false when nothing was reachable.
func Best(results []ProbeResult) (best ProbeResult, ok bool) {
	for _, r := range results {
		if !r.Reachable {
			continue
		}
		if !ok || r.Latency < best.Latency {
			best = r
			ok = true
		}
	}
	return best, ok
}

// SelectMirror picks the base URL to route downloads through. A non-empty
// override is returned without probing. The empty string means no mirror
// answered and callers should fetch directly.
func SelectMirror(ctx context.Context, prober Prober, candidates []Candidate, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		logging.Infof("Using configured mirror: %s\n", override)
		return strings.TrimRight(override, "/")
	}

	logging.Infoln("Probing GitHub download mirrors...")
	results := ProbeAll(ctx, prober, candidates)
	for _, r := range results {
		if r.Reachable {
			logging.Infof("  %s %s\n", r.Mirror.URL, r.Latency.Round(time.Millisecond))
		} else {
			logging.Infof("  %s unreachable\n", r.Mirror.URL)
		}
	}

	best, ok := Best(results)
	if !ok {
		logging.Warnf("no mirror reachable, downloading directly")
		return ""
	}
	logging.Infof("Selected mirror: %s\n", best.Mirror.URL)
	return strings.TrimRight(best.Mirror.URL, "/")
}

// Selector runs SelectMirror at most once and remembers the answer for the
// rest of the process.
type Selector struct {
	Prober     Prober
	Candidates []Candidate
	Override   string

	once     sync.Once
	selected string
}

// NewSelector returns a Selector over the given candidates.
func NewSelector(prober Prober, candidates []Candidate, override string) *Selector {
	return &Selector{Prober: prober, Candidates: candidates, Override: override}
}

// Select returns the cached mirror, probing on the first call.
func (s *Selector) Select(ctx context.Context) string {
	s.once.Do(func() {
		s.selected = SelectMirror(ctx, s.Prober, s.Candidates, s.Override)
	})
	return s.selected
}
