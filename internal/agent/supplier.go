// Package agent rotates browser User-Agent strings across requests so a
// scraping run does not present a single fingerprint.
package agent

import "sync"

// Supplier hands out User-Agent strings in round-robin order.
type Supplier interface {
	Get() string
}

var defaultAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:90.0) Gecko/20100101 Firefox/90.0",
}

type supplier struct {
	agents  []string
	current int
	mutex   sync.Mutex
}

// NewSupplier creates a Supplier over the given agents, falling back to a
// small built-in pool when none are configured.
func NewSupplier(agents []string) Supplier {
	if len(agents) == 0 {
		agents = defaultAgents
	}
	return &supplier{agents: agents}
}

func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ua := s.agents[s.current]
	s.current = (s.current + 1) % len(s.agents)
	return ua
}
