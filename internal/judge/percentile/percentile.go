// Package percentile rebuilds a runtime percentile from the bucketed
// distribution shown on a submission page.
package percentile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EmptyDistribution is used when a page carries no distribution.
const EmptyDistribution = `{"distribution": []}`

// Tier is one histogram bucket: the share of submissions, in percent, that
// ran in Runtime milliseconds.
type Tier struct {
	Runtime int
	Share   float64
}

// Calc walks the tiers from the slowest down, adding each share, and stops
// after the first tier whose runtime is not above ours. An empty
// distribution yields 0.
func Calc(distribution []Tier, runtime int) float64 {
	sum := 0.0
	for i := len(distribution) - 1; i >= 0; i-- {
		sum += distribution[i].Share
		if runtime >= distribution[i].Runtime {
			break
		}
	}
	return sum
}

type distributionPayload struct {
	Distribution []json.RawMessage `json:"distribution"`
}

// Parse decodes {"distribution": [["4", 1.39], ...]}. Runtimes may be sent
// as strings or numbers.
func Parse(text string) ([]Tier, error) {
	var payload distributionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode distribution failed: %w", err)
	}
	tiers := make([]Tier, 0, len(payload.Distribution))
	for i, raw := range payload.Distribution {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return nil, fmt.Errorf("tier %d is not a [runtime, share] pair", i)
		}
		runtime, err := parseRuntime(pair[0])
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i, err)
		}
		var share float64
		if err := json.Unmarshal(pair[1], &share); err != nil {
			return nil, fmt.Errorf("tier %d: invalid share: %w", i, err)
		}
		tiers = append(tiers, Tier{Runtime: runtime, Share: share})
	}
	return tiers, nil
}

func parseRuntime(raw json.RawMessage) (int, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, fmt.Errorf("invalid runtime %s", raw)
		}
		return n, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid runtime %q", s)
	}
	return n, nil
}
