// Package peerstats supplies per-age-bracket benchmark averages used for
// the "how you compare" section. Figures come from an optional XML feed,
// with a static table as fallback.
package peerstats

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/hi4requency/fynstra/internal/config"
	"github.com/hi4requency/fynstra/internal/models"
)

// Averages are the benchmark figures for one age bracket.
type Averages struct {
	Bracket       string  `json:"bracket"`
	FHI           float64 `json:"fhi"`
	SavingsRate   float64 `json:"savings_rate"`
	EmergencyFund float64 `json:"emergency_fund"`
}

// Comparison reports the user's standing against the bracket averages.
type Comparison struct {
	Peer             Averages `json:"peer"`
	FHIDelta         float64  `json:"fhi_delta"`
	SavingsRateDelta float64  `json:"savings_rate_delta"`
	EmergencyDelta   float64  `json:"emergency_fund_delta"`
}

// Client fetches peer averages, falling back to the built-in table when
// no feed is configured or the fetch fails.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new peer statistics client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.PeerStatsURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fallback mirrors the published survey averages per bracket.
var fallback = map[string]Averages{
	"18-25": {Bracket: "18-25", FHI: 45, SavingsRate: 15, EmergencyFund: 35},
	"26-35": {Bracket: "26-35", FHI: 55, SavingsRate: 18, EmergencyFund: 55},
	"36-50": {Bracket: "36-50", FHI: 65, SavingsRate: 22, EmergencyFund: 70},
	"50+":   {Bracket: "50+", FHI: 75, SavingsRate: 25, EmergencyFund: 85},
}

// Bracket maps an age to its peer bracket.
func Bracket(age int) string {
	switch {
	case age < 26:
		return "18-25"
	case age < 36:
		return "26-35"
	case age < 51:
		return "36-50"
	default:
		return "50+"
	}
}

// Averages returns the benchmark figures for an age, preferring the
// remote feed when one is configured.
func (c *Client) Averages(age int) Averages {
	bracket := Bracket(age)
	if c.url == "" {
		return fallback[bracket]
	}

	avg, err := c.fetch(bracket)
	if err != nil {
		c.log.Warnf("Peer stats feed unavailable, using fallback table: %v", err)
		return fallback[bracket]
	}
	return avg
}

// fetch pulls the XML feed and extracts the bracket's figures. Expected
// layout: <peerstats><bracket range="26-35"><fhi>..</fhi>...</bracket></peerstats>
func (c *Client) fetch(bracket string) (Averages, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return Averages{}, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Averages{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Averages{}, fmt.Errorf("failed to read response: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return Averages{}, fmt.Errorf("failed to parse XML: %v", err)
	}

	for _, el := range doc.FindElements("//peerstats/bracket") {
		if el.SelectAttrValue("range", "") != bracket {
			continue
		}
		avg := Averages{Bracket: bracket}
		var parseErr error
		avg.FHI, parseErr = childFloat(el, "fhi")
		if parseErr != nil {
			return Averages{}, parseErr
		}
		avg.SavingsRate, parseErr = childFloat(el, "savings_rate")
		if parseErr != nil {
			return Averages{}, parseErr
		}
		avg.EmergencyFund, parseErr = childFloat(el, "emergency_fund")
		if parseErr != nil {
			return Averages{}, parseErr
		}
		return avg, nil
	}
	return Averages{}, fmt.Errorf("no data for bracket %s", bracket)
}

func childFloat(el *etree.Element, name string) (float64, error) {
	child := el.FindElement("./" + name)
	if child == nil {
		return 0, fmt.Errorf("element %s not found", name)
	}
	v, err := strconv.ParseFloat(child.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %v", name, err)
	}
	return v, nil
}

// Compare places a scored result against the user's age bracket.
func (c *Client) Compare(age int, result *models.FHIResult) Comparison {
	peer := c.Averages(age)
	return Comparison{
		Peer:             peer,
		FHIDelta:         result.FHI - peer.FHI,
		SavingsRateDelta: result.Components.SavingsRate - peer.SavingsRate,
		EmergencyDelta:   result.Components.EmergencyFund - peer.EmergencyFund,
	}
}
