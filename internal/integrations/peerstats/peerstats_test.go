package peerstats

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hi4requency/fynstra/internal/config"
	"github.com/hi4requency/fynstra/internal/models"
)

func testClient(url string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{PeerStatsURL: url}, log)
}

func TestBracket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{18, "18-25"},
		{25, "18-25"},
		{26, "26-35"},
		{35, "26-35"},
		{36, "36-50"},
		{50, "36-50"},
		{51, "50+"},
		{80, "50+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bracket(tt.age), "age %d", tt.age)
	}
}

func TestAverages_FallbackWithoutFeed(t *testing.T) {
	c := testClient("")
	avg := c.Averages(28)
	assert.Equal(t, "26-35", avg.Bracket)
	assert.Equal(t, 55.0, avg.FHI)
	assert.Equal(t, 18.0, avg.SavingsRate)
	assert.Equal(t, 55.0, avg.EmergencyFund)
}

func TestAverages_RemoteFeed(t *testing.T) {
	const feed = `<?xml version="1.0"?>
		<peerstats>
			<bracket range="26-35">
				<fhi>58.5</fhi>
				<savings_rate>19</savings_rate>
				<emergency_fund>57</emergency_fund>
			</bracket>
		</peerstats>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	avg := c.Averages(30)
	assert.Equal(t, 58.5, avg.FHI)
	assert.Equal(t, 19.0, avg.SavingsRate)
}

func TestAverages_FeedFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	avg := c.Averages(45)
	assert.Equal(t, fallback["36-50"], avg)
}

func TestCompare(t *testing.T) {
	c := testClient("")
	result := &models.FHIResult{
		FHI: 48.25,
		Components: models.Components{
			SavingsRate:   20,
			EmergencyFund: 66.67,
		},
	}
	cmp := c.Compare(28, result)
	require.Equal(t, "26-35", cmp.Peer.Bracket)
	assert.InDelta(t, -6.75, cmp.FHIDelta, 0.01)
	assert.InDelta(t, 2.0, cmp.SavingsRateDelta, 0.01)
	assert.InDelta(t, 11.67, cmp.EmergencyDelta, 0.01)
}
