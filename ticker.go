package purse

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultTickInterval is how often the simulated prices move.
const DefaultTickInterval = 3 * time.Second

// Ticking is a price source refreshed on a timer.
type Ticking interface {
	Tick()
}

// Ticker periodically refreshes a price feed. It only ever writes the feed's
// cached prices, never any user state.
type Ticker struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// NewTicker schedules feed.Tick every interval. Intervals under a second are
// rounded up to one second. The ticker does nothing until Start.
func NewTicker(feed Ticking, every time.Duration, log *logrus.Logger) (*Ticker, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if every < time.Second {
		every = time.Second
	}
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(log))))
	_, err := c.AddFunc(fmt.Sprintf("@every %s", every), func() {
		feed.Tick()
		log.Debug("prices refreshed")
	})
	if err != nil {
		return nil, fmt.Errorf("cannot schedule price refresh every %s: %w", every, err)
	}
	log.WithField("every", every).Info("scheduled price refresh")
	return &Ticker{cron: c, log: log}, nil
}

func (t *Ticker) Start() { t.cron.Start() }

// Stop stops the schedule and waits for a running tick to complete.
func (t *Ticker) Stop() {
	<-t.cron.Stop().Done()
}
