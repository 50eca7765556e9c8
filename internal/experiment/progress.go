package experiment

import (
	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/logging"
)

// Progress logs the simulated time and joint angles every interval seconds
// of simulated time.
type Progress struct {
	log      logging.Logger
	interval float64
	next     float64
	Reported int
}

func NewProgress(log logging.Logger, interval float64) *Progress {
	if log == nil {
		log = logging.Nop()
	}
	return &Progress{log: log, interval: interval}
}

func (p *Progress) OnStep(x dynamo.State, u dynamo.Control, t float64) {
	if p.interval <= 0 || t < p.next {
		return
	}
	p.Reported++
	p.log.WithField("t", t).Debugf("state %v", x)
	for p.next <= t {
		p.next += p.interval
	}
}

var _ dynamo.Observer = (*Progress)(nil)
