package metrics_test

import (
	"context"

	"github.com/san-kum/linksim/internal/dynamo"
)

type zeroTorques struct{}

func (zeroTorques) Compute(x dynamo.State, t float64) dynamo.Control {
	return dynamo.Control{0, 0, 0}
}

func ctx() context.Context { return context.Background() }
