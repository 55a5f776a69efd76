// Package policy maps observations to actions. Training happens
// elsewhere; these are inference-side runners for already-trained
// policies.
package policy

import (
	"math/rand"

	"fxgym/env"
)

// Policy picks the next action for an observation. Recurrent policies
// carry hidden state between Predict calls; Reset clears it at episode
// boundaries.
type Policy interface {
	Predict(obs env.Observation) (env.Action, error)
	Reset()
}

// Random picks uniformly among the actions. Useful for demos and for
// exercising an environment without a trained model.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Predict(env.Observation) (env.Action, error) {
	return env.Action(r.rng.Intn(env.NumActions)), nil
}

func (r *Random) Reset() {}
