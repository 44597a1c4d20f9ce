// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// Score is a tapered middlegame/endgame weight.
type Score struct {
	M, E int32
}

func (s Score) add(o Score) Score { return Score{s.M + o.M, s.E + o.E} }
func (s Score) sub(o Score) Score { return Score{s.M - o.M, s.E - o.E} }
func (s Score) scale(n int32) Score {
	return Score{s.M * n, s.E * n}
}

// Accum accumulates a position's score as it is evaluated.
type Accum struct {
	M, E int32
}

func (a *Accum) add(s Score)            { a.M += s.M; a.E += s.E }
func (a *Accum) addN(s Score, n int32)   { a.M += s.M * n; a.E += s.E * n }
func (a *Accum) merge(o Accum)           { a.M += o.M; a.E += o.E }
func (a *Accum) deduct(o Accum)          { a.M -= o.M; a.E -= o.E }
func (a Accum) neg() Accum               { return Accum{-a.M, -a.E} }

// feed interpolates between M and E by phase, phase in [0, 256], 0 being
// pure middlegame and 256 pure endgame.
func (a Accum) feed(phase int32) int32 {
	return (a.M*(256-phase) + a.E*phase) / 256
}
