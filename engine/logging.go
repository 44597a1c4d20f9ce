// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the capability an embedding application supplies for
// search progress and façade lifecycle events. A nil Logger is
// replaced by NulLogger so tests don't need to stub one out.
type Logger interface {
	Info(msg string, fields ...interface{})
}

// NulLogger discards everything, used by default in tests and whenever
// the caller has no interest in progress output.
type NulLogger struct{}

func (NulLogger) Info(string, ...interface{}) {}

// ZapLogger adapts a *zap.SugaredLogger to the Logger interface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds the default production Logger.
func NewZapLogger() *ZapLogger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return &ZapLogger{sugar: l.Sugar()}
}

func (z *ZapLogger) Info(msg string, fields ...interface{}) {
	z.sugar.Infow(msg, fields...)
}

func infoLine(depth int, score int32, nodes uint64, elapsedMs int64, pv []Move) string {
	var scoreStr string
	switch {
	case score >= KnownWinScore:
		scoreStr = fmt.Sprintf("mate %d", (MateScore-score+1)/2)
	case score <= KnownLossScore:
		scoreStr = fmt.Sprintf("mate %d", -(MateScore+score+1)/2)
	default:
		scoreStr = fmt.Sprintf("cp %d", score)
	}
	nps := uint64(0)
	if elapsedMs > 0 {
		nps = nodes * 1000 / uint64(elapsedMs)
	}
	s := fmt.Sprintf("depth %d score %s nodes %d nps %d time %d", depth, scoreStr, nodes, nps, elapsedMs)
	if len(pv) > 0 {
		s += " pv"
	}
	for _, m := range pv {
		s += " " + m.UCI()
	}
	return s
}
