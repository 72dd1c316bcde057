// meta/meta.go
package meta

import "time"

// DURATION is the default wall-clock budget of one search decision.
const DURATION = time.Second

// ROLLOUT_TRIALS is the number of heuristic games played per candidate by the rollout evaluator.
const ROLLOUT_TRIALS = 50

// GAMES is the default number of games per experiment match-up.
const GAMES = 100

// GO_ROUTINES is the default number of games an experiment plays concurrently.
const GO_ROUTINES = 8

// MAX_TURNS bounds a game. Every ply raises a cell and the board can absorb at most
// BoardWidth*BoardWidth*MaxHeight builds, so no game gets near it.
const MAX_TURNS = 100
