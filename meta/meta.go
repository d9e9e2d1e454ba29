// meta/meta.go
package meta

// SIMULATIONS defines the number of simulations per MCTS decision.
const SIMULATIONS = 100

// MAX_TURNS caps the length of a game played by the engine.
const MAX_TURNS = 300

// ARENA_GAMES defines the number of games per evaluation match up.
const ARENA_GAMES = 10

// SP_GAMES defines the number of self-play games per training cycle.
const SP_GAMES = 20

// SP_TEMPERATURE is the Boltzmann temperature for self-play actions.
const SP_TEMPERATURE = 1.0
