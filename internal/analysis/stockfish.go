package analysis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/review"
)

// Forced mates are folded onto the centipawn scale so the grading thresholds
// can compare them: mate in n scores 10000 - n for the winning side.
const mateScoreBase = 10000

const handshakeTimeout = 2 * time.Second

// Engine drives one UCI engine subprocess. Calls are serialized through a
// mutex; use an EnginePool to evaluate positions concurrently.
type Engine struct {
	path     string
	depth    int
	moveTime time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.Writer
	stdout *bufio.Reader
}

// NewEngine starts the engine binary and completes the UCI handshake.
// Non-positive depth and moveTime fall back to workable defaults.
func NewEngine(path string, depth int, moveTime time.Duration) (*Engine, error) {
	log := logger.Default().WithPrefix("stockfish")

	if path == "" {
		path = "stockfish"
	}
	if depth <= 0 {
		depth = 20
	}
	if moveTime <= 0 {
		moveTime = 8 * time.Second
	}

	log.Info("starting engine: %s (depth %d)", path, depth)
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, apperrors.NewEngineError("failed to create stdin pipe", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, apperrors.NewEngineError("failed to create stdout pipe", err)
	}

	engine := &Engine{
		path:     path,
		depth:    depth,
		moveTime: moveTime,
		log:      log,
		cmd:      cmd,
		stdin:    stdin,
		stdout:   bufio.NewReader(stdout),
	}

	if err := cmd.Start(); err != nil {
		return nil, apperrors.NewEngineError("failed to start "+path, err)
	}

	if err := engine.handshake(); err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}

	log.Debug("engine ready")
	return engine, nil
}

func (e *Engine) handshake() error {
	if err := e.send("uci"); err != nil {
		return apperrors.NewEngineError("failed to send uci", err)
	}
	if err := e.waitFor("uciok", handshakeTimeout); err != nil {
		return err
	}
	if err := e.send("isready"); err != nil {
		return apperrors.NewEngineError("failed to send isready", err)
	}
	return e.waitFor("readyok", handshakeTimeout)
}

// Close asks the engine to quit and waits for the process to exit.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return nil
	}

	_ = e.sendLocked("quit")
	err := e.cmd.Wait()
	e.cmd = nil

	if err != nil {
		e.log.Debug("engine exited: %v", err)
	} else {
		e.log.Debug("engine exited cleanly")
	}
	return err
}

// EvaluateFEN searches one position to the configured depth and returns a
// White-relative sample. The search is bounded by the configured move time
// regardless of depth.
func (e *Engine) EvaluateFEN(ctx context.Context, fen string) (review.EvaluationSample, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	log := e.log.WithField("depth", e.depth)

	if err := e.sendLocked("position fen " + fen); err != nil {
		return review.EvaluationSample{}, apperrors.NewEngineError("failed to set position", err)
	}
	if err := e.sendLocked(fmt.Sprintf("go depth %d", e.depth)); err != nil {
		return review.EvaluationSample{}, apperrors.NewEngineError("failed to start search", err)
	}

	// UCI scores are relative to the side to move; the FEN's second field
	// says whose turn it is.
	fields := strings.Fields(fen)
	blackToMove := len(fields) > 1 && fields[1] == "b"

	var (
		score    uciScore
		hasScore bool
	)
	deadline := time.Now().Add(e.moveTime)
	for {
		if err := ctx.Err(); err != nil {
			log.Warn("evaluation cancelled: %v", err)
			return review.EvaluationSample{}, err
		}
		if time.Now().After(deadline) {
			log.Error("search timed out after %s", e.moveTime)
			return review.EvaluationSample{}, apperrors.NewEngineError("search timed out", nil)
		}

		line, err := e.stdout.ReadString('\n')
		if err != nil {
			return review.EvaluationSample{}, apperrors.NewEngineError("failed to read engine output", err)
		}
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "info") {
			if s, ok := parseInfoScore(line); ok {
				score, hasScore = s, true
			}
			continue
		}
		if strings.HasPrefix(line, "bestmove") {
			sample := foldScore(score, hasScore, blackToMove)
			sample.BestMove = parseBestMove(line)
			log.Debug("evaluated in %v: score=%.0f best=%s", time.Since(start), sample.Score, sample.BestMove)
			return sample, nil
		}
	}
}

// uciScore is the score token of one info line, relative to the side to move.
type uciScore struct {
	value  int
	isMate bool
}

// parseInfoScore extracts the score from an info line. Lines that carry no
// score (currmove progress, string output) report ok=false so the caller
// keeps the previous one.
func parseInfoScore(line string) (uciScore, bool) {
	parts := strings.Fields(line)
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] != "score" {
			continue
		}
		v, err := strconv.Atoi(parts[i+2])
		if err != nil {
			return uciScore{}, false
		}
		switch parts[i+1] {
		case "cp":
			return uciScore{value: v}, true
		case "mate":
			return uciScore{value: v, isMate: true}, true
		}
	}
	return uciScore{}, false
}

// parseBestMove pulls the move out of a bestmove line. A mated or stalemated
// position reports "bestmove (none)", which maps to an empty move.
func parseBestMove(line string) string {
	parts := strings.Fields(line)
	if len(parts) < 2 || parts[1] == "(none)" {
		return ""
	}
	return parts[1]
}

// foldScore converts a mover-relative UCI score into a White-relative sample.
// Mate distances keep their sign convention (negative when Black mates) and
// are also mapped onto the centipawn scale near the 10000 mark, so shorter
// mates score higher. A search that never produced a score evaluates to 0.
func foldScore(s uciScore, hasScore, blackToMove bool) review.EvaluationSample {
	var sample review.EvaluationSample
	if !hasScore {
		return sample
	}

	v := s.value
	if blackToMove {
		v = -v
	}

	if !s.isMate {
		sample.Score = float64(v)
		return sample
	}

	mate := v
	sample.Mate = &mate
	if mate > 0 {
		sample.Score = mateScoreBase - float64(mate)
	} else {
		sample.Score = -(mateScoreBase - math.Abs(float64(mate)))
	}
	return sample
}

func (e *Engine) send(cmd string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sendLocked(cmd)
}

func (e *Engine) sendLocked(cmd string) error {
	_, err := e.stdin.Write([]byte(cmd + "\n"))
	return err
}

func (e *Engine) waitFor(marker string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if time.Now().After(deadline) {
			return apperrors.NewEngineError("timeout waiting for "+marker, nil)
		}
		line, err := e.stdout.ReadString('\n')
		if err != nil {
			return apperrors.NewEngineError("failed to read engine output", err)
		}
		if strings.Contains(line, marker) {
			return nil
		}
	}
}
