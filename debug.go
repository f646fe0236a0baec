package feather

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and counters.
// Only logged when Scene.debug is true.
type debugStats struct {
	inputTime    time.Duration
	layoutTime   time.Duration
	layoutPasses int
	idleTasks    int
	tweens       int
}

// debugLog prints frame stats to stderr when anything beyond input
// happened this frame.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || (stats.layoutPasses == 0 && stats.idleTasks == 0) {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[feather] input: %v | layout: %v (%d passes) | idle tasks: %d | tweens: %d\n",
		stats.inputTime, stats.layoutTime, stats.layoutPasses, stats.idleTasks, stats.tweens)
}

// debugf prints a diagnostic line to stderr in debug mode.
func (s *Scene) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[feather] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("feather debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[feather] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[feather] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
