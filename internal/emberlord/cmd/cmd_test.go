package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/emberlord/pkg/engine"
	"laptudirm.com/x/emberlord/pkg/match"
)

// run executes the root command with the given input and arguments and
// returns what it printed.
func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("EMBERLORD_COLOR", "false")

	root := Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(input))
	root.SetArgs(append(args, "--config-dir", t.TempDir()))

	err := root.Execute()
	return out.String(), err
}

func TestReplay(t *testing.T) {
	script := heredocScript(`
		# two quiet moves
		a6-b5
		b3-a4
		position
	`)

	out, err := run(t, script, "replay", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "> a6-b5\n")
	assert.Contains(t, out, "side b to move, captured a:0 b:0")
	assert.True(t, strings.HasSuffix(out, "b1b1b1b1/1b1b1b1b/2b1b1b1/1b6/a7/3a1a1a/a1a1a1a1/1a1a1a1a b\n"), out)
}

func TestReplayQuietFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "game.txt")
	require.NoError(t, os.WriteFile(file, []byte("b3xd5\n"), 0o644))

	out, err := run(t, "", "replay", file, "--quiet", "--position", "8/8/8/8/2b5/1a6/8/8 a")
	require.NoError(t, err)

	assert.NotContains(t, out, "> b3xd5")
	assert.Contains(t, out, "side a wins by eradication (1-0)")
	assert.True(t, strings.HasSuffix(out, "8/8/8/3a4/8/8/8/8 b\n"), out)
}

func TestReplayStopsAtFirstFailure(t *testing.T) {
	_, err := run(t, "a6-b5\na6-b5\nb3-a4\n", "replay", "-")

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNoPiece)
	assert.Contains(t, err.Error(), "line 2")

	_, err = run(t, "fly away\n", "replay", "-")
	assert.ErrorIs(t, err, match.ErrUnknownCommand)

	_, err = run(t, "", "replay", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestReplayBook(t *testing.T) {
	book := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(book, []byte("A7/8/8/8/8/8/8/7b a\n"), 0o644))

	out, err := run(t, "burn h\n", "replay", "-", "--book", book)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "A-7/8/8/8/8/8/8/8 b\n"), out)
}

func TestPerft(t *testing.T) {
	out, err := run(t, "", "perft", "2")
	require.NoError(t, err)
	assert.Equal(t, "nodes 49\n", out)

	out, err = run(t, "", "perft", "1", "--divide", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "a6-b5    1\n")
	assert.True(t, strings.HasSuffix(out, "\nnodes 7\n"), out)

	_, err = run(t, "", "perft", "-1")
	assert.Error(t, err)

	_, err = run(t, "", "perft", "2", "--position", "8/8 a")
	assert.ErrorIs(t, err, engine.ErrBadPosition)
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("EMBERLORD_TURN_TIME", "30+0")

	out, err := run(t, "", "config")
	require.NoError(t, err)

	assert.Contains(t, out, "config.yaml\n")
	assert.Contains(t, out, "first-mover: b\n")
	assert.Contains(t, out, "turn-time: 30+0\n")
	assert.Contains(t, out, "color: false\n")
}

func TestPlay(t *testing.T) {
	session, err := match.NewSession(match.Options{Rules: engine.DefaultRules()})
	require.NoError(t, err)

	var out bytes.Buffer
	input := "\nmoves a6\na6-b5\nteleport\nb3-b4\nquit\na6-b5\n"
	require.NoError(t, play(session, strings.NewReader(input), &out, false, time.Hour))

	assert.Contains(t, out.String(), "side b to move")
	assert.Contains(t, out.String(), "b5\n")
	assert.Contains(t, out.String(), "side a to move")
	assert.Contains(t, out.String(), "error: parse command")
	assert.Contains(t, out.String(), "error: b3-b4: "+engine.ErrIllegalGeometry.Error())

	// Nothing after quit is played.
	assert.Len(t, session.History(), 1)
}

func TestPlayPenalties(t *testing.T) {
	tc, err := match.ParseTime("1/15+0")
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	session, err := match.NewSession(match.Options{
		Rules:    engine.DefaultRules(),
		TurnTime: &tc,
		Seed:     1,
		Now:      func() time.Time { return now },
	})
	require.NoError(t, err)

	_, err = session.Exec(match.Command{Kind: match.CmdAction, Action: engine.Action{
		Kind: engine.ActionMove,
		From: engine.Square{Row: 5, Col: 0},
		To:   engine.Square{Row: 4, Col: 1},
	}})
	require.NoError(t, err)

	now = now.Add(20 * time.Second)

	var out bytes.Buffer
	require.NoError(t, play(session, strings.NewReader("board\n"), &out, false, time.Hour))
	assert.Contains(t, out.String(), "side a ran out of time and lost the piece on ")
}

func TestRenderBoard(t *testing.T) {
	var out bytes.Buffer
	renderBoard(&out, engine.New(engine.DefaultRules()), false)

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "8  b     b     b     b    ", lines[0])
	assert.Equal(t, "4  .     .     .     .    ", lines[4])
	assert.Equal(t, "1     a     a     a     a ", lines[7])
	assert.Equal(t, "   a  b  c  d  e  f  g  h", lines[8])
	assert.Equal(t, "side b to move, captured a:0 b:0", lines[9])
}

func TestRenderBoardMatchesNotation(t *testing.T) {
	game, err := engine.ParsePosition("B7/8/8/8/8/8/8/1A-6 a", engine.DefaultRules())
	require.NoError(t, err)

	var out bytes.Buffer
	renderBoard(&out, game, false)

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "8  B     .     .     .    ", lines[0])
	assert.Equal(t, "1     A-    .     .     . ", lines[7])

	// The board and the position command spell a spent king the same way.
	assert.Contains(t, game.Position(), "1A-6")
}

// heredocScript strips the indentation of a script written inline.
func heredocScript(script string) string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, "\n")
}
