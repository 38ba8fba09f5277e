package round

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/jumble/internal/puzzle"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b9))
}

// group builds a letter group with three candidates per tier, scores 10..90.
func group(index int, placeholder string, words ...string) puzzle.LetterGroup {
	g := puzzle.LetterGroup{Index: index, Placeholder: placeholder}
	for i, w := range words {
		g.Candidates = append(g.Candidates, puzzle.Candidate{
			Word:        w,
			Score:       (i + 1) * 10,
			Hint:        "n\ta ??? of something",
			Level:       puzzle.Difficulties[min(i/3, 2)],
			Placeholder: placeholder,
		})
	}
	return g
}

func hotDogRecord() *puzzle.Record {
	return &puzzle.Record{
		ID:         42,
		Solution:   "hot dog",
		ToComplete: `What the sausage said at the fair: "I'm a {}!"`,
		Dialogue:   "Relish the moment.",
		ImageURL:   "/img/42.png",
		Groups: []puzzle.LetterGroup{
			group(1, "?h?o", "shoo", "whom", "whoa", "phot", "chop", "shop", "shot", "thou", "whop"),
			group(2, "t??d", "toad", "tend", "told", "tied", "trod", "toed", "tidd", "teed", "turd"),
			group(3, "?g?o", "agio", "ergo", "algo", "ego", "ogre", "gyro", "logo", "yoga", "sago"),
		},
	}
}

func TestAssembleHotDog(t *testing.T) {
	rec := hotDogRecord()
	asm := NewAssembler(seeded(1))

	for _, d := range puzzle.Difficulties {
		r, err := asm.Assemble(rec, d, puzzle.Random)
		require.NoError(t, err)

		assert.Equal(t, int64(42), r.PuzzleID)
		assert.Equal(t, d, r.Difficulty)
		assert.Equal(t, d.Label(), r.Label)
		assert.Equal(t, "hot dog", r.Solution())
		require.Len(t, r.Jumbles, len(rec.Groups))

		for i, j := range r.Jumbles {
			g := rec.Groups[i]
			assert.Equal(t, g.Index, j.Index)
			assert.Equal(t, g.Placeholder, j.Placeholder)
			c := g.Candidates[j.pick]
			assert.Equal(t, d, c.Level)
			assert.Equal(t, c.Word, j.Word())
			assert.NotEqual(t, c.Word, strings.Join(j.Scrambled, ""))
			assert.ElementsMatch(t, strings.Split(c.Word, ""), j.Scrambled)
		}

		stored := MaskTemplate(rec.ToComplete, "")
		assert.Equal(t, stored.Revealed, r.Completion.Revealed)
		assert.Equal(t, 6, r.Completion.Blanks)
	}
}

func TestAssembleOrders(t *testing.T) {
	rec := hotDogRecord()
	asm := NewAssembler(seeded(2))

	r, err := asm.Assemble(rec, puzzle.Medium, puzzle.Ascending)
	require.NoError(t, err)
	assert.Equal(t, "phot", r.Jumbles[0].Word())
	assert.Equal(t, "tied", r.Jumbles[1].Word())

	r, err = asm.Assemble(rec, puzzle.Medium, puzzle.Descending)
	require.NoError(t, err)
	assert.Equal(t, "shop", r.Jumbles[0].Word())
	assert.Equal(t, "gyro", r.Jumbles[2].Word())
}

func TestAssembleDoesNotMutateRecord(t *testing.T) {
	rec := hotDogRecord()
	before := hotDogRecord()
	_, err := NewAssembler(seeded(3)).Assemble(rec, puzzle.Hard, puzzle.Random)
	require.NoError(t, err)
	if diff := cmp.Diff(before, rec); diff != "" {
		t.Fatalf("record changed (-want +got):\n%s", diff)
	}
}

func TestAssembleDeterministicWithSeed(t *testing.T) {
	a, err := NewAssembler(seeded(9)).Assemble(hotDogRecord(), puzzle.Easy, puzzle.Random)
	require.NoError(t, err)
	b, err := NewAssembler(seeded(9)).Assemble(hotDogRecord(), puzzle.Easy, puzzle.Random)
	require.NoError(t, err)

	for i := range a.Jumbles {
		assert.Equal(t, a.Jumbles[i].Word(), b.Jumbles[i].Word())
		assert.Equal(t, a.Jumbles[i].Scrambled, b.Jumbles[i].Scrambled)
	}
}

func TestAssembleMissingTier(t *testing.T) {
	rec := hotDogRecord()
	rec.Groups[1] = group(2, "t??d", "toad", "tend")
	_, err := NewAssembler(seeded(4)).Assemble(rec, puzzle.Easy, puzzle.Random)
	assert.ErrorIs(t, err, ErrNoCandidate)

	_, err = NewAssembler(seeded(4)).Assemble(rec, puzzle.Difficulty(7), puzzle.Random)
	assert.Error(t, err)
}

func TestScramble(t *testing.T) {
	rng := seeded(5)
	for range 200 {
		for _, w := range []string{"ab", "hoop", "hotdog", "éte"} {
			got := Scramble(w, rng)
			assert.NotEqual(t, w, strings.Join(got, ""))
			assert.ElementsMatch(t, strings.Split(w, ""), got)
		}
	}
}

func TestScrambleDegenerateWords(t *testing.T) {
	rng := seeded(6)
	assert.Equal(t, []string{"a"}, Scramble("a", rng))
	assert.Equal(t, []string{"o", "o", "o"}, Scramble("ooo", rng))
	assert.Empty(t, Scramble("", rng))
}

func TestCheckSolutionAndWords(t *testing.T) {
	r, err := NewAssembler(seeded(7)).Assemble(hotDogRecord(), puzzle.Hard, puzzle.Ascending)
	require.NoError(t, err)

	assert.True(t, r.CheckSolution("hot dog"))
	assert.True(t, r.CheckSolution("  HOT   Dog "))
	assert.False(t, r.CheckSolution("hotdog"))
	assert.False(t, r.CheckSolution("hot dogs"))

	ok, err := r.CheckWord(1, " SHOO ")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.CheckWord(2, "tend")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = r.CheckWord(9, "shoo")
	assert.ErrorIs(t, err, ErrNoSuchJumble)
}
