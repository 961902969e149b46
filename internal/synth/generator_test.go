package synth

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/types"
)

func mustParse(t *testing.T, text string) *dataset.Dataset {
	t.Helper()
	d, err := dataset.Parse(text)
	require.NoError(t, err)
	return d
}

func TestStats(t *testing.T) {
	d := mustParse(t, "x,name,mixed,blank\n10,Alice,5,\n20,Bob,n/a,\n30,Cara,15,")
	stats := Stats(d)
	require.Len(t, stats, 4)

	x := stats[0]
	assert.Equal(t, "x", x.Name)
	assert.True(t, x.Numeric)
	assert.Equal(t, 3, x.Count)
	assert.InDelta(t, 20.0, x.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(200.0/3.0), x.StdDev, 1e-9)

	name := stats[1]
	assert.False(t, name.Numeric)
	assert.Equal(t, []string{"Alice", "Bob", "Cara"}, name.Values)

	mixed := stats[2]
	assert.True(t, mixed.Numeric, "one numeric value is enough")
	assert.Equal(t, 2, mixed.Count)
	assert.InDelta(t, 10.0, mixed.Mean, 1e-9)
	assert.InDelta(t, 5.0, mixed.StdDev, 1e-9)

	blank := stats[3]
	assert.False(t, blank.Numeric, "empty strings are not numbers")
	assert.Len(t, blank.Values, 3)
}

func TestStatsIgnoresHexValues(t *testing.T) {
	stats := Stats(mustParse(t, "v\n0x1p4\n1"))
	require.Len(t, stats, 1)
	assert.True(t, stats[0].Numeric)
	assert.Equal(t, 1, stats[0].Count)
	assert.InDelta(t, 1.0, stats[0].Mean, 1e-9)
	assert.InDelta(t, 0.0, stats[0].StdDev, 1e-9)
}

func TestGenerateNumericColumn(t *testing.T) {
	src := mustParse(t, "x\n10\n20\n30")
	g := NewGenerator(types.NewRand(11), DefaultOptions())

	out, err := g.Generate(context.Background(), src, 200, nil)
	require.NoError(t, err)
	require.Equal(t, 200, out.Len())
	assert.Equal(t, []string{"x"}, out.Columns)

	twoDecimals := regexp.MustCompile(`^-?\d+\.\d{2}$`)
	stdDev := math.Sqrt(200.0 / 3.0)
	for i, r := range out.Records {
		v, ok := r.Get("x")
		require.True(t, ok)
		require.Regexp(t, twoDecimals, v, "row %d", i)

		f, err := strconv.ParseFloat(v, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f, 3.67, "row %d", i)
		assert.LessOrEqual(t, f, 36.33, "row %d", i)
		// The noise term is bounded by one standard deviation.
		assert.InDelta(t, 20.0, f, stdDev+0.005, "row %d", i)
	}
}

func TestGenerateConstantColumn(t *testing.T) {
	src := mustParse(t, "x,y\n7,1.5\n7,1.5\n7,1.5")
	out, err := NewGenerator(types.NewRand(3), DefaultOptions()).Generate(context.Background(), src, 20, nil)
	require.NoError(t, err)

	for _, r := range out.Records {
		x, _ := r.Get("x")
		y, _ := r.Get("y")
		assert.Equal(t, "7.00", x)
		assert.Equal(t, "1.50", y)
	}
}

func TestGenerateCategoricalColumn(t *testing.T) {
	src := mustParse(t, "team\nred\nblue\nred")
	out, err := NewGenerator(types.NewRand(8), DefaultOptions()).Generate(context.Background(), src, 50, nil)
	require.NoError(t, err)

	label := regexp.MustCompile(`^Synthetic_(red|blue)_(\d{1,3})$`)
	for _, r := range out.Records {
		v, _ := r.Get("team")
		m := label.FindStringSubmatch(v)
		require.NotNil(t, m, "unexpected label %q", v)
		n, _ := strconv.Atoi(m[2])
		assert.Less(t, n, 1000)
	}
}

func TestGenerateAllNullColumn(t *testing.T) {
	src := mustParse(t, "a,b\n1\n2")
	out, err := NewGenerator(types.NewRand(4), DefaultOptions()).Generate(context.Background(), src, 30, nil)
	require.NoError(t, err)

	label := regexp.MustCompile(`^Synthetic_(\d{1,4})$`)
	for _, r := range out.Records {
		v, ok := r.Get("b")
		require.True(t, ok)
		assert.Regexp(t, label, v)
	}
}

func TestGenerateDefaultCount(t *testing.T) {
	src := mustParse(t, "x\n1\n2")
	g := NewGenerator(types.NewRand(21), DefaultOptions())

	for i := 0; i < 50; i++ {
		out, err := g.Generate(context.Background(), src, 0, nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, out.Len(), 30)
		require.Less(t, out.Len(), 80)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	src := mustParse(t, "x,team\n10,red\n20,blue\n30,green")

	a, err := NewGenerator(types.NewRand(77), DefaultOptions()).Generate(context.Background(), src, 0, nil)
	require.NoError(t, err)
	b, err := NewGenerator(types.NewRand(77), DefaultOptions()).Generate(context.Background(), src, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, dataset.Serialize(a), dataset.Serialize(b))
}

func TestGenerateEmptySource(t *testing.T) {
	g := NewGenerator(types.NewRand(1), DefaultOptions())

	_, err := g.Generate(context.Background(), nil, 10, nil)
	assert.True(t, errors.Is(err, ErrEmptyDataset))

	_, err = g.Generate(context.Background(), mustParse(t, "x"), 10, nil)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
	assert.True(t, errors.Is(err, types.ErrPrecondition))
}

func TestGenerateProgress(t *testing.T) {
	tests := []struct {
		name      string
		steps     int
		count     int
		wantCalls int
	}{
		{name: "default steps", steps: 10, count: 45, wantCalls: 10},
		{name: "steps raised to minimum", steps: 2, count: 45, wantCalls: types.MinProgressSteps},
		{name: "fewer rows than steps", steps: 10, count: 3, wantCalls: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Steps = tt.steps
			g := NewGenerator(types.NewRand(5), opts)

			var updates []int
			out, err := g.Generate(context.Background(), mustParse(t, "x\n1\n2"), tt.count, func(p int) {
				updates = append(updates, p)
			})
			require.NoError(t, err)
			assert.Equal(t, tt.count, out.Len())

			require.Len(t, updates, tt.wantCalls)
			assert.GreaterOrEqual(t, len(updates), types.MinProgressSteps)
			assert.Equal(t, 100, updates[len(updates)-1])
			for i := 1; i < len(updates); i++ {
				assert.Greater(t, updates[i], updates[i-1], "progress must increase")
			}
		})
	}
}

func TestGenerateCancelled(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		out, err := NewGenerator(types.NewRand(1), DefaultOptions()).Generate(ctx, mustParse(t, "x\n1"), 10, func(int) { called = true })
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.False(t, called)
	})

	t.Run("between steps", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Interval = time.Hour
		g := NewGenerator(types.NewRand(1), opts)

		ctx, cancel := context.WithCancel(context.Background())
		var updates []int
		out, err := g.Generate(ctx, mustParse(t, "x\n1"), 10, func(p int) {
			updates = append(updates, p)
			cancel()
		})
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, []int{10}, updates)
	})
}
