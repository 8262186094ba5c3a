package carousel

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

func products(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{ID: int64(i + 1)}
	}
	return out
}

func TestChunkSlideCount(t *testing.T) {
	for n := 0; n <= 12; n++ {
		chunks := Chunk(products(n), PerSlide)
		assert.Len(t, chunks, (n+PerSlide-1)/PerSlide, "n=%d", n)
	}

	chunks := Chunk(products(10), PerSlide)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[2], 2)
	assert.Equal(t, int64(9), chunks[2][0].ID)
	assert.Nil(t, Chunk(products(3), 0))
}

func TestNavigationWraps(t *testing.T) {
	c := New(products(12), time.Hour)
	require.Equal(t, 3, c.Len())

	assert.Equal(t, 2, c.Prev(), "prev from first wraps to last")
	assert.Equal(t, 0, c.Next(), "next from last wraps to first")
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.GoTo(5))
	assert.Equal(t, 2, c.GoTo(-1))
	assert.Equal(t, int64(9), c.Slide()[0].ID)
}

func TestEmptyCarousel(t *testing.T) {
	c := New(nil, time.Hour)
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Next())
	assert.Zero(t, c.Prev())
	assert.Nil(t, c.Slide())

	c.Start(context.Background())
	assert.False(t, c.Playing())
}

func TestAutoplayAdvancesAndStops(t *testing.T) {
	c := New(products(8), 10*time.Millisecond)
	updates, cancel := c.Subscribe()
	defer cancel()

	c.Start(context.Background())
	require.True(t, c.Playing())

	select {
	case idx := <-updates:
		assert.Equal(t, 1, idx)
	case <-time.After(time.Second):
		t.Fatal("autoplay never advanced")
	}

	c.Stop()
	assert.False(t, c.Playing())
	stopped := c.Index()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, c.Index())
}

func TestAutoplayEndsWithContext(t *testing.T) {
	c := New(products(8), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	require.True(t, c.Playing())

	cancel()
	require.Eventually(t, func() bool { return !c.Playing() }, time.Second, 5*time.Millisecond)
}

func TestAutoplayRunsUntilLastContextEnds(t *testing.T) {
	c := New(products(8), 10*time.Millisecond)
	older, cancelOlder := context.WithCancel(context.Background())
	newer, cancelNewer := context.WithCancel(context.Background())
	defer cancelOlder()

	c.Start(older)
	c.Start(newer)
	require.True(t, c.Playing())

	cancelNewer()
	time.Sleep(30 * time.Millisecond)
	assert.True(t, c.Playing(), "older page is still connected")
	before := c.Index()
	require.Eventually(t, func() bool { return c.Index() != before }, time.Second, 5*time.Millisecond)

	cancelOlder()
	require.Eventually(t, func() bool { return !c.Playing() }, time.Second, 5*time.Millisecond)
}

func TestStartWithEndedContextDoesNothing(t *testing.T) {
	c := New(products(8), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Start(ctx)
	assert.False(t, c.Playing())
}

func TestNoAutoplayForSingleSlide(t *testing.T) {
	c := New(products(4), 10*time.Millisecond)
	c.Start(context.Background())
	assert.False(t, c.Playing())
	assert.Equal(t, 0, c.Next())
}

func TestManualNavigationRestartsTimer(t *testing.T) {
	c := New(products(12), 80*time.Millisecond)
	c.Start(context.Background())
	defer c.Stop()

	time.Sleep(50 * time.Millisecond)
	c.GoTo(2)
	// The old timer would have fired by now; the restarted one has not.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, c.Index())
	assert.True(t, c.Playing())

	require.Eventually(t, func() bool { return c.Index() == 0 }, time.Second, 5*time.Millisecond)
}

func TestSetProductsResetsIndex(t *testing.T) {
	c := New(products(12), time.Hour)
	c.GoTo(2)
	c.SetProducts(products(5))
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 2, c.Len())
}

type fakeSource struct {
	schools  []models.School
	products map[string][]models.Product
	fail     map[string]error
	calls    []string
}

func (f *fakeSource) ListSchools(context.Context) ([]models.School, error) {
	return f.schools, nil
}

func (f *fakeSource) ListProducts(_ context.Context, id string) ([]models.Product, error) {
	f.calls = append(f.calls, id)
	if err := f.fail[id]; err != nil {
		return nil, err
	}
	return f.products[id], nil
}

func TestLoadFeaturedCapsAndSkipsFailures(t *testing.T) {
	src := &fakeSource{
		schools:  []models.School{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}},
		products: map[string][]models.Product{},
		fail:     map[string]error{"2": errors.New("boom")},
	}
	for _, id := range []string{"1", "3"} {
		for i := 0; i < 10; i++ {
			src.products[id] = append(src.products[id], models.Product{Description: fmt.Sprintf("%s-%d", id, i)})
		}
	}

	got, err := LoadFeatured(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, got, FeaturedLimit)
	assert.Equal(t, []string{"1", "2", "3"}, src.calls)
	for _, p := range got {
		assert.Contains(t, []string{"A", "C"}, p.SchoolName)
	}
}

func TestLoadFeaturedStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fakeSource{
		schools: []models.School{{ID: 1}, {ID: 2}},
		fail:    map[string]error{"1": context.Canceled},
	}
	_, err := LoadFeatured(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"1"}, src.calls)
}
