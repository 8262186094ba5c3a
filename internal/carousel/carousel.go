package carousel

import (
	"context"
	"sync"
	"time"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

// DefaultInterval is the autoplay period.
const DefaultInterval = 5 * time.Second

// Carousel is the featured-products slider of one visitor.
//
// Autoplay is a ticker goroutine that advances the index while at least one
// Start context is live. At most one runs at a time: restarting or stopping
// always retires the previous one, and a retired goroutine never moves the
// index.
type Carousel struct {
	interval time.Duration

	mu         sync.Mutex
	slides     [][]models.Product
	index      int
	streams    map[int]func() bool
	nextStream int
	stop       chan struct{}
	done       chan struct{}
	listeners  map[chan int]struct{}
}

// New builds a carousel over products, PerSlide per slide.
func New(products []models.Product, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Carousel{
		interval:  interval,
		slides:    Chunk(products, PerSlide),
		streams:   make(map[int]func() bool),
		listeners: make(map[chan int]struct{}),
	}
}

// SetProducts replaces the slides and goes back to the first one.
func (c *Carousel) SetProducts(products []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slides = Chunk(products, PerSlide)
	c.index = 0
	c.notifyLocked()
	c.startLocked()
}

// Len is the number of slides: ceil(products / PerSlide).
func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slides)
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Slide returns the products on the current slide.
func (c *Carousel) Slide() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return nil
	}
	return append([]models.Product(nil), c.slides[c.index]...)
}

// Next moves forward one slide, wrapping after the last.
func (c *Carousel) Next() int { return c.move(1) }

// Prev moves back one slide, wrapping before the first.
func (c *Carousel) Prev() int { return c.move(-1) }

// GoTo jumps to slide i (taken modulo the slide count).
func (c *Carousel) GoTo(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return 0
	}
	c.index = wrap(i, len(c.slides))
	c.notifyLocked()
	c.restartLocked()
	return c.index
}

func (c *Carousel) move(step int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return 0
	}
	c.index = wrap(c.index+step, len(c.slides))
	c.notifyLocked()
	c.restartLocked()
	return c.index
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Start keeps autoplay on for as long as ctx lives. Several callers may hold
// it at once (one per open page); it stops when the last ctx ends. With one
// slide or none there is nothing to play.
func (c *Carousel) Start(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextStream
	c.nextStream++
	c.streams[id] = context.AfterFunc(ctx, func() { c.release(id) })
	if c.stop == nil {
		c.startLocked()
	}
}

func (c *Carousel) release(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.streams[id]; !ok {
		return
	}
	delete(c.streams, id)
	if len(c.streams) == 0 {
		c.retireLocked()
	}
}

// Stop ends autoplay for every caller and waits for its goroutine to exit.
func (c *Carousel) Stop() {
	c.mu.Lock()
	done := c.done
	for id, unregister := range c.streams {
		unregister()
		delete(c.streams, id)
	}
	c.retireLocked()
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Playing reports whether an autoplay goroutine is live.
func (c *Carousel) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Subscribe returns a channel that receives the index after every change.
// Only the latest index is kept if the reader falls behind.
func (c *Carousel) Subscribe() (<-chan int, func()) {
	ch := make(chan int, 1)
	c.mu.Lock()
	c.listeners[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, ch)
			c.mu.Unlock()
		})
	}
}

func (c *Carousel) notifyLocked() {
	for ch := range c.listeners {
		select {
		case <-ch:
		default:
		}
		ch <- c.index
	}
}

// restartLocked resets the autoplay timer after manual navigation, if
// autoplay is on.
func (c *Carousel) restartLocked() {
	if c.stop != nil {
		c.startLocked()
	}
}

func (c *Carousel) startLocked() {
	c.retireLocked()
	if len(c.streams) == 0 || len(c.slides) <= 1 {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop, c.done = stop, done
	go c.run(stop, done)
}

func (c *Carousel) retireLocked() {
	if c.stop != nil {
		close(c.stop)
	}
	c.stop, c.done = nil, nil
}

func (c *Carousel) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.stop != stop {
				c.mu.Unlock()
				return
			}
			c.index = wrap(c.index+1, len(c.slides))
			c.notifyLocked()
			c.mu.Unlock()
		}
	}
}
