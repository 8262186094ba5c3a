package carousel

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

const (
	// FeaturedLimit is how many products the home page features.
	FeaturedLimit = 12
	// PerSlide is how many products one slide shows.
	PerSlide = 4
)

// Source is the part of the API client the featured loader needs.
type Source interface {
	ListSchools(ctx context.Context) ([]models.School, error)
	ListProducts(ctx context.Context, schoolID string) ([]models.Product, error)
}

// LoadFeatured gathers the products of every school (one school at a time),
// shuffles them and keeps the first FeaturedLimit. A school whose products
// fail to load is skipped.
func LoadFeatured(ctx context.Context, src Source) ([]models.Product, error) {
	// 1. --- Schools ---
	schools, err := src.ListSchools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}

	// 2. --- Products, school by school ---
	var all []models.Product
	for _, school := range schools {
		products, err := src.ListProducts(ctx, strconv.FormatInt(school.ID, 10))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("carousel: skipping school %d (%s): %v", school.ID, school.Name, err)
			continue
		}
		for _, p := range products {
			if p.SchoolName == "" {
				p.SchoolName = school.Name
			}
			all = append(all, p)
		}
	}

	// 3. --- Shuffle and cap ---
	Shuffle(all)
	if len(all) > FeaturedLimit {
		all = all[:FeaturedLimit]
	}
	return all, nil
}

// Shuffle permutes items in place, uniformly.
func Shuffle[T any](items []T) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Chunk splits items into consecutive groups of size; the last group may be
// shorter. It returns nil for no items.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
