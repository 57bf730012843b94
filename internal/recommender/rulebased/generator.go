package rulebased

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

const (
	coldThreshold = 15
	hotThreshold  = 28

	accessoryChance = 0.3
)

// Generator is the rule-based fallback recommender. It needs no network
// and never fails: for any input it returns a structurally valid,
// possibly empty, recommendation.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a generator with a time-seeded random source
func NewGenerator() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSource creates a generator with a caller-supplied
// random source, for deterministic selection in tests.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate picks one in-wardrobe item per required category. Tops and
// bottoms are always required; outerwear is added below 15°C and
// accessories join with 30% probability. Categories with no eligible
// item are skipped silently.
func (g *Generator) Generate(items []domain.ClothingItem, weather domain.WeatherData) *domain.RecommendationResult {
	var reason strings.Builder
	fmt.Fprintf(&reason, "根据%s今日天气 (%s, %d°C) 为您推荐：", weather.City, weather.Condition, weather.Temp)

	required := []domain.Category{domain.CategoryTops, domain.CategoryBottoms}

	switch {
	case weather.Temp < coldThreshold:
		required = append(required, domain.CategoryOuterwear)
		reason.WriteString("天气较凉，建议增加一件外套。")
	case weather.Temp > hotThreshold:
		reason.WriteString("天气炎热，建议穿着透气轻便。")
	default:
		reason.WriteString("气温适宜，基础搭配即可。")
	}

	selected := make([]domain.ClothingItem, 0, len(required)+1)
	for _, cat := range required {
		if item, ok := g.pick(items, cat); ok {
			selected = append(selected, item)
		}
	}

	if g.rnd.Float64() < accessoryChance {
		if item, ok := g.pick(items, domain.CategoryAccessories); ok {
			selected = append(selected, item)
		}
	}

	return &domain.RecommendationResult{
		Items:   selected,
		Reason:  reason.String(),
		Weather: weather,
	}
}

// pick selects one in-wardrobe item of the category uniformly at random
func (g *Generator) pick(items []domain.ClothingItem, cat domain.Category) (domain.ClothingItem, bool) {
	var pool []domain.ClothingItem
	for _, item := range items {
		if item.Category == cat && item.Available() {
			pool = append(pool, item)
		}
	}
	if len(pool) == 0 {
		return domain.ClothingItem{}, false
	}
	return pool[g.rnd.Intn(len(pool))], true
}
