package rulebased

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

func item(name string, cat domain.Category, status domain.ItemStatus) domain.ClothingItem {
	return domain.ClothingItem{
		ID:       uuid.New(),
		Name:     name,
		Category: cat,
		Status:   status,
	}
}

func wardrobe() []domain.ClothingItem {
	return []domain.ClothingItem{
		item("白T恤", domain.CategoryTops, domain.StatusInWardrobe),
		item("牛仔裤", domain.CategoryBottoms, domain.StatusInWardrobe),
		item("风衣", domain.CategoryOuterwear, domain.StatusInWardrobe),
		item("围巾", domain.CategoryAccessories, domain.StatusInWardrobe),
	}
}

func categories(items []domain.ClothingItem) map[domain.Category]int {
	counts := make(map[domain.Category]int)
	for _, it := range items {
		counts[it.Category]++
	}
	return counts
}

func TestGenerate_ColdWeatherAddsOuterwear(t *testing.T) {
	g := NewGeneratorWithSource(rand.NewSource(1))
	weather := domain.WeatherData{Temp: 10, Condition: "小雨", City: "北京"}

	result := g.Generate(wardrobe(), weather)

	cats := categories(result.Items)
	if cats[domain.CategoryTops] != 1 || cats[domain.CategoryBottoms] != 1 {
		t.Errorf("expected one top and one bottom, got %v", cats)
	}
	if cats[domain.CategoryOuterwear] != 1 {
		t.Errorf("expected outerwear below 15°C, got %v", cats)
	}

	if !strings.HasPrefix(result.Reason, "根据北京今日天气 (小雨, 10°C) 为您推荐：") {
		t.Errorf("unexpected reason prefix: %q", result.Reason)
	}
	if !strings.Contains(result.Reason, "天气较凉，建议增加一件外套。") {
		t.Errorf("cold advice missing from reason: %q", result.Reason)
	}
	if result.Weather != weather {
		t.Errorf("weather should be echoed back, got %+v", result.Weather)
	}
}

func TestGenerate_HotWeatherSkipsOuterwear(t *testing.T) {
	g := NewGeneratorWithSource(rand.NewSource(1))

	result := g.Generate(wardrobe(), domain.WeatherData{Temp: 32, Condition: "晴", City: "上海"})

	if categories(result.Items)[domain.CategoryOuterwear] != 0 {
		t.Error("outerwear must not be selected above the cold threshold")
	}
	if !strings.Contains(result.Reason, "天气炎热，建议穿着透气轻便。") {
		t.Errorf("hot advice missing from reason: %q", result.Reason)
	}
}

func TestGenerate_MildWeatherAdvice(t *testing.T) {
	g := NewGeneratorWithSource(rand.NewSource(1))

	result := g.Generate(wardrobe(), domain.WeatherData{Temp: 20, Condition: "多云", City: "广州"})

	if !strings.Contains(result.Reason, "气温适宜，基础搭配即可。") {
		t.Errorf("mild advice missing from reason: %q", result.Reason)
	}
}

func TestGenerate_BoundaryTemperatures(t *testing.T) {
	g := NewGeneratorWithSource(rand.NewSource(1))

	// 15°C is not cold and 28°C is not hot
	at15 := g.Generate(wardrobe(), domain.WeatherData{Temp: 15, City: "北京"})
	if !strings.Contains(at15.Reason, "气温适宜") {
		t.Errorf("15°C should read as mild: %q", at15.Reason)
	}
	at28 := g.Generate(wardrobe(), domain.WeatherData{Temp: 28, City: "北京"})
	if !strings.Contains(at28.Reason, "气温适宜") {
		t.Errorf("28°C should read as mild: %q", at28.Reason)
	}
}

func TestGenerate_SkipsUnavailableItems(t *testing.T) {
	items := []domain.ClothingItem{
		item("脏T恤", domain.CategoryTops, domain.StatusToWash),
		item("西裤", domain.CategoryBottoms, domain.StatusAtTailor),
		item("牛仔裤", domain.CategoryBottoms, domain.StatusInWardrobe),
	}
	g := NewGeneratorWithSource(rand.NewSource(1))

	result := g.Generate(items, domain.WeatherData{Temp: 20, City: "北京"})

	for _, it := range result.Items {
		if !it.Available() {
			t.Errorf("selected item %q is not in the wardrobe", it.Name)
		}
	}
	cats := categories(result.Items)
	if cats[domain.CategoryTops] != 0 {
		t.Error("no available top exists, none should be selected")
	}
	if cats[domain.CategoryBottoms] != 1 {
		t.Error("the one available bottom should be selected")
	}
}

func TestGenerate_EmptyWardrobe(t *testing.T) {
	g := NewGeneratorWithSource(rand.NewSource(1))

	result := g.Generate(nil, domain.WeatherData{Temp: 10, Condition: "晴", City: "北京"})

	if result == nil {
		t.Fatal("generator must always return a result")
	}
	if len(result.Items) != 0 {
		t.Errorf("expected no items, got %d", len(result.Items))
	}
	if result.Reason == "" {
		t.Error("reason must still explain the weather")
	}
}

func TestGenerate_AccessoriesAreOptionalExtras(t *testing.T) {
	// Across many runs accessories appear sometimes but never displace
	// the required categories.
	g := NewGenerator()
	for i := 0; i < 100; i++ {
		result := g.Generate(wardrobe(), domain.WeatherData{Temp: 20, City: "北京"})
		n := len(result.Items)
		if n < 2 || n > 3 {
			t.Fatalf("expected 2 or 3 items in mild weather, got %d", n)
		}
	}
}
