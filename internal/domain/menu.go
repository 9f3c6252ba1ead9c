package domain

import (
	"strings"
	"time"
)

// Menu represents a bookable service of the shop
type Menu struct {
	ID              string
	Name            string
	Description     *string
	Price           int // yen
	DurationMinutes int
	Image           *string
	Category        Category

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category menu category after normalization
type Category string

const (
	CategoryCut           Category = "cut"
	CategoryPerm          Category = "perm"
	CategoryColor         Category = "color"
	CategoryStraight      Category = "straight"
	CategoryLadiesShaving Category = "ladies_shaving"
	CategoryOption        Category = "option"
	CategoryOther         Category = "other" // unclassified
)

// CategoryOrder порядок вывода групп в каталоге
var CategoryOrder = []Category{
	CategoryCut,
	CategoryPerm,
	CategoryColor,
	CategoryStraight,
	CategoryLadiesShaving,
	CategoryOption,
}

// categoryAliases сопоставление вариантов написания категорий, встречающихся в данных
var categoryAliases = map[string]Category{
	"カット":            CategoryCut,
	"cut":            CategoryCut,
	"パーマ":            CategoryPerm,
	"perm":           CategoryPerm,
	"カラー":            CategoryColor,
	"color":          CategoryColor,
	"縮毛矯正":           CategoryStraight,
	"straight":       CategoryStraight,
	"レディースシェービング":    CategoryLadiesShaving,
	"レディースシェイビング":    CategoryLadiesShaving,
	"ladies_shaving": CategoryLadiesShaving,
	"オプション":          CategoryOption,
	"option":         CategoryOption,
	"その他":            CategoryOther,
	"other":          CategoryOther,
}

// categoryLabels отображаемые названия категорий
var categoryLabels = map[Category]string{
	CategoryCut:           "カット",
	CategoryPerm:          "パーマ",
	CategoryColor:         "カラー",
	CategoryStraight:      "縮毛矯正",
	CategoryLadiesShaving: "レディースシェービング",
	CategoryOption:        "オプション",
	CategoryOther:         "その他",
}

// NormalizeCategory maps a raw category value to a Category.
// Empty and unknown values fall into CategoryOther.
func NormalizeCategory(raw string) Category {
	key := strings.TrimSpace(raw)
	if key == "" {
		return CategoryOther
	}
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	if c, ok := categoryAliases[strings.ToLower(key)]; ok {
		return c
	}
	return CategoryOther
}

// Label returns the display name of the category
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// DedupByNamePrice returns true for categories whose catalogue hides
// repeated name+price entries
func (c Category) DedupByNamePrice() bool {
	return c == CategoryCut || c == CategoryPerm || c == CategoryColor
}

// CutMenuOrder фиксированный порядок стрижек в каталоге
var CutMenuOrder = []string{
	"カット（シャンプー・シェービング付き）",
	"カット（シャンプーまたはシェービングなし）",
	"カットのみ",
}
