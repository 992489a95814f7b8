package game

import "math/rand"

// defaultWords 内置词库，房间未设置自定义词库时使用
var defaultWords = []string{
	// 校园
	"math", "science", "english", "physics", "history", "literature",
	"geography", "art", "geometry", "algebra", "friend", "classmate",
	"teacher", "lesson", "exercise", "test", "homework", "break",
	"kindergarten", "primary school", "high school", "university",
	"college", "library", "laboratory", "backpack", "book", "pencil",
	"pen", "crayon", "ruler", "scissors", "chair", "desk", "eraser",
	"glue", "pencil case", "paper", "marker", "compass", "globe",
	"dictionary", "notebook",
	// 职业
	"doctor", "driver", "baker", "chef", "engineer", "fire fighter",
	"dentist", "accountant", "architect", "businessman", "cashier",
	"pilot", "police", "interpreter", "worker", "painter", "farmer",
	"company", "factory", "office", "hospital", "farm",
	// 交通
	"bus", "taxi", "subway", "coach", "car", "bicycle", "bike",
	"motorbike", "scooter", "truck", "van", "tram", "boat", "ferry",
	"ship", "sailboat", "airplane", "plane", "helicopter", "glider",
	"hot-air balloon", "jet", "speed limit", "no parking",
	// 地点
	"art gallery", "alley", "bank", "barbershop", "bookstore",
	"bus stop", "bridge", "beach", "bakery", "cathedral", "church",
	"cafe", "cinema", "clinic", "gift shop", "hotel", "park",
	"post office", "pharmacy", "restaurant", "square", "stadium",
	"supermarket", "temple", "theater", "zoo",
}

// DefaultWords 返回内置词库的副本
func DefaultWords() []string {
	words := make([]string, len(defaultWords))
	copy(words, defaultWords)
	return words
}

// PickDistinct 从词池中随机挑选 count 个互不相同的词
// 去重后词数不足时返回空切片（fails closed），不做部分满足
func PickDistinct(pool []string, count int) []string {
	if count <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(pool))
	unique := make([]string, 0, len(pool))
	for _, w := range pool {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		unique = append(unique, w)
	}

	if len(unique) < count {
		return nil
	}

	rand.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})
	return unique[:count]
}
