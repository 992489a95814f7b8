package server

import (
	"math/rand"
)

// 昵称词库
var (
	adjectives = []string{
		"勇敢的", "聪明的", "快乐的", "神秘的", "酷炫的",
		"优雅的", "可爱的", "威武的", "沉稳的", "活泼的",
		"机智的", "潇洒的", "温柔的", "霸气的", "淡定的",
		"抽象的", "写意的", "灵动的", "呆萌的", "高冷的",
	}

	nouns = []string{
		"画家", "涂鸦怪", "小画笔", "橡皮擦", "调色盘",
		"蜡笔", "水彩", "油画棒", "素描本", "马克笔",
		"小鸡", "熊猫", "狐狸", "海豚", "企鹅",
		"柯基", "柴犬", "龙猫", "仓鼠", "羊驼",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return adj + noun
}
