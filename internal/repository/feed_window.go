package repository

import "Ripple/internal/model"

// FeedPageSize 单次分页的帖子数
const FeedPageSize = 5

// 以下函数都作用于“最新在前”的视图，返回半开区间 [lo, hi)

func recentWindow(length int) (int, int) {
	return 0, min(FeedPageSize, length)
}

// afterWindow 比 index 处帖子更新的全部帖子
func afterWindow(index int) (int, int) {
	if index <= 0 {
		return 0, 0
	}
	return 0, index
}

// beforeWindow 紧随 index 之后、更旧的最多 FeedPageSize 条帖子
func beforeWindow(index, length int) (int, int) {
	if index < 0 || index >= length-1 {
		return 0, 0
	}
	return index + 1, min(index+1+FeedPageSize, length)
}

// indexOf 按 ID 精确查找帖子在视图中的位置，找不到返回 -1
func indexOf(view []*model.Post, id int64) int {
	for i, p := range view {
		if p.ID == id {
			return i
		}
	}
	return -1
}
