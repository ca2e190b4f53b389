package repository

import "Ripple/internal/model"

type ReactionAction int8

const (
	ActionLike ReactionAction = iota + 1
	ActionDislike
)

// ApplyReaction 根据当前态度和动作计算新的态度与计数
//
//	None     --like-->    Liked     likes+1
//	Liked    --like-->    None      likes-1
//	Disliked --like-->    Liked     dislikes-1, likes+1
//	None     --dislike--> Disliked  dislikes+1
//	Disliked --dislike--> None      dislikes-1
//	Liked    --dislike--> Disliked  likes-1, dislikes+1
//
// 计数不会小于 0
func ApplyReaction(state model.Reaction, action ReactionAction, likes, dislikes int) (model.Reaction, int, int) {
	var target model.Reaction
	switch action {
	case ActionLike:
		target = model.ReactionLiked
	case ActionDislike:
		target = model.ReactionDisliked
	default:
		return state, clamp(likes), clamp(dislikes)
	}

	// 撤销旧态度
	switch state {
	case model.ReactionLiked:
		likes--
	case model.ReactionDisliked:
		dislikes--
	}

	next := model.ReactionNone
	if state != target {
		next = target
		if target == model.ReactionLiked {
			likes++
		} else {
			dislikes++
		}
	}

	return next, clamp(likes), clamp(dislikes)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
