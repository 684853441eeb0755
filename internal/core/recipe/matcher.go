package recipe

import "strings"

// Match 將使用者食材與食譜食材配對
// 每個使用者食材依序先試直接比對，再試逐字比對；每個食譜食材在一次查詢中最多被消耗一次
func Match(user, recipe []string) MatchResult {
	consumed := make([]bool, len(recipe))
	result := MatchResult{Pairs: make([]MatchedPair, 0, len(user))}

	for _, u := range user {
		if idx := matchDirect(u, recipe, consumed); idx >= 0 {
			consumed[idx] = true
			result.Pairs = append(result.Pairs, MatchedPair{User: u, Recipe: recipe[idx], Strategy: StrategyDirect})
			continue
		}
		if idx := matchWords(u, recipe, consumed); idx >= 0 {
			consumed[idx] = true
			result.Pairs = append(result.Pairs, MatchedPair{User: u, Recipe: recipe[idx], Strategy: StrategyWord})
		}
	}
	return result
}

// matchDirect 任一字串包含另一字串即視為命中
func matchDirect(u string, recipe []string, consumed []bool) int {
	for i, r := range recipe {
		if consumed[i] {
			continue
		}
		if mutualContains(u, r) {
			return i
		}
	}
	return -1
}

// matchWords 拆成單字後，任一字對互相包含即視為命中
func matchWords(u string, recipe []string, consumed []bool) int {
	userWords := strings.Fields(u)
	if len(userWords) == 0 {
		return -1
	}
	for i, r := range recipe {
		if consumed[i] {
			continue
		}
		for _, rw := range strings.Fields(r) {
			for _, uw := range userWords {
				if mutualContains(uw, rw) {
					return i
				}
			}
		}
	}
	return -1
}

func mutualContains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
