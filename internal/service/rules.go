package service

import "sort"

// RuleCondition requires the resolved level of one sub-area to be a
// member of LevelCodes. An empty LevelCodes set is a wildcard matching
// any resolved level; a sub-area without a resolved level fails the
// condition either way.
type RuleCondition struct {
	SubAreaID  uint
	LevelCodes []string
}

// FeedbackRule is one admin-defined conditional feedback block.
type FeedbackRule struct {
	RuleID     uint
	Priority   int
	Feedback   string
	Conditions []RuleCondition
}

func (c RuleCondition) matches(subAreaLevels map[uint]string) bool {
	level, ok := subAreaLevels[c.SubAreaID]
	if !ok {
		return false
	}
	if len(c.LevelCodes) == 0 {
		return true
	}
	for _, code := range c.LevelCodes {
		if code == level {
			return true
		}
	}
	return false
}

// MatchFeedbackRule scans rules in ascending priority order and
// returns the feedback of the first rule whose conditions all hold.
// A rule with zero conditions always matches. The second return is
// false when nothing matches and the caller should fall back to the
// per-level summary feedback.
func MatchFeedbackRule(rules []FeedbackRule, subAreaLevels map[uint]string) (string, bool) {
	ordered := make([]FeedbackRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })

	for _, rule := range ordered {
		matched := true
		for _, cond := range rule.Conditions {
			if !cond.matches(subAreaLevels) {
				matched = false
				break
			}
		}
		if matched {
			return rule.Feedback, true
		}
	}
	return "", false
}
