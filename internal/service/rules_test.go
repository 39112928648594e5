package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchFeedbackRulePriorityOrder(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 2, Priority: 2, Feedback: "second", Conditions: []RuleCondition{
			{SubAreaID: 1, LevelCodes: []string{"strong"}},
		}},
		{RuleID: 1, Priority: 1, Feedback: "first", Conditions: []RuleCondition{
			{SubAreaID: 1, LevelCodes: []string{"strong"}},
		}},
	}
	levels := map[uint]string{1: "strong"}

	feedback, ok := MatchFeedbackRule(rules, levels)
	assert.True(t, ok)
	assert.Equal(t, "first", feedback)

	// Deterministic: repeated evaluation gives the same winner.
	for i := 0; i < 10; i++ {
		again, ok := MatchFeedbackRule(rules, levels)
		assert.True(t, ok)
		assert.Equal(t, feedback, again)
	}
}

func TestMatchFeedbackRuleWildcardLosesToSpecific(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 1, Priority: 2, Feedback: "wildcard", Conditions: []RuleCondition{
			{SubAreaID: 7, LevelCodes: nil},
		}},
		{RuleID: 2, Priority: 1, Feedback: "specific", Conditions: []RuleCondition{
			{SubAreaID: 7, LevelCodes: []string{"strong"}},
		}},
	}

	feedback, ok := MatchFeedbackRule(rules, map[uint]string{7: "strong"})
	assert.True(t, ok)
	assert.Equal(t, "specific", feedback)
}

func TestMatchFeedbackRuleEmptyLevelCodesIsWildcard(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 1, Priority: 1, Feedback: "any level", Conditions: []RuleCondition{
			{SubAreaID: 3, LevelCodes: []string{}},
		}},
	}

	for _, level := range []string{"developing", "emerging", "strong", "exceptional"} {
		feedback, ok := MatchFeedbackRule(rules, map[uint]string{3: level})
		assert.True(t, ok, level)
		assert.Equal(t, "any level", feedback)
	}
}

func TestMatchFeedbackRuleMissingLevelFailsCondition(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 1, Priority: 1, Feedback: "needs sub-area 5", Conditions: []RuleCondition{
			{SubAreaID: 5, LevelCodes: nil},
		}},
	}

	// Sub-area 5 has no resolved level, even the wildcard fails.
	_, ok := MatchFeedbackRule(rules, map[uint]string{6: "strong"})
	assert.False(t, ok)
}

func TestMatchFeedbackRuleAllConditionsMustHold(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 1, Priority: 1, Feedback: "both", Conditions: []RuleCondition{
			{SubAreaID: 1, LevelCodes: []string{"strong"}},
			{SubAreaID: 2, LevelCodes: []string{"developing"}},
		}},
		{RuleID: 2, Priority: 2, Feedback: "fallback", Conditions: []RuleCondition{
			{SubAreaID: 1, LevelCodes: []string{"strong"}},
		}},
	}

	feedback, ok := MatchFeedbackRule(rules, map[uint]string{1: "strong", 2: "emerging"})
	assert.True(t, ok)
	assert.Equal(t, "fallback", feedback)
}

func TestMatchFeedbackRuleNoConditionsAlwaysMatches(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 1, Priority: 5, Feedback: "unconditional"},
	}

	feedback, ok := MatchFeedbackRule(rules, map[uint]string{})
	assert.True(t, ok)
	assert.Equal(t, "unconditional", feedback)
}

func TestMatchFeedbackRuleNoMatch(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 1, Priority: 1, Feedback: "strong only", Conditions: []RuleCondition{
			{SubAreaID: 1, LevelCodes: []string{"strong"}},
		}},
	}

	feedback, ok := MatchFeedbackRule(rules, map[uint]string{1: "developing"})
	assert.False(t, ok)
	assert.Empty(t, feedback)

	feedback, ok = MatchFeedbackRule(nil, map[uint]string{1: "strong"})
	assert.False(t, ok)
	assert.Empty(t, feedback)
}

func TestMatchFeedbackRuleDoesNotReorderInput(t *testing.T) {
	rules := []FeedbackRule{
		{RuleID: 2, Priority: 2, Feedback: "b"},
		{RuleID: 1, Priority: 1, Feedback: "a"},
	}
	_, _ = MatchFeedbackRule(rules, nil)

	assert.Equal(t, uint(2), rules[0].RuleID)
	assert.Equal(t, uint(1), rules[1].RuleID)
}
