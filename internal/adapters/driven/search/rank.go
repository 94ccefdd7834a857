package search

import (
	"time"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// Score weights. Textual confidence dominates; metadata bonuses order
// equally confident matches. Scores land in [0, ~200] and are only
// comparable within one call.
const (
	ratioWeight        = 100.0
	literalBonus       = 30.0
	starredBonus       = 20.0
	assistantBonus     = 5.0
	messageCountWeight = 2.0
	messageCountCap    = 20.0
)

// Conversation recency tiers, keyed on last activity.
const (
	convRecencyWeek  = 15.0
	convRecencyMonth = 10.0
)

// Message recency tiers, keyed on the message's own timestamp.
const (
	msgRecencyDay   = 20.0
	msgRecencyWeek  = 15.0
	msgRecencyMonth = 10.0
)

// scoreConversation ranks a title hit from its token overlap ratio plus
// engagement signals: literal substring presence, starred flag, last
// activity, and message volume.
func scoreConversation(conv *domain.Conversation, ratio float64, literal bool, now time.Time) float64 {
	score := ratio * ratioWeight
	if literal {
		score += literalBonus
	}
	if conv.Starred {
		score += starredBonus
	}
	score += conversationRecency(conv.LastActivity, now)

	volume := float64(conv.MessageCount) * messageCountWeight
	if volume > messageCountCap {
		volume = messageCountCap
	}
	return score + volume
}

// scoreMessage ranks a body hit from its token overlap ratio plus
// literal presence, the message's freshness, and a small bump for
// assistant answers, which tend to hold the substance users look for.
func scoreMessage(msg *domain.Message, ratio float64, literal bool, now time.Time) float64 {
	score := ratio * ratioWeight
	if literal {
		score += literalBonus
	}
	score += messageRecency(msg.CreatedAt, now)
	if msg.Role == domain.RoleAssistant {
		score += assistantBonus
	}
	return score
}

func conversationRecency(lastActivity, now time.Time) float64 {
	if lastActivity.IsZero() {
		return 0
	}
	age := now.Sub(lastActivity)
	switch {
	case age < 7*24*time.Hour:
		return convRecencyWeek
	case age < 30*24*time.Hour:
		return convRecencyMonth
	default:
		return 0
	}
}

func messageRecency(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	age := now.Sub(createdAt)
	switch {
	case age < 24*time.Hour:
		return msgRecencyDay
	case age < 7*24*time.Hour:
		return msgRecencyWeek
	case age < 30*24*time.Hour:
		return msgRecencyMonth
	default:
		return 0
	}
}
