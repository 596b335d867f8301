package core

import "strings"

type Intent string

const (
	IntentRecommendation Intent = "recommendation"
	IntentBudget         Intent = "budget"
	IntentProfileTips    Intent = "profile_tips"
	IntentEvents         Intent = "events"
)

var knownIntents = map[Intent]struct{}{
	IntentRecommendation: {},
	IntentBudget:         {},
	IntentProfileTips:    {},
	IntentEvents:         {},
}

// IntentSet keeps first-seen order and holds only known intents.
type IntentSet []Intent

// ParseIntent maps a raw tag onto the closed vocabulary.
func ParseIntent(raw string) (Intent, bool) {
	i := Intent(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := knownIntents[i]
	return i, ok
}

func NewIntentSet(intents ...Intent) IntentSet {
	set := make(IntentSet, 0, len(intents))
	for _, i := range intents {
		if _, ok := knownIntents[i]; !ok || set.Has(i) {
			continue
		}
		set = append(set, i)
	}
	return set
}

func (s IntentSet) Has(i Intent) bool {
	for _, v := range s {
		if v == i {
			return true
		}
	}
	return false
}

func (s IntentSet) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}
