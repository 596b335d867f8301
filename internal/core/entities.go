package core

// Entities is the normalized form of what the router extracted from one utterance.
// Empty strings and a zero Days mean absent.
type Entities struct {
	Where       string   `json:"where,omitempty"`
	When        string   `json:"when,omitempty"`
	Days        int      `json:"days,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Party       string   `json:"party,omitempty"`
	Origin      string   `json:"origin,omitempty"`
	Region      string   `json:"region,omitempty"`
	Constraints []string `json:"constraints"`
}

// RegionOrWhere is the pricing label for the budget adapter.
func (e Entities) RegionOrWhere() string {
	if e.Region != "" {
		return e.Region
	}
	return e.Where
}

func (e Entities) OriginOr(home string) string {
	if e.Origin != "" {
		return e.Origin
	}
	return home
}

// Raw converts the record back into the loose mapping shape the normalizer accepts.
func (e Entities) Raw() map[string]any {
	raw := map[string]any{}
	put := func(k, v string) {
		if v != "" {
			raw[k] = v
		}
	}
	put("where", e.Where)
	put("when", e.When)
	put("budget", e.Budget)
	put("party", e.Party)
	put("origin", e.Origin)
	put("region", e.Region)
	if e.Days > 0 {
		raw["days"] = e.Days
	}
	constraints := make([]any, len(e.Constraints))
	for i, c := range e.Constraints {
		constraints[i] = c
	}
	raw["constraints"] = constraints
	return raw
}
