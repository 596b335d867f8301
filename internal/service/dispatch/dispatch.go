// Package dispatch decides which enrichment sources a turn needs and turns their results
// into hidden grounding messages.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/pkg/log"
)

var labels = map[core.Source]string{
	core.SourceWeather: "WEATHER_DATA",
	core.SourceEvents:  "EVENTS_DATA",
	core.SourceBudget:  "BUDGET_DATA",
}

var integrate = map[core.Source]string{
	core.SourceWeather: "Integrate this weather information naturally into your response without mentioning tools or technical details.",
	core.SourceEvents:  "Integrate these events naturally into your response without mentioning tools or technical details.",
	core.SourceBudget:  "Integrate this cost estimate naturally into your response without mentioning tools or technical details.",
}

type Dispatcher struct {
	weather  core.WeatherProvider
	events   core.EventsProvider
	budget   core.BudgetEstimator
	homeCity string
}

func NewDispatcher(weather core.WeatherProvider, events core.EventsProvider, budget core.BudgetEstimator, homeCity string) *Dispatcher {
	return &Dispatcher{
		weather:  weather,
		events:   events,
		budget:   budget,
		homeCity: homeCity,
	}
}

// Dispatch returns one grounding message per source that was invoked and produced data,
// in the order events, weather, budget. Every source is gated on its own intent in the
// current turn; under refinement that gate is what keeps earlier facts from being repeated.
func (d *Dispatcher) Dispatch(ctx context.Context, intents core.IntentSet, e core.Entities, refine bool) []core.Message {
	logger := log.FromCtx(ctx)
	logger.Debug().Strs("intents", intents.Strings()).Bool("refine", refine).Msg("dispatch: start")
	out := make([]core.Message, 0, 3)

	if intents.Has(core.IntentEvents) && e.Where != "" && e.When != "" && d.events != nil {
		found := d.events.Events(ctx, e.Where, e.When, 0)
		if len(found) > 0 {
			out = d.appendGrounding(ctx, out, core.SourceEvents, found)
		} else {
			logger.Debug().Str("where", e.Where).Str("when", e.When).Msg("dispatch: no events")
		}
	}

	if intents.Has(core.IntentRecommendation) && e.Where != "" && e.When != "" && d.weather != nil {
		if summary, ok := d.weather.Summary(ctx, e.Where, e.When, 0); ok {
			out = d.appendGrounding(ctx, out, core.SourceWeather, summary)
		} else {
			logger.Debug().Str("where", e.Where).Str("when", e.When).Msg("dispatch: no climate data")
		}
	}

	if intents.Has(core.IntentBudget) && e.Days > 0 && e.RegionOrWhere() != "" && d.budget != nil {
		estimate := d.budget.Estimate(e.RegionOrWhere(), e.Days, e.OriginOr(d.homeCity), core.ComfortStandard)
		out = d.appendGrounding(ctx, out, core.SourceBudget, estimate)
	}

	return out
}

func (d *Dispatcher) appendGrounding(ctx context.Context, out []core.Message, src core.Source, payload any) []core.Message {
	msg, err := Grounding(src, payload)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("source", string(src)).Msg("dispatch: grounding payload dropped")
		return out
	}
	return append(out, msg)
}

// Grounding builds the hidden system message for one source: a label, the payload as compact
// JSON and an instruction to weave it in without naming its origin.
func Grounding(src core.Source, payload any) (core.Message, error) {
	label, ok := labels[src]
	if !ok {
		return core.Message{}, fmt.Errorf("unknown source %q", src)
	}

	data, err := compactJSON(payload)
	if err != nil {
		return core.Message{}, fmt.Errorf("encode %s payload: %w", src, err)
	}

	return core.Message{
		Role:    core.RoleSystem,
		Content: label + ": " + data + "\n\n" + integrate[src],
		Source:  src,
	}, nil
}

// compactJSON keeps non-ASCII text and markup characters readable for the model.
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Sources lists the grounding sources present in msgs.
func Sources(msgs []core.Message) []core.Source {
	out := make([]core.Source, 0, len(msgs))
	for _, m := range msgs {
		if m.Source != "" {
			out = append(out, m.Source)
		}
	}
	return out
}
