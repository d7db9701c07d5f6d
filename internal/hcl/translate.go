package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/pulsegridgo/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

type intervalBlock struct {
	Start  int64 `hcl:"start"`
	Length int64 `hcl:"length"`
}

type clockBlock struct {
	Period int64 `hcl:"period"`
}

// channelBodySchema matches the paint blocks inside a channel body.
var channelBodySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "high"},
		{Type: "low"},
		{Type: "clock"},
	},
}

// translateChannel converts a decoded channel block into the model form.
// Paint blocks are collected in source order: later blocks overwrite earlier
// ones where they overlap, so the order is significant.
func (l *Loader) translateChannel(chb *channelBlock, evalCtx *hcl.EvalContext) (*config.Channel, error) {
	content, diags := chb.Body.Content(channelBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode channel body: %w", diags)
	}

	ch := &config.Channel{
		Name:     chb.Name,
		Pin:      chb.Pin,
		OffsetNs: chb.Offset,
	}
	for _, block := range content.Blocks {
		switch block.Type {
		case "high", "low":
			var iv intervalBlock
			if diags := gohcl.DecodeBody(block.Body, evalCtx, &iv); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode %s block: %w", block.Type, diags)
			}
			kind := config.PaintHigh
			if block.Type == "low" {
				kind = config.PaintLow
			}
			ch.Paints = append(ch.Paints, config.Paint{
				Kind:     kind,
				StartNs:  iv.Start,
				LengthNs: iv.Length,
			})
		case "clock":
			var cb clockBlock
			if diags := gohcl.DecodeBody(block.Body, evalCtx, &cb); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode clock block: %w", diags)
			}
			ch.Paints = append(ch.Paints, config.Paint{
				Kind:     config.PaintClock,
				PeriodNs: cb.Period,
			})
		}
	}
	return ch, nil
}

// evalLoops evaluates the cycle loops attribute. It accepts a positive
// number, the `infinite` constant, or the string "infinite".
func evalLoops(expr hcl.Expression, evalCtx *hcl.EvalContext) (int64, error) {
	v, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, fmt.Errorf("failed to evaluate loops: %w", diags)
	}
	switch {
	case v.Type().Equals(cty.String):
		if v.AsString() == "infinite" {
			return config.InfiniteLoops, nil
		}
		return 0, fmt.Errorf("loops must be a number or \"infinite\", got %q", v.AsString())
	case v.Type().Equals(cty.Number):
		var loops int64
		if err := gocty.FromCtyValue(v, &loops); err != nil {
			return 0, fmt.Errorf("loops is not a whole number: %w", err)
		}
		return loops, nil
	default:
		return 0, fmt.Errorf("loops must be a number or \"infinite\", got %s", v.Type().FriendlyName())
	}
}
