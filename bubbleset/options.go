package bubbleset

import (
	"time"

	"github.com/paulhankin/bubblesets/potential"
)

// Options configure one outline. Zero fields take their default; the
// flags are pointers so that an outline can switch off a flag its
// collection defaults switch on.
type Options struct {
	potential.Options `mapstructure:",squash" yaml:",inline"`

	// VirtualEdges connects members that no selected edge joins.
	VirtualEdges *bool `mapstructure:"virtual_edges" yaml:"virtual_edges"`

	// Throttle is the minimum time between two recomputations caused
	// by graph mutations. Negative means no delay.
	Throttle time.Duration `mapstructure:"throttle" yaml:"throttle"`

	Fill        string  `mapstructure:"fill" yaml:"fill"`
	Stroke      string  `mapstructure:"stroke" yaml:"stroke"`
	StrokeWidth float64 `mapstructure:"stroke_width" yaml:"stroke_width"`

	// DrawPotentialArea hands the potential grid to the surface too.
	DrawPotentialArea *bool `mapstructure:"draw_potential_area" yaml:"draw_potential_area"`

	IncludeLabels       *bool `mapstructure:"include_labels" yaml:"include_labels"`
	IncludeMainLabels   *bool `mapstructure:"include_main_labels" yaml:"include_main_labels"`
	IncludeOverlays     *bool `mapstructure:"include_overlays" yaml:"include_overlays"`
	IncludeSourceLabels *bool `mapstructure:"include_source_labels" yaml:"include_source_labels"`
	IncludeTargetLabels *bool `mapstructure:"include_target_labels" yaml:"include_target_labels"`

	// SampleStep and SmoothGranularity control the post-processing of
	// the traced contour.
	SampleStep        int `mapstructure:"sample_step" yaml:"sample_step"`
	SmoothGranularity int `mapstructure:"smooth_granularity" yaml:"smooth_granularity"`
}

func DefaultOptions() Options {
	return Options{
		Options:           potential.DefaultOptions(),
		Throttle:          100 * time.Millisecond,
		Fill:              "rgba(0,0,0,0.25)",
		Stroke:            "black",
		StrokeWidth:       1,
		SampleStep:        8,
		SmoothGranularity: 6,
	}
}

// Merge returns o with every non-zero field of over copied in.
func (o Options) Merge(over Options) Options {
	o.Options = o.Options.Merge(over.Options)
	setFlag(&o.VirtualEdges, over.VirtualEdges)
	if over.Throttle != 0 {
		o.Throttle = over.Throttle
	}
	if over.Fill != "" {
		o.Fill = over.Fill
	}
	if over.Stroke != "" {
		o.Stroke = over.Stroke
	}
	if over.StrokeWidth != 0 {
		o.StrokeWidth = over.StrokeWidth
	}
	setFlag(&o.DrawPotentialArea, over.DrawPotentialArea)
	setFlag(&o.IncludeLabels, over.IncludeLabels)
	setFlag(&o.IncludeMainLabels, over.IncludeMainLabels)
	setFlag(&o.IncludeOverlays, over.IncludeOverlays)
	setFlag(&o.IncludeSourceLabels, over.IncludeSourceLabels)
	setFlag(&o.IncludeTargetLabels, over.IncludeTargetLabels)
	if over.SampleStep != 0 {
		o.SampleStep = over.SampleStep
	}
	if over.SmoothGranularity != 0 {
		o.SmoothGranularity = over.SmoothGranularity
	}
	return o
}

// Bool returns a pointer to v, for setting the flags of Options.
func Bool(v bool) *bool { return &v }

func isSet(p *bool) bool { return p != nil && *p }

func setFlag(dst **bool, v *bool) {
	if v != nil {
		b := *v
		*dst = &b
	}
}

func (o Options) boundsOptions() BoundsOptions {
	return BoundsOptions{
		IncludeLabels:       isSet(o.IncludeLabels),
		IncludeMainLabels:   isSet(o.IncludeMainLabels),
		IncludeOverlays:     isSet(o.IncludeOverlays),
		IncludeSourceLabels: isSet(o.IncludeSourceLabels),
		IncludeTargetLabels: isSet(o.IncludeTargetLabels),
	}
}

func (o Options) throttleInterval() time.Duration {
	if o.Throttle < 0 {
		return 0
	}
	return o.Throttle
}
