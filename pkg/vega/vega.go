// Package vega provides serialization types for Vega-Lite v5 documents.
//
// Only the subset of the Vega-Lite grammar the compiler emits is modeled:
// layered charts, vertical concatenation, calculate/fold/filter transforms,
// variable and selection params, and scale resolution. The types are plain
// structs with json tags so that marshalling is deterministic: two builds of
// the same input produce byte-identical documents.
//
// Heterogeneous grammar positions (a sort that is either a string or an
// object, a bind that is either "legend" or an input spec) are typed as any;
// use [Null] where the grammar requires an explicit JSON null, since a nil
// value would be dropped by omitempty.
package vega

import "encoding/json"

// SchemaURL is the Vega-Lite v5 schema reference embedded in every document.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Null marshals as an explicit JSON null. Assign it to any-typed fields
// (axis titles, legends) that must be present-and-null to suppress defaults.
var Null = json.RawMessage("null")

// Document is a complete top-level Vega-Lite specification.
type Document struct {
	Schema  string   `json:"$schema"`
	Title   *Title   `json:"title,omitempty"`
	Data    *Data    `json:"data,omitempty"`
	Params  []Param  `json:"params,omitempty"`
	VConcat []Chart  `json:"vconcat,omitempty"`
	Resolve *Resolve `json:"resolve,omitempty"`
	Config  *Config  `json:"config,omitempty"`
}

// Title is the document title block.
type Title struct {
	Text     string `json:"text"`
	Subtitle string `json:"subtitle,omitempty"`
	Anchor   string `json:"anchor,omitempty"`
	FontSize int    `json:"fontSize,omitempty"`
}

// Data references the dataset, either by URL or as inline values.
type Data struct {
	URL    string `json:"url,omitempty"`
	Values any    `json:"values,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Config carries document-wide view configuration.
type Config struct {
	View *ViewConfig `json:"view,omitempty"`
}

// ViewConfig controls the default view chrome.
type ViewConfig struct {
	Stroke any `json:"stroke,omitempty"`
}

// Chart is one (possibly layered) view inside a concatenation.
type Chart struct {
	Height    any         `json:"height,omitempty"`
	Width     any         `json:"width,omitempty"`
	Transform []Transform `json:"transform,omitempty"`
	Layer     []Layer     `json:"layer,omitempty"`
	Resolve   *Resolve    `json:"resolve,omitempty"`
}

// Step is a step-based sizing directive, the auto-height alternative to a
// fixed pixel height.
type Step struct {
	Step float64 `json:"step"`
}

// Layer is a single mark layer within a layered chart.
type Layer struct {
	Mark      *Mark       `json:"mark,omitempty"`
	Params    []Param     `json:"params,omitempty"`
	Transform []Transform `json:"transform,omitempty"`
	Encoding  *Encoding   `json:"encoding,omitempty"`
}

// Mark describes the visual mark and its static properties.
type Mark struct {
	Type          string  `json:"type"`
	Filled        *bool   `json:"filled,omitempty"`
	Color         string  `json:"color,omitempty"`
	Size          float64 `json:"size,omitempty"`
	Opacity       float64 `json:"opacity,omitempty"`
	Stroke        string  `json:"stroke,omitempty"`
	StrokeWidth   float64 `json:"strokeWidth,omitempty"`
	StrokeOpacity float64 `json:"strokeOpacity,omitempty"`
	Interpolate   string  `json:"interpolate,omitempty"`
}

// Transform is one entry of a transform chain. Exactly one of the operation
// fields is set; As serves both calculate (string) and fold (pair of names).
type Transform struct {
	Calculate string   `json:"calculate,omitempty"`
	Fold      []string `json:"fold,omitempty"`
	As        any      `json:"as,omitempty"`
	Filter    any      `json:"filter,omitempty"`
}

// ParamRef references a named selection param inside filters and conditions.
// Empty controls how an unset selection behaves: nil (grammar default) means
// an unset selection matches everything; an explicit false means it matches
// nothing.
type ParamRef struct {
	Param string `json:"param"`
	Empty *bool  `json:"empty,omitempty"`
}

// Param declares a variable or selection parameter.
type Param struct {
	Name   string  `json:"name"`
	Value  any     `json:"value,omitempty"`
	Select *Select `json:"select,omitempty"`
	Bind   any     `json:"bind,omitempty"`
}

// Select describes a selection param's behavior.
type Select struct {
	Type      string   `json:"type"`
	Fields    []string `json:"fields,omitempty"`
	Encodings []string `json:"encodings,omitempty"`
	Toggle    any      `json:"toggle,omitempty"`
}

// Bind describes an input-element binding for a variable param.
type Bind struct {
	Input   string   `json:"input"`
	Options []string `json:"options,omitempty"`
	Name    string   `json:"name,omitempty"`
}

// BindLegend is the bind value that attaches a selection to a legend.
const BindLegend = "legend"

// Encoding maps data fields to visual channels.
type Encoding struct {
	X       *Channel       `json:"x,omitempty"`
	Y       *Channel       `json:"y,omitempty"`
	Color   *Channel       `json:"color,omitempty"`
	Shape   *Channel       `json:"shape,omitempty"`
	Opacity *Channel       `json:"opacity,omitempty"`
	Detail  *Channel       `json:"detail,omitempty"`
	Tooltip []TooltipField `json:"tooltip,omitempty"`
}

// Channel is one visual channel's field mapping or constant value.
type Channel struct {
	Field     string     `json:"field,omitempty"`
	Type      string     `json:"type,omitempty"`
	Aggregate string     `json:"aggregate,omitempty"`
	Sort      *Sort      `json:"sort,omitempty"`
	Scale     any        `json:"scale,omitempty"`
	Axis      any        `json:"axis,omitempty"`
	Legend    any        `json:"legend,omitempty"`
	Title     any        `json:"title,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
	Value     any        `json:"value,omitempty"`
}

// Sort orders a nominal channel by another field's aggregated value.
type Sort struct {
	Field string `json:"field,omitempty"`
	Op    string `json:"op,omitempty"`
	Order string `json:"order,omitempty"`
}

// Scale configures a channel's scale.
type Scale struct {
	Domain  any    `json:"domain,omitempty"`
	Range   any    `json:"range,omitempty"`
	Scheme  string `json:"scheme,omitempty"`
	Reverse bool   `json:"reverse,omitempty"`
	Clamp   bool   `json:"clamp,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Axis configures a positional channel's axis.
type Axis struct {
	Title      any   `json:"title,omitempty"`
	Labels     *bool `json:"labels,omitempty"`
	Ticks      *bool `json:"ticks,omitempty"`
	Domain     *bool `json:"domain,omitempty"`
	LabelLimit int   `json:"labelLimit,omitempty"`
	Grid       *bool `json:"grid,omitempty"`
}

// Condition is a param-gated channel encoding: the field mapping applies to
// rows matched by the selection, Value (on the parent channel) to the rest.
type Condition struct {
	ParamRef
	Field  string `json:"field,omitempty"`
	Type   string `json:"type,omitempty"`
	Scale  any    `json:"scale,omitempty"`
	Legend any    `json:"legend,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// TooltipField is one entry of a tooltip channel array.
type TooltipField struct {
	Field     string `json:"field,omitempty"`
	Type      string `json:"type,omitempty"`
	Aggregate string `json:"aggregate,omitempty"`
	Title     string `json:"title,omitempty"`
	Format    string `json:"format,omitempty"`
}

// Resolve declares shared-versus-independent scale resolution.
type Resolve struct {
	Scale map[string]string `json:"scale,omitempty"`
}

// Independent/Shared are the two scale resolution modes.
const (
	ResolveIndependent = "independent"
	ResolveShared      = "shared"
)

// Bool returns a pointer to b, for the *bool fields above.
func Bool(b bool) *bool { return &b }

// Marshal renders the document as indented JSON. Marshalling is
// deterministic: struct field order is fixed and the resolve maps are
// serialized with sorted keys by encoding/json.
func Marshal(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
