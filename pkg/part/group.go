package part

// Group is the encoder group a part renders into: the explicit discriminant
// tag that decides both how parts are batched for serial numbering and which
// top-level key of the option document receives their output. Parts carry
// their group as data instead of the pipeline inspecting runtime types.
type Group int

// Encoder groups, in emission order.
const (
	// GroupNone marks parts that do not render into the option document
	// directly (internal data providers, composite pseudo-components).
	GroupNone Group = iota

	GroupXAxis
	GroupYAxis
	GroupAngleAxis
	GroupRadiusAxis
	GroupGrid
	GroupPolar
	GroupRadar
	GroupLegend
	GroupTooltip
	GroupToolbox
	GroupDataZoom
	GroupVisualMap
	GroupGraphic
	GroupTitle
	GroupSeries

	// Self-rendering groups: their single member merges its payload directly
	// into the top level of the option document instead of an array.
	GroupColor
	GroupTextStyle
)

var groupKeys = map[Group]string{
	GroupXAxis:      "xAxis",
	GroupYAxis:      "yAxis",
	GroupAngleAxis:  "angleAxis",
	GroupRadiusAxis: "radiusAxis",
	GroupGrid:       "grid",
	GroupPolar:      "polar",
	GroupRadar:      "radar",
	GroupLegend:     "legend",
	GroupTooltip:    "tooltip",
	GroupToolbox:    "toolbox",
	GroupDataZoom:   "dataZoom",
	GroupVisualMap:  "visualMap",
	GroupGraphic:    "graphic",
	GroupTitle:      "title",
	GroupSeries:     "series",
	GroupColor:      "color",
	GroupTextStyle:  "textStyle",
}

// Key returns the option-document key for the group, or "" for GroupNone.
func (g Group) Key() string { return groupKeys[g] }

// SelfRendering reports whether the group's payload merges at the top level
// of the option document instead of being emitted as a JSON array.
func (g Group) SelfRendering() bool {
	return g == GroupColor || g == GroupTextStyle
}

// Groups returns every renderable group in emission order. The order is fixed
// so that two updates of an unchanged part graph emit structurally identical
// documents.
func Groups() []Group {
	return []Group{
		GroupXAxis, GroupYAxis, GroupAngleAxis, GroupRadiusAxis,
		GroupGrid, GroupPolar, GroupRadar,
		GroupLegend, GroupTooltip, GroupToolbox,
		GroupDataZoom, GroupVisualMap, GroupGraphic,
		GroupTitle, GroupSeries,
		GroupColor, GroupTextStyle,
	}
}
