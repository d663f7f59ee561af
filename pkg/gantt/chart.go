package gantt

import (
	"strconv"

	"github.com/syampillai/sochart/pkg/chart"
	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/part"
)

// ProjectChart renders a project as a custom series on its own rectangular
// coordinate: a time X-axis, a value Y-axis spanning the bands, an activity
// band series and a dependency connector series.
//
// The chart owns its row providers and regenerates them from the project on
// every validation, so a board update always reflects the current schedule.
// Add the chart to a board; the coordinate system and the connector series
// ride along as bundled components.
type ProjectChart struct {
	*chart.Series

	project *Project
	coord   *chart.Rectangular
	xAxis   *chart.Axis
	yAxis   *chart.Axis
	links   *chart.Series

	activities   *data.Rows
	dependencies *data.Rows
	labels       *data.Rows
}

// NewProjectChart creates a chart over the given project.
func NewProjectChart(r *part.Registry, p *Project) *ProjectChart {
	xType := data.TypeTime
	if p.Unit().DateBased() {
		xType = data.TypeDate
	}
	x := chart.NewAxis(r, chart.AxisX, xType)
	y := chart.NewAxis(r, chart.AxisY, data.TypeNumber)
	coord := chart.NewRectangular(r, x, y)

	activities := data.NewRows(r)
	activities.SetName("activity bands")
	dependencies := data.NewRows(r)
	dependencies.SetName("dependency bands")
	labels := data.NewRows(r)
	labels.SetName("band labels")
	labels.MarkInternal()

	bars := chart.NewSeries(r, chart.KindCustom, activities)
	bars.SetRenderHook("taskBands")
	bars.PlotOn(coord)

	links := chart.NewSeries(r, chart.KindCustom, dependencies)
	links.SetRenderHook("taskDependencies")
	links.PlotOn(coord)

	return &ProjectChart{
		Series:       bars,
		project:      p,
		coord:        coord,
		xAxis:        x,
		yAxis:        y,
		links:        links,
		activities:   activities,
		dependencies: dependencies,
		labels:       labels,
	}
}

// Project returns the underlying project.
func (pc *ProjectChart) Project() *Project { return pc.project }

// Coordinate returns the chart's own coordinate system.
func (pc *ProjectChart) Coordinate() chart.CoordinateSystem { return pc.coord }

// Components returns the bundled components: the coordinate system and the
// dependency connector series.
func (pc *ProjectChart) Components() []chart.Component {
	return []chart.Component{pc.coord, pc.links}
}

// Validate schedules the project and regenerates the row providers from the
// committed schedule, then applies the ordinary series rules.
func (pc *ProjectChart) Validate() error {
	if err := pc.project.ValidateConstraints(); err != nil {
		return err
	}

	rows := pc.project.ActivityRows()
	pc.activities.Replace(rows)
	pc.dependencies.Replace(pc.project.DependencyRows())
	pc.labels.Replace(pc.project.LabelRows())

	pc.xAxis.SetMin(string(appendTime(nil, pc.project.Start(), pc.project.Unit())))
	pc.yAxis.SetMax(strconv.Itoa(len(rows)))

	return pc.Series.Validate()
}

// DeclaredData returns the activity rows plus the internal label table. The
// connector series declares its own rows.
func (pc *ProjectChart) DeclaredData() []data.Provider {
	return []data.Provider{pc.activities, pc.labels}
}
