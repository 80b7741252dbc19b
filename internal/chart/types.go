package chart

// Chart is the chart.js config of one burndown plot, serialised as-is into
// the page template.
type Chart struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// Series is one line of the plot. Nil points are gaps.
type Series struct {
	Label       string     `json:"label"`
	Data        []*float64 `json:"data"`
	BorderColor string     `json:"borderColor"`
	BorderWidth int        `json:"borderWidth"`
	Tension     float64    `json:"tension"`
	Fill        bool       `json:"fill"`
	YAxisID     string     `json:"yAxisID"`

	PointRadius          int      `json:"pointRadius"`
	PointBackgroundColor []string `json:"pointBackgroundColor,omitempty"`
}

type Options struct {
	Responsive bool            `json:"responsive"`
	Plugins    Plugins         `json:"plugins"`
	Scales     map[string]Axis `json:"scales"`
}

type Plugins struct {
	Legend Label `json:"legend"`
	Title  Label `json:"title"`
}

// Label serves both the chart title and the axis titles.
type Label struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
	Color   string `json:"color,omitempty"`
}

type Axis struct {
	Type     string   `json:"type"`
	Position string   `json:"position"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Title    Label    `json:"title"`
}
