package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
)

type TableConfig struct {
	CycleWidth  int
	SeriesWidth int
	ValueWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CycleWidth:  22,
		SeriesWidth: 28,
		ValueWidth:  10,
	}
}

const tmpl = `
{{define "cycles"}}{{range .}}  {{.Label}}  {{.Start.Format "2006-01-02"}}{{if .End.After .Start}} to {{.End.Format "2006-01-02"}}{{end}}  {{.Style.Color}}
{{end}}{{end}}

{{define "view"}}
=== {{.Def.Title}} ===
{{if .Def.Question}}{{.Def.Question}}
{{end}}{{range .Unavailable}}! {{.Ref.Label}} unavailable: {{.Reason}}
{{end}}{{if .Lags}}
{{.Def.MetricTitle}}
{{separator}}
{{formatRow "Cycle" "Series" "Lag"}}
{{separator}}
{{range .Lags}}{{formatRow .Label .Series .Lag.String}}
{{end}}{{separator}}
{{end}}{{if .Growth}}
{{.Def.MetricTitle}}
{{separator}}
{{formatRow "Cycle" "Series" "Change"}}
{{separator}}
{{range .Growth}}{{formatRow .Label .Series .String}}
{{end}}{{separator}}
{{end}}{{end}}

{{define "report"}}
{{.Title}}
Policy series: {{.PolicyID}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}

Rate-cut cycles:
{{template "cycles" .Cycles}}{{range .Views}}{{template "view" .}}{{end}}{{end}}
`

type Reporter struct {
	writer io.Writer
	config TableConfig
	tmpl   *template.Template
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	c := &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
	c.tmpl = template.Must(template.New("reporter").Funcs(c.funcMap()).Parse(tmpl))
	return c
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(cycle, series, value string) string {
			return fmt.Sprintf("| %-*s | %-*s | %*s |",
				c.config.CycleWidth, cycle,
				c.config.SeriesWidth, series,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.CycleWidth+2),
				strings.Repeat("-", c.config.SeriesWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}
}

func (c *Reporter) HandleReport(report *domain.Report) error {
	return c.execute("report", report)
}

func (c *Reporter) HandleView(view *domain.View) error {
	return c.execute("view", view)
}

func (c *Reporter) HandleCycles(policyID string, markers []domain.CycleMarker) error {
	if _, err := fmt.Fprintf(c.writer, "Rate-cut cycles in %s:\n", policyID); err != nil {
		return err
	}
	return c.execute("cycles", markers)
}

func (c *Reporter) execute(name string, data any) error {
	if err := c.tmpl.ExecuteTemplate(c.writer, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
