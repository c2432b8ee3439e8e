package feed

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/eighttenaric/gmc-editor/internal/models"
)

var reportTemplate = template.Must(template.New("report").Parse(`<h2>GMC Feed QA Report</h2>
<p>{{len .}} product(s) changed.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <thead>
    <tr><th>Product ID</th><th>Attribute</th><th>Original</th><th>New</th></tr>
  </thead>
  <tbody>
  {{- range $row := .}}
    {{- range $i, $c := $row.Changes}}
    <tr>
      {{- if eq $i 0}}<td rowspan="{{len $row.Changes}}">{{$row.ProductID}}</td>{{end}}
      <td>{{$c.Field}}</td>
      <td>{{$c.Old}}</td>
      <td>{{$c.New}}</td>
    </tr>
    {{- end}}
  {{- end}}
  </tbody>
</table>`))

// RenderReport renders a diff as the HTML fragment used by both the QA view
// and the mailed report.
func RenderReport(diff []models.DiffRow) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, diff); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
