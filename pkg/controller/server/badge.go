package server

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed templates/*.svg
var templateFS embed.FS

var svgTemplates = template.Must(
	template.New("svg").
		Funcs(template.FuncMap{"num": model.FormatNumber}).
		ParseFS(templateFS, "templates/*.svg"),
)

func renderSVG(variant model.BadgeVariant, badge *model.Badge) ([]byte, error) {
	var buf bytes.Buffer
	if err := svgTemplates.ExecuteTemplate(&buf, string(variant)+".svg", badge); err != nil {
		return nil, goerr.Wrap(err, "failed to render svg", goerr.V("variant", variant))
	}
	return buf.Bytes(), nil
}
