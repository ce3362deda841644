package dashboard

import "io"

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// Template names under templates/.
const (
	TemplatePage          = "dashboard"
	TemplateSectionPrefix = "partials/"
)

// SectionTemplate returns the partial that renders section.
func SectionTemplate(section Section) string {
	return TemplateSectionPrefix + string(section)
}
