package scripts

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/secrglue/internal/page"
)

const (
	SlidesHelp  = "Note 1: You can only upload a presentation file in txt, pdf, doc, or ppt/pptx. System will not accept presentation files in any other format.<br><br>Note 2: All uploaded files will be available to the public immediately on the Preliminary Page. However, for the Proceedings, ppt/pptx files will be converted to html format and doc files will be converted to pdf format manually by the Secretariat staff."
	MinutesHelp = "Note: You can only upload minutes in txt/html/ppt/pdf formats. System will not accept minutes in any other format."
	AgendaHelp  = "Note: You can only upload agendas in txt/html/ppt/pdf formats. System will not accept agendas in any other format."
)

// UploadHelp keeps the help box and slide name field in step with the
// selected material type.
type UploadHelp struct {
	MaterialType string
	HelpBox      string
	SlideName    string
}

var ProceedingsUploadHelp = UploadHelp{
	MaterialType: "#id_material_type",
	HelpBox:      "div#id_file_help",
	SlideName:    "#id_slide_name",
}

func (u UploadHelp) Bind(p *page.Page) int {
	return p.On(u.MaterialType, "change", u.onChange)
}

func (u UploadHelp) onChange(p *page.Page, sel *goquery.Selection) {
	help := p.Find(u.HelpBox)
	name := p.Find(u.SlideName)
	switch p.Val(sel) {
	case "slides":
		help.SetHtml(SlidesHelp)
		p.Enable(name)
	case "minutes":
		help.SetHtml(MinutesHelp)
		p.Disable(name)
		p.SetVal(name, "")
	case "agenda":
		help.SetHtml(AgendaHelp)
		p.Disable(name)
		p.SetVal(name, "")
	}
}
