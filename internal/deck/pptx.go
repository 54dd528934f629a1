package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"presentation-service/internal/models"
)

// ContentType is the MIME type of generated deck files.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// EMU per inch, the coordinate unit of OOXML drawings.
const emuPerInch = 914400

// Builder renders a Presentation into a PowerPoint (.pptx) file. The
// file is a zip of OOXML parts written directly; see templates.go for
// the static parts.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// textBlock is one positioned text box on a slide.
type textBlock struct {
	x, y, w, h float64 // inches
	fontSize   int     // points
	bulleted   bool
	bold       bool
	paragraphs []string
}

// Build produces the complete .pptx archive for the given spec. A
// leading title slide is always rendered from the presentation title
// and author, followed by one slide per entry, as submitted.
func (b *Builder) Build(p *models.Presentation) ([]byte, error) {
	slides := make([]string, 0, len(p.Slides)+1)
	slides = append(slides, b.renderTitleSlide(p.Title, "By "+p.Author))

	for i, slide := range p.Slides {
		xml, err := b.renderSlide(slide)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		slides = append(slides, xml)
	}

	return writeArchive(slides)
}

func (b *Builder) renderTitleSlide(title, subtitle string) string {
	return renderSlideXML([]textBlock{
		{x: 0.75, y: 2.0, w: 11.0, h: 1.5, fontSize: 44, bold: true, paragraphs: []string{title}},
		{x: 0.75, y: 3.8, w: 11.0, h: 1.0, fontSize: 24, paragraphs: []string{subtitle}},
	})
}

func (b *Builder) renderSlide(slide models.Slide) (string, error) {
	header := textBlock{x: 0.5, y: 0.4, w: 11.5, h: 1.0, fontSize: 32, bold: true, paragraphs: []string{slide.Title}}

	switch body := slide.Body.(type) {
	case models.TitleBody:
		blocks := []textBlock{
			{x: 0.75, y: 2.0, w: 11.0, h: 1.5, fontSize: 44, bold: true, paragraphs: []string{slide.Title}},
		}
		if body.Subtitle != "" {
			blocks = append(blocks, textBlock{x: 0.75, y: 3.8, w: 11.0, h: 1.0, fontSize: 24, paragraphs: []string{body.Subtitle}})
		}
		return renderSlideXML(blocks), nil

	case models.ContentBody:
		return renderSlideXML([]textBlock{
			header,
			{x: 0.5, y: 1.6, w: 11.5, h: 5.0, fontSize: 20, paragraphs: []string{body.Text}},
		}), nil

	case models.BulletPointsBody:
		return renderSlideXML([]textBlock{
			header,
			{x: 0.5, y: 1.6, w: 11.5, h: 5.0, fontSize: 20, bulleted: true, paragraphs: body.Points},
		}), nil

	case models.TwoColumnBody:
		return renderSlideXML([]textBlock{
			header,
			{x: 0.5, y: 1.6, w: 5.6, h: 5.0, fontSize: 18, paragraphs: []string{body.Column1}},
			{x: 6.4, y: 1.6, w: 5.6, h: 5.0, fontSize: 18, paragraphs: []string{body.Column2}},
		}), nil

	case models.ImageBody:
		// Image download and embedding is out of scope; the slide keeps
		// its title so the deck structure matches the spec.
		return renderSlideXML([]textBlock{header}), nil

	default:
		return "", fmt.Errorf("unknown slide type: %q", slide.Type)
	}
}

func renderSlideXML(blocks []textBlock) string {
	var shapes strings.Builder
	for i, block := range blocks {
		shapes.WriteString(renderShape(i+2, block))
	}
	return fmt.Sprintf(slideTemplate, shapes.String())
}

func renderShape(id int, block textBlock) string {
	var paragraphs strings.Builder
	for _, text := range block.paragraphs {
		paragraphs.WriteString(renderParagraph(text, block))
	}

	return fmt.Sprintf(shapeTemplate,
		id, id,
		emu(block.x), emu(block.y), emu(block.w), emu(block.h),
		paragraphs.String(),
	)
}

func renderParagraph(text string, block textBlock) string {
	pPr := `<a:pPr><a:buNone/></a:pPr>`
	if block.bulleted {
		pPr = `<a:pPr marL="285750" indent="-285750"><a:buChar char="•"/></a:pPr>`
	}

	bold := ""
	if block.bold {
		bold = ` b="1"`
	}

	return fmt.Sprintf(`<a:p>%s<a:r><a:rPr lang="en-US" sz="%d"%s dirty="0"/><a:t>%s</a:t></a:r></a:p>`,
		pPr, block.fontSize*100, bold, escapeXML(text))
}

func emu(inches float64) int {
	return int(inches * emuPerInch)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// writeArchive assembles the OOXML package around the rendered slides.
func writeArchive(slides []string) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml":                          renderContentTypes(len(slides)),
		"_rels/.rels":                                  rootRelsXML,
		"ppt/presentation.xml":                         renderPresentation(len(slides)),
		"ppt/_rels/presentation.xml.rels":              renderPresentationRels(len(slides)),
		"ppt/slideMasters/slideMaster1.xml":            slideMasterXML,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": slideMasterRelsXML,
		"ppt/slideLayouts/slideLayout1.xml":            slideLayoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": slideLayoutRelsXML,
		"ppt/theme/theme1.xml":                         themeXML,
		"docProps/core.xml":                            corePropsXML,
		"docProps/app.xml":                             appPropsXML,
	}
	for i, slide := range slides {
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", i+1)] = slide
		parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)] = slideRelsXML
	}

	for name, content := range parts {
		writer, err := archive.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if _, err := writer.Write([]byte(content)); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func renderContentTypes(slideCount int) string {
	var overrides strings.Builder
	for i := 1; i <= slideCount; i++ {
		overrides.WriteString(fmt.Sprintf(
			`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i))
	}
	return fmt.Sprintf(contentTypesTemplate, overrides.String())
}

func renderPresentation(slideCount int) string {
	var slideIDs strings.Builder
	for i := 1; i <= slideCount; i++ {
		slideIDs.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i+1))
	}
	return fmt.Sprintf(presentationTemplate, slideIDs.String())
}

func renderPresentationRels(slideCount int) string {
	var rels strings.Builder
	rels.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		rels.WriteString(fmt.Sprintf(
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+1, i))
	}
	return fmt.Sprintf(relsTemplate, rels.String())
}
