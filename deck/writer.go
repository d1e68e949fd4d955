// Package deck persists slides as a PPTX artifact and reads them back as
// plain text. PPTX files are ZIP archives of OOXML parts; both directions
// use the same part layout (ppt/slides/slideN.xml plus the master/layout/
// theme chain PowerPoint requires).
package deck

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SlideSpec is the deck collaborator's input contract: a title, bullet
// paragraphs, and an optional picture.
type SlideSpec struct {
	Title     string
	Bullets   []string
	ImagePath string
}

// Canvas geometry in EMU. Width is fixed; height follows the aspect ratio.
const (
	emuPerInch = 914400

	slideWidthEMU    = 10 * emuPerInch       // 10 in
	slideHeight169   = 5143500               // 5.625 in
	slideHeight43    = 7.5 * emuPerInch      // 7.5 in
	titleOffYEMU     = 274320                // 0.3 in
	titleHeightEMU   = 1097280               // 1.2 in
	contentOffYEMU   = 1.5 * emuPerInch      // below the title
	contentHeightEMU = 3474720               // 3.8 in
	marginEMU        = 457200                // 0.5 in
	fullContentWidth = 9 * emuPerInch        // no image: full width
	halfContentWidth = 4114800               // image present: 4.5 in
	imageOffXEMU     = 5029200               // 5.5 in
	imageWidthEMU    = 4 * emuPerInch        // 4 in
)

// minBulletLen drops bullets below this many characters after trimming;
// shorter fragments are presumed noise.
const minBulletLen = 10

// Theme colors (hex, no leading #).
const (
	slideBackground = "E8F4F8"
	titleColor      = "4A90E2"
	bulletColor     = "222222"
)

// Writer assembles PPTX decks.
type Writer struct {
	logger      *slog.Logger
	aspectRatio string
	theme       string
}

func NewWriter(logger *slog.Logger, aspectRatio, theme string) *Writer {
	return &Writer{logger: logger, aspectRatio: aspectRatio, theme: theme}
}

// Write persists the slides to a .pptx file at path.
func (w *Writer) Write(slides []SlideSpec, path string) error {
	w.logger.Info("assembling deck", "slides", len(slides), "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create deck file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	parts := map[string]string{
		"[Content_Types].xml":                     w.contentTypesXML(len(slides)),
		"_rels/.rels":                             rootRelsXML,
		"ppt/presentation.xml":                    w.presentationXML(len(slides)),
		"ppt/_rels/presentation.xml.rels":         presentationRelsXML(len(slides)),
		"ppt/slideMasters/slideMaster1.xml":       slideMasterXML,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": slideMasterRelsXML,
		"ppt/slideLayouts/slideLayout1.xml":       slideLayoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": slideLayoutRelsXML,
		"ppt/theme/theme1.xml":                    themeXML,
	}

	for i, slide := range slides {
		n := i + 1
		hasImage := slide.ImagePath != "" && fileExists(slide.ImagePath)
		if slide.ImagePath != "" && !hasImage {
			w.logger.Warn("slide image missing, rendering without it",
				"slide", n, "path", slide.ImagePath)
		}
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", n)] = w.slideXML(slide, hasImage)
		parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] = slideRelsXML(n, hasImage)
		if hasImage {
			if err := copyIntoZip(zw, fmt.Sprintf("ppt/media/image%d.png", n), slide.ImagePath); err != nil {
				return err
			}
		}
	}

	for name, content := range parts {
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			return fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize deck: %w", err)
	}
	return nil
}

func (w *Writer) slideHeight() int {
	if w.aspectRatio == "4:3" {
		return slideHeight43
	}
	return slideHeight169
}

// titleFontSize picks the title point size by a 3-tier length threshold.
func titleFontSize(title string) int {
	length := len(title)
	words := len(strings.Fields(title))
	switch {
	case length > 60 || words > 8:
		return 24
	case length > 40 || words > 6:
		return 28
	default:
		return 32
	}
}

// bulletFontSize picks the bullet point size by a 4-tier length threshold.
func bulletFontSize(bullet string) int {
	length := len(bullet)
	words := len(strings.Fields(bullet))
	switch {
	case length > 200 || words > 20:
		return 11
	case length > 150 || words > 15:
		return 12
	case length > 100 || words > 12:
		return 13
	default:
		return 14
	}
}

func (w *Writer) slideXML(slide SlideSpec, hasImage bool) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:sld ` + pptNamespaces + `><p:cSld>`)
	sb.WriteString(`<p:bg><p:bgPr><a:solidFill><a:srgbClr val="` + slideBackground + `"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`)
	sb.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	// Title shape.
	sb.WriteString(fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`+
			`<p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>`+
			`<a:p><a:pPr algn="l"/><a:r><a:rPr lang="en-US" sz="%d" b="1" dirty="0">`+
			`<a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr>`+
			`<a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
		marginEMU, titleOffYEMU, fullContentWidth, titleHeightEMU,
		titleFontSize(slide.Title)*100, titleColor, escapeXML(slide.Title)))

	// Content shape: narrows to half width when an image takes the right
	// side.
	contentWidth := fullContentWidth
	if hasImage {
		contentWidth = halfContentWidth
	}
	sb.WriteString(fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Content"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>`,
		marginEMU, int(contentOffYEMU), contentWidth, contentHeightEMU))

	wrote := false
	for _, bullet := range slide.Bullets {
		clean := strings.TrimSpace(bullet)
		if len(clean) < minBulletLen {
			continue
		}
		sb.WriteString(fmt.Sprintf(
			`<a:p><a:pPr algn="l"/><a:r><a:rPr lang="en-US" sz="%d" dirty="0">`+
				`<a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:latin typeface="Calibri"/></a:rPr>`+
				`<a:t>%s</a:t></a:r></a:p>`,
			bulletFontSize(clean)*100, bulletColor, escapeXML("• "+clean)))
		wrote = true
	}
	if !wrote {
		sb.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
	}
	sb.WriteString(`</p:txBody></p:sp>`)

	if hasImage {
		sb.WriteString(fmt.Sprintf(
			`<p:pic><p:nvPicPr><p:cNvPr id="4" name="Visual"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
				`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
				`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
				`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
			imageOffXEMU, int(contentOffYEMU), int(imageWidthEMU), contentHeightEMU))
	}

	sb.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return sb.String()
}

func (w *Writer) contentTypesXML(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	sb.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		sb.WriteString(fmt.Sprintf(`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i))
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

func (w *Writer) presentationXML(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:presentation ` + pptNamespaces + `>`)
	sb.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	sb.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slideCount; i++ {
		sb.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 1+i))
	}
	sb.WriteString(`</p:sldIdLst>`)
	sb.WriteString(fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`, slideWidthEMU, w.slideHeight()))
	sb.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	sb.WriteString(`</p:presentation>`)
	return sb.String()
}

func presentationRelsXML(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 1+i, i))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func slideRelsXML(slideNum int, hasImage bool) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if hasImage {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d.png"/>`, slideNum))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func copyIntoZip(zw *zip.Writer, name, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open slide image %s: %w", srcPath, err)
	}
	defer src.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create zip entry %s: %w", name, err)
	}
	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("embed image %s: %w", name, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
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
