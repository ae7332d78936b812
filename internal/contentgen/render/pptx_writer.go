package render

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
)

// No free-licensed Go library writes .pptx, so the deck is serialized as
// minimal Office Open XML directly: one presentation part, one slide
// master/layout/theme, and one slide part per Slide, zipped per OPC.

const emuPerInch = 914400

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func esc(s string) string { return xmlEscaper.Replace(s) }

func writePPTX(path string, deck []Slide) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pptx: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML(len(deck))},
		{"_rels/.rels", rootRelsXML},
		{"ppt/presentation.xml", presentationXML(len(deck))},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(len(deck))},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for i, slide := range deck {
		parts = append(parts,
			struct {
				name string
				body string
			}{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(slide)},
			struct {
				name string
				body string
			}{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsXML},
		)
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("zip entry %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return fmt.Errorf("zip write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize pptx: %w", err)
	}
	return nil
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func contentTypesXML(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&sb, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

func presentationXML(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	sb.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	sb.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 1+i)
	}
	sb.WriteString(`</p:sldIdLst>`)
	// 10in x 7.5in canvas
	fmt.Fprintf(&sb, `<p:sldSz cx="%d" cy="%d"/>`, 10*emuPerInch, 15*emuPerInch/2)
	fmt.Fprintf(&sb, `<p:notesSz cx="%d" cy="%d"/>`, 15*emuPerInch/2, 10*emuPerInch)
	sb.WriteString(`</p:presentation>`)
	return sb.String()
}

func presentationRelsXML(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&sb, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 1+i, i)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

const emptySpTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const slideMasterXML = xmlHeader +
	`<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld>` + emptySpTree + `</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xmlHeader +
	`<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld>` + emptySpTree + `</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

const slideLayoutRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const slideRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`</Relationships>`

// Office default theme, trimmed to the parts PowerPoint requires.
const themeXML = xmlHeader +
	`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="EduMind">` +
	`<a:themeElements>` +
	`<a:clrScheme name="EduMind">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="1A5490"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="2C5AA0"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="C0392B"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="2C3E50"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="7F8C8D"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="EduMind">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="EduMind">` +
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`

// textBox geometry and typography for one shape.
type textBox struct {
	id           int
	name         string
	xIn, yIn     float64
	wIn, hIn     float64
	sizePt       int
	bold         bool
	color        string
	centered     bool
	lines        []string
	spaceAfterPt int
}

func (tb textBox) xml() string {
	var sb strings.Builder
	sb.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(&sb, `<p:cNvPr id="%d" name="%s"/>`, tb.id, esc(tb.name))
	sb.WriteString(`<p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`)
	sb.WriteString(`<p:spPr><a:xfrm>`)
	fmt.Fprintf(&sb, `<a:off x="%d" y="%d"/>`, emu(tb.xIn), emu(tb.yIn))
	fmt.Fprintf(&sb, `<a:ext cx="%d" cy="%d"/>`, emu(tb.wIn), emu(tb.hIn))
	sb.WriteString(`</a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`)
	sb.WriteString(`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	if len(tb.lines) == 0 {
		sb.WriteString(`<a:p/>`)
	}
	for _, line := range tb.lines {
		sb.WriteString(`<a:p><a:pPr`)
		if tb.centered {
			sb.WriteString(` algn="ctr"`)
		}
		sb.WriteString(`>`)
		if tb.spaceAfterPt > 0 {
			fmt.Fprintf(&sb, `<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, tb.spaceAfterPt*100)
		}
		sb.WriteString(`</a:pPr><a:r>`)
		fmt.Fprintf(&sb, `<a:rPr lang="en-US" sz="%d"`, tb.sizePt*100)
		if tb.bold {
			sb.WriteString(` b="1"`)
		}
		sb.WriteString(`>`)
		fmt.Fprintf(&sb, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, tb.color)
		sb.WriteString(`</a:rPr>`)
		fmt.Fprintf(&sb, `<a:t>%s</a:t>`, esc(line))
		sb.WriteString(`</a:r></a:p>`)
	}
	sb.WriteString(`</p:txBody></p:sp>`)
	return sb.String()
}

func emu(inches float64) int { return int(inches * emuPerInch) }

// Slide color scheme, kept from the service's original documents.
const (
	colorPrimary   = "1A5490"
	colorSecondary = "2C5AA0"
	colorAccent    = "C0392B"
	colorText      = "2C3E50"
	colorSubtle    = "7F8C8D"
)

func slideXML(slide Slide) string {
	var boxes []textBox

	switch slide.Kind {
	case SlideTitle:
		boxes = append(boxes,
			textBox{id: 2, name: "Title", xIn: 0.5, yIn: 2.5, wIn: 9, hIn: 1.5, sizePt: 44, bold: true, color: colorPrimary, centered: true, lines: []string{slide.Title}},
			textBox{id: 3, name: "Subtitle", xIn: 0.5, yIn: 4.2, wIn: 9, hIn: 1, sizePt: 18, color: colorSubtle, centered: true, lines: slide.Lines},
		)
	case SlideDivider:
		boxes = append(boxes,
			textBox{id: 2, name: "Divider", xIn: 1, yIn: 3, wIn: 8, hIn: 1.5, sizePt: 36, bold: true, color: colorPrimary, centered: true, lines: []string{slide.Title}},
		)
	case SlideContent:
		boxes = append(boxes,
			textBox{id: 2, name: "Title", xIn: 0.5, yIn: 0.3, wIn: 9, hIn: 1.1, sizePt: 32, bold: true, color: colorSecondary, lines: []string{slide.Title}},
			textBox{id: 3, name: "Content", xIn: 0.5, yIn: 1.5, wIn: 9, hIn: 5.5, sizePt: 16, color: colorText, lines: slide.Lines, spaceAfterPt: 12},
		)
	case SlideKeyPoints:
		boxes = append(boxes,
			textBox{id: 2, name: "Title", xIn: 0.5, yIn: 0.3, wIn: 9, hIn: 1.1, sizePt: 32, bold: true, color: colorAccent, lines: []string{slide.Title}},
			textBox{id: 3, name: "Key Points", xIn: 0.5, yIn: 1.5, wIn: 9, hIn: 5.5, sizePt: 18, bold: true, color: colorAccent, lines: slide.Lines, spaceAfterPt: 14},
		)
	case SlideCitations:
		boxes = append(boxes,
			textBox{id: 2, name: "Title", xIn: 0.5, yIn: 0.3, wIn: 9, hIn: 1.1, sizePt: 32, bold: true, color: colorSecondary, lines: []string{slide.Title}},
			textBox{id: 3, name: "Citations", xIn: 0.5, yIn: 1.5, wIn: 9, hIn: 5.5, sizePt: 12, color: colorSubtle, lines: slide.Lines, spaceAfterPt: 10},
		)
	}

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	sb.WriteString(`<p:cSld>` + emptySpTree)
	for _, box := range boxes {
		sb.WriteString(box.xml())
	}
	sb.WriteString(`</p:spTree></p:cSld>`)
	sb.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	sb.WriteString(`</p:sld>`)
	return sb.String()
}
