package deck

// reader.go: plain-text extraction from PPTX slides.
//
// Slides live at ppt/slides/slideN.xml inside the archive. We sort slides
// numerically, then stream-parse each with a state machine covering shapes,
// paragraphs, and runs. The round trip is deliberately lossy: colors, sizes,
// and images are dropped, only the visible text survives.
//
// Because we compare t.Name.Local (strips namespace prefix), both the p: and
// a: namespaces work correctly without explicit namespace registration.

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SlideText is the readable content of one slide: the title placeholder's
// text plus every other paragraph on the slide, in document order.
type SlideText struct {
	Title   string
	Content []string
}

// slideRE matches the canonical slide paths inside a PPTX ZIP archive,
// capturing the slide number for numeric sort.
var slideRE = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// ExtractSlideText reads every slide from a .pptx file in deck order.
func ExtractSlideText(filePath string) ([]SlideText, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("open pptx %s: %w", filePath, err)
	}
	defer func() { _ = zr.Close() }()

	type slideEntry struct {
		num  int
		file *zip.File
	}

	var entries []slideEntry
	for _, f := range zr.File {
		m := slideRE.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		entries = append(entries, slideEntry{n, f})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no slides found in %s", filePath)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].num < entries[j].num })

	slides := make([]SlideText, 0, len(entries))
	for _, e := range entries {
		rc, openErr := e.file.Open()
		if openErr != nil {
			return nil, fmt.Errorf("open slide %d: %w", e.num, openErr)
		}
		slide, parseErr := parseSlideXML(rc)
		_ = rc.Close()
		if parseErr != nil {
			return nil, fmt.Errorf("parse slide %d: %w", e.num, parseErr)
		}
		slides = append(slides, slide)
	}
	return slides, nil
}

// slideParser is the streaming state machine for one slide part.
type slideParser struct {
	stack []string

	// shape-level state
	inShape  bool
	isTitle  bool
	inTxBody bool

	// paragraph-level state
	inPara   bool
	paraText strings.Builder

	// run-level state
	inRun   bool
	runText strings.Builder

	titleParts []string
	bodyParts  []string
}

func (p *slideParser) push(name string) { p.stack = append(p.stack, name) }
func (p *slideParser) pop() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}
func (p *slideParser) inCtx(name string) bool {
	for _, s := range p.stack {
		if s == name {
			return true
		}
	}
	return false
}

func parseSlideXML(r io.Reader) (SlideText, error) {
	dec := xml.NewDecoder(r)
	p := &slideParser{}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return SlideText{}, fmt.Errorf("parse slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.push(t.Name.Local)
			p.handleStart(t)
		case xml.EndElement:
			p.handleEnd(t.Name.Local)
			p.pop()
		case xml.CharData:
			if p.inRun {
				p.runText.WriteString(string(t))
			}
		}
	}

	return SlideText{
		Title:   strings.Join(p.titleParts, " "),
		Content: p.bodyParts,
	}, nil
}

func (p *slideParser) handleStart(t xml.StartElement) {
	switch t.Name.Local {
	case "sp":
		p.inShape = true
		p.isTitle = false
	case "ph":
		if p.inShape && p.inCtx("nvPr") {
			typ := attrVal(t, "type")
			if typ == "title" || typ == "ctrTitle" {
				p.isTitle = true
			}
		}
	case "txBody":
		if p.inShape {
			p.inTxBody = true
		}
	case "p":
		if p.inTxBody {
			p.inPara = true
			p.paraText.Reset()
		}
	case "r":
		if p.inPara {
			p.inRun = true
			p.runText.Reset()
		}
	case "br":
		if p.inPara {
			p.paraText.WriteByte(' ')
		}
	}
}

func (p *slideParser) handleEnd(local string) {
	switch local {
	case "r":
		if p.inRun {
			p.paraText.WriteString(p.runText.String())
			p.inRun = false
		}
	case "p":
		p.endPara()
	case "txBody":
		p.inTxBody = false
		p.inPara = false // safety reset for malformed XML
	case "sp":
		p.inShape = false
		p.isTitle = false
	}
}

func (p *slideParser) endPara() {
	if !p.inPara {
		return
	}
	if text := strings.TrimSpace(p.paraText.String()); text != "" {
		if p.isTitle {
			p.titleParts = append(p.titleParts, text)
		} else {
			p.bodyParts = append(p.bodyParts, text)
		}
	}
	p.inPara = false
	p.paraText.Reset()
}

func attrVal(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
