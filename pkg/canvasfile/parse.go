// Package canvasfile ingests and serializes the YAML document formats the
// layout engine's canvases are authored in: a hierarchical dialect that
// spells out networks/factories/machines/nodes explicitly, and a simple
// dialect that is just a flat list of nodes wrapped into one implicit
// machine/factory/network.
package canvasfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
)

// MalformedInputError reports an element in the input document missing a
// field the rest of the toolkit requires to identify it.
type MalformedInputError struct {
	Context string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed canvas input: %s", e.Context)
}

type yamlNodeStyle struct {
	BorderColor  string  `yaml:"border_color,omitempty"`
	FillColor    string  `yaml:"fill_color,omitempty"`
	TextColor    string  `yaml:"text_color,omitempty"`
	LabelColor   string  `yaml:"label_color,omitempty"`
	Icon         string  `yaml:"icon,omitempty"`
	CornerRadius float64 `yaml:"corner_radius,omitempty"`
	BorderWidth  float64 `yaml:"border_width,omitempty"`
}

type yamlContainerStyle struct {
	BorderColor  string  `yaml:"border_color,omitempty"`
	FillColor    string  `yaml:"fill_color,omitempty"`
	LabelColor   string  `yaml:"label_color,omitempty"`
	Alpha        float64 `yaml:"alpha,omitempty"`
	CornerRadius float64 `yaml:"corner_radius,omitempty"`
	BorderWidth  float64 `yaml:"border_width,omitempty"`
}

type yamlNode struct {
	ID      string         `yaml:"id"`
	Type    string         `yaml:"type,omitempty"`
	Content string         `yaml:"content,omitempty"`
	Label   string         `yaml:"label,omitempty"`
	X       *float64       `yaml:"x,omitempty"`
	Y       *float64       `yaml:"y,omitempty"`
	Width   *float64       `yaml:"width,omitempty"`
	Height  *float64       `yaml:"height,omitempty"`
	Inputs  []string       `yaml:"inputs,omitempty"`
	Outputs []string       `yaml:"outputs,omitempty"`
	Style   *yamlNodeStyle `yaml:"style,omitempty"`
}

type yamlMachine struct {
	ID          string              `yaml:"id"`
	Label       string              `yaml:"label,omitempty"`
	Description string              `yaml:"description,omitempty"`
	Nodes       []yamlNode          `yaml:"nodes"`
	Style       *yamlContainerStyle `yaml:"style,omitempty"`
}

type yamlFactory struct {
	ID          string              `yaml:"id"`
	Label       string              `yaml:"label,omitempty"`
	Description string              `yaml:"description,omitempty"`
	Machines    []yamlMachine       `yaml:"machines"`
	Style       *yamlContainerStyle `yaml:"style,omitempty"`
}

type yamlNetwork struct {
	ID          string        `yaml:"id"`
	Label       string        `yaml:"label,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Factories   []yamlFactory `yaml:"factories"`
}

type yamlCanvas struct {
	Version         string        `yaml:"version,omitempty"`
	Title           string        `yaml:"title,omitempty"`
	Width           float64       `yaml:"width,omitempty"`
	Height          float64       `yaml:"height,omitempty"`
	BackgroundColor string        `yaml:"background_color,omitempty"`
	Theme           string        `yaml:"theme,omitempty"`
	Networks        []yamlNetwork `yaml:"networks"`
}

type yamlHierarchicalDoc struct {
	Canvas yamlCanvas `yaml:"canvas"`
}

type yamlSimpleDoc struct {
	Title string     `yaml:"title,omitempty"`
	Theme string     `yaml:"theme,omitempty"`
	Nodes []yamlNode `yaml:"nodes"`
}

// detectDialect peeks at the raw document to decide which of the two
// accepted dialects it's in: the hierarchical form has a top-level
// "canvas" key, the simple form doesn't.
func detectDialect(data []byte) (hierarchical bool, err error) {
	var probe map[string]interface{}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false, err
	}
	_, hasCanvas := probe["canvas"]
	return hasCanvas, nil
}

// Parse ingests a YAML document in either dialect and returns the
// populated Canvas, with its node index already built.
func Parse(data []byte) (*canvas.Canvas, error) {
	hierarchical, err := detectDialect(data)
	if err != nil {
		return nil, fmt.Errorf("canvasfile: parse yaml: %w", err)
	}
	if hierarchical {
		return parseHierarchical(data)
	}
	return parseSimple(data)
}

func parseHierarchical(data []byte) (*canvas.Canvas, error) {
	var doc yamlHierarchicalDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("canvasfile: parse hierarchical document: %w", err)
	}

	c := canvas.NewCanvas()
	applyDocumentMeta(c, doc.Canvas)

	for _, nwSrc := range doc.Canvas.Networks {
		id := nwSrc.ID
		if id == "" {
			id = "network-1"
		}
		nw := &canvas.Network{ID: id, Label: nwSrc.Label, Description: nwSrc.Description}
		for _, fSrc := range nwSrc.Factories {
			f, err := buildFactory(fSrc)
			if err != nil {
				return nil, err
			}
			nw.Factories = append(nw.Factories, f)
		}
		c.Networks = append(c.Networks, nw)
	}

	c.BuildIndex()
	return c, nil
}

// parseSimple ingests the flat-nodes dialect, wrapping every node into a
// single implicit machine/factory/network so the rest of the toolkit
// only ever has to deal with one shape.
func parseSimple(data []byte) (*canvas.Canvas, error) {
	var doc yamlSimpleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("canvasfile: parse simple document: %w", err)
	}

	c := canvas.NewCanvas()
	c.Title = doc.Title
	if doc.Theme != "" {
		c.Theme = doc.Theme
	}

	m := &canvas.Machine{ID: "machine-1"}
	for _, nSrc := range doc.Nodes {
		n, err := buildNode(nSrc)
		if err != nil {
			return nil, err
		}
		m.Nodes = append(m.Nodes, n)
	}
	f := &canvas.Factory{ID: "factory-1", Machines: []*canvas.Machine{m}}
	nw := &canvas.Network{ID: "network-1", Factories: []*canvas.Factory{f}}
	c.Networks = []*canvas.Network{nw}

	c.BuildIndex()
	return c, nil
}

func buildFactory(fSrc yamlFactory) (*canvas.Factory, error) {
	id := fSrc.ID
	if id == "" {
		id = "factory-1"
	}
	f := &canvas.Factory{
		ID: id, Label: fSrc.Label, Description: fSrc.Description,
		Style: toContainerStyle(fSrc.Style),
	}
	for _, mSrc := range fSrc.Machines {
		m, err := buildMachine(mSrc)
		if err != nil {
			return nil, err
		}
		f.Machines = append(f.Machines, m)
	}
	return f, nil
}

func buildMachine(mSrc yamlMachine) (*canvas.Machine, error) {
	id := mSrc.ID
	if id == "" {
		id = "machine-1"
	}
	m := &canvas.Machine{
		ID: id, Label: mSrc.Label, Description: mSrc.Description,
		Style: toContainerStyle(mSrc.Style),
	}
	for _, nSrc := range mSrc.Nodes {
		n, err := buildNode(nSrc)
		if err != nil {
			return nil, err
		}
		m.Nodes = append(m.Nodes, n)
	}
	return m, nil
}

func buildNode(nSrc yamlNode) (*canvas.Node, error) {
	if nSrc.ID == "" {
		return nil, &MalformedInputError{Context: "node missing id"}
	}
	n := &canvas.Node{
		ID:      nSrc.ID,
		Type:    nSrc.Type,
		Content: nSrc.Content,
		Label:   nSrc.Label,
		Inputs:  nSrc.Inputs,
		Outputs: nSrc.Outputs,
		Style:   toNodeStyle(nSrc.Style),
	}
	if nSrc.X != nil {
		n.X = *nSrc.X
	}
	if nSrc.Y != nil {
		n.Y = *nSrc.Y
	}
	// A preset width/height is accepted but never trusted: the layout
	// engine always re-sizes nodes via the Sizer, so leaving these at
	// zero here is not an error.
	if nSrc.Width != nil {
		n.Width = *nSrc.Width
	}
	if nSrc.Height != nil {
		n.Height = *nSrc.Height
	}
	return n, nil
}

func toNodeStyle(s *yamlNodeStyle) *canvas.NodeStyle {
	if s == nil {
		return nil
	}
	return &canvas.NodeStyle{
		BorderColor: s.BorderColor, FillColor: s.FillColor,
		TextColor: s.TextColor, LabelColor: s.LabelColor, Icon: s.Icon,
		CornerRadius: s.CornerRadius, BorderWidth: s.BorderWidth,
	}
}

func toContainerStyle(s *yamlContainerStyle) *canvas.ContainerStyle {
	if s == nil {
		return nil
	}
	return &canvas.ContainerStyle{
		BorderColor: s.BorderColor, FillColor: s.FillColor, LabelColor: s.LabelColor,
		Alpha: s.Alpha, CornerRadius: s.CornerRadius, BorderWidth: s.BorderWidth,
	}
}

func applyDocumentMeta(c *canvas.Canvas, src yamlCanvas) {
	if src.Version != "" {
		c.Version = src.Version
	}
	c.Title = src.Title
	if src.Width != 0 {
		c.Width = src.Width
	}
	if src.Height != 0 {
		c.Height = src.Height
	}
	c.BackgroundColor = src.BackgroundColor
	if src.Theme != "" {
		c.Theme = src.Theme
	}
}
