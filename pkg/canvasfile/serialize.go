package canvasfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/canvas-toolkit/pkg/canvas"
)

// Serialize renders a Canvas back into the hierarchical YAML dialect. A
// node's width/height are omitted when they are zero (never set) or still
// equal canvas.DefaultNodeWidth/DefaultNodeHeight.
func Serialize(c *canvas.Canvas) ([]byte, error) {
	doc := yamlHierarchicalDoc{Canvas: yamlCanvas{
		Version:         c.Version,
		Title:           c.Title,
		Width:           c.Width,
		Height:          c.Height,
		BackgroundColor: c.BackgroundColor,
		Theme:           c.Theme,
	}}

	for _, nw := range c.Networks {
		nwOut := yamlNetwork{ID: nw.ID, Label: nw.Label, Description: nw.Description}
		for _, f := range nw.Factories {
			fOut := yamlFactory{
				ID: f.ID, Label: f.Label, Description: f.Description,
				Style: fromContainerStyle(f.Style),
			}
			for _, m := range f.Machines {
				mOut := yamlMachine{
					ID: m.ID, Label: m.Label, Description: m.Description,
					Style: fromContainerStyle(m.Style),
				}
				for _, n := range m.Nodes {
					mOut.Nodes = append(mOut.Nodes, fromNode(n))
				}
				fOut.Machines = append(fOut.Machines, mOut)
			}
			nwOut.Factories = append(nwOut.Factories, fOut)
		}
		doc.Canvas.Networks = append(doc.Canvas.Networks, nwOut)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("canvasfile: serialize: %w", err)
	}
	return out, nil
}

func fromNode(n *canvas.Node) yamlNode {
	out := yamlNode{
		ID: n.ID, Type: n.Type, Content: n.Content, Label: n.Label,
		Inputs: n.Inputs, Outputs: n.Outputs, Style: fromNodeStyle(n.Style),
	}
	x, y := n.X, n.Y
	out.X, out.Y = &x, &y
	if n.Width != 0 && n.Width != canvas.DefaultNodeWidth {
		w := n.Width
		out.Width = &w
	}
	if n.Height != 0 && n.Height != canvas.DefaultNodeHeight {
		h := n.Height
		out.Height = &h
	}
	return out
}

func fromNodeStyle(s *canvas.NodeStyle) *yamlNodeStyle {
	if s == nil {
		return nil
	}
	return &yamlNodeStyle{
		BorderColor: s.BorderColor, FillColor: s.FillColor,
		TextColor: s.TextColor, LabelColor: s.LabelColor, Icon: s.Icon,
		CornerRadius: s.CornerRadius, BorderWidth: s.BorderWidth,
	}
}

func fromContainerStyle(s *canvas.ContainerStyle) *yamlContainerStyle {
	if s == nil {
		return nil
	}
	return &yamlContainerStyle{
		BorderColor: s.BorderColor, FillColor: s.FillColor, LabelColor: s.LabelColor,
		Alpha: s.Alpha, CornerRadius: s.CornerRadius, BorderWidth: s.BorderWidth,
	}
}
