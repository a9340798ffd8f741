package canvasfile

import (
	"strings"
	"testing"
)

const hierarchicalDoc = `
canvas:
  title: Sample
  theme: dark
  networks:
    - id: nw1
      factories:
        - id: f1
          machines:
            - id: m1
              nodes:
                - id: n1
                  type: input
                  outputs: [n2]
                - id: n2
                  type: process
                  label: Do Work
`

const simpleDoc = `
title: Sample
nodes:
  - id: n1
    outputs: [n2]
  - id: n2
`

func TestParseHierarchicalDialect(t *testing.T) {
	c, err := Parse([]byte(hierarchicalDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Title != "Sample" || c.Theme != "dark" {
		t.Errorf("Title/Theme = %q/%q, want Sample/dark", c.Title, c.Theme)
	}
	if len(c.AllNodes()) != 2 {
		t.Fatalf("len(AllNodes()) = %d, want 2", len(c.AllNodes()))
	}
	n2, ok := c.GetNode("n2")
	if !ok || n2.GetLabel() != "Do Work" {
		t.Errorf("n2 label = %v, want 'Do Work'", n2)
	}
}

func TestParseSimpleDialectWrapsIntoOneMachine(t *testing.T) {
	c, err := Parse([]byte(simpleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(c.Networks) != 1 || len(c.Networks[0].Factories) != 1 || len(c.Networks[0].Factories[0].Machines) != 1 {
		t.Fatalf("expected exactly one implicit network/factory/machine, got %+v", c.Networks)
	}
	if c.Networks[0].ID != "network-1" || c.Networks[0].Factories[0].ID != "factory-1" || c.Networks[0].Factories[0].Machines[0].ID != "machine-1" {
		t.Errorf("implicit ids not as expected: %+v", c.Networks[0])
	}
}

func TestParseRejectsMissingNodeID(t *testing.T) {
	doc := strings.Replace(simpleDoc, "id: n1", "notid: n1", 1)
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for node missing id, got nil")
	}
	var malformed *MalformedInputError
	if !errorsAs(err, &malformed) {
		t.Errorf("error type = %T, want *MalformedInputError", err)
	}
}

func TestParseDefaultsMissingContainerIDs(t *testing.T) {
	doc := strings.Replace(hierarchicalDoc, "id: nw1", "label: Unnamed", 1)
	doc = strings.Replace(doc, "id: f1", "label: Unnamed", 1)
	doc = strings.Replace(doc, "id: m1", "label: Unnamed", 1)
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil (missing container ids default rather than error)", err)
	}
	if c.Networks[0].ID != "network-1" || c.Networks[0].Factories[0].ID != "factory-1" ||
		c.Networks[0].Factories[0].Machines[0].ID != "machine-1" {
		t.Errorf("missing container ids not defaulted: %+v", c.Networks[0])
	}
}

func errorsAs(err error, target **MalformedInputError) bool {
	if me, ok := err.(*MalformedInputError); ok {
		*target = me
		return true
	}
	return false
}

func TestSerializeRoundTrip(t *testing.T) {
	c, err := Parse([]byte(hierarchicalDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	out, err := Serialize(c)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	c2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse() error = %v", err)
	}
	if len(c2.AllNodes()) != len(c.AllNodes()) {
		t.Errorf("round-trip node count = %d, want %d", len(c2.AllNodes()), len(c.AllNodes()))
	}
}
