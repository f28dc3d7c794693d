package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/christopherklint97/contribcal/internal/heatmap"
)

func TestWeekAxis_PlacesMonthLabels(t *testing.T) {
	cal := heatmap.Aggregate(nil, 2024, nil)
	labels := weekAxis(cal)

	if len(labels) != len(cal.Weeks) {
		t.Fatalf("got %d labels, want %d", len(labels), len(cal.Weeks))
	}
	if labels[0] != "Jan" || labels[5] != "Feb" || labels[48] != "Dec" {
		t.Errorf("labels = %q", labels)
	}
	named := 0
	for _, l := range labels {
		if l != "" {
			named++
		}
	}
	if named != 12 {
		t.Errorf("%d labeled weeks, want 12", named)
	}
}

func TestCellData_SundayOnTop(t *testing.T) {
	days := []heatmap.Day{{Date: "2024-07-04", Count: 5, Level: 2}}
	cal := heatmap.Aggregate(days, 2024, nil)
	data := cellData(cal)

	if len(data) != len(cal.Weeks)*7 {
		t.Fatalf("got %d points, want %d", len(data), len(cal.Weeks)*7)
	}

	first := data[0].Value.([3]interface{})
	if first[0] != 0 || first[1] != 6 || first[2] != 0 {
		t.Errorf("first point = %v, want [0 6 0]", first)
	}

	// Week 26, Thursday (weekday 4) lands on y = 6 - 4.
	p := data[26*7+4]
	if v := p.Value.([3]interface{}); v[0] != 26 || v[1] != 2 || v[2] != 2 {
		t.Errorf("2024-07-04 point = %v", v)
	}
	if p.Name != "5 contributions on 2024-07-04" {
		t.Errorf("name = %q", p.Name)
	}
}

func TestCellData_UnknownLevelIsZero(t *testing.T) {
	days := []heatmap.Day{{Date: "2024-01-03", Count: 9, Level: 7}}
	data := cellData(heatmap.Aggregate(days, 2024, nil))

	// 2024-01-03 is the Wednesday of week 0.
	if v := data[3].Value.([3]interface{}); v[2] != 0 {
		t.Errorf("level = %v, want 0", v[2])
	}
}

func TestRender_WritesHTML(t *testing.T) {
	cal := heatmap.Aggregate([]heatmap.Day{{Date: "2024-01-02", Count: 1, Level: 4}}, 2024, map[int]int{2024: 842})

	var buf bytes.Buffer
	if err := Render(&buf, cal, heatmap.DefaultPalette, "@octocat"); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<html", "@octocat", "842 contributions in 2024", "#3f3f46", "#ffffff"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
